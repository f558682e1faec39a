package model

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderReplacesEveryPlaceholder(t *testing.T) {
	tmpl := PromptTemplate{Text: "{days} days of loving you. Happy {days} days, my love!"}

	for _, days := range []int{0, 1, 10, 618, -3} {
		got := tmpl.Render(days)
		assert.NotContains(t, got, DaysPlaceholder)
		assert.Equal(t, 2, strings.Count(got, strconv.Itoa(days)))
	}
	assert.Equal(t, "10 days of loving you. Happy 10 days, my love!", tmpl.Render(10))
}

func TestRenderWithoutPlaceholderIsUnchanged(t *testing.T) {
	tmpl := PromptTemplate{Text: "Write a quick, happy message for us!"}
	assert.Equal(t, tmpl.Text, tmpl.Render(42))
}

func TestRenderNeverEvaluatesTemplateText(t *testing.T) {
	tmpl := PromptTemplate{Text: "Day ${daysInt} and {days} and {{days}}"}
	assert.Equal(t, "Day ${daysInt} and 7 and {7}", tmpl.Render(7))
}
