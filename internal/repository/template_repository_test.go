package repository

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestPickEmptyRepository(t *testing.T) {
	repo := NewTemplateRepository(nil)

	_, err := repo.Pick()
	assert.ErrorIs(t, err, ErrNoTemplates)
	assert.Equal(t, 0, repo.Count())
}

func TestPickReturnsIndexAndText(t *testing.T) {
	templates := []string{"a {days}", "b {days}", "c {days}"}
	repo := NewTemplateRepository(templates, WithIntN(func(n int) int { return n - 1 }))

	tmpl, err := repo.Pick()
	require.NoError(t, err)
	assert.Equal(t, 2, tmpl.Index)
	assert.Equal(t, "c {days}", tmpl.Text)
}

func TestRepositoryCopiesInput(t *testing.T) {
	templates := []string{"first {days}"}
	repo := NewTemplateRepository(templates, WithIntN(func(int) int { return 0 }))
	templates[0] = "mutated"

	tmpl, err := repo.Pick()
	require.NoError(t, err)
	assert.Equal(t, "first {days}", tmpl.Text)
}

func TestPickIsUniform(t *testing.T) {
	rng := rand.New(rand.NewPCG(20250204, 10))
	repo := NewTemplateRepository(
		[]string{"Day {days}: I love you.", "{days} days and counting!"},
		WithIntN(rng.IntN),
	)

	const trials = 10000
	rendered := map[string]int{}
	for i := 0; i < trials; i++ {
		tmpl, err := repo.Pick()
		require.NoError(t, err)
		rendered[tmpl.Render(10)]++
	}

	require.Len(t, rendered, 2)
	for _, prompt := range []string{"Day 10: I love you.", "10 days and counting!"} {
		share := float64(rendered[prompt]) / trials
		assert.InDelta(t, 0.5, share, 0.03, "prompt %q", prompt)
	}
}

func TestLoadTemplates(t *testing.T) {
	path := writeFile(t, "prompts.json", `{"templates": ["Day {days}", "  ", "{days} days!"]}`)

	got, err := LoadTemplates(path)
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"Day {days}", "{days} days!"}, got); diff != "" {
		t.Errorf("LoadTemplates() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadTemplatesYAML(t *testing.T) {
	path := writeFile(t, "prompts.yaml", "templates:\n  - \"Day {days}\"\n")

	got, err := LoadTemplates(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Day {days}"}, got)
}

func TestLoadTemplatesErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"templates": [`},
		{"missing key", `{"prompts": ["a"]}`},
		{"not a list", `{"templates": "a"}`},
		{"non string entry", `{"templates": ["a", 3]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTemplates(writeFile(t, "prompts.json", tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadTemplateRepositoryFallsBack(t *testing.T) {
	repo := LoadTemplateRepository(filepath.Join(t.TempDir(), "missing.json"))

	require.Equal(t, 1, repo.Count())
	tmpl, err := repo.Pick()
	require.NoError(t, err)
	assert.Equal(t, FallbackTemplate, tmpl.Text)
	assert.Equal(t, "Happy 5 days together! My love for you grows every day.", tmpl.Render(5))
}

func TestLoadTemplateRepositoryKeepsEmptyList(t *testing.T) {
	repo := LoadTemplateRepository(writeFile(t, "prompts.json", `{"templates": []}`))

	assert.Equal(t, 0, repo.Count())
	_, err := repo.Pick()
	assert.ErrorIs(t, err, ErrNoTemplates)
}
