// Package model 包含了应用的数据模型定义。
package model

import (
	"strconv"
	"strings"
)

// DaysPlaceholder 是模板中天数的占位符。
const DaysPlaceholder = "{days}"

// PromptTemplate 是一条只读的提示词模板，Index 为其在模板列表中的位置，仅用于日志。
type PromptTemplate struct {
	Index int
	Text  string
}

// Render 将模板中所有的占位符替换为天数的十进制表示。
// 模板中没有占位符时原样返回。
func (t PromptTemplate) Render(days int) string {
	return strings.ReplaceAll(t.Text, DaysPlaceholder, strconv.Itoa(days))
}
