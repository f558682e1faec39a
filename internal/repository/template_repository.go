// Package repository 提供了数据访问层的实现。
package repository

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"love-days-go/internal/model"
	"love-days-go/pkg/log"

	"github.com/spf13/viper"
)

// ErrNoTemplates 表示模板列表为空，属于配置错误。
var ErrNoTemplates = errors.New("no prompt templates configured")

// FallbackTemplate 在模板文件无法加载时作为唯一的模板使用。
const FallbackTemplate = "Happy " + model.DaysPlaceholder + " days together! My love for you grows every day."

// TemplateRepository 定义了提示词模板的只读访问接口。
type TemplateRepository interface {
	// Pick 在所有模板中均匀随机地选择一条。
	Pick() (model.PromptTemplate, error)
	Count() int
}

// Option 配置 templateRepository。
type Option func(*templateRepository)

// WithIntN 替换随机数来源，intn 需返回 [0, n) 内的整数且可被并发调用。
func WithIntN(intn func(n int) int) Option {
	return func(r *templateRepository) {
		r.intn = intn
	}
}

type templateRepository struct {
	templates []string
	intn      func(n int) int
}

// NewTemplateRepository 使用给定的模板列表创建仓库，列表会被复制，之后不再修改。
func NewTemplateRepository(templates []string, opts ...Option) TemplateRepository {
	r := &templateRepository{
		templates: append([]string(nil), templates...),
		intn:      rand.IntN,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LoadTemplateRepository 从文件加载模板。加载失败时记录错误并退化为只包含 FallbackTemplate 的仓库，
// 文件中模板列表为空则保持为空。
func LoadTemplateRepository(path string, opts ...Option) TemplateRepository {
	templates, err := LoadTemplates(path)
	if err != nil {
		log.Errorw("加载提示词模板失败，使用默认模板", "path", path, "error", err)
		return NewTemplateRepository([]string{FallbackTemplate}, opts...)
	}
	if len(templates) == 0 {
		log.Warnw("提示词模板文件为空，生成接口将不可用", "path", path)
	}
	log.Infow("提示词模板加载完成", "path", path, "count", len(templates))
	return NewTemplateRepository(templates, opts...)
}

// LoadTemplates 读取形如 {"templates": ["...", "..."]} 的 JSON（或 YAML）文件，空白条目会被忽略。
func LoadTemplates(path string) ([]string, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if !strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml") {
		v.SetConfigType("json")
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}
	if !v.IsSet("templates") {
		return nil, fmt.Errorf("template file %s has no \"templates\" list", path)
	}

	raw, ok := v.Get("templates").([]interface{})
	if !ok {
		return nil, fmt.Errorf("\"templates\" in %s is not a list", path)
	}
	templates := make([]string, 0, len(raw))
	for i, item := range raw {
		text, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("template #%d in %s is not a string", i, path)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		templates = append(templates, text)
	}
	return templates, nil
}

func (r *templateRepository) Pick() (model.PromptTemplate, error) {
	if len(r.templates) == 0 {
		return model.PromptTemplate{}, ErrNoTemplates
	}
	i := r.intn(len(r.templates))
	return model.PromptTemplate{Index: i, Text: r.templates[i]}, nil
}

func (r *templateRepository) Count() int {
	return len(r.templates)
}
