// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"love-days-go/internal/repository"
	"love-days-go/pkg/llm"
	"love-days-go/pkg/log"
)

// 返回给调用方的错误信息。
const (
	msgNotConfigured       = "Backend AI service not configured"
	msgInvalidDays         = "Invalid 'days' parameter provided."
	msgNoTemplates         = "No message prompts configured"
	msgBlockedPrefix       = "Message generation blocked or failed: "
	msgNetworkError        = "Network error communicating with AI service."
	defaultInternalMessage = "Failed to generate message from API"
)

// MessageService 定义了纪念日消息生成的接口。
type MessageService interface {
	// Ready 在 AI 服务未配置时返回 KindServiceUnavailable 错误。
	Ready() error
	// GenerateMessage 随机选择模板、代入天数并调用一次 LLM，不做重试。
	GenerateMessage(ctx context.Context, days int) (string, error)
	TemplateCount() int
}

type messageService struct {
	templates repository.TemplateRepository
	llmClient llm.Client
}

// NewMessageService 创建一个新的 MessageService 实例。llmClient 为 nil 表示未配置 API key。
func NewMessageService(templates repository.TemplateRepository, llmClient llm.Client) MessageService {
	return &messageService{
		templates: templates,
		llmClient: llmClient,
	}
}

// ParseDays 解析天数参数，只接受（可带符号的）十进制整数，负数合法。
func ParseDays(raw string) (int, error) {
	days, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &Error{Kind: KindInvalidInput, Message: msgInvalidDays, Err: err}
	}
	return days, nil
}

func (s *messageService) Ready() error {
	if s.llmClient == nil {
		return &Error{Kind: KindServiceUnavailable, Message: msgNotConfigured, Err: llm.ErrNotConfigured}
	}
	return nil
}

func (s *messageService) TemplateCount() int {
	return s.templates.Count()
}

func (s *messageService) GenerateMessage(ctx context.Context, days int) (string, error) {
	if err := s.Ready(); err != nil {
		return "", err
	}

	tmpl, err := s.templates.Pick()
	if err != nil {
		if errors.Is(err, repository.ErrNoTemplates) {
			return "", &Error{Kind: KindServiceUnavailable, Message: msgNoTemplates, Err: err}
		}
		return "", AsError(err)
	}
	prompt := tmpl.Render(days)
	log.Infow("[MessageService] 使用提示词模板", "days", days, "templateIndex", tmpl.Index, "prompt", prompt)

	text, err := s.llmClient.GenerateText(ctx, prompt)
	if err != nil {
		return "", classifyLLMError(err)
	}
	log.Debugw("[MessageService] 生成消息成功", "days", days, "text", text)
	return text, nil
}

func classifyLLMError(err error) *Error {
	var blocked *llm.BlockedError
	switch {
	case errors.As(err, &blocked):
		return &Error{Kind: KindContentBlocked, Message: msgBlockedPrefix + blocked.Reason, Err: err}
	case errors.Is(err, llm.ErrTransport):
		return &Error{Kind: KindUpstreamUnavailable, Message: msgNetworkError, Err: err}
	default:
		return AsError(err)
	}
}
