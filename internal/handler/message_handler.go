// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"

	"love-days-go/internal/model"
	"love-days-go/internal/service"
	"love-days-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// MessageHandler 处理纪念日消息生成请求。
type MessageHandler struct {
	messageService service.MessageService
}

// NewMessageHandler 创建一个新的 MessageHandler。
func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// GenerateMessage 处理 GET /api/generate-message?days=<integer>。
func (h *MessageHandler) GenerateMessage(c *gin.Context) {
	rawDays := c.Query("days")
	log.Infof("[MessageHandler] 收到生成请求, days: %s", rawDays)

	// 未配置 AI 服务时，不再校验参数
	if err := h.messageService.Ready(); err != nil {
		respondError(c, err)
		return
	}

	days, err := service.ParseDays(rawDays)
	if err != nil {
		respondError(c, err)
		return
	}

	text, err := h.messageService.GenerateMessage(c.Request.Context(), days)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Infof("[MessageHandler] 生成成功, days: %d, 长度: %d", days, len(text))
	c.JSON(http.StatusOK, model.GenerateMessageResponse{Message: text})
}

// respondError 记录完整的错误并返回简短的 JSON 错误信息。
func respondError(c *gin.Context, err error) {
	svcErr := service.AsError(err)
	status := svcErr.Kind.HTTPStatus()
	if status >= http.StatusInternalServerError || svcErr.Kind == service.KindUpstreamUnavailable {
		log.Errorw("[MessageHandler] 请求失败", "kind", svcErr.Kind.String(), "status", status, "error", err)
	} else {
		log.Warnw("[MessageHandler] 请求失败", "kind", svcErr.Kind.String(), "status", status, "error", err)
	}
	_ = c.Error(err)
	c.JSON(status, model.ErrorResponse{Error: svcErr.Message})
}
