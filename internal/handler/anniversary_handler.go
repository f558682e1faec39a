package handler

import (
	"net/http"
	"time"

	"love-days-go/internal/model"
	"love-days-go/internal/service"

	"github.com/gin-gonic/gin"
)

// AnniversaryHandler 返回纪念日天数，以及健康检查。
type AnniversaryHandler struct {
	anniversaryService service.AnniversaryService
	messageService     service.MessageService
	now                func() time.Time
}

// NewAnniversaryHandler 创建一个新的 AnniversaryHandler，now 为 nil 时使用 time.Now。
func NewAnniversaryHandler(anniversaryService service.AnniversaryService, messageService service.MessageService, now func() time.Time) *AnniversaryHandler {
	if now == nil {
		now = time.Now
	}
	return &AnniversaryHandler{
		anniversaryService: anniversaryService,
		messageService:     messageService,
		now:                now,
	}
}

// GetAnniversary 处理 GET /api/anniversary。
func (h *AnniversaryHandler) GetAnniversary(c *gin.Context) {
	c.JSON(http.StatusOK, h.anniversaryService.Since(h.now()))
}

// Health 处理 GET /healthz。
func (h *AnniversaryHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, model.HealthResponse{
		Status:       "ok",
		Templates:    h.messageService.TemplateCount(),
		AIConfigured: h.messageService.Ready() == nil,
	})
}
