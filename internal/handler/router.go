package handler

import (
	"net/http"
	"time"

	"love-days-go/internal/middleware"
	"love-days-go/internal/model"
	"love-days-go/internal/service"
	"love-days-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// RouterOptions 汇总路由依赖的服务和配置。
type RouterOptions struct {
	MessageService     service.MessageService
	AnniversaryService service.AnniversaryService
	AllowedOrigins     []string
	Now                func() time.Time
}

// NewRouter 创建路由引擎并注册所有路由。
func NewRouter(opts RouterOptions) *gin.Engine {
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	r.Use(middleware.RequestLogger(), gin.CustomRecovery(recoverJSON), middleware.CORS(opts.AllowedOrigins))

	messageHandler := NewMessageHandler(opts.MessageService)
	anniversaryHandler := NewAnniversaryHandler(opts.AnniversaryService, opts.MessageService, opts.Now)

	r.GET("/healthz", anniversaryHandler.Health)
	api := r.Group("/api")
	{
		api.GET("/generate-message", messageHandler.GenerateMessage)
		api.GET("/anniversary", anniversaryHandler.GetAnniversary)
	}
	return r
}

// recoverJSON 保证 panic 也以 JSON 错误返回。
func recoverJSON(c *gin.Context, recovered any) {
	log.Errorw("处理请求时发生 panic", "panic", recovered, "path", c.Request.URL.Path)
	c.AbortWithStatusJSON(http.StatusInternalServerError, model.ErrorResponse{Error: "Internal server error"})
}
