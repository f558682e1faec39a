// Package main 是应用程序的入口点。
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"love-days-go/internal/config"
	"love-days-go/internal/handler"
	"love-days-go/internal/repository"
	"love-days-go/internal/service"
	"love-days-go/pkg/llm"
	"love-days-go/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:          "love-days",
		Short:        "Serve anniversary day counts and AI generated love notes",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "./configs/config.yaml", "path to the YAML config file")
	return cmd
}

func run(ctx context.Context, configPath string) error {
	// 1. 初始化配置
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// 2. 初始化日志记录器
	if err := log.Init(log.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		OutputPath: cfg.Log.OutputPath,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 初始化 LLM 客户端；未配置 API key 时服务照常启动，生成接口返回 500
	var llmClient llm.Client
	llmClient, err = llm.NewClient(ctx, cfg.LLM, nil)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		log.Warnf("未设置 GEMINI_API_KEY，消息生成接口将不可用")
		llmClient = nil
	case err != nil:
		log.Error("初始化 Gemini 客户端失败", err)
		llmClient = nil
	default:
		log.Infof("Gemini 客户端初始化成功, model: %s", cfg.LLM.Model)
	}

	// 4. 加载提示词模板并初始化 Service
	templateRepo := repository.LoadTemplateRepository(cfg.Prompts.Path)
	start, err := cfg.Anniversary.Start()
	if err != nil {
		return fmt.Errorf("解析纪念日失败: %w", err)
	}
	loc, err := cfg.Anniversary.Location()
	if err != nil {
		return fmt.Errorf("解析时区失败: %w", err)
	}
	messageService := service.NewMessageService(templateRepo, llmClient)
	anniversaryService := service.NewAnniversaryService(start, loc)

	// 5. 设置 Gin 模式并注册路由
	gin.SetMode(cfg.Server.Mode)
	router := handler.NewRouter(handler.RouterOptions{
		MessageService:     messageService,
		AnniversaryService: anniversaryService,
		AllowedOrigins:     cfg.Server.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 6. 启动 HTTP 服务器，收到 SIGINT/SIGTERM 后优雅停机
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP 服务监听失败: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("接收到停机信号，正在关闭服务...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP 服务器关闭失败: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("服务异常退出", err)
		return err
	}
	log.Info("服务已优雅关闭")
	return nil
}
