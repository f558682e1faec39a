// Package config 负责加载和管理应用程序的配置。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 是整个应用程序的配置结构体，与 config.yaml 文件结构对应。
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`
	LLM         LLMConfig         `mapstructure:"llm"`
	Prompts     PromptsConfig     `mapstructure:"prompts"`
	Anniversary AnniversaryConfig `mapstructure:"anniversary"`
}

// ServerConfig 存储服务器相关的配置。
type ServerConfig struct {
	Port           string   `mapstructure:"port" validate:"required,numeric"`
	Mode           string   `mapstructure:"mode" validate:"oneof=debug release test"`
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"min=1,dive,required,http_url|eq=*"`
}

// LogConfig 存储日志相关的配置。
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format" validate:"oneof=json console"`
	OutputPath string `mapstructure:"output_path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"gte=0"`
	Compress   bool   `mapstructure:"compress"`
}

// LLMConfig 存储 Gemini 相关的配置。APIKey 为空时服务仍然启动，但生成接口返回 500。
type LLMConfig struct {
	APIKey     string              `mapstructure:"api_key"`
	BaseURL    string              `mapstructure:"base_url" validate:"omitempty,url"`
	Model      string              `mapstructure:"model" validate:"required"`
	Timeout    time.Duration       `mapstructure:"timeout" validate:"gt=0"`
	Generation LLMGenerationConfig `mapstructure:"generation"`
}

// LLMGenerationConfig 配置生成相关参数（可选，零值表示使用模型默认值）。
type LLMGenerationConfig struct {
	Temperature float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	TopP        float64 `mapstructure:"top_p" validate:"gte=0,lte=1"`
	MaxTokens   int     `mapstructure:"max_tokens" validate:"gte=0"`
}

// PromptsConfig 指定提示词模板文件。
type PromptsConfig struct {
	Path string `mapstructure:"path"`
}

// AnniversaryConfig 配置纪念日的起始日期。
type AnniversaryConfig struct {
	StartDate string `mapstructure:"start_date" validate:"required,datetime=2006-01-02"`
	Timezone  string `mapstructure:"timezone" validate:"required"`
}

// 环境变量到配置键的映射。
var envBindings = map[string]string{
	"server.port":            "PORT",
	"server.mode":            "GIN_MODE",
	"server.allowed_origins": "ALLOWED_ORIGINS",
	"log.level":              "LOG_LEVEL",
	"llm.api_key":            "GEMINI_API_KEY",
	"llm.model":              "GEMINI_MODEL",
	"llm.base_url":           "GEMINI_BASE_URL",
	"prompts.path":           "PROMPTS_PATH",
	"anniversary.start_date": "ANNIVERSARY_START_DATE",
	"anniversary.timezone":   "ANNIVERSARY_TIMEZONE",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3001")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("llm.model", "gemini-1.5-flash")
	v.SetDefault("llm.timeout", 20*time.Second)
	v.SetDefault("prompts.path", "./configs/prompts.json")
	v.SetDefault("anniversary.start_date", "2025-02-04")
	v.SetDefault("anniversary.timezone", "Local")
}

// Load 依次读取 .env、YAML 配置文件和环境变量，并校验结果。
// 配置文件和 .env 都是可选的。
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("读取 .env 失败: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("绑定环境变量 %s 失败: %w", env, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("无法将配置解析到结构体中: %w", err)
	}
	cfg.Server.AllowedOrigins = splitOrigins(cfg.Server.AllowedOrigins)
	cfg.LLM.APIKey = strings.TrimSpace(cfg.LLM.APIKey)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("配置校验失败: %w", err)
	}
	if _, err := cfg.Anniversary.Location(); err != nil {
		return nil, fmt.Errorf("无效的时区 %q: %w", cfg.Anniversary.Timezone, err)
	}
	return &cfg, nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err)
}

// splitOrigins 展开 "a,b" 形式的条目并去掉空白项。
func splitOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, origin := range strings.Split(item, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				out = append(out, origin)
			}
		}
	}
	return out
}

// Location 返回纪念日计算使用的时区。
func (c AnniversaryConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Start 返回纪念日起始日期（该时区的零点）。
func (c AnniversaryConfig) Start() (time.Time, error) {
	loc, err := c.Location()
	if err != nil {
		return time.Time{}, err
	}
	return time.ParseInLocation("2006-01-02", c.StartDate, loc)
}
