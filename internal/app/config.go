// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/haierkeys/markdown-note-service/internal/dao"
	"github.com/haierkeys/markdown-note-service/pkg/util"
	"github.com/haierkeys/markdown-note-service/pkg/workerpool"
	"github.com/haierkeys/markdown-note-service/pkg/writequeue"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted when ai.api-key is empty
// ai.api-key 为空时依次读取的环境变量
const (
	EnvAIAPIKey      = "AI_API_KEY"
	EnvLovableAPIKey = "LOVABLE_API_KEY"
)

// AppConfig 应用配置
type AppConfig struct {
	File     string             `yaml:"-"` // 配置文件路径，不序列化
	Server   ServerConfig       `yaml:"server"`
	Log      LogConfig          `yaml:"log"`
	Database dao.DatabaseConfig `yaml:"database"`
	App      AppSettings        `yaml:"app"`
	User     UserConfig         `yaml:"user"`
	Security SecurityConfig     `yaml:"security"`
	Tracer   TracerConfig       `yaml:"tracer"`
	Preview  PreviewConfig      `yaml:"preview"`
	AI       AIConfig           `yaml:"ai"`
	Task     TaskConfig         `yaml:"task"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"warn"`
	// File 日志文件路径
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"true"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式 debug / release
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 端口
	HttpPort string `yaml:"http-port" default:":9000"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen 私有 HTTP 监听地址，为空则不启动
	PrivateHttpListen string `yaml:"private-http-listen" default:":9001"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	AuthTokenKey string `yaml:"auth-token-key" default:"markdown-note-Auth-Token"`
	// TokenExpiry 支持格式：7d（天）、24h（小时）、30m（分钟）
	TokenExpiry string `yaml:"token-expiry" default:"30d"`
	// AIAssistRequireAuth /ai-assist 是否要求登录
	AIAssistRequireAuth bool `yaml:"ai-assist-require-auth" default:"false"`
}

// UserConfig 用户配置
type UserConfig struct {
	// RegisterIsEnable 注册是否启用
	RegisterIsEnable bool `yaml:"register-is-enable" default:"true"`
}

// AppSettings 应用设置
type AppSettings struct {
	// DefaultContextTimeout 默认上下文超时时间（秒）
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`

	// Worker Pool 配置
	WorkerPoolMaxWorkers int `yaml:"worker-pool-max-workers" default:"16"`
	WorkerPoolQueueSize  int `yaml:"worker-pool-queue-size" default:"256"`

	// Write Queue 配置
	WriteQueueCapacity int    `yaml:"write-queue-capacity" default:"100"`
	WriteQueueTimeout  string `yaml:"write-queue-timeout" default:"30s"`
	WriteQueueIdleTime string `yaml:"write-queue-idle-time" default:"10m"`
}

// TracerConfig 请求追踪配置
type TracerConfig struct {
	// Enabled 是否启用追踪
	Enabled bool `yaml:"enabled" default:"true"`
	// Header 追踪 ID 请求头名称
	Header string `yaml:"header" default:"X-Trace-ID"`
}

// PreviewConfig markdown 预览配置
type PreviewConfig struct {
	AllowUnsafeHTML     bool `yaml:"allow-unsafe-html" default:"false"`
	ExternalLinksNewTab bool `yaml:"external-links-new-tab" default:"true"`
}

// AIConfig AI 上游配置
type AIConfig struct {
	// APIKey 为空时读取 AI_API_KEY，再读取 LOVABLE_API_KEY
	APIKey      string  `yaml:"api-key"`
	BaseURL     string  `yaml:"base-url" default:"https://ai.gateway.lovable.dev/v1"`
	Model       string  `yaml:"model" default:"google/gemini-2.5-flash"`
	Temperature float32 `yaml:"temperature" default:"0.7"`
	Timeout     string  `yaml:"timeout" default:"60s"`
}

// TaskConfig 定时任务配置
type TaskConfig struct {
	// NoteStatsCron note_stats 任务的 cron 表达式
	NoteStatsCron string `yaml:"note-stats-cron" default:"@every 5m"`
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	if err := yaml.Unmarshal(file, c); err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// defaults.Set 只填充零值字段，再执行一次以补齐 YAML 中留空的项
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "re-set default config failed")
	}

	return c, realpath, nil
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}
	if err := os.WriteFile(c.File, data, 0644); err != nil {
		return errors.Wrap(err, "write config file failed")
	}
	return nil
}

// GetWorkerPoolConfig 获取 Worker Pool 配置
func (c *AppConfig) GetWorkerPoolConfig() workerpool.Config {
	cfg := workerpool.DefaultConfig()
	if c.App.WorkerPoolMaxWorkers > 0 {
		cfg.MaxWorkers = c.App.WorkerPoolMaxWorkers
	}
	if c.App.WorkerPoolQueueSize > 0 {
		cfg.QueueSize = c.App.WorkerPoolQueueSize
	}
	return cfg
}

// GetWriteQueueConfig 获取 Write Queue 配置
func (c *AppConfig) GetWriteQueueConfig() writequeue.Config {
	cfg := writequeue.DefaultConfig()
	if c.App.WriteQueueCapacity > 0 {
		cfg.QueueCapacity = c.App.WriteQueueCapacity
	}
	if timeout, err := util.ParseDuration(c.App.WriteQueueTimeout); err == nil {
		cfg.WriteTimeout = timeout
	}
	if idle, err := util.ParseDuration(c.App.WriteQueueIdleTime); err == nil {
		cfg.IdleTimeout = idle
	}
	return cfg
}

// GetTokenExpiry 获取 Token 过期时间
func (c *AppConfig) GetTokenExpiry() time.Duration {
	if expiry, err := util.ParseDuration(c.Security.TokenExpiry); err == nil {
		return expiry
	}
	return 30 * 24 * time.Hour
}

// GetAIAPIKey 配置优先，其次环境变量
func (c *AppConfig) GetAIAPIKey() string {
	if c.AI.APIKey != "" {
		return c.AI.APIKey
	}
	if v := os.Getenv(EnvAIAPIKey); v != "" {
		return v
	}
	return os.Getenv(EnvLovableAPIKey)
}

// GetAITimeout 获取 AI 上游超时
func (c *AppConfig) GetAITimeout() time.Duration {
	if d, err := util.ParseDuration(c.AI.Timeout); err == nil {
		return d
	}
	return 60 * time.Second
}
