// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import "time"

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	User    UserServiceConfig    // User related config // 用户相关配置
	Preview PreviewServiceConfig // Markdown preview config // 预览相关配置
	AI      AIServiceConfig      // AI assist config // AI 助手配置
}

// UserServiceConfig user service configuration
// UserServiceConfig 用户服务配置
type UserServiceConfig struct {
	RegisterIsEnable bool // Whether registration is enabled // 注册是否启用
}

// PreviewServiceConfig preview renderer configuration
// PreviewServiceConfig 预览渲染配置
type PreviewServiceConfig struct {
	AllowUnsafeHTML     bool // Pass raw HTML through // 是否透传原始 HTML
	ExternalLinksNewTab bool // Open external links in a new tab // 外部链接新标签页打开
}

// AIServiceConfig upstream chat-completions configuration
// AIServiceConfig 上游对话补全配置
type AIServiceConfig struct {
	APIKey      string        // Bearer credential, empty means not configured // 上游密钥，为空表示未配置
	BaseURL     string        // OpenAI-compatible base URL // OpenAI 兼容接口地址
	Model       string        // Model identifier // 模型标识
	Temperature float32       // Sampling temperature // 采样温度
	Timeout     time.Duration // Upstream request timeout // 上游请求超时
}
