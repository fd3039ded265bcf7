package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/haierkeys/markdown-note-service/pkg/logger"
	"github.com/haierkeys/markdown-note-service/pkg/metrics"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	DefaultAIBaseURL     = "https://ai.gateway.lovable.dev/v1"
	DefaultAIModel       = "google/gemini-2.5-flash"
	DefaultAITemperature = 0.7

	MsgAIKeyNotConfigured = "AI API key not configured"
	MsgAIInvalidAction    = "Invalid action"
	MsgAINoContent        = "No content in AI response"
	MsgAIRateLimited      = "Rate limit exceeded. Please try again in a moment."
	MsgAICreditsDepleted  = "AI credits depleted. Please add credits to continue."
	MsgAIInternal         = "Internal server error"
)

// AssistError failure carrying the HTTP status the proxy answers with
// AssistError 携带代理响应状态码的错误
type AssistError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *AssistError) Error() string {
	if e.Message == "" {
		return MsgAIInternal
	}
	return e.Message
}

func (e *AssistError) Unwrap() error {
	return e.Err
}

// TaskSubmitter runs fn with bounded concurrency, satisfied by *workerpool.Pool
// TaskSubmitter 受限并发执行任务，由 *workerpool.Pool 实现
type TaskSubmitter interface {
	Submit(ctx context.Context, fn func(context.Context) error) error
}

// AIService 定义 AI 助手服务接口
type AIService interface {
	// Assist 执行一次对话补全，返回第一条回复文本
	Assist(ctx context.Context, action, content string) (string, error)
}

type aiService struct {
	client  *openai.Client
	config  AIServiceConfig
	pool    TaskSubmitter
	metrics *metrics.Metrics
	logger  *zap.Logger
}

var _ AIService = (*aiService)(nil)

// NewAIService 创建 AIService，未配置密钥时所有调用返回 AI API key not configured
func NewAIService(cfg AIServiceConfig, pool TaskSubmitter, lg *zap.Logger, m *metrics.Metrics) AIService {
	if lg == nil {
		lg = zap.NewNop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultAIBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultAIModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultAITemperature
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	s := &aiService{config: cfg, pool: pool, metrics: m, logger: lg}
	if cfg.APIKey != "" {
		clientConfig := openai.DefaultConfig(cfg.APIKey)
		clientConfig.BaseURL = cfg.BaseURL
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
		s.client = openai.NewClientWithConfig(clientConfig)
	}
	return s
}

// Assist 调用上游模型
func (s *aiService) Assist(ctx context.Context, action, content string) (string, error) {
	if s.client == nil {
		s.metrics.AIRequest(action, "not_configured")
		return "", &AssistError{StatusCode: http.StatusInternalServerError, Message: MsgAIKeyNotConfigured}
	}

	system, user, ok := BuildAssistPrompt(action, content)
	if !ok {
		s.metrics.AIRequest("invalid", "invalid_action")
		return "", &AssistError{StatusCode: http.StatusInternalServerError, Message: MsgAIInvalidAction}
	}

	s.logger.Info("calling AI", zap.String(logger.FieldAction, action), zap.String(logger.FieldModel, s.config.Model), zap.Int(logger.FieldSize, len(content)))
	start := time.Now()

	var resp openai.ChatCompletionResponse
	call := func(ctx context.Context) error {
		var err error
		resp, err = s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: s.config.Model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: user},
			},
			Temperature: s.config.Temperature,
		})
		return err
	}

	var err error
	if s.pool != nil {
		err = s.pool.Submit(ctx, call)
	} else {
		err = call(ctx)
	}
	if err != nil {
		aerr := upstreamError(err)
		s.metrics.AIRequest(action, outcomeOf(aerr.StatusCode))
		s.logger.Error("AI API error", zap.String(logger.FieldAction, action), zap.Int(logger.FieldStatus, aerr.StatusCode), zap.Duration(logger.FieldDuration, time.Since(start)), zap.Error(err))
		return "", aerr
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		s.metrics.AIRequest(action, "empty")
		return "", &AssistError{StatusCode: http.StatusInternalServerError, Message: MsgAINoContent}
	}

	s.metrics.AIRequest(action, "ok")
	s.logger.Info("AI response successful", zap.String(logger.FieldAction, action), zap.Duration(logger.FieldDuration, time.Since(start)))
	return resp.Choices[0].Message.Content, nil
}

// upstreamError maps a client error to the proxy status and message
// upstreamError 将上游错误映射为代理状态码与消息
func upstreamError(err error) *AssistError {
	status, detail := 0, err.Error()

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status, detail = apiErr.HTTPStatusCode, apiErr.Message
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
		// 非 OpenAI 格式的响应体原样带回
		switch {
		case len(reqErr.Body) > 0:
			detail = strings.TrimSpace(string(reqErr.Body))
		case reqErr.Err != nil:
			detail = reqErr.Err.Error()
		}
	}

	switch status {
	case http.StatusTooManyRequests:
		return &AssistError{StatusCode: http.StatusTooManyRequests, Message: MsgAIRateLimited, Err: err}
	case http.StatusPaymentRequired:
		return &AssistError{StatusCode: http.StatusPaymentRequired, Message: MsgAICreditsDepleted, Err: err}
	case 0:
		if detail == "" {
			detail = MsgAIInternal
		}
		return &AssistError{StatusCode: http.StatusInternalServerError, Message: detail, Err: err}
	default:
		return &AssistError{
			StatusCode: http.StatusInternalServerError,
			Message:    fmt.Sprintf("AI API returned %d: %s", status, detail),
			Err:        err,
		}
	}
}

func outcomeOf(status int) string {
	switch status {
	case http.StatusTooManyRequests:
		return "rate_limited"
	case http.StatusPaymentRequired:
		return "credits_depleted"
	default:
		return "upstream_error"
	}
}
