package workspace

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrEmptyPrompt generate triggered without a prompt
	// ErrEmptyPrompt 未输入提示词
	ErrEmptyPrompt = errors.New("Please enter a prompt")
	// ErrEmptySelection selection action without preview text selected
	// ErrEmptySelection 未在预览区选中文本
	ErrEmptySelection = errors.New("Please select some text first")
	// ErrAssistantBusy another assist call is in flight
	// ErrAssistantBusy 已有请求进行中
	ErrAssistantBusy = errors.New("AI assistant is busy")
	// ErrRateLimited upstream answered 429
	ErrRateLimited = errors.New("Rate limit exceeded. Please try again later.")
	// ErrCreditsExhausted upstream answered 402
	ErrCreditsExhausted = errors.New("AI credits exhausted. Please add credits to continue.")
	// ErrAssistFailed any other assist failure, including an empty result
	// ErrAssistFailed 其他 AI 失败，包括空结果
	ErrAssistFailed = errors.New("AI request failed")
	// ErrAuthRequired no signed-in session
	// ErrAuthRequired 未登录
	ErrAuthRequired = errors.New("You must be signed in")
	// ErrNoteNotFound id is not in the loaded collection
	ErrNoteNotFound = errors.New("note not found")
	// ErrNoNoteSelected
	ErrNoNoteSelected = errors.New("no note selected")
)

// APIError a failed /api envelope
// APIError /api 接口返回的失败响应
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

// Unwrap maps token failures to ErrAuthRequired
// Unwrap 将 Token 相关错误映射为 ErrAuthRequired
func (e *APIError) Unwrap() error {
	switch e.Code {
	case codeNotUserAuthToken, codeInvalidUserAuthToken:
		return ErrAuthRequired
	}
	return nil
}

// 与服务端 pkg/code 保持一致
const (
	codeNotUserAuthToken     = 407
	codeInvalidUserAuthToken = 408
)

// assistError maps a proxy status to the error the assistant surfaces
// assistError 将代理返回的状态码映射为助手错误
func assistError(status int, message string) error {
	switch status {
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusPaymentRequired:
		return ErrCreditsExhausted
	case http.StatusUnauthorized:
		return ErrAuthRequired
	}
	if message == "" {
		return ErrAssistFailed
	}
	return fmt.Errorf("%w: %s", ErrAssistFailed, message)
}
