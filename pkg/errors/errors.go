// Package errors turns service errors into the unified error envelope
// Package errors 将服务层错误转换为统一错误响应
package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/haierkeys/markdown-note-service/internal/middleware"
	"github.com/haierkeys/markdown-note-service/pkg/code"
)

// AppError error envelope with the request trace id
// AppError 带请求追踪 ID 的错误响应
type AppError struct {
	Code    int    `json:"code"`
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	TraceID string `json:"traceId,omitempty"`
	// Cause 原始错误，不输出
	Cause error `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError 从 Code 创建 AppError
func NewAppError(c *code.Code, cause error) *AppError {
	return &AppError{
		Code:    c.Code(),
		Status:  c.Status(),
		Message: c.Msg(),
		Details: strings.Join(c.Details(), ","),
		Cause:   cause,
	}
}

// FromError resolves err to an AppError
// FromError 将任意错误解析为 AppError
// *AppError and *code.Code anywhere in the chain keep their code, everything else becomes ErrorServerInternal
// 错误链中的 *AppError 与 *code.Code 保留原错误码，其他错误统一为 ErrorServerInternal
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		return NewAppError(codeErr, err)
	}

	return NewAppError(code.ErrorServerInternal, err)
}

// ErrorResponse writes err as the error envelope
// ErrorResponse 输出统一错误响应
func ErrorResponse(c *gin.Context, err error) {
	appErr := FromError(err)
	appErr.TraceID = middleware.GetTraceIDFromGin(c)

	c.Set("status_code", http.StatusOK)
	c.JSON(http.StatusOK, appErr)
}
