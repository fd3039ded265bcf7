package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/haierkeys/markdown-note-service/pkg/app"
	"github.com/haierkeys/markdown-note-service/pkg/code"
	"github.com/haierkeys/markdown-note-service/pkg/logger"
	"go.uber.org/zap"
)

// RecoveryWithLogger 捕获 panic，记录日志并返回统一错误响应
func RecoveryWithLogger(lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			var errorMsg string
			switch v := r.(type) {
			case error:
				errorMsg = v.Error()
			default:
				errorMsg = fmt.Sprintf("%v", v)
			}

			lg.Error("Recovered from panic",
				zap.String("router", c.Request.URL.Path),
				zap.String(logger.FieldMethod, c.Request.Method),
				zap.String("query", c.Request.URL.RawQuery),
				zap.String("ip", c.ClientIP()),
				zap.String(logger.FieldTraceID, GetTraceIDFromGin(c)),
				zap.String("panic", errorMsg),
				zap.Stack("stack"),
			)

			app.NewResponse(c).ToResponse(code.ErrorServerInternal.WithDetails(errorMsg))
			c.Abort()
		}()

		c.Next()
	}
}
