package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/haierkeys/markdown-note-service/pkg/app"
	"github.com/haierkeys/markdown-note-service/pkg/code"
)

// ContextTimeout bounds the request context; handlers that hit the deadline without writing get ErrorRequestTimeout
// ContextTimeout 限制请求 context 时长，处理超时且未写响应时返回 ErrorRequestTimeout
func ContextTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			app.NewResponse(c).ToResponse(code.ErrorRequestTimeout)
		}
	}
}
