package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/haierkeys/markdown-note-service/pkg/app"
	"github.com/haierkeys/markdown-note-service/pkg/code"
	"github.com/haierkeys/markdown-note-service/pkg/limiter"
)

// RateLimiter 按限流器的桶规则拒绝超额请求
func RateLimiter(l limiter.Face) gin.HandlerFunc {
	return func(c *gin.Context) {
		if bucket, ok := l.GetBucket(l.Key(c)); ok {
			if bucket.TakeAvailable(1) == 0 {
				app.NewResponse(c).ToResponse(code.ErrorTooManyRequests)
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
