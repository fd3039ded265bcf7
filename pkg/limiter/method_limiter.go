package limiter

import (
	"github.com/gin-gonic/gin"
)

// MethodLimiter limits by request path (query string excluded)
// MethodLimiter 按请求路径限流（不含查询参数）
type MethodLimiter struct {
	*Limiter
}

// NewMethodLimiter creates a path keyed limiter
// NewMethodLimiter 创建按路径限流的限流器
func NewMethodLimiter() Face {
	return MethodLimiter{Limiter: &Limiter{}}
}

func (l MethodLimiter) Key(c *gin.Context) string {
	return c.Request.URL.Path
}

func (l MethodLimiter) AddBuckets(rules ...BucketRule) Face {
	l.addBuckets(rules...)
	return l
}
