package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/haierkeys/markdown-note-service/pkg/metrics"
)

// Metrics 记录请求数与耗时，path 使用路由模板避免标签爆炸
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
