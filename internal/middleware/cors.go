package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CorsAllowOrigin  = "*"
	CorsAllowHeaders = "authorization, x-client-info, apikey, content-type"
)

// Cors sets the assist CORS headers on every response and answers preflight with an empty 200
// Cors 为所有响应设置跨域头，预检请求直接返回空 200
func Cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", CorsAllowOrigin)
		c.Header("Access-Control-Allow-Headers", CorsAllowHeaders)

		if c.Request.Method == http.MethodOptions {
			c.Set("status_code", http.StatusOK)
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
