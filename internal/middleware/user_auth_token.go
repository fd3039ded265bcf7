package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/haierkeys/markdown-note-service/pkg/app"
	"github.com/haierkeys/markdown-note-service/pkg/code"
)

// requestToken reads the token from query or header, authorization first
// requestToken 依次从查询参数与请求头读取 Token，authorization 优先
func requestToken(c *gin.Context) string {
	var token string
	if s, exist := c.GetQuery("authorization"); exist {
		token = s
	} else if s := c.GetHeader("Authorization"); s != "" {
		token = s
	} else if s, exist := c.GetQuery("token"); exist {
		token = s
	} else if s := c.GetHeader("Token"); s != "" {
		token = s
	}

	token = strings.TrimSpace(token)
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return token
}

// UserAuthTokenWithConfig rejects requests without a valid user token
// UserAuthTokenWithConfig 拒绝没有有效用户 Token 的请求
func UserAuthTokenWithConfig(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := app.NewResponse(c)

		token := requestToken(c)
		if token == "" {
			response.ToResponse(code.ErrorNotUserAuthToken)
			c.Abort()
			return
		}

		if err := app.SetTokenToContextWithKey(c, token, secretKey); err != nil {
			response.ToResponse(code.ErrorInvalidUserAuthToken)
			c.Abort()
			return
		}

		c.Next()
	}
}

// OptionalUserAuthToken attaches the user when a valid token is present and never rejects
// OptionalUserAuthToken 携带有效 Token 时写入用户信息，不拒绝请求
func OptionalUserAuthToken(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := requestToken(c); token != "" {
			_ = app.SetTokenToContextWithKey(c, token, secretKey)
		}
		c.Next()
	}
}
