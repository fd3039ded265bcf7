package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/haierkeys/markdown-note-service/pkg/app"
	"github.com/haierkeys/markdown-note-service/pkg/code"
)

func NoFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		app.NewResponse(c).ToResponse(code.ErrorNotFoundAPI)
		c.Abort()
	}
}
