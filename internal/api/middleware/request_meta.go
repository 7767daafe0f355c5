package middleware

import (
	"Inkwell/internal/pkg/consts"
	"context"

	"github.com/gin-gonic/gin"
)

// RequestMetaMiddleware 将客户端 IP 与 User-Agent 写入 Context，供审计日志使用
func RequestMetaMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithValue(c.Request.Context(), consts.ClientIPKey, c.ClientIP())
		ctx = context.WithValue(ctx, consts.UserAgentKey, c.Request.UserAgent())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
