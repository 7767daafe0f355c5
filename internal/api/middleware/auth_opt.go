package middleware

import (
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/security"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：解析成功注入用户 ID，失败或缺失则为空字符串
func AuthOptionalMiddleware(verifier *security.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Set(consts.UserIDKey, "")
			c.Next()
			return
		}

		claims, err := verifier.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.Set(consts.UserIDKey, "")
		} else {
			setIdentity(c, claims)
		}

		c.Next()
	}
}
