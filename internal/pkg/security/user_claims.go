package security

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims 外部身份服务签发的 Token 中携带的业务信息，Subject 即 profile ID
type UserClaims struct {
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// UserID 返回 Token 主体
func (c *UserClaims) UserID() string {
	return c.Subject
}
