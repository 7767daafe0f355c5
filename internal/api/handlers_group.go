package api

import (
	"Inkwell/internal/api/handler"
	"Inkwell/internal/pkg/security"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	PostHandler     *handler.PostHandler
	CommentHandler  *handler.CommentHandler
	LikeHandler     *handler.LikeHandler
	ProfileHandler  *handler.ProfileHandler
	TagHandler      *handler.TagHandler
	AuditLogHandler *handler.AuditLogHandler

	TokenVerifier *security.TokenVerifier
}
