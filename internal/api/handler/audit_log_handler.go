package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

type AuditLogHandler struct {
	auditLogger service.AuditLogger
}

func NewAuditLogHandler(auditLogger service.AuditLogger) *AuditLogHandler {
	return &AuditLogHandler{auditLogger: auditLogger}
}

// ListAuditLogs 版主查询审计日志
func (s *AuditLogHandler) ListAuditLogs(c *gin.Context) {
	var query dto.AuditLogQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&query); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	logs, err := s.auditLogger.ListAuditLogs(c.Request.Context(), c.GetString(consts.UserIDKey), query.UserID, query.ResourceID, query.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, logs)
}
