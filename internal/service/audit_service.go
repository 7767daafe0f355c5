package service

import (
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/logger"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// AuditSink 审计记录的写入端：MySQL、MongoDB 或 Kafka
type AuditSink interface {
	AppendAuditRecord(ctx context.Context, record *model.AuditLog) error
}

// AuditReader 审计记录的查询端
type AuditReader interface {
	ListAuditLogs(ctx context.Context, userID, resourceID string, limit int) ([]*model.AuditLog, error)
}

// AuditLogger 写入失败只记日志，不影响主流程
type AuditLogger interface {
	LogAction(ctx context.Context, userID, action, resource, resourceID string, details map[string]any)
	ListAuditLogs(ctx context.Context, actorID, userID, resourceID string, limit int) ([]*model.AuditLog, error)
}

type auditLoggerImpl struct {
	permissionSvc PermissionService
	reader        AuditReader
	sinks         []AuditSink
	now           func() time.Time
}

func NewAuditLogger(permissionSvc PermissionService, reader AuditReader, sinks ...AuditSink) AuditLogger {
	return &auditLoggerImpl{
		permissionSvc: permissionSvc,
		reader:        reader,
		sinks:         sinks,
		now:           time.Now,
	}
}

func (s *auditLoggerImpl) LogAction(ctx context.Context, userID, action, resource, resourceID string, details map[string]any) {
	record := &model.AuditLog{
		ID:         uuid.NewString(),
		UserID:     userID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Details:    details,
		IPAddress:  contextString(ctx, consts.ClientIPKey),
		UserAgent:  contextString(ctx, consts.UserAgentKey),
		TraceID:    logger.TraceID(ctx),
		CreatedAt:  s.now(),
	}

	// 请求结束或客户端断开不应丢失审计记录
	writeCtx := context.WithoutCancel(ctx)
	for _, sink := range s.sinks {
		if err := sink.AppendAuditRecord(writeCtx, record); err != nil {
			log.ErrorContext(ctx, "failed to write audit record",
				"action", action,
				"resource", resource,
				"resource_id", resourceID,
				"err", err,
			)
		}
	}
}

// ListAuditLogs 仅版主与管理员可查询
func (s *auditLoggerImpl) ListAuditLogs(ctx context.Context, actorID, userID, resourceID string, limit int) ([]*model.AuditLog, error) {
	ok, err := s.permissionSvc.CanModerate(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAccessDenied
	}

	if limit <= 0 {
		limit = consts.DefaultAuditLogLimit
	}
	if limit > consts.MaxAuditLogLimit {
		limit = consts.MaxAuditLogLimit
	}

	logs, err := s.reader.ListAuditLogs(ctx, userID, resourceID, limit)
	if err != nil {
		return nil, persistenceErr("list audit logs", err)
	}
	return logs, nil
}

func contextString(ctx context.Context, key string) string {
	value, _ := ctx.Value(key).(string)
	return value
}
