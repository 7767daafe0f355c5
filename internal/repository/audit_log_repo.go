package repository

import (
	"Inkwell/internal/model"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type AuditLogRepo interface {
	AppendAuditRecord(ctx context.Context, record *model.AuditLog) error
	ListAuditLogs(ctx context.Context, userID, resourceID string, limit int) ([]*model.AuditLog, error)
}

type AuditLogRepoImpl struct {
	db *gorm.DB
}

func NewAuditLogRepo(db *gorm.DB) AuditLogRepo {
	return &AuditLogRepoImpl{db: db}
}

func (s *AuditLogRepoImpl) AppendAuditRecord(ctx context.Context, record *model.AuditLog) error {
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return errors.Wrap(err, "append audit record")
	}
	return nil
}

// ListAuditLogs 按时间倒序，userID/resourceID 为空时不作为过滤条件
func (s *AuditLogRepoImpl) ListAuditLogs(ctx context.Context, userID, resourceID string, limit int) ([]*model.AuditLog, error) {
	logs := make([]*model.AuditLog, 0)
	query := s.db.WithContext(ctx).Model(&model.AuditLog{})
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if resourceID != "" {
		query = query.Where("resource_id = ?", resourceID)
	}
	if err := query.Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, errors.Wrap(err, "list audit logs")
	}
	return logs, nil
}
