package mongo

import (
	"Inkwell/internal/model"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const auditLogCollection = "audit_logs"

// AuditLogRepo MongoDB 中的审计日志集合
type AuditLogRepo interface {
	AppendAuditRecord(ctx context.Context, record *model.AuditLog) error
	ListAuditLogs(ctx context.Context, userID, resourceID string, limit int) ([]*model.AuditLog, error)
}

type auditLogRepoImpl struct {
	col *mongo.Collection
}

func NewAuditLogRepo(db *mongo.Database) AuditLogRepo {
	return &auditLogRepoImpl{
		col: db.Collection(auditLogCollection),
	}
}

// AppendAuditRecord 按 _id 幂等写入，Kafka 重复投递不会产生重复记录
func (s *auditLogRepoImpl) AppendAuditRecord(ctx context.Context, record *model.AuditLog) error {
	_, err := s.col.ReplaceOne(ctx,
		bson.M{"_id": record.ID},
		record,
		options.Replace().SetUpsert(true),
	)
	return err
}

// ListAuditLogs 按时间倒序查询，条件为空则不过滤
func (s *auditLogRepoImpl) ListAuditLogs(ctx context.Context, userID, resourceID string, limit int) ([]*model.AuditLog, error) {
	filter := bson.M{}
	if userID != "" {
		filter["user_id"] = userID
	}
	if resourceID != "" {
		filter["resource_id"] = resourceID
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*model.AuditLog, 0)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func ensureAuditIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(auditLogCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "resource_id", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}
