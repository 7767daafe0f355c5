package kafka

import (
	"Inkwell/internal/model"
	"context"
	"errors"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// AuditArchive 审计归档存储
type AuditArchive interface {
	AppendAuditRecord(ctx context.Context, record *model.AuditLog) error
}

// AuditArchiveHandler 消费审计 topic 并写入归档存储
type AuditArchiveHandler struct {
	archive AuditArchive
}

func NewAuditArchiveHandler(archive AuditArchive) *AuditArchiveHandler {
	return &AuditArchiveHandler{
		archive: archive,
	}
}

func (s *AuditArchiveHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("audit archive consumer setup")
	return nil
}

func (s *AuditArchiveHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("audit archive consumer cleanup")
	return nil
}

func (s *AuditArchiveHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	if err := pullMessageBatch(session, claim, s.logic); err != nil {
		log.Error("topic-audit process batch error", "err", err)
		return err
	}
	return nil
}

func (s *AuditArchiveHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	record, err := ToAuditRecord(msg)
	if err != nil {
		// 格式错误的消息重试无意义，直接跳过
		log.Error("skip malformed audit message", "offset", msg.Offset, "partition", msg.Partition, "err", err)
		return nil
	}
	return s.archive.AppendAuditRecord(ctx, record)
}

// ToAuditRecord 将 kafka 消息转换为审计记录
func ToAuditRecord(msg *sarama.ConsumerMessage) (*model.AuditLog, error) {
	var record model.AuditLog
	if err := json.Unmarshal(msg.Value, &record); err != nil {
		return nil, err
	}
	if record.ID == "" {
		return nil, errors.New("audit record has no id")
	}
	return &record, nil
}
