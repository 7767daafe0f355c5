package kafka

import (
	"Inkwell/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理 Kafka 消费者
type ConsumerManager struct {
	auditConsumer sarama.ConsumerGroup
	auditHandler  sarama.ConsumerGroupHandler
	auditTopic    string
}

// NewConsumerManager 构造函数，未开启归档时返回 nil
func NewConsumerManager(cfg *config.Config, archive AuditArchive) (*ConsumerManager, error) {
	if !cfg.Audit.Kafka.Enable || !cfg.Audit.Kafka.Archive.Enable {
		return nil, nil
	}

	auditConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.Audit.Kafka.Archive.GroupID, newSaramaConfig(cfg.Kafka))
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		auditConsumer: auditConsumer,
		auditHandler:  NewAuditArchiveHandler(archive),
		auditTopic:    cfg.Audit.Kafka.Topic,
	}, nil
}

// Start 启动所有消费者，ctx 取消后关闭
func (m *ConsumerManager) Start(ctx context.Context) error {
	go func() {
		for err := range m.auditConsumer.Errors() {
			log.Error("Error from audit consumer group", "err", err)
		}
	}()

	go func() {
		log.Info("Audit archive consumer started", "topic", m.auditTopic)
		for {
			if err := m.auditConsumer.Consume(ctx, []string{m.auditTopic}, m.auditHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.auditConsumer.Close(); err != nil {
		log.Error("Failed to close audit consumer", "err", err)
	}

	return nil
}
