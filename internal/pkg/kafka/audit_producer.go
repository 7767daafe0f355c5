package kafka

import (
	"Inkwell/internal/api/config"
	"Inkwell/internal/model"
	"context"
	log "log/slog"
	"sync"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// AuditProducer 将审计记录镜像到 Kafka topic，按 resource_id 分区保证同一资源有序
type AuditProducer struct {
	producer sarama.AsyncProducer
	topic    string
	wg       sync.WaitGroup
}

func NewAuditProducer(kafkaCfg config.KafkaConfig, topic string) (*AuditProducer, error) {
	producer, err := sarama.NewAsyncProducer(kafkaCfg.Brokers, newSaramaConfig(kafkaCfg))
	if err != nil {
		return nil, err
	}
	return NewAuditProducerWith(producer, topic), nil
}

// NewAuditProducerWith 使用已有的 AsyncProducer，测试中传入 mocks
func NewAuditProducerWith(producer sarama.AsyncProducer, topic string) *AuditProducer {
	p := &AuditProducer{
		producer: producer,
		topic:    topic,
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		for perr := range producer.Errors() {
			log.Error("audit record publish failed", "topic", p.topic, "err", perr.Err)
		}
	}()

	return p
}

// AppendAuditRecord 序列化后异步投递，投递结果通过 Errors 通道记录日志
func (p *AuditProducer) AppendAuditRecord(ctx context.Context, record *model.AuditLog) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(record.ResourceID),
		Value: sarama.ByteEncoder(payload),
	}

	select {
	case p.producer.Input() <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close 刷新缓冲并关闭
func (p *AuditProducer) Close() error {
	p.producer.AsyncClose()
	p.wg.Wait()
	return nil
}
