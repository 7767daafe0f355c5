package kafka

import (
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"golang.org/x/sync/errgroup"
)

const (
	batchSize        = 32
	batchTimeout     = 1 * time.Second
	batchConcurrency = 8

	retryBase     = 100 * time.Millisecond
	retryMax      = 5 * time.Second
	retryAttempts = 6
)

type LogicFunc func(ctx context.Context, msg *sarama.ConsumerMessage) error

// pullMessageBatch 按数量或超时攒批，每批处理完后提交位点
func pullMessageBatch(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic LogicFunc) error {
	batch := make([]*sarama.ConsumerMessage, 0, batchSize)
	ticker := time.NewTicker(batchTimeout)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		processBatch(session, batch, logic)
		batch = batch[:0]
	}

	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				flush()
				return nil
			}
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				flush()
				ticker.Reset(batchTimeout)
			}
		case <-ticker.C:
			flush()
		case <-session.Context().Done():
			return nil
		}
	}
}

// processBatch 并发处理一批消息
// 归档按 id 幂等，超过重试次数的消息记录错误后跳过，避免阻塞分区
func processBatch(session sarama.ConsumerGroupSession, messages []*sarama.ConsumerMessage, logic LogicFunc) {
	ctx := session.Context()
	var g errgroup.Group
	g.SetLimit(batchConcurrency)

	for _, msg := range messages {
		g.Go(func() error {
			if err := withRetry(ctx, func() error { return logic(ctx, msg) }); err != nil {
				log.Error("drop audit message after retries",
					"topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset, "err", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	if ctx.Err() == nil {
		session.MarkMessage(messages[len(messages)-1], "")
		session.Commit()
	}
}

// withRetry 指数退避重试，ctx 取消时立即返回
func withRetry(ctx context.Context, fn func() error) error {
	interval := retryBase
	var err error
	for attempt := 1; attempt <= retryAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == retryAttempts {
			break
		}
		log.Warn("audit message failed, retrying", "attempt", attempt, "err", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
		interval = min(interval*2, retryMax)
	}
	return err
}
