package job

import (
	"Inkwell/internal/pkg/logger"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// Sweeper 可清理过期窗口的限流器
type Sweeper interface {
	Sweep(now time.Time) int
	Len() int
}

// RateLimitSweepJob 定期清理进程内限流表中已过期的窗口
type RateLimitSweepJob struct {
	sweeper Sweeper
}

func NewRateLimitSweepJob(sweeper Sweeper) *RateLimitSweepJob {
	return &RateLimitSweepJob{sweeper: sweeper}
}

func (s *RateLimitSweepJob) Run() {
	traceID := "job-ratelimit-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	removed := s.sweeper.Sweep(time.Now())
	if removed > 0 {
		log.InfoContext(ctx, "rate limit sweep finished", "removed", removed, "remaining", s.sweeper.Len())
	}
}
