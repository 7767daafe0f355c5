package job

import (
	"Inkwell/internal/pkg/logger"
	"Inkwell/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// LikeCountJob 按 likes 表校正帖子的 like_count
type LikeCountJob struct {
	likeRepo repository.LikeRepo
}

func NewLikeCountJob(likeRepo repository.LikeRepo) *LikeCountJob {
	return &LikeCountJob{likeRepo: likeRepo}
}

func (s *LikeCountJob) Run() {
	traceID := "job-like-count-" + uuid.NewString()
	ctx, cancel := context.WithTimeout(context.WithValue(context.Background(), logger.TraceIDKey, traceID), 5*time.Minute)
	defer cancel()

	fixed, err := s.likeRepo.ReconcileLikeCounts(ctx)
	if err != nil {
		log.ErrorContext(ctx, "reconcile like counts error", "err", err)
		return
	}
	log.InfoContext(ctx, "like count reconcile finished", "fixed", fixed)
}
