package cron

import (
	"Inkwell/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

// 每天凌晨三点校正点赞数
const likeCountSchedule = "0 0 3 * * *"

type Manager struct {
	engine            *cron.Cron
	sweepSchedule     string
	rateLimitSweepJob *job.RateLimitSweepJob
	likeCountJob      *job.LikeCountJob
}

// NewCronManager rateLimitSweepJob 为 nil 时（Redis 限流）不注册清理任务
func NewCronManager(sweepSchedule string, rateLimitSweepJob *job.RateLimitSweepJob, likeCountJob *job.LikeCountJob) *Manager {
	return &Manager{
		engine:            cron.New(cron.WithSeconds()),
		sweepSchedule:     sweepSchedule,
		rateLimitSweepJob: rateLimitSweepJob,
		likeCountJob:      likeCountJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if s.rateLimitSweepJob != nil {
		if _, err := s.engine.AddJob(s.sweepSchedule, s.rateLimitSweepJob); err != nil {
			return err
		}
	}
	if s.likeCountJob != nil {
		if _, err := s.engine.AddJob(likeCountSchedule, s.likeCountJob); err != nil {
			return err
		}
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}
