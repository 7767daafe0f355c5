package cron_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"Inkwell/internal/job"
	"Inkwell/internal/pkg/cron"
	"Inkwell/internal/pkg/ratelimit"
)

func TestManager_RegisterJobs(t *testing.T) {
	c := qt.New(t)
	sweep := job.NewRateLimitSweepJob(ratelimit.NewMemoryLimiter())

	mgr := cron.NewCronManager("@every 1m", sweep, nil)
	c.Assert(cron.InitCron(mgr), qt.IsNil)
	mgr.Stop()

	mgr = cron.NewCronManager("not a schedule", sweep, nil)
	c.Assert(mgr.RegisterJobs(), qt.Not(qt.IsNil))

	// Redis 限流时没有清理任务，调度表达式不会被解析
	mgr = cron.NewCronManager("not a schedule", nil, nil)
	c.Assert(mgr.RegisterJobs(), qt.IsNil)
}
