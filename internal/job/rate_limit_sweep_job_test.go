package job_test

import (
	"context"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"Inkwell/internal/job"
	"Inkwell/internal/pkg/ratelimit"
)

func TestRateLimitSweepJob(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	now := time.Now().Add(-2 * time.Hour)
	limiter := ratelimit.NewMemoryLimiter(ratelimit.WithClock(func() time.Time { return now }))

	limiter.IsLimited(ctx, "u1", ratelimit.ActionCreatePost, 10, time.Hour)
	limiter.IsLimited(ctx, "u2", ratelimit.ActionCreatePost, 10, time.Hour)
	c.Assert(limiter.Len(), qt.Equals, 2)

	job.NewRateLimitSweepJob(limiter).Run()
	c.Assert(limiter.Len(), qt.Equals, 0)
}
