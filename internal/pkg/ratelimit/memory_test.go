package ratelimit_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"Inkwell/internal/pkg/ratelimit"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	for _, limit := range []int{1, 2, 10, 50} {
		t.Run(fmt.Sprintf("limit %d", limit), func(t *testing.T) {
			c := qt.New(t)
			ctx := context.Background()
			clock := newFakeClock()
			l := ratelimit.NewMemoryLimiter(ratelimit.WithClock(clock.Now))

			for i := 0; i < limit; i++ {
				c.Assert(l.IsLimited(ctx, "u1", "create_post", limit, time.Hour), qt.IsFalse, qt.Commentf("call %d", i+1))
			}
			c.Assert(l.IsLimited(ctx, "u1", "create_post", limit, time.Hour), qt.IsTrue)
			c.Assert(l.IsLimited(ctx, "u1", "create_post", limit, time.Hour), qt.IsTrue)

			// 窗口边界时刻仍属于当前窗口
			clock.Advance(time.Hour)
			c.Assert(l.IsLimited(ctx, "u1", "create_post", limit, time.Hour), qt.IsTrue)

			clock.Advance(time.Millisecond)
			c.Assert(l.IsLimited(ctx, "u1", "create_post", limit, time.Hour), qt.IsFalse)
		})
	}
}

func TestMemoryLimiter_KeysAreIndependent(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	l := ratelimit.NewMemoryLimiter()

	c.Assert(l.IsLimited(ctx, "u1", "create_post", 1, time.Hour), qt.IsFalse)
	c.Assert(l.IsLimited(ctx, "u1", "create_post", 1, time.Hour), qt.IsTrue)

	c.Assert(l.IsLimited(ctx, "u1", "update_post", 1, time.Hour), qt.IsFalse)
	c.Assert(l.IsLimited(ctx, "u2", "create_post", 1, time.Hour), qt.IsFalse)
}

func TestMemoryLimiter_Sweep(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	clock := newFakeClock()
	l := ratelimit.NewMemoryLimiter(ratelimit.WithClock(clock.Now))

	l.IsLimited(ctx, "u1", "read_post", 10, time.Minute)
	l.IsLimited(ctx, "u2", "read_post", 10, time.Hour)
	c.Assert(l.Len(), qt.Equals, 2)

	clock.Advance(2 * time.Minute)
	c.Assert(l.Sweep(clock.Now()), qt.Equals, 1)
	c.Assert(l.Len(), qt.Equals, 1)
}

func TestMemoryLimiter_MaxEntries(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	clock := newFakeClock()
	l := ratelimit.NewMemoryLimiter(ratelimit.WithClock(clock.Now), ratelimit.WithMaxEntries(2))

	l.IsLimited(ctx, "u1", "read_post", 1, time.Minute)
	clock.Advance(time.Second)
	l.IsLimited(ctx, "u2", "read_post", 1, time.Minute)
	clock.Advance(time.Second)
	l.IsLimited(ctx, "u3", "read_post", 1, time.Minute)
	c.Assert(l.Len(), qt.Equals, 2)

	// u1 的窗口最早到期，已被淘汰，重新开窗
	c.Assert(l.IsLimited(ctx, "u1", "read_post", 1, time.Minute), qt.IsFalse)
	c.Assert(l.Len(), qt.Equals, 2)
}

func TestMemoryLimiter_Concurrent(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	l := ratelimit.NewMemoryLimiter()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !l.IsLimited(ctx, "u1", "toggle_like", 25, time.Hour) {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	c.Assert(allowed, qt.Equals, 25)
}

func TestPolicies_For(t *testing.T) {
	c := qt.New(t)

	p := ratelimit.Policies{
		"create_post": {Limit: 3, Window: time.Minute},
		"broken":      {Limit: 0, Window: time.Minute},
	}

	c.Assert(p.For("create_post"), qt.Equals, ratelimit.Policy{Limit: 3, Window: time.Minute})
	c.Assert(p.For("read_post"), qt.Equals, ratelimit.Policy{Limit: 1000, Window: time.Hour})
	c.Assert(p.For("broken"), qt.Equals, ratelimit.Policy{Limit: 100, Window: time.Hour})
	c.Assert(p.For("unknown"), qt.Equals, ratelimit.Policy{Limit: 100, Window: time.Hour})
}
