package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	qt "github.com/frankban/quicktest"
	"github.com/redis/go-redis/v9"

	"Inkwell/internal/pkg/ratelimit"
)

func newMiniredis(c *qt.C) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(c)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c.Cleanup(func() {
		_ = rdb.Close()
	})
	return mr, rdb
}

func TestRedisLimiter_FixedWindow(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	mr, rdb := newMiniredis(c)
	l := ratelimit.NewRedisLimiter(rdb)

	for i := 0; i < 10; i++ {
		c.Assert(l.IsLimited(ctx, "u1", "create_post", 10, time.Hour), qt.IsFalse)
	}
	c.Assert(l.IsLimited(ctx, "u1", "create_post", 10, time.Hour), qt.IsTrue)
	c.Assert(l.IsLimited(ctx, "u2", "create_post", 10, time.Hour), qt.IsFalse)

	c.Assert(mr.TTL("ratelimit:u1:create_post"), qt.Equals, time.Hour)

	mr.FastForward(time.Hour + time.Second)
	c.Assert(l.IsLimited(ctx, "u1", "create_post", 10, time.Hour), qt.IsFalse)
}

func TestRedisLimiter_FailsOpen(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	mr, rdb := newMiniredis(c)
	l := ratelimit.NewRedisLimiter(rdb)

	mr.Close()
	c.Assert(l.IsLimited(ctx, "u1", "create_post", 0, time.Hour), qt.IsFalse)
}
