package ratelimit

import (
	"Inkwell/internal/pkg/consts"
	"context"
	log "log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// fixedWindowScript 原子地自增计数，首次命中时设置过期
var fixedWindowScript = redis.NewScript(`
local current = redis.call('INCR', KEYS[1])
if current == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return current
`)

// RedisLimiter 通过 Redis 在多实例间共享窗口
type RedisLimiter struct {
	rdb redis.Scripter
}

func NewRedisLimiter(rdb redis.Scripter) *RedisLimiter {
	return &RedisLimiter{rdb: rdb}
}

func (l *RedisLimiter) IsLimited(ctx context.Context, userID, action string, limit int, window time.Duration) bool {
	key := consts.RateLimitKey + Key(userID, action)

	count, err := fixedWindowScript.Run(ctx, l.rdb, []string{key}, window.Milliseconds()).Int64()
	if err != nil {
		log.WarnContext(ctx, "rate limit check failed, allowing request", "key", key, "err", err)
		return false
	}

	return count > int64(limit)
}
