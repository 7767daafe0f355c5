package ratelimit

import (
	"context"
	log "log/slog"
	"sync"
	"time"
)

// Entry 一个固定窗口
type Entry struct {
	Count     int
	ResetTime time.Time
}

// MemoryLimiter 进程内窗口表，重启丢失，多实例间不共享
type MemoryLimiter struct {
	mu         sync.Mutex
	entries    map[string]*Entry
	maxEntries int
	now        func() time.Time
}

type MemoryOption func(*MemoryLimiter)

// WithClock 替换时钟，测试用
func WithClock(now func() time.Time) MemoryOption {
	return func(l *MemoryLimiter) {
		l.now = now
	}
}

// WithMaxEntries 限制窗口表大小，0 表示不限
func WithMaxEntries(n int) MemoryOption {
	return func(l *MemoryLimiter) {
		l.maxEntries = n
	}
}

func NewMemoryLimiter(opts ...MemoryOption) *MemoryLimiter {
	l := &MemoryLimiter{
		entries: make(map[string]*Entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *MemoryLimiter) IsLimited(ctx context.Context, userID, action string, limit int, window time.Duration) bool {
	key := Key(userID, action)
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[key]
	if !ok || now.After(entry.ResetTime) {
		if !ok {
			l.makeRoomLocked(ctx, now)
		}
		l.entries[key] = &Entry{Count: 1, ResetTime: now.Add(window)}
		return false
	}

	if entry.Count >= limit {
		return true
	}

	entry.Count++
	return false
}

// Sweep 清理已过期的窗口，返回清理数量
func (l *MemoryLimiter) Sweep(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sweepLocked(now)
}

func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *MemoryLimiter) sweepLocked(now time.Time) int {
	removed := 0
	for key, entry := range l.entries {
		if now.After(entry.ResetTime) {
			delete(l.entries, key)
			removed++
		}
	}
	return removed
}

func (l *MemoryLimiter) makeRoomLocked(ctx context.Context, now time.Time) {
	if l.maxEntries <= 0 || len(l.entries) < l.maxEntries {
		return
	}
	if l.sweepLocked(now) > 0 {
		return
	}

	// 全部窗口都未过期时，淘汰最早到期的一个
	var oldestKey string
	var oldest time.Time
	for key, entry := range l.entries {
		if oldestKey == "" || entry.ResetTime.Before(oldest) {
			oldestKey, oldest = key, entry.ResetTime
		}
	}
	delete(l.entries, oldestKey)
	log.WarnContext(ctx, "rate limit table full, evicted window", "key", oldestKey, "max_entries", l.maxEntries)
}
