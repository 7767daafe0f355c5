// Package ratelimit 按 (用户, 动作) 做固定窗口计数限流。
//
// 某个 key 的第一次调用开启窗口，窗口内计数达到上限后拒绝后续调用，直到窗口过期。
// 限流只是建议性的，存储不可用时放行。
package ratelimit

import (
	"context"
	"time"
)

const (
	ActionReadPost      = "read_post"
	ActionCreatePost    = "create_post"
	ActionUpdatePost    = "update_post"
	ActionCreateComment = "create_comment"
	ActionToggleLike    = "toggle_like"
)

// Limiter 判断 (用户, 动作) 当前窗口是否已耗尽
type Limiter interface {
	IsLimited(ctx context.Context, userID, action string, limit int, window time.Duration) bool
}

// Policy 单个动作的配额
type Policy struct {
	Limit  int
	Window time.Duration
}

// DefaultPolicies 配置缺失时使用的默认配额
var DefaultPolicies = map[string]Policy{
	ActionReadPost:      {Limit: 1000, Window: time.Hour},
	ActionCreatePost:    {Limit: 10, Window: time.Hour},
	ActionUpdatePost:    {Limit: 50, Window: time.Hour},
	ActionCreateComment: {Limit: 30, Window: time.Hour},
	ActionToggleLike:    {Limit: 300, Window: time.Hour},
}

type Policies map[string]Policy

// For 返回动作配额，依次回退到 DefaultPolicies 与每小时 100 次
func (p Policies) For(action string) Policy {
	if policy, ok := p[action]; ok && policy.Limit > 0 && policy.Window > 0 {
		return policy
	}
	if policy, ok := DefaultPolicies[action]; ok {
		return policy
	}
	return Policy{Limit: 100, Window: time.Hour}
}

// Key 窗口键 "{userId}:{action}"
func Key(userID, action string) string {
	return userID + ":" + action
}
