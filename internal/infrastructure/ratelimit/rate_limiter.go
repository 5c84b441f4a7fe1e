package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter 请求QPS限制器
// 用于HTTP入口的全局限流,保护渲染与文件读取不被打爆
type RateLimiter struct {
	mu      sync.RWMutex
	limiter *rate.Limiter
	qps     int
}

// NewRateLimiter 创建限制器
// qps为0或负数表示不限制
func NewRateLimiter(qps int) *RateLimiter {
	return &RateLimiter{
		limiter: newLimiter(qps),
		qps:     normalizeQPS(qps),
	}
}

// Allow 非阻塞检查是否放行当前请求
func (r *RateLimiter) Allow() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.limiter.Allow()
}

// Wait 阻塞等待令牌,ctx取消时返回错误
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.RLock()
	l := r.limiter
	r.mu.RUnlock()

	return l.Wait(ctx)
}

// SetQPS 运行时调整限流值
func (r *RateLimiter) SetQPS(qps int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.limiter = newLimiter(qps)
	r.qps = normalizeQPS(qps)
}

// GetQPS 返回当前限流值,0表示不限制
func (r *RateLimiter) GetQPS() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.qps
}

func newLimiter(qps int) *rate.Limiter {
	if qps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	// 令牌桶容量等于QPS,允许短时突发
	return rate.NewLimiter(rate.Limit(qps), qps)
}

func normalizeQPS(qps int) int {
	if qps < 0 {
		return 0
	}
	return qps
}
