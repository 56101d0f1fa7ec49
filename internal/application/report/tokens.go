package report

import (
	"sync"

	"report-ai-api/pkg/metrics"
)

// TokenTracker 为每个生成槽位维护单调递增的令牌
// 新一轮生成开始时发放新令牌，旧令牌携带的结果到达时被判为过期丢弃
// 槽位键形如 "structure:<reportID>" 或 "content:<reportID>:<paragraphID>"
type TokenTracker struct {
	mu     sync.Mutex
	tokens map[string]uint64
}

func NewTokenTracker() *TokenTracker {
	return &TokenTracker{tokens: make(map[string]uint64)}
}

// Begin 开启新一轮生成，返回本轮令牌
// 此前发放的所有令牌随之失效
func (t *TokenTracker) Begin(slot string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tokens[slot]++
	return t.tokens[slot]
}

// Current 返回槽位当前有效令牌，从未发放过则为 0
func (t *TokenTracker) Current(slot string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tokens[slot]
}

// Valid 判断令牌是否仍是该槽位的最新一轮
// 过期令牌的结果必须丢弃，不得写入报告
func (t *TokenTracker) Valid(slot string, token uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tokens[slot] == token
}

// Discard 记录一次过期结果丢弃
func (t *TokenTracker) Discard(kind string) {
	metrics.GenerationStaleDiscards.WithLabelValues(kind).Inc()
}
