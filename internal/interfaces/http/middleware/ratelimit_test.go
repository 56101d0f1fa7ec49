package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLimiter 记录每次放行判定的参数
type captureLimiter struct {
	keys    []string
	limits  []int
	windows []time.Duration
	allow   bool
}

func (l *captureLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	l.keys = append(l.keys, key)
	l.limits = append(l.limits, limit)
	l.windows = append(l.windows, window)
	return l.allow, nil
}

func newRateLimitTestEngine(cfg RateLimitConfig, limiter RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(cfg, limiter))
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/v1/reports", ok)
	r.POST("/v1/reports/:rid/generate", ok)
	return r
}

func TestRateLimit_Windows(t *testing.T) {
	limiter := &captureLimiter{allow: true}
	r := newRateLimitTestEngine(RateLimitConfig{
		Enabled:             true,
		RequestsPerSecond:   50,
		GenerationPerMinute: 3,
	}, limiter)

	t.Run("普通接口使用秒级窗口", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/reports", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		require.Len(t, limiter.limits, 1)
		assert.Equal(t, 50, limiter.limits[0])
		assert.Equal(t, time.Second, limiter.windows[0])
	})

	t.Run("生成接口使用配置的分钟级上限", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/reports/r1/generate", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		require.Len(t, limiter.limits, 2)
		assert.Equal(t, 3, limiter.limits[1])
		assert.Equal(t, time.Minute, limiter.windows[1])
	})
}

func TestRateLimit_Exceeded(t *testing.T) {
	limiter := &captureLimiter{allow: false}
	r := newRateLimitTestEngine(RateLimitConfig{
		Enabled:             true,
		RequestsPerSecond:   50,
		GenerationPerMinute: 3,
	}, limiter)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/reports/r1/generate", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimit_DefaultGenerationLimit(t *testing.T) {
	limiter := &captureLimiter{allow: true}
	r := newRateLimitTestEngine(RateLimitConfig{
		Enabled:           true,
		RequestsPerSecond: 50,
	}, limiter)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/reports/r1/generate", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	require.Len(t, limiter.limits, 1)
	assert.Equal(t, 10, limiter.limits[0])
	assert.Equal(t, time.Minute, limiter.windows[0])
}
