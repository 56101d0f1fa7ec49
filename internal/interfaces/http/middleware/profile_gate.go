// Package middleware 提供 HTTP 中间件
package middleware

import (
	"net/http"
	"time"

	"report-ai-api/internal/domain/repository"
	"report-ai-api/internal/infrastructure/persistence/redis"
	"report-ai-api/pkg/errors"
	"report-ai-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ProfileGateConfig 资料完整性门禁配置
type ProfileGateConfig struct {
	// Enabled 是否启用门禁
	Enabled bool
	// CacheTTL 完整性判定的缓存时长
	CacheTTL time.Duration
}

// ProfileGate 资料完整性门禁中间件
// 资料不完整的用户禁止访问报告相关接口，判定结果走 Redis 缓存
func ProfileGate(cfg ProfileGateConfig, userRepo repository.UserRepository, cache *redis.Cache) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		userID := GetUserIDFromGin(c)
		if userID == "" {
			abortUnauthorized(c, "missing user identity")
			return
		}

		complete, err := profileComplete(c, cfg, userRepo, cache, userID)
		if err != nil {
			// 判定失败时放行，不让缓存或数据库故障阻断业务
			logger.Warn(ctx, "profile gate check failed", "error", err, "user_id", userID)
			c.Next()
			return
		}

		if !complete {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":     string(errors.CodeProfileIncomplete),
				"message":  "profile must be completed before using reports",
				"trace_id": c.GetString("trace_id"),
			})
			return
		}

		c.Next()
	}
}

// profileComplete 查询资料完整性，优先命中缓存
func profileComplete(c *gin.Context, cfg ProfileGateConfig, userRepo repository.UserRepository, cache *redis.Cache, userID string) (bool, error) {
	ctx := c.Request.Context()

	if cache == nil {
		user, err := userRepo.GetByID(ctx, userID)
		if err != nil {
			return false, err
		}
		if user == nil {
			return false, errors.ErrUserNotFound
		}
		return user.ProfileComplete(), nil
	}

	data, err := cache.GetOrLoadSafe(ctx, redis.ProfileStatusKey(userID), cfg.CacheTTL, func() (interface{}, error) {
		user, err := userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, errors.ErrUserNotFound
		}
		if user.ProfileComplete() {
			return 1, nil
		}
		return 0, nil
	})
	if err != nil {
		return false, err
	}
	return string(data) == "1", nil
}
