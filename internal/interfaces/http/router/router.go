// Package router 提供 HTTP 路由配置
package router

import (
	"report-ai-api/internal/config"
	"report-ai-api/internal/domain/repository"
	"report-ai-api/internal/infrastructure/persistence/redis"
	"report-ai-api/internal/interfaces/http/handler"
	"report-ai-api/internal/interfaces/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterHandlers 路由所需的全部处理器
type RouterHandlers struct {
	Auth       *handler.AuthHandler
	Health     *handler.HealthHandler
	User       *handler.UserHandler
	Report     *handler.ReportHandler
	Paragraph  *handler.ParagraphHandler
	Reference  *handler.ReferenceHandler
	Generation *handler.GenerationHandler
	Export     *handler.ExportHandler
}

// Router HTTP 路由器
type Router struct {
	engine   *gin.Engine
	cfg      *config.Config
	handlers RouterHandlers
	limiter  middleware.RateLimiter
	userRepo repository.UserRepository
	cache    *redis.Cache
}

// NewWithDeps 创建带依赖的路由器
func NewWithDeps(
	cfg *config.Config,
	handlers RouterHandlers,
	limiter middleware.RateLimiter,
	userRepo repository.UserRepository,
	cache *redis.Cache,
) *Router {
	// 设置 Gin 模式
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	r := &Router{
		engine:   engine,
		cfg:      cfg,
		handlers: handlers,
		limiter:  limiter,
		userRepo: userRepo,
		cache:    cache,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// setupMiddleware 配置中间件
func (r *Router) setupMiddleware() {
	// 基础中间件
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())

	// CORS 中间件
	r.engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: r.cfg.Security.CORS.AllowedOrigins,
		AllowedMethods: r.cfg.Security.CORS.AllowedMethods,
		AllowedHeaders: r.cfg.Security.CORS.AllowedHeaders,
	}))

	// 追踪中间件
	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name))
		r.engine.Use(middleware.TraceContext())
	}

	// 指标中间件
	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
	}

	// 认证中间件（认证端点与系统端点跳过）
	skipPaths := append([]string{}, middleware.DefaultSkipPaths...)
	skipPaths = append(skipPaths, "/v1/auth")
	r.engine.Use(middleware.Auth(middleware.AuthConfig{
		Secret:          r.cfg.Security.JWT.Secret,
		Issuer:          r.cfg.Security.JWT.Issuer,
		RefreshLeadTime: r.cfg.Security.JWT.RefreshLeadTime,
		SkipPaths:       skipPaths,
		Enabled:         true,
	}))

	// 限流中间件（在认证之后，以便按用户限流）
	r.engine.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Enabled:             r.cfg.Security.RateLimit.Enabled,
		RequestsPerSecond:   r.cfg.Security.RateLimit.RequestsPerSecond,
		Burst:               r.cfg.Security.RateLimit.Burst,
		GenerationPerMinute: r.cfg.Security.RateLimit.GenerationPerMinute,
	}, r.limiter))
}

// setupRoutes 配置路由
func (r *Router) setupRoutes() {
	// 系统端点
	r.engine.GET("/health", r.handlers.Health.Health)
	r.engine.GET("/ready", r.handlers.Health.Ready)
	r.engine.GET("/live", r.handlers.Health.Live)

	// Prometheus 指标端点
	if r.cfg.Observability.Metrics.Enabled {
		r.engine.GET(r.cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// 报告相关接口要求资料完整
	profileGate := middleware.ProfileGate(middleware.ProfileGateConfig{
		Enabled:  r.cfg.Features.ProfileGate.Enabled,
		CacheTTL: r.cfg.Features.ProfileGate.CacheTTL,
	}, r.userRepo, r.cache)

	// API v1 路由组
	v1 := r.engine.Group("/v1")
	RegisterV1Routes(v1, r.handlers, profileGate)
}
