// Package wire 提供依赖注入配置
package wire

import (
	"github.com/google/wire"

	"report-ai-api/internal/application/export"
	"report-ai-api/internal/application/report"
	"report-ai-api/internal/config"
	"report-ai-api/internal/domain/repository"
	"report-ai-api/internal/infrastructure/llm"
	"report-ai-api/internal/infrastructure/persistence/postgres"
	"report-ai-api/internal/infrastructure/persistence/redis"
	"report-ai-api/internal/interfaces/http/handler"
	"report-ai-api/internal/interfaces/http/middleware"
	"report-ai-api/internal/interfaces/http/router"
	"report-ai-api/internal/workflow/chain"
	workflowport "report-ai-api/internal/workflow/port"
	"report-ai-api/pkg/utils"
)

// DataLayer 数据层依赖容器
type DataLayer struct {
	// PostgreSQL
	PgClient   *postgres.Client
	TxManager  *postgres.TxManager
	UserRepo   *postgres.UserRepository
	ReportRepo *postgres.ReportRepository
	FileRepo   *postgres.ReferenceFileRepository

	// Redis
	RedisClient *redis.Client
	Cache       *redis.Cache
	RateLimiter *redis.RateLimiter
}

// PostgresSet PostgreSQL 提供者集合
var PostgresSet = wire.NewSet(
	ProvidePostgresClient,
	postgres.NewTxManager,
	postgres.NewUserRepository,
	postgres.NewReportRepository,
	postgres.NewReferenceFileRepository,
)

// RedisSet Redis 提供者集合
var RedisSet = wire.NewSet(
	ProvideRedisClient,
	redis.NewCache,
	redis.NewRateLimiter,
	wire.Bind(new(middleware.RateLimiter), new(*redis.RateLimiter)),
)

// RepoSet 整合了具体实现与接口绑定的集合
var RepoSet = wire.NewSet(
	PostgresSet,
	// 接口绑定
	wire.Bind(new(repository.Transactor), new(*postgres.TxManager)),
	wire.Bind(new(repository.UserRepository), new(*postgres.UserRepository)),
	wire.Bind(new(repository.ReportRepository), new(*postgres.ReportRepository)),
	wire.Bind(new(repository.ReferenceFileRepository), new(*postgres.ReferenceFileRepository)),
)

// GenerationSet 生成侧提供者集合
var GenerationSet = wire.NewSet(
	llm.NewEinoFactory,
	wire.Bind(new(workflowport.ChatModelFactory), new(*llm.EinoFactory)),
	chain.NewStructureChain,
	chain.NewContentChain,
	report.NewTokenTracker,
	ProvideGenerateService,
	export.NewExporter,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	ProvideJWTManager,
	handler.NewAuthHandler,
	handler.NewHealthHandler,
	handler.NewUserHandler,
	handler.NewReportHandler,
	handler.NewParagraphHandler,
	ProvideReferenceHandler,
	handler.NewGenerationHandler,
	handler.NewExportHandler,
	wire.Struct(new(router.RouterHandlers), "*"),
	router.NewWithDeps,
)

// ProvidePostgresClient 提供 PostgreSQL 客户端
func ProvidePostgresClient(cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Database.Postgres.AutoMigrate {
		if err := client.AutoMigrate(); err != nil {
			client.Close()
			return nil, nil, err
		}
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClient 提供 Redis 客户端
func ProvideRedisClient(cfg *config.Config) (*redis.Client, func(), error) {
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideJWTManager 提供 JWT 管理器
func ProvideJWTManager(cfg *config.Config) *utils.JWTManager {
	return utils.NewJWTManager(cfg.Security.JWT.Secret, cfg.Security.JWT.Issuer)
}

// ProvideGenerateService 提供生成服务（超时取配置）
func ProvideGenerateService(
	reports repository.ReportRepository,
	structureChain *chain.StructureChain,
	contentChain *chain.ContentChain,
	factory workflowport.ChatModelFactory,
	tokens *report.TokenTracker,
	cfg *config.Config,
) *report.GenerateService {
	return report.NewGenerateService(reports, structureChain, contentChain, factory, tokens, cfg.Features.GenerationTimeout)
}

// ProvideReferenceHandler 提供参考资料处理器（上传上限取配置）
func ProvideReferenceHandler(
	reportRepo repository.ReportRepository,
	fileRepo repository.ReferenceFileRepository,
	tx repository.Transactor,
	cfg *config.Config,
) *handler.ReferenceHandler {
	return handler.NewReferenceHandler(reportRepo, fileRepo, tx, cfg.Features.Upload.MaxPDFSizeBytes)
}
