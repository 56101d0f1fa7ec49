//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"report-ai-api/internal/config"
	"report-ai-api/internal/interfaces/http/router"
)

// InitializeDataLayer 初始化数据层（用于脚本与测试场景）
func InitializeDataLayer(ctx context.Context, cfg *config.Config) (*DataLayer, func(), error) {
	wire.Build(
		PostgresSet,
		RedisSet,
		wire.Struct(new(DataLayer), "*"),
	)
	return nil, nil, nil
}

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		RepoSet,
		RedisSet,
		GenerationSet,
		RouterSet,
	)
	return nil, nil, nil
}
