// Package main 系统引导：建表并校验存储连通性
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"report-ai-api/internal/config"
	"report-ai-api/internal/wire"
)

func main() {
	_ = godotenv.Load()

	fmt.Println("Starting system bootstrap...")

	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	// 2. 初始化数据层
	dataLayer, cleanup, err := wire.InitializeDataLayer(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize data layer: %v", err)
	}
	defer cleanup()

	// 3. 执行数据库迁移
	fmt.Println("Running database migrations...")
	if err := dataLayer.PgClient.AutoMigrate(); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// 4. 校验存储连通性
	if err := dataLayer.PgClient.Ping(ctx); err != nil {
		log.Fatalf("postgres ping failed: %v", err)
	}
	if err := dataLayer.RedisClient.Ping(ctx); err != nil {
		log.Fatalf("redis ping failed: %v", err)
	}

	fmt.Println("Bootstrap completed successfully.")
}
