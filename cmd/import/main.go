package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/think41/catalog/internal/config"
	"github.com/think41/catalog/internal/logger"
	"github.com/think41/catalog/internal/models"
	"github.com/think41/catalog/internal/provider"
)

// 从 CSV 文件导入商品目录（可重复执行，已存在的 productId 会跳过）
func main() {
	var file string
	flag.StringVar(&file, "file", "data/products.csv", "CSV 文件路径")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if !cfg.Database.UsesMongo() {
		if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
			MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
			MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
			ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
			ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
		}, false); err != nil {
			stdLog.Fatalf("Failed to connect database: %v", err)
		}
		if err := models.AutoMigrate(nil); err != nil {
			stdLog.Fatalf("Failed to migrate database: %v", err)
		}
	}

	container, err := provider.NewContainer(cfg)
	if err != nil {
		stdLog.Fatalf("Failed to initialize storage: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	report, runErr := container.ImportService.ImportFile(ctx, file)
	stop()
	container.Close(context.Background())
	if runErr != nil {
		stdLog.Fatalf("Import failed: %v", runErr)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		stdLog.Fatalf("Failed to print report: %v", err)
	}
}
