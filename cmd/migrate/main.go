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

// 部门引用规范化：将商品的部门文本替换为 Department 引用
func main() {
	var force bool
	flag.BoolVar(&force, "force", false, "忽略完成标记重新执行")
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
	report, runErr := container.MigrationService.RunDepartments(ctx, force)
	stop()
	container.Close(context.Background())
	if runErr != nil {
		stdLog.Fatalf("Department migration failed: %v", runErr)
	}

	if report.Skipped {
		stdLog.Printf("Migration %s already completed, use -force to run again", report.Name)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		stdLog.Fatalf("Failed to print report: %v", err)
	}
	if report.Unmapped > 0 {
		stdLog.Printf("%d products could not be mapped to a department", report.Unmapped)
		os.Exit(2)
	}
}
