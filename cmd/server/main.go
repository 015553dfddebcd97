package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/think41/catalog/internal/app"
	"github.com/think41/catalog/internal/config"
	"github.com/think41/catalog/internal/logger"
	"github.com/think41/catalog/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset     = "\033[0m"
	ansiBold      = "\033[1m"
	ansiDim       = "\033[2m"
	ansiGreen     = "\033[32m"
	ansiBlue      = "\033[34m"
	ansiCyan      = "\033[36m"
	ansiBrightMag = "\033[95m"
)

func main() {
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()

	printStartupBanner()

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	// 关系型存储在启动时建表；mongo 索引由 provider 建立
	if !cfg.Database.UsesMongo() {
		if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
			MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
			MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
			ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
			ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
		}, cfg.Server.IsDebug()); err != nil {
			stdLog.Fatalf("数据库初始化失败: %v", err)
		}
		if err := models.AutoMigrate(nil); err != nil {
			stdLog.Fatalf("数据库迁移失败: %v", err)
		}
	}

	if !cfg.Server.IsDebug() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    strings.ToLower(strings.TrimSpace(mode)),
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiBrightMag + "╔══════════════════════════════════════════════════════════════╗" + ansiReset)
	fmt.Println(ansiBrightMag + "║                 Think41 Catalog API 启动中                   ║" + ansiReset)
	fmt.Println(ansiBrightMag + "╚══════════════════════════════════════════════════════════════╝" + ansiReset)
	fmt.Println(ansiCyan + "  _____ _     _       _    _  _   _ " + ansiReset)
	fmt.Println(ansiCyan + " |_   _| |__ (_)_ __ | | _| || | / |" + ansiReset)
	fmt.Println(ansiCyan + "   | | | '_ \\| | '_ \\| |/ / || |_| |" + ansiReset)
	fmt.Println(ansiCyan + "   | | | | | | | | | |   <|__   _| |" + ansiReset)
	fmt.Println(ansiCyan + "   |_| |_| |_|_|_| |_|_|\\_\\  |_| |_|" + ansiReset)
	fmt.Println(ansiGreen + ansiBold + "Endpoints" + ansiReset)
	fmt.Println(ansiBlue + "• Catalog:    /api/products  /api/categories  /api/brands" + ansiReset)
	fmt.Println(ansiBlue + "• Taxonomy:   /api/departments  /api/distribution-centers" + ansiReset)
	fmt.Println(ansiBlue + "• Operations: /api/health  /api/admin/migrations" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}
