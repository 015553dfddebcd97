package router

import (
	"fmt"

	"github.com/think41/catalog/internal/config"
	adminhandlers "github.com/think41/catalog/internal/http/handlers/admin"
	publichandlers "github.com/think41/catalog/internal/http/handlers/public"
	handlershared "github.com/think41/catalog/internal/http/handlers/shared"
	"github.com/think41/catalog/internal/http/response"
	"github.com/think41/catalog/internal/kvstore"
	"github.com/think41/catalog/internal/logger"
	"github.com/think41/catalog/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	handlershared.SetDebugDetails(cfg.Server.IsDebug())

	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	writeRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:write", kvstore.Prefix()),
		WindowSeconds: cfg.RateLimit.WindowSeconds,
		MaxRequests:   cfg.RateLimit.MaxRequests,
	}
	var writeLimit gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		writeLimit = RateLimitMiddleware(kvstore.Client(), writeRule, KeyByIP)
	} else {
		writeLimit = func(ctx *gin.Context) { ctx.Next() }
	}

	r.Use(RecoveryMiddleware(log))
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	api := r.Group("/api")
	{
		api.GET("", publicHandler.GetAPIInfo)
		api.GET("/health", publicHandler.GetHealth)

		// 写接口暂未接入鉴权，上线前需挂载管理员校验
		products := api.Group("/products")
		{
			products.GET("", publicHandler.GetProducts)
			products.GET("/featured", publicHandler.GetFeaturedProducts)
			products.GET("/category/:category", publicHandler.GetProductsByCategory)
			products.GET("/:id", publicHandler.GetProduct)
			products.POST("", writeLimit, adminHandler.CreateProduct)
			products.PUT("/:id", writeLimit, adminHandler.UpdateProduct)
			products.DELETE("/:id", writeLimit, adminHandler.DeleteProduct)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", publicHandler.GetCategories)
			categories.GET("/:id", publicHandler.GetCategory)
			categories.POST("", writeLimit, adminHandler.CreateCategory)
			categories.PUT("/:id", writeLimit, adminHandler.UpdateCategory)
			categories.DELETE("/:id", writeLimit, adminHandler.DeleteCategory)
		}

		brands := api.Group("/brands")
		{
			brands.GET("", publicHandler.GetBrands)
			brands.GET("/:id", publicHandler.GetBrand)
			brands.POST("", writeLimit, adminHandler.CreateBrand)
			brands.PUT("/:id", writeLimit, adminHandler.UpdateBrand)
			brands.DELETE("/:id", writeLimit, adminHandler.DeleteBrand)
		}

		departments := api.Group("/departments")
		{
			departments.GET("", publicHandler.GetDepartments)
			departments.GET("/:id", publicHandler.GetDepartment)
			departments.GET("/:id/products", publicHandler.GetDepartmentProducts)
			departments.POST("", writeLimit, adminHandler.CreateDepartment)
			departments.PUT("/:id", writeLimit, adminHandler.UpdateDepartment)
			departments.DELETE("/:id", writeLimit, adminHandler.DeleteDepartment)
		}

		centers := api.Group("/distribution-centers")
		{
			centers.GET("", publicHandler.GetDistributionCenters)
			centers.GET("/:id", publicHandler.GetDistributionCenter)
		}

		migrations := api.Group("/admin/migrations")
		migrations.Use(writeLimit)
		{
			migrations.GET("", adminHandler.GetMigrations)
			migrations.POST("/departments", adminHandler.RunDepartmentMigration)
			migrations.POST("/imports", adminHandler.ImportCatalog)
		}
	}

	r.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "Route not found")
	})

	return r
}
