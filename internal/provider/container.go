package provider

import (
	"context"
	"errors"
	"time"

	"github.com/think41/catalog/internal/config"
	"github.com/think41/catalog/internal/importer"
	"github.com/think41/catalog/internal/kvstore"
	"github.com/think41/catalog/internal/logger"
	"github.com/think41/catalog/internal/migration"
	"github.com/think41/catalog/internal/models"
	"github.com/think41/catalog/internal/queue"
	"github.com/think41/catalog/internal/repository"
	"github.com/think41/catalog/internal/repository/mongostore"
	"github.com/think41/catalog/internal/service"

	"gorm.io/gorm"
)

const mongoConnectTimeout = 10 * time.Second

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// 存储后端（二选一）
	DB    *gorm.DB
	Mongo *mongostore.Store

	// Repositories
	ProductRepo            repository.ProductRepository
	CategoryRepo           repository.CategoryRepository
	BrandRepo              repository.BrandRepository
	DepartmentRepo         repository.DepartmentRepository
	DistributionCenterRepo repository.DistributionCenterRepository
	MigrationStore         repository.DepartmentMigrationStore

	// Services
	ProductService            *service.ProductService
	CategoryService           *service.CategoryService
	BrandService              *service.BrandService
	DepartmentService         *service.DepartmentService
	DistributionCenterService *service.DistributionCenterService
	MigrationService          *service.MigrationService
	ImportService             *service.ImportService
}

// NewContainer 初始化容器；database.driver=mongo 时连接 MongoDB，否则使用 models.DB
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := kvstore.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{Config: cfg, QueueClient: queueClient}
	if cfg.Database.UsesMongo() {
		ctx, cancel := context.WithTimeout(context.Background(), mongoConnectTimeout)
		defer cancel()
		store, err := mongostore.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureIndexes(ctx); err != nil {
			logger.Warnw("provider_mongo_ensure_indexes_failed", "error", err)
		}
		c.Mongo = store
		c.initMongoRepositories(store)
	} else {
		if models.DB == nil {
			return nil, errors.New("database is not initialized")
		}
		c.DB = models.DB
		c.initGormRepositories(models.DB)
	}
	c.initServices()
	return c, nil
}

// NewWithDB 使用现成的 GORM 连接构建容器（命令行工具与测试）
func NewWithDB(cfg *config.Config, db *gorm.DB, queueClient *queue.Client) *Container {
	c := &Container{Config: cfg, QueueClient: queueClient, DB: db}
	c.initGormRepositories(db)
	c.initServices()
	return c
}

func (c *Container) initGormRepositories(db *gorm.DB) {
	c.ProductRepo = repository.NewProductRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.BrandRepo = repository.NewBrandRepository(db)
	c.DepartmentRepo = repository.NewDepartmentRepository(db)
	c.DistributionCenterRepo = repository.NewDistributionCenterRepository(db)
	c.MigrationStore = repository.NewMigrationStore(db)
}

func (c *Container) initMongoRepositories(store *mongostore.Store) {
	c.ProductRepo = mongostore.NewProductRepository(store)
	c.CategoryRepo = mongostore.NewCategoryRepository(store)
	c.BrandRepo = mongostore.NewBrandRepository(store)
	c.DepartmentRepo = mongostore.NewDepartmentRepository(store)
	c.DistributionCenterRepo = mongostore.NewDistributionCenterRepository(store)
	c.MigrationStore = mongostore.NewMigrationStore(store)
}

func (c *Container) initServices() {
	settings := service.NewCatalogSettings(c.Config.Catalog)

	c.ProductService = service.NewProductService(c.ProductRepo, c.DepartmentRepo, settings)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.ProductRepo)
	c.BrandService = service.NewBrandService(c.BrandRepo, c.ProductRepo)
	c.DepartmentService = service.NewDepartmentService(c.DepartmentRepo, c.ProductRepo, settings)
	c.DistributionCenterService = service.NewDistributionCenterService(c.DistributionCenterRepo, c.ProductRepo)

	c.MigrationService = service.NewMigrationService(c.MigrationStore, c.QueueClient, migration.Options{
		BatchSize:    c.Config.Migration.BatchSize,
		VerifySample: c.Config.Migration.VerifySample,
		StoreName:    settings.StoreName,
		LockTTL:      time.Duration(c.Config.Migration.LockTTLSeconds) * time.Second,
	})

	im := importer.New(c.ProductRepo, c.CategoryRepo, c.BrandRepo, c.DistributionCenterRepo, importer.Options{
		BatchSize: c.Config.Migration.BatchSize,
		StoreName: settings.StoreName,
	})
	c.ImportService = service.NewImportService(im, c.QueueClient, c.Config.Migration.ImportDir)
}

// Ping 检查存储连接
func (c *Container) Ping(ctx context.Context) error {
	if c.Mongo != nil {
		return c.Mongo.Ping(ctx)
	}
	if c.DB == nil {
		return errors.New("database is not initialized")
	}
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close 释放连接
func (c *Container) Close(ctx context.Context) {
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("provider_close_queue_client_failed", "error", err)
		}
	}
	if c.Mongo != nil {
		if err := c.Mongo.Close(ctx); err != nil {
			logger.Warnw("provider_close_mongo_failed", "error", err)
		}
	}
	if err := kvstore.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
}
