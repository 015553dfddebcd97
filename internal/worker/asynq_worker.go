package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/think41/catalog/internal/logger"
	"github.com/think41/catalog/internal/provider"
	"github.com/think41/catalog/internal/queue"
	"github.com/think41/catalog/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskMigrateDepartments, c.handleDepartmentMigration)
	mux.HandleFunc(queue.TaskImportCatalog, c.handleCatalogImport)
}

func (c *Consumer) handleDepartmentMigration(ctx context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || c.MigrationService == nil || task == nil {
		logger.Debugw("worker_department_migration_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseDepartmentMigrationPayload(task)
	if err != nil {
		logger.Warnw("worker_department_migration_unmarshal_failed", "error", err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	report, err := c.MigrationService.RunDepartments(ctx, payload.Force)
	if err != nil {
		if errors.Is(err, service.ErrMigrationRunning) {
			logger.Infow("worker_department_migration_already_running")
			return nil
		}
		logger.Errorw("worker_department_migration_failed", "force", payload.Force, "error", err)
		return err
	}
	if report.Skipped {
		logger.Infow("worker_department_migration_skipped", "name", report.Name)
		return nil
	}
	logger.Infow("worker_department_migration_done",
		"products_scanned", report.ProductsScanned,
		"products_linked", report.ProductsLinked,
		"unmapped", report.Unmapped,
		"departments_created", report.DepartmentsCreated,
	)
	return nil
}

func (c *Consumer) handleCatalogImport(ctx context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || c.ImportService == nil || task == nil {
		logger.Debugw("worker_catalog_import_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseCatalogImportPayload(task)
	if err != nil {
		logger.Warnw("worker_catalog_import_unmarshal_failed", "error", err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	path := strings.TrimSpace(payload.Path)
	if path == "" {
		logger.Debugw("worker_catalog_import_skip_invalid_payload")
		return nil
	}

	report, err := c.ImportService.ImportFile(ctx, path)
	if err != nil {
		var validation *service.ValidationError
		if errors.As(err, &validation) {
			// 文件格式问题重试无意义
			logger.Warnw("worker_catalog_import_rejected", "path", path, "error", err)
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		logger.Errorw("worker_catalog_import_failed", "path", path, "error", err)
		return err
	}
	logger.Infow("worker_catalog_import_done",
		"path", path,
		"rows_read", report.RowsRead,
		"rows_skipped", report.RowsSkipped,
		"products_created", report.ProductsCreated,
	)
	return nil
}
