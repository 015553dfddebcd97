package service

import (
	"context"
	"errors"

	"github.com/think41/catalog/internal/migration"
	"github.com/think41/catalog/internal/models"
	"github.com/think41/catalog/internal/queue"
	"github.com/think41/catalog/internal/repository"
)

// MigrationService 数据迁移管理
type MigrationService struct {
	store repository.DepartmentMigrationStore
	queue *queue.Client
	opts  migration.Options
}

// NewMigrationService 创建迁移服务
func NewMigrationService(store repository.DepartmentMigrationStore, queueClient *queue.Client, opts migration.Options) *MigrationService {
	return &MigrationService{store: store, queue: queueClient, opts: opts}
}

// MigrationTrigger 触发结果：入队时只有 TaskID，同步执行时只有 Report
type MigrationTrigger struct {
	TaskID string                      `json:"taskId,omitempty"`
	Queued bool                        `json:"queued"`
	Report *migration.DepartmentReport `json:"report,omitempty"`
}

// Records 迁移记录
func (s *MigrationService) Records(ctx context.Context) ([]models.MigrationRecord, error) {
	return s.store.List(ctx)
}

// RunDepartments 同步执行部门规范化
func (s *MigrationService) RunDepartments(ctx context.Context, force bool) (*migration.DepartmentReport, error) {
	opts := s.opts
	opts.Force = force
	return migration.NewDepartmentNormalizer(s.store, opts).Run(ctx)
}

// TriggerDepartments 队列可用时入队，否则同步执行
func (s *MigrationService) TriggerDepartments(ctx context.Context, force bool) (*MigrationTrigger, error) {
	if s.queue != nil && s.queue.Enabled() {
		taskID, err := s.queue.EnqueueDepartmentMigration(queue.DepartmentMigrationPayload{Force: force})
		if err == nil {
			return &MigrationTrigger{TaskID: taskID, Queued: true}, nil
		}
		if !errors.Is(err, ErrQueueUnavailable) {
			return nil, err
		}
	}
	report, err := s.RunDepartments(ctx, force)
	if err != nil {
		return nil, err
	}
	return &MigrationTrigger{Report: report}, nil
}
