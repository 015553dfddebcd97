package queue

import (
	"encoding/json"

	"github.com/think41/catalog/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskMigrateDepartments 部门引用规范化任务
	TaskMigrateDepartments = constants.TaskMigrateDepartments
	// TaskImportCatalog 商品目录导入任务
	TaskImportCatalog = constants.TaskImportCatalog
)

// DepartmentMigrationPayload 部门规范化任务载荷
type DepartmentMigrationPayload struct {
	Force bool `json:"force"`
}

// CatalogImportPayload 导入任务载荷（服务端文件路径）
type CatalogImportPayload struct {
	Path string `json:"path"`
}

// NewDepartmentMigrationTask 创建部门规范化任务
func NewDepartmentMigrationTask(payload DepartmentMigrationPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMigrateDepartments, body), nil
}

// NewCatalogImportTask 创建导入任务
func NewCatalogImportTask(payload CatalogImportPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskImportCatalog, body), nil
}

// ParseDepartmentMigrationPayload 解析部门规范化任务载荷
func ParseDepartmentMigrationPayload(task *asynq.Task) (DepartmentMigrationPayload, error) {
	var payload DepartmentMigrationPayload
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}

// ParseCatalogImportPayload 解析导入任务载荷
func ParseCatalogImportPayload(task *asynq.Task) (CatalogImportPayload, error) {
	var payload CatalogImportPayload
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
