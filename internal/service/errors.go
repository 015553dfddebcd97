package service

import (
	"errors"
	"fmt"

	"github.com/think41/catalog/internal/migration"
	"github.com/think41/catalog/internal/queue"
)

var (
	ErrProductNotFound            = errors.New("product not found")
	ErrCategoryNotFound           = errors.New("category not found")
	ErrBrandNotFound              = errors.New("brand not found")
	ErrDepartmentNotFound         = errors.New("department not found")
	ErrDistributionCenterNotFound = errors.New("distribution center not found")
	ErrSKUExists                  = errors.New("sku already exists")
	ErrProductIDExists            = errors.New("product id already exists")
	ErrSlugExists                 = errors.New("slug already exists")
	ErrNameExists                 = errors.New("name already exists")
	ErrDepartmentInUse            = errors.New("department has active products")
	ErrMigrationRunning           = migration.ErrRunning
	ErrMigrationVerifyFailed      = migration.ErrVerifyFailed
	ErrQueueUnavailable           = queue.ErrDisabled
)

// ValidationError 输入校验失败
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// DepartmentInUseError 部门仍被有效商品引用
type DepartmentInUseError struct {
	Count int64
}

func (e *DepartmentInUseError) Error() string {
	return fmt.Sprintf("Cannot delete department. It has %d active products.", e.Count)
}

// Is 支持 errors.Is(err, ErrDepartmentInUse)
func (e *DepartmentInUseError) Is(target error) bool {
	return target == ErrDepartmentInUse
}
