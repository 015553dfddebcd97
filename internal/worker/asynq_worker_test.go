package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/think41/catalog/internal/provider"
	"github.com/think41/catalog/internal/queue"
	"github.com/think41/catalog/internal/service"

	"github.com/hibiken/asynq"
)

func TestHandlersSkipNilConsumer(t *testing.T) {
	var c *Consumer
	task, err := queue.NewDepartmentMigrationTask(queue.DepartmentMigrationPayload{Force: true})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := c.handleDepartmentMigration(context.Background(), task); err != nil {
		t.Fatalf("nil consumer should be a no-op, got %v", err)
	}
	if err := NewConsumer(&provider.Container{}).handleCatalogImport(context.Background(), nil); err != nil {
		t.Fatalf("nil task should be a no-op, got %v", err)
	}
}

func TestMalformedPayloadSkipsRetry(t *testing.T) {
	c := NewConsumer(&provider.Container{ImportService: service.NewImportService(nil, nil, "")})
	err := c.handleCatalogImport(context.Background(), asynq.NewTask(queue.TaskImportCatalog, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("malformed payload should skip retry, got %v", err)
	}
	if err := c.handleCatalogImport(context.Background(), asynq.NewTask(queue.TaskImportCatalog, []byte(`{"path":"  "}`))); err != nil {
		t.Fatalf("blank path should be dropped, got %v", err)
	}
}

func TestParsePayloads(t *testing.T) {
	task, err := queue.NewCatalogImportTask(queue.CatalogImportPayload{Path: "data/products.csv"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if task.Type() != queue.TaskImportCatalog {
		t.Fatalf("task type want %s got %s", queue.TaskImportCatalog, task.Type())
	}
	payload, err := queue.ParseCatalogImportPayload(task)
	if err != nil || payload.Path != "data/products.csv" {
		t.Fatalf("unexpected payload %+v err=%v", payload, err)
	}

	if _, err := queue.ParseDepartmentMigrationPayload(asynq.NewTask(queue.TaskMigrateDepartments, []byte("not-json"))); err == nil {
		t.Fatalf("malformed payload should fail to parse")
	}
}

func TestRegisterNilMux(t *testing.T) {
	c := NewConsumer(&provider.Container{})
	c.Register(nil)

	mux := asynq.NewServeMux()
	c.Register(mux)
	h, pattern := mux.Handler(asynq.NewTask(queue.TaskMigrateDepartments, nil))
	if pattern != queue.TaskMigrateDepartments || h == nil {
		t.Fatalf("migration handler should be registered, got pattern %q", pattern)
	}
	if err := h.ProcessTask(context.Background(), asynq.NewTask(queue.TaskMigrateDepartments, []byte("{"))); err != nil && !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("unexpected error: %v", err)
	}
}
