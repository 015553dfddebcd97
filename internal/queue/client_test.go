package queue

import (
	"errors"
	"testing"

	"github.com/think41/catalog/internal/config"
)

func TestDisabledClientRejectsEnqueue(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("want disabled client")
	}
	if _, err := client.EnqueueDepartmentMigration(DepartmentMigrationPayload{Force: true}); !errors.Is(err, ErrDisabled) {
		t.Fatalf("want ErrDisabled, got %v", err)
	}
	if _, err := client.EnqueueCatalogImport(CatalogImportPayload{Path: "data.csv"}); !errors.Is(err, ErrDisabled) {
		t.Fatalf("want ErrDisabled, got %v", err)
	}
}

func TestTaskPayloadRoundTrip(t *testing.T) {
	task, err := NewDepartmentMigrationTask(DepartmentMigrationPayload{Force: true})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskMigrateDepartments {
		t.Fatalf("want type %s got %s", TaskMigrateDepartments, task.Type())
	}
	payload, err := ParseDepartmentMigrationPayload(task)
	if err != nil || !payload.Force {
		t.Fatalf("want force payload, got %+v err %v", payload, err)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	_, cfg := BuildServerConfig(nil)
	if cfg.Concurrency != 10 {
		t.Fatalf("want concurrency 10 got %d", cfg.Concurrency)
	}
	if cfg.Queues[DefaultQueue] != 1 || cfg.Queues[MaintenanceQueue] != 1 {
		t.Fatalf("unexpected queues %v", cfg.Queues)
	}
}
