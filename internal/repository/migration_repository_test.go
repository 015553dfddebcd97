package repository

import (
	"context"
	"testing"

	"github.com/think41/catalog/internal/models"
)

func TestMigrationStoreDepartmentLifecycle(t *testing.T) {
	db := setupTestDB(t)
	products := NewProductRepository(db)
	store := NewMigrationStore(db)
	ctx := context.Background()

	seedProduct(t, products, 1, "A", "Jeans", "Levi", "Men", 10, true)
	seedProduct(t, products, 2, "B", "Dresses", "Zara", "Women", 10, false)
	seedProduct(t, products, 3, "C", "Jeans", "Levi", "Men", 10, true)

	names, err := store.DistinctProductDepartments(ctx)
	if err != nil {
		t.Fatalf("distinct failed: %v", err)
	}
	if len(names) != 2 || names[0] != "Men" || names[1] != "Women" {
		t.Fatalf("distinct names unexpected: %v", names)
	}

	inserted, err := store.InsertDepartments(ctx, []models.Department{
		{Name: "Men", Slug: "men", IsActive: true},
		{Name: "Women", Slug: "women", IsActive: true},
	})
	if err != nil || inserted != 2 {
		t.Fatalf("first insert want 2 got %d err=%v", inserted, err)
	}
	inserted, err = store.InsertDepartments(ctx, []models.Department{{Name: "Men", Slug: "men", IsActive: true}})
	if err != nil {
		t.Fatalf("duplicate insert must be tolerated: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("duplicate insert want 0 got %d", inserted)
	}

	departments, err := store.ListDepartments(ctx)
	if err != nil || len(departments) != 2 {
		t.Fatalf("list departments want 2 got %d err=%v", len(departments), err)
	}
	ids := map[string]string{}
	for _, d := range departments {
		ids[d.Name] = d.ID
	}

	first, err := store.ListUnlinkedProducts(ctx, "", 2)
	if err != nil || len(first) != 2 {
		t.Fatalf("first batch want 2 got %d err=%v", len(first), err)
	}
	rest, err := store.ListUnlinkedProducts(ctx, first[1].ID, 2)
	if err != nil || len(rest) != 1 {
		t.Fatalf("second batch want 1 got %d err=%v", len(rest), err)
	}

	var assignments []DepartmentAssignment
	for _, ref := range append(first, rest...) {
		assignments = append(assignments, DepartmentAssignment{ProductID: ref.ID, DepartmentID: ids[ref.DepartmentName]})
	}
	modified, err := store.AssignDepartments(ctx, assignments)
	if err != nil || modified != 3 {
		t.Fatalf("assign want 3 got %d err=%v", modified, err)
	}
	modified, err = store.AssignDepartments(ctx, assignments)
	if err != nil || modified != 0 {
		t.Fatalf("re-assign must not write, got %d err=%v", modified, err)
	}

	left, err := store.ListUnlinkedProducts(ctx, "", 10)
	if err != nil || len(left) != 0 {
		t.Fatalf("no unlinked products expected, got %d err=%v", len(left), err)
	}

	samples, err := store.SampleLinkedProducts(ctx, 5)
	if err != nil || len(samples) != 3 {
		t.Fatalf("samples want 3 got %d err=%v", len(samples), err)
	}
	for _, sample := range samples {
		if sample.DepartmentName != sample.ResolvedName {
			t.Fatalf("sample mismatch: %+v", sample)
		}
	}
}

func TestMigrationRecordSaveOverwrites(t *testing.T) {
	store := NewMigrationStore(setupTestDB(t))
	ctx := context.Background()

	record := &models.MigrationRecord{Name: "demo", Status: models.MigrationStatusRunning}
	if err := store.Save(ctx, record); err != nil {
		t.Fatalf("save running failed: %v", err)
	}
	record.Status = models.MigrationStatusCompleted
	record.Stats = models.JSON{"modified": 3}
	if err := store.Save(ctx, record); err != nil {
		t.Fatalf("save completed failed: %v", err)
	}

	got, err := store.Get(ctx, "demo")
	if err != nil || got == nil {
		t.Fatalf("get failed: %v", err)
	}
	if !got.Completed() {
		t.Fatalf("record should be completed, got %s", got.Status)
	}
	records, err := store.List(ctx)
	if err != nil || len(records) != 1 {
		t.Fatalf("list want 1 got %d err=%v", len(records), err)
	}
	missing, err := store.Get(ctx, "missing")
	if err != nil || missing != nil {
		t.Fatalf("missing record should be nil,nil")
	}
}
