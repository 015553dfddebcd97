//go:build integration

package mongostore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/think41/catalog/internal/models"
	"github.com/think41/catalog/internal/repository"

	"github.com/shopspring/decimal"
)

func setupMongoStore(t *testing.T) *Store {
	t.Helper()
	uri := os.Getenv("CATALOG_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("CATALOG_TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	store, err := Connect(ctx, uri, "catalog_test_"+models.NewID()[:8])
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("ensure indexes failed: %v", err)
	}
	t.Cleanup(func() {
		ctx := context.Background()
		_ = store.Database().Drop(ctx)
		_ = store.Close(ctx)
	})
	return store
}

func TestMongoProductListAndCounts(t *testing.T) {
	store := setupMongoStore(t)
	repo := NewProductRepository(store)
	ctx := context.Background()

	for i, name := range []string{"Alpha Tee", "Beta Tee", "Gamma Jeans"} {
		product := &models.Product{
			ProductID:      int64(100 + i),
			Name:           name,
			Brand:          "Acme",
			Category:       "Tops & Tees",
			DepartmentName: "Men",
			RetailPrice:    models.NewMoneyFromDecimal(decimal.NewFromInt(int64(10 * (i + 1)))),
			SKU:            "SKU-" + name,
			SeoData:        models.SeoData{Slug: "slug-" + models.NewID()},
			IsActive:       i != 2,
		}
		if err := repo.Create(ctx, product); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	items, total, err := repo.List(ctx, repository.ProductListFilter{Page: 1, PageSize: 1})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(items) != 1 {
		t.Fatalf("want total 2 and one item, got total %d items %d", total, len(items))
	}

	counts, err := repo.CountActiveByBrands(ctx, []string{"Acme"})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if counts["Acme"] != 2 {
		t.Fatalf("want 2 active Acme products, got %d", counts["Acme"])
	}

	found, err := repo.FindByKey(ctx, "101", repository.ActiveOnly)
	if err != nil || found == nil || found.Name != "Beta Tee" {
		t.Fatalf("find by product id failed: %v %+v", err, found)
	}
}

func TestMongoMigrationStoreAssignsOnce(t *testing.T) {
	store := setupMongoStore(t)
	products := NewProductRepository(store)
	migrations := NewMigrationStore(store)
	ctx := context.Background()

	product := &models.Product{
		ProductID:      1,
		Name:           "Linked Tee",
		Brand:          "Acme",
		Category:       "Tops & Tees",
		DepartmentName: "Women",
		SKU:            "SKU-1",
		SeoData:        models.SeoData{Slug: "linked-tee-1"},
		IsActive:       true,
	}
	if err := products.Create(ctx, product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	inserted, err := migrations.InsertDepartments(ctx, []models.Department{{Name: "Women", Slug: "women", IsActive: true}})
	if err != nil || inserted != 1 {
		t.Fatalf("want 1 inserted department, got %d err %v", inserted, err)
	}
	inserted, err = migrations.InsertDepartments(ctx, []models.Department{{Name: "Women", Slug: "women", IsActive: true}})
	if err != nil || inserted != 0 {
		t.Fatalf("want duplicate insert skipped, got %d err %v", inserted, err)
	}

	departments, err := migrations.ListDepartments(ctx)
	if err != nil || len(departments) != 1 {
		t.Fatalf("list departments failed: %v", err)
	}
	assignment := []repository.DepartmentAssignment{{ProductID: product.ID, DepartmentID: departments[0].ID}}
	modified, err := migrations.AssignDepartments(ctx, assignment)
	if err != nil || modified != 1 {
		t.Fatalf("want 1 modified, got %d err %v", modified, err)
	}
	modified, err = migrations.AssignDepartments(ctx, assignment)
	if err != nil || modified != 0 {
		t.Fatalf("want second assign to be a no-op, got %d err %v", modified, err)
	}

	samples, err := migrations.SampleLinkedProducts(ctx, 5)
	if err != nil || len(samples) != 1 || samples[0].ResolvedName != "Women" {
		t.Fatalf("sample failed: %v %+v", err, samples)
	}
}
