package migration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/think41/catalog/internal/models"
	"github.com/think41/catalog/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupStore(t *testing.T) (*gorm.DB, *repository.GormMigrationStore) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db, repository.NewMigrationStore(db)
}

func seedLegacyProducts(t *testing.T, db *gorm.DB, departments ...string) []models.Product {
	t.Helper()
	repo := repository.NewProductRepository(db)
	products := make([]models.Product, 0, len(departments))
	for i, department := range departments {
		product := models.Product{
			ProductID:      int64(i + 1),
			Name:           fmt.Sprintf("Product %d", i+1),
			Brand:          "Acme",
			Category:       "Jeans",
			DepartmentName: department,
			SKU:            fmt.Sprintf("SKU-%d", i+1),
			SeoData:        models.SeoData{Slug: fmt.Sprintf("product-%d", i+1)},
			IsActive:       true,
		}
		if err := repo.Create(context.Background(), &product); err != nil {
			t.Fatalf("seed product failed: %v", err)
		}
		products = append(products, product)
	}
	return products
}

func loadProducts(t *testing.T, db *gorm.DB) map[int64]models.Product {
	t.Helper()
	var rows []models.Product
	if err := db.Order("product_id").Find(&rows).Error; err != nil {
		t.Fatalf("load products failed: %v", err)
	}
	byID := make(map[int64]models.Product, len(rows))
	for _, row := range rows {
		byID[row.ProductID] = row
	}
	return byID
}

func TestDepartmentNormalizerLinksProducts(t *testing.T) {
	db, store := setupStore(t)
	seedLegacyProducts(t, db, "Men", "Women", "Men")

	report, err := NewDepartmentNormalizer(store, Options{BatchSize: 2, VerifySample: 5}).Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if report.DepartmentsCreated != 2 || report.DepartmentsTotal != 2 {
		t.Fatalf("want 2 departments, got created=%d total=%d", report.DepartmentsCreated, report.DepartmentsTotal)
	}
	if report.ProductsLinked != 3 || report.Unmapped != 0 {
		t.Fatalf("want 3 linked and none unmapped, got %+v", report)
	}
	if report.Batches != 2 {
		t.Fatalf("want 2 batches with batch size 2, got %d", report.Batches)
	}

	var departments []models.Department
	if err := db.Order("name").Find(&departments).Error; err != nil {
		t.Fatalf("load departments failed: %v", err)
	}
	if len(departments) != 2 || departments[0].Name != "Men" || departments[1].Name != "Women" {
		t.Fatalf("unexpected departments %+v", departments)
	}
	if departments[0].Slug != "men" || departments[0].SeoData.MetaTitle != "Men - Think41 Store" {
		t.Fatalf("department defaults not applied: %+v", departments[0])
	}

	products := loadProducts(t, db)
	men, women := departments[0].ID, departments[1].ID
	if products[1].DepartmentID == nil || *products[1].DepartmentID != men {
		t.Fatalf("product 1 should reference Men, got %v", products[1].DepartmentID)
	}
	if products[3].DepartmentID == nil || *products[3].DepartmentID != *products[1].DepartmentID {
		t.Fatalf("both Men products should share one department id")
	}
	if products[2].DepartmentID == nil || *products[2].DepartmentID != women {
		t.Fatalf("product 2 should reference Women, got %v", products[2].DepartmentID)
	}

	record, err := store.Get(context.Background(), report.Name)
	if err != nil || !record.Completed() {
		t.Fatalf("want completed marker, got %+v err %v", record, err)
	}
}

func TestDepartmentNormalizerIsIdempotent(t *testing.T) {
	db, store := setupStore(t)
	seedLegacyProducts(t, db, "Men", "Women", "Men")
	ctx := context.Background()

	if _, err := NewDepartmentNormalizer(store, Options{}).Run(ctx); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	before := loadProducts(t, db)

	report, err := NewDepartmentNormalizer(store, Options{}).Run(ctx)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if !report.Skipped {
		t.Fatalf("want completed migration to be skipped")
	}

	forced, err := NewDepartmentNormalizer(store, Options{Force: true}).Run(ctx)
	if err != nil {
		t.Fatalf("forced run failed: %v", err)
	}
	if forced.DepartmentsCreated != 0 || forced.ProductsLinked != 0 {
		t.Fatalf("forced re-run should write nothing, got %+v", forced)
	}

	var count int64
	db.Model(&models.Department{}).Count(&count)
	if count != 2 {
		t.Fatalf("want 2 departments after re-runs, got %d", count)
	}
	after := loadProducts(t, db)
	for id, product := range before {
		if *after[id].DepartmentID != *product.DepartmentID {
			t.Fatalf("product %d reference changed on re-run", id)
		}
	}
}

func TestDepartmentNormalizerFlagsUnmappedProducts(t *testing.T) {
	db, store := setupStore(t)
	seedLegacyProducts(t, db, "Men", "")

	report, err := NewDepartmentNormalizer(store, Options{}).Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if report.Unmapped != 1 || len(report.UnmappedProducts) != 1 {
		t.Fatalf("want one unmapped product, got %+v", report)
	}
	products := loadProducts(t, db)
	if products[2].DepartmentID != nil {
		t.Fatalf("unmapped product must stay untouched, got %v", *products[2].DepartmentID)
	}
}

func TestDepartmentNormalizerDetectsVerificationMismatch(t *testing.T) {
	db, store := setupStore(t)
	seedLegacyProducts(t, db, "Men")
	ctx := context.Background()

	department := models.Department{Name: "Women", Slug: "women", IsActive: true}
	if err := db.Create(&department).Error; err != nil {
		t.Fatalf("create department failed: %v", err)
	}
	if err := db.Model(&models.Product{}).Where("product_id = ?", 1).Update("department_id", department.ID).Error; err != nil {
		t.Fatalf("link product failed: %v", err)
	}

	_, err := NewDepartmentNormalizer(store, Options{VerifySample: 5}).Run(ctx)
	if !errors.Is(err, ErrVerifyFailed) {
		t.Fatalf("want ErrVerifyFailed, got %v", err)
	}
	record, _ := store.Get(ctx, "normalize_departments_v1")
	if record == nil || record.Status != models.MigrationStatusFailed {
		t.Fatalf("want failed marker, got %+v", record)
	}
}
