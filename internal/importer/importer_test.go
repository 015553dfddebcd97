package importer

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

const sampleCSV = `id,cost,category,name,brand,retail_price,department,sku,distribution_center_id
13842,2.51,Accessories,Low Profile Dyed Cotton Twill Cap - Navy W39S55D,MG,6.25,Women,EBD58B8A3F1D72F4206201DA62FB1204,1
13928,2.34,Accessories,Low Profile Dyed Cotton Twill Cap - Putty W39S55D,MG,5.95,Women,2EAC42424D12436BDD6A5B8A88480CC3,1
14115,4.88,Tops & Tees,Classic Crew Tee,Hanes,9.99,Men,abc-123,2
,1.00,Accessories,Missing Id,MG,2.00,Women,SKU-X,1
14116,1.00,Unknown Stuff,Odd Item,MG,2.00,Women,SKU-Y,1
14117,1.00,Accessories,No Department,MG,2.00,,SKU-Z,1
`

func setupImporter(t *testing.T) (*gorm.DB, *Importer) {
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
	im := New(
		repository.NewProductRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewBrandRepository(db),
		repository.NewDistributionCenterRepository(db),
		Options{BatchSize: 2, StoreName: "Think41"},
	)
	return db, im
}

func TestParseSkipsIncompleteRows(t *testing.T) {
	result, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(result.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(result.Rows))
	}
	if len(result.Skipped) != 2 {
		t.Fatalf("expected 2 skipped rows, got %+v", result.Skipped)
	}
	if result.Skipped[0].Reason != "missing id" || result.Skipped[1].Reason != "missing department" {
		t.Fatalf("unexpected skip reasons: %+v", result.Skipped)
	}
	tee := result.Rows[2]
	if tee.SKU != "ABC-123" {
		t.Fatalf("expected upper-cased sku, got %s", tee.SKU)
	}
	if tee.RetailPrice.String() != "9.99" || tee.DistributionCenterID != 2 {
		t.Fatalf("unexpected row: %+v", tee)
	}
}

func TestParseRequiresHeaderColumns(t *testing.T) {
	if _, err := Parse(strings.NewReader("id,name\n1,Cap\n")); !errors.Is(err, ErrInvalidCSV) {
		t.Fatalf("expected missing column error, got %v", err)
	}
	if _, err := Parse(strings.NewReader("")); err == nil {
		t.Fatalf("expected empty file error")
	}
}

func TestImportCreatesCatalog(t *testing.T) {
	db, im := setupImporter(t)
	ctx := context.Background()

	report, err := im.Import(ctx, strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if report.ProductsCreated != 3 {
		t.Fatalf("expected 3 products, got %d", report.ProductsCreated)
	}
	if report.Batches != 2 {
		t.Fatalf("expected 2 batches, got %d", report.Batches)
	}
	if report.RowsSkipped != 3 {
		t.Fatalf("expected 3 skipped rows, got %d", report.RowsSkipped)
	}
	if report.CategoriesCreated != 2 || report.BrandsCreated != 2 || report.CentersCreated != 2 {
		t.Fatalf("unexpected taxonomy counts: %+v", report)
	}

	var product models.Product
	if err := db.Where("product_id = ?", 14115).First(&product).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if product.DepartmentName != "Men" || product.DepartmentID != nil {
		t.Fatalf("expected legacy department text, got %+v", product)
	}
	if product.SeoData.Slug != "classic-crew-tee-14115" {
		t.Fatalf("unexpected slug: %s", product.SeoData.Slug)
	}
	if len(product.Sizes) != 5 {
		t.Fatalf("expected apparel sizes, got %+v", product.Sizes)
	}
	if product.SeoData.MetaTitle != "Classic Crew Tee - Hanes | Think41" {
		t.Fatalf("unexpected meta title: %s", product.SeoData.MetaTitle)
	}

	var category models.Category
	if err := db.Where("name = ?", "Tops & Tees").First(&category).Error; err != nil {
		t.Fatalf("load category failed: %v", err)
	}
	if category.Department != "Unisex" || category.SeoData.Slug != "tops-tees" {
		t.Fatalf("unexpected category: %+v", category)
	}

	var center models.DistributionCenter
	if err := db.Where("center_id = ?", 2).First(&center).Error; err != nil {
		t.Fatalf("load center failed: %v", err)
	}
	if center.Name != "Distribution Center 2" || center.Capacity != 10000 {
		t.Fatalf("unexpected center: %+v", center)
	}
}

func TestImportIsRepeatable(t *testing.T) {
	db, im := setupImporter(t)
	ctx := context.Background()

	if _, err := im.Import(ctx, strings.NewReader(sampleCSV)); err != nil {
		t.Fatalf("first import failed: %v", err)
	}
	report, err := im.Import(ctx, strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("second import failed: %v", err)
	}
	if report.ProductsCreated != 0 || report.ProductsExisting != 3 {
		t.Fatalf("expected existing products to be skipped, got %+v", report)
	}
	if report.CategoriesCreated != 0 || report.BrandsCreated != 0 || report.CentersCreated != 0 {
		t.Fatalf("expected no new taxonomy, got %+v", report)
	}

	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count != 3 {
		t.Fatalf("expected 3 products, got %d", count)
	}
}
