package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/think41/catalog/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 每个测试使用独立的内存库
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
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
	return db
}

func seedProduct(t *testing.T, repo *GormProductRepository, productID int64, name, category, brand, department string, price float64, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		ProductID:      productID,
		Name:           name,
		Brand:          brand,
		Category:       category,
		DepartmentName: department,
		Cost:           models.NewMoneyFromFloat(price / 2),
		RetailPrice:    models.NewMoneyFromFloat(price),
		SKU:            fmt.Sprintf("SKU-%d", productID),
		IsActive:       active,
		SeoData:        models.SeoData{Slug: fmt.Sprintf("product-%d", productID)},
	}
	if err := repo.Create(context.Background(), product); err != nil {
		t.Fatalf("create product %d failed: %v", productID, err)
	}
	return product
}
