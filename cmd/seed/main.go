package main

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/think41/catalog/internal/config"
	"github.com/think41/catalog/internal/logger"
	"github.com/think41/catalog/internal/models"
	"github.com/think41/catalog/internal/provider"
	"github.com/think41/catalog/internal/service"
)

// 演示数据，列格式与导入文件一致
const sampleCatalog = `id,cost,category,name,brand,retail_price,department,sku,distribution_center_id
13842,2.51,Accessories,Low Profile Dyed Cotton Twill Cap - Navy W39S55D,MG,6.25,Women,EBD58B8A3F1D72F4206201DA62FB1204,1
13928,2.34,Accessories,Low Profile Dyed Cotton Twill Cap - Putty A121,MG,5.95,Women,2EAC42424D12436BDD6A5B8A88480CC3,1
14115,4.88,Tops & Tees,Classic Crew Neck Tee,Hanes,10.99,Men,9A1C6F3B2D8E4F5A6B7C8D9E0F1A2B3C,2
15201,18.43,Jeans,Slim Straight Stretch Denim,Levi's,49.50,Men,5F3E2D1C0B9A8F7E6D5C4B3A2F1E0D9C,2
16320,21.02,Dresses,Wrap Midi Dress,Calvin Klein,64.00,Women,7B6A5F4E3D2C1B0A9F8E7D6C5B4A3F2E,3
17044,9.75,Socks,Performance Crew Socks 6 Pack,Under Armour,24.99,Men,1D2C3B4A5F6E7D8C9B0A1F2E3D4C5B6A,3
`

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if !cfg.Database.UsesMongo() {
		if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
			MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
			MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
			ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
			ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
		}, false); err != nil {
			stdLog.Fatalf("Failed to connect database: %v", err)
		}
		if err := models.AutoMigrate(nil); err != nil {
			stdLog.Fatalf("Failed to migrate database: %v", err)
		}
	}

	container, err := provider.NewContainer(cfg)
	if err != nil {
		stdLog.Fatalf("Failed to initialize storage: %v", err)
	}
	defer container.Close(context.Background())
	ctx := context.Background()

	// 部门
	for _, name := range []string{"Men", "Women"} {
		name := name
		description := name + " clothing and accessories"
		_, err := container.DepartmentService.Create(ctx, service.DepartmentInput{Name: &name, Description: &description})
		switch {
		case err == nil:
			stdLog.Printf("Created department: %s", name)
		case errors.Is(err, service.ErrNameExists), errors.Is(err, service.ErrSlugExists):
			stdLog.Printf("Department already exists: %s", name)
		default:
			stdLog.Printf("Failed to create department %s: %v", name, err)
		}
	}

	// 分类、品牌、配送中心与商品
	report, err := container.ImportService.ImportUpload(ctx, strings.NewReader(sampleCatalog))
	if err != nil {
		stdLog.Fatalf("Failed to import sample catalog: %v", err)
	}
	stdLog.Printf("Imported %d products (%d already present), %d categories, %d brands, %d distribution centers",
		report.ProductsCreated, report.ProductsExisting, report.CategoriesCreated, report.BrandsCreated, report.CentersCreated)

	// 部门引用规范化
	migrated, err := container.MigrationService.RunDepartments(ctx, true)
	if err != nil {
		stdLog.Fatalf("Failed to normalize departments: %v", err)
	}
	stdLog.Printf("Linked %d products to departments", migrated.ProductsLinked)

	seedAdmin(stdLog)
}

// seedAdmin 创建演示管理员账号（仅关系型存储）
func seedAdmin(stdLog interface{ Printf(string, ...interface{}) }) {
	if models.DB == nil {
		return
	}
	email := strings.TrimSpace(os.Getenv("CATALOG_SEED_ADMIN_EMAIL"))
	password := os.Getenv("CATALOG_SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		stdLog.Printf("CATALOG_SEED_ADMIN_EMAIL / CATALOG_SEED_ADMIN_PASSWORD not set, skip admin user")
		return
	}

	var existing models.User
	if err := models.DB.Where("email = ?", strings.ToLower(email)).First(&existing).Error; err == nil {
		stdLog.Printf("User already exists: %s", email)
		return
	}
	user := models.User{
		FirstName:       "Catalog",
		LastName:        "Admin",
		Email:           email,
		Role:            models.UserRoleAdmin,
		IsActive:        true,
		IsEmailVerified: true,
	}
	if err := user.SetPassword(password); err != nil {
		stdLog.Printf("Failed to hash password: %v", err)
		return
	}
	if err := models.DB.Create(&user).Error; err != nil {
		stdLog.Printf("Failed to create admin user: %v", err)
		return
	}
	stdLog.Printf("Created admin user: %s", user.Email)
}
