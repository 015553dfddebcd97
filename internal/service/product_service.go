package service

import (
	"context"
	"errors"
	"strings"

	"github.com/think41/catalog/internal/constants"
	"github.com/think41/catalog/internal/models"
	"github.com/think41/catalog/internal/repository"
	"github.com/think41/catalog/internal/slug"
)

// ProductService 商品业务服务
type ProductService struct {
	products    repository.ProductRepository
	departments repository.DepartmentRepository
	settings    CatalogSettings
}

// NewProductService 创建商品服务
func NewProductService(products repository.ProductRepository, departments repository.DepartmentRepository, settings CatalogSettings) *ProductService {
	return &ProductService{products: products, departments: departments, settings: settings}
}

// ProductSeoInput 商品 SEO 输入（slug 不可修改）
type ProductSeoInput struct {
	MetaTitle       *string `json:"metaTitle"`
	MetaDescription *string `json:"metaDescription"`
}

// ProductInput 创建/更新商品输入，仅应用非空字段
type ProductInput struct {
	ProductID            *int64                `json:"productId"`
	Name                 *string               `json:"name"`
	Description          *string               `json:"description"`
	Brand                *string               `json:"brand"`
	Category             *string               `json:"category"`
	Department           *string               `json:"department"`
	Cost                 *models.Money         `json:"cost"`
	RetailPrice          *models.Money         `json:"retailPrice"`
	SKU                  *string               `json:"sku"`
	DistributionCenterID *int64                `json:"distributionCenterId"`
	Stock                *int                  `json:"stock"`
	Images               *models.ProductImages `json:"images"`
	Sizes                *models.SizeStocks    `json:"sizes"`
	Colors               *[]string             `json:"colors"`
	Tags                 *[]string             `json:"tags"`
	Rating               *models.Rating        `json:"rating"`
	Weight               *float64              `json:"weight"`
	SeoData              *ProductSeoInput      `json:"seoData"`
	IsActive             *bool                 `json:"isActive"`
}

// List 商品列表；department 参数按部门ID/slug 解析，未命中时按原始部门文本匹配
func (s *ProductService) List(ctx context.Context, filter repository.ProductListFilter) ([]models.Product, int64, error) {
	if err := s.resolveDepartmentFilter(ctx, &filter); err != nil {
		return nil, 0, err
	}
	return s.products.List(ctx, filter)
}

// ListByCategory 指定分类的商品列表
func (s *ProductService) ListByCategory(ctx context.Context, category string, filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.Category = strings.TrimSpace(category)
	filter.Active = repository.ActiveOnly
	return s.List(ctx, filter)
}

// GetByKey 按主键 / 外部编号 / SKU / slug 获取有效商品
func (s *ProductService) GetByKey(ctx context.Context, key string) (*models.Product, error) {
	product, err := s.products.FindByKey(ctx, key, repository.ActiveOnly)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Featured 随机推荐商品
func (s *ProductService) Featured(ctx context.Context, limit int, department string) ([]models.Product, error) {
	departmentID := ""
	if department = strings.TrimSpace(department); department != "" {
		found, err := s.departments.FindByKey(ctx, department, repository.ActiveOnly)
		if err != nil {
			return nil, err
		}
		if found == nil {
			return []models.Product{}, nil
		}
		departmentID = found.ID
	}
	return s.products.Featured(ctx, s.settings.featuredLimit(limit), departmentID)
}

// Create 创建商品
func (s *ProductService) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	if err := requireProductFields(input); err != nil {
		return nil, err
	}
	product := &models.Product{IsActive: true}
	if err := s.applyInput(ctx, product, input); err != nil {
		return nil, err
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, product); err != nil {
		return nil, err
	}
	product.SeoData.Slug = slug.ForProduct(product.Name, product.ProductID)
	if err := s.products.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	product.FillVirtuals()
	return product, nil
}

// Update 更新商品；slug 在创建后保持不变
func (s *ProductService) Update(ctx context.Context, id string, input ProductInput) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := s.applyInput(ctx, product, input); err != nil {
		return nil, err
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, product); err != nil {
		return nil, err
	}
	if err := s.products.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSKUExists
		}
		return nil, err
	}
	product.FillVirtuals()
	return product, nil
}

// Delete 软删除商品
func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	product.IsActive = false
	return s.products.Update(ctx, product)
}

func (s *ProductService) resolveDepartmentFilter(ctx context.Context, filter *repository.ProductListFilter) error {
	raw := strings.TrimSpace(filter.Department)
	if raw == "" || filter.DepartmentID != "" {
		return nil
	}
	department, err := s.departments.FindByKey(ctx, raw, repository.ActiveOnly)
	if err != nil {
		return err
	}
	if department != nil {
		filter.DepartmentID = department.ID
		return nil
	}
	filter.DepartmentName = raw
	return nil
}

func (s *ProductService) applyInput(ctx context.Context, product *models.Product, input ProductInput) error {
	if input.ProductID != nil {
		product.ProductID = *input.ProductID
	}
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.Brand != nil {
		product.Brand = strings.TrimSpace(*input.Brand)
	}
	if input.Category != nil {
		product.Category = strings.TrimSpace(*input.Category)
	}
	if input.Cost != nil {
		product.Cost = *input.Cost
	}
	if input.RetailPrice != nil {
		product.RetailPrice = *input.RetailPrice
	}
	if input.SKU != nil {
		product.SKU = strings.ToUpper(strings.TrimSpace(*input.SKU))
	}
	if input.DistributionCenterID != nil {
		product.DistributionCenterID = *input.DistributionCenterID
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Images != nil {
		product.Images = *input.Images
	}
	if input.Sizes != nil {
		product.Sizes = *input.Sizes
	}
	if input.Colors != nil {
		product.Colors = models.StringArray(*input.Colors)
	}
	if input.Tags != nil {
		product.Tags = models.StringArray(*input.Tags)
	}
	if input.Rating != nil {
		product.Rating = *input.Rating
	}
	if input.Weight != nil {
		product.Weight = *input.Weight
	}
	if input.SeoData != nil {
		if input.SeoData.MetaTitle != nil {
			product.SeoData.MetaTitle = strings.TrimSpace(*input.SeoData.MetaTitle)
		}
		if input.SeoData.MetaDescription != nil {
			product.SeoData.MetaDescription = strings.TrimSpace(*input.SeoData.MetaDescription)
		}
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.Department != nil {
		return s.applyDepartment(ctx, product, strings.TrimSpace(*input.Department))
	}
	return nil
}

// applyDepartment 已存在的部门写入引用，否则保留为待规范化的部门文本
func (s *ProductService) applyDepartment(ctx context.Context, product *models.Product, raw string) error {
	if raw == "" {
		return invalid("department", "is required")
	}
	department, err := s.departments.FindByKey(ctx, raw, repository.AnyActive)
	if err != nil {
		return err
	}
	if department == nil {
		product.DepartmentID = nil
		product.DepartmentName = raw
		return nil
	}
	id := department.ID
	product.DepartmentID = &id
	product.DepartmentName = department.Name
	return nil
}

func (s *ProductService) ensureUnique(ctx context.Context, product *models.Product) error {
	exists, err := s.products.ExistsBySKU(ctx, product.SKU, product.ID)
	if err != nil {
		return err
	}
	if exists {
		return ErrSKUExists
	}
	exists, err = s.products.ExistsByProductID(ctx, product.ProductID, product.ID)
	if err != nil {
		return err
	}
	if exists {
		return ErrProductIDExists
	}
	return nil
}

func requireProductFields(input ProductInput) error {
	switch {
	case input.ProductID == nil:
		return invalid("productId", "is required")
	case input.Name == nil:
		return invalid("name", "is required")
	case input.Brand == nil:
		return invalid("brand", "is required")
	case input.Category == nil:
		return invalid("category", "is required")
	case input.Department == nil:
		return invalid("department", "is required")
	case input.Cost == nil:
		return invalid("cost", "is required")
	case input.RetailPrice == nil:
		return invalid("retailPrice", "is required")
	case input.SKU == nil:
		return invalid("sku", "is required")
	case input.DistributionCenterID == nil:
		return invalid("distributionCenterId", "is required")
	}
	return nil
}

func validateProduct(product *models.Product) error {
	if product.ProductID <= 0 {
		return invalid("productId", "must be a positive integer")
	}
	if product.Name == "" {
		return invalid("name", "is required")
	}
	if product.Brand == "" {
		return invalid("brand", "is required")
	}
	if !constants.IsProductCategory(product.Category) {
		return invalid("category", "is not a supported category")
	}
	if product.SKU == "" {
		return invalid("sku", "is required")
	}
	if product.Cost.IsNegative() {
		return invalid("cost", "must not be negative")
	}
	if product.RetailPrice.IsNegative() {
		return invalid("retailPrice", "must not be negative")
	}
	if product.Stock < 0 {
		return invalid("stock", "must not be negative")
	}
	for _, size := range product.Sizes {
		if size.Stock < 0 {
			return invalid("sizes", "stock must not be negative")
		}
	}
	if product.Weight < 0 {
		return invalid("weight", "must not be negative")
	}
	if product.Rating.Average < 0 || product.Rating.Average > 5 {
		return invalid("rating.average", "must be between 0 and 5")
	}
	if product.Rating.Count < 0 {
		return invalid("rating.count", "must not be negative")
	}
	return nil
}
