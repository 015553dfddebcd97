package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/think41/catalog/internal/models"
	"github.com/think41/catalog/internal/repository"
	"github.com/think41/catalog/internal/slug"
)

const minEstablishedYear = 1800

// BrandService 品牌业务服务
type BrandService struct {
	brands   repository.BrandRepository
	products repository.ProductRepository
}

// NewBrandService 创建品牌服务
func NewBrandService(brands repository.BrandRepository, products repository.ProductRepository) *BrandService {
	return &BrandService{brands: brands, products: products}
}

// BrandInput 创建/更新品牌输入
type BrandInput struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	Logo            *models.ImageRef `json:"logo"`
	Website         *string          `json:"website"`
	IsActive        *bool            `json:"isActive"`
	Country         *string          `json:"country"`
	EstablishedYear *int             `json:"establishedYear"`
	SeoData         *SeoInput        `json:"seoData"`
}

// List 品牌列表（附带有效商品数）
func (s *BrandService) List(ctx context.Context, filter repository.BrandListFilter) ([]models.Brand, int64, error) {
	brands, total, err := s.brands.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if err := s.attachCounts(ctx, brands); err != nil {
		return nil, 0, err
	}
	return brands, total, nil
}

// GetByKey 按主键或 slug 获取有效品牌
func (s *BrandService) GetByKey(ctx context.Context, key string) (*models.Brand, error) {
	brand, err := s.brands.FindByKey(ctx, key, repository.ActiveOnly)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrBrandNotFound
	}
	single := []models.Brand{*brand}
	if err := s.attachCounts(ctx, single); err != nil {
		return nil, err
	}
	brand.ProductCount = single[0].ProductCount
	return brand, nil
}

// Create 创建品牌
func (s *BrandService) Create(ctx context.Context, input BrandInput) (*models.Brand, error) {
	if input.Name == nil {
		return nil, invalid("name", "is required")
	}
	brand := &models.Brand{IsActive: true}
	applyBrandInput(brand, input)
	if brand.SeoData.Slug == "" {
		brand.SeoData.Slug = slug.Make(brand.Name)
	}
	if err := s.save(ctx, brand, true); err != nil {
		return nil, err
	}
	return brand, nil
}

// Update 更新品牌；改名不会回写商品上的品牌文本
func (s *BrandService) Update(ctx context.Context, id string, input BrandInput) (*models.Brand, error) {
	brand, err := s.brands.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrBrandNotFound
	}
	applyBrandInput(brand, input)
	if err := s.save(ctx, brand, false); err != nil {
		return nil, err
	}
	return brand, nil
}

// Delete 软删除品牌
func (s *BrandService) Delete(ctx context.Context, id string) error {
	brand, err := s.brands.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if brand == nil {
		return ErrBrandNotFound
	}
	brand.IsActive = false
	return s.brands.Update(ctx, brand)
}

func (s *BrandService) save(ctx context.Context, brand *models.Brand, create bool) error {
	if brand.Name == "" {
		return invalid("name", "is required")
	}
	if brand.SeoData.Slug == "" {
		return invalid("seoData.slug", "is required")
	}
	if brand.EstablishedYear != 0 && (brand.EstablishedYear < minEstablishedYear || brand.EstablishedYear > time.Now().Year()) {
		return invalid("establishedYear", "must be between 1800 and the current year")
	}
	exists, err := s.brands.ExistsByName(ctx, brand.Name, brand.ID)
	if err != nil {
		return err
	}
	if exists {
		return ErrNameExists
	}
	exists, err = s.brands.ExistsBySlug(ctx, brand.SeoData.Slug, brand.ID)
	if err != nil {
		return err
	}
	if exists {
		return ErrSlugExists
	}
	if create {
		err = s.brands.Create(ctx, brand)
	} else {
		err = s.brands.Update(ctx, brand)
	}
	if errors.Is(err, repository.ErrDuplicate) {
		return ErrNameExists
	}
	return err
}

func applyBrandInput(brand *models.Brand, input BrandInput) {
	if input.Name != nil {
		brand.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		brand.Description = strings.TrimSpace(*input.Description)
	}
	if input.Logo != nil {
		brand.Logo = *input.Logo
	}
	if input.Website != nil {
		brand.Website = strings.TrimSpace(*input.Website)
	}
	if input.IsActive != nil {
		brand.IsActive = *input.IsActive
	}
	if input.Country != nil {
		brand.Country = strings.TrimSpace(*input.Country)
	}
	if input.EstablishedYear != nil {
		brand.EstablishedYear = *input.EstablishedYear
	}
	if input.SeoData != nil {
		applySeoInput(&brand.SeoData, input.SeoData)
	}
}

func (s *BrandService) attachCounts(ctx context.Context, brands []models.Brand) error {
	if len(brands) == 0 {
		return nil
	}
	names := make([]string, 0, len(brands))
	for _, brand := range brands {
		names = append(names, brand.Name)
	}
	counts, err := s.products.CountActiveByBrands(ctx, names)
	if err != nil {
		return err
	}
	for i := range brands {
		brands[i].ProductCount = counts[brands[i].Name]
	}
	return nil
}
