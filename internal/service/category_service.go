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

// CategoryService 分类业务服务
type CategoryService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(categories repository.CategoryRepository, products repository.ProductRepository) *CategoryService {
	return &CategoryService{categories: categories, products: products}
}

// SeoInput 分类 / 品牌 SEO 输入
type SeoInput struct {
	MetaTitle       *string `json:"metaTitle"`
	MetaDescription *string `json:"metaDescription"`
	Slug            *string `json:"slug"`
}

// CategoryInput 创建/更新分类输入
type CategoryInput struct {
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	Department     *string          `json:"department"`
	ParentCategory *string          `json:"parentCategory"`
	IsActive       *bool            `json:"isActive"`
	SortOrder      *int             `json:"sortOrder"`
	Image          *models.ImageRef `json:"image"`
	SeoData        *SeoInput        `json:"seoData"`
}

// List 分类列表（附带有效商品数）
func (s *CategoryService) List(ctx context.Context, filter repository.CategoryListFilter) ([]models.Category, int64, error) {
	categories, total, err := s.categories.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if err := s.attachCounts(ctx, categories); err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

// GetByKey 按主键或 slug 获取有效分类（附带子分类与商品数）
func (s *CategoryService) GetByKey(ctx context.Context, key string) (*models.Category, error) {
	category, err := s.categories.FindByKey(ctx, key, repository.ActiveOnly)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	children, err := s.categories.ListChildren(ctx, category.ID, repository.ActiveOnly)
	if err != nil {
		return nil, err
	}
	category.Subcategories = children
	single := []models.Category{*category}
	if err := s.attachCounts(ctx, single); err != nil {
		return nil, err
	}
	category.ProductCount = single[0].ProductCount
	return category, nil
}

// Create 创建分类
func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*models.Category, error) {
	if input.Name == nil {
		return nil, invalid("name", "is required")
	}
	if input.Department == nil {
		return nil, invalid("department", "is required")
	}
	category := &models.Category{IsActive: true}
	if err := s.applyInput(ctx, category, input); err != nil {
		return nil, err
	}
	if category.SeoData.Slug == "" {
		category.SeoData.Slug = slug.Make(category.Name)
	}
	if err := s.save(ctx, category, true); err != nil {
		return nil, err
	}
	return category, nil
}

// Update 更新分类
func (s *CategoryService) Update(ctx context.Context, id string, input CategoryInput) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	if err := s.applyInput(ctx, category, input); err != nil {
		return nil, err
	}
	if err := s.save(ctx, category, false); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete 软删除分类
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	category.IsActive = false
	return s.categories.Update(ctx, category)
}

func (s *CategoryService) save(ctx context.Context, category *models.Category, create bool) error {
	if category.Name == "" {
		return invalid("name", "is required")
	}
	if !constants.IsCategoryDepartment(category.Department) {
		return invalid("department", "must be one of "+strings.Join(constants.CategoryDepartments, ", "))
	}
	if category.SeoData.Slug == "" {
		return invalid("seoData.slug", "is required")
	}
	exists, err := s.categories.ExistsByName(ctx, category.Name, category.ID)
	if err != nil {
		return err
	}
	if exists {
		return ErrNameExists
	}
	exists, err = s.categories.ExistsBySlug(ctx, category.SeoData.Slug, category.ID)
	if err != nil {
		return err
	}
	if exists {
		return ErrSlugExists
	}
	if create {
		err = s.categories.Create(ctx, category)
	} else {
		err = s.categories.Update(ctx, category)
	}
	if errors.Is(err, repository.ErrDuplicate) {
		return ErrNameExists
	}
	return err
}

func (s *CategoryService) applyInput(ctx context.Context, category *models.Category, input CategoryInput) error {
	if input.Name != nil {
		category.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		category.Description = strings.TrimSpace(*input.Description)
	}
	if input.Department != nil {
		category.Department = strings.TrimSpace(*input.Department)
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}
	if input.Image != nil {
		category.Image = *input.Image
	}
	if input.SeoData != nil {
		applySeoInput(&category.SeoData, input.SeoData)
	}
	if input.ParentCategory != nil {
		parentID := strings.TrimSpace(*input.ParentCategory)
		if parentID == "" {
			category.ParentID = nil
			return nil
		}
		if parentID == category.ID {
			return invalid("parentCategory", "must not reference itself")
		}
		parent, err := s.categories.GetByID(ctx, parentID)
		if err != nil {
			return err
		}
		if parent == nil {
			return invalid("parentCategory", "does not exist")
		}
		category.ParentID = &parent.ID
	}
	return nil
}

func (s *CategoryService) attachCounts(ctx context.Context, categories []models.Category) error {
	if len(categories) == 0 {
		return nil
	}
	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, category.Name)
	}
	counts, err := s.products.CountActiveByCategories(ctx, names)
	if err != nil {
		return err
	}
	for i := range categories {
		categories[i].ProductCount = counts[categories[i].Name]
	}
	return nil
}

func applySeoInput(seo *models.SeoData, input *SeoInput) {
	if input.MetaTitle != nil {
		seo.MetaTitle = strings.TrimSpace(*input.MetaTitle)
	}
	if input.MetaDescription != nil {
		seo.MetaDescription = strings.TrimSpace(*input.MetaDescription)
	}
	if input.Slug != nil {
		seo.Slug = slug.Make(*input.Slug)
	}
}
