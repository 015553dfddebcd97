package service

import (
	"context"
	"errors"
	"strings"

	"github.com/think41/catalog/internal/models"
	"github.com/think41/catalog/internal/repository"
)

// DepartmentService 部门业务服务
type DepartmentService struct {
	departments repository.DepartmentRepository
	products    repository.ProductRepository
	settings    CatalogSettings
}

// NewDepartmentService 创建部门服务
func NewDepartmentService(departments repository.DepartmentRepository, products repository.ProductRepository, settings CatalogSettings) *DepartmentService {
	return &DepartmentService{departments: departments, products: products, settings: settings}
}

// DepartmentSeoInput 部门 SEO 输入
type DepartmentSeoInput struct {
	MetaTitle       *string   `json:"metaTitle"`
	MetaDescription *string   `json:"metaDescription"`
	Keywords        *[]string `json:"keywords"`
}

// DepartmentInput 创建/更新部门输入
type DepartmentInput struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	IsActive    *bool               `json:"isActive"`
	SeoData     *DepartmentSeoInput `json:"seoData"`
}

// List 部门列表（附带有效商品数）
func (s *DepartmentService) List(ctx context.Context, filter repository.DepartmentListFilter) ([]models.Department, int64, error) {
	departments, total, err := s.departments.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if err := s.attachCounts(ctx, departments); err != nil {
		return nil, 0, err
	}
	return departments, total, nil
}

// GetByKey 按主键或 slug 获取有效部门
func (s *DepartmentService) GetByKey(ctx context.Context, key string) (*models.Department, error) {
	department, err := s.departments.FindByKey(ctx, key, repository.ActiveOnly)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}
	single := []models.Department{*department}
	if err := s.attachCounts(ctx, single); err != nil {
		return nil, err
	}
	department.ProductCount = single[0].ProductCount
	return department, nil
}

// Products 有效部门下的有效商品
func (s *DepartmentService) Products(ctx context.Context, key string, filter repository.ProductListFilter) (*models.Department, []models.Product, int64, error) {
	department, err := s.departments.FindByKey(ctx, key, repository.ActiveOnly)
	if err != nil {
		return nil, nil, 0, err
	}
	if department == nil {
		return nil, nil, 0, ErrDepartmentNotFound
	}
	filter.Department = ""
	filter.DepartmentName = ""
	filter.DepartmentID = department.ID
	filter.Active = repository.ActiveOnly
	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, nil, 0, err
	}
	return department, products, total, nil
}

// Create 创建部门，自动生成 slug 与 SEO 信息
func (s *DepartmentService) Create(ctx context.Context, input DepartmentInput) (*models.Department, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, invalid("name", "is required")
	}
	department := &models.Department{IsActive: true}
	applyDepartmentInput(department, input)
	department.ApplyDefaults(s.settings.StoreName)
	if department.Slug == "" {
		return nil, invalid("name", "must contain letters or digits")
	}
	if err := s.save(ctx, department, true); err != nil {
		return nil, err
	}
	return department, nil
}

// Update 更新部门；slug 保持不变，改名时同步已关联商品的部门名称
func (s *DepartmentService) Update(ctx context.Context, id string, input DepartmentInput) (*models.Department, error) {
	department, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}
	previousName := department.Name
	applyDepartmentInput(department, input)
	if department.Name == "" {
		return nil, invalid("name", "is required")
	}
	if err := s.save(ctx, department, false); err != nil {
		return nil, err
	}
	if department.Name != previousName {
		if _, err := s.products.RenameDepartment(ctx, department.ID, department.Name); err != nil {
			return nil, err
		}
	}
	return department, nil
}

// Delete 软删除部门；仍有有效商品引用时拒绝
func (s *DepartmentService) Delete(ctx context.Context, id string) error {
	department, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if department == nil {
		return ErrDepartmentNotFound
	}
	counts, err := s.products.CountActiveByDepartments(ctx, []string{department.ID})
	if err != nil {
		return err
	}
	if count := counts[department.ID]; count > 0 {
		return &DepartmentInUseError{Count: count}
	}
	department.IsActive = false
	return s.departments.Update(ctx, department)
}

func (s *DepartmentService) save(ctx context.Context, department *models.Department, create bool) error {
	exists, err := s.departments.ExistsByName(ctx, department.Name, department.ID)
	if err != nil {
		return err
	}
	if exists {
		return ErrNameExists
	}
	exists, err = s.departments.ExistsBySlug(ctx, department.Slug, department.ID)
	if err != nil {
		return err
	}
	if exists {
		return ErrSlugExists
	}
	if create {
		err = s.departments.Create(ctx, department)
	} else {
		err = s.departments.Update(ctx, department)
	}
	if errors.Is(err, repository.ErrDuplicate) {
		return ErrNameExists
	}
	return err
}

func applyDepartmentInput(department *models.Department, input DepartmentInput) {
	if input.Name != nil {
		department.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		department.Description = strings.TrimSpace(*input.Description)
	}
	if input.IsActive != nil {
		department.IsActive = *input.IsActive
	}
	if input.SeoData != nil {
		if input.SeoData.MetaTitle != nil {
			department.SeoData.MetaTitle = strings.TrimSpace(*input.SeoData.MetaTitle)
		}
		if input.SeoData.MetaDescription != nil {
			department.SeoData.MetaDescription = strings.TrimSpace(*input.SeoData.MetaDescription)
		}
		if input.SeoData.Keywords != nil {
			department.SeoData.Keywords = models.StringArray(*input.SeoData.Keywords)
		}
	}
}

func (s *DepartmentService) attachCounts(ctx context.Context, departments []models.Department) error {
	if len(departments) == 0 {
		return nil
	}
	ids := make([]string, 0, len(departments))
	for _, department := range departments {
		ids = append(ids, department.ID)
	}
	counts, err := s.products.CountActiveByDepartments(ctx, ids)
	if err != nil {
		return err
	}
	for i := range departments {
		departments[i].ProductCount = counts[departments[i].ID]
	}
	return nil
}
