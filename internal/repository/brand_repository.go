package repository

import (
	"context"
	"strings"

	"github.com/think41/catalog/internal/models"

	"gorm.io/gorm"
)

// BrandRepository 品牌数据访问接口
type BrandRepository interface {
	List(ctx context.Context, filter BrandListFilter) ([]models.Brand, int64, error)
	FindByKey(ctx context.Context, key string, scope ActiveScope) (*models.Brand, error)
	GetByID(ctx context.Context, id string) (*models.Brand, error)
	GetByName(ctx context.Context, name string) (*models.Brand, error)
	Create(ctx context.Context, brand *models.Brand) error
	Update(ctx context.Context, brand *models.Brand) error
	ExistsByName(ctx context.Context, name string, excludeID string) (bool, error)
	ExistsBySlug(ctx context.Context, slug string, excludeID string) (bool, error)
}

// GormBrandRepository GORM 实现
type GormBrandRepository struct {
	db *gorm.DB
}

// NewBrandRepository 创建品牌仓库
func NewBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

// brandPredicate 品牌名称按大小写不敏感的子串匹配
func (r *GormBrandRepository) brandPredicate(ctx context.Context, filter BrandListFilter) *gorm.DB {
	query := applyActiveScope(r.db.WithContext(ctx).Model(&models.Brand{}), filter.Active)
	if search := strings.TrimSpace(filter.Search); search != "" {
		dialect := dbDialectName(r.db)
		column := "name"
		if dialect != "postgres" {
			column = "LOWER(name)"
			search = strings.ToLower(search)
		}
		condition, count := buildLikeCondition(dialect, []string{column})
		query = query.Where(condition, repeatLikeArgs(containsPattern(search), count)...)
	}
	return query
}

// List 品牌列表
func (r *GormBrandRepository) List(ctx context.Context, filter BrandListFilter) ([]models.Brand, int64, error) {
	var total int64
	if err := r.brandPredicate(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query := applySort(r.brandPredicate(ctx, filter), sortOrDefault(filter.Sort, DefaultBrandSort))
	query = applyPagination(query, filter.Page, filter.PageSize)

	brands := make([]models.Brand, 0)
	if err := query.Find(&brands).Error; err != nil {
		return nil, 0, err
	}
	return brands, total, nil
}

// FindByKey 按主键或 slug 查询
func (r *GormBrandRepository) FindByKey(ctx context.Context, key string, scope ActiveScope) (*models.Brand, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, nil
	}
	query := applyActiveScope(r.db.WithContext(ctx).Model(&models.Brand{}), scope)
	if models.IsID(key) {
		query = query.Where("(id = ? OR seo_slug = ?)", key, strings.ToLower(key))
	} else {
		query = query.Where("seo_slug = ?", strings.ToLower(key))
	}
	var brand models.Brand
	if err := query.First(&brand).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &brand, nil
}

// GetByID 根据主键获取品牌（不区分有效状态）
func (r *GormBrandRepository) GetByID(ctx context.Context, id string) (*models.Brand, error) {
	if !models.IsID(id) {
		return nil, nil
	}
	var brand models.Brand
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&brand).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &brand, nil
}

// GetByName 根据名称获取品牌
func (r *GormBrandRepository) GetByName(ctx context.Context, name string) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.WithContext(ctx).Where("name = ?", strings.TrimSpace(name)).First(&brand).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &brand, nil
}

// Create 创建品牌
func (r *GormBrandRepository) Create(ctx context.Context, brand *models.Brand) error {
	return translateError(r.db.WithContext(ctx).Create(brand).Error)
}

// Update 更新品牌
func (r *GormBrandRepository) Update(ctx context.Context, brand *models.Brand) error {
	return translateError(r.db.WithContext(ctx).Save(brand).Error)
}

// ExistsByName 名称是否已被占用
func (r *GormBrandRepository) ExistsByName(ctx context.Context, name string, excludeID string) (bool, error) {
	return existsExcluding(r.db.WithContext(ctx).Model(&models.Brand{}).Where("name = ?", strings.TrimSpace(name)), excludeID)
}

// ExistsBySlug slug 是否已被占用
func (r *GormBrandRepository) ExistsBySlug(ctx context.Context, slug string, excludeID string) (bool, error) {
	return existsExcluding(r.db.WithContext(ctx).Model(&models.Brand{}).Where("seo_slug = ?", slug), excludeID)
}
