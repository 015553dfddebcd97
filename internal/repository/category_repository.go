package repository

import (
	"context"
	"strings"

	"github.com/think41/catalog/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository 分类数据访问接口
type CategoryRepository interface {
	List(ctx context.Context, filter CategoryListFilter) ([]models.Category, int64, error)
	FindByKey(ctx context.Context, key string, scope ActiveScope) (*models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	GetByName(ctx context.Context, name string) (*models.Category, error)
	ListChildren(ctx context.Context, parentID string, scope ActiveScope) ([]models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	ExistsByName(ctx context.Context, name string, excludeID string) (bool, error)
	ExistsBySlug(ctx context.Context, slug string, excludeID string) (bool, error)
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) categoryPredicate(ctx context.Context, filter CategoryListFilter) *gorm.DB {
	query := applyActiveScope(r.db.WithContext(ctx).Model(&models.Category{}), filter.Active)
	if department := strings.TrimSpace(filter.Department); department != "" {
		query = query.Where("department = ?", department)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, count := buildLikeCondition(dbDialectName(r.db), []string{"name"})
		query = query.Where(condition, repeatLikeArgs(containsPattern(search), count)...)
	}
	return query
}

// List 分类列表
func (r *GormCategoryRepository) List(ctx context.Context, filter CategoryListFilter) ([]models.Category, int64, error) {
	var total int64
	if err := r.categoryPredicate(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query := applySort(r.categoryPredicate(ctx, filter), sortOrDefault(filter.Sort, DefaultCategorySort))
	query = applyPagination(query, filter.Page, filter.PageSize)

	categories := make([]models.Category, 0)
	if err := query.Find(&categories).Error; err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

// FindByKey 按主键或 slug 查询
func (r *GormCategoryRepository) FindByKey(ctx context.Context, key string, scope ActiveScope) (*models.Category, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, nil
	}
	query := applyActiveScope(r.db.WithContext(ctx).Model(&models.Category{}), scope)
	if models.IsID(key) {
		query = query.Where("(id = ? OR seo_slug = ?)", key, strings.ToLower(key))
	} else {
		query = query.Where("seo_slug = ?", strings.ToLower(key))
	}
	var category models.Category
	if err := query.First(&category).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &category, nil
}

// GetByID 根据主键获取分类（不区分有效状态）
func (r *GormCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	if !models.IsID(id) {
		return nil, nil
	}
	var category models.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &category, nil
}

// GetByName 根据名称获取分类
func (r *GormCategoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("name = ?", strings.TrimSpace(name)).First(&category).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &category, nil
}

// ListChildren 查询子分类
func (r *GormCategoryRepository) ListChildren(ctx context.Context, parentID string, scope ActiveScope) ([]models.Category, error) {
	children := make([]models.Category, 0)
	query := applyActiveScope(r.db.WithContext(ctx).Model(&models.Category{}), scope).Where("parent_id = ?", parentID)
	if err := applySort(query, DefaultCategorySort).Find(&children).Error; err != nil {
		return nil, err
	}
	return children, nil
}

// Create 创建分类
func (r *GormCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return translateError(r.db.WithContext(ctx).Create(category).Error)
}

// Update 更新分类
func (r *GormCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	return translateError(r.db.WithContext(ctx).Save(category).Error)
}

// ExistsByName 名称是否已被占用
func (r *GormCategoryRepository) ExistsByName(ctx context.Context, name string, excludeID string) (bool, error) {
	return existsExcluding(r.db.WithContext(ctx).Model(&models.Category{}).Where("name = ?", strings.TrimSpace(name)), excludeID)
}

// ExistsBySlug slug 是否已被占用
func (r *GormCategoryRepository) ExistsBySlug(ctx context.Context, slug string, excludeID string) (bool, error) {
	return existsExcluding(r.db.WithContext(ctx).Model(&models.Category{}).Where("seo_slug = ?", slug), excludeID)
}
