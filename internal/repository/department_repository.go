package repository

import (
	"context"
	"strings"

	"github.com/think41/catalog/internal/models"

	"gorm.io/gorm"
)

// DepartmentRepository 部门数据访问接口
type DepartmentRepository interface {
	List(ctx context.Context, filter DepartmentListFilter) ([]models.Department, int64, error)
	ListAll(ctx context.Context) ([]models.Department, error)
	FindByKey(ctx context.Context, key string, scope ActiveScope) (*models.Department, error)
	GetByID(ctx context.Context, id string) (*models.Department, error)
	Create(ctx context.Context, department *models.Department) error
	Update(ctx context.Context, department *models.Department) error
	ExistsByName(ctx context.Context, name string, excludeID string) (bool, error)
	ExistsBySlug(ctx context.Context, slug string, excludeID string) (bool, error)
}

// GormDepartmentRepository GORM 实现
type GormDepartmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository 创建部门仓库
func NewDepartmentRepository(db *gorm.DB) *GormDepartmentRepository {
	return &GormDepartmentRepository{db: db}
}

func (r *GormDepartmentRepository) departmentPredicate(ctx context.Context, filter DepartmentListFilter) *gorm.DB {
	query := applyActiveScope(r.db.WithContext(ctx).Model(&models.Department{}), filter.Active)
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, count := buildLikeCondition(dbDialectName(r.db), []string{"name", "description"})
		query = query.Where("("+condition+")", repeatLikeArgs(containsPattern(search), count)...)
	}
	return query
}

// List 部门列表
func (r *GormDepartmentRepository) List(ctx context.Context, filter DepartmentListFilter) ([]models.Department, int64, error) {
	var total int64
	if err := r.departmentPredicate(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query := applySort(r.departmentPredicate(ctx, filter), sortOrDefault(filter.Sort, DefaultDepartmentSort))
	query = applyPagination(query, filter.Page, filter.PageSize)

	departments := make([]models.Department, 0)
	if err := query.Find(&departments).Error; err != nil {
		return nil, 0, err
	}
	return departments, total, nil
}

// ListAll 全部部门（含无效）
func (r *GormDepartmentRepository) ListAll(ctx context.Context) ([]models.Department, error) {
	departments := make([]models.Department, 0)
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

// FindByKey 按主键或 slug 查询；仅在主键格式合法时加入主键条件
func (r *GormDepartmentRepository) FindByKey(ctx context.Context, key string, scope ActiveScope) (*models.Department, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, nil
	}
	query := applyActiveScope(r.db.WithContext(ctx).Model(&models.Department{}), scope)
	if models.IsID(key) {
		query = query.Where("(id = ? OR slug = ?)", key, strings.ToLower(key))
	} else {
		query = query.Where("slug = ?", strings.ToLower(key))
	}
	var department models.Department
	if err := query.First(&department).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &department, nil
}

// GetByID 根据主键获取部门（不区分有效状态）
func (r *GormDepartmentRepository) GetByID(ctx context.Context, id string) (*models.Department, error) {
	if !models.IsID(id) {
		return nil, nil
	}
	var department models.Department
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&department).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &department, nil
}

// Create 创建部门
func (r *GormDepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	return translateError(r.db.WithContext(ctx).Create(department).Error)
}

// Update 更新部门
func (r *GormDepartmentRepository) Update(ctx context.Context, department *models.Department) error {
	return translateError(r.db.WithContext(ctx).Save(department).Error)
}

// ExistsByName 名称是否已被占用
func (r *GormDepartmentRepository) ExistsByName(ctx context.Context, name string, excludeID string) (bool, error) {
	return existsExcluding(r.db.WithContext(ctx).Model(&models.Department{}).Where("name = ?", strings.TrimSpace(name)), excludeID)
}

// ExistsBySlug slug 是否已被占用
func (r *GormDepartmentRepository) ExistsBySlug(ctx context.Context, slug string, excludeID string) (bool, error) {
	return existsExcluding(r.db.WithContext(ctx).Model(&models.Department{}).Where("slug = ?", slug), excludeID)
}
