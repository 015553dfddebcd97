package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/think41/catalog/internal/models"

	"gorm.io/gorm"
)

// DistributionCenterRepository 配送中心数据访问接口
type DistributionCenterRepository interface {
	List(ctx context.Context, filter DistributionCenterListFilter) ([]models.DistributionCenter, int64, error)
	FindByKey(ctx context.Context, key string, scope ActiveScope) (*models.DistributionCenter, error)
	GetByCenterID(ctx context.Context, centerID int64) (*models.DistributionCenter, error)
	Create(ctx context.Context, center *models.DistributionCenter) error
}

// GormDistributionCenterRepository GORM 实现
type GormDistributionCenterRepository struct {
	db *gorm.DB
}

// NewDistributionCenterRepository 创建配送中心仓库
func NewDistributionCenterRepository(db *gorm.DB) *GormDistributionCenterRepository {
	return &GormDistributionCenterRepository{db: db}
}

func (r *GormDistributionCenterRepository) centerPredicate(ctx context.Context, filter DistributionCenterListFilter) *gorm.DB {
	query := applyActiveScope(r.db.WithContext(ctx).Model(&models.DistributionCenter{}), filter.Active)
	if region := strings.TrimSpace(filter.Region); region != "" {
		// serving_regions 为 JSON 数组文本，按带引号的元素匹配
		condition, count := buildLikeCondition(dbDialectName(r.db), []string{"CAST(serving_regions AS TEXT)"})
		query = query.Where(condition, repeatLikeArgs(containsPattern(`"`+region+`"`), count)...)
	}
	return query
}

// List 配送中心列表
func (r *GormDistributionCenterRepository) List(ctx context.Context, filter DistributionCenterListFilter) ([]models.DistributionCenter, int64, error) {
	var total int64
	if err := r.centerPredicate(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query := applySort(r.centerPredicate(ctx, filter), sortOrDefault(filter.Sort, DefaultDistributionCenterSort))
	query = applyPagination(query, filter.Page, filter.PageSize)

	centers := make([]models.DistributionCenter, 0)
	if err := query.Find(&centers).Error; err != nil {
		return nil, 0, err
	}
	return centers, total, nil
}

// FindByKey 按主键或数字编号查询
func (r *GormDistributionCenterRepository) FindByKey(ctx context.Context, key string, scope ActiveScope) (*models.DistributionCenter, error) {
	key = strings.TrimSpace(key)
	query := applyActiveScope(r.db.WithContext(ctx).Model(&models.DistributionCenter{}), scope)
	switch {
	case models.IsID(key):
		query = query.Where("id = ?", key)
	default:
		centerID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, nil
		}
		query = query.Where("center_id = ?", centerID)
	}
	var center models.DistributionCenter
	if err := query.First(&center).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &center, nil
}

// GetByCenterID 根据数字编号获取配送中心
func (r *GormDistributionCenterRepository) GetByCenterID(ctx context.Context, centerID int64) (*models.DistributionCenter, error) {
	var center models.DistributionCenter
	if err := r.db.WithContext(ctx).Where("center_id = ?", centerID).First(&center).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &center, nil
}

// Create 创建配送中心
func (r *GormDistributionCenterRepository) Create(ctx context.Context, center *models.DistributionCenter) error {
	return translateError(r.db.WithContext(ctx).Create(center).Error)
}
