package service

import (
	"context"

	"github.com/think41/catalog/internal/models"
	"github.com/think41/catalog/internal/repository"
)

// DistributionCenterService 配送中心查询服务
type DistributionCenterService struct {
	centers  repository.DistributionCenterRepository
	products repository.ProductRepository
}

// NewDistributionCenterService 创建配送中心服务
func NewDistributionCenterService(centers repository.DistributionCenterRepository, products repository.ProductRepository) *DistributionCenterService {
	return &DistributionCenterService{centers: centers, products: products}
}

// List 配送中心列表（附带有效商品数）
func (s *DistributionCenterService) List(ctx context.Context, filter repository.DistributionCenterListFilter) ([]models.DistributionCenter, int64, error) {
	centers, total, err := s.centers.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if err := s.attachCounts(ctx, centers); err != nil {
		return nil, 0, err
	}
	return centers, total, nil
}

// GetByKey 按主键或数字编号获取有效配送中心
func (s *DistributionCenterService) GetByKey(ctx context.Context, key string) (*models.DistributionCenter, error) {
	center, err := s.centers.FindByKey(ctx, key, repository.ActiveOnly)
	if err != nil {
		return nil, err
	}
	if center == nil {
		return nil, ErrDistributionCenterNotFound
	}
	single := []models.DistributionCenter{*center}
	if err := s.attachCounts(ctx, single); err != nil {
		return nil, err
	}
	center.ProductCount = single[0].ProductCount
	return center, nil
}

func (s *DistributionCenterService) attachCounts(ctx context.Context, centers []models.DistributionCenter) error {
	if len(centers) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(centers))
	for _, center := range centers {
		ids = append(ids, center.CenterID)
	}
	counts, err := s.products.CountActiveByCenters(ctx, ids)
	if err != nil {
		return err
	}
	for i := range centers {
		centers[i].ProductCount = counts[centers[i].CenterID]
	}
	return nil
}
