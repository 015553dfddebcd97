package service

import "github.com/think41/catalog/internal/config"

// CatalogSettings 商品目录业务参数
type CatalogSettings struct {
	StoreName     string
	FeaturedLimit int
	MaxPageSize   int
}

// NewCatalogSettings 从配置构建业务参数
func NewCatalogSettings(cfg config.CatalogConfig) CatalogSettings {
	settings := CatalogSettings{
		StoreName:     cfg.StoreName,
		FeaturedLimit: cfg.FeaturedLimit,
		MaxPageSize:   cfg.MaxPageSize,
	}
	if settings.StoreName == "" {
		settings.StoreName = "Think41"
	}
	if settings.MaxPageSize <= 0 {
		settings.MaxPageSize = 100
	}
	if settings.FeaturedLimit <= 0 {
		settings.FeaturedLimit = 12
	}
	return settings
}

// featuredLimit 抽样数量，超过分页上限时截断
func (s CatalogSettings) featuredLimit(requested int) int {
	limit := requested
	if limit <= 0 {
		limit = s.FeaturedLimit
	}
	if limit > s.MaxPageSize {
		limit = s.MaxPageSize
	}
	return limit
}
