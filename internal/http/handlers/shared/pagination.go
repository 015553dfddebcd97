package shared

import (
	"github.com/think41/catalog/internal/config"
	"github.com/think41/catalog/internal/listquery"
)

// ListOptions 各资源的分页策略
type ListOptions struct {
	Products    listquery.Options
	Featured    int
	Categories  listquery.Options
	Brands      listquery.Options
	Departments listquery.Options
	Centers     listquery.Options
}

// NewListOptions 从配置构建分页策略
func NewListOptions(cfg config.CatalogConfig) ListOptions {
	maxLimit := cfg.MaxPageSize
	if maxLimit <= 0 {
		maxLimit = 100
	}
	defaultLimit := cfg.DefaultPageSize
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	taxonomyLimit := cfg.TaxonomyPageSize
	if taxonomyLimit <= 0 {
		taxonomyLimit = 100
	}
	return ListOptions{
		Products:    listquery.Options{DefaultLimit: defaultLimit, MaxLimit: maxLimit, DefaultDesc: true},
		Featured:    cfg.FeaturedLimit,
		Categories:  listquery.Options{DefaultLimit: taxonomyLimit, MaxLimit: maxLimit, AllowAll: true},
		Brands:      listquery.Options{DefaultLimit: taxonomyLimit, MaxLimit: maxLimit, AllowAll: true},
		Departments: listquery.Options{DefaultLimit: defaultLimit, MaxLimit: maxLimit, AllowAll: true, DefaultDesc: true},
		Centers:     listquery.Options{DefaultLimit: defaultLimit, MaxLimit: maxLimit},
	}
}
