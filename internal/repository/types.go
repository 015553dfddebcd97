package repository

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// ErrDuplicate 唯一键冲突
var ErrDuplicate = errors.New("duplicate key")

// ActiveScope 软删除状态过滤范围，零值为仅有效记录
type ActiveScope int

const (
	ActiveOnly ActiveScope = iota
	InactiveOnly
	AnyActive
)

// SortKey 排序字段（字段名为接口字段名，已校验）
type SortKey struct {
	Field string
	Desc  bool
}

// 各资源允许的排序字段
var (
	ProductSortFields            = []string{"createdAt", "updatedAt", "name", "retailPrice", "cost", "productId", "stock", "rating", "brand", "category"}
	CategorySortFields           = []string{"sortOrder", "name", "createdAt", "updatedAt"}
	BrandSortFields              = []string{"name", "createdAt", "updatedAt", "establishedYear"}
	DepartmentSortFields         = []string{"name", "slug", "createdAt", "updatedAt"}
	DistributionCenterSortFields = []string{"centerId", "name", "capacity", "createdAt"}
)

// 各资源默认排序
var (
	DefaultProductSort            = []SortKey{{Field: "createdAt", Desc: true}}
	DefaultCategorySort           = []SortKey{{Field: "sortOrder"}, {Field: "name"}}
	DefaultBrandSort              = []SortKey{{Field: "name"}}
	DefaultDepartmentSort         = []SortKey{{Field: "createdAt", Desc: true}}
	DefaultDistributionCenterSort = []SortKey{{Field: "centerId"}}
)

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page           int
	PageSize       int
	Category       string
	Brand          string
	Department     string // 原始参数，由 service 解析为 DepartmentID 或 DepartmentName
	DepartmentID   string
	DepartmentName string
	MinPrice       *decimal.Decimal
	MaxPrice       *decimal.Decimal
	Search         string
	Active         ActiveScope
	Sort           []SortKey
}

// CategoryListFilter 查询分类列表的过滤条件
type CategoryListFilter struct {
	Page       int
	PageSize   int
	Department string
	Search     string
	Active     ActiveScope
	Sort       []SortKey
}

// BrandListFilter 查询品牌列表的过滤条件
type BrandListFilter struct {
	Page     int
	PageSize int
	Search   string
	Active   ActiveScope
	Sort     []SortKey
}

// DepartmentListFilter 查询部门列表的过滤条件
type DepartmentListFilter struct {
	Page     int
	PageSize int
	Search   string
	Active   ActiveScope
	Sort     []SortKey
}

// DistributionCenterListFilter 查询配送中心列表的过滤条件
type DistributionCenterListFilter struct {
	Page     int
	PageSize int
	Region   string
	Active   ActiveScope
	Sort     []SortKey
}

// ProductDepartmentRef 待迁移商品的部门文本
type ProductDepartmentRef struct {
	ID             string
	DepartmentName string
}

// DepartmentAssignment 商品部门关联写入
type DepartmentAssignment struct {
	ProductID    string
	DepartmentID string
}

// LinkedProductSample 迁移校验抽样
type LinkedProductSample struct {
	ProductID      string
	DepartmentName string
	ResolvedName   string
}

func sortOrDefault(keys, fallback []SortKey) []SortKey {
	if len(keys) == 0 {
		return fallback
	}
	return keys
}

// PageOffset 页码对应的偏移量；溢出时饱和为 math.MaxInt，使越界页返回空结果
func PageOffset(page, pageSize int) int {
	if pageSize <= 0 || page <= 1 {
		return 0
	}
	if page-1 > math.MaxInt/pageSize {
		return math.MaxInt
	}
	return (page - 1) * pageSize
}
