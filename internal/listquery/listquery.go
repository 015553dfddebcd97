// Package listquery 将请求查询参数解析为经过校验的列表过滤条件。
//
// 解析只发生在 HTTP 边界一次，得到的过滤结构体按值向下传递，不再被修改。
package listquery

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/think41/catalog/internal/constants"
	"github.com/think41/catalog/internal/repository"

	"github.com/shopspring/decimal"
)

// FieldError 查询参数校验失败
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid query parameter %s: %s", e.Field, e.Reason)
}

// Options 分页与排序策略
type Options struct {
	DefaultLimit int
	MaxLimit     int
	// AllowAll 是否接受 isActive=all
	AllowAll bool
	// DefaultDesc 仅指定 sortBy 时的排序方向
	DefaultDesc bool
}

func (o Options) normalized() Options {
	if o.MaxLimit <= 0 {
		o.MaxLimit = 100
	}
	if o.DefaultLimit <= 0 {
		o.DefaultLimit = 20
	}
	if o.DefaultLimit > o.MaxLimit {
		o.DefaultLimit = o.MaxLimit
	}
	return o
}

// Window 解析 page / limit；limit 超过上限时截断，page 须保证偏移量不溢出
func Window(values url.Values, opts Options) (int, int, error) {
	opts = opts.normalized()
	page, err := positiveInt(values, "page", 1)
	if err != nil {
		return 0, 0, err
	}
	limit, err := positiveInt(values, "limit", opts.DefaultLimit)
	if err != nil {
		return 0, 0, err
	}
	if limit > opts.MaxLimit {
		limit = opts.MaxLimit
	}
	if page-1 > math.MaxInt/limit {
		return 0, 0, &FieldError{Field: "page", Reason: "is out of range"}
	}
	return page, limit, nil
}

// Sort 解析 sortBy / sortOrder，字段必须在白名单内；均未提供时返回 nil 由仓库使用默认排序
func Sort(values url.Values, allowed []string, opts Options) ([]repository.SortKey, error) {
	field := strings.TrimSpace(values.Get("sortBy"))
	order := strings.ToLower(strings.TrimSpace(values.Get("sortOrder")))

	desc := opts.DefaultDesc
	switch order {
	case "":
	case constants.SortOrderAsc:
		desc = false
	case constants.SortOrderDesc:
		desc = true
	default:
		return nil, &FieldError{Field: "sortOrder", Reason: "must be asc or desc"}
	}

	if field == "" {
		if order == "" {
			return nil, nil
		}
		if len(allowed) == 0 {
			return nil, nil
		}
		field = allowed[0]
	}
	for _, candidate := range allowed {
		if candidate == field {
			return []repository.SortKey{{Field: field, Desc: desc}}, nil
		}
	}
	return nil, &FieldError{Field: "sortBy", Reason: "unsupported sort field " + strconv.Quote(field)}
}

// Active 解析 isActive，缺省为仅有效记录
func Active(values url.Values, allowAll bool) (repository.ActiveScope, error) {
	raw := strings.ToLower(strings.TrimSpace(values.Get("isActive")))
	switch raw {
	case "", constants.ActiveFilterTrue:
		return repository.ActiveOnly, nil
	case constants.ActiveFilterFalse:
		return repository.InactiveOnly, nil
	case constants.ActiveFilterAll:
		if allowAll {
			return repository.AnyActive, nil
		}
	}
	if allowAll {
		return 0, &FieldError{Field: "isActive", Reason: "must be true, false or all"}
	}
	return 0, &FieldError{Field: "isActive", Reason: "must be true or false"}
}

// Price 解析价格参数，非数字或负数返回 FieldError
func Price(values url.Values, key string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, &FieldError{Field: key, Reason: "must be a number"}
	}
	if amount.IsNegative() {
		return nil, &FieldError{Field: key, Reason: "must not be negative"}
	}
	return &amount, nil
}

// Products 解析商品列表参数；isActive 不对外开放，始终为仅有效商品
func Products(values url.Values, opts Options) (repository.ProductListFilter, error) {
	filter := repository.ProductListFilter{
		Category:   strings.TrimSpace(values.Get("category")),
		Brand:      strings.TrimSpace(values.Get("brand")),
		Department: strings.TrimSpace(values.Get("department")),
		Search:     strings.TrimSpace(values.Get("search")),
		Active:     repository.ActiveOnly,
	}
	var err error
	if filter.Page, filter.PageSize, err = Window(values, opts); err != nil {
		return filter, err
	}
	if filter.MinPrice, err = Price(values, "minPrice"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = Price(values, "maxPrice"); err != nil {
		return filter, err
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return filter, &FieldError{Field: "minPrice", Reason: "must not exceed maxPrice"}
	}
	if filter.Sort, err = Sort(values, repository.ProductSortFields, opts); err != nil {
		return filter, err
	}
	return filter, nil
}

// Categories 解析分类列表参数
func Categories(values url.Values, opts Options) (repository.CategoryListFilter, error) {
	filter := repository.CategoryListFilter{
		Department: strings.TrimSpace(values.Get("department")),
		Search:     strings.TrimSpace(values.Get("search")),
	}
	if filter.Department != "" && !constants.IsCategoryDepartment(filter.Department) {
		return filter, &FieldError{Field: "department", Reason: "must be one of " + strings.Join(constants.CategoryDepartments, ", ")}
	}
	var err error
	if filter.Page, filter.PageSize, err = Window(values, opts); err != nil {
		return filter, err
	}
	if filter.Active, err = Active(values, opts.AllowAll); err != nil {
		return filter, err
	}
	if filter.Sort, err = Sort(values, repository.CategorySortFields, opts); err != nil {
		return filter, err
	}
	return filter, nil
}

// Brands 解析品牌列表参数
func Brands(values url.Values, opts Options) (repository.BrandListFilter, error) {
	filter := repository.BrandListFilter{Search: strings.TrimSpace(values.Get("search"))}
	var err error
	if filter.Page, filter.PageSize, err = Window(values, opts); err != nil {
		return filter, err
	}
	if filter.Active, err = Active(values, opts.AllowAll); err != nil {
		return filter, err
	}
	if filter.Sort, err = Sort(values, repository.BrandSortFields, opts); err != nil {
		return filter, err
	}
	return filter, nil
}

// Departments 解析部门列表参数
func Departments(values url.Values, opts Options) (repository.DepartmentListFilter, error) {
	filter := repository.DepartmentListFilter{Search: strings.TrimSpace(values.Get("search"))}
	var err error
	if filter.Page, filter.PageSize, err = Window(values, opts); err != nil {
		return filter, err
	}
	if filter.Active, err = Active(values, opts.AllowAll); err != nil {
		return filter, err
	}
	if filter.Sort, err = Sort(values, repository.DepartmentSortFields, opts); err != nil {
		return filter, err
	}
	return filter, nil
}

// DistributionCenters 解析配送中心列表参数
func DistributionCenters(values url.Values, opts Options) (repository.DistributionCenterListFilter, error) {
	filter := repository.DistributionCenterListFilter{
		Region: strings.TrimSpace(values.Get("region")),
		Active: repository.ActiveOnly,
	}
	var err error
	if filter.Page, filter.PageSize, err = Window(values, opts); err != nil {
		return filter, err
	}
	if filter.Sort, err = Sort(values, repository.DistributionCenterSortFields, opts); err != nil {
		return filter, err
	}
	return filter, nil
}

func positiveInt(values url.Values, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &FieldError{Field: key, Reason: "must be an integer"}
	}
	if value < 1 {
		return 0, &FieldError{Field: key, Reason: "must be at least 1"}
	}
	return value, nil
}
