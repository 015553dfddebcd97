package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sortColumns 接口排序字段到数据库列的映射
var sortColumns = map[string]string{
	"createdAt":       "created_at",
	"updatedAt":       "updated_at",
	"name":            "name",
	"retailPrice":     "retail_price",
	"cost":            "cost",
	"productId":       "product_id",
	"stock":           "stock",
	"rating":          "rating_average",
	"brand":           "brand",
	"category":        "category",
	"sortOrder":       "sort_order",
	"establishedYear": "established_year",
	"slug":            "slug",
	"centerId":        "center_id",
	"capacity":        "capacity",
}

// applyPagination 应用分页参数，非法页码按第一页处理，溢出的偏移量见 PageOffset
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	return query.Limit(pageSize).Offset(PageOffset(page, pageSize))
}

// applySort 应用排序，并以主键升序兜底保证全序。
func applySort(query *gorm.DB, keys []SortKey) *gorm.DB {
	for _, key := range keys {
		column, ok := sortColumns[key.Field]
		if !ok {
			continue
		}
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: key.Desc})
	}
	return query.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
}

// applyActiveScope 软删除过滤，所有查询路径共用
func applyActiveScope(query *gorm.DB, scope ActiveScope) *gorm.DB {
	switch scope {
	case ActiveOnly:
		return query.Where("is_active = ?", true)
	case InactiveOnly:
		return query.Where("is_active = ?", false)
	default:
		return query
	}
}

// translateError 统一唯一键冲突错误
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

// notFoundAsNil 记录不存在时返回 nil
func notFoundAsNil(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
