package repository

import (
	"fmt"
	"strings"

	"github.com/think41/catalog/internal/models"

	"gorm.io/gorm"
)

// productSearchColumns 商品全文检索字段
var productSearchColumns = []string{"name", "description", "brand"}

// likeEscaper 转义 LIKE 通配符，保证用户输入只作为字面量匹配
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

func likeOperatorByDialect(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// containsPattern 构建包含匹配的 LIKE 参数
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}

// buildLikeCondition 构建多列 LIKE 条件（OR），返回条件与参数数量。
func buildLikeCondition(dialect string, columns []string) (string, int) {
	operator := likeOperatorByDialect(dialect)
	parts := make([]string, 0, len(columns))
	for _, column := range columns {
		trimmed := strings.TrimSpace(column)
		if trimmed == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf(`%s %s ? ESCAPE '\'`, trimmed, operator))
	}
	return strings.Join(parts, " OR "), len(parts)
}

// buildTextSearchCondition 构建商品全文检索条件。
// postgres 使用 tsvector 索引；sqlite 无全文索引，退化为 LIKE 匹配。
func buildTextSearchCondition(dialect, term string) (string, []interface{}) {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return models.ProductSearchDocument + " @@ plainto_tsquery('simple', ?)", []interface{}{term}
	default:
		condition, count := buildLikeCondition(dialect, productSearchColumns)
		return "(" + condition + ")", repeatLikeArgs(containsPattern(term), count)
	}
}

// repeatLikeArgs 生成重复的 LIKE 参数列表。
func repeatLikeArgs(like string, count int) []interface{} {
	args := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		args = append(args, like)
	}
	return args
}
