package mongostore

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/think41/catalog/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// sortFields 接口排序字段到文档字段的映射
var sortFields = map[string]string{
	"createdAt":       "createdAt",
	"updatedAt":       "updatedAt",
	"name":            "name",
	"retailPrice":     "retailPrice",
	"cost":            "cost",
	"productId":       "productId",
	"stock":           "stock",
	"rating":          "rating.average",
	"brand":           "brand",
	"category":        "category",
	"sortOrder":       "sortOrder",
	"establishedYear": "establishedYear",
	"slug":            "slug",
	"centerId":        "centerId",
	"capacity":        "capacity",
}

// activeFilter 软删除过滤，所有查询路径共用
func activeFilter(filter bson.M, scope repository.ActiveScope) bson.M {
	if filter == nil {
		filter = bson.M{}
	}
	switch scope {
	case repository.ActiveOnly:
		filter["isActive"] = true
	case repository.InactiveOnly:
		filter["isActive"] = false
	}
	return filter
}

// sortDocument 构建排序文档，以 _id 升序兜底
func sortDocument(keys []repository.SortKey) bson.D {
	doc := make(bson.D, 0, len(keys)+1)
	for _, key := range keys {
		field, ok := sortFields[key.Field]
		if !ok {
			continue
		}
		direction := 1
		if key.Desc {
			direction = -1
		}
		doc = append(doc, bson.E{Key: field, Value: direction})
	}
	return append(doc, bson.E{Key: "_id", Value: 1})
}

// findOptions 排序与分页窗口
func findOptions(keys []repository.SortKey, page, pageSize int) *options.FindOptions {
	opts := options.Find().SetSort(sortDocument(keys))
	if pageSize > 0 {
		opts.SetSkip(int64(repository.PageOffset(page, pageSize))).SetLimit(int64(pageSize))
	}
	return opts
}

// containsRegex 大小写不敏感的字面量子串匹配
func containsRegex(value string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(strings.TrimSpace(value)), Options: "i"}
}

// listDocuments 计数与分页使用同一过滤条件
func listDocuments[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts *options.FindOptions) ([]T, int64, error) {
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	items := make([]T, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// findOne 查询单条，不存在返回 nil
func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) (*T, error) {
	var doc T
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

// exists 判断是否存在（可排除指定主键）
func exists(ctx context.Context, coll *mongo.Collection, filter bson.M, excludeID string) (bool, error) {
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	count, err := coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// translateError 统一唯一键冲突错误
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicate
	}
	return err
}

// countActiveBy 按字段分组统计有效商品数
func countActiveBy(ctx context.Context, coll *mongo.Collection, field string, keys interface{}) ([]bson.M, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"isActive": true, field: bson.M{"$in": keys}}}},
		{{Key: "$group", Value: bson.M{"_id": "$" + field, "total": bson.M{"$sum": 1}}}},
	}
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []bson.M
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func toInt64(value interface{}) int64 {
	switch v := value.(type) {
	case int32:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return 0
	}
}
