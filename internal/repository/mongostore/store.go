// Package mongostore 基于 MongoDB 的仓库实现，与 GORM 实现共用 repository 接口。
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/think41/catalog/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// 集合名称
const (
	collectionProducts            = "products"
	collectionCategories          = "categories"
	collectionBrands              = "brands"
	collectionDepartments         = "departments"
	collectionDistributionCenters = "distributioncenters"
	collectionMigrationRecords    = "migration_records"
)

// Store MongoDB 连接与数据库句柄
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect 连接 MongoDB 并校验可用性
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, errors.New("mongo uri is empty")
	}
	if strings.TrimSpace(database) == "" {
		return nil, errors.New("mongo database is empty")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	logger.Infow("mongo_connected", "database", database)
	return &Store{client: client, db: client.Database(database)}, nil
}

// Database 返回数据库句柄
func (s *Store) Database() *mongo.Database {
	return s.db
}

// Ping 健康检查
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close 断开连接
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// EnsureIndexes 创建唯一索引与商品全文索引
func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := func(field string) mongo.IndexModel {
		return mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}, Options: options.Index().SetUnique(true)}
	}
	plain := func(field string) mongo.IndexModel {
		return mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}}
	}
	specs := map[string][]mongo.IndexModel{
		collectionProducts: {
			unique("productId"),
			unique("sku"),
			unique("seoData.slug"),
			plain("category"),
			plain("brand"),
			plain("department"),
			plain("retailPrice"),
			plain("isActive"),
			{
				Keys: bson.D{
					{Key: "name", Value: "text"},
					{Key: "description", Value: "text"},
					{Key: "brand", Value: "text"},
				},
				Options: options.Index().SetName("product_text_search"),
			},
		},
		collectionCategories:          {unique("name"), unique("seoData.slug"), plain("parentCategory")},
		collectionBrands:              {unique("name"), unique("seoData.slug")},
		collectionDepartments:         {unique("name"), unique("slug")},
		collectionDistributionCenters: {unique("centerId")},
	}
	for name, indexes := range specs {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}
