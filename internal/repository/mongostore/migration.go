package mongostore

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/think41/catalog/internal/models"
	"github.com/think41/catalog/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MigrationStore MongoDB 迁移存储
type MigrationStore struct {
	products    *mongo.Collection
	departments *mongo.Collection
	records     *mongo.Collection
}

// NewMigrationStore 创建迁移存储
func NewMigrationStore(store *Store) *MigrationStore {
	return &MigrationStore{
		products:    store.collection(collectionProducts),
		departments: store.collection(collectionDepartments),
		records:     store.collection(collectionMigrationRecords),
	}
}

var _ repository.DepartmentMigrationStore = (*MigrationStore)(nil)

// unlinkedFilter 尚未关联部门的商品
var unlinkedFilter = bson.A{
	bson.M{"department": bson.M{"$exists": false}},
	bson.M{"department": nil},
	bson.M{"department": ""},
}

// Get 获取迁移记录
func (s *MigrationStore) Get(ctx context.Context, name string) (*models.MigrationRecord, error) {
	return findOne[models.MigrationRecord](ctx, s.records, bson.M{"_id": name})
}

// Save 写入迁移记录（存在则覆盖）
func (s *MigrationStore) Save(ctx context.Context, record *models.MigrationRecord) error {
	record.UpdatedAt = time.Now().UTC()
	_, err := s.records.ReplaceOne(ctx, bson.M{"_id": record.Name}, record, options.Replace().SetUpsert(true))
	return err
}

// List 全部迁移记录
func (s *MigrationStore) List(ctx context.Context) ([]models.MigrationRecord, error) {
	cursor, err := s.records.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "startedAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	records := make([]models.MigrationRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// DistinctProductDepartments 全量扫描商品的部门文本
func (s *MigrationStore) DistinctProductDepartments(ctx context.Context) ([]string, error) {
	values, err := s.products.Distinct(ctx, "departmentName", bson.M{"departmentName": bson.M{"$nin": bson.A{nil, ""}}})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(values))
	for _, value := range values {
		if name, ok := value.(string); ok && name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// InsertDepartments 无序批量插入，唯一键冲突的记录被跳过
func (s *MigrationStore) InsertDepartments(ctx context.Context, departments []models.Department) (int64, error) {
	if len(departments) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, 0, len(departments))
	for i := range departments {
		stamp(&departments[i].ID, &departments[i].CreatedAt, &departments[i].UpdatedAt)
		docs = append(docs, departments[i])
	}
	result, err := s.departments.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err == nil {
		return int64(len(result.InsertedIDs)), nil
	}
	var bulkErr mongo.BulkWriteException
	if !errors.As(err, &bulkErr) || bulkErr.WriteConcernError != nil {
		return 0, err
	}
	for _, writeErr := range bulkErr.WriteErrors {
		if writeErr.Code != 11000 {
			return 0, err
		}
	}
	return int64(len(departments) - len(bulkErr.WriteErrors)), nil
}

// ListDepartments 重新读取全部部门
func (s *MigrationStore) ListDepartments(ctx context.Context) ([]models.Department, error) {
	cursor, err := s.departments.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	departments := make([]models.Department, 0)
	if err := cursor.All(ctx, &departments); err != nil {
		return nil, err
	}
	return departments, nil
}

// ListUnlinkedProducts 按主键游标读取尚未关联部门的商品
func (s *MigrationStore) ListUnlinkedProducts(ctx context.Context, afterID string, limit int) ([]repository.ProductDepartmentRef, error) {
	filter := bson.M{"$or": unlinkedFilter}
	if afterID != "" {
		filter["_id"] = bson.M{"$gt": afterID}
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"_id": 1, "departmentName": 1})
	cursor, err := s.products.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ID             string `bson:"_id"`
		DepartmentName string `bson:"departmentName"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	refs := make([]repository.ProductDepartmentRef, 0, len(rows))
	for _, row := range rows {
		refs = append(refs, repository.ProductDepartmentRef{ID: row.ID, DepartmentName: row.DepartmentName})
	}
	return refs, nil
}

// AssignDepartments 单批次批量写入部门关联
func (s *MigrationStore) AssignDepartments(ctx context.Context, assignments []repository.DepartmentAssignment) (int64, error) {
	if len(assignments) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	writes := make([]mongo.WriteModel, 0, len(assignments))
	for _, item := range assignments {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": item.ProductID, "$or": unlinkedFilter}).
			SetUpdate(bson.M{"$set": bson.M{"department": item.DepartmentID, "updatedAt": now}}))
	}
	result, err := s.products.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// SampleLinkedProducts 随机抽样已关联部门的商品
func (s *MigrationStore) SampleLinkedProducts(ctx context.Context, limit int) ([]repository.LinkedProductSample, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"department": bson.M{"$nin": bson.A{nil, ""}}}}},
		{{Key: "$sample", Value: bson.M{"size": limit}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionDepartments,
			"localField":   "department",
			"foreignField": "_id",
			"as":           "resolved",
		}}},
		{{Key: "$unwind", Value: "$resolved"}},
		{{Key: "$project", Value: bson.M{"departmentName": 1, "resolvedName": "$resolved.name"}}},
	}
	cursor, err := s.products.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ID             string `bson:"_id"`
		DepartmentName string `bson:"departmentName"`
		ResolvedName   string `bson:"resolvedName"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	samples := make([]repository.LinkedProductSample, 0, len(rows))
	for _, row := range rows {
		samples = append(samples, repository.LinkedProductSample{
			ProductID:      row.ID,
			DepartmentName: row.DepartmentName,
			ResolvedName:   row.ResolvedName,
		})
	}
	return samples, nil
}
