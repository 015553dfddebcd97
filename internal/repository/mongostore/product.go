package mongostore

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/think41/catalog/internal/models"
	"github.com/think41/catalog/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductRepository MongoDB 商品仓库
type ProductRepository struct {
	coll *mongo.Collection
}

// NewProductRepository 创建商品仓库
func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{coll: store.collection(collectionProducts)}
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

// productFilter 构建列表过滤条件，计数与分页查询共用
func productFilter(filter repository.ProductListFilter) bson.M {
	doc := activeFilter(bson.M{}, filter.Active)
	if category := strings.TrimSpace(filter.Category); category != "" {
		doc["category"] = category
	}
	if brand := strings.TrimSpace(filter.Brand); brand != "" {
		doc["brand"] = brand
	}
	if filter.DepartmentID != "" {
		doc["department"] = filter.DepartmentID
	} else if filter.DepartmentName != "" {
		doc["departmentName"] = filter.DepartmentName
	}
	if filter.MinPrice != nil || filter.MaxPrice != nil {
		price := bson.M{}
		if filter.MinPrice != nil {
			price["$gte"] = filter.MinPrice.InexactFloat64()
		}
		if filter.MaxPrice != nil {
			price["$lte"] = filter.MaxPrice.InexactFloat64()
		}
		doc["retailPrice"] = price
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		doc["$text"] = bson.M{"$search": search}
	}
	return doc
}

// List 商品列表
func (r *ProductRepository) List(ctx context.Context, filter repository.ProductListFilter) ([]models.Product, int64, error) {
	sort := filter.Sort
	if len(sort) == 0 {
		sort = repository.DefaultProductSort
	}
	items, total, err := listDocuments[models.Product](ctx, r.coll, productFilter(filter), findOptions(sort, filter.Page, filter.PageSize))
	if err != nil {
		return nil, 0, err
	}
	fillProductVirtuals(items)
	return items, total, nil
}

// FindByKey 按主键 / 外部编号 / SKU / slug 单次查询
func (r *ProductRepository) FindByKey(ctx context.Context, key string, scope repository.ActiveScope) (*models.Product, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, nil
	}
	branches := bson.A{
		bson.M{"sku": strings.ToUpper(key)},
		bson.M{"seoData.slug": strings.ToLower(key)},
	}
	if models.IsID(key) {
		branches = append(branches, bson.M{"_id": key})
	}
	if productID, err := strconv.ParseInt(key, 10, 64); err == nil {
		branches = append(branches, bson.M{"productId": productID})
	}
	cursor, err := r.coll.Find(ctx, activeFilter(bson.M{"$or": branches}, scope),
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}).SetLimit(int64(len(branches))))
	if err != nil {
		return nil, err
	}
	candidates := make([]models.Product, 0, len(branches))
	if err := cursor.All(ctx, &candidates); err != nil {
		return nil, err
	}
	product := repository.PreferredKeyMatch(candidates, key)
	if product != nil {
		product.FillVirtuals()
	}
	return product, nil
}

// GetByID 根据主键获取商品（不区分有效状态）
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if !models.IsID(id) {
		return nil, nil
	}
	product, err := findOne[models.Product](ctx, r.coll, bson.M{"_id": id})
	if product != nil {
		product.FillVirtuals()
	}
	return product, err
}

// Featured 使用 $sample 随机抽样
func (r *ProductRepository) Featured(ctx context.Context, limit int, departmentID string) ([]models.Product, error) {
	match := activeFilter(bson.M{}, repository.ActiveOnly)
	if departmentID != "" {
		match["department"] = departmentID
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sample", Value: bson.M{"size": limit}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	items := make([]models.Product, 0, limit)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	fillProductVirtuals(items)
	return items, nil
}

// Create 创建商品
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	prepareProduct(product)
	_, err := r.coll.InsertOne(ctx, product)
	return translateError(err)
}

// CreateBatch 批量创建商品
func (r *ProductRepository) CreateBatch(ctx context.Context, products []models.Product) (int64, error) {
	if len(products) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, 0, len(products))
	for i := range products {
		prepareProduct(&products[i])
		docs = append(docs, products[i])
	}
	result, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		return 0, translateError(err)
	}
	return int64(len(result.InsertedIDs)), nil
}

// Update 整体替换商品文档
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now().UTC()
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	return translateError(err)
}

// RenameDepartment 同步已关联商品的部门名称
func (r *ProductRepository) RenameDepartment(ctx context.Context, departmentID, name string) (int64, error) {
	result, err := r.coll.UpdateMany(ctx,
		bson.M{"department": departmentID, "departmentName": bson.M{"$ne": name}},
		bson.M{"$set": bson.M{"departmentName": name, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// ExistsBySKU SKU 是否已被占用
func (r *ProductRepository) ExistsBySKU(ctx context.Context, sku string, excludeID string) (bool, error) {
	return exists(ctx, r.coll, bson.M{"sku": strings.ToUpper(strings.TrimSpace(sku))}, excludeID)
}

// ExistsByProductID 外部编号是否已被占用
func (r *ProductRepository) ExistsByProductID(ctx context.Context, productID int64, excludeID string) (bool, error) {
	return exists(ctx, r.coll, bson.M{"productId": productID}, excludeID)
}

// ExistingProductIDs 返回已存在的外部编号集合
func (r *ProductRepository) ExistingProductIDs(ctx context.Context, productIDs []int64) (map[int64]bool, error) {
	existing := make(map[int64]bool, len(productIDs))
	if len(productIDs) == 0 {
		return existing, nil
	}
	values, err := r.coll.Distinct(ctx, "productId", bson.M{"productId": bson.M{"$in": productIDs}})
	if err != nil {
		return nil, err
	}
	for _, value := range values {
		existing[toInt64(value)] = true
	}
	return existing, nil
}

// CountActiveByCategories 按分类名称统计有效商品数
func (r *ProductRepository) CountActiveByCategories(ctx context.Context, names []string) (map[string]int64, error) {
	return r.countByString(ctx, "category", names)
}

// CountActiveByBrands 按品牌名称统计有效商品数
func (r *ProductRepository) CountActiveByBrands(ctx context.Context, names []string) (map[string]int64, error) {
	return r.countByString(ctx, "brand", names)
}

// CountActiveByDepartments 按部门ID统计有效商品数
func (r *ProductRepository) CountActiveByDepartments(ctx context.Context, departmentIDs []string) (map[string]int64, error) {
	return r.countByString(ctx, "department", departmentIDs)
}

// CountActiveByCenters 按配送中心编号统计有效商品数
func (r *ProductRepository) CountActiveByCenters(ctx context.Context, centerIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(centerIDs))
	if len(centerIDs) == 0 {
		return counts, nil
	}
	rows, err := countActiveBy(ctx, r.coll, "distributionCenterId", centerIDs)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[toInt64(row["_id"])] = toInt64(row["total"])
	}
	return counts, nil
}

func (r *ProductRepository) countByString(ctx context.Context, field string, keys []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(keys))
	if len(keys) == 0 {
		return counts, nil
	}
	rows, err := countActiveBy(ctx, r.coll, field, keys)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		key, _ := row["_id"].(string)
		counts[key] = toInt64(row["total"])
	}
	return counts, nil
}

func prepareProduct(product *models.Product) {
	now := time.Now().UTC()
	if product.ID == "" {
		product.ID = models.NewID()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now
}

func fillProductVirtuals(items []models.Product) {
	for i := range items {
		items[i].FillVirtuals()
	}
}
