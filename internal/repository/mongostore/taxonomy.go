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

// stamp 写入前补齐主键与时间戳
func stamp(id *string, createdAt, updatedAt *time.Time) {
	now := time.Now().UTC()
	if *id == "" {
		*id = models.NewID()
	}
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}

// keyFilter 主键（格式合法时）或 slug 匹配
func keyFilter(key, slugField string) bson.M {
	slug := strings.ToLower(key)
	if models.IsID(key) {
		return bson.M{"$or": bson.A{bson.M{"_id": key}, bson.M{slugField: slug}}}
	}
	return bson.M{slugField: slug}
}

func byID[T any](ctx context.Context, coll *mongo.Collection, id string) (*T, error) {
	if !models.IsID(id) {
		return nil, nil
	}
	return findOne[T](ctx, coll, bson.M{"_id": id})
}

// CategoryRepository MongoDB 分类仓库
type CategoryRepository struct {
	coll *mongo.Collection
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(store *Store) *CategoryRepository {
	return &CategoryRepository{coll: store.collection(collectionCategories)}
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)

// List 分类列表
func (r *CategoryRepository) List(ctx context.Context, filter repository.CategoryListFilter) ([]models.Category, int64, error) {
	doc := activeFilter(bson.M{}, filter.Active)
	if department := strings.TrimSpace(filter.Department); department != "" {
		doc["department"] = department
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		doc["name"] = containsRegex(search)
	}
	sort := filter.Sort
	if len(sort) == 0 {
		sort = repository.DefaultCategorySort
	}
	return listDocuments[models.Category](ctx, r.coll, doc, findOptions(sort, filter.Page, filter.PageSize))
}

// FindByKey 按主键或 slug 查询
func (r *CategoryRepository) FindByKey(ctx context.Context, key string, scope repository.ActiveScope) (*models.Category, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, nil
	}
	return findOne[models.Category](ctx, r.coll, activeFilter(keyFilter(key, "seoData.slug"), scope))
}

// GetByID 根据主键获取分类
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	return byID[models.Category](ctx, r.coll, id)
}

// GetByName 根据名称获取分类
func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	return findOne[models.Category](ctx, r.coll, bson.M{"name": strings.TrimSpace(name)})
}

// ListChildren 查询子分类
func (r *CategoryRepository) ListChildren(ctx context.Context, parentID string, scope repository.ActiveScope) ([]models.Category, error) {
	cursor, err := r.coll.Find(ctx, activeFilter(bson.M{"parentCategory": parentID}, scope),
		options.Find().SetSort(sortDocument(repository.DefaultCategorySort)))
	if err != nil {
		return nil, err
	}
	children := make([]models.Category, 0)
	if err := cursor.All(ctx, &children); err != nil {
		return nil, err
	}
	return children, nil
}

// Create 创建分类
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	stamp(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	_, err := r.coll.InsertOne(ctx, category)
	return translateError(err)
}

// Update 更新分类
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	category.UpdatedAt = time.Now().UTC()
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": category.ID}, category)
	return translateError(err)
}

// ExistsByName 名称是否已被占用
func (r *CategoryRepository) ExistsByName(ctx context.Context, name string, excludeID string) (bool, error) {
	return exists(ctx, r.coll, bson.M{"name": strings.TrimSpace(name)}, excludeID)
}

// ExistsBySlug slug 是否已被占用
func (r *CategoryRepository) ExistsBySlug(ctx context.Context, slug string, excludeID string) (bool, error) {
	return exists(ctx, r.coll, bson.M{"seoData.slug": slug}, excludeID)
}

// BrandRepository MongoDB 品牌仓库
type BrandRepository struct {
	coll *mongo.Collection
}

// NewBrandRepository 创建品牌仓库
func NewBrandRepository(store *Store) *BrandRepository {
	return &BrandRepository{coll: store.collection(collectionBrands)}
}

var _ repository.BrandRepository = (*BrandRepository)(nil)

// List 品牌列表，名称按大小写不敏感的子串匹配
func (r *BrandRepository) List(ctx context.Context, filter repository.BrandListFilter) ([]models.Brand, int64, error) {
	doc := activeFilter(bson.M{}, filter.Active)
	if search := strings.TrimSpace(filter.Search); search != "" {
		doc["name"] = containsRegex(search)
	}
	sort := filter.Sort
	if len(sort) == 0 {
		sort = repository.DefaultBrandSort
	}
	return listDocuments[models.Brand](ctx, r.coll, doc, findOptions(sort, filter.Page, filter.PageSize))
}

// FindByKey 按主键或 slug 查询
func (r *BrandRepository) FindByKey(ctx context.Context, key string, scope repository.ActiveScope) (*models.Brand, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, nil
	}
	return findOne[models.Brand](ctx, r.coll, activeFilter(keyFilter(key, "seoData.slug"), scope))
}

// GetByID 根据主键获取品牌
func (r *BrandRepository) GetByID(ctx context.Context, id string) (*models.Brand, error) {
	return byID[models.Brand](ctx, r.coll, id)
}

// GetByName 根据名称获取品牌
func (r *BrandRepository) GetByName(ctx context.Context, name string) (*models.Brand, error) {
	return findOne[models.Brand](ctx, r.coll, bson.M{"name": strings.TrimSpace(name)})
}

// Create 创建品牌
func (r *BrandRepository) Create(ctx context.Context, brand *models.Brand) error {
	stamp(&brand.ID, &brand.CreatedAt, &brand.UpdatedAt)
	_, err := r.coll.InsertOne(ctx, brand)
	return translateError(err)
}

// Update 更新品牌
func (r *BrandRepository) Update(ctx context.Context, brand *models.Brand) error {
	brand.UpdatedAt = time.Now().UTC()
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": brand.ID}, brand)
	return translateError(err)
}

// ExistsByName 名称是否已被占用
func (r *BrandRepository) ExistsByName(ctx context.Context, name string, excludeID string) (bool, error) {
	return exists(ctx, r.coll, bson.M{"name": strings.TrimSpace(name)}, excludeID)
}

// ExistsBySlug slug 是否已被占用
func (r *BrandRepository) ExistsBySlug(ctx context.Context, slug string, excludeID string) (bool, error) {
	return exists(ctx, r.coll, bson.M{"seoData.slug": slug}, excludeID)
}

// DepartmentRepository MongoDB 部门仓库
type DepartmentRepository struct {
	coll *mongo.Collection
}

// NewDepartmentRepository 创建部门仓库
func NewDepartmentRepository(store *Store) *DepartmentRepository {
	return &DepartmentRepository{coll: store.collection(collectionDepartments)}
}

var _ repository.DepartmentRepository = (*DepartmentRepository)(nil)

// List 部门列表
func (r *DepartmentRepository) List(ctx context.Context, filter repository.DepartmentListFilter) ([]models.Department, int64, error) {
	doc := activeFilter(bson.M{}, filter.Active)
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := containsRegex(search)
		doc["$or"] = bson.A{bson.M{"name": pattern}, bson.M{"description": pattern}}
	}
	sort := filter.Sort
	if len(sort) == 0 {
		sort = repository.DefaultDepartmentSort
	}
	return listDocuments[models.Department](ctx, r.coll, doc, findOptions(sort, filter.Page, filter.PageSize))
}

// ListAll 全部部门（含无效）
func (r *DepartmentRepository) ListAll(ctx context.Context) ([]models.Department, error) {
	items, _, err := listDocuments[models.Department](ctx, r.coll, bson.M{}, findOptions([]repository.SortKey{{Field: "name"}}, 0, 0))
	return items, err
}

// FindByKey 按主键或 slug 查询
func (r *DepartmentRepository) FindByKey(ctx context.Context, key string, scope repository.ActiveScope) (*models.Department, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, nil
	}
	return findOne[models.Department](ctx, r.coll, activeFilter(keyFilter(key, "slug"), scope))
}

// GetByID 根据主键获取部门
func (r *DepartmentRepository) GetByID(ctx context.Context, id string) (*models.Department, error) {
	return byID[models.Department](ctx, r.coll, id)
}

// Create 创建部门
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	stamp(&department.ID, &department.CreatedAt, &department.UpdatedAt)
	_, err := r.coll.InsertOne(ctx, department)
	return translateError(err)
}

// Update 更新部门
func (r *DepartmentRepository) Update(ctx context.Context, department *models.Department) error {
	department.UpdatedAt = time.Now().UTC()
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": department.ID}, department)
	return translateError(err)
}

// ExistsByName 名称是否已被占用
func (r *DepartmentRepository) ExistsByName(ctx context.Context, name string, excludeID string) (bool, error) {
	return exists(ctx, r.coll, bson.M{"name": strings.TrimSpace(name)}, excludeID)
}

// ExistsBySlug slug 是否已被占用
func (r *DepartmentRepository) ExistsBySlug(ctx context.Context, slug string, excludeID string) (bool, error) {
	return exists(ctx, r.coll, bson.M{"slug": slug}, excludeID)
}

// DistributionCenterRepository MongoDB 配送中心仓库
type DistributionCenterRepository struct {
	coll *mongo.Collection
}

// NewDistributionCenterRepository 创建配送中心仓库
func NewDistributionCenterRepository(store *Store) *DistributionCenterRepository {
	return &DistributionCenterRepository{coll: store.collection(collectionDistributionCenters)}
}

var _ repository.DistributionCenterRepository = (*DistributionCenterRepository)(nil)

// List 配送中心列表
func (r *DistributionCenterRepository) List(ctx context.Context, filter repository.DistributionCenterListFilter) ([]models.DistributionCenter, int64, error) {
	doc := activeFilter(bson.M{}, filter.Active)
	if region := strings.TrimSpace(filter.Region); region != "" {
		doc["servingRegions"] = region
	}
	sort := filter.Sort
	if len(sort) == 0 {
		sort = repository.DefaultDistributionCenterSort
	}
	items, total, err := listDocuments[models.DistributionCenter](ctx, r.coll, doc, findOptions(sort, filter.Page, filter.PageSize))
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		items[i].FillVirtuals()
	}
	return items, total, nil
}

// FindByKey 按主键或数字编号查询
func (r *DistributionCenterRepository) FindByKey(ctx context.Context, key string, scope repository.ActiveScope) (*models.DistributionCenter, error) {
	key = strings.TrimSpace(key)
	filter := bson.M{}
	if models.IsID(key) {
		filter["_id"] = key
	} else {
		centerID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, nil
		}
		filter["centerId"] = centerID
	}
	center, err := findOne[models.DistributionCenter](ctx, r.coll, activeFilter(filter, scope))
	if center != nil {
		center.FillVirtuals()
	}
	return center, err
}

// GetByCenterID 根据数字编号获取配送中心
func (r *DistributionCenterRepository) GetByCenterID(ctx context.Context, centerID int64) (*models.DistributionCenter, error) {
	center, err := findOne[models.DistributionCenter](ctx, r.coll, bson.M{"centerId": centerID})
	if center != nil {
		center.FillVirtuals()
	}
	return center, err
}

// Create 创建配送中心
func (r *DistributionCenterRepository) Create(ctx context.Context, center *models.DistributionCenter) error {
	stamp(&center.ID, &center.CreatedAt, &center.UpdatedAt)
	_, err := r.coll.InsertOne(ctx, center)
	return translateError(err)
}
