package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/think41/catalog/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(ctx context.Context, filter ProductListFilter) ([]models.Product, int64, error)
	FindByKey(ctx context.Context, key string, scope ActiveScope) (*models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Featured(ctx context.Context, limit int, departmentID string) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	CreateBatch(ctx context.Context, products []models.Product) (int64, error)
	Update(ctx context.Context, product *models.Product) error
	RenameDepartment(ctx context.Context, departmentID, name string) (int64, error)
	ExistsBySKU(ctx context.Context, sku string, excludeID string) (bool, error)
	ExistsByProductID(ctx context.Context, productID int64, excludeID string) (bool, error)
	ExistingProductIDs(ctx context.Context, productIDs []int64) (map[int64]bool, error)
	CountActiveByCategories(ctx context.Context, names []string) (map[string]int64, error)
	CountActiveByBrands(ctx context.Context, names []string) (map[string]int64, error)
	CountActiveByDepartments(ctx context.Context, departmentIDs []string) (map[string]int64, error)
	CountActiveByCenters(ctx context.Context, centerIDs []int64) (map[int64]int64, error)
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// productPredicate 构建列表过滤条件，计数与分页查询共用
func (r *GormProductRepository) productPredicate(ctx context.Context, filter ProductListFilter) *gorm.DB {
	query := applyActiveScope(r.db.WithContext(ctx).Model(&models.Product{}), filter.Active)
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if brand := strings.TrimSpace(filter.Brand); brand != "" {
		query = query.Where("brand = ?", brand)
	}
	if filter.DepartmentID != "" {
		query = query.Where("department_id = ?", filter.DepartmentID)
	} else if filter.DepartmentName != "" {
		query = query.Where("department_name = ?", filter.DepartmentName)
	}
	if filter.MinPrice != nil {
		query = query.Where("retail_price >= ?", filter.MinPrice.InexactFloat64())
	}
	if filter.MaxPrice != nil {
		query = query.Where("retail_price <= ?", filter.MaxPrice.InexactFloat64())
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, args := buildTextSearchCondition(dbDialectName(r.db), search)
		query = query.Where(condition, args...)
	}
	return query
}

// List 商品列表
func (r *GormProductRepository) List(ctx context.Context, filter ProductListFilter) ([]models.Product, int64, error) {
	var total int64
	if err := r.productPredicate(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := applySort(r.productPredicate(ctx, filter), sortOrDefault(filter.Sort, DefaultProductSort))
	query = applyPagination(query, filter.Page, filter.PageSize)

	products := make([]models.Product, 0)
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// FindByKey 按主键 / 外部编号 / SKU / slug 单次查询；多条命中时按 PreferredKeyMatch 的优先级取一条
func (r *GormProductRepository) FindByKey(ctx context.Context, key string, scope ActiveScope) (*models.Product, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, nil
	}
	conditions := make([]string, 0, 4)
	args := make([]interface{}, 0, 4)
	if models.IsID(key) {
		conditions = append(conditions, "id = ?")
		args = append(args, key)
	}
	if productID, err := strconv.ParseInt(key, 10, 64); err == nil {
		conditions = append(conditions, "product_id = ?")
		args = append(args, productID)
	}
	conditions = append(conditions, "sku = ?", "seo_slug = ?")
	args = append(args, strings.ToUpper(key), strings.ToLower(key))

	query := applyActiveScope(r.db.WithContext(ctx).Model(&models.Product{}), scope).
		Where("("+strings.Join(conditions, " OR ")+")", args...)

	candidates := make([]models.Product, 0, len(conditions))
	if err := query.Order("id").Limit(len(conditions)).Find(&candidates).Error; err != nil {
		return nil, err
	}
	return PreferredKeyMatch(candidates, key), nil
}

// PreferredKeyMatch 从同一标识的多条命中中取一条，优先级为主键、外部编号、SKU、slug
func PreferredKeyMatch(candidates []models.Product, key string) *models.Product {
	var best *models.Product
	bestRank := 4
	for i := range candidates {
		rank := keyRank(&candidates[i], key)
		if rank < bestRank {
			best, bestRank = &candidates[i], rank
		}
	}
	return best
}

func keyRank(product *models.Product, key string) int {
	switch {
	case product.ID == key:
		return 0
	case strconv.FormatInt(product.ProductID, 10) == key:
		return 1
	case product.SKU == strings.ToUpper(key):
		return 2
	default:
		return 3
	}
}

// GetByID 根据主键获取商品（不区分有效状态）
func (r *GormProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if !models.IsID(id) {
		return nil, nil
	}
	var product models.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &product, nil
}

// Featured 随机抽样有效商品
func (r *GormProductRepository) Featured(ctx context.Context, limit int, departmentID string) ([]models.Product, error) {
	query := applyActiveScope(r.db.WithContext(ctx).Model(&models.Product{}), ActiveOnly)
	if departmentID != "" {
		query = query.Where("department_id = ?", departmentID)
	}
	products := make([]models.Product, 0, limit)
	if err := query.Order("RANDOM()").Limit(limit).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(ctx context.Context, product *models.Product) error {
	return translateError(r.db.WithContext(ctx).Create(product).Error)
}

// CreateBatch 批量创建商品
func (r *GormProductRepository) CreateBatch(ctx context.Context, products []models.Product) (int64, error) {
	if len(products) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).CreateInBatches(&products, 200)
	return result.RowsAffected, translateError(result.Error)
}

// Update 保存商品全部字段
func (r *GormProductRepository) Update(ctx context.Context, product *models.Product) error {
	return translateError(r.db.WithContext(ctx).Save(product).Error)
}

// RenameDepartment 同步已关联商品的部门名称
func (r *GormProductRepository) RenameDepartment(ctx context.Context, departmentID, name string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("department_id = ? AND department_name <> ?", departmentID, name).
		Update("department_name", name)
	return result.RowsAffected, result.Error
}

// ExistsBySKU SKU 是否已被占用
func (r *GormProductRepository) ExistsBySKU(ctx context.Context, sku string, excludeID string) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{}).Where("sku = ?", strings.ToUpper(strings.TrimSpace(sku)))
	return existsExcluding(query, excludeID)
}

// ExistsByProductID 外部编号是否已被占用
func (r *GormProductRepository) ExistsByProductID(ctx context.Context, productID int64, excludeID string) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{}).Where("product_id = ?", productID)
	return existsExcluding(query, excludeID)
}

// ExistingProductIDs 返回已存在的外部编号集合
func (r *GormProductRepository) ExistingProductIDs(ctx context.Context, productIDs []int64) (map[int64]bool, error) {
	existing := make(map[int64]bool, len(productIDs))
	if len(productIDs) == 0 {
		return existing, nil
	}
	var found []int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("product_id IN ?", productIDs).
		Pluck("product_id", &found).Error; err != nil {
		return nil, err
	}
	for _, id := range found {
		existing[id] = true
	}
	return existing, nil
}

// CountActiveByCategories 按分类名称统计有效商品数
func (r *GormProductRepository) CountActiveByCategories(ctx context.Context, names []string) (map[string]int64, error) {
	return r.countActiveByString(ctx, "category", names)
}

// CountActiveByBrands 按品牌名称统计有效商品数
func (r *GormProductRepository) CountActiveByBrands(ctx context.Context, names []string) (map[string]int64, error) {
	return r.countActiveByString(ctx, "brand", names)
}

// CountActiveByDepartments 按部门ID统计有效商品数
func (r *GormProductRepository) CountActiveByDepartments(ctx context.Context, departmentIDs []string) (map[string]int64, error) {
	return r.countActiveByString(ctx, "department_id", departmentIDs)
}

// CountActiveByCenters 按配送中心编号统计有效商品数
func (r *GormProductRepository) CountActiveByCenters(ctx context.Context, centerIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(centerIDs))
	if len(centerIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		GroupKey int64
		Total    int64
	}
	if err := applyActiveScope(r.db.WithContext(ctx).Model(&models.Product{}), ActiveOnly).
		Select("distribution_center_id AS group_key, COUNT(*) AS total").
		Where("distribution_center_id IN ?", centerIDs).
		Group("distribution_center_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.GroupKey] = row.Total
	}
	return counts, nil
}

func (r *GormProductRepository) countActiveByString(ctx context.Context, column string, keys []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(keys))
	if len(keys) == 0 {
		return counts, nil
	}
	var rows []struct {
		GroupKey string
		Total    int64
	}
	if err := applyActiveScope(r.db.WithContext(ctx).Model(&models.Product{}), ActiveOnly).
		Select(column+" AS group_key, COUNT(*) AS total").
		Where(column+" IN ?", keys).
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.GroupKey] = row.Total
	}
	return counts, nil
}

func existsExcluding(query *gorm.DB, excludeID string) (bool, error) {
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
