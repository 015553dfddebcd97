package repository

import (
	"context"
	"time"

	"github.com/think41/catalog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MigrationRecordRepository 迁移记录数据访问接口
type MigrationRecordRepository interface {
	Get(ctx context.Context, name string) (*models.MigrationRecord, error)
	Save(ctx context.Context, record *models.MigrationRecord) error
	List(ctx context.Context) ([]models.MigrationRecord, error)
}

// DepartmentMigrationStore 部门引用规范化所需的存储操作
type DepartmentMigrationStore interface {
	MigrationRecordRepository
	DistinctProductDepartments(ctx context.Context) ([]string, error)
	InsertDepartments(ctx context.Context, departments []models.Department) (int64, error)
	ListDepartments(ctx context.Context) ([]models.Department, error)
	ListUnlinkedProducts(ctx context.Context, afterID string, limit int) ([]ProductDepartmentRef, error)
	AssignDepartments(ctx context.Context, assignments []DepartmentAssignment) (int64, error)
	SampleLinkedProducts(ctx context.Context, limit int) ([]LinkedProductSample, error)
}

// GormMigrationStore GORM 实现
type GormMigrationStore struct {
	db *gorm.DB
}

// NewMigrationStore 创建迁移存储
func NewMigrationStore(db *gorm.DB) *GormMigrationStore {
	return &GormMigrationStore{db: db}
}

// Get 获取迁移记录
func (s *GormMigrationStore) Get(ctx context.Context, name string) (*models.MigrationRecord, error) {
	var record models.MigrationRecord
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&record).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &record, nil
}

// Save 写入迁移记录（存在则覆盖）
func (s *GormMigrationStore) Save(ctx context.Context, record *models.MigrationRecord) error {
	record.UpdatedAt = time.Now()
	return s.db.WithContext(ctx).Save(record).Error
}

// List 全部迁移记录
func (s *GormMigrationStore) List(ctx context.Context) ([]models.MigrationRecord, error) {
	records := make([]models.MigrationRecord, 0)
	if err := s.db.WithContext(ctx).Order("started_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// DistinctProductDepartments 全量扫描商品的部门文本（不分页）
func (s *GormMigrationStore) DistinctProductDepartments(ctx context.Context) ([]string, error) {
	var names []string
	if err := s.db.WithContext(ctx).Model(&models.Product{}).
		Distinct().
		Where("department_name IS NOT NULL AND department_name <> ''").
		Order("department_name ASC").
		Pluck("department_name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

// InsertDepartments 插入部门，唯一键冲突的记录被跳过，返回实际插入数
func (s *GormMigrationStore) InsertDepartments(ctx context.Context, departments []models.Department) (int64, error) {
	if len(departments) == 0 {
		return 0, nil
	}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&departments)
	return result.RowsAffected, result.Error
}

// ListDepartments 重新读取全部部门
func (s *GormMigrationStore) ListDepartments(ctx context.Context) ([]models.Department, error) {
	departments := make([]models.Department, 0)
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

// ListUnlinkedProducts 按主键游标读取尚未关联部门的商品
func (s *GormMigrationStore) ListUnlinkedProducts(ctx context.Context, afterID string, limit int) ([]ProductDepartmentRef, error) {
	var rows []struct {
		ID             string
		DepartmentName string
	}
	query := s.db.WithContext(ctx).Model(&models.Product{}).
		Select("id, department_name").
		Where("(department_id IS NULL OR department_id = '')")
	if afterID != "" {
		query = query.Where("id > ?", afterID)
	}
	if err := query.Order("id ASC").Limit(limit).Scan(&rows).Error; err != nil {
		return nil, err
	}
	refs := make([]ProductDepartmentRef, 0, len(rows))
	for _, row := range rows {
		refs = append(refs, ProductDepartmentRef{ID: row.ID, DepartmentName: row.DepartmentName})
	}
	return refs, nil
}

// AssignDepartments 单批次写入部门关联，按部门分组批量更新
func (s *GormMigrationStore) AssignDepartments(ctx context.Context, assignments []DepartmentAssignment) (int64, error) {
	if len(assignments) == 0 {
		return 0, nil
	}
	grouped := make(map[string][]string)
	order := make([]string, 0)
	for _, item := range assignments {
		if _, ok := grouped[item.DepartmentID]; !ok {
			order = append(order, item.DepartmentID)
		}
		grouped[item.DepartmentID] = append(grouped[item.DepartmentID], item.ProductID)
	}

	var modified int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, departmentID := range order {
			result := tx.Model(&models.Product{}).
				Where("id IN ?", grouped[departmentID]).
				Where("(department_id IS NULL OR department_id = '')").
				Updates(map[string]interface{}{
					"department_id": departmentID,
					"updated_at":    time.Now(),
				})
			if result.Error != nil {
				return result.Error
			}
			modified += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return modified, nil
}

// SampleLinkedProducts 随机抽样已关联部门的商品
func (s *GormMigrationStore) SampleLinkedProducts(ctx context.Context, limit int) ([]LinkedProductSample, error) {
	var rows []struct {
		ProductID      string
		DepartmentName string
		ResolvedName   string
	}
	if err := s.db.WithContext(ctx).Table("products AS p").
		Select("p.id AS product_id, p.department_name AS department_name, d.name AS resolved_name").
		Joins("JOIN departments AS d ON d.id = p.department_id").
		Order("RANDOM()").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	samples := make([]LinkedProductSample, 0, len(rows))
	for _, row := range rows {
		samples = append(samples, LinkedProductSample(row))
	}
	return samples, nil
}
