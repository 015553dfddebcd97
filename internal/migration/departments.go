// Package migration 实现可重复执行的数据规范化任务。
package migration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/think41/catalog/internal/constants"
	"github.com/think41/catalog/internal/kvstore"
	"github.com/think41/catalog/internal/logger"
	"github.com/think41/catalog/internal/models"
	"github.com/think41/catalog/internal/repository"
)

var (
	// ErrRunning 另一个实例正在执行
	ErrRunning = errors.New("migration is already running")
	// ErrVerifyFailed 抽样校验不一致
	ErrVerifyFailed = errors.New("migration verification failed")
)

const unmappedSampleSize = 20

// Options 部门规范化参数
type Options struct {
	BatchSize    int
	VerifySample int
	StoreName    string
	LockTTL      time.Duration
	Force        bool
}

// DepartmentReport 执行结果
type DepartmentReport struct {
	Name               string    `json:"name"`
	Skipped            bool      `json:"skipped"`
	DistinctNames      []string  `json:"distinctNames"`
	DepartmentsCreated int64     `json:"departmentsCreated"`
	DepartmentsTotal   int       `json:"departmentsTotal"`
	Batches            int       `json:"batches"`
	ProductsScanned    int64     `json:"productsScanned"`
	ProductsLinked     int64     `json:"productsLinked"`
	Unmapped           int64     `json:"unmapped"`
	UnmappedProducts   []string  `json:"unmappedProducts,omitempty"`
	Verified           int       `json:"verified"`
	StartedAt          time.Time `json:"startedAt"`
	FinishedAt         time.Time `json:"finishedAt"`
}

func (r *DepartmentReport) stats() models.JSON {
	return models.JSON{
		"distinctNames":      r.DistinctNames,
		"departmentsCreated": r.DepartmentsCreated,
		"departmentsTotal":   r.DepartmentsTotal,
		"batches":            r.Batches,
		"productsScanned":    r.ProductsScanned,
		"productsLinked":     r.ProductsLinked,
		"unmapped":           r.Unmapped,
		"unmappedProducts":   r.UnmappedProducts,
		"verified":           r.Verified,
	}
}

// DepartmentNormalizer 将商品的部门文本转换为部门引用
type DepartmentNormalizer struct {
	store repository.DepartmentMigrationStore
	opts  Options
}

// NewDepartmentNormalizer 创建部门规范化任务
func NewDepartmentNormalizer(store repository.DepartmentMigrationStore, opts Options) *DepartmentNormalizer {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 1000
	}
	if opts.VerifySample < 0 {
		opts.VerifySample = 0
	}
	if opts.StoreName == "" {
		opts.StoreName = "Think41"
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = 10 * time.Minute
	}
	return &DepartmentNormalizer{store: store, opts: opts}
}

// Run 执行迁移；已完成且未强制时直接返回
func (n *DepartmentNormalizer) Run(ctx context.Context) (*DepartmentReport, error) {
	name := constants.MigrationNormalizeDepartments
	report := &DepartmentReport{Name: name, StartedAt: time.Now().UTC()}
	log := logger.SW("migration", name)

	lock, ok, err := kvstore.TryLock(ctx, "migration:"+name, n.opts.LockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire migration lock: %w", err)
	}
	if !ok {
		return nil, ErrRunning
	}
	defer func() {
		if err := lock.Release(context.Background()); err != nil {
			log.Warnw("migration_lock_release_failed", "error", err)
		}
	}()

	record, err := n.store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if record.Completed() && !n.opts.Force {
		log.Infow("migration_already_completed", "completed_at", record.CompletedAt)
		report.Skipped = true
		report.FinishedAt = time.Now().UTC()
		return report, nil
	}

	record = &models.MigrationRecord{
		Name:      name,
		Status:    models.MigrationStatusRunning,
		StartedAt: report.StartedAt,
	}
	if err := n.store.Save(ctx, record); err != nil {
		return nil, err
	}

	if err := n.normalize(ctx, report); err != nil {
		log.Errorw("migration_failed", "error", err)
		record.Status = models.MigrationStatusFailed
		record.Error = err.Error()
		record.Stats = report.stats()
		if saveErr := n.store.Save(context.Background(), record); saveErr != nil {
			log.Errorw("migration_record_save_failed", "error", saveErr)
		}
		return report, err
	}

	report.FinishedAt = time.Now().UTC()
	record.Status = models.MigrationStatusCompleted
	record.Stats = report.stats()
	record.CompletedAt = &report.FinishedAt
	if err := n.store.Save(ctx, record); err != nil {
		return report, err
	}
	log.Infow("migration_completed",
		"departments_created", report.DepartmentsCreated,
		"products_linked", report.ProductsLinked,
		"unmapped", report.Unmapped,
	)
	return report, nil
}

func (n *DepartmentNormalizer) normalize(ctx context.Context, report *DepartmentReport) error {
	log := logger.SW("migration", report.Name)

	names, err := n.store.DistinctProductDepartments(ctx)
	if err != nil {
		return fmt.Errorf("scan department names: %w", err)
	}
	report.DistinctNames = names
	log.Infow("migration_departments_found", "names", names)

	departments := make([]models.Department, 0, len(names))
	for _, deptName := range names {
		department := models.Department{
			Name:        deptName,
			Description: fmt.Sprintf("%s's department offering a wide range of quality products", deptName),
			IsActive:    true,
		}
		department.ApplyDefaults(n.opts.StoreName)
		departments = append(departments, department)
	}
	created, err := n.store.InsertDepartments(ctx, departments)
	if err != nil {
		return fmt.Errorf("insert departments: %w", err)
	}
	report.DepartmentsCreated = created
	if skipped := int64(len(departments)) - created; skipped > 0 {
		log.Infow("migration_departments_exist", "skipped", skipped)
	}

	// 以插入后重新读取的结果为准
	existing, err := n.store.ListDepartments(ctx)
	if err != nil {
		return fmt.Errorf("reload departments: %w", err)
	}
	report.DepartmentsTotal = len(existing)
	mapping := make(map[string]string, len(existing))
	for _, department := range existing {
		mapping[department.Name] = department.ID
	}

	afterID := ""
	for {
		refs, err := n.store.ListUnlinkedProducts(ctx, afterID, n.opts.BatchSize)
		if err != nil {
			return fmt.Errorf("read product batch: %w", err)
		}
		if len(refs) == 0 {
			break
		}
		afterID = refs[len(refs)-1].ID

		assignments := make([]repository.DepartmentAssignment, 0, len(refs))
		for _, ref := range refs {
			departmentID, ok := mapping[ref.DepartmentName]
			if !ok {
				report.Unmapped++
				if len(report.UnmappedProducts) < unmappedSampleSize {
					report.UnmappedProducts = append(report.UnmappedProducts, ref.ID)
				}
				log.Warnw("migration_product_unmapped", "product_id", ref.ID, "department_name", ref.DepartmentName)
				continue
			}
			assignments = append(assignments, repository.DepartmentAssignment{ProductID: ref.ID, DepartmentID: departmentID})
		}

		modified, err := n.store.AssignDepartments(ctx, assignments)
		if err != nil {
			return fmt.Errorf("assign departments: %w", err)
		}
		report.Batches++
		report.ProductsScanned += int64(len(refs))
		report.ProductsLinked += modified
		log.Infow("migration_batch_done",
			"batch", report.Batches,
			"scanned", report.ProductsScanned,
			"linked", report.ProductsLinked,
		)
		if len(refs) < n.opts.BatchSize {
			break
		}
	}

	return n.verify(ctx, report)
}

func (n *DepartmentNormalizer) verify(ctx context.Context, report *DepartmentReport) error {
	if n.opts.VerifySample == 0 {
		return nil
	}
	samples, err := n.store.SampleLinkedProducts(ctx, n.opts.VerifySample)
	if err != nil {
		return fmt.Errorf("sample linked products: %w", err)
	}
	mismatched := 0
	for _, sample := range samples {
		if sample.DepartmentName != sample.ResolvedName {
			mismatched++
			logger.Warnw("migration_verify_mismatch",
				"product_id", sample.ProductID,
				"department_name", sample.DepartmentName,
				"resolved_name", sample.ResolvedName,
			)
		}
	}
	report.Verified = len(samples) - mismatched
	if mismatched > 0 {
		return fmt.Errorf("%w: %d of %d samples", ErrVerifyFailed, mismatched, len(samples))
	}
	return nil
}
