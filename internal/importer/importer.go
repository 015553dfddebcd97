package importer

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/think41/catalog/internal/constants"
	"github.com/think41/catalog/internal/logger"
	"github.com/think41/catalog/internal/models"
	"github.com/think41/catalog/internal/repository"
	"github.com/think41/catalog/internal/slug"
)

// 带尺码的服饰分类
var sizedCategories = []string{"Clothing", "Dresses", "Tops & Tees", "Pants", "Shorts"}

var defaultSizes = []string{"XS", "S", "M", "L", "XL"}

var defaultServingRegions = []string{"West Coast", "East Coast", "Midwest"}

// Options 导入参数
type Options struct {
	BatchSize int
	StoreName string
}

// Report 导入结果
type Report struct {
	RowsRead          int        `json:"rowsRead"`
	RowsSkipped       int        `json:"rowsSkipped"`
	Skipped           []RowIssue `json:"skipped,omitempty"`
	ProductsExisting  int        `json:"productsExisting"`
	ProductsCreated   int64      `json:"productsCreated"`
	CategoriesCreated int        `json:"categoriesCreated"`
	BrandsCreated     int        `json:"brandsCreated"`
	CentersCreated    int        `json:"centersCreated"`
	Batches           int        `json:"batches"`
	StartedAt         time.Time  `json:"startedAt"`
	FinishedAt        time.Time  `json:"finishedAt"`
}

const maxReportedIssues = 50

func (r *Report) skip(issue RowIssue) {
	r.RowsSkipped++
	if len(r.Skipped) < maxReportedIssues {
		r.Skipped = append(r.Skipped, issue)
	}
}

// Importer CSV 目录导入
type Importer struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	brands     repository.BrandRepository
	centers    repository.DistributionCenterRepository
	opts       Options
	rand       *rand.Rand
}

// New 创建导入器
func New(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	brands repository.BrandRepository,
	centers repository.DistributionCenterRepository,
	opts Options,
) *Importer {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 1000
	}
	if opts.StoreName == "" {
		opts.StoreName = "Think41"
	}
	return &Importer{
		products:   products,
		categories: categories,
		brands:     brands,
		centers:    centers,
		opts:       opts,
		rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ImportFile 从服务器本地文件导入
func (im *Importer) ImportFile(ctx context.Context, path string) (*Report, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open import file: %w", err)
	}
	defer file.Close()
	return im.Import(ctx, file)
}

// Import 导入 CSV；已存在的商品编号被跳过，可重复执行
func (im *Importer) Import(ctx context.Context, r io.Reader) (*Report, error) {
	report := &Report{StartedAt: time.Now()}
	parsed, err := Parse(r)
	if err != nil {
		return nil, err
	}
	report.RowsRead = len(parsed.Rows) + len(parsed.Skipped)
	for _, issue := range parsed.Skipped {
		report.skip(issue)
	}

	rows := make([]Row, 0, len(parsed.Rows))
	for _, row := range parsed.Rows {
		if !constants.IsProductCategory(row.Category) {
			report.skip(RowIssue{Line: row.Line, Reason: "unsupported category " + row.Category})
			continue
		}
		rows = append(rows, row)
	}

	if err := im.ensureCategories(ctx, rows, report); err != nil {
		return nil, err
	}
	if err := im.ensureBrands(ctx, rows, report); err != nil {
		return nil, err
	}
	if err := im.ensureCenters(ctx, rows, report); err != nil {
		return nil, err
	}
	if err := im.insertProducts(ctx, rows, report); err != nil {
		return nil, err
	}

	report.FinishedAt = time.Now()
	logger.Infow("catalog_import_done",
		"rows", report.RowsRead,
		"skipped", report.RowsSkipped,
		"existing", report.ProductsExisting,
		"products_created", report.ProductsCreated,
		"categories_created", report.CategoriesCreated,
		"brands_created", report.BrandsCreated,
		"centers_created", report.CentersCreated,
	)
	return report, nil
}

func (im *Importer) ensureCategories(ctx context.Context, rows []Row, report *Report) error {
	for _, name := range distinct(rows, func(row Row) string { return row.Category }) {
		existing, err := im.categories.GetByName(ctx, name)
		if err != nil {
			return fmt.Errorf("load category %s: %w", name, err)
		}
		if existing != nil {
			continue
		}
		categorySlug, err := uniqueSlug(ctx, slug.Make(name), func(ctx context.Context, candidate string) (bool, error) {
			return im.categories.ExistsBySlug(ctx, candidate, "")
		})
		if err != nil {
			return err
		}
		category := &models.Category{
			Name:        name,
			Description: name + " category",
			Department:  constants.CategoryDepartmentUnisex,
			IsActive:    true,
			SeoData: models.SeoData{
				MetaTitle:       fmt.Sprintf("%s | %s", name, im.opts.StoreName),
				MetaDescription: fmt.Sprintf("Shop %s at %s.", strings.ToLower(name), im.opts.StoreName),
				Slug:            categorySlug,
			},
		}
		if err := im.categories.Create(ctx, category); err != nil {
			return fmt.Errorf("create category %s: %w", name, err)
		}
		report.CategoriesCreated++
	}
	return nil
}

func (im *Importer) ensureBrands(ctx context.Context, rows []Row, report *Report) error {
	for _, name := range distinct(rows, func(row Row) string { return row.Brand }) {
		existing, err := im.brands.GetByName(ctx, name)
		if err != nil {
			return fmt.Errorf("load brand %s: %w", name, err)
		}
		if existing != nil {
			continue
		}
		brandSlug, err := uniqueSlug(ctx, slug.Make(name), func(ctx context.Context, candidate string) (bool, error) {
			return im.brands.ExistsBySlug(ctx, candidate, "")
		})
		if err != nil {
			return err
		}
		brand := &models.Brand{
			Name:        name,
			Description: name + " brand",
			IsActive:    true,
			SeoData: models.SeoData{
				MetaTitle: fmt.Sprintf("%s | %s", name, im.opts.StoreName),
				Slug:      brandSlug,
			},
		}
		if err := im.brands.Create(ctx, brand); err != nil {
			return fmt.Errorf("create brand %s: %w", name, err)
		}
		report.BrandsCreated++
	}
	return nil
}

func (im *Importer) ensureCenters(ctx context.Context, rows []Row, report *Report) error {
	seen := make(map[int64]bool)
	for _, row := range rows {
		centerID := row.DistributionCenterID
		if centerID <= 0 || seen[centerID] {
			continue
		}
		seen[centerID] = true
		existing, err := im.centers.GetByCenterID(ctx, centerID)
		if err != nil {
			return fmt.Errorf("load distribution center %d: %w", centerID, err)
		}
		if existing != nil {
			continue
		}
		n := strconv.FormatInt(centerID, 10)
		center := &models.DistributionCenter{
			CenterID: centerID,
			Name:     "Distribution Center " + n,
			Address: models.Address{
				Street:  n + "00 Warehouse Way",
				City:    "Distribution City",
				State:   "CA",
				ZipCode: fmt.Sprintf("9%04d", centerID%10000),
				Country: "USA",
			},
			IsActive:       true,
			Capacity:       10000,
			ServingRegions: models.StringArray(append([]string(nil), defaultServingRegions...)),
		}
		if err := im.centers.Create(ctx, center); err != nil {
			return fmt.Errorf("create distribution center %d: %w", centerID, err)
		}
		report.CentersCreated++
	}
	return nil
}

func (im *Importer) insertProducts(ctx context.Context, rows []Row, report *Report) error {
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ProductID)
	}
	existing, err := im.products.ExistingProductIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load existing product ids: %w", err)
	}

	seenIDs := make(map[int64]bool, len(rows))
	seenSKUs := make(map[string]bool, len(rows))
	batch := make([]models.Product, 0, im.opts.BatchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		created, err := im.products.CreateBatch(ctx, batch)
		if err != nil {
			return fmt.Errorf("insert product batch %d: %w", report.Batches+1, err)
		}
		report.Batches++
		report.ProductsCreated += created
		logger.Debugw("catalog_import_batch_done", "batch", report.Batches, "created", created)
		batch = batch[:0]
		return nil
	}

	for _, row := range rows {
		if existing[row.ProductID] {
			report.ProductsExisting++
			continue
		}
		if seenIDs[row.ProductID] {
			report.skip(RowIssue{Line: row.Line, Reason: "duplicate id"})
			continue
		}
		if seenSKUs[row.SKU] {
			report.skip(RowIssue{Line: row.Line, Reason: "duplicate sku"})
			continue
		}
		seenIDs[row.ProductID] = true
		seenSKUs[row.SKU] = true

		batch = append(batch, im.buildProduct(row))
		if len(batch) >= im.opts.BatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}

func (im *Importer) buildProduct(row Row) models.Product {
	product := models.Product{
		ProductID:            row.ProductID,
		Name:                 row.Name,
		Description:          fmt.Sprintf("%s - High quality %s from %s", row.Name, strings.ToLower(row.Category), row.Brand),
		Brand:                row.Brand,
		Category:             row.Category,
		DepartmentName:       row.Department,
		Cost:                 models.NewMoneyFromDecimal(row.Cost),
		RetailPrice:          models.NewMoneyFromDecimal(row.RetailPrice),
		SKU:                  row.SKU,
		DistributionCenterID: row.DistributionCenterID,
		Stock:                im.rand.Intn(100) + 10,
		Images:               models.ProductImages{},
		Sizes:                im.sizesFor(row.Category),
		Colors:               models.StringArray{},
		Tags: models.StringArray{
			strings.ToLower(row.Category),
			strings.ToLower(row.Brand),
			strings.ToLower(row.Department),
		},
		SeoData: models.SeoData{
			MetaTitle:       fmt.Sprintf("%s - %s | %s", row.Name, row.Brand, im.opts.StoreName),
			MetaDescription: fmt.Sprintf("Shop %s from %s. High quality %s for %s.", row.Name, row.Brand, row.Category, row.Department),
			Slug:            slug.ForProduct(row.Name, row.ProductID),
		},
		IsActive: true,
	}
	return product
}

func (im *Importer) sizesFor(category string) models.SizeStocks {
	sized := false
	for _, keyword := range sizedCategories {
		if strings.Contains(category, keyword) {
			sized = true
			break
		}
	}
	if !sized {
		return models.SizeStocks{}
	}
	sizes := make(models.SizeStocks, 0, len(defaultSizes))
	for _, size := range defaultSizes {
		sizes = append(sizes, models.SizeStock{Size: size, Stock: im.rand.Intn(20) + 1})
	}
	return sizes
}

func distinct(rows []Row, field func(Row) string) []string {
	seen := make(map[string]bool)
	values := make([]string, 0)
	for _, row := range rows {
		value := field(row)
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}

// uniqueSlug 冲突时追加数字后缀
func uniqueSlug(ctx context.Context, base string, exists func(context.Context, string) (bool, error)) (string, error) {
	if base == "" {
		base = "item"
	}
	candidate := base
	for i := 2; ; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug %s: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(i)
	}
}
