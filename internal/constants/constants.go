package constants

// ProductCategories 商品分类枚举（固定目录）
var ProductCategories = []string{
	"Accessories",
	"Active",
	"Blazers & Jackets",
	"Clothing Sets",
	"Dresses",
	"Fashion Hoodies & Sweatshirts",
	"Intimates",
	"Jeans",
	"Jumpsuits & Rompers",
	"Leggings",
	"Maternity",
	"Outerwear & Coats",
	"Pants",
	"Pants & Capris",
	"Plus",
	"Shorts",
	"Skirts",
	"Sleep & Lounge",
	"Socks",
	"Socks & Hosiery",
	"Suits",
	"Suits & Sport Coats",
	"Sweaters",
	"Swim",
	"Tops & Tees",
	"Underwear",
}

// 分类适用人群
const (
	CategoryDepartmentMen    = "Men"
	CategoryDepartmentWomen  = "Women"
	CategoryDepartmentUnisex = "Unisex"
)

// CategoryDepartments 分类适用人群枚举
var CategoryDepartments = []string{
	CategoryDepartmentMen,
	CategoryDepartmentWomen,
	CategoryDepartmentUnisex,
}

// 有效状态过滤值
const (
	ActiveFilterTrue  = "true"
	ActiveFilterFalse = "false"
	ActiveFilterAll   = "all"
)

// 排序方向
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// 迁移名称
const (
	MigrationNormalizeDepartments = "normalize_departments_v1"
)

// 异步任务类型
const (
	TaskMigrateDepartments = "catalog:migrate_departments"
	TaskImportCatalog      = "catalog:import"
)

// 队列名称
const (
	QueueDefault     = "default"
	QueueMaintenance = "maintenance"
)

// IsProductCategory 判断是否为合法的商品分类
func IsProductCategory(value string) bool {
	return contains(ProductCategories, value)
}

// IsCategoryDepartment 判断是否为合法的分类适用人群
func IsCategoryDepartment(value string) bool {
	return contains(CategoryDepartments, value)
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
