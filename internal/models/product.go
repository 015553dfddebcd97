package models

import (
	"database/sql/driver"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductImage 商品图片
type ProductImage struct {
	URL       string `bson:"url" json:"url"`
	Alt       string `bson:"alt,omitempty" json:"alt,omitempty"`
	IsPrimary bool   `bson:"isPrimary" json:"isPrimary"`
}

// ProductImages 图片数组（JSON 列）
type ProductImages []ProductImage

// SizeStock 尺码库存
type SizeStock struct {
	Size  string `bson:"size" json:"size"`
	Stock int    `bson:"stock" json:"stock"`
}

// SizeStocks 尺码库存数组（JSON 列）
type SizeStocks []SizeStock

// Rating 评分聚合
type Rating struct {
	Average float64 `gorm:"not null;default:0" bson:"average" json:"average"`
	Count   int     `gorm:"not null;default:0" bson:"count" json:"count"`
}

// SeoData 商品 / 分类 / 品牌共用的 SEO 信息
type SeoData struct {
	MetaTitle       string `gorm:"type:varchar(255)" bson:"metaTitle,omitempty" json:"metaTitle,omitempty"`
	MetaDescription string `gorm:"type:varchar(500)" bson:"metaDescription,omitempty" json:"metaDescription,omitempty"`
	Slug            string `gorm:"type:varchar(255);uniqueIndex" bson:"slug" json:"slug"`
}

// Product 商品表
type Product struct {
	ID                   string        `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"_id"`                                       // 主键
	ProductID            int64         `gorm:"not null;uniqueIndex" bson:"productId" json:"productId"`                                  // 外部数字编号
	Name                 string        `gorm:"type:varchar(255);not null" bson:"name" json:"name"`                                      // 名称
	Description          string        `gorm:"type:text" bson:"description,omitempty" json:"description,omitempty"`                     // 描述
	Brand                string        `gorm:"type:varchar(255);not null;index" bson:"brand" json:"brand"`                              // 品牌名称（非外键）
	Category             string        `gorm:"type:varchar(100);not null;index" bson:"category" json:"category"`                        // 分类名称（枚举）
	DepartmentName       string        `gorm:"type:varchar(100);index" bson:"departmentName,omitempty" json:"departmentName,omitempty"` // 原始部门文本
	DepartmentID         *string       `gorm:"type:varchar(36);index" bson:"department,omitempty" json:"department,omitempty"`          // 部门ID（迁移后写入）
	Cost                 Money         `gorm:"type:decimal(20,2);not null;default:0" bson:"cost" json:"cost"`                           // 成本
	RetailPrice          Money         `gorm:"type:decimal(20,2);not null;default:0;index" bson:"retailPrice" json:"retailPrice"`       // 零售价
	SKU                  string        `gorm:"column:sku;type:varchar(100);not null;uniqueIndex" bson:"sku" json:"sku"`                 // SKU（大写）
	DistributionCenterID int64         `gorm:"not null;index" bson:"distributionCenterId" json:"distributionCenterId"`                  // 配送中心编号
	Stock                int           `gorm:"not null;default:0" bson:"stock" json:"stock"`                                            // 库存
	Images               ProductImages `gorm:"type:json" bson:"images" json:"images"`                                                   // 图片
	Sizes                SizeStocks    `gorm:"type:json" bson:"sizes" json:"sizes"`                                                     // 尺码库存
	Colors               StringArray   `gorm:"type:json" bson:"colors" json:"colors"`                                                   // 颜色
	Tags                 StringArray   `gorm:"type:json" bson:"tags" json:"tags"`                                                       // 标签
	Rating               Rating        `gorm:"embedded;embeddedPrefix:rating_" bson:"rating" json:"rating"`                             // 评分
	Weight               float64       `gorm:"not null;default:0" bson:"weight,omitempty" json:"weight,omitempty"`                      // 重量
	SeoData              SeoData       `gorm:"embedded;embeddedPrefix:seo_" bson:"seoData" json:"seoData"`                              // SEO 信息
	IsActive             bool          `gorm:"not null;index" bson:"isActive" json:"isActive"`                                          // 是否有效（软删除标记）
	CreatedAt            time.Time     `gorm:"index" bson:"createdAt" json:"createdAt"`                                                 // 创建时间
	UpdatedAt            time.Time     `bson:"updatedAt" json:"updatedAt"`                                                              // 更新时间

	ProfitMargin     Money   `gorm:"-" bson:"-" json:"profitMargin"`     // 毛利（读取时计算）
	ProfitPercentage float64 `gorm:"-" bson:"-" json:"profitPercentage"` // 毛利率（读取时计算）
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// BeforeCreate 生成主键
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	return nil
}

// AfterFind 填充读取时计算字段
func (p *Product) AfterFind(tx *gorm.DB) error {
	p.FillVirtuals()
	return nil
}

// FillVirtuals 计算毛利与毛利率
func (p *Product) FillVirtuals() {
	margin := p.RetailPrice.Decimal.Sub(p.Cost.Decimal)
	p.ProfitMargin = NewMoneyFromDecimal(margin)
	if p.Cost.Decimal.IsZero() {
		p.ProfitPercentage = 0
		return
	}
	pct := margin.Div(p.Cost.Decimal).Mul(decimal.NewFromInt(100)).Round(2)
	p.ProfitPercentage = pct.InexactFloat64()
}

// Value 实现 driver.Valuer 接口
func (p ProductImages) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	return marshalColumn(p)
}

// Scan 实现 sql.Scanner 接口
func (p *ProductImages) Scan(value interface{}) error {
	if value == nil {
		*p = ProductImages{}
		return nil
	}
	return scanColumn(value, p)
}

// Value 实现 driver.Valuer 接口
func (s SizeStocks) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return marshalColumn(s)
}

// Scan 实现 sql.Scanner 接口
func (s *SizeStocks) Scan(value interface{}) error {
	if value == nil {
		*s = SizeStocks{}
		return nil
	}
	return scanColumn(value, s)
}
