package models

import (
	"time"

	"gorm.io/gorm"
)

// ImageRef 图片引用
type ImageRef struct {
	URL string `gorm:"type:varchar(500)" bson:"url,omitempty" json:"url,omitempty"`
	Alt string `gorm:"type:varchar(255)" bson:"alt,omitempty" json:"alt,omitempty"`
}

// Category 分类表
type Category struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"_id"`                            // 主键
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex" bson:"name" json:"name"`               // 名称
	Description string    `gorm:"type:text" bson:"description,omitempty" json:"description,omitempty"`          // 描述
	Department  string    `gorm:"type:varchar(20);not null;index" bson:"department" json:"department"`          // 适用人群（Men/Women/Unisex）
	ParentID    *string   `gorm:"type:varchar(36);index" bson:"parentCategory,omitempty" json:"parentCategory"` // 父分类
	IsActive    bool      `gorm:"not null;index" bson:"isActive" json:"isActive"`                               // 是否有效
	SortOrder   int       `gorm:"not null;default:0;index" bson:"sortOrder" json:"sortOrder"`                   // 排序权重
	Image       ImageRef  `gorm:"embedded;embeddedPrefix:image_" bson:"image,omitempty" json:"image,omitempty"` // 图片
	SeoData     SeoData   `gorm:"embedded;embeddedPrefix:seo_" bson:"seoData" json:"seoData"`                   // SEO 信息
	CreatedAt   time.Time `gorm:"index" bson:"createdAt" json:"createdAt"`                                      // 创建时间
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`                                                   // 更新时间

	Subcategories []Category `gorm:"-" bson:"-" json:"subcategories,omitempty"` // 子分类（读取时查询）
	ProductCount  int64      `gorm:"-" bson:"-" json:"productCount"`            // 商品数（读取时聚合）
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}

// BeforeCreate 生成主键
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	return nil
}
