package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/think41/catalog/internal/slug"

	"gorm.io/gorm"
)

// DepartmentSeo 部门 SEO 信息
type DepartmentSeo struct {
	MetaTitle       string      `gorm:"type:varchar(255)" bson:"metaTitle,omitempty" json:"metaTitle,omitempty"`
	MetaDescription string      `gorm:"type:varchar(500)" bson:"metaDescription,omitempty" json:"metaDescription,omitempty"`
	Keywords        StringArray `gorm:"type:json" bson:"keywords,omitempty" json:"keywords,omitempty"`
}

// Department 部门表（由商品的部门文本迁移生成）
type Department struct {
	ID          string        `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"_id"`                   // 主键
	Name        string        `gorm:"type:varchar(100);not null;uniqueIndex" bson:"name" json:"name"`      // 名称
	Description string        `gorm:"type:text" bson:"description,omitempty" json:"description,omitempty"` // 描述
	Slug        string        `gorm:"type:varchar(120);not null;uniqueIndex" bson:"slug" json:"slug"`      // 唯一标识（小写）
	IsActive    bool          `gorm:"not null;index" bson:"isActive" json:"isActive"`                      // 是否有效
	SeoData     DepartmentSeo `gorm:"embedded;embeddedPrefix:seo_" bson:"seoData" json:"seoData"`          // SEO 信息
	CreatedAt   time.Time     `gorm:"index" bson:"createdAt" json:"createdAt"`                             // 创建时间
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`                                          // 更新时间

	ProductCount int64 `gorm:"-" bson:"-" json:"productCount"` // 商品数（按部门ID聚合）
}

// TableName 指定表名
func (Department) TableName() string {
	return "departments"
}

// BeforeCreate 生成主键
func (d *Department) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = NewID()
	}
	return nil
}

// DepartmentSummary 部门摘要（商品列表响应中附带）
type DepartmentSummary struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Summary 返回部门摘要
func (d *Department) Summary() DepartmentSummary {
	return DepartmentSummary{ID: d.ID, Name: d.Name, Slug: d.Slug}
}

// ApplyDefaults 补齐 slug 与 SEO 信息；slug 仅在为空时生成
func (d *Department) ApplyDefaults(storeName string) {
	d.Name = strings.TrimSpace(d.Name)
	if d.Slug == "" {
		d.Slug = slug.Make(d.Name)
	}
	if d.SeoData.MetaTitle == "" {
		d.SeoData.MetaTitle = fmt.Sprintf("%s - %s Store", d.Name, storeName)
	}
	if d.SeoData.MetaDescription == "" {
		d.SeoData.MetaDescription = fmt.Sprintf("Shop %s products at %s Store. High quality items with great prices.", d.Name, storeName)
	}
}
