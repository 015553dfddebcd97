package models

import (
	"time"

	"gorm.io/gorm"
)

// Brand 品牌表
type Brand struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"_id"`                                    // 主键
	Name            string    `gorm:"type:varchar(255);not null;uniqueIndex" bson:"name" json:"name"`                       // 名称
	Description     string    `gorm:"type:text" bson:"description,omitempty" json:"description,omitempty"`                  // 描述
	Logo            ImageRef  `gorm:"embedded;embeddedPrefix:logo_" bson:"logo,omitempty" json:"logo,omitempty"`            // Logo
	Website         string    `gorm:"type:varchar(500)" bson:"website,omitempty" json:"website,omitempty"`                  // 官网
	IsActive        bool      `gorm:"not null;index" bson:"isActive" json:"isActive"`                                       // 是否有效
	Country         string    `gorm:"type:varchar(100)" bson:"country,omitempty" json:"country,omitempty"`                  // 国家
	EstablishedYear int       `gorm:"not null;default:0" bson:"establishedYear,omitempty" json:"establishedYear,omitempty"` // 创立年份
	SeoData         SeoData   `gorm:"embedded;embeddedPrefix:seo_" bson:"seoData" json:"seoData"`                           // SEO 信息
	CreatedAt       time.Time `gorm:"index" bson:"createdAt" json:"createdAt"`                                              // 创建时间
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`                                                           // 更新时间

	ProductCount int64 `gorm:"-" bson:"-" json:"productCount"` // 商品数（按品牌名称聚合）
}

// TableName 指定表名
func (Brand) TableName() string {
	return "brands"
}

// BeforeCreate 生成主键
func (b *Brand) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = NewID()
	}
	return nil
}
