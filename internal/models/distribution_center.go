package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Address 地址
type Address struct {
	Street  string `gorm:"type:varchar(255)" bson:"street" json:"street"`
	City    string `gorm:"type:varchar(100)" bson:"city" json:"city"`
	State   string `gorm:"type:varchar(100)" bson:"state" json:"state"`
	ZipCode string `gorm:"type:varchar(20)" bson:"zipCode" json:"zipCode"`
	Country string `gorm:"type:varchar(100)" bson:"country" json:"country"`
}

// Contact 联系方式
type Contact struct {
	Phone   string `gorm:"type:varchar(50)" bson:"phone,omitempty" json:"phone,omitempty"`
	Email   string `gorm:"type:varchar(255)" bson:"email,omitempty" json:"email,omitempty"`
	Manager string `gorm:"type:varchar(100)" bson:"manager,omitempty" json:"manager,omitempty"`
}

// DistributionCenter 配送中心
type DistributionCenter struct {
	ID             string      `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"_id"`              // 主键
	CenterID       int64       `gorm:"not null;uniqueIndex" bson:"centerId" json:"centerId"`           // 外部编号
	Name           string      `gorm:"type:varchar(255);not null" bson:"name" json:"name"`             // 名称
	Address        Address     `gorm:"embedded;embeddedPrefix:address_" bson:"address" json:"address"` // 地址
	Contact        Contact     `gorm:"embedded;embeddedPrefix:contact_" bson:"contact" json:"contact"` // 联系方式
	IsActive       bool        `gorm:"not null;index" bson:"isActive" json:"isActive"`                 // 是否有效
	Capacity       int         `gorm:"not null;default:0" bson:"capacity" json:"capacity"`             // 容量
	ServingRegions StringArray `gorm:"type:json" bson:"servingRegions" json:"servingRegions"`          // 服务区域
	CreatedAt      time.Time   `gorm:"index" bson:"createdAt" json:"createdAt"`                        // 创建时间
	UpdatedAt      time.Time   `bson:"updatedAt" json:"updatedAt"`                                     // 更新时间

	FullAddress  string `gorm:"-" bson:"-" json:"fullAddress"`  // 完整地址
	ProductCount int64  `gorm:"-" bson:"-" json:"productCount"` // 商品数（按编号聚合）
}

// TableName 指定表名
func (DistributionCenter) TableName() string {
	return "distribution_centers"
}

// BeforeCreate 生成主键
func (d *DistributionCenter) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = NewID()
	}
	return nil
}

// AfterFind 填充完整地址
func (d *DistributionCenter) AfterFind(tx *gorm.DB) error {
	d.FillVirtuals()
	return nil
}

// FillVirtuals 计算完整地址
func (d *DistributionCenter) FillVirtuals() {
	parts := make([]string, 0, 4)
	for _, part := range []string{d.Address.Street, d.Address.City, d.Address.State + " " + d.Address.ZipCode, d.Address.Country} {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	d.FullAddress = strings.Join(parts, ", ")
}
