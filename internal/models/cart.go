package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartLine 购物车行
type CartLine struct {
	ProductID string `bson:"product" json:"product"`
	Quantity  int    `bson:"quantity" json:"quantity"`
	Size      string `bson:"size,omitempty" json:"size,omitempty"`
	Color     string `bson:"color,omitempty" json:"color,omitempty"`
	Price     Money  `bson:"price" json:"price"`
}

// Cart 购物车（当前接口未使用，保留结构）
type Cart struct {
	ID        string     `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"_id"`       // 主键
	UserID    string     `gorm:"type:varchar(36);not null;index" bson:"user" json:"user"` // 用户ID
	Items     []CartLine `gorm:"type:json;serializer:json" bson:"items" json:"items"`     // 商品行
	IsActive  bool       `gorm:"not null;index" bson:"isActive" json:"isActive"`          // 是否有效
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`                              // 创建时间
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`                              // 更新时间
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}

// BeforeCreate 生成主键
func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	return nil
}

// TotalItems 商品总件数
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalAmount 商品总金额
func (c *Cart) TotalAmount() Money {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return NewMoneyFromDecimal(total)
}
