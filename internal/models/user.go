package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 用户角色
const (
	UserRoleCustomer = "customer"
	UserRoleAdmin    = "admin"
)

// UserPreferences 用户偏好
type UserPreferences struct {
	Department string      `bson:"department,omitempty" json:"department,omitempty"` // Men / Women / Both
	Categories StringArray `bson:"categories,omitempty" json:"categories,omitempty"`
	Brands     StringArray `bson:"brands,omitempty" json:"brands,omitempty"`
	Size       string      `bson:"size,omitempty" json:"size,omitempty"`
	Newsletter bool        `bson:"newsletter" json:"newsletter"`
}

// User 用户表（当前接口未使用，保留结构）
type User struct {
	ID              string          `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"_id"`                    // 主键
	FirstName       string          `gorm:"type:varchar(50);not null" bson:"firstName" json:"firstName"`          // 名
	LastName        string          `gorm:"type:varchar(50);not null" bson:"lastName" json:"lastName"`            // 姓
	Email           string          `gorm:"type:varchar(255);not null;uniqueIndex" bson:"email" json:"email"`     // 邮箱（小写）
	PasswordHash    string          `gorm:"type:varchar(255);not null" bson:"password" json:"-"`                  // 密码哈希
	Phone           string          `gorm:"type:varchar(50)" bson:"phone,omitempty" json:"phone,omitempty"`       // 电话
	Gender          string          `gorm:"type:varchar(30)" bson:"gender,omitempty" json:"gender,omitempty"`     // 性别
	Role            string          `gorm:"type:varchar(20);not null;default:'customer'" bson:"role" json:"role"` // 角色
	Preferences     UserPreferences `gorm:"type:json;serializer:json" bson:"preferences" json:"preferences"`      // 偏好
	IsActive        bool            `gorm:"not null;index" bson:"isActive" json:"isActive"`                       // 是否有效
	IsEmailVerified bool            `gorm:"not null;default:false" bson:"isEmailVerified" json:"isEmailVerified"` // 邮箱是否验证
	LastLogin       *time.Time      `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`                       // 最后登录
	CreatedAt       time.Time       `gorm:"index" bson:"createdAt" json:"createdAt"`                              // 创建时间
	UpdatedAt       time.Time       `bson:"updatedAt" json:"updatedAt"`                                           // 更新时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// BeforeCreate 生成主键并规范邮箱
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Role == "" {
		u.Role = UserRoleCustomer
	}
	return nil
}

// SetPassword 设置密码（bcrypt 哈希）
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword 校验密码
func (u *User) CheckPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// FullName 全名
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
