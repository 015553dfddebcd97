package models

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"
)

// 商品合身度评价
const (
	ReviewFitSmall = "Runs Small"
	ReviewFitTrue  = "True to Size"
	ReviewFitLarge = "Runs Large"
)

var (
	ErrReviewRating  = errors.New("rating must be between 1 and 5")
	ErrReviewTitle   = errors.New("title must be at most 100 characters")
	ErrReviewContent = errors.New("content is required and must be at most 1000 characters")
	ErrReviewFit     = errors.New("fit is not a recognized value")
)

// Review 商品评价（每个用户对每个商品仅一条）
type Review struct {
	ID                 string    `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"_id"`                                           // 主键
	UserID             string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_review_user_product" bson:"user" json:"user"`       // 用户ID
	ProductID          string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_review_user_product" bson:"product" json:"product"` // 商品ID
	Rating             int       `gorm:"not null" bson:"rating" json:"rating"`                                                        // 评分 1-5
	Title              string    `gorm:"type:varchar(100)" bson:"title,omitempty" json:"title,omitempty"`                             // 标题
	Content            string    `gorm:"type:text;not null" bson:"content" json:"content"`                                            // 内容
	Fit                string    `gorm:"type:varchar(30)" bson:"fit,omitempty" json:"fit,omitempty"`                                  // 合身度
	IsVerifiedPurchase bool      `gorm:"not null;default:false" bson:"isVerifiedPurchase" json:"isVerifiedPurchase"`                  // 是否已购
	IsApproved         bool      `gorm:"not null;default:false" bson:"isApproved" json:"isApproved"`                                  // 是否审核通过
	HelpfulCount       int       `gorm:"not null;default:0" bson:"helpfulCount" json:"helpfulCount"`                                  // 有用数
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`                                                                  // 创建时间
	UpdatedAt          time.Time `bson:"updatedAt" json:"updatedAt"`                                                                  // 更新时间
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}

// BeforeCreate 生成主键并校验
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = NewID()
	}
	return r.Validate()
}

// Validate 校验评价字段
func (r *Review) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrReviewRating
	}
	if utf8.RuneCountInString(r.Title) > 100 {
		return ErrReviewTitle
	}
	content := strings.TrimSpace(r.Content)
	if content == "" || utf8.RuneCountInString(content) > 1000 {
		return ErrReviewContent
	}
	switch r.Fit {
	case "", ReviewFitSmall, ReviewFitTrue, ReviewFitLarge:
	default:
		return ErrReviewFit
	}
	return nil
}
