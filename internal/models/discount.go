package models

import (
	"time"

	"gorm.io/gorm"
)

// Discount 折扣码
// ProductID/CategoryID 限定适用范围：商品匹配优先于分类匹配；
// 两者均为空时为全车折扣。
type Discount struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                        // 主键
	Code          string         `gorm:"uniqueIndex;not null" json:"code"`                            // 折扣码
	DiscountType  string         `gorm:"not null" json:"discount_type"`                               // 类型（percentage/fixed）
	DiscountValue Money          `gorm:"type:decimal(20,2);not null" json:"discount_value"`           // 数值（百分比或固定金额）
	ProductID     *uint          `gorm:"index" json:"product_id,omitempty"`                           // 适用商品ID
	CategoryID    *uint          `gorm:"index" json:"category_id,omitempty"`                          // 适用分类ID
	UsageLimit    int            `gorm:"not null;default:0" json:"usage_limit"`                       // 总使用上限（0 表示不限制）
	UsedCount     int            `gorm:"not null;default:0" json:"used_count"`                        // 已使用次数
	PerUserLimit  int            `gorm:"not null;default:0" json:"per_user_limit"`                    // 每人使用上限（0 表示不限制）
	StartsAt      *time.Time     `gorm:"index" json:"starts_at"`                                      // 生效时间
	ExpiresAt     *time.Time     `gorm:"index" json:"expires_at"`                                     // 失效时间
	IsActive      bool           `gorm:"not null;default:true" json:"is_active"`                      // 是否启用
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`                                     // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间
}

// TableName 指定表名
func (Discount) TableName() string {
	return "discounts"
}

// IsScoped 是否为限定范围折扣
func (d *Discount) IsScoped() bool {
	return d.ProductID != nil || d.CategoryID != nil
}
