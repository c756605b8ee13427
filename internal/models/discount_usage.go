package models

import (
	"time"

	"gorm.io/gorm"
)

// DiscountUsage 折扣码使用记录
type DiscountUsage struct {
	ID         uint           `gorm:"primarykey" json:"id"`               // 主键
	DiscountID uint           `gorm:"not null;index" json:"discount_id"`  // 折扣码ID
	UserID     uint           `gorm:"not null;index" json:"user_id"`      // 用户ID
	OrderID    uint           `gorm:"not null;index" json:"order_id"`     // 订单ID
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`            // 创建时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                     // 软删除时间
}

// TableName 指定表名
func (DiscountUsage) TableName() string {
	return "discount_usages"
}
