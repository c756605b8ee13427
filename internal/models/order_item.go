package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表
// 商品名称、SKU、分类、单价均为下单时快照，后续商品变更不回溯。
type OrderItem struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                         // 主键
	OrderID        uint           `gorm:"index;not null" json:"order_id"`                               // 订单ID
	ProductID      uint           `gorm:"index;not null" json:"product_id"`                             // 商品ID
	VariantID      uint           `gorm:"index;not null" json:"variant_id"`                             // 规格ID
	CategoryID     uint           `gorm:"index;not null" json:"category_id"`                            // 分类ID快照（折扣范围匹配用）
	ProductName    string         `gorm:"not null" json:"product_name"`                                 // 商品名称快照
	SKUCode        string         `gorm:"column:sku_code;type:varchar(64)" json:"sku_code"`             // SKU编码快照
	UnitPrice      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`      // 单价
	Quantity       int            `gorm:"not null" json:"quantity"`                                     // 数量
	TotalPrice     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`     // 小计
	DiscountAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // 折扣分摊金额
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                      // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
