package models

import (
	"time"

	"gorm.io/gorm"
)

// Attribute 商品属性维度（如颜色、尺码）
type Attribute struct {
	ID        uint           `gorm:"primarykey" json:"id"`              // 主键
	Name      string         `gorm:"not null" json:"name"`              // 属性名称
	Code      string         `gorm:"uniqueIndex;not null" json:"code"`  // 唯一编码
	SortOrder int            `gorm:"default:0;index" json:"sort_order"` // 排序权重
	CreatedAt time.Time      `gorm:"index" json:"created_at"`           // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                        // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                    // 软删除时间

	Values []AttributeValue `gorm:"foreignKey:AttributeID" json:"values,omitempty"` // 可选值列表
}

// TableName 指定表名
func (Attribute) TableName() string {
	return "attributes"
}

// AttributeValue 属性可选值
// 同一属性内 value 唯一（idx_attr_value）。
type AttributeValue struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                        // 主键
	AttributeID  uint           `gorm:"not null;index;uniqueIndex:idx_attr_value" json:"attribute_id"` // 属性ID
	Value        string         `gorm:"not null;uniqueIndex:idx_attr_value" json:"value"`            // 取值
	DisplayValue string         `gorm:"type:varchar(200)" json:"display_value"`                      // 展示文案
	Code         string         `gorm:"type:varchar(64)" json:"code"`                                // 颜色码等附加编码
	SortOrder    int            `gorm:"default:0;index" json:"sort_order"`                           // 排序权重
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                                                  // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间
}

// TableName 指定表名
func (AttributeValue) TableName() string {
	return "attribute_values"
}
