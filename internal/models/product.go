package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	CategoryID  uint           `gorm:"not null;index" json:"category_id"`                         // 分类ID
	BrandID     *uint          `gorm:"index" json:"brand_id,omitempty"`                           // 品牌ID
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`                          // 唯一标识
	Name        string         `gorm:"not null" json:"name"`                                      // 商品名称
	Description string         `gorm:"type:text" json:"description"`                              // 商品描述
	PriceAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"` // 基础价格（无规格差价时的展示价）
	Images      StringArray    `gorm:"type:json" json:"images"`                                   // 图片数组
	Tags        StringArray    `gorm:"type:json" json:"tags"`                                     // 标签数组
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                       // 是否上架
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`                         // 排序权重
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	// 关联
	Category   Category           `gorm:"foreignKey:CategoryID" json:"category,omitempty"`   // 分类信息
	Brand      *Brand             `gorm:"foreignKey:BrandID" json:"brand,omitempty"`         // 品牌信息
	Attributes []ProductAttribute `gorm:"foreignKey:ProductID" json:"attributes,omitempty"`  // 商品配置的属性维度
	Variants   []ProductVariant   `gorm:"foreignKey:ProductID" json:"variants,omitempty"`    // 规格列表
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// ProductAttribute 商品与属性维度的绑定
// 决定了该商品的规格由哪些属性组合而成。
type ProductAttribute struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                                 // 主键
	ProductID   uint           `gorm:"not null;index;uniqueIndex:idx_product_attribute" json:"product_id"`  // 商品ID
	AttributeID uint           `gorm:"not null;uniqueIndex:idx_product_attribute" json:"attribute_id"`      // 属性ID
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`                                    // 排序权重
	CreatedAt   time.Time      `json:"created_at"`                                                           // 创建时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                                       // 软删除时间

	Attribute *Attribute `gorm:"foreignKey:AttributeID" json:"attribute,omitempty"` // 属性详情
}

// TableName 指定表名
func (ProductAttribute) TableName() string {
	return "product_attributes"
}
