package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// VariantAttributeRef 规格上的单个属性取值
type VariantAttributeRef struct {
	AttributeID uint `json:"attribute_id"` // 属性ID
	ValueID     uint `json:"value_id"`     // 属性值ID
}

// VariantAttributeRefs 规格属性取值集合（JSON 列）
type VariantAttributeRefs []VariantAttributeRef

// Value 实现 driver.Valuer 接口
func (refs VariantAttributeRefs) Value() (driver.Value, error) {
	if refs == nil {
		return nil, nil
	}
	return json.Marshal(refs)
}

// Scan 实现 sql.Scanner 接口
func (refs *VariantAttributeRefs) Scan(value interface{}) error {
	if value == nil {
		*refs = VariantAttributeRefs{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, refs)
}

// ValueFor 返回指定属性的取值，未设置时返回 0
func (refs VariantAttributeRefs) ValueFor(attributeID uint) uint {
	for _, ref := range refs {
		if ref.AttributeID == attributeID {
			return ref.ValueID
		}
	}
	return 0
}

// ProductVariant 商品规格（SKU）
// 每条规格对商品的每个属性各携带一个取值。
type ProductVariant struct {
	ID              uint                 `gorm:"primarykey" json:"id"`                                                                          // 主键
	ProductID       uint                 `gorm:"not null;index;uniqueIndex:idx_variant_sku_code" json:"product_id"`                             // 商品ID
	SKUCode         string               `gorm:"column:sku_code;type:varchar(64);not null;uniqueIndex:idx_variant_sku_code" json:"sku_code"`    // SKU编码（同商品内唯一）
	PriceAmount     Money                `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"`                                     // 规格价格
	StockQty        int                  `gorm:"not null;default:0" json:"stock_qty"`                                                           // 库存数量
	AttributeValues VariantAttributeRefs `gorm:"type:json" json:"attribute_values"`                                                             // 属性取值组合
	IsActive        bool                 `gorm:"default:true;index" json:"is_active"`                                                           // 是否可售
	SortOrder       int                  `gorm:"default:0;index" json:"sort_order"`                                                             // 排序权重
	CreatedAt       time.Time            `gorm:"index" json:"created_at"`                                                                       // 创建时间
	UpdatedAt       time.Time            `gorm:"index" json:"updated_at"`                                                                       // 更新时间
	DeletedAt       gorm.DeletedAt       `gorm:"index" json:"-"`                                                                                // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (ProductVariant) TableName() string {
	return "product_variants"
}
