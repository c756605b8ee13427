package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/linea-next/internal/models"

	"gorm.io/gorm"
)

// VariantRepository SKU 数据访问接口
type VariantRepository interface {
	ListByProduct(productID uint, onlyActive bool) ([]models.ProductVariant, error)
	GetByID(id uint) (*models.ProductVariant, error)
	Create(variant *models.ProductVariant) error
	Update(variant *models.ProductVariant) error
	Delete(id uint) error
	CountBySKUCode(productID uint, skuCode string, excludeID uint) (int64, error)
	CountByAttributeValue(valueID uint) (int64, error)
	DecrementStock(variantID uint, qty int) (bool, error)
	RestoreStock(variantID uint, qty int) error
	WithTx(tx *gorm.DB) VariantRepository
}

// GormVariantRepository GORM 实现
type GormVariantRepository struct {
	db *gorm.DB
}

// NewVariantRepository 创建 SKU 仓库
func NewVariantRepository(db *gorm.DB) *GormVariantRepository {
	return &GormVariantRepository{db: db}
}

// WithTx 绑定事务
func (r *GormVariantRepository) WithTx(tx *gorm.DB) VariantRepository {
	if tx == nil {
		return r
	}
	return &GormVariantRepository{db: tx}
}

// ListByProduct 按商品获取 SKU 列表
func (r *GormVariantRepository) ListByProduct(productID uint, onlyActive bool) ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	query := r.db.Where("product_id = ?", productID)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("sort_order ASC, id ASC").Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// GetByID 根据ID获取 SKU
func (r *GormVariantRepository) GetByID(id uint) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.db.First(&variant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

// Create 创建 SKU
func (r *GormVariantRepository) Create(variant *models.ProductVariant) error {
	return r.db.Create(variant).Error
}

// Update 更新 SKU
func (r *GormVariantRepository) Update(variant *models.ProductVariant) error {
	return r.db.Save(variant).Error
}

// Delete 删除 SKU
func (r *GormVariantRepository) Delete(id uint) error {
	return r.db.Delete(&models.ProductVariant{}, id).Error
}

// CountBySKUCode 统计商品内 SKU 编码占用数
func (r *GormVariantRepository) CountBySKUCode(productID uint, skuCode string, excludeID uint) (int64, error) {
	query := r.db.Model(&models.ProductVariant{}).
		Where("product_id = ? AND sku_code = ?", productID, strings.TrimSpace(skuCode))
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

// CountByAttributeValue 统计引用了某属性值的 SKU 数
// attribute_values 列按固定字段序序列化，value_id 位于对象末尾，
// 因此用 `"value_id":N}` 做模式匹配不会误伤前缀相同的ID。
func (r *GormVariantRepository) CountByAttributeValue(valueID uint) (int64, error) {
	pattern := fmt.Sprintf(`%%"value_id":%d}%%`, valueID)
	var count int64
	err := r.db.Model(&models.ProductVariant{}).
		Where("attribute_values LIKE ?", pattern).
		Count(&count).Error
	return count, err
}

// DecrementStock 条件扣减库存，库存不足时返回 false 且不做任何修改
func (r *GormVariantRepository) DecrementStock(variantID uint, qty int) (bool, error) {
	if qty <= 0 {
		return false, fmt.Errorf("invalid decrement qty: %d", qty)
	}
	result := r.db.Model(&models.ProductVariant{}).
		Where("id = ? AND stock_qty >= ?", variantID, qty).
		UpdateColumn("stock_qty", gorm.Expr("stock_qty - ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RestoreStock 回补库存（取消订单、超时关闭时使用）
func (r *GormVariantRepository) RestoreStock(variantID uint, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("invalid restore qty: %d", qty)
	}
	return r.db.Model(&models.ProductVariant{}).
		Where("id = ?", variantID).
		UpdateColumn("stock_qty", gorm.Expr("stock_qty + ?", qty)).Error
}
