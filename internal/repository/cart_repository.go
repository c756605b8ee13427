package repository

import (
	"errors"

	"github.com/linea-next/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByUser(userID uint) ([]models.CartItem, error)
	GetByUserAndVariant(userID, variantID uint) (*models.CartItem, error)
	Create(item *models.CartItem) error
	UpdateQuantity(itemID uint, quantity int) error
	DeleteByUserAndVariant(userID, variantID uint) error
	ClearByUser(userID uint) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByUser 用户购物车明细（含商品与 SKU）
func (r *GormCartRepository) ListByUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.Preload("Product").Preload("Product.Category").Preload("Variant").
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetByUserAndVariant 获取用户购物车里某 SKU 对应的条目
func (r *GormCartRepository) GetByUserAndVariant(userID, variantID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("user_id = ? AND variant_id = ?", userID, variantID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Create 新增条目
func (r *GormCartRepository) Create(item *models.CartItem) error {
	return r.db.Create(item).Error
}

// UpdateQuantity 修改条目数量
func (r *GormCartRepository) UpdateQuantity(itemID uint, quantity int) error {
	return r.db.Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity).Error
}

// DeleteByUserAndVariant 删除用户购物车里某 SKU 对应的条目
func (r *GormCartRepository) DeleteByUserAndVariant(userID, variantID uint) error {
	return r.db.Where("user_id = ? AND variant_id = ?", userID, variantID).
		Delete(&models.CartItem{}).Error
}

// ClearByUser 清空用户购物车
func (r *GormCartRepository) ClearByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
