package repository

import (
	"github.com/linea-next/internal/models"

	"gorm.io/gorm"
)

// DiscountUsageRepository 折扣码使用记录数据访问接口
type DiscountUsageRepository interface {
	Create(usage *models.DiscountUsage) error
	CountByUser(discountID, userID uint) (int64, error)
	DeleteByOrder(orderID uint) error
	WithTx(tx *gorm.DB) DiscountUsageRepository
}

// GormDiscountUsageRepository GORM 实现
type GormDiscountUsageRepository struct {
	db *gorm.DB
}

// NewDiscountUsageRepository 创建折扣码使用记录仓库
func NewDiscountUsageRepository(db *gorm.DB) *GormDiscountUsageRepository {
	return &GormDiscountUsageRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDiscountUsageRepository) WithTx(tx *gorm.DB) DiscountUsageRepository {
	if tx == nil {
		return r
	}
	return &GormDiscountUsageRepository{db: tx}
}

// Create 记录一次使用
func (r *GormDiscountUsageRepository) Create(usage *models.DiscountUsage) error {
	return r.db.Create(usage).Error
}

// CountByUser 统计用户对某折扣码的使用次数
func (r *GormDiscountUsageRepository) CountByUser(discountID, userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.DiscountUsage{}).
		Where("discount_id = ? AND user_id = ?", discountID, userID).
		Count(&count).Error
	return count, err
}

// DeleteByOrder 删除某订单产生的使用记录（订单取消时回退）
func (r *GormDiscountUsageRepository) DeleteByOrder(orderID uint) error {
	return r.db.Where("order_id = ?", orderID).Delete(&models.DiscountUsage{}).Error
}
