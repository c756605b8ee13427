package repository

import (
	"errors"
	"strings"

	"github.com/linea-next/internal/models"

	"gorm.io/gorm"
)

// DiscountRepository 折扣码数据访问接口
type DiscountRepository interface {
	List(filter DiscountListFilter) ([]models.Discount, int64, error)
	GetByID(id uint) (*models.Discount, error)
	GetByCode(code string) (*models.Discount, error)
	Create(discount *models.Discount) error
	Update(discount *models.Discount) error
	Delete(id uint) error
	CountByCode(code string, excludeID uint) (int64, error)
	IncrementUsedCount(id uint) error
	DecrementUsedCount(id uint) error
	WithTx(tx *gorm.DB) DiscountRepository
}

// GormDiscountRepository GORM 实现
type GormDiscountRepository struct {
	db *gorm.DB
}

// NewDiscountRepository 创建折扣码仓库
func NewDiscountRepository(db *gorm.DB) *GormDiscountRepository {
	return &GormDiscountRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDiscountRepository) WithTx(tx *gorm.DB) DiscountRepository {
	if tx == nil {
		return r
	}
	return &GormDiscountRepository{db: tx}
}

// List 折扣码列表
func (r *GormDiscountRepository) List(filter DiscountListFilter) ([]models.Discount, int64, error) {
	var discounts []models.Discount

	query := r.db.Model(&models.Discount{})
	if code := strings.TrimSpace(filter.Code); code != "" {
		query = query.Where("LOWER(code) LIKE ?", "%"+strings.ToLower(code)+"%")
	}
	if filter.ProductID > 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC").Find(&discounts).Error; err != nil {
		return nil, 0, err
	}
	return discounts, total, nil
}

// GetByID 根据ID获取折扣码
func (r *GormDiscountRepository) GetByID(id uint) (*models.Discount, error) {
	var discount models.Discount
	if err := r.db.First(&discount, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &discount, nil
}

// GetByCode 根据折扣码获取，匹配不区分大小写
func (r *GormDiscountRepository) GetByCode(code string) (*models.Discount, error) {
	var discount models.Discount
	err := r.db.Where("LOWER(code) = ?", strings.ToLower(strings.TrimSpace(code))).
		First(&discount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &discount, nil
}

// Create 创建折扣码
func (r *GormDiscountRepository) Create(discount *models.Discount) error {
	return r.db.Create(discount).Error
}

// Update 更新折扣码
func (r *GormDiscountRepository) Update(discount *models.Discount) error {
	return r.db.Save(discount).Error
}

// Delete 删除折扣码
func (r *GormDiscountRepository) Delete(id uint) error {
	return r.db.Delete(&models.Discount{}, id).Error
}

// CountByCode 统计折扣码占用数，忽略大小写
func (r *GormDiscountRepository) CountByCode(code string, excludeID uint) (int64, error) {
	query := r.db.Model(&models.Discount{}).
		Where("LOWER(code) = ?", strings.ToLower(strings.TrimSpace(code)))
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

// IncrementUsedCount 累加使用次数
func (r *GormDiscountRepository) IncrementUsedCount(id uint) error {
	return r.db.Model(&models.Discount{}).
		Where("id = ?", id).
		UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error
}

// DecrementUsedCount 回退使用次数，不低于零
func (r *GormDiscountRepository) DecrementUsedCount(id uint) error {
	return r.db.Model(&models.Discount{}).
		Where("id = ? AND used_count > 0", id).
		UpdateColumn("used_count", gorm.Expr("used_count - 1")).Error
}
