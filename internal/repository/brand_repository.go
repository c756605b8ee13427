package repository

import (
	"errors"
	"strings"

	"github.com/linea-next/internal/models"

	"gorm.io/gorm"
)

// BrandRepository 品牌数据访问接口
type BrandRepository interface {
	List() ([]models.Brand, error)
	GetByID(id uint) (*models.Brand, error)
	GetBySlug(slug string) (*models.Brand, error)
	Create(brand *models.Brand) error
	Update(brand *models.Brand) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID uint) (int64, error)
	CountProducts(brandID uint) (int64, error)
	WithTx(tx *gorm.DB) BrandRepository
}

// GormBrandRepository GORM 实现
type GormBrandRepository struct {
	db *gorm.DB
}

// NewBrandRepository 创建品牌仓库
func NewBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

// WithTx 绑定事务
func (r *GormBrandRepository) WithTx(tx *gorm.DB) BrandRepository {
	if tx == nil {
		return r
	}
	return &GormBrandRepository{db: tx}
}

// List 品牌列表
func (r *GormBrandRepository) List() ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.db.Order("sort_order ASC, id ASC").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

// GetByID 根据ID获取品牌
func (r *GormBrandRepository) GetByID(id uint) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.First(&brand, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &brand, nil
}

// GetBySlug 根据 slug 获取品牌
func (r *GormBrandRepository) GetBySlug(slug string) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.Where("slug = ?", strings.TrimSpace(slug)).First(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &brand, nil
}

// Create 创建品牌
func (r *GormBrandRepository) Create(brand *models.Brand) error {
	return r.db.Create(brand).Error
}

// Update 更新品牌
func (r *GormBrandRepository) Update(brand *models.Brand) error {
	return r.db.Save(brand).Error
}

// Delete 删除品牌
func (r *GormBrandRepository) Delete(id uint) error {
	return r.db.Delete(&models.Brand{}, id).Error
}

// CountBySlug 统计 slug 占用数
func (r *GormBrandRepository) CountBySlug(slug string, excludeID uint) (int64, error) {
	query := r.db.Model(&models.Brand{}).Where("slug = ?", strings.TrimSpace(slug))
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

// CountProducts 统计品牌下的商品数
func (r *GormBrandRepository) CountProducts(brandID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("brand_id = ?", brandID).Count(&count).Error
	return count, err
}
