package repository

import (
	"errors"
	"strings"

	"github.com/linea-next/internal/models"

	"gorm.io/gorm"
)

// AttributeRepository 属性数据访问接口
type AttributeRepository interface {
	List(filter AttributeListFilter) ([]models.Attribute, int64, error)
	ListByIDs(ids []uint) ([]models.Attribute, error)
	GetByID(id uint) (*models.Attribute, error)
	GetByCode(code string) (*models.Attribute, error)
	Create(attribute *models.Attribute) error
	Update(attribute *models.Attribute) error
	Delete(id uint) error
	GetValue(valueID uint) (*models.AttributeValue, error)
	CreateValue(value *models.AttributeValue) error
	UpdateValue(value *models.AttributeValue) error
	DeleteValue(valueID uint) error
	CountProductBindings(attributeID uint) (int64, error)
	WithTx(tx *gorm.DB) AttributeRepository
}

// GormAttributeRepository GORM 实现
type GormAttributeRepository struct {
	db *gorm.DB
}

// NewAttributeRepository 创建属性仓库
func NewAttributeRepository(db *gorm.DB) *GormAttributeRepository {
	return &GormAttributeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAttributeRepository) WithTx(tx *gorm.DB) AttributeRepository {
	if tx == nil {
		return r
	}
	return &GormAttributeRepository{db: tx}
}

// List 属性列表（含可选值）
func (r *GormAttributeRepository) List(filter AttributeListFilter) ([]models.Attribute, int64, error) {
	var attributes []models.Attribute

	query := r.db.Model(&models.Attribute{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR code LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	query = query.Preload("Values", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	})
	if err := query.Order("sort_order ASC, id ASC").Find(&attributes).Error; err != nil {
		return nil, 0, err
	}
	return attributes, total, nil
}

// ListByIDs 按ID集合获取属性（含可选值）
func (r *GormAttributeRepository) ListByIDs(ids []uint) ([]models.Attribute, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var attributes []models.Attribute
	err := r.db.Preload("Values", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).Where("id IN ?", ids).Order("sort_order ASC, id ASC").Find(&attributes).Error
	if err != nil {
		return nil, err
	}
	return attributes, nil
}

// GetByID 根据ID获取属性（含可选值）
func (r *GormAttributeRepository) GetByID(id uint) (*models.Attribute, error) {
	var attribute models.Attribute
	err := r.db.Preload("Values", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).First(&attribute, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attribute, nil
}

// GetByCode 根据编码获取属性
func (r *GormAttributeRepository) GetByCode(code string) (*models.Attribute, error) {
	var attribute models.Attribute
	err := r.db.Where("code = ?", strings.TrimSpace(code)).First(&attribute).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attribute, nil
}

// Create 创建属性
func (r *GormAttributeRepository) Create(attribute *models.Attribute) error {
	return r.db.Create(attribute).Error
}

// Update 更新属性
func (r *GormAttributeRepository) Update(attribute *models.Attribute) error {
	return r.db.Save(attribute).Error
}

// Delete 删除属性（连同可选值）
func (r *GormAttributeRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("attribute_id = ?", id).Delete(&models.AttributeValue{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Attribute{}, id).Error
	})
}

// GetValue 根据ID获取属性值
func (r *GormAttributeRepository) GetValue(valueID uint) (*models.AttributeValue, error) {
	var value models.AttributeValue
	if err := r.db.First(&value, valueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &value, nil
}

// CreateValue 创建属性值
func (r *GormAttributeRepository) CreateValue(value *models.AttributeValue) error {
	return r.db.Create(value).Error
}

// UpdateValue 更新属性值
func (r *GormAttributeRepository) UpdateValue(value *models.AttributeValue) error {
	return r.db.Save(value).Error
}

// DeleteValue 删除属性值
func (r *GormAttributeRepository) DeleteValue(valueID uint) error {
	return r.db.Delete(&models.AttributeValue{}, valueID).Error
}

// CountProductBindings 统计绑定该属性的商品数
func (r *GormAttributeRepository) CountProductBindings(attributeID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ProductAttribute{}).Where("attribute_id = ?", attributeID).Count(&count).Error
	return count, err
}
