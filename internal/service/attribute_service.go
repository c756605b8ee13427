package service

import (
	"context"
	"strings"

	"github.com/linea-next/internal/models"
	"github.com/linea-next/internal/repository"
)

// AttributeInput 属性写入参数
type AttributeInput struct {
	Name      string `json:"name"`
	Code      string `json:"code"`
	SortOrder int    `json:"sort_order"`
}

// AttributeValueInput 属性值写入参数
type AttributeValueInput struct {
	Value        string `json:"value"`
	DisplayValue string `json:"display_value"`
	Code         string `json:"code"`
	SortOrder    int    `json:"sort_order"`
}

// AttributeService 管理端属性服务
type AttributeService struct {
	attrRepo    repository.AttributeRepository
	variantRepo repository.VariantRepository
}

// NewAttributeService 创建属性服务
func NewAttributeService(attrRepo repository.AttributeRepository, variantRepo repository.VariantRepository) *AttributeService {
	return &AttributeService{
		attrRepo:    attrRepo,
		variantRepo: variantRepo,
	}
}

// ListAttributes 属性列表
func (s *AttributeService) ListAttributes(filter repository.AttributeListFilter) ([]models.Attribute, int64, error) {
	return s.attrRepo.List(filter)
}

// GetAttribute 属性详情
func (s *AttributeService) GetAttribute(id uint) (*models.Attribute, error) {
	attribute, err := s.attrRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if attribute == nil {
		return nil, ErrAttributeNotFound
	}
	return attribute, nil
}

// CreateAttribute 创建属性
func (s *AttributeService) CreateAttribute(input AttributeInput) (*models.Attribute, error) {
	name := strings.TrimSpace(input.Name)
	code := strings.TrimSpace(input.Code)
	if name == "" || code == "" {
		return nil, ErrBadRequest
	}

	existing, err := s.attrRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugTaken
	}

	attribute := &models.Attribute{
		Name:      name,
		Code:      code,
		SortOrder: input.SortOrder,
	}
	if err := s.attrRepo.Create(attribute); err != nil {
		return nil, err
	}
	return attribute, nil
}

// UpdateAttribute 更新属性
func (s *AttributeService) UpdateAttribute(id uint, input AttributeInput) (*models.Attribute, error) {
	attribute, err := s.GetAttribute(id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	code := strings.TrimSpace(input.Code)
	if name == "" || code == "" {
		return nil, ErrBadRequest
	}

	existing, err := s.attrRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, ErrSlugTaken
	}

	attribute.Name = name
	attribute.Code = code
	attribute.SortOrder = input.SortOrder
	attribute.Values = nil
	if err := s.attrRepo.Update(attribute); err != nil {
		return nil, err
	}

	InvalidateCatalogCache(context.Background())
	return s.GetAttribute(id)
}

// DeleteAttribute 删除属性，被商品绑定时拒绝
func (s *AttributeService) DeleteAttribute(id uint) error {
	if _, err := s.GetAttribute(id); err != nil {
		return err
	}

	count, err := s.attrRepo.CountProductBindings(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrAttributeInUse
	}

	if err := s.attrRepo.Delete(id); err != nil {
		return err
	}
	InvalidateCatalogCache(context.Background())
	return nil
}

// CreateValue 新增属性值
func (s *AttributeService) CreateValue(attributeID uint, input AttributeValueInput) (*models.AttributeValue, error) {
	attribute, err := s.GetAttribute(attributeID)
	if err != nil {
		return nil, err
	}

	raw := strings.TrimSpace(input.Value)
	if raw == "" {
		return nil, ErrAttributeValueInvalid
	}
	for _, value := range attribute.Values {
		if value.Value == raw {
			return nil, ErrAttributeValueInvalid
		}
	}

	value := &models.AttributeValue{
		AttributeID:  attributeID,
		Value:        raw,
		DisplayValue: strings.TrimSpace(input.DisplayValue),
		Code:         strings.TrimSpace(input.Code),
		SortOrder:    input.SortOrder,
	}
	if err := s.attrRepo.CreateValue(value); err != nil {
		return nil, err
	}

	InvalidateCatalogCache(context.Background())
	return value, nil
}

// UpdateValue 更新属性值
func (s *AttributeService) UpdateValue(attributeID, valueID uint, input AttributeValueInput) (*models.AttributeValue, error) {
	value, err := s.attrRepo.GetValue(valueID)
	if err != nil {
		return nil, err
	}
	if value == nil || value.AttributeID != attributeID {
		return nil, ErrAttributeValueInvalid
	}

	raw := strings.TrimSpace(input.Value)
	if raw == "" {
		return nil, ErrAttributeValueInvalid
	}

	value.Value = raw
	value.DisplayValue = strings.TrimSpace(input.DisplayValue)
	value.Code = strings.TrimSpace(input.Code)
	value.SortOrder = input.SortOrder
	if err := s.attrRepo.UpdateValue(value); err != nil {
		return nil, err
	}

	InvalidateCatalogCache(context.Background())
	return value, nil
}

// DeleteValue 删除属性值，被规格引用时拒绝
func (s *AttributeService) DeleteValue(attributeID, valueID uint) error {
	value, err := s.attrRepo.GetValue(valueID)
	if err != nil {
		return err
	}
	if value == nil || value.AttributeID != attributeID {
		return ErrAttributeValueInvalid
	}

	count, err := s.variantRepo.CountByAttributeValue(valueID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrAttributeValueInUse
	}

	if err := s.attrRepo.DeleteValue(valueID); err != nil {
		return err
	}
	InvalidateCatalogCache(context.Background())
	return nil
}
