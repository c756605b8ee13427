package service

import (
	"context"
	"strings"

	"github.com/linea-next/internal/models"
	"github.com/linea-next/internal/repository"
)

// CategoryInput 分类写入参数
type CategoryInput struct {
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	ParentID  *uint  `json:"parent_id"`
	SortOrder int    `json:"sort_order"`
}

// CategoryService 管理端分类服务
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// ListCategories 分类列表
func (s *CategoryService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.List()
}

// GetCategory 分类详情
func (s *CategoryService) GetCategory(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// CreateCategory 创建分类
func (s *CategoryService) CreateCategory(input CategoryInput) (*models.Category, error) {
	if err := s.validateInput(&input, 0); err != nil {
		return nil, err
	}

	category := &models.Category{
		Slug:      strings.TrimSpace(input.Slug),
		Name:      strings.TrimSpace(input.Name),
		ParentID:  input.ParentID,
		SortOrder: input.SortOrder,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	InvalidateCatalogCache(context.Background())
	return category, nil
}

// UpdateCategory 更新分类
func (s *CategoryService) UpdateCategory(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(&input, id); err != nil {
		return nil, err
	}

	category.Slug = strings.TrimSpace(input.Slug)
	category.Name = strings.TrimSpace(input.Name)
	category.ParentID = input.ParentID
	category.SortOrder = input.SortOrder
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	InvalidateCatalogCache(context.Background())
	return category, nil
}

// DeleteCategory 删除分类，分类下有商品时拒绝
func (s *CategoryService) DeleteCategory(id uint) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}

	count, err := s.categoryRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}
	InvalidateCatalogCache(context.Background())
	return nil
}

func (s *CategoryService) validateInput(input *CategoryInput, excludeID uint) error {
	slug := strings.TrimSpace(input.Slug)
	if slug == "" || strings.TrimSpace(input.Name) == "" {
		return ErrBadRequest
	}

	count, err := s.categoryRepo.CountBySlug(slug, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugTaken
	}

	if input.ParentID != nil {
		if excludeID > 0 && *input.ParentID == excludeID {
			return ErrBadRequest
		}
		parent, err := s.categoryRepo.GetByID(*input.ParentID)
		if err != nil {
			return err
		}
		if parent == nil {
			return ErrCategoryNotFound
		}
	}
	return nil
}
