package service

import (
	"context"
	"strings"

	"github.com/linea-next/internal/models"
	"github.com/linea-next/internal/repository"
)

// BrandInput 品牌写入参数
type BrandInput struct {
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	LogoURL   string `json:"logo_url"`
	SortOrder int    `json:"sort_order"`
}

// BrandService 管理端品牌服务
type BrandService struct {
	brandRepo repository.BrandRepository
}

// NewBrandService 创建品牌服务
func NewBrandService(brandRepo repository.BrandRepository) *BrandService {
	return &BrandService{brandRepo: brandRepo}
}

// ListBrands 品牌列表
func (s *BrandService) ListBrands() ([]models.Brand, error) {
	return s.brandRepo.List()
}

// GetBrand 品牌详情
func (s *BrandService) GetBrand(id uint) (*models.Brand, error) {
	brand, err := s.brandRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrBrandNotFound
	}
	return brand, nil
}

// CreateBrand 创建品牌
func (s *BrandService) CreateBrand(input BrandInput) (*models.Brand, error) {
	if err := s.validateInput(&input, 0); err != nil {
		return nil, err
	}

	brand := &models.Brand{
		Slug:      strings.TrimSpace(input.Slug),
		Name:      strings.TrimSpace(input.Name),
		LogoURL:   strings.TrimSpace(input.LogoURL),
		SortOrder: input.SortOrder,
	}
	if err := s.brandRepo.Create(brand); err != nil {
		return nil, err
	}
	InvalidateCatalogCache(context.Background())
	return brand, nil
}

// UpdateBrand 更新品牌
func (s *BrandService) UpdateBrand(id uint, input BrandInput) (*models.Brand, error) {
	brand, err := s.GetBrand(id)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(&input, id); err != nil {
		return nil, err
	}

	brand.Slug = strings.TrimSpace(input.Slug)
	brand.Name = strings.TrimSpace(input.Name)
	brand.LogoURL = strings.TrimSpace(input.LogoURL)
	brand.SortOrder = input.SortOrder
	if err := s.brandRepo.Update(brand); err != nil {
		return nil, err
	}
	InvalidateCatalogCache(context.Background())
	return brand, nil
}

// DeleteBrand 删除品牌，品牌下有商品时拒绝
func (s *BrandService) DeleteBrand(id uint) error {
	if _, err := s.GetBrand(id); err != nil {
		return err
	}

	count, err := s.brandRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrBrandInUse
	}

	if err := s.brandRepo.Delete(id); err != nil {
		return err
	}
	InvalidateCatalogCache(context.Background())
	return nil
}

func (s *BrandService) validateInput(input *BrandInput, excludeID uint) error {
	slug := strings.TrimSpace(input.Slug)
	if slug == "" || strings.TrimSpace(input.Name) == "" {
		return ErrBadRequest
	}

	count, err := s.brandRepo.CountBySlug(slug, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugTaken
	}
	return nil
}
