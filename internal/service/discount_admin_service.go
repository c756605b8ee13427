package service

import (
	"strings"
	"time"

	"github.com/linea-next/internal/constants"
	"github.com/linea-next/internal/models"
	"github.com/linea-next/internal/repository"

	"github.com/shopspring/decimal"
)

// DiscountInput 折扣码写入参数
type DiscountInput struct {
	Code          string       `json:"code"`
	DiscountType  string       `json:"discount_type"`
	DiscountValue models.Money `json:"discount_value"`
	ProductID     *uint        `json:"product_id"`
	CategoryID    *uint        `json:"category_id"`
	UsageLimit    int          `json:"usage_limit"`
	PerUserLimit  int          `json:"per_user_limit"`
	StartsAt      *time.Time   `json:"starts_at"`
	ExpiresAt     *time.Time   `json:"expires_at"`
	IsActive      bool         `json:"is_active"`
}

// DiscountAdminService 管理端折扣码服务
type DiscountAdminService struct {
	discountRepo repository.DiscountRepository
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewDiscountAdminService 创建折扣码管理服务
func NewDiscountAdminService(
	discountRepo repository.DiscountRepository,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
) *DiscountAdminService {
	return &DiscountAdminService{
		discountRepo: discountRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// ListDiscounts 折扣码列表
func (s *DiscountAdminService) ListDiscounts(filter repository.DiscountListFilter) ([]models.Discount, int64, error) {
	return s.discountRepo.List(filter)
}

// GetDiscount 折扣码详情
func (s *DiscountAdminService) GetDiscount(id uint) (*models.Discount, error) {
	discount, err := s.discountRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, ErrDiscountNotFound
	}
	return discount, nil
}

// CreateDiscount 创建折扣码
func (s *DiscountAdminService) CreateDiscount(input DiscountInput) (*models.Discount, error) {
	if err := s.validateInput(&input, 0); err != nil {
		return nil, err
	}

	discount := &models.Discount{
		Code:          strings.TrimSpace(input.Code),
		DiscountType:  strings.ToLower(strings.TrimSpace(input.DiscountType)),
		DiscountValue: input.DiscountValue,
		ProductID:     input.ProductID,
		CategoryID:    input.CategoryID,
		UsageLimit:    input.UsageLimit,
		PerUserLimit:  input.PerUserLimit,
		StartsAt:      input.StartsAt,
		ExpiresAt:     input.ExpiresAt,
		IsActive:      input.IsActive,
	}
	if err := s.discountRepo.Create(discount); err != nil {
		return nil, err
	}
	return discount, nil
}

// UpdateDiscount 更新折扣码
func (s *DiscountAdminService) UpdateDiscount(id uint, input DiscountInput) (*models.Discount, error) {
	discount, err := s.GetDiscount(id)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(&input, id); err != nil {
		return nil, err
	}

	discount.Code = strings.TrimSpace(input.Code)
	discount.DiscountType = strings.ToLower(strings.TrimSpace(input.DiscountType))
	discount.DiscountValue = input.DiscountValue
	discount.ProductID = input.ProductID
	discount.CategoryID = input.CategoryID
	discount.UsageLimit = input.UsageLimit
	discount.PerUserLimit = input.PerUserLimit
	discount.StartsAt = input.StartsAt
	discount.ExpiresAt = input.ExpiresAt
	discount.IsActive = input.IsActive
	if err := s.discountRepo.Update(discount); err != nil {
		return nil, err
	}
	return discount, nil
}

// DeleteDiscount 删除折扣码
func (s *DiscountAdminService) DeleteDiscount(id uint) error {
	if _, err := s.GetDiscount(id); err != nil {
		return err
	}
	return s.discountRepo.Delete(id)
}

func (s *DiscountAdminService) validateInput(input *DiscountInput, excludeID uint) error {
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return ErrBadRequest
	}

	discountType := strings.ToLower(strings.TrimSpace(input.DiscountType))
	if discountType != constants.DiscountTypePercentage && discountType != constants.DiscountTypeFixed {
		return ErrBadRequest
	}
	if input.DiscountValue.Decimal.LessThanOrEqual(decimal.Zero) {
		return ErrBadRequest
	}
	if discountType == constants.DiscountTypePercentage &&
		input.DiscountValue.Decimal.GreaterThan(decimal.NewFromInt(100)) {
		return ErrBadRequest
	}
	if input.StartsAt != nil && input.ExpiresAt != nil && input.ExpiresAt.Before(*input.StartsAt) {
		return ErrBadRequest
	}
	if input.UsageLimit < 0 || input.PerUserLimit < 0 {
		return ErrBadRequest
	}

	// 折扣码大小写不敏感，占用检查同样忽略大小写
	count, err := s.discountRepo.CountByCode(code, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDiscountCodeTaken
	}

	if input.ProductID != nil {
		product, err := s.productRepo.GetByID(*input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return ErrProductNotFound
		}
	}
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(*input.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return ErrCategoryNotFound
		}
	}
	return nil
}
