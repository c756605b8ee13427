package service

import (
	"strings"
	"time"

	"github.com/linea-next/internal/constants"
	"github.com/linea-next/internal/models"
	"github.com/linea-next/internal/repository"

	"github.com/shopspring/decimal"
)

// DiscountService 折扣码服务
type DiscountService struct {
	discountRepo repository.DiscountRepository
	usageRepo    repository.DiscountUsageRepository
}

// NewDiscountService 创建折扣码服务
func NewDiscountService(discountRepo repository.DiscountRepository, usageRepo repository.DiscountUsageRepository) *DiscountService {
	return &DiscountService{
		discountRepo: discountRepo,
		usageRepo:    usageRepo,
	}
}

// ApplyDiscount 校验折扣码并计算折扣金额
// 折扣码匹配不区分大小写；userID 为 0 时跳过个人使用上限校验。
func (s *DiscountService) ApplyDiscount(code string, userID uint, items []models.OrderItem) (models.Money, *models.Discount, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return models.Money{}, nil, ErrDiscountInvalid
	}

	discount, err := s.discountRepo.GetByCode(trimmed)
	if err != nil {
		return models.Money{}, nil, err
	}
	if discount == nil {
		return models.Money{}, nil, ErrDiscountNotFound
	}

	if err := s.checkEligibility(discount, userID); err != nil {
		return models.Money{}, discount, err
	}

	amount, err := s.CalculateDiscountAmount(discount, items)
	if err != nil {
		return models.Money{}, discount, err
	}
	return amount, discount, nil
}

func (s *DiscountService) checkEligibility(discount *models.Discount, userID uint) error {
	if !discount.IsActive {
		return ErrDiscountInactive
	}

	now := time.Now()
	if discount.StartsAt != nil && now.Before(*discount.StartsAt) {
		return ErrDiscountNotStarted
	}
	if discount.ExpiresAt != nil && now.After(*discount.ExpiresAt) {
		return ErrDiscountExpired
	}

	if discount.UsageLimit > 0 && discount.UsedCount >= discount.UsageLimit {
		return ErrDiscountUsageLimit
	}

	if discount.PerUserLimit > 0 && userID != 0 {
		count, err := s.usageRepo.CountByUser(discount.ID, userID)
		if err != nil {
			return err
		}
		if int(count) >= discount.PerUserLimit {
			return ErrDiscountPerUserLimit
		}
	}
	return nil
}

// CalculateDiscountAmount 按折扣范围与类型计算折扣金额
// 限定商品时只看商品匹配，限定分类时按订单项的分类快照匹配，
// 商品匹配优先于分类匹配；两者皆空时作用于整车小计。
// percentage 按适用小计的百分比折算；fixed 对每条适用订单项
// 各抵扣 min(面值, 行小计)，行间抵扣直接累加。
func (s *DiscountService) CalculateDiscountAmount(discount *models.Discount, items []models.OrderItem) (models.Money, error) {
	if discount.DiscountValue.Decimal.LessThanOrEqual(decimal.Zero) {
		return models.Money{}, ErrDiscountInvalid
	}

	if !discount.IsScoped() {
		return s.calculateCartWide(discount, items)
	}

	matched := s.matchItems(discount, items)
	if len(matched) == 0 {
		return models.Money{}, ErrDiscountInvalid
	}

	switch strings.ToLower(strings.TrimSpace(discount.DiscountType)) {
	case constants.DiscountTypePercentage:
		eligible := decimal.Zero
		for _, item := range matched {
			eligible = eligible.Add(item.TotalPrice.Decimal)
		}
		percent := discount.DiscountValue.Decimal.Div(decimal.NewFromInt(100))
		return models.NewMoneyFromDecimal(eligible.Mul(percent)), nil
	case constants.DiscountTypeFixed:
		total := decimal.Zero
		for _, item := range matched {
			line := discount.DiscountValue.Decimal
			if line.GreaterThan(item.TotalPrice.Decimal) {
				line = item.TotalPrice.Decimal
			}
			total = total.Add(line)
		}
		return models.NewMoneyFromDecimal(total), nil
	default:
		return models.Money{}, ErrDiscountInvalid
	}
}

func (s *DiscountService) calculateCartWide(discount *models.Discount, items []models.OrderItem) (models.Money, error) {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.TotalPrice.Decimal)
	}
	if subtotal.LessThanOrEqual(decimal.Zero) {
		return models.Money{}, ErrDiscountInvalid
	}

	switch strings.ToLower(strings.TrimSpace(discount.DiscountType)) {
	case constants.DiscountTypePercentage:
		percent := discount.DiscountValue.Decimal.Div(decimal.NewFromInt(100))
		return models.NewMoneyFromDecimal(subtotal.Mul(percent)), nil
	case constants.DiscountTypeFixed:
		amount := discount.DiscountValue.Decimal
		if amount.GreaterThan(subtotal) {
			amount = subtotal
		}
		return models.NewMoneyFromDecimal(amount), nil
	default:
		return models.Money{}, ErrDiscountInvalid
	}
}

func (s *DiscountService) matchItems(discount *models.Discount, items []models.OrderItem) []models.OrderItem {
	matched := make([]models.OrderItem, 0, len(items))
	if discount.ProductID != nil {
		for _, item := range items {
			if item.ProductID == *discount.ProductID {
				matched = append(matched, item)
			}
		}
		return matched
	}
	if discount.CategoryID != nil {
		for _, item := range items {
			if item.CategoryID == *discount.CategoryID {
				matched = append(matched, item)
			}
		}
	}
	return matched
}

// RecordUsage 记录折扣码使用，下单事务内调用
func (s *DiscountService) RecordUsage(repo repository.DiscountRepository, usageRepo repository.DiscountUsageRepository, discountID, userID, orderID uint) error {
	if err := repo.IncrementUsedCount(discountID); err != nil {
		return err
	}
	return usageRepo.Create(&models.DiscountUsage{
		DiscountID: discountID,
		UserID:     userID,
		OrderID:    orderID,
	})
}

// ReleaseUsage 回退折扣码使用，订单取消事务内调用
func (s *DiscountService) ReleaseUsage(repo repository.DiscountRepository, usageRepo repository.DiscountUsageRepository, discountID, orderID uint) error {
	if err := repo.DecrementUsedCount(discountID); err != nil {
		return err
	}
	return usageRepo.DeleteByOrder(orderID)
}
