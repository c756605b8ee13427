package service

import (
	"github.com/linea-next/internal/config"
	"github.com/linea-next/internal/models"

	"github.com/shopspring/decimal"
)

// PricingBreakdown 购物车定价分解
type PricingBreakdown struct {
	Currency       string       `json:"currency"`
	SubtotalAmount models.Money `json:"subtotal_amount"`
	ShippingAmount models.Money `json:"shipping_amount"`
	TaxAmount      models.Money `json:"tax_amount"`
	DiscountAmount models.Money `json:"discount_amount"`
	TotalAmount    models.Money `json:"total_amount"`
}

// PricingService 购物车定价服务
// 运费与税费为配置中的固定金额，预览与下单共用同一套计算。
type PricingService struct {
	cfg *config.Config
}

// NewPricingService 创建定价服务
func NewPricingService(cfg *config.Config) *PricingService {
	return &PricingService{cfg: cfg}
}

// ShippingAmount 配置运费
func (s *PricingService) ShippingAmount() models.Money {
	return models.NewMoneyFromString(s.cfg.Pricing.ShippingAmount)
}

// TaxAmount 配置税费
func (s *PricingService) TaxAmount() models.Money {
	return models.NewMoneyFromString(s.cfg.Pricing.TaxAmount)
}

// Currency 配置币种
func (s *PricingService) Currency() string {
	return s.cfg.Pricing.Currency
}

// Calculate 计算定价分解
// 实付金额 = 小计 + 运费 + 税费 - 折扣，结果不低于零。
func (s *PricingService) Calculate(items []models.OrderItem, discountAmount models.Money) PricingBreakdown {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.TotalPrice.Decimal)
	}

	shipping := s.ShippingAmount()
	tax := s.TaxAmount()

	total := subtotal.Add(shipping.Decimal).Add(tax.Decimal).Sub(discountAmount.Decimal)
	if total.LessThan(decimal.Zero) {
		total = decimal.Zero
	}

	return PricingBreakdown{
		Currency:       s.Currency(),
		SubtotalAmount: models.NewMoneyFromDecimal(subtotal),
		ShippingAmount: shipping,
		TaxAmount:      tax,
		DiscountAmount: discountAmount,
		TotalAmount:    models.NewMoneyFromDecimal(total),
	}
}
