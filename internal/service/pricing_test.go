package service

import (
	"testing"

	"github.com/linea-next/internal/config"
	"github.com/linea-next/internal/models"
)

func newPricingTestConfig() *config.Config {
	return &config.Config{
		Pricing: config.PricingConfig{
			Currency:       "CNY",
			ShippingAmount: "5.00",
			TaxAmount:      "0.20",
		},
	}
}

func TestPricingCalculate(t *testing.T) {
	svc := NewPricingService(newPricingTestConfig())

	items := []models.OrderItem{
		{TotalPrice: models.NewMoneyFromString("60.00")},
		{TotalPrice: models.NewMoneyFromString("14.20")},
	}

	breakdown := svc.Calculate(items, models.NewMoneyFromString("10.00"))
	if breakdown.Currency != "CNY" {
		t.Fatalf("expected currency CNY, got %s", breakdown.Currency)
	}
	if got := breakdown.SubtotalAmount.String(); got != "74.20" {
		t.Fatalf("expected subtotal 74.20, got %s", got)
	}
	if got := breakdown.ShippingAmount.String(); got != "5.00" {
		t.Fatalf("expected shipping 5.00, got %s", got)
	}
	if got := breakdown.TaxAmount.String(); got != "0.20" {
		t.Fatalf("expected tax 0.20, got %s", got)
	}
	if got := breakdown.TotalAmount.String(); got != "69.40" {
		t.Fatalf("expected total 69.40, got %s", got)
	}
}

func TestPricingCalculateDefaultShipping(t *testing.T) {
	cfg := &config.Config{
		Pricing: config.PricingConfig{Currency: "CNY", ShippingAmount: "0", TaxAmount: "0.20"},
	}
	svc := NewPricingService(cfg)

	items := []models.OrderItem{
		{TotalPrice: models.NewMoneyFromString("60.00")},
		{TotalPrice: models.NewMoneyFromString("14.20")},
	}

	breakdown := svc.Calculate(items, models.NewMoneyFromString("10.00"))
	if got := breakdown.TotalAmount.String(); got != "64.40" {
		t.Fatalf("expected total 64.40, got %s", got)
	}
}

func TestPricingCalculateFloorsAtZero(t *testing.T) {
	svc := NewPricingService(newPricingTestConfig())

	items := []models.OrderItem{
		{TotalPrice: models.NewMoneyFromString("20.00")},
	}

	breakdown := svc.Calculate(items, models.NewMoneyFromString("100.00"))
	if got := breakdown.TotalAmount.String(); got != "0.00" {
		t.Fatalf("expected total floored at 0.00, got %s", got)
	}
	if got := breakdown.DiscountAmount.String(); got != "100.00" {
		t.Fatalf("discount amount should pass through, got %s", got)
	}
}

func TestPricingCalculateEmptyCartAndZeroConfig(t *testing.T) {
	cfg := &config.Config{
		Pricing: config.PricingConfig{Currency: "CNY", ShippingAmount: "0", TaxAmount: "0"},
	}
	svc := NewPricingService(cfg)

	breakdown := svc.Calculate(nil, models.Money{})
	if got := breakdown.TotalAmount.String(); got != "0.00" {
		t.Fatalf("expected total 0.00, got %s", got)
	}
	if got := breakdown.SubtotalAmount.String(); got != "0.00" {
		t.Fatalf("expected subtotal 0.00, got %s", got)
	}
}
