package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/linea-next/internal/config"
	"github.com/linea-next/internal/constants"
	"github.com/linea-next/internal/models"
	"github.com/linea-next/internal/queue"
	"github.com/linea-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type orderTestFixture struct {
	svc     *OrderService
	cartSvc *CartService
	db      *gorm.DB

	cartRepo    repository.CartRepository
	variantRepo repository.VariantRepository
	usageRepo   repository.DiscountUsageRepository

	category models.Category
	product  models.Product
	variantA models.ProductVariant
	variantB models.ProductVariant
}

func setupOrderServiceTest(t *testing.T) *orderTestFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	err = db.AutoMigrate(
		&models.Category{}, &models.Brand{},
		&models.Attribute{}, &models.AttributeValue{},
		&models.Product{}, &models.ProductAttribute{}, &models.ProductVariant{},
		&models.Discount{}, &models.DiscountUsage{},
		&models.CartItem{}, &models.Order{}, &models.OrderItem{},
	)
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	cfg := &config.Config{
		Pricing: config.PricingConfig{
			Currency:       "CNY",
			ShippingAmount: "5.00",
			TaxAmount:      "1.00",
		},
		Order: config.OrderConfig{PaymentExpireMinutes: 30},
	}

	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	variantRepo := repository.NewVariantRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	usageRepo := repository.NewDiscountUsageRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	cartSvc := NewCartService(cartRepo, productRepo, variantRepo)
	discountSvc := NewDiscountService(discountRepo, usageRepo)
	pricingSvc := NewPricingService(cfg)
	queueClient, err := queue.NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}

	f := &orderTestFixture{
		svc: NewOrderService(
			cfg, orderRepo, cartRepo, variantRepo,
			discountRepo, usageRepo,
			cartSvc, discountSvc, pricingSvc, queueClient,
		),
		cartSvc:     cartSvc,
		db:          db,
		cartRepo:    cartRepo,
		variantRepo: variantRepo,
		usageRepo:   usageRepo,
	}

	f.category = models.Category{Slug: "apparel", Name: "服饰"}
	if err := db.Create(&f.category).Error; err != nil {
		t.Fatalf("seed category failed: %v", err)
	}
	f.product = models.Product{
		CategoryID: f.category.ID, Slug: "classic-tee", Name: "经典T恤",
		PriceAmount: models.NewMoneyFromString("30.00"), IsActive: true,
	}
	if err := db.Create(&f.product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	f.variantA = models.ProductVariant{
		ProductID: f.product.ID, SKUCode: "TEE-RED-M",
		PriceAmount: models.NewMoneyFromString("30.00"), StockQty: 10, IsActive: true,
	}
	if err := db.Create(&f.variantA).Error; err != nil {
		t.Fatalf("seed variant A failed: %v", err)
	}
	f.variantB = models.ProductVariant{
		ProductID: f.product.ID, SKUCode: "TEE-BLUE-L",
		PriceAmount: models.NewMoneyFromString("40.00"), StockQty: 1, IsActive: true,
	}
	if err := db.Create(&f.variantB).Error; err != nil {
		t.Fatalf("seed variant B failed: %v", err)
	}
	return f
}

func (f *orderTestFixture) stockOf(t *testing.T, variantID uint) int {
	t.Helper()
	variant, err := f.variantRepo.GetByID(variantID)
	if err != nil || variant == nil {
		t.Fatalf("load variant %d failed: %v", variantID, err)
	}
	return variant.StockQty
}

func (f *orderTestFixture) seedCartWideDiscount(t *testing.T, code string) *models.Discount {
	t.Helper()
	discount := &models.Discount{
		Code:          code,
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: models.NewMoneyFromString("10"),
		IsActive:      true,
	}
	if err := f.db.Create(discount).Error; err != nil {
		t.Fatalf("seed discount failed: %v", err)
	}
	return discount
}

func TestCreateOrderFromCart(t *testing.T) {
	f := setupOrderServiceTest(t)
	const userID = uint(7)

	if _, err := f.cartSvc.AddItem(userID, f.variantA.ID, 2); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}

	order, err := f.svc.CreateOrder(userID, "", "203.0.113.9")
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if !strings.HasPrefix(order.OrderNo, "LN") {
		t.Fatalf("unexpected order no %q", order.OrderNo)
	}
	if order.Status != constants.OrderStatusPendingPayment {
		t.Fatalf("expected pending_payment, got %s", order.Status)
	}
	if order.ExpiresAt == nil {
		t.Fatalf("expected expires_at to be set")
	}
	if got := order.SubtotalAmount.String(); got != "60.00" {
		t.Fatalf("expected subtotal 60.00, got %s", got)
	}
	if got := order.TotalAmount.String(); got != "66.00" {
		t.Fatalf("expected total 66.00, got %s", got)
	}
	if len(order.Items) != 1 || order.Items[0].SKUCode != "TEE-RED-M" {
		t.Fatalf("unexpected order items: %+v", order.Items)
	}

	if stock := f.stockOf(t, f.variantA.ID); stock != 8 {
		t.Fatalf("expected stock 8 after order, got %d", stock)
	}
	cartItems, err := f.cartRepo.ListByUser(userID)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(cartItems) != 0 {
		t.Fatalf("expected cart cleared, got %d rows", len(cartItems))
	}
}

func TestCreateOrderWithDiscount(t *testing.T) {
	f := setupOrderServiceTest(t)
	const userID = uint(7)
	discount := f.seedCartWideDiscount(t, "TEN")

	if _, err := f.cartSvc.AddItem(userID, f.variantA.ID, 2); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}

	order, err := f.svc.CreateOrder(userID, "ten", "203.0.113.9")
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.DiscountID == nil || *order.DiscountID != discount.ID {
		t.Fatalf("expected discount id %d, got %+v", discount.ID, order.DiscountID)
	}
	if order.DiscountCode != "TEN" {
		t.Fatalf("expected code snapshot TEN, got %s", order.DiscountCode)
	}
	if got := order.DiscountAmount.String(); got != "6.00" {
		t.Fatalf("expected discount 6.00, got %s", got)
	}
	if got := order.TotalAmount.String(); got != "60.00" {
		t.Fatalf("expected total 60.00, got %s", got)
	}

	var reloaded models.Discount
	if err := f.db.First(&reloaded, discount.ID).Error; err != nil {
		t.Fatalf("reload discount failed: %v", err)
	}
	if reloaded.UsedCount != 1 {
		t.Fatalf("expected used count 1, got %d", reloaded.UsedCount)
	}
	count, err := f.usageRepo.CountByUser(discount.ID, userID)
	if err != nil {
		t.Fatalf("count usage failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 usage row, got %d", count)
	}
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	f := setupOrderServiceTest(t)
	const userID = uint(7)

	// 绕过加车校验直接落数据，模拟加车后库存被其他订单抢占
	seed := []models.CartItem{
		{UserID: userID, ProductID: f.product.ID, VariantID: f.variantA.ID, Quantity: 2},
		{UserID: userID, ProductID: f.product.ID, VariantID: f.variantB.ID, Quantity: 5},
	}
	for i := range seed {
		if err := f.cartRepo.Create(&seed[i]); err != nil {
			t.Fatalf("seed cart failed: %v", err)
		}
	}

	_, err := f.svc.CreateOrder(userID, "", "203.0.113.9")
	if !errors.Is(err, ErrStockInsufficient) {
		t.Fatalf("expected ErrStockInsufficient, got %v", err)
	}

	// 先扣的库存随事务回滚
	if stock := f.stockOf(t, f.variantA.ID); stock != 10 {
		t.Fatalf("expected stock restored to 10, got %d", stock)
	}
	var orderCount int64
	if err := f.db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("expected no orders, got %d", orderCount)
	}
	cartItems, err := f.cartRepo.ListByUser(userID)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(cartItems) != 2 {
		t.Fatalf("expected cart untouched, got %d rows", len(cartItems))
	}
}

func TestCancelUserOrderRestoresStockAndUsage(t *testing.T) {
	f := setupOrderServiceTest(t)
	const userID = uint(7)
	discount := f.seedCartWideDiscount(t, "TEN")

	if _, err := f.cartSvc.AddItem(userID, f.variantA.ID, 2); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	order, err := f.svc.CreateOrder(userID, "TEN", "203.0.113.9")
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	// 非归属用户不可见
	if _, err := f.svc.GetUserOrder(99, order.OrderNo); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for foreign user, got %v", err)
	}

	canceled, err := f.svc.CancelUserOrder(userID, order.OrderNo)
	if err != nil {
		t.Fatalf("cancel order failed: %v", err)
	}
	if canceled.Status != constants.OrderStatusCanceled || canceled.CanceledAt == nil {
		t.Fatalf("expected canceled order with timestamp, got %+v", canceled)
	}
	if stock := f.stockOf(t, f.variantA.ID); stock != 10 {
		t.Fatalf("expected stock restored to 10, got %d", stock)
	}

	// 取消时间已落库
	persisted, err := f.svc.GetOrder(order.OrderNo)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if persisted.Status != constants.OrderStatusCanceled || persisted.CanceledAt == nil {
		t.Fatalf("expected persisted canceled_at, got %+v", persisted)
	}

	var reloaded models.Discount
	if err := f.db.First(&reloaded, discount.ID).Error; err != nil {
		t.Fatalf("reload discount failed: %v", err)
	}
	if reloaded.UsedCount != 0 {
		t.Fatalf("expected used count released, got %d", reloaded.UsedCount)
	}
	count, err := f.usageRepo.CountByUser(discount.ID, userID)
	if err != nil {
		t.Fatalf("count usage failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected usage rows removed, got %d", count)
	}

	// 已取消的订单不可再取消
	if _, err := f.svc.CancelUserOrder(userID, order.OrderNo); !errors.Is(err, ErrOrderNotCancelable) {
		t.Fatalf("expected ErrOrderNotCancelable, got %v", err)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	f := setupOrderServiceTest(t)
	const userID = uint(7)

	if _, err := f.cartSvc.AddItem(userID, f.variantA.ID, 1); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	order, err := f.svc.CreateOrder(userID, "", "203.0.113.9")
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := f.svc.UpdateStatus(order.OrderNo, constants.OrderStatusShipped); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid for pending->shipped, got %v", err)
	}

	updated, err := f.svc.UpdateStatus(order.OrderNo, constants.OrderStatusPaid)
	if err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	if updated.Status != constants.OrderStatusPaid || updated.PaidAt == nil {
		t.Fatalf("expected paid order with timestamp, got %+v", updated)
	}

	// 支付时间已落库
	reloaded, err := f.svc.GetOrder(order.OrderNo)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.PaidAt == nil {
		t.Fatalf("expected persisted paid_at, got %+v", reloaded)
	}

	if _, err := f.svc.UpdateStatus(order.OrderNo, constants.OrderStatusShipped); err != nil {
		t.Fatalf("mark shipped failed: %v", err)
	}
	if _, err := f.svc.UpdateStatus(order.OrderNo, constants.OrderStatusCompleted); err != nil {
		t.Fatalf("mark completed failed: %v", err)
	}
	if _, err := f.svc.UpdateStatus(order.OrderNo, constants.OrderStatusCanceled); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid for completed->canceled, got %v", err)
	}

	if _, err := f.svc.UpdateStatus("LN-NOSUCH", constants.OrderStatusPaid); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestHandleTimeoutCancel(t *testing.T) {
	f := setupOrderServiceTest(t)
	const userID = uint(7)

	if _, err := f.cartSvc.AddItem(userID, f.variantA.ID, 2); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	order, err := f.svc.CreateOrder(userID, "", "203.0.113.9")
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	// 待支付订单超时关单并回补库存
	if err := f.svc.HandleTimeoutCancel(order.ID); err != nil {
		t.Fatalf("timeout cancel failed: %v", err)
	}
	reloaded, err := f.svc.GetOrder(order.OrderNo)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusCanceled {
		t.Fatalf("expected canceled, got %s", reloaded.Status)
	}
	if stock := f.stockOf(t, f.variantA.ID); stock != 10 {
		t.Fatalf("expected stock restored to 10, got %d", stock)
	}

	// 再次触发与不存在的订单均为无动作
	if err := f.svc.HandleTimeoutCancel(order.ID); err != nil {
		t.Fatalf("repeated timeout cancel should no-op, got %v", err)
	}
	if err := f.svc.HandleTimeoutCancel(99999); err != nil {
		t.Fatalf("timeout cancel of unknown order should no-op, got %v", err)
	}
}

func TestHandleTimeoutCancelSkipsPaidOrder(t *testing.T) {
	f := setupOrderServiceTest(t)
	const userID = uint(7)

	if _, err := f.cartSvc.AddItem(userID, f.variantA.ID, 2); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	order, err := f.svc.CreateOrder(userID, "", "203.0.113.9")
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if _, err := f.svc.UpdateStatus(order.OrderNo, constants.OrderStatusPaid); err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}

	if err := f.svc.HandleTimeoutCancel(order.ID); err != nil {
		t.Fatalf("timeout cancel failed: %v", err)
	}
	reloaded, err := f.svc.GetOrder(order.OrderNo)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusPaid {
		t.Fatalf("paid order must not be canceled, got %s", reloaded.Status)
	}
	if stock := f.stockOf(t, f.variantA.ID); stock != 8 {
		t.Fatalf("expected stock untouched at 8, got %d", stock)
	}
}

func TestPreviewCheckoutAllocatesDiscount(t *testing.T) {
	f := setupOrderServiceTest(t)
	const userID = uint(7)
	f.seedCartWideDiscount(t, "TEN")

	if _, err := f.cartSvc.AddItem(userID, f.variantA.ID, 2); err != nil {
		t.Fatalf("add variant A failed: %v", err)
	}
	if _, err := f.cartSvc.AddItem(userID, f.variantB.ID, 1); err != nil {
		t.Fatalf("add variant B failed: %v", err)
	}

	preview, err := f.svc.PreviewCheckout(userID, "TEN")
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if len(preview.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(preview.Items))
	}
	// 60/40 按比例分摊 10% 折扣
	if got := preview.Items[0].DiscountAmount.String(); got != "6.00" {
		t.Fatalf("expected first line share 6.00, got %s", got)
	}
	if got := preview.Items[1].DiscountAmount.String(); got != "4.00" {
		t.Fatalf("expected second line share 4.00, got %s", got)
	}
	if got := preview.Pricing.DiscountAmount.String(); got != "10.00" {
		t.Fatalf("expected discount 10.00, got %s", got)
	}
	if got := preview.Pricing.TotalAmount.String(); got != "96.00" {
		t.Fatalf("expected total 96.00, got %s", got)
	}

	// 预览不扣库存、不占用折扣码额度
	if stock := f.stockOf(t, f.variantA.ID); stock != 10 {
		t.Fatalf("preview must not touch stock, got %d", stock)
	}
	var reloaded models.Discount
	if err := f.db.Where("code = ?", "TEN").First(&reloaded).Error; err != nil {
		t.Fatalf("reload discount failed: %v", err)
	}
	if reloaded.UsedCount != 0 {
		t.Fatalf("preview must not consume usage, got %d", reloaded.UsedCount)
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{constants.OrderStatusPendingPayment, constants.OrderStatusPaid, true},
		{constants.OrderStatusPendingPayment, constants.OrderStatusCanceled, true},
		{constants.OrderStatusPendingPayment, constants.OrderStatusShipped, false},
		{constants.OrderStatusPaid, constants.OrderStatusShipped, true},
		{constants.OrderStatusPaid, constants.OrderStatusCompleted, false},
		{constants.OrderStatusShipped, constants.OrderStatusCompleted, true},
		{constants.OrderStatusCompleted, constants.OrderStatusCanceled, false},
		{constants.OrderStatusCanceled, constants.OrderStatusPaid, false},
		{"unknown", constants.OrderStatusPaid, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
