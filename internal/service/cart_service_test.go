package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/linea-next/internal/models"
	"github.com/linea-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type cartTestFixture struct {
	svc *CartService
	db  *gorm.DB

	category        models.Category
	product         models.Product
	inactiveProduct models.Product
	variant         models.ProductVariant
	inactiveVariant models.ProductVariant
	orphanVariant   models.ProductVariant
}

func setupCartServiceTest(t *testing.T) *cartTestFixture {
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
		&models.CartItem{},
	)
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	f := &cartTestFixture{
		svc: NewCartService(
			repository.NewCartRepository(db),
			repository.NewProductRepository(db),
			repository.NewVariantRepository(db),
		),
		db: db,
	}

	f.category = models.Category{Slug: "apparel", Name: "服饰"}
	if err := db.Create(&f.category).Error; err != nil {
		t.Fatalf("seed category failed: %v", err)
	}

	f.product = models.Product{
		CategoryID: f.category.ID, Slug: "classic-tee", Name: "经典T恤",
		PriceAmount: models.NewMoneyFromString("50.00"), IsActive: true,
	}
	if err := db.Create(&f.product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	f.inactiveProduct = models.Product{
		CategoryID: f.category.ID, Slug: "retired-tee", Name: "下架T恤",
		PriceAmount: models.NewMoneyFromString("50.00"), IsActive: false,
	}
	if err := db.Create(&f.inactiveProduct).Error; err != nil {
		t.Fatalf("seed inactive product failed: %v", err)
	}

	f.variant = models.ProductVariant{
		ProductID: f.product.ID, SKUCode: "TEE-RED-M",
		PriceAmount: models.NewMoneyFromString("50.00"), StockQty: 10, IsActive: true,
	}
	if err := db.Create(&f.variant).Error; err != nil {
		t.Fatalf("seed variant failed: %v", err)
	}
	f.inactiveVariant = models.ProductVariant{
		ProductID: f.product.ID, SKUCode: "TEE-BLUE-L",
		PriceAmount: models.NewMoneyFromString("52.00"), StockQty: 5, IsActive: false,
	}
	if err := db.Create(&f.inactiveVariant).Error; err != nil {
		t.Fatalf("seed inactive variant failed: %v", err)
	}
	f.orphanVariant = models.ProductVariant{
		ProductID: f.inactiveProduct.ID, SKUCode: "RET-STD",
		PriceAmount: models.NewMoneyFromString("50.00"), StockQty: 5, IsActive: true,
	}
	if err := db.Create(&f.orphanVariant).Error; err != nil {
		t.Fatalf("seed orphan variant failed: %v", err)
	}
	return f
}

func TestAddItemMergesQuantity(t *testing.T) {
	f := setupCartServiceTest(t)
	const userID = uint(7)

	item, err := f.svc.AddItem(userID, f.variant.ID, 2)
	if err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if item.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", item.Quantity)
	}

	item, err = f.svc.AddItem(userID, f.variant.ID, 3)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if item.Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", item.Quantity)
	}

	items, err := f.svc.ListItems(userID)
	if err != nil {
		t.Fatalf("list items failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected single cart row, got %d", len(items))
	}

	// 合并后超出库存
	if _, err := f.svc.AddItem(userID, f.variant.ID, 6); !errors.Is(err, ErrStockInsufficient) {
		t.Fatalf("expected ErrStockInsufficient, got %v", err)
	}
}

func TestAddItemValidation(t *testing.T) {
	f := setupCartServiceTest(t)
	const userID = uint(7)

	if _, err := f.svc.AddItem(userID, f.variant.ID, 0); !errors.Is(err, ErrCartItemInvalid) {
		t.Fatalf("expected ErrCartItemInvalid, got %v", err)
	}
	if _, err := f.svc.AddItem(userID, 9999, 1); !errors.Is(err, ErrVariantNotFound) {
		t.Fatalf("expected ErrVariantNotFound, got %v", err)
	}
	if _, err := f.svc.AddItem(userID, f.inactiveVariant.ID, 1); !errors.Is(err, ErrVariantNotAvailable) {
		t.Fatalf("expected ErrVariantNotAvailable, got %v", err)
	}
	if _, err := f.svc.AddItem(userID, f.orphanVariant.ID, 1); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected ErrProductNotAvailable, got %v", err)
	}
}

func TestUpdateItem(t *testing.T) {
	f := setupCartServiceTest(t)
	const userID = uint(7)

	if _, err := f.svc.AddItem(userID, f.variant.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := f.svc.UpdateItem(userID, f.variant.ID, -1); !errors.Is(err, ErrCartItemInvalid) {
		t.Fatalf("expected ErrCartItemInvalid for negative, got %v", err)
	}
	if err := f.svc.UpdateItem(userID, f.variant.ID, 11); !errors.Is(err, ErrStockInsufficient) {
		t.Fatalf("expected ErrStockInsufficient, got %v", err)
	}
	if err := f.svc.UpdateItem(userID, f.inactiveVariant.ID, 2); !errors.Is(err, ErrCartItemInvalid) {
		t.Fatalf("expected ErrCartItemInvalid for missing row, got %v", err)
	}

	if err := f.svc.UpdateItem(userID, f.variant.ID, 4); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	items, err := f.svc.ListItems(userID)
	if err != nil {
		t.Fatalf("list items failed: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %+v", items)
	}

	// 数量归零即移除
	if err := f.svc.UpdateItem(userID, f.variant.ID, 0); err != nil {
		t.Fatalf("update to zero failed: %v", err)
	}
	items, err = f.svc.ListItems(userID)
	if err != nil {
		t.Fatalf("list items failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d rows", len(items))
	}
}

func TestBuildOrderItemsSnapshot(t *testing.T) {
	f := setupCartServiceTest(t)
	const userID = uint(7)

	if _, err := f.svc.AddItem(userID, f.variant.ID, 3); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	cartItems, err := f.svc.ListItems(userID)
	if err != nil {
		t.Fatalf("list items failed: %v", err)
	}

	orderItems, err := f.svc.BuildOrderItems(cartItems)
	if err != nil {
		t.Fatalf("build order items failed: %v", err)
	}
	if len(orderItems) != 1 {
		t.Fatalf("expected 1 order item, got %d", len(orderItems))
	}

	item := orderItems[0]
	if item.ProductID != f.product.ID || item.VariantID != f.variant.ID {
		t.Fatalf("unexpected ids: %+v", item)
	}
	if item.CategoryID != f.category.ID {
		t.Fatalf("expected category snapshot %d, got %d", f.category.ID, item.CategoryID)
	}
	if item.ProductName != "经典T恤" || item.SKUCode != "TEE-RED-M" {
		t.Fatalf("unexpected name/sku snapshot: %+v", item)
	}
	if got := item.UnitPrice.String(); got != "50.00" {
		t.Fatalf("expected unit price 50.00, got %s", got)
	}
	if got := item.TotalPrice.String(); got != "150.00" {
		t.Fatalf("expected line total 150.00, got %s", got)
	}
}

func TestListItemsPrunesInactiveRows(t *testing.T) {
	f := setupCartServiceTest(t)
	const userID = uint(7)

	if _, err := f.svc.AddItem(userID, f.variant.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// 加车后规格下架
	if err := f.db.Model(&models.ProductVariant{}).
		Where("id = ?", f.variant.ID).
		Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate variant failed: %v", err)
	}

	items, err := f.svc.ListItems(userID)
	if err != nil {
		t.Fatalf("list items failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected inactive row pruned, got %d rows", len(items))
	}

	var count int64
	if err := f.db.Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		t.Fatalf("count cart rows failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected pruned row deleted, got %d", count)
	}
}

func TestBuildOrderItemsEmptyCart(t *testing.T) {
	f := setupCartServiceTest(t)
	if _, err := f.svc.BuildOrderItems(nil); !errors.Is(err, ErrCartItemInvalid) {
		t.Fatalf("expected ErrCartItemInvalid, got %v", err)
	}
}
