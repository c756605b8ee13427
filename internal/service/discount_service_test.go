package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/linea-next/internal/constants"
	"github.com/linea-next/internal/models"
	"github.com/linea-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupDiscountServiceTest(t *testing.T) (*DiscountService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Discount{}, &models.DiscountUsage{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	svc := NewDiscountService(
		repository.NewDiscountRepository(db),
		repository.NewDiscountUsageRepository(db),
	)
	return svc, db
}

func mustCreateDiscount(t *testing.T, db *gorm.DB, discount *models.Discount) *models.Discount {
	t.Helper()
	if err := db.Create(discount).Error; err != nil {
		t.Fatalf("create discount failed: %v", err)
	}
	return discount
}

func discountTestItem(productID, categoryID uint, total string) models.OrderItem {
	return models.OrderItem{
		ProductID:  productID,
		CategoryID: categoryID,
		TotalPrice: models.NewMoneyFromString(total),
	}
}

func uintPtr(v uint) *uint {
	return &v
}

func TestApplyDiscountCaseInsensitive(t *testing.T) {
	svc, db := setupDiscountServiceTest(t)
	mustCreateDiscount(t, db, &models.Discount{
		Code:          "SUMMER25",
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: models.NewMoneyFromString("10"),
		ProductID:     uintPtr(1),
		IsActive:      true,
	})

	items := []models.OrderItem{
		discountTestItem(1, 3, "100.00"),
		discountTestItem(2, 3, "40.00"),
	}

	amount, discount, err := svc.ApplyDiscount("summer25", 7, items)
	if err != nil {
		t.Fatalf("apply discount failed: %v", err)
	}
	if discount == nil || discount.Code != "SUMMER25" {
		t.Fatalf("expected discount SUMMER25, got %+v", discount)
	}
	// 仅限定商品的行参与折算
	if got := amount.String(); got != "10.00" {
		t.Fatalf("expected amount 10.00, got %s", got)
	}
}

func TestApplyDiscountFixedCappedPerLine(t *testing.T) {
	svc, db := setupDiscountServiceTest(t)
	mustCreateDiscount(t, db, &models.Discount{
		Code:          "CAP100",
		DiscountType:  constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromString("100"),
		ProductID:     uintPtr(5),
		IsActive:      true,
	})

	items := []models.OrderItem{
		discountTestItem(5, 1, "30.00"),
		discountTestItem(6, 1, "500.00"),
	}

	amount, _, err := svc.ApplyDiscount("CAP100", 7, items)
	if err != nil {
		t.Fatalf("apply discount failed: %v", err)
	}
	if got := amount.String(); got != "30.00" {
		t.Fatalf("expected line-capped amount 30.00, got %s", got)
	}
}

func TestApplyDiscountCategoryScope(t *testing.T) {
	svc, db := setupDiscountServiceTest(t)
	mustCreateDiscount(t, db, &models.Discount{
		Code:          "CAT15",
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: models.NewMoneyFromString("15"),
		CategoryID:    uintPtr(9),
		IsActive:      true,
	})

	items := []models.OrderItem{
		discountTestItem(1, 9, "80.00"),
		discountTestItem(2, 3, "20.00"),
	}

	amount, _, err := svc.ApplyDiscount("CAT15", 0, items)
	if err != nil {
		t.Fatalf("apply discount failed: %v", err)
	}
	if got := amount.String(); got != "12.00" {
		t.Fatalf("expected amount 12.00, got %s", got)
	}

	// 范围内无匹配行时不可用
	_, _, err = svc.ApplyDiscount("CAT15", 0, []models.OrderItem{discountTestItem(2, 3, "20.00")})
	if !errors.Is(err, ErrDiscountInvalid) {
		t.Fatalf("expected ErrDiscountInvalid, got %v", err)
	}
}

func TestApplyDiscountCartWide(t *testing.T) {
	svc, db := setupDiscountServiceTest(t)
	mustCreateDiscount(t, db, &models.Discount{
		Code:          "WELCOME100",
		DiscountType:  constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromString("100"),
		IsActive:      true,
	})

	// 固定金额折扣不超过整车小计
	amount, _, err := svc.ApplyDiscount("WELCOME100", 7, []models.OrderItem{discountTestItem(1, 1, "60.00")})
	if err != nil {
		t.Fatalf("apply discount failed: %v", err)
	}
	if got := amount.String(); got != "60.00" {
		t.Fatalf("expected amount capped at 60.00, got %s", got)
	}

	amount, _, err = svc.ApplyDiscount("WELCOME100", 7, []models.OrderItem{discountTestItem(1, 1, "150.00")})
	if err != nil {
		t.Fatalf("apply discount failed: %v", err)
	}
	if got := amount.String(); got != "100.00" {
		t.Fatalf("expected amount 100.00, got %s", got)
	}
}

func TestApplyDiscountEligibility(t *testing.T) {
	svc, db := setupDiscountServiceTest(t)
	items := []models.OrderItem{discountTestItem(1, 1, "100.00")}

	now := time.Now()
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	mustCreateDiscount(t, db, &models.Discount{
		Code: "OFFLINE", DiscountType: constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromString("10"), IsActive: false,
	})
	mustCreateDiscount(t, db, &models.Discount{
		Code: "SOON", DiscountType: constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromString("10"), IsActive: true, StartsAt: &future,
	})
	mustCreateDiscount(t, db, &models.Discount{
		Code: "GONE", DiscountType: constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromString("10"), IsActive: true, ExpiresAt: &past,
	})
	mustCreateDiscount(t, db, &models.Discount{
		Code: "DRAINED", DiscountType: constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromString("10"), IsActive: true,
		UsageLimit: 5, UsedCount: 5,
	})
	limited := mustCreateDiscount(t, db, &models.Discount{
		Code: "ONCE", DiscountType: constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromString("10"), IsActive: true, PerUserLimit: 1,
	})
	if err := db.Create(&models.DiscountUsage{DiscountID: limited.ID, UserID: 7, OrderID: 1}).Error; err != nil {
		t.Fatalf("seed usage failed: %v", err)
	}

	cases := []struct {
		code    string
		userID  uint
		wantErr error
	}{
		{"", 7, ErrDiscountInvalid},
		{"NOSUCH", 7, ErrDiscountNotFound},
		{"OFFLINE", 7, ErrDiscountInactive},
		{"SOON", 7, ErrDiscountNotStarted},
		{"GONE", 7, ErrDiscountExpired},
		{"DRAINED", 7, ErrDiscountUsageLimit},
		{"ONCE", 7, ErrDiscountPerUserLimit},
	}
	for _, tc := range cases {
		_, _, err := svc.ApplyDiscount(tc.code, tc.userID, items)
		if !errors.Is(err, tc.wantErr) {
			t.Fatalf("code %q: expected %v, got %v", tc.code, tc.wantErr, err)
		}
	}

	// 匿名场景跳过个人上限校验
	if _, _, err := svc.ApplyDiscount("ONCE", 0, items); err != nil {
		t.Fatalf("anonymous apply should skip per-user limit, got %v", err)
	}
}

func TestRecordAndReleaseUsage(t *testing.T) {
	svc, db := setupDiscountServiceTest(t)
	discount := mustCreateDiscount(t, db, &models.Discount{
		Code: "TRACKED", DiscountType: constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromString("10"), IsActive: true,
	})

	discountRepo := repository.NewDiscountRepository(db)
	usageRepo := repository.NewDiscountUsageRepository(db)

	if err := svc.RecordUsage(discountRepo, usageRepo, discount.ID, 7, 42); err != nil {
		t.Fatalf("record usage failed: %v", err)
	}
	var reloaded models.Discount
	if err := db.First(&reloaded, discount.ID).Error; err != nil {
		t.Fatalf("reload discount failed: %v", err)
	}
	if reloaded.UsedCount != 1 {
		t.Fatalf("expected used count 1, got %d", reloaded.UsedCount)
	}
	count, err := usageRepo.CountByUser(discount.ID, 7)
	if err != nil {
		t.Fatalf("count usage failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 usage row, got %d", count)
	}

	if err := svc.ReleaseUsage(discountRepo, usageRepo, discount.ID, 42); err != nil {
		t.Fatalf("release usage failed: %v", err)
	}
	if err := db.First(&reloaded, discount.ID).Error; err != nil {
		t.Fatalf("reload discount failed: %v", err)
	}
	if reloaded.UsedCount != 0 {
		t.Fatalf("expected used count back to 0, got %d", reloaded.UsedCount)
	}
	count, err = usageRepo.CountByUser(discount.ID, 7)
	if err != nil {
		t.Fatalf("count usage failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected usage rows deleted, got %d", count)
	}
}
