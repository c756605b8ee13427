package service

import (
	"github.com/linea-next/internal/models"
	"github.com/linea-next/internal/repository"

	"github.com/shopspring/decimal"
)

// CartService 购物车服务
// 加车只做可售与库存的即时校验，不占用库存，扣减发生在下单事务内。
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	variantRepo repository.VariantRepository
}

// NewCartService 创建购物车服务
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		variantRepo: variantRepo,
	}
}

// ListItems 用户购物车明细
// 商品或规格已下架的条目直接剔除并删除，价格始终取规格当前价。
func (s *CartService) ListItems(userID uint) ([]models.CartItem, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	kept := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.Variant == nil || item.Product == nil ||
			!item.Variant.IsActive || !item.Product.IsActive {
			if err := s.cartRepo.DeleteByUserAndVariant(userID, item.VariantID); err != nil {
				return nil, err
			}
			continue
		}
		kept = append(kept, item)
	}
	return kept, nil
}

// AddItem 加入购物车，同一 SKU 重复加车时数量合并
func (s *CartService) AddItem(userID, variantID uint, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrCartItemInvalid
	}

	variant, err := s.variantRepo.GetByID(variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrVariantNotFound
	}
	if !variant.IsActive {
		return nil, ErrVariantNotAvailable
	}

	product, err := s.productRepo.GetByID(variant.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotAvailable
	}

	existing, err := s.cartRepo.GetByUserAndVariant(userID, variantID)
	if err != nil {
		return nil, err
	}

	targetQty := quantity
	if existing != nil {
		targetQty += existing.Quantity
	}
	if variant.StockQty < targetQty {
		return nil, ErrStockInsufficient
	}

	if existing != nil {
		if err := s.cartRepo.UpdateQuantity(existing.ID, targetQty); err != nil {
			return nil, err
		}
		existing.Quantity = targetQty
		return existing, nil
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: variant.ProductID,
		VariantID: variantID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem 修改购物车数量，数量为 0 时移除该条目
func (s *CartService) UpdateItem(userID, variantID uint, quantity int) error {
	if quantity < 0 {
		return ErrCartItemInvalid
	}
	if quantity == 0 {
		return s.cartRepo.DeleteByUserAndVariant(userID, variantID)
	}

	existing, err := s.cartRepo.GetByUserAndVariant(userID, variantID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCartItemInvalid
	}

	variant, err := s.variantRepo.GetByID(variantID)
	if err != nil {
		return err
	}
	if variant == nil || !variant.IsActive {
		return ErrVariantNotAvailable
	}
	if variant.StockQty < quantity {
		return ErrStockInsufficient
	}

	return s.cartRepo.UpdateQuantity(existing.ID, quantity)
}

// RemoveItem 移除购物车条目
func (s *CartService) RemoveItem(userID, variantID uint) error {
	return s.cartRepo.DeleteByUserAndVariant(userID, variantID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	return s.cartRepo.ClearByUser(userID)
}

// BuildOrderItems 把购物车明细换算成订单项快照
// 逐条校验商品与规格的可售状态，单价取规格当前价格。
func (s *CartService) BuildOrderItems(items []models.CartItem) ([]models.OrderItem, error) {
	if len(items) == 0 {
		return nil, ErrCartItemInvalid
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 || item.Variant == nil || item.Product == nil {
			return nil, ErrCartItemInvalid
		}
		if !item.Product.IsActive {
			return nil, ErrProductNotAvailable
		}
		if !item.Variant.IsActive {
			return nil, ErrVariantNotAvailable
		}

		unitPrice := item.Variant.PriceAmount
		lineTotal := unitPrice.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		orderItems = append(orderItems, models.OrderItem{
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			CategoryID:  item.Product.CategoryID,
			ProductName: item.Product.Name,
			SKUCode:     item.Variant.SKUCode,
			UnitPrice:   unitPrice,
			Quantity:    item.Quantity,
			TotalPrice:  models.NewMoneyFromDecimal(lineTotal),
		})
	}
	return orderItems, nil
}
