package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/linea-next/internal/config"
	"github.com/linea-next/internal/constants"
	"github.com/linea-next/internal/logger"
	"github.com/linea-next/internal/models"
	"github.com/linea-next/internal/queue"
	"github.com/linea-next/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// allowedTransitions 订单状态流转表，键为当前状态，值为允许迁入的状态
var allowedTransitions = map[string][]string{
	constants.OrderStatusPendingPayment: {constants.OrderStatusPaid, constants.OrderStatusCanceled},
	constants.OrderStatusPaid:           {constants.OrderStatusShipped, constants.OrderStatusCanceled},
	constants.OrderStatusShipped:        {constants.OrderStatusCompleted},
	constants.OrderStatusCompleted:      {},
	constants.OrderStatusCanceled:       {},
}

// CanTransition 判断订单状态流转是否合法
func CanTransition(from, to string) bool {
	for _, status := range allowedTransitions[strings.TrimSpace(from)] {
		if status == strings.TrimSpace(to) {
			return true
		}
	}
	return false
}

// OrderService 订单服务
// 下单在单个事务内完成库存扣减、订单落库、折扣占用与清车，
// 任何一步失败整体回滚；超时关单由异步任务兜底。
type OrderService struct {
	cfg          *config.Config
	orderRepo    repository.OrderRepository
	cartRepo     repository.CartRepository
	variantRepo  repository.VariantRepository
	discountRepo repository.DiscountRepository
	usageRepo    repository.DiscountUsageRepository
	cartSvc      *CartService
	discountSvc  *DiscountService
	pricingSvc   *PricingService
	queueClient  *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(
	cfg *config.Config,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	variantRepo repository.VariantRepository,
	discountRepo repository.DiscountRepository,
	usageRepo repository.DiscountUsageRepository,
	cartSvc *CartService,
	discountSvc *DiscountService,
	pricingSvc *PricingService,
	queueClient *queue.Client,
) *OrderService {
	return &OrderService{
		cfg:          cfg,
		orderRepo:    orderRepo,
		cartRepo:     cartRepo,
		variantRepo:  variantRepo,
		discountRepo: discountRepo,
		usageRepo:    usageRepo,
		cartSvc:      cartSvc,
		discountSvc:  discountSvc,
		pricingSvc:   pricingSvc,
		queueClient:  queueClient,
	}
}

// CheckoutPreview 结算预览
type CheckoutPreview struct {
	Items    []models.OrderItem `json:"items"`
	Pricing  PricingBreakdown   `json:"pricing"`
	Discount *models.Discount   `json:"discount,omitempty"`
}

// PreviewCheckout 结算预览，按当前购物车与折扣码计算定价分解
// 预览不扣库存、不占用折扣码额度。
func (s *OrderService) PreviewCheckout(userID uint, discountCode string) (*CheckoutPreview, error) {
	cartItems, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	items, err := s.cartSvc.BuildOrderItems(cartItems)
	if err != nil {
		return nil, err
	}

	var discountAmount models.Money
	var discount *models.Discount
	if strings.TrimSpace(discountCode) != "" {
		discountAmount, discount, err = s.discountSvc.ApplyDiscount(discountCode, userID, items)
		if err != nil {
			return nil, err
		}
		s.allocateDiscount(items, discount, discountAmount)
	}

	return &CheckoutPreview{
		Items:    items,
		Pricing:  s.pricingSvc.Calculate(items, discountAmount),
		Discount: discount,
	}, nil
}

// CreateOrder 从购物车创建订单
func (s *OrderService) CreateOrder(userID uint, discountCode, clientIP string) (*models.Order, error) {
	preview, err := s.PreviewCheckout(userID, discountCode)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expireMinutes := s.cfg.Order.PaymentExpireMinutes
	if expireMinutes <= 0 {
		expireMinutes = 15
	}
	expiresAt := now.Add(time.Duration(expireMinutes) * time.Minute)

	order := &models.Order{
		OrderNo:        generateOrderNo(),
		UserID:         userID,
		Status:         constants.OrderStatusPendingPayment,
		Currency:       preview.Pricing.Currency,
		SubtotalAmount: preview.Pricing.SubtotalAmount,
		ShippingAmount: preview.Pricing.ShippingAmount,
		TaxAmount:      preview.Pricing.TaxAmount,
		DiscountAmount: preview.Pricing.DiscountAmount,
		TotalAmount:    preview.Pricing.TotalAmount,
		ClientIP:       clientIP,
		ExpiresAt:      &expiresAt,
		Items:          preview.Items,
	}
	if preview.Discount != nil {
		order.DiscountID = &preview.Discount.ID
		order.DiscountCode = preview.Discount.Code
	}

	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		variantRepo := s.variantRepo.WithTx(tx)
		for _, item := range order.Items {
			ok, err := variantRepo.DecrementStock(item.VariantID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return ErrStockInsufficient
			}
		}

		if err := s.orderRepo.WithTx(tx).Create(order); err != nil {
			return err
		}

		if order.DiscountID != nil {
			err := s.discountSvc.RecordUsage(
				s.discountRepo.WithTx(tx),
				s.usageRepo.WithTx(tx),
				*order.DiscountID, userID, order.ID,
			)
			if err != nil {
				return err
			}
		}

		return s.cartRepo.WithTx(tx).ClearByUser(userID)
	})
	if err != nil {
		return nil, err
	}

	if err := s.queueClient.EnqueueOrderTimeoutCancel(
		queue.OrderTimeoutCancelPayload{OrderID: order.ID},
		time.Until(expiresAt),
	); err != nil {
		logger.Warnw("order_timeout_task_enqueue_failed", "order_id", order.ID, "error", err)
	}
	s.notifyStatus(order.ID, order.Status)

	logger.Infow("order_created",
		"order_no", order.OrderNo,
		"user_id", userID,
		"total", order.TotalAmount.String(),
	)
	return order, nil
}

// GetUserOrder 查询用户订单，校验归属
func (s *OrderService) GetUserOrder(userID uint, orderNo string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNo(orderNo)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListUserOrders 用户订单列表
func (s *OrderService) ListUserOrders(userID uint, filter repository.OrderListFilter) ([]models.Order, int64, error) {
	filter.UserID = userID
	return s.orderRepo.List(filter)
}

// ListOrders 管理端订单列表
func (s *OrderService) ListOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// GetOrder 管理端订单详情
func (s *OrderService) GetOrder(orderNo string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNo(orderNo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// CancelUserOrder 用户取消订单，仅待支付状态可取消
func (s *OrderService) CancelUserOrder(userID uint, orderNo string) (*models.Order, error) {
	order, err := s.GetUserOrder(userID, orderNo)
	if err != nil {
		return nil, err
	}
	if order.Status != constants.OrderStatusPendingPayment {
		return nil, ErrOrderNotCancelable
	}
	if err := s.cancelOrder(order); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateStatus 管理端更新订单状态，按流转表校验
func (s *OrderService) UpdateStatus(orderNo, status string) (*models.Order, error) {
	order, err := s.GetOrder(orderNo)
	if err != nil {
		return nil, err
	}
	target := strings.TrimSpace(status)
	if !CanTransition(order.Status, target) {
		return nil, ErrOrderStatusInvalid
	}

	if target == constants.OrderStatusCanceled {
		if err := s.cancelOrder(order); err != nil {
			return nil, err
		}
		return order, nil
	}

	now := time.Now()
	if err := s.orderRepo.UpdateStatus(order.ID, target, now); err != nil {
		return nil, err
	}
	order.Status = target
	if target == constants.OrderStatusPaid {
		order.PaidAt = &now
	}
	s.notifyStatus(order.ID, target)
	return order, nil
}

// HandleTimeoutCancel 处理超时关单任务，仍处于待支付才动作
func (s *OrderService) HandleTimeoutCancel(orderID uint) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil || order.Status != constants.OrderStatusPendingPayment {
		return nil
	}
	logger.Infow("order_timeout_cancel", "order_no", order.OrderNo)
	return s.cancelOrder(order)
}

// cancelOrder 取消订单：回补库存、回退折扣占用、落状态
func (s *OrderService) cancelOrder(order *models.Order) error {
	now := time.Now()
	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		variantRepo := s.variantRepo.WithTx(tx)
		for _, item := range order.Items {
			if err := variantRepo.RestoreStock(item.VariantID, item.Quantity); err != nil {
				return err
			}
		}

		if order.DiscountID != nil {
			err := s.discountSvc.ReleaseUsage(
				s.discountRepo.WithTx(tx),
				s.usageRepo.WithTx(tx),
				*order.DiscountID, order.ID,
			)
			if err != nil {
				return err
			}
		}

		return s.orderRepo.WithTx(tx).UpdateStatus(order.ID, constants.OrderStatusCanceled, now)
	})
	if err != nil {
		return err
	}

	order.Status = constants.OrderStatusCanceled
	order.CanceledAt = &now
	s.notifyStatus(order.ID, order.Status)
	return nil
}

func (s *OrderService) notifyStatus(orderID uint, status string) {
	err := s.queueClient.EnqueueOrderStatusNotify(queue.OrderStatusNotifyPayload{
		OrderID: orderID,
		Status:  status,
	})
	if err != nil {
		logger.Warnw("order_status_notify_enqueue_failed", "order_id", orderID, "error", err)
	}
}

// allocateDiscount 把折扣总额分摊到订单项快照上
// 限定范围的 fixed 折扣按行各自封顶；其余情况按行小计占比分摊，
// 尾差落在最后一条适用行上。
func (s *OrderService) allocateDiscount(items []models.OrderItem, discount *models.Discount, total models.Money) {
	if discount == nil || total.Decimal.LessThanOrEqual(decimal.Zero) {
		return
	}

	matchedIdx := make([]int, 0, len(items))
	for i := range items {
		if discount.ProductID != nil {
			if items[i].ProductID == *discount.ProductID {
				matchedIdx = append(matchedIdx, i)
			}
			continue
		}
		if discount.CategoryID != nil {
			if items[i].CategoryID == *discount.CategoryID {
				matchedIdx = append(matchedIdx, i)
			}
			continue
		}
		matchedIdx = append(matchedIdx, i)
	}
	if len(matchedIdx) == 0 {
		return
	}

	if discount.IsScoped() && strings.EqualFold(discount.DiscountType, constants.DiscountTypeFixed) {
		for _, i := range matchedIdx {
			line := discount.DiscountValue.Decimal
			if line.GreaterThan(items[i].TotalPrice.Decimal) {
				line = items[i].TotalPrice.Decimal
			}
			items[i].DiscountAmount = models.NewMoneyFromDecimal(line)
		}
		return
	}

	base := decimal.Zero
	for _, i := range matchedIdx {
		base = base.Add(items[i].TotalPrice.Decimal)
	}
	if base.LessThanOrEqual(decimal.Zero) {
		return
	}

	allocated := decimal.Zero
	for n, i := range matchedIdx {
		var share decimal.Decimal
		if n == len(matchedIdx)-1 {
			share = total.Decimal.Sub(allocated)
		} else {
			share = total.Decimal.Mul(items[i].TotalPrice.Decimal).Div(base).Round(2)
			allocated = allocated.Add(share)
		}
		items[i].DiscountAmount = models.NewMoneyFromDecimal(share)
	}
}

// generateOrderNo 生成订单号：LN + 时间戳 + 随机段
func generateOrderNo() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("LN%s%s", time.Now().Format("20060102150405"), strings.ToUpper(raw[:8]))
}
