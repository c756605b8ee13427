package constants

// 订单状态常量
const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusPaid           = "paid"
	OrderStatusShipped        = "shipped"
	OrderStatusCompleted      = "completed"
	OrderStatusCanceled       = "canceled"
)

// 折扣类型常量
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// 异步任务类型常量
const (
	TaskOrderTimeoutCancel = "order:timeout_cancel"
	TaskOrderStatusNotify  = "order:status_notify"
)

// 队列名称常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 缓存键常量
const (
	CacheKeyProductList   = "catalog:products"
	CacheKeyProductDetail = "catalog:product"
	CacheKeyCategoryList  = "catalog:categories"
	CacheKeyBrandList     = "catalog:brands"
)

// 语言常量
const (
	LocaleZhCN    = "zh-CN"
	LocaleEnUS    = "en-US"
	LocaleDefault = LocaleZhCN
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)
