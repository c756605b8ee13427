package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   uint
	BrandID      uint
	Search       string
	OnlyActive   bool
	WithVariants bool
}

// AttributeListFilter 查询属性列表的过滤条件
type AttributeListFilter struct {
	Page     int
	PageSize int
	Search   string
}

// DiscountListFilter 查询折扣码列表的过滤条件
type DiscountListFilter struct {
	Page       int
	PageSize   int
	Code       string
	ProductID  uint
	CategoryID uint
	IsActive   *bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
