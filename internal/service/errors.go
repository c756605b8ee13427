package service

import "errors"

// 服务层统一错误，handler 按错误映射表转换为响应码与文案。
var (
	ErrBadRequest         = errors.New("invalid request")
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrWeakPassword       = errors.New("weak password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrEmailInvalid       = errors.New("invalid email")
	ErrUserDisabled       = errors.New("user disabled")

	ErrProductNotFound          = errors.New("product not found")
	ErrProductNotAvailable      = errors.New("product not available")
	ErrVariantNotFound          = errors.New("variant not found")
	ErrVariantNotAvailable      = errors.New("variant not available")
	ErrVariantAttributesInvalid = errors.New("invalid variant attribute combination")
	ErrVariantSignatureConflict = errors.New("variant attribute combination already exists")
	ErrSelectionInvalid         = errors.New("invalid attribute selection")

	ErrAttributeNotFound     = errors.New("attribute not found")
	ErrAttributeValueInvalid = errors.New("invalid attribute value")
	ErrAttributeInUse        = errors.New("attribute in use")
	ErrAttributeValueInUse   = errors.New("attribute value in use")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryInUse         = errors.New("category in use")
	ErrBrandNotFound         = errors.New("brand not found")
	ErrBrandInUse            = errors.New("brand in use")
	ErrSlugTaken             = errors.New("slug already in use")
	ErrSKUCodeTaken          = errors.New("sku code already in use")
	ErrDiscountCodeTaken     = errors.New("discount code already in use")

	ErrCartItemInvalid   = errors.New("invalid cart item")
	ErrStockInsufficient = errors.New("insufficient stock")

	ErrDiscountNotFound     = errors.New("discount code not found")
	ErrDiscountInactive     = errors.New("discount code inactive")
	ErrDiscountNotStarted   = errors.New("discount code not started")
	ErrDiscountExpired      = errors.New("discount code expired")
	ErrDiscountUsageLimit   = errors.New("discount code usage limit reached")
	ErrDiscountPerUserLimit = errors.New("discount code per-user limit reached")
	ErrDiscountInvalid      = errors.New("discount code not applicable")

	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderItemInvalid   = errors.New("invalid order item")
	ErrOrderStatusInvalid = errors.New("invalid order status transition")
	ErrOrderNotCancelable = errors.New("order not cancelable")
)
