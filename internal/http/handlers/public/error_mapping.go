package public

import (
	"errors"

	"github.com/linea-next/internal/http/response"
	"github.com/linea-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var discountErrorRules = []mappedHandlerError{
	{target: service.ErrDiscountNotFound, code: response.CodeBadRequest, key: "error.discount_not_found"},
	{target: service.ErrDiscountInactive, code: response.CodeBadRequest, key: "error.discount_inactive"},
	{target: service.ErrDiscountNotStarted, code: response.CodeBadRequest, key: "error.discount_not_started"},
	{target: service.ErrDiscountExpired, code: response.CodeBadRequest, key: "error.discount_expired"},
	{target: service.ErrDiscountUsageLimit, code: response.CodeBadRequest, key: "error.discount_usage_limit"},
	{target: service.ErrDiscountPerUserLimit, code: response.CodeBadRequest, key: "error.discount_per_user_limit"},
	{target: service.ErrDiscountInvalid, code: response.CodeBadRequest, key: "error.discount_invalid"},
}

var checkoutItemErrorRules = []mappedHandlerError{
	{target: service.ErrCartItemInvalid, code: response.CodeBadRequest, key: "error.cart_item_invalid"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, key: "error.product_not_available"},
	{target: service.ErrVariantNotAvailable, code: response.CodeBadRequest, key: "error.variant_not_available"},
	{target: service.ErrStockInsufficient, code: response.CodeBadRequest, key: "error.stock_insufficient"},
}

var cartWriteErrorRules = []mappedHandlerError{
	{target: service.ErrCartItemInvalid, code: response.CodeBadRequest, key: "error.cart_item_invalid"},
	{target: service.ErrVariantNotFound, code: response.CodeNotFound, key: "error.variant_not_found"},
	{target: service.ErrVariantNotAvailable, code: response.CodeBadRequest, key: "error.variant_not_available"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, key: "error.product_not_available"},
	{target: service.ErrStockInsufficient, code: response.CodeBadRequest, key: "error.stock_insufficient"},
}

func respondCheckoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(checkoutItemErrorRules, discountErrorRules), response.CodeInternal, "error.order_create_failed")
}

func respondCartWriteError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartWriteErrorRules, response.CodeInternal, "error.cart_update_failed")
}
