package i18n

import "github.com/linea-next/internal/constants"

// catalog 内置文案目录
var catalog = map[string]map[string]string{
	constants.LocaleZhCN: {
		"error.bad_request":            "请求参数错误",
		"error.unauthorized":           "未登录或登录已失效",
		"error.forbidden":              "没有权限执行此操作",
		"error.not_found":              "资源不存在",
		"error.internal":               "服务器内部错误",
		"error.rate_limited":           "请求过于频繁，请 %d 秒后重试",
		"error.rate_limit_unavailable": "限流服务暂不可用",
		"error.login_too_many":         "登录尝试过多，请 %d 秒后重试",

		"error.auth_header_missing": "缺少认证信息",
		"error.auth_header_invalid": "认证信息格式错误",
		"error.token_invalid":       "登录凭证无效",
		"error.token_expired":       "登录凭证已过期",
		"error.jwt_secret_missing":  "服务端未配置签名密钥",

		"error.user_id_invalid":       "用户标识无效",
		"error.user_id_type_invalid":  "用户标识类型错误",
		"error.admin_id_invalid":      "管理员标识无效",
		"error.admin_id_type_invalid": "管理员标识类型错误",

		"error.email_taken":          "邮箱已被注册",
		"error.email_invalid":        "邮箱格式不正确",
		"error.credentials_invalid":  "邮箱或密码错误",
		"error.user_disabled":        "账号已被禁用",
		"error.password_weak":        "密码强度不足",
		"error.old_password_invalid": "原密码不正确",

		"error.password_min_length":     "密码长度不能少于 %d 位",
		"error.password_require_upper":  "密码必须包含大写字母",
		"error.password_require_lower":  "密码必须包含小写字母",
		"error.password_require_number": "密码必须包含数字",

		"error.product_not_found":          "商品不存在",
		"error.product_not_available":      "商品已下架",
		"error.variant_not_found":          "商品规格不存在",
		"error.variant_not_available":      "商品规格不可售",
		"error.variant_attributes_invalid": "规格属性组合不合法",
		"error.variant_signature_conflict": "规格属性组合与已有规格重复",
		"error.selection_invalid":          "规格选择不合法",

		"error.attribute_not_found":      "属性不存在",
		"error.attribute_value_invalid":  "属性值不合法",
		"error.attribute_in_use":         "属性已被商品使用，无法删除",
		"error.attribute_value_in_use":   "属性值已被规格使用，无法删除",
		"error.category_not_found":       "分类不存在",
		"error.category_in_use":          "分类下存在商品，无法删除",
		"error.brand_not_found":          "品牌不存在",
		"error.brand_in_use":             "品牌下存在商品，无法删除",
		"error.slug_taken":               "唯一标识已被占用",
		"error.sku_code_taken":           "SKU 编码已被占用",
		"error.discount_code_taken":      "折扣码已被占用",

		"error.cart_item_invalid":   "购物车项不合法",
		"error.stock_insufficient":  "库存不足",

		"error.discount_not_found":      "折扣码不存在",
		"error.discount_inactive":       "折扣码未启用",
		"error.discount_not_started":    "折扣码未生效",
		"error.discount_expired":        "折扣码已过期",
		"error.discount_usage_limit":    "折扣码已达使用上限",
		"error.discount_per_user_limit": "折扣码已达个人使用上限",
		"error.discount_invalid":        "折扣码不可用",

		"error.order_not_found":      "订单不存在",
		"error.order_item_invalid":   "订单项不合法",
		"error.order_create_failed":  "订单创建失败",
		"error.order_fetch_failed":   "订单查询失败",
		"error.order_update_failed":  "订单更新失败",
		"error.order_status_invalid": "订单状态流转不合法",
		"error.order_not_cancelable": "当前状态的订单不可取消",

		"error.queue_unavailable": "异步队列暂不可用",

		"error.register_failed":    "注册失败",
		"error.login_failed":       "登录失败",
		"error.user_fetch_failed":  "用户信息查询失败",
		"error.user_update_failed": "用户信息更新失败",
		"error.save_failed":        "保存失败",

		"error.catalog_fetch_failed": "商品目录查询失败",
		"error.cart_fetch_failed":    "购物车查询失败",
		"error.cart_update_failed":   "购物车更新失败",

		"error.product_fetch_failed":    "商品查询失败",
		"error.product_save_failed":     "商品保存失败",
		"error.product_delete_failed":   "商品删除失败",
		"error.variant_save_failed":     "规格保存失败",
		"error.variant_delete_failed":   "规格删除失败",
		"error.attribute_fetch_failed":  "属性查询失败",
		"error.attribute_save_failed":   "属性保存失败",
		"error.attribute_delete_failed": "属性删除失败",
		"error.category_fetch_failed":   "分类查询失败",
		"error.category_save_failed":    "分类保存失败",
		"error.category_delete_failed":  "分类删除失败",
		"error.brand_fetch_failed":      "品牌查询失败",
		"error.brand_save_failed":       "品牌保存失败",
		"error.brand_delete_failed":     "品牌删除失败",
		"error.discount_fetch_failed":   "折扣码查询失败",
		"error.discount_save_failed":    "折扣码保存失败",
		"error.discount_delete_failed":  "折扣码删除失败",

		"error.authz_fetch_failed":  "权限信息查询失败",
		"error.authz_update_failed": "权限信息更新失败",
	},
	constants.LocaleEnUS: {
		"error.bad_request":            "invalid request",
		"error.unauthorized":           "unauthorized",
		"error.forbidden":              "forbidden",
		"error.not_found":              "not found",
		"error.internal":               "internal server error",
		"error.rate_limited":           "too many requests, retry in %d seconds",
		"error.rate_limit_unavailable": "rate limiter unavailable",
		"error.login_too_many":         "too many login attempts, retry in %d seconds",

		"error.auth_header_missing": "missing authorization header",
		"error.auth_header_invalid": "malformed authorization header",
		"error.token_invalid":       "invalid token",
		"error.token_expired":       "token expired",
		"error.jwt_secret_missing":  "server signing secret not configured",

		"error.user_id_invalid":       "invalid user id",
		"error.user_id_type_invalid":  "invalid user id type",
		"error.admin_id_invalid":      "invalid admin id",
		"error.admin_id_type_invalid": "invalid admin id type",

		"error.email_taken":          "email already registered",
		"error.email_invalid":        "invalid email address",
		"error.credentials_invalid":  "invalid email or password",
		"error.user_disabled":        "account disabled",
		"error.password_weak":        "password too weak",
		"error.old_password_invalid": "old password incorrect",

		"error.password_min_length":     "password must be at least %d characters",
		"error.password_require_upper":  "password must contain an uppercase letter",
		"error.password_require_lower":  "password must contain a lowercase letter",
		"error.password_require_number": "password must contain a digit",

		"error.product_not_found":          "product not found",
		"error.product_not_available":      "product not available",
		"error.variant_not_found":          "variant not found",
		"error.variant_not_available":      "variant not available",
		"error.variant_attributes_invalid": "invalid variant attribute combination",
		"error.variant_signature_conflict": "variant attribute combination already exists",
		"error.selection_invalid":          "invalid attribute selection",

		"error.attribute_not_found":      "attribute not found",
		"error.attribute_value_invalid":  "invalid attribute value",
		"error.attribute_in_use":         "attribute is used by products and cannot be deleted",
		"error.attribute_value_in_use":   "attribute value is used by variants and cannot be deleted",
		"error.category_not_found":       "category not found",
		"error.category_in_use":          "category has products and cannot be deleted",
		"error.brand_not_found":          "brand not found",
		"error.brand_in_use":             "brand has products and cannot be deleted",
		"error.slug_taken":               "slug already in use",
		"error.sku_code_taken":           "sku code already in use",
		"error.discount_code_taken":      "discount code already in use",

		"error.cart_item_invalid":  "invalid cart item",
		"error.stock_insufficient": "insufficient stock",

		"error.discount_not_found":      "discount code not found",
		"error.discount_inactive":       "discount code inactive",
		"error.discount_not_started":    "discount code not started",
		"error.discount_expired":        "discount code expired",
		"error.discount_usage_limit":    "discount code usage limit reached",
		"error.discount_per_user_limit": "discount code per-user limit reached",
		"error.discount_invalid":        "discount code not applicable",

		"error.order_not_found":      "order not found",
		"error.order_item_invalid":   "invalid order item",
		"error.order_create_failed":  "failed to create order",
		"error.order_fetch_failed":   "failed to fetch order",
		"error.order_update_failed":  "failed to update order",
		"error.order_status_invalid": "invalid order status transition",
		"error.order_not_cancelable": "order cannot be canceled in its current status",

		"error.queue_unavailable": "task queue unavailable",

		"error.register_failed":    "failed to register",
		"error.login_failed":       "failed to log in",
		"error.user_fetch_failed":  "failed to fetch user",
		"error.user_update_failed": "failed to update user",
		"error.save_failed":        "failed to save",

		"error.catalog_fetch_failed": "failed to fetch catalog",
		"error.cart_fetch_failed":    "failed to fetch cart",
		"error.cart_update_failed":   "failed to update cart",

		"error.product_fetch_failed":    "failed to fetch product",
		"error.product_save_failed":     "failed to save product",
		"error.product_delete_failed":   "failed to delete product",
		"error.variant_save_failed":     "failed to save variant",
		"error.variant_delete_failed":   "failed to delete variant",
		"error.attribute_fetch_failed":  "failed to fetch attribute",
		"error.attribute_save_failed":   "failed to save attribute",
		"error.attribute_delete_failed": "failed to delete attribute",
		"error.category_fetch_failed":   "failed to fetch category",
		"error.category_save_failed":    "failed to save category",
		"error.category_delete_failed":  "failed to delete category",
		"error.brand_fetch_failed":      "failed to fetch brand",
		"error.brand_save_failed":       "failed to save brand",
		"error.brand_delete_failed":     "failed to delete brand",
		"error.discount_fetch_failed":   "failed to fetch discount",
		"error.discount_save_failed":    "failed to save discount",
		"error.discount_delete_failed":  "failed to delete discount",

		"error.authz_fetch_failed":  "failed to fetch authorization data",
		"error.authz_update_failed": "failed to update authorization data",
	},
}
