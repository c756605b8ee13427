package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/linea-next/internal/http/response"
	"github.com/linea-next/internal/models"
	"github.com/linea-next/internal/repository"
	"github.com/linea-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// DiscountRequest 折扣码写入请求
type DiscountRequest struct {
	Code          string  `json:"code" binding:"required"`
	DiscountType  string  `json:"discount_type" binding:"required"`
	DiscountValue float64 `json:"discount_value" binding:"required"`
	ProductID     *uint   `json:"product_id"`
	CategoryID    *uint   `json:"category_id"`
	UsageLimit    int     `json:"usage_limit"`
	PerUserLimit  int     `json:"per_user_limit"`
	StartsAt      string  `json:"starts_at"`
	ExpiresAt     string  `json:"expires_at"`
	IsActive      *bool   `json:"is_active"`
}

var discountWriteErrorRules = []mappedHandlerError{
	{target: service.ErrBadRequest, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrDiscountNotFound, code: response.CodeNotFound, key: "error.discount_not_found"},
	{target: service.ErrDiscountCodeTaken, code: response.CodeBadRequest, key: "error.discount_code_taken"},
	{target: service.ErrProductNotFound, code: response.CodeBadRequest, key: "error.product_not_found"},
	{target: service.ErrCategoryNotFound, code: response.CodeBadRequest, key: "error.category_not_found"},
}

func (req *DiscountRequest) toInput() (service.DiscountInput, error) {
	startsAt, err := parseTimeNullable(req.StartsAt)
	if err != nil {
		return service.DiscountInput{}, err
	}
	expiresAt, err := parseTimeNullable(req.ExpiresAt)
	if err != nil {
		return service.DiscountInput{}, err
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	return service.DiscountInput{
		Code:          req.Code,
		DiscountType:  req.DiscountType,
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromFloat(req.DiscountValue)),
		ProductID:     req.ProductID,
		CategoryID:    req.CategoryID,
		UsageLimit:    req.UsageLimit,
		PerUserLimit:  req.PerUserLimit,
		StartsAt:      startsAt,
		ExpiresAt:     expiresAt,
		IsActive:      isActive,
	}, nil
}

// GetAdminDiscounts 获取折扣码列表 (Admin)
func (h *Handler) GetAdminDiscounts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	var isActive *bool
	if raw := c.Query("is_active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		isActive = &parsed
	}

	discounts, total, err := h.DiscountAdminService.ListDiscounts(repository.DiscountListFilter{
		Page:     page,
		PageSize: pageSize,
		Code:     strings.TrimSpace(c.Query("code")),
		IsActive: isActive,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.discount_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, discounts, pagination)
}

// GetAdminDiscount 获取折扣码详情 (Admin)
func (h *Handler) GetAdminDiscount(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	discount, err := h.DiscountAdminService.GetDiscount(id)
	if err != nil {
		if errors.Is(err, service.ErrDiscountNotFound) {
			respondError(c, response.CodeNotFound, "error.discount_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.discount_fetch_failed", err)
		return
	}
	response.Success(c, discount)
}

// CreateDiscount 创建折扣码
func (h *Handler) CreateDiscount(c *gin.Context) {
	var req DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	discount, err := h.DiscountAdminService.CreateDiscount(input)
	if err != nil {
		respondWithMappedError(c, err, discountWriteErrorRules, response.CodeInternal, "error.discount_save_failed")
		return
	}
	response.Success(c, discount)
}

// UpdateDiscount 更新折扣码
func (h *Handler) UpdateDiscount(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	discount, err := h.DiscountAdminService.UpdateDiscount(id, input)
	if err != nil {
		respondWithMappedError(c, err, discountWriteErrorRules, response.CodeInternal, "error.discount_save_failed")
		return
	}
	response.Success(c, discount)
}

// DeleteDiscount 删除折扣码
func (h *Handler) DeleteDiscount(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.DiscountAdminService.DeleteDiscount(id); err != nil {
		if errors.Is(err, service.ErrDiscountNotFound) {
			respondError(c, response.CodeNotFound, "error.discount_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.discount_delete_failed", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func parseTimeNullable(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
