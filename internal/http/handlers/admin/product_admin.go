package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/linea-next/internal/http/response"
	"github.com/linea-next/internal/models"
	"github.com/linea-next/internal/repository"
	"github.com/linea-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest 商品写入请求
type ProductRequest struct {
	CategoryID   uint     `json:"category_id" binding:"required"`
	BrandID      *uint    `json:"brand_id"`
	Slug         string   `json:"slug" binding:"required"`
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	PriceAmount  float64  `json:"price_amount"`
	Images       []string `json:"images"`
	Tags         []string `json:"tags"`
	IsActive     *bool    `json:"is_active"`
	SortOrder    int      `json:"sort_order"`
	AttributeIDs []uint   `json:"attribute_ids"`
}

func (req *ProductRequest) toInput() service.ProductInput {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	return service.ProductInput{
		CategoryID:   req.CategoryID,
		BrandID:      req.BrandID,
		Slug:         req.Slug,
		Name:         req.Name,
		Description:  req.Description,
		PriceAmount:  models.NewMoneyFromDecimal(decimal.NewFromFloat(req.PriceAmount)),
		Images:       models.StringArray(req.Images),
		Tags:         models.StringArray(req.Tags),
		IsActive:     isActive,
		SortOrder:    req.SortOrder,
		AttributeIDs: req.AttributeIDs,
	}
}

var productWriteErrorRules = []mappedHandlerError{
	{target: service.ErrBadRequest, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrCategoryNotFound, code: response.CodeBadRequest, key: "error.category_not_found"},
	{target: service.ErrBrandNotFound, code: response.CodeBadRequest, key: "error.brand_not_found"},
	{target: service.ErrAttributeNotFound, code: response.CodeBadRequest, key: "error.attribute_not_found"},
	{target: service.ErrSlugTaken, code: response.CodeBadRequest, key: "error.slug_taken"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
}

var variantWriteErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrVariantNotFound, code: response.CodeNotFound, key: "error.variant_not_found"},
	{target: service.ErrSKUCodeTaken, code: response.CodeBadRequest, key: "error.sku_code_taken"},
	{target: service.ErrVariantAttributesInvalid, code: response.CodeBadRequest, key: "error.variant_attributes_invalid"},
	{target: service.ErrAttributeValueInvalid, code: response.CodeBadRequest, key: "error.attribute_value_invalid"},
	{target: service.ErrVariantSignatureConflict, code: response.CodeBadRequest, key: "error.variant_signature_conflict"},
}

// GetAdminProducts 获取商品列表 (Admin)
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	var categoryID uint
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
			categoryID = uint(parsed)
		}
	}
	var brandID uint
	if raw := strings.TrimSpace(c.Query("brand_id")); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
			brandID = uint(parsed)
		}
	}

	products, total, err := h.ProductService.ListProducts(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   categoryID,
		BrandID:      brandID,
		Search:       strings.TrimSpace(c.Query("search")),
		WithVariants: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, products, pagination)
}

// GetAdminProduct 获取商品详情 (Admin)
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.ProductService.GetProduct(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.CreateProduct(req.toInput())
	if err != nil {
		respondWithMappedError(c, err, productWriteErrorRules, response.CodeInternal, "error.product_save_failed")
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.UpdateProduct(id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, productWriteErrorRules, response.CodeInternal, "error.product_save_failed")
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品（软删除，级联规格与属性绑定）
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.ProductService.DeleteProduct(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_delete_failed", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// VariantRequest 规格写入请求
type VariantRequest struct {
	SKUCode         string                       `json:"sku_code" binding:"required"`
	PriceAmount     float64                      `json:"price_amount" binding:"required"`
	StockQty        int                          `json:"stock_qty"`
	AttributeValues []models.VariantAttributeRef `json:"attribute_values" binding:"required"`
	IsActive        *bool                        `json:"is_active"`
	SortOrder       int                          `json:"sort_order"`
}

func (req *VariantRequest) toInput() service.VariantInput {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	return service.VariantInput{
		SKUCode:         req.SKUCode,
		PriceAmount:     models.NewMoneyFromDecimal(decimal.NewFromFloat(req.PriceAmount)),
		StockQty:        req.StockQty,
		AttributeValues: models.VariantAttributeRefs(req.AttributeValues),
		IsActive:        isActive,
		SortOrder:       req.SortOrder,
	}
}

// GetAdminVariants 获取商品规格列表 (Admin)
func (h *Handler) GetAdminVariants(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	variants, err := h.ProductService.ListVariants(productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.Success(c, variants)
}

// CreateVariant 创建商品规格
func (h *Handler) CreateVariant(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	variant, err := h.ProductService.CreateVariant(productID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, variantWriteErrorRules, response.CodeInternal, "error.variant_save_failed")
		return
	}
	response.Success(c, variant)
}

// UpdateVariant 更新商品规格
func (h *Handler) UpdateVariant(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	variantID, ok := parseIDParam(c, "variant_id")
	if !ok {
		return
	}

	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	variant, err := h.ProductService.UpdateVariant(productID, variantID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, variantWriteErrorRules, response.CodeInternal, "error.variant_save_failed")
		return
	}
	response.Success(c, variant)
}

// DeleteVariant 删除商品规格
func (h *Handler) DeleteVariant(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	variantID, ok := parseIDParam(c, "variant_id")
	if !ok {
		return
	}

	if err := h.ProductService.DeleteVariant(productID, variantID); err != nil {
		respondWithMappedError(c, err, variantWriteErrorRules, response.CodeInternal, "error.variant_delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}
