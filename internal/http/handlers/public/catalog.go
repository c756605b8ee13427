package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/linea-next/internal/http/response"
	"github.com/linea-next/internal/repository"
	"github.com/linea-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetProducts 商品列表（仅上架商品）
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	var categoryID uint
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || parsed == 0 {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		categoryID = uint(parsed)
	}
	var brandID uint
	if raw := strings.TrimSpace(c.Query("brand_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || parsed == 0 {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		brandID = uint(parsed)
	}

	products, total, err := h.CatalogService.ListProducts(c.Request.Context(), repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: categoryID,
		BrandID:    brandID,
		Search:     strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.catalog_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, products, pagination)
}

// GetProductBySlug 商品详情
func (h *Handler) GetProductBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	product, err := h.CatalogService.GetProductBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.catalog_fetch_failed", err)
		return
	}

	response.Success(c, product)
}

// ResolveVariantRequest 规格解析请求
type ResolveVariantRequest struct {
	Selection map[uint]uint `json:"selection" binding:"required"`
}

// ResolveVariant 按属性选择解析规格并返回可用性矩阵
func (h *Handler) ResolveVariant(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var req ResolveVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	resolution, err := h.CatalogService.ResolveVariant(c.Request.Context(), slug, service.Selection(req.Selection))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		case errors.Is(err, service.ErrSelectionInvalid):
			respondError(c, response.CodeBadRequest, "error.selection_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.catalog_fetch_failed", err)
		}
		return
	}

	response.Success(c, resolution)
}

// GetCategories 分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CatalogService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.catalog_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// GetBrands 品牌列表
func (h *Handler) GetBrands(c *gin.Context) {
	brands, err := h.CatalogService.ListBrands(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.catalog_fetch_failed", err)
		return
	}
	response.Success(c, brands)
}
