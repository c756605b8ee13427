package admin

import (
	"errors"

	"github.com/linea-next/internal/http/response"
	"github.com/linea-next/internal/service"

	"github.com/gin-gonic/gin"
)

// BrandRequest 品牌写入请求
type BrandRequest struct {
	Slug      string `json:"slug" binding:"required"`
	Name      string `json:"name" binding:"required"`
	LogoURL   string `json:"logo_url"`
	SortOrder int    `json:"sort_order"`
}

var brandWriteErrorRules = []mappedHandlerError{
	{target: service.ErrBadRequest, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrBrandNotFound, code: response.CodeNotFound, key: "error.brand_not_found"},
	{target: service.ErrSlugTaken, code: response.CodeBadRequest, key: "error.slug_taken"},
}

// GetAdminBrands 获取品牌列表 (Admin)
func (h *Handler) GetAdminBrands(c *gin.Context) {
	brands, err := h.BrandService.ListBrands()
	if err != nil {
		respondError(c, response.CodeInternal, "error.brand_fetch_failed", err)
		return
	}
	response.Success(c, brands)
}

// CreateBrand 创建品牌
func (h *Handler) CreateBrand(c *gin.Context) {
	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	brand, err := h.BrandService.CreateBrand(service.BrandInput{
		Slug:      req.Slug,
		Name:      req.Name,
		LogoURL:   req.LogoURL,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondWithMappedError(c, err, brandWriteErrorRules, response.CodeInternal, "error.brand_save_failed")
		return
	}
	response.Success(c, brand)
}

// UpdateBrand 更新品牌
func (h *Handler) UpdateBrand(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	brand, err := h.BrandService.UpdateBrand(id, service.BrandInput{
		Slug:      req.Slug,
		Name:      req.Name,
		LogoURL:   req.LogoURL,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondWithMappedError(c, err, brandWriteErrorRules, response.CodeInternal, "error.brand_save_failed")
		return
	}
	response.Success(c, brand)
}

// DeleteBrand 删除品牌，品牌下存在商品时拒绝
func (h *Handler) DeleteBrand(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.BrandService.DeleteBrand(id); err != nil {
		switch {
		case errors.Is(err, service.ErrBrandNotFound):
			respondError(c, response.CodeNotFound, "error.brand_not_found", nil)
		case errors.Is(err, service.ErrBrandInUse):
			respondError(c, response.CodeBadRequest, "error.brand_in_use", nil)
		default:
			respondError(c, response.CodeInternal, "error.brand_delete_failed", err)
		}
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
