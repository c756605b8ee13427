package admin

import (
	"errors"

	"github.com/linea-next/internal/http/response"
	"github.com/linea-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类写入请求
type CategoryRequest struct {
	Slug      string `json:"slug" binding:"required"`
	Name      string `json:"name" binding:"required"`
	ParentID  *uint  `json:"parent_id"`
	SortOrder int    `json:"sort_order"`
}

var categoryWriteErrorRules = []mappedHandlerError{
	{target: service.ErrBadRequest, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrCategoryNotFound, code: response.CodeNotFound, key: "error.category_not_found"},
	{target: service.ErrSlugTaken, code: response.CodeBadRequest, key: "error.slug_taken"},
}

// GetAdminCategories 获取分类列表 (Admin)
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListCategories()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	category, err := h.CategoryService.CreateCategory(service.CategoryInput{
		Slug:      req.Slug,
		Name:      req.Name,
		ParentID:  req.ParentID,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondWithMappedError(c, err, categoryWriteErrorRules, response.CodeInternal, "error.category_save_failed")
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	category, err := h.CategoryService.UpdateCategory(id, service.CategoryInput{
		Slug:      req.Slug,
		Name:      req.Name,
		ParentID:  req.ParentID,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondWithMappedError(c, err, categoryWriteErrorRules, response.CodeInternal, "error.category_save_failed")
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类，分类下存在商品时拒绝
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.CategoryService.DeleteCategory(id); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, response.CodeNotFound, "error.category_not_found", nil)
		case errors.Is(err, service.ErrCategoryInUse):
			respondError(c, response.CodeBadRequest, "error.category_in_use", nil)
		default:
			respondError(c, response.CodeInternal, "error.category_delete_failed", err)
		}
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
