package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/linea-next/internal/http/response"
	"github.com/linea-next/internal/repository"
	"github.com/linea-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AttributeRequest 属性写入请求
type AttributeRequest struct {
	Name      string `json:"name" binding:"required"`
	Code      string `json:"code" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

// AttributeValueRequest 属性值写入请求
type AttributeValueRequest struct {
	Value        string `json:"value" binding:"required"`
	DisplayValue string `json:"display_value"`
	Code         string `json:"code"`
	SortOrder    int    `json:"sort_order"`
}

var attributeWriteErrorRules = []mappedHandlerError{
	{target: service.ErrBadRequest, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrAttributeNotFound, code: response.CodeNotFound, key: "error.attribute_not_found"},
	{target: service.ErrAttributeValueInvalid, code: response.CodeBadRequest, key: "error.attribute_value_invalid"},
	{target: service.ErrSlugTaken, code: response.CodeBadRequest, key: "error.slug_taken"},
}

// GetAdminAttributes 获取属性列表 (Admin)
func (h *Handler) GetAdminAttributes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	attributes, total, err := h.AttributeService.ListAttributes(repository.AttributeListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.attribute_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, attributes, pagination)
}

// GetAdminAttribute 获取属性详情 (Admin)
func (h *Handler) GetAdminAttribute(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	attribute, err := h.AttributeService.GetAttribute(id)
	if err != nil {
		if errors.Is(err, service.ErrAttributeNotFound) {
			respondError(c, response.CodeNotFound, "error.attribute_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.attribute_fetch_failed", err)
		return
	}
	response.Success(c, attribute)
}

// CreateAttribute 创建属性
func (h *Handler) CreateAttribute(c *gin.Context) {
	var req AttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	attribute, err := h.AttributeService.CreateAttribute(service.AttributeInput{
		Name:      req.Name,
		Code:      req.Code,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondWithMappedError(c, err, attributeWriteErrorRules, response.CodeInternal, "error.attribute_save_failed")
		return
	}
	response.Success(c, attribute)
}

// UpdateAttribute 更新属性
func (h *Handler) UpdateAttribute(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	attribute, err := h.AttributeService.UpdateAttribute(id, service.AttributeInput{
		Name:      req.Name,
		Code:      req.Code,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondWithMappedError(c, err, attributeWriteErrorRules, response.CodeInternal, "error.attribute_save_failed")
		return
	}
	response.Success(c, attribute)
}

// DeleteAttribute 删除属性，被商品引用时拒绝
func (h *Handler) DeleteAttribute(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.AttributeService.DeleteAttribute(id); err != nil {
		switch {
		case errors.Is(err, service.ErrAttributeNotFound):
			respondError(c, response.CodeNotFound, "error.attribute_not_found", nil)
		case errors.Is(err, service.ErrAttributeInUse):
			respondError(c, response.CodeBadRequest, "error.attribute_in_use", nil)
		default:
			respondError(c, response.CodeInternal, "error.attribute_delete_failed", err)
		}
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// CreateAttributeValue 创建属性值
func (h *Handler) CreateAttributeValue(c *gin.Context) {
	attributeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AttributeValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	value, err := h.AttributeService.CreateValue(attributeID, service.AttributeValueInput{
		Value:        req.Value,
		DisplayValue: req.DisplayValue,
		Code:         req.Code,
		SortOrder:    req.SortOrder,
	})
	if err != nil {
		respondWithMappedError(c, err, attributeWriteErrorRules, response.CodeInternal, "error.attribute_save_failed")
		return
	}
	response.Success(c, value)
}

// UpdateAttributeValue 更新属性值
func (h *Handler) UpdateAttributeValue(c *gin.Context) {
	attributeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	valueID, ok := parseIDParam(c, "value_id")
	if !ok {
		return
	}

	var req AttributeValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	value, err := h.AttributeService.UpdateValue(attributeID, valueID, service.AttributeValueInput{
		Value:        req.Value,
		DisplayValue: req.DisplayValue,
		Code:         req.Code,
		SortOrder:    req.SortOrder,
	})
	if err != nil {
		respondWithMappedError(c, err, attributeWriteErrorRules, response.CodeInternal, "error.attribute_save_failed")
		return
	}
	response.Success(c, value)
}

// DeleteAttributeValue 删除属性值，被规格引用时拒绝
func (h *Handler) DeleteAttributeValue(c *gin.Context) {
	attributeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	valueID, ok := parseIDParam(c, "value_id")
	if !ok {
		return
	}

	if err := h.AttributeService.DeleteValue(attributeID, valueID); err != nil {
		switch {
		case errors.Is(err, service.ErrAttributeNotFound):
			respondError(c, response.CodeNotFound, "error.attribute_not_found", nil)
		case errors.Is(err, service.ErrAttributeValueInvalid):
			respondError(c, response.CodeBadRequest, "error.attribute_value_invalid", nil)
		case errors.Is(err, service.ErrAttributeValueInUse):
			respondError(c, response.CodeBadRequest, "error.attribute_value_in_use", nil)
		default:
			respondError(c, response.CodeInternal, "error.attribute_delete_failed", err)
		}
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
