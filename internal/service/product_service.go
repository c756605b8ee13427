package service

import (
	"context"
	"strings"

	"github.com/linea-next/internal/logger"
	"github.com/linea-next/internal/models"
	"github.com/linea-next/internal/repository"
)

// ProductInput 管理端商品写入参数
type ProductInput struct {
	CategoryID   uint               `json:"category_id"`
	BrandID      *uint              `json:"brand_id"`
	Slug         string             `json:"slug"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	PriceAmount  models.Money       `json:"price_amount"`
	Images       models.StringArray `json:"images"`
	Tags         models.StringArray `json:"tags"`
	IsActive     bool               `json:"is_active"`
	SortOrder    int                `json:"sort_order"`
	AttributeIDs []uint             `json:"attribute_ids"`
}

// VariantInput 管理端规格写入参数
type VariantInput struct {
	SKUCode         string                      `json:"sku_code"`
	PriceAmount     models.Money                `json:"price_amount"`
	StockQty        int                         `json:"stock_qty"`
	AttributeValues models.VariantAttributeRefs `json:"attribute_values"`
	IsActive        bool                        `json:"is_active"`
	SortOrder       int                         `json:"sort_order"`
}

// ProductService 管理端商品服务
type ProductService struct {
	productRepo  repository.ProductRepository
	variantRepo  repository.VariantRepository
	attrRepo     repository.AttributeRepository
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
}

// NewProductService 创建商品服务
func NewProductService(
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	attrRepo repository.AttributeRepository,
	categoryRepo repository.CategoryRepository,
	brandRepo repository.BrandRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		variantRepo:  variantRepo,
		attrRepo:     attrRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
	}
}

// ListProducts 管理端商品列表
func (s *ProductService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// GetProduct 管理端商品详情
func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// CreateProduct 创建商品
func (s *ProductService) CreateProduct(input ProductInput) (*models.Product, error) {
	if err := s.validateProductInput(&input, 0); err != nil {
		return nil, err
	}

	product := &models.Product{
		CategoryID:  input.CategoryID,
		BrandID:     input.BrandID,
		Slug:        strings.TrimSpace(input.Slug),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		PriceAmount: input.PriceAmount,
		Images:      input.Images,
		Tags:        input.Tags,
		IsActive:    input.IsActive,
		SortOrder:   input.SortOrder,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	if len(input.AttributeIDs) > 0 {
		if err := s.productRepo.ReplaceAttributeBindings(product.ID, input.AttributeIDs); err != nil {
			return nil, err
		}
	}

	InvalidateCatalogCache(context.Background())
	logger.Infow("product_created", "product_id", product.ID, "slug", product.Slug)
	return s.GetProduct(product.ID)
}

// UpdateProduct 更新商品
// 属性维度绑定变更不回溯已有规格，规格签名以写入时校验为准。
func (s *ProductService) UpdateProduct(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}
	if err := s.validateProductInput(&input, id); err != nil {
		return nil, err
	}

	product.CategoryID = input.CategoryID
	product.BrandID = input.BrandID
	product.Slug = strings.TrimSpace(input.Slug)
	product.Name = strings.TrimSpace(input.Name)
	product.Description = input.Description
	product.PriceAmount = input.PriceAmount
	product.Images = input.Images
	product.Tags = input.Tags
	product.IsActive = input.IsActive
	product.SortOrder = input.SortOrder
	product.Attributes = nil
	product.Variants = nil

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	if err := s.productRepo.ReplaceAttributeBindings(product.ID, input.AttributeIDs); err != nil {
		return nil, err
	}

	InvalidateCatalogCache(context.Background())
	return s.GetProduct(product.ID)
}

// DeleteProduct 删除商品
func (s *ProductService) DeleteProduct(id uint) error {
	if _, err := s.GetProduct(id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	InvalidateCatalogCache(context.Background())
	return nil
}

func (s *ProductService) validateProductInput(input *ProductInput, excludeID uint) error {
	slug := strings.TrimSpace(input.Slug)
	if slug == "" || strings.TrimSpace(input.Name) == "" {
		return ErrBadRequest
	}

	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	if input.BrandID != nil {
		brand, err := s.brandRepo.GetByID(*input.BrandID)
		if err != nil {
			return err
		}
		if brand == nil {
			return ErrBrandNotFound
		}
	}

	count, err := s.productRepo.CountBySlug(slug, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugTaken
	}

	for _, attributeID := range input.AttributeIDs {
		attribute, err := s.attrRepo.GetByID(attributeID)
		if err != nil {
			return err
		}
		if attribute == nil {
			return ErrAttributeNotFound
		}
	}
	return nil
}

// ListVariants 管理端规格列表
func (s *ProductService) ListVariants(productID uint) ([]models.ProductVariant, error) {
	if _, err := s.GetProduct(productID); err != nil {
		return nil, err
	}
	return s.variantRepo.ListByProduct(productID, false)
}

// CreateVariant 创建规格
// 签名必须恰好覆盖商品绑定的属性集合，且不得与已有规格重复。
func (s *ProductService) CreateVariant(productID uint, input VariantInput) (*models.ProductVariant, error) {
	product, err := s.GetProduct(productID)
	if err != nil {
		return nil, err
	}
	if err := s.validateVariantInput(product, &input, 0); err != nil {
		return nil, err
	}

	variant := &models.ProductVariant{
		ProductID:       productID,
		SKUCode:         strings.TrimSpace(input.SKUCode),
		PriceAmount:     input.PriceAmount,
		StockQty:        input.StockQty,
		AttributeValues: input.AttributeValues,
		IsActive:        input.IsActive,
		SortOrder:       input.SortOrder,
	}
	if err := s.variantRepo.Create(variant); err != nil {
		return nil, err
	}

	InvalidateCatalogCache(context.Background())
	logger.Infow("variant_created", "product_id", productID, "sku_code", variant.SKUCode)
	return variant, nil
}

// UpdateVariant 更新规格
func (s *ProductService) UpdateVariant(productID, variantID uint, input VariantInput) (*models.ProductVariant, error) {
	product, err := s.GetProduct(productID)
	if err != nil {
		return nil, err
	}
	variant, err := s.variantRepo.GetByID(variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil || variant.ProductID != productID {
		return nil, ErrVariantNotFound
	}
	if err := s.validateVariantInput(product, &input, variantID); err != nil {
		return nil, err
	}

	variant.SKUCode = strings.TrimSpace(input.SKUCode)
	variant.PriceAmount = input.PriceAmount
	variant.StockQty = input.StockQty
	variant.AttributeValues = input.AttributeValues
	variant.IsActive = input.IsActive
	variant.SortOrder = input.SortOrder
	if err := s.variantRepo.Update(variant); err != nil {
		return nil, err
	}

	InvalidateCatalogCache(context.Background())
	return variant, nil
}

// DeleteVariant 删除规格
func (s *ProductService) DeleteVariant(productID, variantID uint) error {
	variant, err := s.variantRepo.GetByID(variantID)
	if err != nil {
		return err
	}
	if variant == nil || variant.ProductID != productID {
		return ErrVariantNotFound
	}
	if err := s.variantRepo.Delete(variantID); err != nil {
		return err
	}
	InvalidateCatalogCache(context.Background())
	return nil
}

func (s *ProductService) validateVariantInput(product *models.Product, input *VariantInput, excludeID uint) error {
	skuCode := strings.TrimSpace(input.SKUCode)
	if skuCode == "" || input.StockQty < 0 {
		return ErrVariantAttributesInvalid
	}

	count, err := s.variantRepo.CountBySKUCode(product.ID, skuCode, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSKUCodeTaken
	}

	// 签名必须对商品的每个属性维度各取一个值，不多不少
	if len(input.AttributeValues) != len(product.Attributes) {
		return ErrVariantAttributesInvalid
	}
	selection := make(Selection, len(input.AttributeValues))
	for _, ref := range input.AttributeValues {
		binding := findBinding(product.Attributes, ref.AttributeID)
		if binding == nil || binding.Attribute == nil {
			return ErrVariantAttributesInvalid
		}
		valid := false
		for _, value := range binding.Attribute.Values {
			if value.ID == ref.ValueID {
				valid = true
				break
			}
		}
		if !valid {
			return ErrAttributeValueInvalid
		}
		if _, dup := selection[ref.AttributeID]; dup {
			return ErrVariantAttributesInvalid
		}
		selection[ref.AttributeID] = ref.ValueID
	}

	if existing := FindMatchingVariant(product.Variants, selection); existing != nil && existing.ID != excludeID {
		return ErrVariantSignatureConflict
	}
	return nil
}

func findBinding(bindings []models.ProductAttribute, attributeID uint) *models.ProductAttribute {
	for i := range bindings {
		if bindings[i].AttributeID == attributeID {
			return &bindings[i]
		}
	}
	return nil
}
