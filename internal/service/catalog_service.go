package service

import (
	"context"
	"fmt"
	"time"

	"github.com/linea-next/internal/cache"
	"github.com/linea-next/internal/config"
	"github.com/linea-next/internal/constants"
	"github.com/linea-next/internal/logger"
	"github.com/linea-next/internal/models"
	"github.com/linea-next/internal/repository"
)

// CatalogService 面向买家的商品目录服务
// 列表与详情读多写少，走 Redis 缓存，目录变更后由管理端统一失效。
type CatalogService struct {
	cfg          *config.Config
	productRepo  repository.ProductRepository
	attrRepo     repository.AttributeRepository
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
}

// NewCatalogService 创建商品目录服务
func NewCatalogService(
	cfg *config.Config,
	productRepo repository.ProductRepository,
	attrRepo repository.AttributeRepository,
	categoryRepo repository.CategoryRepository,
	brandRepo repository.BrandRepository,
) *CatalogService {
	return &CatalogService{
		cfg:          cfg,
		productRepo:  productRepo,
		attrRepo:     attrRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
	}
}

func (s *CatalogService) cacheTTL() time.Duration {
	seconds := s.cfg.Catalog.CacheTTLSeconds
	if seconds <= 0 {
		seconds = 60
	}
	return time.Duration(seconds) * time.Second
}

// ProductListResult 商品列表结果
type ProductListResult struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
}

// ListProducts 商品列表（仅上架商品）
func (s *CatalogService) ListProducts(ctx context.Context, filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.OnlyActive = true
	filter.WithVariants = true

	key := fmt.Sprintf("%s:%d:%d:%d:%d:%s",
		constants.CacheKeyProductList,
		filter.Page, filter.PageSize, filter.CategoryID, filter.BrandID, filter.Search,
	)
	var cached ProductListResult
	if hit, err := cache.GetJSON(ctx, key, &cached); err != nil {
		logger.Warnw("catalog_cache_read_failed", "key", key, "error", err)
	} else if hit {
		return cached.Products, cached.Total, nil
	}

	products, total, err := s.productRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}

	if err := cache.SetJSON(ctx, key, ProductListResult{Products: products, Total: total}, s.cacheTTL()); err != nil {
		logger.Warnw("catalog_cache_write_failed", "key", key, "error", err)
	}
	return products, total, nil
}

// GetProductBySlug 商品详情（仅上架商品，含属性维度与可售规格）
func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	key := fmt.Sprintf("%s:%s", constants.CacheKeyProductDetail, slug)
	var cached models.Product
	if hit, err := cache.GetJSON(ctx, key, &cached); err != nil {
		logger.Warnw("catalog_cache_read_failed", "key", key, "error", err)
	} else if hit {
		return &cached, nil
	}

	product, err := s.productRepo.GetBySlug(slug, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if err := cache.SetJSON(ctx, key, product, s.cacheTTL()); err != nil {
		logger.Warnw("catalog_cache_write_failed", "key", key, "error", err)
	}
	return product, nil
}

// VariantResolution 规格解析结果
type VariantResolution struct {
	Variant      *models.ProductVariant  `json:"variant,omitempty"`
	Availability []AttributeAvailability `json:"availability"`
}

// ResolveVariant 按买家选择解析规格并计算各取值可用性
// 选择必须对商品的每个属性各取一个合法值；未命中规格时 Variant 为空，
// 可用性矩阵始终返回。
func (s *CatalogService) ResolveVariant(ctx context.Context, slug string, selection Selection) (*VariantResolution, error) {
	product, err := s.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	attributes := make([]models.Attribute, 0, len(product.Attributes))
	for _, binding := range product.Attributes {
		if binding.Attribute != nil {
			attributes = append(attributes, *binding.Attribute)
		}
	}

	if err := s.validateSelection(attributes, selection); err != nil {
		return nil, err
	}

	resolution := &VariantResolution{
		Availability: BuildAvailabilityMatrix(attributes, product.Variants, selection),
	}
	if len(selection) == len(attributes) {
		resolution.Variant = FindMatchingVariant(product.Variants, selection)
	}
	return resolution, nil
}

// validateSelection 校验选择只引用商品属性集内的合法取值
func (s *CatalogService) validateSelection(attributes []models.Attribute, selection Selection) error {
	for attributeID, valueID := range selection {
		var attribute *models.Attribute
		for i := range attributes {
			if attributes[i].ID == attributeID {
				attribute = &attributes[i]
				break
			}
		}
		if attribute == nil {
			return ErrSelectionInvalid
		}
		found := false
		for _, value := range attribute.Values {
			if value.ID == valueID {
				found = true
				break
			}
		}
		if !found {
			return ErrSelectionInvalid
		}
	}
	return nil
}

// ListCategories 分类列表
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	if hit, err := cache.GetJSON(ctx, constants.CacheKeyCategoryList, &cached); err != nil {
		logger.Warnw("catalog_cache_read_failed", "key", constants.CacheKeyCategoryList, "error", err)
	} else if hit {
		return cached, nil
	}

	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, constants.CacheKeyCategoryList, categories, s.cacheTTL()); err != nil {
		logger.Warnw("catalog_cache_write_failed", "key", constants.CacheKeyCategoryList, "error", err)
	}
	return categories, nil
}

// ListBrands 品牌列表
func (s *CatalogService) ListBrands(ctx context.Context) ([]models.Brand, error) {
	var cached []models.Brand
	if hit, err := cache.GetJSON(ctx, constants.CacheKeyBrandList, &cached); err != nil {
		logger.Warnw("catalog_cache_read_failed", "key", constants.CacheKeyBrandList, "error", err)
	} else if hit {
		return cached, nil
	}

	brands, err := s.brandRepo.List()
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, constants.CacheKeyBrandList, brands, s.cacheTTL()); err != nil {
		logger.Warnw("catalog_cache_write_failed", "key", constants.CacheKeyBrandList, "error", err)
	}
	return brands, nil
}

// InvalidateCatalogCache 失效目录相关缓存，管理端写操作后调用
func InvalidateCatalogCache(ctx context.Context) {
	for _, prefix := range []string{
		constants.CacheKeyProductList,
		constants.CacheKeyProductDetail,
		constants.CacheKeyCategoryList,
		constants.CacheKeyBrandList,
	} {
		if err := cache.DelByPrefix(ctx, prefix); err != nil {
			logger.Warnw("catalog_cache_invalidate_failed", "prefix", prefix, "error", err)
		}
	}
}
