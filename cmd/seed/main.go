package main

import (
	"fmt"
	"time"

	"github.com/linea-next/internal/config"
	"github.com/linea-next/internal/constants"
	"github.com/linea-next/internal/logger"
	"github.com/linea-next/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Slug: "apparel", Name: "服饰", SortOrder: 300},
		{Slug: "footwear", Name: "鞋靴", SortOrder: 200},
		{Slug: "accessories", Name: "配饰", SortOrder: 100},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"apparel", "footwear", "accessories"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	// 添加品牌
	brands := []models.Brand{
		{Slug: "linea", Name: "Linea", SortOrder: 300},
		{Slug: "northway", Name: "Northway", SortOrder: 200},
	}
	for _, brand := range brands {
		var existing models.Brand
		if err := models.DB.Where("slug = ?", brand.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&brand).Error; err != nil {
				stdLog.Printf("Failed to create brand %s: %v", brand.Slug, err)
			} else {
				stdLog.Printf("Created brand: %s", brand.Slug)
			}
		} else {
			stdLog.Printf("Brand already exists: %s", brand.Slug)
		}
	}
	brandIDs := map[string]uint{}
	var brandList []models.Brand
	if err := models.DB.Where("slug IN ?", []string{"linea", "northway"}).Find(&brandList).Error; err != nil {
		stdLog.Printf("Failed to load brands: %v", err)
	}
	for _, brand := range brandList {
		brandIDs[brand.Slug] = brand.ID
	}

	// 添加属性维度与取值
	attributeSeeds := []struct {
		Attribute models.Attribute
		Values    []models.AttributeValue
	}{
		{
			Attribute: models.Attribute{Name: "颜色", Code: "color", SortOrder: 200},
			Values: []models.AttributeValue{
				{Value: "red", DisplayValue: "红色", Code: "#d0312d", SortOrder: 300},
				{Value: "blue", DisplayValue: "蓝色", Code: "#1d5dec", SortOrder: 200},
				{Value: "black", DisplayValue: "黑色", Code: "#111111", SortOrder: 100},
			},
		},
		{
			Attribute: models.Attribute{Name: "尺码", Code: "size", SortOrder: 100},
			Values: []models.AttributeValue{
				{Value: "s", DisplayValue: "S", SortOrder: 300},
				{Value: "m", DisplayValue: "M", SortOrder: 200},
				{Value: "l", DisplayValue: "L", SortOrder: 100},
			},
		},
	}
	attributeIDs := map[string]uint{}
	valueIDs := map[string]uint{}
	for _, seed := range attributeSeeds {
		var attr models.Attribute
		if err := models.DB.Where("code = ?", seed.Attribute.Code).First(&attr).Error; err != nil {
			attr = seed.Attribute
			if err := models.DB.Create(&attr).Error; err != nil {
				stdLog.Printf("Failed to create attribute %s: %v", seed.Attribute.Code, err)
				continue
			}
			stdLog.Printf("Created attribute: %s", attr.Code)
		}
		attributeIDs[attr.Code] = attr.ID

		for _, val := range seed.Values {
			var existing models.AttributeValue
			if err := models.DB.Where("attribute_id = ? AND value = ?", attr.ID, val.Value).First(&existing).Error; err != nil {
				val.AttributeID = attr.ID
				if err := models.DB.Create(&val).Error; err != nil {
					stdLog.Printf("Failed to create attribute value %s/%s: %v", attr.Code, val.Value, err)
					continue
				}
				existing = val
			}
			valueIDs[attr.Code+"/"+existing.Value] = existing.ID
		}
	}

	colorID := attributeIDs["color"]
	sizeID := attributeIDs["size"]

	// 添加商品（规格矩阵覆盖有货/缺货/停售组合）
	products := []struct {
		Product    models.Product
		Attributes []uint
		Variants   []models.ProductVariant
	}{
		{
			Product: models.Product{
				CategoryID:  categoryIDs["apparel"],
				BrandID:     ptrUint(brandIDs["linea"]),
				Slug:        "classic-tee",
				Name:        "经典纯棉T恤",
				Description: "多色多码，日常百搭。",
				PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(50.00)),
				Images:      models.StringArray([]string{"https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=800"}),
				Tags:        models.StringArray([]string{"T恤", "基础款"}),
				IsActive:    true,
				SortOrder:   300,
			},
			Attributes: []uint{colorID, sizeID},
			Variants: []models.ProductVariant{
				{
					SKUCode:     "TEE-RED-S",
					PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(50.00)),
					StockQty:    0,
					AttributeValues: models.VariantAttributeRefs{
						{AttributeID: colorID, ValueID: valueIDs["color/red"]},
						{AttributeID: sizeID, ValueID: valueIDs["size/s"]},
					},
					IsActive:  true,
					SortOrder: 600,
				},
				{
					SKUCode:     "TEE-RED-M",
					PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(50.00)),
					StockQty:    12,
					AttributeValues: models.VariantAttributeRefs{
						{AttributeID: colorID, ValueID: valueIDs["color/red"]},
						{AttributeID: sizeID, ValueID: valueIDs["size/m"]},
					},
					IsActive:  true,
					SortOrder: 500,
				},
				{
					SKUCode:     "TEE-BLUE-M",
					PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(52.00)),
					StockQty:    8,
					AttributeValues: models.VariantAttributeRefs{
						{AttributeID: colorID, ValueID: valueIDs["color/blue"]},
						{AttributeID: sizeID, ValueID: valueIDs["size/m"]},
					},
					IsActive:  true,
					SortOrder: 400,
				},
				{
					SKUCode:     "TEE-BLUE-L",
					PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(52.00)),
					StockQty:    5,
					AttributeValues: models.VariantAttributeRefs{
						{AttributeID: colorID, ValueID: valueIDs["color/blue"]},
						{AttributeID: sizeID, ValueID: valueIDs["size/l"]},
					},
					IsActive:  false,
					SortOrder: 300,
				},
			},
		},
		{
			Product: models.Product{
				CategoryID:  categoryIDs["footwear"],
				BrandID:     ptrUint(brandIDs["northway"]),
				Slug:        "trail-runner",
				Name:        "越野跑鞋",
				Description: "轻量缓震，抓地耐磨。",
				PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(30.00)),
				Images:      models.StringArray([]string{"https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=800"}),
				Tags:        models.StringArray([]string{"跑鞋", "户外"}),
				IsActive:    true,
				SortOrder:   200,
			},
			Attributes: []uint{sizeID},
			Variants: []models.ProductVariant{
				{
					SKUCode:     "RUN-M",
					PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(30.00)),
					StockQty:    20,
					AttributeValues: models.VariantAttributeRefs{
						{AttributeID: sizeID, ValueID: valueIDs["size/m"]},
					},
					IsActive:  true,
					SortOrder: 200,
				},
				{
					SKUCode:     "RUN-L",
					PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(30.00)),
					StockQty:    3,
					AttributeValues: models.VariantAttributeRefs{
						{AttributeID: sizeID, ValueID: valueIDs["size/l"]},
					},
					IsActive:  true,
					SortOrder: 100,
				},
			},
		},
		{
			Product: models.Product{
				CategoryID:  categoryIDs["accessories"],
				Slug:        "canvas-tote",
				Name:        "帆布托特包",
				Description: "单一规格，即买即发。",
				PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(24.20)),
				Images:      models.StringArray([]string{"https://images.unsplash.com/photo-1544816155-12df9643f363?w=800"}),
				Tags:        models.StringArray([]string{"包袋"}),
				IsActive:    true,
				SortOrder:   100,
			},
			Variants: []models.ProductVariant{
				{
					SKUCode:     "TOTE-STD",
					PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(24.20)),
					StockQty:    50,
					IsActive:    true,
					SortOrder:   100,
				},
			},
		},
	}

	for _, seed := range products {
		if seed.Product.CategoryID == 0 {
			stdLog.Printf("Skip product %s: category_id missing", seed.Product.Slug)
			continue
		}
		var product models.Product
		if err := models.DB.Where("slug = ?", seed.Product.Slug).First(&product).Error; err != nil {
			product = seed.Product
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", seed.Product.Slug, err)
				continue
			}
			stdLog.Printf("Created product: %s", product.Slug)
		} else {
			stdLog.Printf("Product already exists: %s", product.Slug)
		}

		for order, attrID := range seed.Attributes {
			if attrID == 0 {
				continue
			}
			var existing models.ProductAttribute
			if err := models.DB.Where("product_id = ? AND attribute_id = ?", product.ID, attrID).First(&existing).Error; err != nil {
				binding := models.ProductAttribute{
					ProductID:   product.ID,
					AttributeID: attrID,
					SortOrder:   (len(seed.Attributes) - order) * 100,
				}
				if err := models.DB.Create(&binding).Error; err != nil {
					stdLog.Printf("Failed to bind attribute %d to %s: %v", attrID, product.Slug, err)
				}
			}
		}

		for _, variant := range seed.Variants {
			var existing models.ProductVariant
			if err := models.DB.Where("product_id = ? AND sku_code = ?", product.ID, variant.SKUCode).First(&existing).Error; err != nil {
				variant.ProductID = product.ID
				if err := models.DB.Create(&variant).Error; err != nil {
					stdLog.Printf("Failed to create variant %s: %v", variant.SKUCode, err)
				} else {
					stdLog.Printf("Created variant: %s", variant.SKUCode)
				}
				continue
			}
			existing.PriceAmount = variant.PriceAmount
			existing.StockQty = variant.StockQty
			existing.AttributeValues = variant.AttributeValues
			existing.IsActive = variant.IsActive
			existing.SortOrder = variant.SortOrder
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update variant %s: %v", variant.SKUCode, err)
			} else {
				stdLog.Printf("Updated variant: %s", variant.SKUCode)
			}
		}
	}

	// 添加折扣码
	now := time.Now()
	summerStart := now.Add(-24 * time.Hour)
	summerEnd := now.AddDate(0, 1, 0)
	var teeProduct models.Product
	var teeProductID *uint
	if err := models.DB.Where("slug = ?", "classic-tee").First(&teeProduct).Error; err == nil {
		teeProductID = &teeProduct.ID
	}
	discounts := []models.Discount{
		{
			Code:          "SUMMER25",
			DiscountType:  constants.DiscountTypePercentage,
			DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
			ProductID:     teeProductID,
			UsageLimit:    100,
			PerUserLimit:  2,
			StartsAt:      &summerStart,
			ExpiresAt:     &summerEnd,
			IsActive:      true,
		},
		{
			Code:          "WELCOME100",
			DiscountType:  constants.DiscountTypeFixed,
			DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
			PerUserLimit:  1,
			IsActive:      true,
		},
	}
	for _, discount := range discounts {
		var existing models.Discount
		if err := models.DB.Where("code = ?", discount.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&discount).Error; err != nil {
				stdLog.Printf("Failed to create discount %s: %v", discount.Code, err)
			} else {
				stdLog.Printf("Created discount: %s", discount.Code)
			}
		} else {
			stdLog.Printf("Discount already exists: %s", discount.Code)
		}
	}

	fmt.Println("\n✅ Test data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 3 Categories / 2 Brands")
	fmt.Println("- 2 Attributes (color, size) with values")
	fmt.Println("- 3 Products with variant matrix")
	fmt.Println("- 2 Discount codes (SUMMER25, WELCOME100)")
}

func ptrUint(v uint) *uint {
	if v == 0 {
		return nil
	}
	return &v
}
