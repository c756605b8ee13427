package service

import (
	"github.com/linea-next/internal/logger"
	"github.com/linea-next/internal/models"
)

// Selection 买家在商品页的属性选择，key 为属性ID，value 为属性值ID
type Selection map[uint]uint

// signatureMatches 判断规格签名与选择是否完全一致（集合相等，与顺序无关）
func signatureMatches(refs models.VariantAttributeRefs, selection Selection) bool {
	if len(refs) != len(selection) {
		return false
	}
	for _, ref := range refs {
		valueID, ok := selection[ref.AttributeID]
		if !ok || valueID != ref.ValueID {
			return false
		}
	}
	return true
}

// signatureCompatible 判断规格签名是否与部分选择兼容
// 只约束选择中出现的属性，未选择的属性不参与比较。
func signatureCompatible(refs models.VariantAttributeRefs, selection Selection) bool {
	for attributeID, valueID := range selection {
		if refs.ValueFor(attributeID) != valueID {
			return false
		}
	}
	return true
}

// FindMatchingVariant 在规格集合中查找与选择完全匹配的规格
// 选择必须覆盖规格签名的全部属性；匹配按集合相等判定，与属性顺序无关。
// 数据中出现重复签名时返回第一条并记录告警，未命中返回 nil。
func FindMatchingVariant(variants []models.ProductVariant, selection Selection) *models.ProductVariant {
	if len(selection) == 0 {
		return nil
	}
	var matched *models.ProductVariant
	for i := range variants {
		if !signatureMatches(variants[i].AttributeValues, selection) {
			continue
		}
		if matched == nil {
			matched = &variants[i]
			continue
		}
		logger.Warnw("variant_signature_duplicate",
			"product_id", variants[i].ProductID,
			"matched_variant_id", matched.ID,
			"duplicate_variant_id", variants[i].ID,
		)
	}
	return matched
}

// IsValueAvailable 判断在当前选择下，某属性换成候选值后是否仍有可购规格
// 把候选 (attributeID, valueID) 叠加到当前选择上，候选属性原有取值被覆盖，
// 只要存在一条可售且有库存的规格与叠加后的部分选择兼容即视为可用。
// 纯函数，不访问存储。
func IsValueAvailable(variants []models.ProductVariant, selection Selection, attributeID, valueID uint) bool {
	candidate := make(Selection, len(selection)+1)
	for k, v := range selection {
		candidate[k] = v
	}
	candidate[attributeID] = valueID

	for i := range variants {
		if !variants[i].IsActive || variants[i].StockQty <= 0 {
			continue
		}
		if signatureCompatible(variants[i].AttributeValues, candidate) {
			return true
		}
	}
	return false
}

// ValueAvailability 单个属性值的可用性
type ValueAvailability struct {
	ValueID   uint `json:"value_id"`
	Available bool `json:"available"`
}

// AttributeAvailability 单个属性下所有取值的可用性
type AttributeAvailability struct {
	AttributeID uint                `json:"attribute_id"`
	Values      []ValueAvailability `json:"values"`
}

// BuildAvailabilityMatrix 按商品属性维度计算每个取值在当前选择下的可用性
func BuildAvailabilityMatrix(attributes []models.Attribute, variants []models.ProductVariant, selection Selection) []AttributeAvailability {
	matrix := make([]AttributeAvailability, 0, len(attributes))
	for _, attribute := range attributes {
		entry := AttributeAvailability{
			AttributeID: attribute.ID,
			Values:      make([]ValueAvailability, 0, len(attribute.Values)),
		}
		for _, value := range attribute.Values {
			entry.Values = append(entry.Values, ValueAvailability{
				ValueID:   value.ID,
				Available: IsValueAvailable(variants, selection, attribute.ID, value.ID),
			})
		}
		matrix = append(matrix, entry)
	}
	return matrix
}
