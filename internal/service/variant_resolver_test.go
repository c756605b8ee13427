package service

import (
	"reflect"
	"testing"

	"github.com/linea-next/internal/models"
)

const (
	attrColor = uint(1)
	attrSize  = uint(2)

	valueRed  = uint(10)
	valueBlue = uint(11)
	valueS    = uint(20)
	valueM    = uint(21)
)

func testVariants() []models.ProductVariant {
	return []models.ProductVariant{
		{
			ID: 101, ProductID: 1, SKUCode: "TEE-RED-S", StockQty: 0, IsActive: true,
			AttributeValues: models.VariantAttributeRefs{
				{AttributeID: attrColor, ValueID: valueRed},
				{AttributeID: attrSize, ValueID: valueS},
			},
		},
		{
			ID: 102, ProductID: 1, SKUCode: "TEE-RED-M", StockQty: 12, IsActive: true,
			AttributeValues: models.VariantAttributeRefs{
				{AttributeID: attrColor, ValueID: valueRed},
				{AttributeID: attrSize, ValueID: valueM},
			},
		},
		{
			ID: 103, ProductID: 1, SKUCode: "TEE-BLUE-M", StockQty: 8, IsActive: false,
			AttributeValues: models.VariantAttributeRefs{
				{AttributeID: attrColor, ValueID: valueBlue},
				{AttributeID: attrSize, ValueID: valueM},
			},
		},
	}
}

func TestFindMatchingVariantSetEquality(t *testing.T) {
	variants := testVariants()

	// 选择顺序与签名存储顺序无关
	matched := FindMatchingVariant(variants, Selection{attrSize: valueM, attrColor: valueRed})
	if matched == nil || matched.ID != 102 {
		t.Fatalf("expected variant 102, got %+v", matched)
	}

	// 部分选择不命中
	if v := FindMatchingVariant(variants, Selection{attrColor: valueRed}); v != nil {
		t.Fatalf("partial selection should not match, got %+v", v)
	}

	// 超集选择不命中
	superset := Selection{attrColor: valueRed, attrSize: valueM, 99: 990}
	if v := FindMatchingVariant(variants, superset); v != nil {
		t.Fatalf("superset selection should not match, got %+v", v)
	}

	// 空选择不命中
	if v := FindMatchingVariant(variants, Selection{}); v != nil {
		t.Fatalf("empty selection should not match, got %+v", v)
	}
}

func TestFindMatchingVariantDuplicateSignature(t *testing.T) {
	refs := models.VariantAttributeRefs{
		{AttributeID: attrColor, ValueID: valueRed},
		{AttributeID: attrSize, ValueID: valueM},
	}
	variants := []models.ProductVariant{
		{ID: 201, ProductID: 1, AttributeValues: refs},
		{ID: 202, ProductID: 1, AttributeValues: refs},
	}

	matched := FindMatchingVariant(variants, Selection{attrColor: valueRed, attrSize: valueM})
	if matched == nil || matched.ID != 201 {
		t.Fatalf("expected first matching variant 201, got %+v", matched)
	}
}

func TestIsValueAvailable(t *testing.T) {
	variants := testVariants()

	// 已选红色：M 有库存可用，S 库存为零不可用
	selection := Selection{attrColor: valueRed}
	if !IsValueAvailable(variants, selection, attrSize, valueM) {
		t.Fatalf("size M should be available for red")
	}
	if IsValueAvailable(variants, selection, attrSize, valueS) {
		t.Fatalf("size S should be unavailable for red (no stock)")
	}

	// 已选 M 码：蓝色规格已下架不可用
	selection = Selection{attrSize: valueM}
	if !IsValueAvailable(variants, selection, attrColor, valueRed) {
		t.Fatalf("red should be available for size M")
	}
	if IsValueAvailable(variants, selection, attrColor, valueBlue) {
		t.Fatalf("blue should be unavailable for size M (inactive)")
	}

	// 候选值覆盖同属性的已有选择
	selection = Selection{attrColor: valueBlue, attrSize: valueM}
	if !IsValueAvailable(variants, selection, attrColor, valueRed) {
		t.Fatalf("candidate red should override selected blue")
	}
}

func testAttributes() []models.Attribute {
	return []models.Attribute{
		{
			ID: attrColor, Name: "颜色", Code: "color",
			Values: []models.AttributeValue{
				{ID: valueRed, AttributeID: attrColor, Value: "red"},
				{ID: valueBlue, AttributeID: attrColor, Value: "blue"},
			},
		},
		{
			ID: attrSize, Name: "尺码", Code: "size",
			Values: []models.AttributeValue{
				{ID: valueS, AttributeID: attrSize, Value: "s"},
				{ID: valueM, AttributeID: attrSize, Value: "m"},
			},
		},
	}
}

func TestBuildAvailabilityMatrix(t *testing.T) {
	matrix := BuildAvailabilityMatrix(testAttributes(), testVariants(), Selection{attrColor: valueRed})
	if len(matrix) != 2 {
		t.Fatalf("expected 2 attribute entries, got %d", len(matrix))
	}

	got := make(map[uint]map[uint]bool)
	for _, entry := range matrix {
		got[entry.AttributeID] = make(map[uint]bool)
		for _, value := range entry.Values {
			got[entry.AttributeID][value.ValueID] = value.Available
		}
	}

	if !got[attrColor][valueRed] {
		t.Fatalf("red should stay available")
	}
	if got[attrColor][valueBlue] {
		t.Fatalf("blue should be unavailable (only variant inactive)")
	}
	if got[attrSize][valueS] {
		t.Fatalf("size S should be unavailable under red (no stock)")
	}
	if !got[attrSize][valueM] {
		t.Fatalf("size M should be available under red")
	}
}

func TestIsValueAvailableDoesNotMutateSelection(t *testing.T) {
	variants := testVariants()
	selection := Selection{attrColor: valueBlue, attrSize: valueM}

	// 候选值覆盖同属性已有选择，但只作用于内部副本
	first := IsValueAvailable(variants, selection, attrColor, valueRed)
	second := IsValueAvailable(variants, selection, attrColor, valueRed)
	if first != second {
		t.Fatalf("repeated calls disagree: %v then %v", first, second)
	}
	if !reflect.DeepEqual(selection, Selection{attrColor: valueBlue, attrSize: valueM}) {
		t.Fatalf("selection mutated: %v", selection)
	}
}

func TestAvailabilityRoundTrip(t *testing.T) {
	attributes := testAttributes()
	variants := testVariants()

	before := BuildAvailabilityMatrix(attributes, variants, Selection{attrSize: valueM})

	// 选中再取消一个颜色后，其余属性的可用性与选中前一致
	selection := Selection{attrSize: valueM}
	selection[attrColor] = valueRed
	delete(selection, attrColor)

	if !reflect.DeepEqual(selection, Selection{attrSize: valueM}) {
		t.Fatalf("selection did not round-trip: %v", selection)
	}
	after := BuildAvailabilityMatrix(attributes, variants, selection)
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("availability changed after select+deselect:\nbefore=%+v\nafter=%+v", before, after)
	}
}
