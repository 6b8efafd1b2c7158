package facet

import (
	"testing"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dronemarket/catalog/pkg/types"
)

func testIndex() *Index {
	return &Index{
		GeneratedAt: "2026-08-28",
		Global:      GlobalFacet{Price: PriceRange{Min: 100, Max: 9000}},
		Categories: map[types.CategoryId]*CategoryFacet{
			"cat-a": {
				Price: PriceRange{Min: 500, Max: 3000},
				Attributes: map[types.AttributeCode]AttributeFacet{
					"brand": {Values: []ValueCount{
						{Value: "Autel", Count: 2},
						{Value: "DJI", Count: 5},
					}},
				},
			},
			"cat-b": {
				Price: PriceRange{Min: 200, Max: 8000},
				Attributes: map[types.AttributeCode]AttributeFacet{
					"brand": {Values: []ValueCount{
						{Value: "DJI", Count: 1},
						{Value: "Геоскан", Count: 3},
					}},
				},
			},
		},
	}
}

func TestOptionsAggregatesAcrossCategories(t *testing.T) {
	idx := testIndex()
	coll := collate.New(language.Russian)
	options := idx.Options("brand", []types.CategoryId{"cat-a", "cat-b"}, coll)
	if len(options) != 3 {
		t.Fatalf("Expected 3 options, got %d", len(options))
	}
	// Latin before Cyrillic under the collation.
	if options[0].Value != "Autel" || options[0].Count != 2 {
		t.Errorf("Expected Autel:2 first, got %v", options[0])
	}
	if options[1].Value != "DJI" || options[1].Count != 6 {
		t.Errorf("Expected DJI counts summed to 6, got %v", options[1])
	}
	if options[2].Value != "Геоскан" || options[2].Count != 3 {
		t.Errorf("Expected Геоскан:3 last, got %v", options[2])
	}
}

func TestOptionsSingleCategory(t *testing.T) {
	idx := testIndex()
	coll := collate.New(language.Russian)
	options := idx.Options("brand", []types.CategoryId{"cat-b"}, coll)
	if len(options) != 2 {
		t.Fatalf("Expected 2 options, got %d", len(options))
	}
	if options[0].Value != "DJI" || options[0].Count != 1 {
		t.Errorf("Expected DJI:1, got %v", options[0])
	}
}

func TestOptionsUnknownAttribute(t *testing.T) {
	idx := testIndex()
	coll := collate.New(language.Russian)
	if options := idx.Options("weight", []types.CategoryId{"cat-a", "cat-b"}, coll); options != nil {
		t.Errorf("Expected nil for an attribute without values, got %v", options)
	}
}

func TestPriceBoundsUnion(t *testing.T) {
	idx := testIndex()
	bounds := idx.PriceBounds([]types.CategoryId{"cat-a", "cat-b"})
	if bounds.Min != 200 || bounds.Max != 8000 {
		t.Errorf("Expected union [200 8000], got [%d %d]", bounds.Min, bounds.Max)
	}
}

func TestPriceBoundsSingle(t *testing.T) {
	idx := testIndex()
	bounds := idx.PriceBounds([]types.CategoryId{"cat-a"})
	if bounds.Min != 500 || bounds.Max != 3000 {
		t.Errorf("Expected [500 3000], got [%d %d]", bounds.Min, bounds.Max)
	}
}

func TestPriceBoundsGlobalFallback(t *testing.T) {
	idx := testIndex()
	bounds := idx.PriceBounds([]types.CategoryId{"missing"})
	if bounds.Min != 100 || bounds.Max != 9000 {
		t.Errorf("Expected the global fallback, got [%d %d]", bounds.Min, bounds.Max)
	}
}
