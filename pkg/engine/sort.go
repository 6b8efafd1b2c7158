package engine

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dronemarket/catalog/pkg/types"
)

// NewCollator returns a collator for the catalog locale. Collators carry
// internal buffers and must not be shared between goroutines.
func NewCollator() *collate.Collator {
	return collate.New(language.Russian)
}

// SortProducts returns the list rearranged by the sort mode. Default keeps
// feed order. The input slice is left untouched, ties keep their relative
// order.
func SortProducts(list []*types.Product, mode types.SortMode) []*types.Product {
	sorted := slices.Clone(list)
	switch mode {
	case types.SortPriceAsc:
		slices.SortStableFunc(sorted, func(a, b *types.Product) int {
			return a.Price - b.Price
		})
	case types.SortPriceDesc:
		slices.SortStableFunc(sorted, func(a, b *types.Product) int {
			return b.Price - a.Price
		})
	case types.SortNameAsc:
		coll := NewCollator()
		slices.SortStableFunc(sorted, func(a, b *types.Product) int {
			return coll.CompareString(a.Name, b.Name)
		})
	case types.SortNameDesc:
		coll := NewCollator()
		slices.SortStableFunc(sorted, func(a, b *types.Product) int {
			return coll.CompareString(b.Name, a.Name)
		})
	}
	return sorted
}
