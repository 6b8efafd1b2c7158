package facet

import (
	"slices"

	"golang.org/x/text/collate"

	"github.com/dronemarket/catalog/pkg/types"
)

// Options aggregates the displayed option list for one attribute over the
// active categories. The same value accumulates across categories, the
// result is sorted by value in locale ascending order.
func (i *Index) Options(code types.AttributeCode, activeCategories []types.CategoryId, coll *collate.Collator) []ValueCount {
	counts := make(map[string]int)
	for _, id := range activeCategories {
		cf, ok := i.Categories[id]
		if !ok {
			continue
		}
		af, ok := cf.Attributes[code]
		if !ok {
			continue
		}
		for _, vc := range af.Values {
			counts[vc.Value] += vc.Count
		}
	}
	if len(counts) == 0 {
		return nil
	}
	ret := make([]ValueCount, 0, len(counts))
	for value, count := range counts {
		ret = append(ret, ValueCount{Value: value, Count: count})
	}
	slices.SortFunc(ret, func(a, b ValueCount) int {
		return coll.CompareString(a.Value, b.Value)
	})
	return ret
}

// PriceBounds is the union of the active categories' price spans, min of
// mins and max of maxes, or the global fallback when no active category has
// a price facet.
func (i *Index) PriceBounds(activeCategories []types.CategoryId) PriceRange {
	var bounds PriceRange
	found := false
	for _, id := range activeCategories {
		cf, ok := i.Categories[id]
		if !ok {
			continue
		}
		if !found {
			bounds = cf.Price
			found = true
			continue
		}
		if cf.Price.Min < bounds.Min {
			bounds.Min = cf.Price.Min
		}
		if cf.Price.Max > bounds.Max {
			bounds.Max = cf.Price.Max
		}
	}
	if !found {
		return i.Global.Price
	}
	return bounds
}
