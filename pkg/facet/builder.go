package facet

import (
	"slices"
	"time"

	"github.com/dronemarket/catalog/pkg/types"
)

// Build computes a facet index from raw catalog resources. This is the
// offline step feeding the static facets resource: category price bounds
// come from the products resolved into each category, attribute value
// counts only cover the filter attributes each category declares.
// Attributes without a known descriptor or without a source key are
// skipped, attributes with no values in a category are omitted.
func Build(products []types.Product, attributes []types.Attribute, categories []types.Category, now time.Time) *Index {
	attributeByCode := make(map[types.AttributeCode]*types.Attribute, len(attributes))
	for i := range attributes {
		attributeByCode[attributes[i].Code] = &attributes[i]
	}
	categoryIdByName := make(map[string]types.CategoryId, len(categories))
	for _, c := range categories {
		categoryIdByName[c.Name] = c.Id
	}

	idx := &Index{
		GeneratedAt: now.Format("2006-01-02"),
		Categories:  make(map[types.CategoryId]*CategoryFacet, len(categories)),
	}
	for i := range products {
		price := products[i].Price
		if i == 0 {
			idx.Global.Price = PriceRange{Min: price, Max: price}
			continue
		}
		if price < idx.Global.Price.Min {
			idx.Global.Price.Min = price
		}
		if price > idx.Global.Price.Max {
			idx.Global.Price.Max = price
		}
	}

	for _, category := range categories {
		scoped := make([]*types.Product, 0)
		for i := range products {
			if categoryIdByName[products[i].Category] == category.Id {
				scoped = append(scoped, &products[i])
			}
		}

		cf := &CategoryFacet{
			Attributes: make(map[types.AttributeCode]AttributeFacet),
		}
		for i, p := range scoped {
			if i == 0 {
				cf.Price = PriceRange{Min: p.Price, Max: p.Price}
				continue
			}
			if p.Price < cf.Price.Min {
				cf.Price.Min = p.Price
			}
			if p.Price > cf.Price.Max {
				cf.Price.Max = p.Price
			}
		}

		for _, code := range category.FilterAttributes {
			attr, ok := attributeByCode[code]
			if !ok || attr.SourceKey == "" {
				continue
			}
			counts := make(map[string]int)
			for _, p := range scoped {
				if v, ok := p.Params.Get(attr.SourceKey); ok && v != "" {
					counts[v]++
				}
			}
			if len(counts) == 0 {
				continue
			}
			values := make([]ValueCount, 0, len(counts))
			for value, count := range counts {
				values = append(values, ValueCount{Value: value, Count: count})
			}
			slices.SortFunc(values, func(a, b ValueCount) int {
				if a.Value < b.Value {
					return -1
				}
				if a.Value > b.Value {
					return 1
				}
				return 0
			})
			cf.Attributes[code] = AttributeFacet{Values: values}
		}

		idx.Categories[category.Id] = cf
	}
	return idx
}
