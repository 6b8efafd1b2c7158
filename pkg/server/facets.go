package server

import (
	"slices"

	"golang.org/x/text/collate"

	"github.com/dronemarket/catalog/pkg/catalog"
	"github.com/dronemarket/catalog/pkg/engine"
	"github.com/dronemarket/catalog/pkg/facet"
	"github.com/dronemarket/catalog/pkg/types"
)

// buildFacets assembles the filter sidebar for the current selection:
// sources and categories from the dataset, brands by scanning products,
// attribute blocks from the precomputed index when one is loaded, otherwise
// by scanning raw params against the fixed key list.
func buildFacets(loaded *catalog.Loaded, state *types.FilterState) *FacetsResponse {
	data := loaded.Dataset
	coll := engine.NewCollator()

	ret := &FacetsResponse{
		Sources:    make([]SourceOption, 0, len(data.Sources)),
		Categories: categoryOptions(data, coll),
		Brands:     brandOptions(data, coll),
	}
	for _, s := range data.Sources {
		ret.Sources = append(ret.Sources, SourceOption{Id: s.Id, Name: s.Name})
	}

	attrs := engine.ActiveAttributes(state, data)
	if loaded.Facets != nil {
		active := engine.EffectiveCategories(state, data)
		for _, attr := range attrs {
			options := loaded.Facets.Options(attr.Code, active, coll)
			if len(options) == 0 {
				continue
			}
			ret.Attributes = append(ret.Attributes, AttributeBlock{
				Code:    attr.Code,
				Name:    attr.Name,
				Options: options,
			})
		}
		ret.Price = loaded.Facets.PriceBounds(active)
	} else {
		for _, attr := range attrs {
			options := scanOptions(data, coll, func(p *types.Product) (string, bool) {
				return data.AttributeValue(p, attr.Code)
			})
			if len(options) == 0 {
				continue
			}
			ret.Attributes = append(ret.Attributes, AttributeBlock{
				Code:    attr.Code,
				Name:    attr.Name,
				Options: options,
			})
		}
		ret.Price = scanPriceBounds(data)
	}
	return ret
}

func categoryOptions(data *catalog.Dataset, coll *collate.Collator) []CategoryOption {
	if data.HasDescriptors() {
		ret := make([]CategoryOption, 0, len(data.Categories))
		for _, c := range data.Categories {
			ret = append(ret, CategoryOption{Id: c.Id, Name: c.Name})
		}
		return ret
	}
	names := scanOptions(data, coll, func(p *types.Product) (string, bool) {
		return p.Category, p.Category != ""
	})
	ret := make([]CategoryOption, 0, len(names))
	for _, n := range names {
		ret = append(ret, CategoryOption{Id: types.CategoryId(n.Value), Name: n.Value})
	}
	return ret
}

func brandOptions(data *catalog.Dataset, coll *collate.Collator) []facet.ValueCount {
	return scanOptions(data, coll, func(p *types.Product) (string, bool) {
		return data.Brand(p), true
	})
}

func scanOptions(data *catalog.Dataset, coll *collate.Collator, resolve func(*types.Product) (string, bool)) []facet.ValueCount {
	counts := make(map[string]int)
	for _, p := range data.Products {
		if v, ok := resolve(p); ok {
			counts[v]++
		}
	}
	if len(counts) == 0 {
		return nil
	}
	ret := make([]facet.ValueCount, 0, len(counts))
	for value, count := range counts {
		ret = append(ret, facet.ValueCount{Value: value, Count: count})
	}
	slices.SortFunc(ret, func(a, b facet.ValueCount) int {
		return coll.CompareString(a.Value, b.Value)
	})
	return ret
}

func scanPriceBounds(data *catalog.Dataset) facet.PriceRange {
	var bounds facet.PriceRange
	for i, p := range data.Products {
		if i == 0 {
			bounds = facet.PriceRange{Min: p.Price, Max: p.Price}
			continue
		}
		if p.Price < bounds.Min {
			bounds.Min = p.Price
		}
		if p.Price > bounds.Max {
			bounds.Max = p.Price
		}
	}
	return bounds
}
