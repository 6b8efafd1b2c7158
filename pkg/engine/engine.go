package engine

import (
	"strings"

	"github.com/dronemarket/catalog/pkg/catalog"
	"github.com/dronemarket/catalog/pkg/types"
)

// ComputeVisible applies the filter state over the given products and
// returns the ordered visible list together with its count. Every active
// clause must pass, empty selection sets constrain nothing. The input slice
// and its records are never mutated.
func ComputeVisible(products []*types.Product, state *types.FilterState, data *catalog.Dataset) ([]*types.Product, int) {
	active := activeCodes(state, data)
	query := strings.ToLower(strings.TrimSpace(state.Search))

	visible := make([]*types.Product, 0, len(products))
	for _, p := range products {
		if matches(p, state, data, active, query) {
			visible = append(visible, p)
		}
	}
	visible = SortProducts(visible, state.Sort)
	return visible, len(visible)
}

func matches(p *types.Product, state *types.FilterState, data *catalog.Dataset, active map[types.AttributeCode]struct{}, query string) bool {
	if len(state.Sources) > 0 {
		if _, ok := state.Sources[p.Source]; !ok {
			return false
		}
	}
	if len(state.Categories) > 0 {
		if _, ok := state.Categories[data.ProductCategoryId(p)]; !ok {
			return false
		}
	}
	if len(state.Brands) > 0 {
		if _, ok := state.Brands[data.Brand(p)]; !ok {
			return false
		}
	}
	if state.PriceMin != nil && p.Price < *state.PriceMin {
		return false
	}
	if state.PriceMax != nil && p.Price > *state.PriceMax {
		return false
	}
	if query != "" && !strings.Contains(Haystack(p, data), query) {
		return false
	}
	for code, selected := range state.AttributeValues {
		if len(selected) == 0 {
			continue
		}
		// Selections for attributes outside the active category scope stay
		// in state but must not constrain the result.
		if _, ok := active[code]; !ok {
			continue
		}
		value, ok := data.AttributeValue(p, code)
		if !ok {
			return false
		}
		if _, ok := selected[value]; !ok {
			return false
		}
	}
	return true
}

// Haystack builds the lower cased search text of one product: name, sku,
// category display name, resolved source name and every `key value` param
// pair. Search is plain substring containment over this text.
func Haystack(p *types.Product, data *catalog.Dataset) string {
	var b strings.Builder
	b.WriteString(p.Name)
	b.WriteByte(' ')
	b.WriteString(p.Sku)
	b.WriteByte(' ')
	b.WriteString(p.Category)
	b.WriteByte(' ')
	b.WriteString(data.SourceName(p.Source))
	for _, kv := range p.Params {
		b.WriteByte(' ')
		b.WriteString(kv.Key)
		b.WriteByte(' ')
		b.WriteString(kv.Value)
	}
	return strings.ToLower(b.String())
}

// ActiveAttributes resolves which filterable attributes apply to the current
// category scope: the union, over the selected categories (or all known
// categories when none is selected), of each category's declared filter
// attributes, restricted to attributes flagged filterable. In legacy mode
// the fixed facet key list stands in for descriptors and every key is
// active.
func ActiveAttributes(state *types.FilterState, data *catalog.Dataset) []types.Attribute {
	if !data.HasDescriptors() {
		ret := make([]types.Attribute, 0, len(types.DefaultFacetParamKeys))
		for i, key := range types.DefaultFacetParamKeys {
			ret = append(ret, types.Attribute{
				Code:       types.AttributeCode(key),
				Name:       key,
				SourceKey:  key,
				Filterable: true,
				Order:      i,
			})
		}
		return ret
	}

	union := make(map[types.AttributeCode]struct{})
	addCategory := func(c *types.Category) {
		for _, code := range c.FilterAttributes {
			union[code] = struct{}{}
		}
	}
	if len(state.Categories) > 0 {
		for id := range state.Categories {
			if c, ok := data.CategoryById(id); ok {
				addCategory(c)
			}
		}
	} else {
		for i := range data.Categories {
			addCategory(&data.Categories[i])
		}
	}

	// Dataset attributes are already ordered by their display order.
	ret := make([]types.Attribute, 0, len(union))
	for _, attr := range data.Attributes {
		if !attr.Filterable {
			continue
		}
		if _, ok := union[attr.Code]; ok {
			ret = append(ret, attr)
		}
	}
	return ret
}

// EffectiveCategories is the current filtering scope: the selected category
// ids, or every known category when none is selected.
func EffectiveCategories(state *types.FilterState, data *catalog.Dataset) []types.CategoryId {
	if len(state.Categories) > 0 {
		ret := make([]types.CategoryId, 0, len(state.Categories))
		for _, c := range data.Categories {
			if _, ok := state.Categories[c.Id]; ok {
				ret = append(ret, c.Id)
			}
		}
		return ret
	}
	ret := make([]types.CategoryId, 0, len(data.Categories))
	for _, c := range data.Categories {
		ret = append(ret, c.Id)
	}
	return ret
}

func activeCodes(state *types.FilterState, data *catalog.Dataset) map[types.AttributeCode]struct{} {
	attrs := ActiveAttributes(state, data)
	ret := make(map[types.AttributeCode]struct{}, len(attrs))
	for _, a := range attrs {
		ret[a.Code] = struct{}{}
	}
	return ret
}
