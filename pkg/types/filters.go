package types

// SortMode selects the ordering applied after filtering.
type SortMode string

const (
	SortDefault   SortMode = "default"
	SortPriceAsc  SortMode = "price-asc"
	SortPriceDesc SortMode = "price-desc"
	SortNameAsc   SortMode = "name-asc"
	SortNameDesc  SortMode = "name-desc"
)

// ParseSortMode falls back to feed order for anything it does not know.
func ParseSortMode(v string) SortMode {
	switch SortMode(v) {
	case SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc:
		return SortMode(v)
	}
	return SortDefault
}

// SelectionKind names one of the plain checkbox selection sets.
type SelectionKind string

const (
	SourceSelection   SelectionKind = "source"
	CategorySelection SelectionKind = "category"
	BrandSelection    SelectionKind = "brand"
)

// FilterState is the full set of active predicates for one browsing session.
// Every selection set narrows results only when non empty. Attribute value
// sets are kept even while their attribute is inactive for the current
// category scope so they come back if the user returns to a relevant
// category.
type FilterState struct {
	Sources         map[SourceId]struct{}
	Categories      map[CategoryId]struct{}
	Brands          map[string]struct{}
	AttributeValues map[AttributeCode]map[string]struct{}
	Search          string
	PriceMin        *int
	PriceMax        *int
	Sort            SortMode
}

func NewFilterState() *FilterState {
	return &FilterState{
		Sources:         make(map[SourceId]struct{}),
		Categories:      make(map[CategoryId]struct{}),
		Brands:          make(map[string]struct{}),
		AttributeValues: make(map[AttributeCode]map[string]struct{}),
		Sort:            SortDefault,
	}
}

// Toggle flips membership of value in the named selection set. Unknown set
// names are ignored.
func (f *FilterState) Toggle(kind SelectionKind, value string, checked bool) {
	switch kind {
	case SourceSelection:
		toggle(f.Sources, SourceId(value), checked)
	case CategorySelection:
		toggle(f.Categories, CategoryId(value), checked)
	case BrandSelection:
		toggle(f.Brands, value, checked)
	}
}

// ToggleAttribute flips membership of value in the selected value set of one
// attribute code, creating the set on first use.
func (f *FilterState) ToggleAttribute(code AttributeCode, value string, checked bool) {
	set, ok := f.AttributeValues[code]
	if !ok {
		if !checked {
			return
		}
		set = make(map[string]struct{})
		f.AttributeValues[code] = set
	}
	toggle(set, value, checked)
}

func toggle[K comparable](set map[K]struct{}, value K, checked bool) {
	if checked {
		set[value] = struct{}{}
	} else {
		delete(set, value)
	}
}

func (f *FilterState) SetSearch(query string) {
	f.Search = query
}

func (f *FilterState) SetPriceMin(v *int) {
	f.PriceMin = v
}

func (f *FilterState) SetPriceMax(v *int) {
	f.PriceMax = v
}

func (f *FilterState) SetSort(mode SortMode) {
	f.Sort = mode
}

// Reset clears every selection, the search text, the price bounds and the
// sort mode in one step.
func (f *FilterState) Reset() {
	f.Sources = make(map[SourceId]struct{})
	f.Categories = make(map[CategoryId]struct{})
	f.Brands = make(map[string]struct{})
	f.AttributeValues = make(map[AttributeCode]map[string]struct{})
	f.Search = ""
	f.PriceMin = nil
	f.PriceMax = nil
	f.Sort = SortDefault
}

// IsEmpty reports whether the state constrains nothing, meaning the engine
// returns the full feed in feed order.
func (f *FilterState) IsEmpty() bool {
	if len(f.Sources) > 0 || len(f.Categories) > 0 || len(f.Brands) > 0 {
		return false
	}
	for _, set := range f.AttributeValues {
		if len(set) > 0 {
			return false
		}
	}
	return f.Search == "" && f.PriceMin == nil && f.PriceMax == nil
}

// SelectedAttributeValues returns the value set for a code, nil when nothing
// is selected.
func (f *FilterState) SelectedAttributeValues(code AttributeCode) map[string]struct{} {
	set, ok := f.AttributeValues[code]
	if !ok || len(set) == 0 {
		return nil
	}
	return set
}
