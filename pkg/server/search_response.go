package server

import (
	"github.com/dronemarket/catalog/pkg/catalog"
	"github.com/dronemarket/catalog/pkg/facet"
	"github.com/dronemarket/catalog/pkg/types"
)

// SearchResponse is the visible product list: post filter, post sort, count
// equals the list length.
type SearchResponse struct {
	Count int              `json:"count"`
	Sort  types.SortMode   `json:"sort"`
	Items []*types.Product `json:"items"`
}

type SourceOption struct {
	Id   types.SourceId `json:"id"`
	Name string         `json:"name"`
}

type CategoryOption struct {
	Id   types.CategoryId `json:"id"`
	Name string           `json:"name"`
}

// AttributeBlock is one rendered filter group: the attribute and its
// options with counts for the current category scope.
type AttributeBlock struct {
	Code    types.AttributeCode `json:"code"`
	Name    string              `json:"name"`
	Options []facet.ValueCount  `json:"options"`
}

// FacetsResponse carries everything the filter sidebar renders.
type FacetsResponse struct {
	Sources    []SourceOption     `json:"sources"`
	Categories []CategoryOption   `json:"categories"`
	Brands     []facet.ValueCount `json:"brands"`
	Attributes []AttributeBlock   `json:"attributes"`
	Price      facet.PriceRange   `json:"price"`
}

// DetailResponse is the product page payload. Image may be empty, the
// renderer owns the fallback asset.
type DetailResponse struct {
	Product *types.Product `json:"product"`
	Source  *types.Source  `json:"source,omitempty"`
}

// SessionResponse pairs a session id with the result computed from its
// freshly committed state.
type SessionResponse struct {
	SessionId string          `json:"sessionId"`
	Result    *SearchResponse `json:"result"`
}

func newDetailResponse(data *catalog.Dataset, p *types.Product) *DetailResponse {
	ret := &DetailResponse{Product: p}
	if s, ok := data.SourceById(p.Source); ok {
		ret.Source = s
	}
	return ret
}
