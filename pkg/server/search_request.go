package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/schema"

	"github.com/dronemarket/catalog/pkg/types"
)

// FacetRequest carries every predicate of a filter state. In query form the
// plain selections repeat (`source=ozon&source=wb`), attribute value
// filters use the compact `attr=code:value` syntax.
type FacetRequest struct {
	Query      string              `json:"query" schema:"query"`
	Sources    []string            `json:"sources" schema:"source"`
	Categories []string            `json:"categories" schema:"category"`
	Brands     []string            `json:"brands" schema:"brand"`
	PriceMin   *int                `json:"priceMin" schema:"priceMin"`
	PriceMax   *int                `json:"priceMax" schema:"priceMax"`
	Attributes map[string][]string `json:"attributes" schema:"-"`
}

type SearchRequest struct {
	FacetRequest
	Sort string `json:"sort" schema:"sort,default:default"`
}

func GetQueryFromRequest(r *http.Request, searchRequest *SearchRequest) error {
	if r.Method == http.MethodGet {
		return queryFromRequestQuery(r.URL.Query(), searchRequest)
	}
	return json.NewDecoder(r.Body).Decode(searchRequest)
}

func GetFacetQueryFromRequest(r *http.Request, facetRequest *FacetRequest) error {
	if r.Method == http.MethodGet {
		return facetQueryFromRequestQuery(r.URL.Query(), facetRequest)
	}
	return json.NewDecoder(r.Body).Decode(facetRequest)
}

func decodeAttributeFilters(query url.Values, result *FacetRequest) {
	for _, v := range query["attr"] {
		code, value, ok := strings.Cut(v, ":")
		if !ok || code == "" || value == "" {
			continue
		}
		if result.Attributes == nil {
			result.Attributes = make(map[string][]string)
		}
		result.Attributes[code] = append(result.Attributes[code], value)
	}
}

func facetQueryFromRequestQuery(query url.Values, result *FacetRequest) error {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	if err := decoder.Decode(result, query); err != nil {
		return err
	}
	decodeAttributeFilters(query, result)
	return nil
}

func queryFromRequestQuery(query url.Values, result *SearchRequest) error {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	if err := decoder.Decode(result, query); err != nil {
		return err
	}
	decodeAttributeFilters(query, &result.FacetRequest)
	return nil
}

// ToFilterState materializes the request into a filter state the engine
// understands.
func (fr *FacetRequest) ToFilterState(sort string) *types.FilterState {
	state := types.NewFilterState()
	for _, v := range fr.Sources {
		state.Toggle(types.SourceSelection, v, true)
	}
	for _, v := range fr.Categories {
		state.Toggle(types.CategorySelection, v, true)
	}
	for _, v := range fr.Brands {
		state.Toggle(types.BrandSelection, v, true)
	}
	for code, values := range fr.Attributes {
		for _, v := range values {
			state.ToggleAttribute(types.AttributeCode(code), v, true)
		}
	}
	state.SetSearch(strings.TrimSpace(fr.Query))
	state.SetPriceMin(fr.PriceMin)
	state.SetPriceMax(fr.PriceMax)
	state.SetSort(types.ParseSortMode(sort))
	return state
}
