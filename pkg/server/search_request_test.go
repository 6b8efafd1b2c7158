package server

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dronemarket/catalog/pkg/types"
)

func TestParseQueryValues(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/search?query=дрон&source=dronemarket&source=aviashop&category=cat-a&brand=DJI&priceMin=500&priceMax=5000&attr=brand:DJI&attr=protection:IP67&sort=price-desc", nil)
	sr := &SearchRequest{}
	if err := GetQueryFromRequest(r, sr); err != nil {
		t.Fatalf("Failed to parse query: %v", err)
	}
	if sr.Query != "дрон" {
		t.Errorf("Expected query дрон, got %s", sr.Query)
	}
	if len(sr.Sources) != 2 || sr.Sources[0] != "dronemarket" || sr.Sources[1] != "aviashop" {
		t.Errorf("Expected repeated sources, got %v", sr.Sources)
	}
	if len(sr.Categories) != 1 || sr.Categories[0] != "cat-a" {
		t.Errorf("Expected category cat-a, got %v", sr.Categories)
	}
	if len(sr.Brands) != 1 || sr.Brands[0] != "DJI" {
		t.Errorf("Expected brand DJI, got %v", sr.Brands)
	}
	if sr.PriceMin == nil || *sr.PriceMin != 500 || sr.PriceMax == nil || *sr.PriceMax != 5000 {
		t.Errorf("Expected price bounds 500/5000, got %v/%v", sr.PriceMin, sr.PriceMax)
	}
	if len(sr.Attributes) != 2 {
		t.Fatalf("Expected 2 attribute filters, got %v", sr.Attributes)
	}
	if v := sr.Attributes["brand"]; len(v) != 1 || v[0] != "DJI" {
		t.Errorf("Expected brand:DJI, got %v", v)
	}
	if sr.Sort != "price-desc" {
		t.Errorf("Expected sort price-desc, got %s", sr.Sort)
	}
}

func TestParseQueryDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/search", nil)
	sr := &SearchRequest{}
	if err := GetQueryFromRequest(r, sr); err != nil {
		t.Fatalf("Failed to parse query: %v", err)
	}
	if sr.Sort != "default" {
		t.Errorf("Expected default sort, got %s", sr.Sort)
	}
	if sr.PriceMin != nil || sr.PriceMax != nil {
		t.Errorf("Expected unset price bounds")
	}
	if len(sr.Attributes) != 0 {
		t.Errorf("Expected no attribute filters, got %v", sr.Attributes)
	}
}

func TestParseQueryIgnoresUnknownAndMalformed(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/search?bogus=1&attr=novalue&attr=:x&attr=code:", nil)
	sr := &SearchRequest{}
	if err := GetQueryFromRequest(r, sr); err != nil {
		t.Fatalf("Failed to parse query: %v", err)
	}
	if len(sr.Attributes) != 0 {
		t.Errorf("Expected malformed attr pairs to be dropped, got %v", sr.Attributes)
	}
}

func TestParseJsonBody(t *testing.T) {
	body := `{"query": "дрон", "sources": ["dronemarket"], "attributes": {"brand": ["DJI"]}, "sort": "name-asc"}`
	r := httptest.NewRequest("POST", "/api/search", strings.NewReader(body))
	sr := &SearchRequest{}
	if err := GetQueryFromRequest(r, sr); err != nil {
		t.Fatalf("Failed to parse body: %v", err)
	}
	if sr.Query != "дрон" || len(sr.Sources) != 1 || sr.Sort != "name-asc" {
		t.Errorf("Unexpected request: %+v", sr)
	}
	if v := sr.Attributes["brand"]; len(v) != 1 || v[0] != "DJI" {
		t.Errorf("Expected brand:DJI, got %v", v)
	}
}

func TestToFilterState(t *testing.T) {
	fr := &FacetRequest{
		Query:      "  дрон  ",
		Sources:    []string{"dronemarket"},
		Attributes: map[string][]string{"brand": {"DJI", "Autel"}},
	}
	state := fr.ToFilterState("price-asc")
	if state.Search != "дрон" {
		t.Errorf("Expected trimmed search, got %q", state.Search)
	}
	if _, ok := state.Sources["dronemarket"]; !ok {
		t.Errorf("Expected source selected")
	}
	if set := state.SelectedAttributeValues("brand"); len(set) != 2 {
		t.Errorf("Expected two brand values, got %v", set)
	}
	if state.Sort != types.SortPriceAsc {
		t.Errorf("Expected price-asc, got %s", state.Sort)
	}
	if state.IsEmpty() {
		t.Errorf("Expected constrained state")
	}
}
