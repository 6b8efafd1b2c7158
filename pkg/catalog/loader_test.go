package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dronemarket/catalog/pkg/types"
)

const testFeed = `{
	"sources": [{"id": "dronemarket", "name": "ДронМаркет"}],
	"products": [
		{"id": "p1", "name": "Квадрокоптер Альфа", "source": "dronemarket", "category": "Квадрокоптеры", "price": 1000,
			"params": {"Бренд": "DJI", "Класс": "Дрон"}},
		{"id": "p2", "name": "Бастион", "source": "dronemarket", "category": "Промышленные аппараты", "price": 9000,
			"params": {"Класс защиты": "IP67"}}
	]
}`

const testAttributes = `{"attributes": [
	{"code": "brand", "name": "Бренд", "sourceKey": "Бренд", "filterable": true, "order": 1}
]}`

const testCategories = `{"categories": [
	{"id": "cat-a", "name": "Квадрокоптеры", "order": 1, "filterAttributes": ["brand"]}
]}`

const testFacets = `{
	"generatedAt": "2026-08-28",
	"global": {"price": {"min": 1000, "max": 9000}},
	"categories": {"cat-a": {"price": {"min": 1000, "max": 1000},
		"attributes": {"brand": {"values": [{"value": "DJI", "count": 1}]}}}}
}`

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	serve := func(path, body string) {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(body))
		})
	}
	serve("/feed.json", testFeed)
	serve("/attributes.json", testAttributes)
	serve("/categories.json", testCategories)
	serve("/facets.json", testFacets)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadFullCatalog(t *testing.T) {
	srv := testServer(t)
	loaded, err := Load(context.Background(), srv.Client(), Config{
		FeedUrl:       srv.URL + "/feed.json",
		AttributesUrl: srv.URL + "/attributes.json",
		CategoriesUrl: srv.URL + "/categories.json",
		FacetsUrl:     srv.URL + "/facets.json",
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	data := loaded.Dataset
	if len(data.Products) != 2 {
		t.Fatalf("Expected 2 products, got %d", len(data.Products))
	}
	if !data.HasDescriptors() {
		t.Errorf("Expected descriptors to be present")
	}
	if loaded.Facets == nil || loaded.Facets.GeneratedAt != "2026-08-28" {
		t.Errorf("Expected facet index, got %v", loaded.Facets)
	}

	p, err := data.ProductById("p1")
	if err != nil {
		t.Fatalf("ProductById failed: %v", err)
	}
	if p.Name != "Квадрокоптер Альфа" || p.Price != 1000 {
		t.Errorf("Unexpected product: %+v", p)
	}
	if v, ok := p.Params.Get("Класс"); !ok || v != "Дрон" {
		t.Errorf("Params not decoded in order, got %v", p.Params)
	}
}

func TestLoadFeedOnly(t *testing.T) {
	srv := testServer(t)
	loaded, err := Load(context.Background(), srv.Client(), Config{FeedUrl: srv.URL + "/feed.json"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Dataset.HasDescriptors() {
		t.Errorf("Expected legacy mode without descriptor urls")
	}
	if loaded.Facets != nil {
		t.Errorf("Expected no facet index")
	}
}

func TestLoadMissingFeedUrl(t *testing.T) {
	_, err := Load(context.Background(), nil, Config{})
	var loadErr *types.LoadError
	if !errors.As(err, &loadErr) || loadErr.Resource != "feed" {
		t.Fatalf("Expected feed load error, got %v", err)
	}
}

func TestLoadHttpErrorAbortsEverything(t *testing.T) {
	srv := testServer(t)
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusBadGateway)
	}))
	defer broken.Close()

	loaded, err := Load(context.Background(), srv.Client(), Config{
		FeedUrl:       srv.URL + "/feed.json",
		AttributesUrl: broken.URL + "/attributes.json",
	})
	if loaded != nil {
		t.Errorf("Expected nothing on failure")
	}
	var loadErr *types.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("Expected a load error, got %v", err)
	}
	if loadErr.Status != http.StatusBadGateway {
		t.Errorf("Expected status 502, got %d", loadErr.Status)
	}
}

func TestLoadInvalidJson(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer broken.Close()

	_, err := Load(context.Background(), broken.Client(), Config{FeedUrl: broken.URL + "/feed.json"})
	var loadErr *types.LoadError
	if !errors.As(err, &loadErr) || loadErr.Err == nil {
		t.Fatalf("Expected a parse error, got %v", err)
	}
}
