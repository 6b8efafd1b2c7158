package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dronemarket/catalog/pkg/engine"
	"github.com/dronemarket/catalog/pkg/types"
)

var (
	noSearches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_searches_total",
		Help: "The total number of processed searches",
	})
	noFacetQueries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_facet_queries_total",
		Help: "The total number of processed facet queries",
	})
	noDetailViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_detail_views_total",
		Help: "The total number of product detail views",
	})
	noReloads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_reloads_total",
		Help: "The total number of catalog reloads",
	})
)

type errorBody struct {
	Error string `json:"error"`
}

const cacheTtl = time.Minute * 5

// Search computes the visible product list for the requested predicates.
func (ws *WebServer) Search(w http.ResponseWriter, r *http.Request, enc *json.Encoder) error {
	noSearches.Inc()
	sr := &SearchRequest{}
	if err := GetQueryFromRequest(r, sr); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return enc.Encode(errorBody{Error: err.Error()})
	}

	cacheKey := ""
	if ws.Cache != nil && r.Method == http.MethodGet {
		cacheKey = "search:" + r.URL.RawQuery
		cached := &SearchResponse{}
		if err := ws.Cache.Get(cacheKey, cached); err == nil {
			return enc.Encode(cached)
		}
	}

	loaded := ws.Current()
	state := sr.ToFilterState(sr.Sort)
	items, count := engine.ComputeVisible(loaded.Dataset.Products, state, loaded.Dataset)
	resp := &SearchResponse{Count: count, Sort: state.Sort, Items: items}

	if cacheKey != "" {
		if err := ws.Cache.Set(cacheKey, resp, cacheTtl); err != nil {
			log.Printf("failed to cache search response: %v", err)
		}
	}
	return enc.Encode(resp)
}

// Facets returns the filter sidebar for the requested predicates.
func (ws *WebServer) Facets(w http.ResponseWriter, r *http.Request, enc *json.Encoder) error {
	noFacetQueries.Inc()
	fr := &FacetRequest{}
	if err := GetFacetQueryFromRequest(r, fr); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return enc.Encode(errorBody{Error: err.Error()})
	}

	cacheKey := ""
	if ws.Cache != nil && r.Method == http.MethodGet {
		cacheKey = "facets:" + r.URL.RawQuery
		cached := &FacetsResponse{}
		if err := ws.Cache.Get(cacheKey, cached); err == nil {
			return enc.Encode(cached)
		}
	}

	loaded := ws.Current()
	state := fr.ToFilterState("")
	resp := buildFacets(loaded, state)

	if cacheKey != "" {
		if err := ws.Cache.Set(cacheKey, resp, cacheTtl); err != nil {
			log.Printf("failed to cache facets response: %v", err)
		}
	}
	return enc.Encode(resp)
}

// GetProduct serves the detail payload. A missing id segment is the "no
// product selected" state, an unknown id the "not found" state, both
// terminal.
func (ws *WebServer) GetProduct(w http.ResponseWriter, r *http.Request, enc *json.Encoder) error {
	noDetailViews.Inc()
	id := r.PathValue("id")
	if id == "" {
		id = r.URL.Query().Get("id")
	}
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		return enc.Encode(errorBody{Error: types.ErrNoProductSelected.Error()})
	}
	loaded := ws.Current()
	p, err := loaded.Dataset.ProductById(id)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return enc.Encode(errorBody{Error: types.ErrProductNotFound.Error()})
	}
	return enc.Encode(newDetailResponse(loaded.Dataset, p))
}

// TriggerReload refetches the feed and swaps the dataset.
func (ws *WebServer) TriggerReload(w http.ResponseWriter, r *http.Request, enc *json.Encoder) error {
	if err := ws.Reload(r.Context()); err != nil {
		log.Printf("reload failed: %v", err)
		w.WriteHeader(http.StatusBadGateway)
		return enc.Encode(errorBody{Error: err.Error()})
	}
	noReloads.Inc()
	if ws.Cache != nil {
		ws.Cache.Flush()
	}
	loaded := ws.Current()
	return enc.Encode(map[string]int{"products": len(loaded.Dataset.Products)})
}
