package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/dronemarket/catalog/pkg/common/jsoncompat"
	"github.com/dronemarket/catalog/pkg/facet"
	"github.com/dronemarket/catalog/pkg/types"
)

// Config points at the static catalog resources. Only the feed is
// mandatory, the descriptor and facet resources enable the faceted mode
// when present.
type Config struct {
	FeedUrl       string
	AttributesUrl string
	CategoriesUrl string
	FacetsUrl     string
}

// FileConfig is the local file counterpart used by the offline tooling.
type FileConfig struct {
	FeedPath       string
	AttributesPath string
	CategoriesPath string
	FacetsPath     string
}

// Loaded bundles everything one load produced. Facets is nil when no facet
// resource was configured.
type Loaded struct {
	Dataset *Dataset
	Facets  *facet.Index
}

type feedPayload struct {
	Products []types.Product `json:"products"`
	Sources  []types.Source  `json:"sources"`
}

type attributesPayload struct {
	Attributes []types.Attribute `json:"attributes"`
}

type categoriesPayload struct {
	Categories []types.Category `json:"categories"`
}

// Load fetches every configured resource in parallel and normalizes the
// result. Any failure aborts the whole load, nothing is partially
// populated.
func Load(ctx context.Context, client *http.Client, cfg Config) (*Loaded, error) {
	if cfg.FeedUrl == "" {
		return nil, &types.LoadError{Resource: "feed", Err: fmt.Errorf("no feed url configured")}
	}
	if client == nil {
		client = http.DefaultClient
	}

	var (
		feed       feedPayload
		attributes attributesPayload
		categories categoriesPayload
		facets     facet.Index
		hasFacets  bool
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return fetchJson(ctx, client, cfg.FeedUrl, &feed)
	})
	if cfg.AttributesUrl != "" {
		g.Go(func() error {
			return fetchJson(ctx, client, cfg.AttributesUrl, &attributes)
		})
	}
	if cfg.CategoriesUrl != "" {
		g.Go(func() error {
			return fetchJson(ctx, client, cfg.CategoriesUrl, &categories)
		})
	}
	if cfg.FacetsUrl != "" {
		hasFacets = true
		g.Go(func() error {
			return fetchJson(ctx, client, cfg.FacetsUrl, &facets)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	loaded := &Loaded{
		Dataset: newDataset(&feed, attributes.Attributes, categories.Categories),
	}
	if hasFacets {
		loaded.Facets = &facets
	}
	return loaded, nil
}

// LoadFiles reads the same resources from local JSON files.
func LoadFiles(cfg FileConfig) (*Loaded, error) {
	if cfg.FeedPath == "" {
		return nil, &types.LoadError{Resource: "feed", Err: fmt.Errorf("no feed path configured")}
	}
	var feed feedPayload
	if err := readJsonFile(cfg.FeedPath, &feed); err != nil {
		return nil, err
	}
	var attributes attributesPayload
	if cfg.AttributesPath != "" {
		if err := readJsonFile(cfg.AttributesPath, &attributes); err != nil {
			return nil, err
		}
	}
	var categories categoriesPayload
	if cfg.CategoriesPath != "" {
		if err := readJsonFile(cfg.CategoriesPath, &categories); err != nil {
			return nil, err
		}
	}
	loaded := &Loaded{
		Dataset: newDataset(&feed, attributes.Attributes, categories.Categories),
	}
	if cfg.FacetsPath != "" {
		var facets facet.Index
		if err := readJsonFile(cfg.FacetsPath, &facets); err != nil {
			return nil, err
		}
		loaded.Facets = &facets
	}
	return loaded, nil
}

func fetchJson(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &types.LoadError{Resource: url, Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return &types.LoadError{Resource: url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &types.LoadError{Resource: url, Status: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &types.LoadError{Resource: url, Err: err}
	}
	return nil
}

func readJsonFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &types.LoadError{Resource: path, Err: err}
	}
	if err := jsoncompat.Unmarshal(data, out); err != nil {
		return &types.LoadError{Resource: path, Err: err}
	}
	return nil
}
