package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/dronemarket/catalog/pkg/catalog"
	"github.com/dronemarket/catalog/pkg/facet"
)

var feedPath = flag.String("feed", "data/catalog-feed.json", "path to catalog feed JSON")
var attributesPath = flag.String("attributes", "data/attributes.json", "path to attributes JSON")
var categoriesPath = flag.String("categories", "data/categories.json", "path to categories JSON")
var outPath = flag.String("out", "data/facets.json", "output facets JSON path")

func main() {
	flag.Parse()

	loaded, err := catalog.LoadFiles(catalog.FileConfig{
		FeedPath:       *feedPath,
		AttributesPath: *attributesPath,
		CategoriesPath: *categoriesPath,
	})
	if err != nil {
		log.Fatalf("Failed to load resources: %v", err)
	}

	snapshot := loaded.Snapshot()
	idx := facet.Build(snapshot.Products, snapshot.Attributes, snapshot.Categories, time.Now())

	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode facets: %v", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(*outPath, data, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", *outPath, err)
	}
	log.Printf("Generated %s", *outPath)
}
