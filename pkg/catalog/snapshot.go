package catalog

import (
	"github.com/dronemarket/catalog/pkg/facet"
	"github.com/dronemarket/catalog/pkg/types"
)

// Snapshot is the persistable raw form of a completed load, enough to
// rebuild the dataset and facet index without refetching anything.
type Snapshot struct {
	Products   []types.Product
	Sources    []types.Source
	Attributes []types.Attribute
	Categories []types.Category
	Facets     *facet.Index
}

// Snapshot extracts the raw resources behind a load.
func (l *Loaded) Snapshot() *Snapshot {
	return &Snapshot{
		Products:   l.Dataset.records,
		Sources:    l.Dataset.Sources,
		Attributes: l.Dataset.Attributes,
		Categories: l.Dataset.Categories,
		Facets:     l.Facets,
	}
}

// FromSnapshot rebuilds a load result, lookups included, from persisted raw
// resources.
func FromSnapshot(s *Snapshot) *Loaded {
	feed := &feedPayload{Products: s.Products, Sources: s.Sources}
	return &Loaded{
		Dataset: newDataset(feed, s.Attributes, s.Categories),
		Facets:  s.Facets,
	}
}
