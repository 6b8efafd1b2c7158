package facet

import (
	"github.com/dronemarket/catalog/pkg/types"
)

// PriceRange is an inclusive price span in whole currency units.
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ValueCount is one facet option: a value and how many products in scope
// hold it.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type AttributeFacet struct {
	Values []ValueCount `json:"values"`
}

type CategoryFacet struct {
	Price      PriceRange                             `json:"price"`
	Attributes map[types.AttributeCode]AttributeFacet `json:"attributes"`
}

type GlobalFacet struct {
	Price PriceRange `json:"price"`
}

// Index is the precomputed facet index: per category price bounds and
// attribute value counts, plus a global price fallback. It is built offline
// and only queried at runtime, never mutated.
type Index struct {
	GeneratedAt string                              `json:"generatedAt,omitempty"`
	Global      GlobalFacet                         `json:"global"`
	Categories  map[types.CategoryId]*CategoryFacet `json:"categories"`
}
