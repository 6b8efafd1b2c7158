package catalog

import (
	"slices"

	"github.com/dronemarket/catalog/pkg/types"
)

// Dataset is the normalized, read only view of all loaded catalog
// resources. Lookups are built once by the loader, nothing here mutates
// after that.
type Dataset struct {
	Products   []*types.Product
	Sources    []types.Source
	Attributes []types.Attribute
	Categories []types.Category

	records          []types.Product
	sourceById       map[types.SourceId]*types.Source
	attributeByCode  map[types.AttributeCode]*types.Attribute
	categoryById     map[types.CategoryId]*types.Category
	categoryIdByName map[string]types.CategoryId
	productById      map[string]*types.Product
}

func newDataset(feed *feedPayload, attributes []types.Attribute, categories []types.Category) *Dataset {
	d := &Dataset{
		Products:         make([]*types.Product, 0, len(feed.Products)),
		Sources:          feed.Sources,
		Attributes:       attributes,
		Categories:       categories,
		records:          feed.Products,
		sourceById:       make(map[types.SourceId]*types.Source, len(feed.Sources)),
		attributeByCode:  make(map[types.AttributeCode]*types.Attribute, len(attributes)),
		categoryById:     make(map[types.CategoryId]*types.Category, len(categories)),
		categoryIdByName: make(map[string]types.CategoryId, len(categories)),
		productById:      make(map[string]*types.Product, len(feed.Products)),
	}
	for i := range d.records {
		p := &d.records[i]
		d.Products = append(d.Products, p)
		d.productById[p.Id] = p
	}
	for i := range d.Sources {
		d.sourceById[d.Sources[i].Id] = &d.Sources[i]
	}
	slices.SortStableFunc(d.Attributes, func(a, b types.Attribute) int {
		return a.Order - b.Order
	})
	for i := range d.Attributes {
		d.attributeByCode[d.Attributes[i].Code] = &d.Attributes[i]
	}
	slices.SortStableFunc(d.Categories, func(a, b types.Category) int {
		return a.Order - b.Order
	})
	for i := range d.Categories {
		c := &d.Categories[i]
		d.categoryById[c.Id] = c
		d.categoryIdByName[c.Name] = c.Id
	}
	return d
}

// HasDescriptors reports whether attribute and category descriptors were
// loaded. Without them the catalog runs in the legacy mode that scans raw
// params against the fixed facet key list.
func (d *Dataset) HasDescriptors() bool {
	return len(d.Attributes) > 0 || len(d.Categories) > 0
}

func (d *Dataset) ProductById(id string) (*types.Product, error) {
	if p, ok := d.productById[id]; ok {
		return p, nil
	}
	return nil, types.ErrProductNotFound
}

func (d *Dataset) SourceById(id types.SourceId) (*types.Source, bool) {
	s, ok := d.sourceById[id]
	return s, ok
}

// SourceName falls back to the raw source id when the source is unknown.
func (d *Dataset) SourceName(id types.SourceId) string {
	if s, ok := d.sourceById[id]; ok {
		return s.Name
	}
	return string(id)
}

func (d *Dataset) AttributeByCode(code types.AttributeCode) (*types.Attribute, bool) {
	a, ok := d.attributeByCode[code]
	return a, ok
}

func (d *Dataset) CategoryById(id types.CategoryId) (*types.Category, bool) {
	c, ok := d.categoryById[id]
	return c, ok
}

func (d *Dataset) CategoryIdByName(name string) (types.CategoryId, bool) {
	id, ok := d.categoryIdByName[name]
	return id, ok
}

// ProductCategoryId resolves the display category of a product into a
// category id. In legacy mode the display name is the id. Products in
// unknown categories resolve to the empty id.
func (d *Dataset) ProductCategoryId(p *types.Product) types.CategoryId {
	if !d.HasDescriptors() {
		return types.CategoryId(p.Category)
	}
	if id, ok := d.categoryIdByName[p.Category]; ok {
		return id
	}
	return ""
}

// BrandAttributeCode is the attribute descriptor the brand facet resolves
// through when descriptors are loaded.
const BrandAttributeCode = types.AttributeCode("brand")

// Brand resolves the brand facet value of a product, preferring the brand
// attribute descriptor and falling back to the raw param key, with the
// sentinel label when neither yields a value.
func (d *Dataset) Brand(p *types.Product) string {
	if attr, ok := d.attributeByCode[BrandAttributeCode]; ok {
		if v, ok := attr.ResolveValue(p); ok {
			return v
		}
		return types.NoBrandLabel
	}
	return p.Brand()
}

// AttributeValue is the typed accessor for dynamic product characteristics.
// With descriptors loaded the code resolves through the attribute source key
// mapping, in legacy mode the code is the raw param key itself.
func (d *Dataset) AttributeValue(p *types.Product, code types.AttributeCode) (string, bool) {
	if attr, ok := d.attributeByCode[code]; ok {
		return attr.ResolveValue(p)
	}
	if !d.HasDescriptors() {
		if v, ok := p.Params.Get(string(code)); ok && v != "" {
			return v, true
		}
	}
	return "", false
}
