package types

type SourceId string
type CategoryId string
type AttributeCode string

// BrandParamKey is the raw feed parameter holding the brand value.
const BrandParamKey = "Бренд"

// NoBrandLabel is the sentinel shown and filtered on when a product carries
// no brand parameter. It lives in the same value domain as real brand names,
// a product branded exactly like the sentinel is indistinguishable from an
// unbranded one.
const NoBrandLabel = "Без бренда"

// Product is a single feed record. The loader hands out pointers into a
// shared dataset, records are read only for the rest of the session.
type Product struct {
	Id          string   `json:"id"`
	Name        string   `json:"name"`
	Sku         string   `json:"sku"`
	Source      SourceId `json:"source"`
	Category    string   `json:"category"`
	CategoryUrl string   `json:"categoryUrl,omitempty"`
	SourceUrl   string   `json:"sourceUrl,omitempty"`
	Price       int      `json:"price"`
	Image       string   `json:"image,omitempty"`
	Params      Params   `json:"params"`
}

func (p *Product) GetId() string {
	return p.Id
}

func (p *Product) GetPrice() int {
	return p.Price
}

// Brand resolves the brand facet value, falling back to the sentinel label
// when the parameter is absent or empty.
func (p *Product) Brand() string {
	if v, ok := p.Params.Get(BrandParamKey); ok && v != "" {
		return v
	}
	return NoBrandLabel
}

// Source is a static reference record describing where a product was
// aggregated from.
type Source struct {
	Id      SourceId `json:"id"`
	Name    string   `json:"name"`
	SiteUrl string   `json:"siteUrl,omitempty"`
}

// Attribute decouples a stable machine code from the free form display key
// found in raw product params.
type Attribute struct {
	Code          AttributeCode `json:"code"`
	Name          string        `json:"name"`
	SourceKey     string        `json:"sourceKey"`
	Filterable    bool          `json:"filterable"`
	DisplayInCard bool          `json:"displayInCard"`
	Order         int           `json:"order"`
}

// ResolveValue reads the attribute value from a product through the source
// key mapping. The boolean is false when the product has no such parameter.
func (a *Attribute) ResolveValue(p *Product) (string, bool) {
	if a.SourceKey == "" {
		return "", false
	}
	v, ok := p.Params.Get(a.SourceKey)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

type Category struct {
	Id               CategoryId      `json:"id"`
	Name             string          `json:"name"`
	Order            int             `json:"order"`
	FilterAttributes []AttributeCode `json:"filterAttributes"`
}

// DefaultFacetParamKeys drives the attribute filter blocks when a dataset is
// loaded without attribute descriptors. Matches the fixed key list of the
// first catalog revision.
var DefaultFacetParamKeys = []string{
	"Макс. время полета",
	"Дальность передачи сигнала",
	"Разрешение видео",
	"Время автономной работы",
	"Полезная нагрузка",
	"Класс защиты",
	"Класс",
}
