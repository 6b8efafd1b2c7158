package facet

import (
	"testing"
	"time"

	"github.com/dronemarket/catalog/pkg/types"
)

func TestBuild(t *testing.T) {
	products := []types.Product{
		{Id: "p1", Category: "Квадрокоптеры", Price: 1000, Params: types.Params{
			{Key: "Бренд", Value: "DJI"},
			{Key: "Класс", Value: "Дрон"},
		}},
		{Id: "p2", Category: "Квадрокоптеры", Price: 5000, Params: types.Params{
			{Key: "Бренд", Value: "DJI"},
		}},
		{Id: "p3", Category: "Квадрокоптеры", Price: 2500, Params: types.Params{
			{Key: "Бренд", Value: "Autel"},
		}},
		{Id: "p4", Category: "Промышленные аппараты", Price: 9000, Params: types.Params{
			{Key: "Класс защиты", Value: "IP67"},
		}},
	}
	attributes := []types.Attribute{
		{Code: "brand", Name: "Бренд", SourceKey: "Бренд", Filterable: true},
		{Code: "protection", Name: "Класс защиты", SourceKey: "Класс защиты", Filterable: true},
		{Code: "broken", Name: "Без ключа", Filterable: true},
	}
	categories := []types.Category{
		{Id: "cat-a", Name: "Квадрокоптеры", FilterAttributes: []types.AttributeCode{"brand", "protection", "broken", "unknown"}},
		{Id: "cat-b", Name: "Промышленные аппараты", FilterAttributes: []types.AttributeCode{"protection"}},
	}

	idx := Build(products, attributes, categories, time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))

	if idx.GeneratedAt != "2026-08-28" {
		t.Errorf("Expected date stamp, got %s", idx.GeneratedAt)
	}
	if idx.Global.Price.Min != 1000 || idx.Global.Price.Max != 9000 {
		t.Errorf("Expected global price [1000 9000], got %v", idx.Global.Price)
	}

	catA, ok := idx.Categories["cat-a"]
	if !ok {
		t.Fatalf("Missing cat-a facet")
	}
	if catA.Price.Min != 1000 || catA.Price.Max != 5000 {
		t.Errorf("Expected cat-a price [1000 5000], got %v", catA.Price)
	}
	brand, ok := catA.Attributes["brand"]
	if !ok {
		t.Fatalf("Missing brand facet for cat-a")
	}
	// Lexicographic value order, counts over scoped products.
	if len(brand.Values) != 2 || brand.Values[0].Value != "Autel" || brand.Values[0].Count != 1 ||
		brand.Values[1].Value != "DJI" || brand.Values[1].Count != 2 {
		t.Errorf("Unexpected brand values: %v", brand.Values)
	}
	if _, ok := catA.Attributes["protection"]; ok {
		t.Errorf("Attribute with no values in category should be omitted")
	}
	if _, ok := catA.Attributes["broken"]; ok {
		t.Errorf("Attribute without a source key should be skipped")
	}
	if _, ok := catA.Attributes["unknown"]; ok {
		t.Errorf("Attribute without a descriptor should be skipped")
	}

	catB, ok := idx.Categories["cat-b"]
	if !ok {
		t.Fatalf("Missing cat-b facet")
	}
	if catB.Price.Min != 9000 || catB.Price.Max != 9000 {
		t.Errorf("Expected cat-b price [9000 9000], got %v", catB.Price)
	}
	protection := catB.Attributes["protection"]
	if len(protection.Values) != 1 || protection.Values[0].Value != "IP67" || protection.Values[0].Count != 1 {
		t.Errorf("Unexpected protection values: %v", protection.Values)
	}
}
