package types

import (
	"encoding/json"
	"testing"
)

func TestParamsKeepFeedOrder(t *testing.T) {
	raw := `{"Бренд":"DJI","Макс. время полета":"30 мин","Класс":"Дрон"}`
	var p Params
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(p) != 3 {
		t.Fatalf("Expected 3 params, got %d", len(p))
	}
	if p[0].Key != "Бренд" || p[1].Key != "Макс. время полета" || p[2].Key != "Класс" {
		t.Errorf("Key order lost: %v", p)
	}

	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != raw {
		t.Errorf("Expected %s, got %s", raw, out)
	}
}

func TestParamsNull(t *testing.T) {
	var p Params
	if err := json.Unmarshal([]byte("null"), &p); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if p != nil {
		t.Errorf("Expected nil params, got %v", p)
	}
}

func TestParamsRejectNonObject(t *testing.T) {
	var p Params
	if err := json.Unmarshal([]byte(`["Бренд"]`), &p); err == nil {
		t.Errorf("Expected error for array input")
	}
}

func TestParamsGetSet(t *testing.T) {
	var p Params
	p.Set("Бренд", "DJI")
	p.Set("Класс", "Дрон")
	p.Set("Бренд", "Autel")
	if len(p) != 2 {
		t.Fatalf("Expected overwrite, got %v", p)
	}
	if v, ok := p.Get("Бренд"); !ok || v != "Autel" {
		t.Errorf("Expected Autel, got %q", v)
	}
	if _, ok := p.Get("Вес"); ok {
		t.Errorf("Expected miss for unknown key")
	}
	if !p.Has("Класс") {
		t.Errorf("Expected Has to report the key")
	}
}
