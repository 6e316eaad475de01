package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewProductCode(t *testing.T) {
	valid := []string{"00000000", "FFFFFFFF", "1A2B3C4D", "DEADBEEF"}
	for _, s := range valid {
		if _, err := NewProductCode(s); err != nil {
			t.Errorf("NewProductCode(%q) returned error: %v", s, err)
		}
	}

	invalid := []string{
		"",
		"1A2B3C4",   // too short
		"1A2B3C4D5", // too long
		"1a2b3c4d",  // lowercase
		"1A2B3C4G",  // non-hex
		"1A2B 3C4",  // whitespace
	}
	for _, s := range invalid {
		if _, err := NewProductCode(s); err == nil {
			t.Errorf("NewProductCode(%q) expected error", s)
		}
	}
}

func TestNewProduct(t *testing.T) {
	code := ProductCode("1A2B3C4D")

	t.Run("valid", func(t *testing.T) {
		p, err := NewProduct(code, "Espresso Machine", decimal.NewFromFloat(249.99))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Code != code {
			t.Fatalf("unexpected code: %s", p.Code)
		}
		if !p.Price.Equal(decimal.NewFromFloat(249.99)) {
			t.Fatalf("unexpected price: %s", p.Price)
		}
	})

	t.Run("price normalized to 2 decimals", func(t *testing.T) {
		// 10.10 may arrive as "10.1" or "10.100"; both are the same value.
		p, err := NewProduct(code, "Filter Pack", decimal.RequireFromString("10.100"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Price.String() != "10.1" && p.Price.String() != "10.10" {
			t.Fatalf("unexpected normalized price: %s", p.Price)
		}
	})

	t.Run("empty title", func(t *testing.T) {
		if _, err := NewProduct(code, "  ", decimal.NewFromInt(5)); err == nil {
			t.Fatal("expected error for empty title")
		}
	})

	t.Run("zero price", func(t *testing.T) {
		if _, err := NewProduct(code, "Freebie", decimal.Zero); err == nil {
			t.Fatal("expected error for zero price")
		}
	})

	t.Run("negative price", func(t *testing.T) {
		if _, err := NewProduct(code, "Refund", decimal.NewFromInt(-1)); err == nil {
			t.Fatal("expected error for negative price")
		}
	})

	t.Run("too many fractional digits", func(t *testing.T) {
		if _, err := NewProduct(code, "Oddity", decimal.RequireFromString("9.999")); err == nil {
			t.Fatal("expected error for sub-cent price")
		}
	})
}

func TestProduct_Replace(t *testing.T) {
	p, err := NewProduct(ProductCode("1A2B3C4D"), "Espresso Machine", decimal.NewFromFloat(249.99))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := p.Replace("Espresso Machine Pro", decimal.NewFromFloat(349.50)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Title != "Espresso Machine Pro" {
		t.Fatalf("unexpected title: %q", p.Title)
	}
	if p.Code != ProductCode("1A2B3C4D") {
		t.Fatalf("code must never change, got %s", p.Code)
	}

	if err := p.Replace("Espresso Machine Pro", decimal.Zero); err == nil {
		t.Fatal("expected error for zero price")
	}
	if !p.Price.Equal(decimal.NewFromFloat(349.5)) {
		t.Fatalf("failed replacement must not mutate price, got %s", p.Price)
	}
}
