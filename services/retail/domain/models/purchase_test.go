package models

import (
	"strings"
	"testing"
	"time"
)

func TestNewPurchase(t *testing.T) {
	t.Run("valid multi-line", func(t *testing.T) {
		before := time.Now().UTC()
		p, err := NewPurchase(42, []LineItem{
			{ProductCode: "1A2B3C4D", Quantity: 2},
			{ProductCode: "DEADBEEF", Quantity: 1},
		})
		after := time.Now().UTC()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.CustomerID != 42 {
			t.Fatalf("unexpected customer id: %d", p.CustomerID)
		}
		if p.ID != 0 {
			t.Fatalf("new purchase must have zero id, got %d", p.ID)
		}
		if p.PurchaseDate.Before(before) || p.PurchaseDate.After(after) {
			t.Fatalf("purchase date %s outside [%s, %s]", p.PurchaseDate, before, after)
		}
		if p.PurchaseDate.Location() != time.UTC {
			t.Fatal("purchase date must be UTC")
		}
	})

	t.Run("empty line items", func(t *testing.T) {
		if _, err := NewPurchase(42, nil); err == nil {
			t.Fatal("expected error for empty purchase")
		}
	})

	t.Run("zero quantity", func(t *testing.T) {
		_, err := NewPurchase(42, []LineItem{{ProductCode: "1A2B3C4D", Quantity: 0}})
		if err == nil {
			t.Fatal("expected error for zero quantity")
		}
		if !strings.Contains(err.Error(), "at least 1") {
			t.Fatalf("error should state the quantity rule, got %v", err)
		}
	})

	t.Run("negative quantity", func(t *testing.T) {
		if _, err := NewPurchase(42, []LineItem{{ProductCode: "1A2B3C4D", Quantity: -3}}); err == nil {
			t.Fatal("expected error for negative quantity")
		}
	})

	t.Run("duplicate product", func(t *testing.T) {
		_, err := NewPurchase(42, []LineItem{
			{ProductCode: "1A2B3C4D", Quantity: 1},
			{ProductCode: "1A2B3C4D", Quantity: 2},
		})
		if err == nil {
			t.Fatal("expected error for duplicate product")
		}
	})
}

func TestPurchase_ProductCodes(t *testing.T) {
	p, err := NewPurchase(1, []LineItem{
		{ProductCode: "DEADBEEF", Quantity: 1},
		{ProductCode: "1A2B3C4D", Quantity: 5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	codes := p.ProductCodes()
	if len(codes) != 2 || codes[0] != "DEADBEEF" || codes[1] != "1A2B3C4D" {
		t.Fatalf("codes must preserve line order, got %v", codes)
	}
}
