package models

import (
	"fmt"
	"time"
)

// LineItem associates one product with a quantity inside a purchase. Its
// identity is (purchase id, product code); a product appears at most once
// per purchase.
type LineItem struct {
	ProductCode ProductCode
	Quantity    int
}

// Purchase is the aggregate for a recorded sale. It exclusively owns its
// line items: they are persisted and loaded together, never separately.
// A purchase is immutable once created.
type Purchase struct {
	ID           int64
	PurchaseDate time.Time
	CustomerID   int64
	Lines        []LineItem
}

// NewPurchase constructs a Purchase with the timestamp captured now, after
// all line-item checks pass. The store assigns the identity on save.
//
// Checks, in order:
//  1. at least one line item
//  2. every quantity >= 1
//  3. no product referenced twice
func NewPurchase(customerID int64, lines []LineItem) (*Purchase, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("purchase must contain at least one line item")
	}
	seen := make(map[ProductCode]struct{}, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be at least 1 for purchase products")
		}
		if _, dup := seen[l.ProductCode]; dup {
			return nil, fmt.Errorf("product %s appears more than once in the purchase", l.ProductCode)
		}
		seen[l.ProductCode] = struct{}{}
	}

	return &Purchase{
		PurchaseDate: time.Now().UTC(),
		CustomerID:   customerID,
		Lines:        lines,
	}, nil
}

// ProductCodes returns the distinct product codes referenced by the purchase,
// in line order.
func (p *Purchase) ProductCodes() []ProductCode {
	codes := make([]ProductCode, len(p.Lines))
	for i, l := range p.Lines {
		codes[i] = l.ProductCode
	}
	return codes
}
