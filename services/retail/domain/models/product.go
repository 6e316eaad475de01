package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is the catalog aggregate. The Code is its identity and is assigned
// by the code generator, never by the client.
type Product struct {
	Code  ProductCode
	Title string
	Price decimal.Decimal // strictly positive, 2 fractional digits
}

// NewProduct constructs a valid Product with the given system-assigned code.
func NewProduct(code ProductCode, title string, price decimal.Decimal) (*Product, error) {
	if err := validateProductFields(title, price); err != nil {
		return nil, err
	}
	return &Product{Code: code, Title: title, Price: price.Round(2)}, nil
}

// Replace applies a full-replacement update to the mutable fields. The code
// never changes.
func (p *Product) Replace(title string, price decimal.Decimal) error {
	if err := validateProductFields(title, price); err != nil {
		return err
	}
	p.Title = title
	p.Price = price.Round(2)
	return nil
}

func validateProductFields(title string, price decimal.Decimal) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title must not be empty")
	}
	if !price.IsPositive() {
		return fmt.Errorf("price must be greater than 0, got %s", price)
	}
	if !price.Equal(price.Round(2)) {
		return fmt.Errorf("price %s must have at most 2 fractional digits", price)
	}
	return nil
}
