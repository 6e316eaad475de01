package models

import (
	"fmt"
	"regexp"
)

// ProductCode is a value object for the system-assigned product identifier:
// exactly 8 uppercase hexadecimal characters, globally unique in the catalog.
type ProductCode string

// CodeLength is the fixed length of a product code.
const CodeLength = 8

var codePattern = regexp.MustCompile(`^[0-9A-F]{8}$`)

// NewProductCode validates s against the code format.
func NewProductCode(s string) (ProductCode, error) {
	if !codePattern.MatchString(s) {
		return "", fmt.Errorf("product code %q must be %d uppercase hex characters", s, CodeLength)
	}
	return ProductCode(s), nil
}

// String returns the underlying string value.
func (c ProductCode) String() string {
	return string(c)
}
