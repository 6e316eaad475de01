package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the retail domain. Use errors.Is() to check these.
var (
	// ErrCustomerNotFound indicates the requested customer does not exist.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrProductNotFound indicates the requested product does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrPurchaseNotFound indicates the requested purchase does not exist.
	ErrPurchaseNotFound = errors.New("purchase not found")

	// ErrCustomerHasPurchases indicates a customer cannot be deleted while
	// purchases still reference it.
	ErrCustomerHasPurchases = errors.New("customer cannot be deleted: purchases related to the customer were found")

	// ErrProductCodeTaken indicates a generated product code collided with an
	// existing one at insert time. Callers regenerate and retry.
	ErrProductCodeTaken = errors.New("product code already taken")

	// ErrCodeSpaceExhausted indicates code generation gave up after the retry
	// bound. With a 16^8 code space this signals a pathological loop, not a
	// genuinely full catalog.
	ErrCodeSpaceExhausted = errors.New("product code generation exhausted")

	// ErrInvalidCustomer indicates customer fields violate domain constraints.
	ErrInvalidCustomer = errors.New("invalid customer")

	// ErrInvalidProduct indicates product fields violate domain constraints.
	ErrInvalidProduct = errors.New("invalid product")

	// ErrInvalidPurchase indicates a purchase request violates domain constraints.
	ErrInvalidPurchase = errors.New("invalid purchase")
)

// MissingProductsError reports every requested product code that does not
// resolve to an existing product. The full set is collected before failing so
// a caller can fix all references in one round trip.
type MissingProductsError struct {
	Codes []string
}

func (e *MissingProductsError) Error() string {
	return fmt.Sprintf("some of the products were not found: %s", strings.Join(e.Codes, ", "))
}

// Is makes errors.Is(err, ErrInvalidPurchase) match a MissingProductsError:
// missing product references are a validation failure of the purchase request,
// not a lookup miss on a single product.
func (e *MissingProductsError) Is(target error) bool {
	return target == ErrInvalidPurchase
}
