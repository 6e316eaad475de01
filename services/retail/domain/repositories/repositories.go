// Package repositories declares the persistence interfaces for the retail
// bounded context. The domain layer owns these; infrastructure implements them.
package repositories

import (
	"context"

	"github.com/ghuser/retailstore/services/retail/domain/models"
)

// CustomerRepository is the persistence interface for Customer records.
type CustomerRepository interface {
	// Create persists a new customer and fills in the store-assigned ID.
	Create(ctx context.Context, customer *models.Customer) error

	// GetByID returns the customer or ErrCustomerNotFound.
	GetByID(ctx context.Context, id int64) (*models.Customer, error)

	// Update replaces all mutable fields of an existing customer.
	// Returns ErrCustomerNotFound if the identity does not exist.
	Update(ctx context.Context, customer *models.Customer) error

	// DeleteIfUnreferenced removes the customer only if no purchase
	// references it, evaluated atomically against the store state.
	// Returns ErrCustomerNotFound or ErrCustomerHasPurchases otherwise.
	DeleteIfUnreferenced(ctx context.Context, id int64) error

	// Exists reports whether a customer with the given ID exists.
	Exists(ctx context.Context, id int64) (bool, error)
}

// ProductRepository is the persistence interface for the catalog.
type ProductRepository interface {
	// Create persists a new product. Returns ErrProductCodeTaken if the
	// code collides with an existing one (unique constraint rejection).
	Create(ctx context.Context, product *models.Product) error

	// GetByCode returns the product or ErrProductNotFound.
	GetByCode(ctx context.Context, code models.ProductCode) (*models.Product, error)

	// Update replaces all mutable fields of an existing product.
	// Returns ErrProductNotFound if the code does not exist.
	Update(ctx context.Context, product *models.Product) error

	// Delete removes a product unconditionally. Returns ErrProductNotFound
	// if the code does not exist.
	Delete(ctx context.Context, code models.ProductCode) error

	// CodeExists reports whether a product code is already in use.
	CodeExists(ctx context.Context, code models.ProductCode) (bool, error)

	// FilterExisting returns the subset of codes that resolve to existing
	// products, in a single query.
	FilterExisting(ctx context.Context, codes []models.ProductCode) ([]models.ProductCode, error)
}

// PurchaseRepository is the persistence interface for purchases and their
// line items.
type PurchaseRepository interface {
	// Create persists the purchase and all of its line items as one atomic
	// unit and fills in the store-assigned ID. Referential integrity is
	// re-asserted at commit: a customer or product deleted since validation
	// fails the whole write with the matching not-found sentinel.
	Create(ctx context.Context, purchase *models.Purchase) error

	// GetByID returns the purchase with its full line-item set, or
	// ErrPurchaseNotFound.
	GetByID(ctx context.Context, id int64) (*models.Purchase, error)
}
