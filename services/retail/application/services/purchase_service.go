package services

import (
	"context"
	"fmt"

	retaildomain "github.com/ghuser/retailstore/services/retail/domain"
	"github.com/ghuser/retailstore/services/retail/domain/models"
	"github.com/ghuser/retailstore/services/retail/domain/repositories"
)

// PurchaseLineInput is one requested line of a purchase, as supplied by the
// caller before any resolution against the catalog.
type PurchaseLineInput struct {
	ProductCode string
	Quantity    int
}

// PurchaseService coordinates the multi-entity purchase workflow: it
// validates the request against the customer and catalog stores, then hands
// the repository one atomic write.
type PurchaseService struct {
	purchases repositories.PurchaseRepository
	customers repositories.CustomerRepository
	products  repositories.ProductRepository
}

// NewPurchaseService returns a PurchaseService wired with the given repositories.
func NewPurchaseService(
	purchases repositories.PurchaseRepository,
	customers repositories.CustomerRepository,
	products repositories.ProductRepository,
) *PurchaseService {
	return &PurchaseService{purchases: purchases, customers: customers, products: products}
}

// Create records a purchase. Validation runs in a fixed order and every
// failure short-circuits before any write:
//  1. at least one line item
//  2. every quantity >= 1
//  3. the customer exists
//  4. every referenced product exists, resolved in one batch query; when any
//     are missing the error carries the complete missing set, never just the
//     first miss
//
// The timestamp is captured after validation, when the purchase aggregate is
// constructed. The write itself is atomic: the purchase, its line items, and
// the PurchaseRecorded event all commit together or not at all, and the
// repository re-asserts at commit time that the customer and products still
// exist.
func (s *PurchaseService) Create(ctx context.Context, customerID int64, lines []PurchaseLineInput) (*models.Purchase, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: purchase must contain at least one line item", retaildomain.ErrInvalidPurchase)
	}
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be at least 1 for purchase products", retaildomain.ErrInvalidPurchase)
		}
	}

	exists, err := s.customers.Exists(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("check customer: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("customer %d: %w", customerID, retaildomain.ErrCustomerNotFound)
	}

	// Dedupe for the lookup only; the line items stay one per requested entry.
	requested := make([]models.ProductCode, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ProductCode]; ok {
			continue
		}
		seen[l.ProductCode] = struct{}{}
		requested = append(requested, models.ProductCode(l.ProductCode))
	}

	existing, err := s.products.FilterExisting(ctx, requested)
	if err != nil {
		return nil, fmt.Errorf("resolve products: %w", err)
	}
	existingSet := make(map[models.ProductCode]struct{}, len(existing))
	for _, c := range existing {
		existingSet[c] = struct{}{}
	}
	var missing []string
	for _, c := range requested {
		if _, ok := existingSet[c]; !ok {
			missing = append(missing, c.String())
		}
	}
	if len(missing) > 0 {
		return nil, &retaildomain.MissingProductsError{Codes: missing}
	}

	items := make([]models.LineItem, len(lines))
	for i, l := range lines {
		items[i] = models.LineItem{ProductCode: models.ProductCode(l.ProductCode), Quantity: l.Quantity}
	}
	purchase, err := models.NewPurchase(customerID, items)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", retaildomain.ErrInvalidPurchase, err)
	}

	if err := s.purchases.Create(ctx, purchase); err != nil {
		return nil, fmt.Errorf("save purchase: %w", err)
	}
	return purchase, nil
}

// GetByID retrieves a purchase with its full line-item set.
func (s *PurchaseService) GetByID(ctx context.Context, id int64) (*models.Purchase, error) {
	purchase, err := s.purchases.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return purchase, nil
}
