package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	pkgcache "github.com/ghuser/retailstore/pkg/cache"
	retaildomain "github.com/ghuser/retailstore/services/retail/domain"
	"github.com/ghuser/retailstore/services/retail/domain/models"
	"github.com/ghuser/retailstore/services/retail/domain/repositories"
	domainsvcs "github.com/ghuser/retailstore/services/retail/domain/services"
)

// maxCreateAttempts bounds how often Create regenerates after losing a code
// race to a concurrent insert.
const maxCreateAttempts = 5

// CatalogService orchestrates product CRUD and code assignment.
// Reads are served from Redis cache when available.
type CatalogService struct {
	repo  repositories.ProductRepository
	cache *pkgcache.ProductCache
}

// NewCatalogService returns a CatalogService wired with the given repository
// and cache.
func NewCatalogService(repo repositories.ProductRepository, productCache *pkgcache.ProductCache) *CatalogService {
	return &CatalogService{repo: repo, cache: productCache}
}

// Create persists a new product under a freshly generated code. The generated
// code is only reserved by the insert itself; when a concurrent creation wins
// the same code, the unique-constraint rejection triggers a regeneration
// instead of failing the request.
func (s *CatalogService) Create(ctx context.Context, title string, price decimal.Decimal) (*models.Product, error) {
	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		code, err := domainsvcs.GenerateProductCode(ctx, s.repo.CodeExists)
		if err != nil {
			return nil, fmt.Errorf("generate code: %w", err)
		}

		product, err := models.NewProduct(code, title, price)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", retaildomain.ErrInvalidProduct, err)
		}

		err = s.repo.Create(ctx, product)
		if errors.Is(err, retaildomain.ErrProductCodeTaken) {
			continue // lost the race, regenerate
		}
		if err != nil {
			return nil, fmt.Errorf("save product: %w", err)
		}
		return product, nil
	}
	return nil, retaildomain.ErrCodeSpaceExhausted
}

// GetByCode retrieves a product using a read-through cache pattern:
//  1. Check Redis cache first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
func (s *CatalogService) GetByCode(ctx context.Context, code models.ProductCode) (*models.Product, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, code.String()); err == nil {
			return &models.Product{
				Code:  models.ProductCode(cached.Code),
				Title: cached.Title,
				Price: cached.Price,
			}, nil
		} else if !errors.Is(err, redis.Nil) {
			_ = err // cache unreachable; fall through to Postgres
		}
	}

	product, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	if s.cache != nil {
		go func() {
			_ = s.cache.Set(context.Background(), &pkgcache.CachedProduct{
				Code:  product.Code.String(),
				Title: product.Title,
				Price: product.Price,
			})
		}()
	}

	return product, nil
}

// Update replaces all mutable fields of an existing product and invalidates
// its cache entry.
func (s *CatalogService) Update(ctx context.Context, code models.ProductCode, title string, price decimal.Decimal) error {
	product := &models.Product{Code: code}
	if err := product.Replace(title, price); err != nil {
		return fmt.Errorf("%w: %w", retaildomain.ErrInvalidProduct, err)
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if s.cache != nil {
		_ = s.cache.Delete(context.Background(), code.String())
	}
	return nil
}

// Delete removes a product unconditionally and invalidates its cache entry.
// Purchase history referencing the product is left untouched.
func (s *CatalogService) Delete(ctx context.Context, code models.ProductCode) error {
	if err := s.repo.Delete(ctx, code); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if s.cache != nil {
		_ = s.cache.Delete(context.Background(), code.String())
	}
	return nil
}
