package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/retailstore/pkg/database"
	retaildomain "github.com/ghuser/retailstore/services/retail/domain"
	"github.com/ghuser/retailstore/services/retail/domain/models"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// ProductRepository implements repositories.ProductRepository against PostgreSQL.
type ProductRepository struct {
	db *database.Database
}

// NewProductRepository returns a ProductRepository backed by the given pool.
func NewProductRepository(db *database.Database) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create persists a new product. The products primary key is the hard
// uniqueness guard for generated codes: a concurrent insert of the same code
// surfaces as ErrProductCodeTaken so the caller regenerates and retries.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	_, err := r.db.DB().ExecContext(ctx,
		`INSERT INTO products (code, title, price) VALUES ($1, $2, $3)`,
		product.Code.String(), product.Title, product.Price,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return retaildomain.ErrProductCodeTaken
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByCode retrieves a product by code. Returns ErrProductNotFound if absent.
func (r *ProductRepository) GetByCode(ctx context.Context, code models.ProductCode) (*models.Product, error) {
	var (
		p       models.Product
		rawCode string
	)
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT code, title, price FROM products WHERE code = $1`,
		code.String(),
	).Scan(&rawCode, &p.Title, &p.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, retaildomain.ErrProductNotFound
		}
		return nil, fmt.Errorf("query product: %w", err)
	}
	p.Code = models.ProductCode(rawCode)
	return &p, nil
}

// Update replaces all mutable fields of an existing product.
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	res, err := r.db.DB().ExecContext(ctx,
		`UPDATE products SET title = $2, price = $3 WHERE code = $1`,
		product.Code.String(), product.Title, product.Price,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update product rows affected: %w", err)
	}
	if affected == 0 {
		return retaildomain.ErrProductNotFound
	}
	return nil
}

// Delete removes a product unconditionally. Purchase history is not
// consulted; line items may keep referencing the deleted code.
func (r *ProductRepository) Delete(ctx context.Context, code models.ProductCode) error {
	res, err := r.db.DB().ExecContext(ctx,
		`DELETE FROM products WHERE code = $1`,
		code.String(),
	)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product rows affected: %w", err)
	}
	if affected == 0 {
		return retaildomain.ErrProductNotFound
	}
	return nil
}

// CodeExists reports whether a product code is already in use.
func (r *ProductRepository) CodeExists(ctx context.Context, code models.ProductCode) (bool, error) {
	var exists bool
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE code = $1)`,
		code.String(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check product code exists: %w", err)
	}
	return exists, nil
}

// FilterExisting returns the subset of codes that resolve to existing
// products, resolved in one query.
func (r *ProductRepository) FilterExisting(ctx context.Context, codes []models.ProductCode) ([]models.ProductCode, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	raw := make([]string, len(codes))
	for i, c := range codes {
		raw[i] = c.String()
	}

	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT code FROM products WHERE code = ANY($1)`,
		raw,
	)
	if err != nil {
		return nil, fmt.Errorf("query existing products: %w", err)
	}
	defer rows.Close()

	var existing []models.ProductCode
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan product code: %w", err)
		}
		existing = append(existing, models.ProductCode(code))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate existing products: %w", err)
	}
	return existing, nil
}
