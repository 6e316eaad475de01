package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ghuser/retailstore/pkg/database"
	retaildomain "github.com/ghuser/retailstore/services/retail/domain"
	"github.com/ghuser/retailstore/services/retail/domain/models"
)

// CustomerRepository implements repositories.CustomerRepository against PostgreSQL.
type CustomerRepository struct {
	db *database.Database
}

// NewCustomerRepository returns a CustomerRepository backed by the given pool.
func NewCustomerRepository(db *database.Database) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create persists a new customer and fills in the store-assigned ID.
func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	err := r.db.DB().QueryRowContext(ctx,
		`INSERT INTO customers (full_name, email) VALUES ($1, $2) RETURNING id`,
		customer.FullName, customer.Email,
	).Scan(&customer.ID)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID retrieves a customer by ID. Returns ErrCustomerNotFound if absent.
func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	var c models.Customer
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT id, full_name, email FROM customers WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.FullName, &c.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, retaildomain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("query customer: %w", err)
	}
	return &c, nil
}

// Update replaces all mutable fields of an existing customer.
func (r *CustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	res, err := r.db.DB().ExecContext(ctx,
		`UPDATE customers SET full_name = $2, email = $3 WHERE id = $1`,
		customer.ID, customer.FullName, customer.Email,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update customer rows affected: %w", err)
	}
	if affected == 0 {
		return retaildomain.ErrCustomerNotFound
	}
	return nil
}

// DeleteIfUnreferenced removes the customer only while no purchase references
// it. The guard and the delete are one statement, so a purchase created
// concurrently either lands before the delete (which then removes nothing) or
// after it fails its customer foreign key. Zero affected rows are
// disambiguated into not-found vs still-referenced.
func (r *CustomerRepository) DeleteIfUnreferenced(ctx context.Context, id int64) error {
	res, err := r.db.DB().ExecContext(ctx,
		`DELETE FROM customers c
		  WHERE c.id = $1
		    AND NOT EXISTS (SELECT 1 FROM purchases p WHERE p.customer_id = c.id)`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete customer rows affected: %w", err)
	}
	if affected == 1 {
		return nil
	}

	exists, err := r.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return retaildomain.ErrCustomerNotFound
	}
	return retaildomain.ErrCustomerHasPurchases
}

// Exists reports whether a customer with the given ID exists.
func (r *CustomerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`,
		id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check customer exists: %w", err)
	}
	return exists, nil
}
