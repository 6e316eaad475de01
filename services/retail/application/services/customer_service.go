package services

import (
	"context"
	"fmt"

	retaildomain "github.com/ghuser/retailstore/services/retail/domain"
	"github.com/ghuser/retailstore/services/retail/domain/models"
	"github.com/ghuser/retailstore/services/retail/domain/repositories"
)

// CustomerService orchestrates customer CRUD, including the deletion guard.
type CustomerService struct {
	repo repositories.CustomerRepository
}

// NewCustomerService returns a CustomerService wired with the given repository.
func NewCustomerService(repo repositories.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

// Create validates and persists a new customer, returning it with the
// store-assigned ID.
func (s *CustomerService) Create(ctx context.Context, fullName string, email *string) (*models.Customer, error) {
	customer, err := models.NewCustomer(fullName, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", retaildomain.ErrInvalidCustomer, err)
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("save customer: %w", err)
	}
	return customer, nil
}

// GetByID retrieves a customer by ID.
func (s *CustomerService) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return customer, nil
}

// Update replaces all mutable fields of an existing customer.
func (s *CustomerService) Update(ctx context.Context, id int64, fullName string, email *string) error {
	customer := &models.Customer{ID: id}
	if err := customer.Replace(fullName, email); err != nil {
		return fmt.Errorf("%w: %w", retaildomain.ErrInvalidCustomer, err)
	}
	if err := s.repo.Update(ctx, customer); err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// Delete removes a customer unless purchases still reference it. The guard
// and the delete are evaluated atomically by the repository, so a purchase
// recorded concurrently can never orphan itself.
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteIfUnreferenced(ctx, id); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}
