package models

import (
	"fmt"
	"net/mail"
	"strings"
)

// Customer is the aggregate for a retail customer. ID is assigned by the
// store on first save and is immutable afterwards.
type Customer struct {
	ID       int64
	FullName string
	Email    *string // optional; syntactically valid when present
}

// NewCustomer constructs a valid Customer with a zero ID. The store assigns
// the real identity on save.
func NewCustomer(fullName string, email *string) (*Customer, error) {
	if err := validateCustomerFields(fullName, email); err != nil {
		return nil, err
	}
	return &Customer{FullName: fullName, Email: email}, nil
}

// Replace applies a full-replacement update: every mutable field is
// overwritten. The identity never changes.
func (c *Customer) Replace(fullName string, email *string) error {
	if err := validateCustomerFields(fullName, email); err != nil {
		return err
	}
	c.FullName = fullName
	c.Email = email
	return nil
}

func validateCustomerFields(fullName string, email *string) error {
	if strings.TrimSpace(fullName) == "" {
		return fmt.Errorf("full name must not be empty")
	}
	if email != nil && *email != "" {
		if _, err := mail.ParseAddress(*email); err != nil {
			return fmt.Errorf("email %q is not a valid address", *email)
		}
	}
	return nil
}
