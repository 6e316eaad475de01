package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/retailstore/pkg/errhttp"
	"github.com/ghuser/retailstore/pkg/httpx"
	pkgvalidator "github.com/ghuser/retailstore/pkg/validator"
	appsvcs "github.com/ghuser/retailstore/services/retail/application/services"
	"github.com/ghuser/retailstore/services/retail/domain/models"
)

// CreateCustomerRequest is the request body for POST /customer.
type CreateCustomerRequest struct {
	FullName string  `json:"full_name" validate:"required,min=1,max=255"`
	Email    *string `json:"email"     validate:"omitempty,email"`
}

// UpdateCustomerRequest is the request body for PUT /customer.
// Every mutable field is replaced; there is no partial patch.
type UpdateCustomerRequest struct {
	ID       int64   `json:"id"        validate:"required"`
	FullName string  `json:"full_name" validate:"required,min=1,max=255"`
	Email    *string `json:"email"     validate:"omitempty,email"`
}

// CustomerResponse is the wire shape of a customer record.
type CustomerResponse struct {
	ID       int64   `json:"id"`
	FullName string  `json:"full_name"`
	Email    *string `json:"email,omitempty"`
}

func customerResponse(c *models.Customer) CustomerResponse {
	return CustomerResponse{ID: c.ID, FullName: c.FullName, Email: c.Email}
}

// CustomerHandlers serves the customer endpoints.
type CustomerHandlers struct {
	svc *appsvcs.Services
}

// NewCustomerHandlers returns customer handlers backed by the given services.
func NewCustomerHandlers(svc *appsvcs.Services) *CustomerHandlers {
	return &CustomerHandlers{svc: svc}
}

// Get returns a customer by id.
func (h *CustomerHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	customer, err := h.svc.Customers.GetByID(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, customerResponse(customer))
}

// Create creates a new customer.
func (h *CustomerHandlers) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateCustomerRequest](w, r)
	if !ok {
		return
	}
	customer, err := h.svc.Customers.Create(r.Context(), req.FullName, req.Email)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, customerResponse(customer))
}

// Update replaces an existing customer's fields.
func (h *CustomerHandlers) Update(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[UpdateCustomerRequest](w, r)
	if !ok {
		return
	}
	if err := h.svc.Customers.Update(r.Context(), req.ID, req.FullName, req.Email); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a customer unless purchases reference it.
func (h *CustomerHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Customers.Delete(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} route parameter, writing a 400 on malformed input.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "id must be an integer")
		return 0, false
	}
	return id, true
}
