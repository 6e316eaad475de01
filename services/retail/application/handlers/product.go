package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ghuser/retailstore/pkg/errhttp"
	"github.com/ghuser/retailstore/pkg/httpx"
	pkgvalidator "github.com/ghuser/retailstore/pkg/validator"
	appsvcs "github.com/ghuser/retailstore/services/retail/application/services"
	retaildomain "github.com/ghuser/retailstore/services/retail/domain"
	"github.com/ghuser/retailstore/services/retail/domain/models"
)

// CreateProductRequest is the request body for POST /product. The code is
// never accepted from the client; the system assigns it.
type CreateProductRequest struct {
	Title string          `json:"title" validate:"required,min=1,max=255"`
	Price decimal.Decimal `json:"price"`
}

// UpdateProductRequest is the request body for PUT /product.
// Every mutable field is replaced; the code identifies the product.
type UpdateProductRequest struct {
	Code  string          `json:"code"  validate:"required,len=8"`
	Title string          `json:"title" validate:"required,min=1,max=255"`
	Price decimal.Decimal `json:"price"`
}

// ProductResponse is the wire shape of a product record.
type ProductResponse struct {
	Code  string          `json:"code"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

func productResponse(p *models.Product) ProductResponse {
	return ProductResponse{Code: p.Code.String(), Title: p.Title, Price: p.Price}
}

// ProductHandlers serves the product endpoints.
type ProductHandlers struct {
	svc *appsvcs.Services
}

// NewProductHandlers returns product handlers backed by the given services.
func NewProductHandlers(svc *appsvcs.Services) *ProductHandlers {
	return &ProductHandlers{svc: svc}
}

// Get returns a product by code.
func (h *ProductHandlers) Get(w http.ResponseWriter, r *http.Request) {
	code, ok := pathCode(w, r)
	if !ok {
		return
	}
	product, err := h.svc.Catalog.GetByCode(r.Context(), code)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, productResponse(product))
}

// Create creates a new product with a system-assigned code.
func (h *ProductHandlers) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateProductRequest](w, r)
	if !ok {
		return
	}
	product, err := h.svc.Catalog.Create(r.Context(), req.Title, req.Price)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, productResponse(product))
}

// Update replaces an existing product's fields.
func (h *ProductHandlers) Update(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[UpdateProductRequest](w, r)
	if !ok {
		return
	}
	code, err := models.NewProductCode(req.Code)
	if err != nil {
		errhttp.WriteError(w, fmt.Errorf("%w: %w", retaildomain.ErrProductNotFound, err))
		return
	}
	if err := h.svc.Catalog.Update(r.Context(), code, req.Title, req.Price); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a product. Purchase history is not checked.
func (h *ProductHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	code, ok := pathCode(w, r)
	if !ok {
		return
	}
	if err := h.svc.Catalog.Delete(r.Context(), code); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathCode parses the {code} route parameter. A string that cannot be a
// product code cannot name a product, so malformed input reads as not found.
func pathCode(w http.ResponseWriter, r *http.Request) (models.ProductCode, bool) {
	code, err := models.NewProductCode(chi.URLParam(r, "code"))
	if err != nil {
		errhttp.WriteError(w, fmt.Errorf("%w: %w", retaildomain.ErrProductNotFound, err))
		return "", false
	}
	return code, true
}
