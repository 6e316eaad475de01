package handlers

import (
	"net/http"
	"time"

	"github.com/ghuser/retailstore/pkg/errhttp"
	"github.com/ghuser/retailstore/pkg/httpx"
	pkgvalidator "github.com/ghuser/retailstore/pkg/validator"
	appsvcs "github.com/ghuser/retailstore/services/retail/application/services"
	"github.com/ghuser/retailstore/services/retail/domain/models"
)

// CreatePurchaseRequest is the request body for POST /purchase.
// Line items are validated by the purchase coordinator, not here, so the
// error messages name the violated business rule rather than a missing field.
type CreatePurchaseRequest struct {
	CustomerID       int64                 `json:"customer_id"`
	PurchaseProducts []PurchaseLineRequest `json:"purchase_products"`
}

// PurchaseLineRequest is one requested line item.
type PurchaseLineRequest struct {
	ProductCode string `json:"product_code"`
	Quantity    int    `json:"quantity"`
}

// PurchaseLineResponse is the wire shape of a persisted line item.
type PurchaseLineResponse struct {
	PurchaseID  int64  `json:"purchase_id"`
	ProductCode string `json:"product_code"`
	Quantity    int    `json:"quantity"`
}

// PurchaseResponse is the wire shape of a purchase with its line items.
type PurchaseResponse struct {
	ID               int64                  `json:"id"`
	PurchaseDate     time.Time              `json:"purchase_date"`
	CustomerID       int64                  `json:"customer_id"`
	PurchaseProducts []PurchaseLineResponse `json:"purchase_products"`
}

func purchaseResponse(p *models.Purchase) PurchaseResponse {
	resp := PurchaseResponse{
		ID:               p.ID,
		PurchaseDate:     p.PurchaseDate,
		CustomerID:       p.CustomerID,
		PurchaseProducts: make([]PurchaseLineResponse, len(p.Lines)),
	}
	for i, l := range p.Lines {
		resp.PurchaseProducts[i] = PurchaseLineResponse{
			PurchaseID:  p.ID,
			ProductCode: l.ProductCode.String(),
			Quantity:    l.Quantity,
		}
	}
	return resp
}

// PurchaseHandlers serves the purchase endpoints.
type PurchaseHandlers struct {
	svc *appsvcs.Services
}

// NewPurchaseHandlers returns purchase handlers backed by the given services.
func NewPurchaseHandlers(svc *appsvcs.Services) *PurchaseHandlers {
	return &PurchaseHandlers{svc: svc}
}

// Get returns a purchase by id with its full line-item set.
func (h *PurchaseHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	purchase, err := h.svc.Purchases.GetByID(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, purchaseResponse(purchase))
}

// Create records a purchase for an existing customer and existing products.
func (h *PurchaseHandlers) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreatePurchaseRequest](w, r)
	if !ok {
		return
	}
	lines := make([]appsvcs.PurchaseLineInput, len(req.PurchaseProducts))
	for i, l := range req.PurchaseProducts {
		lines[i] = appsvcs.PurchaseLineInput{ProductCode: l.ProductCode, Quantity: l.Quantity}
	}
	purchase, err := h.svc.Purchases.Create(r.Context(), req.CustomerID, lines)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, purchaseResponse(purchase))
}
