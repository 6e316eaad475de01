// Package errhttp maps retail domain errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/retailstore/pkg/httpx"
	retaildomain "github.com/ghuser/retailstore/services/retail/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// A MissingProductsError gets a structured body listing every missing code so
// the caller can fix all references in one round trip.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	var missing *retaildomain.MissingProductsError
	if errors.As(err, &missing) {
		httpx.JSON(w, http.StatusBadRequest, map[string]any{
			"message": "Some of the products were not found.",
			"missing": missing.Codes,
		})
		return
	}
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, retaildomain.ErrCustomerNotFound),
		errors.Is(err, retaildomain.ErrProductNotFound),
		errors.Is(err, retaildomain.ErrPurchaseNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, retaildomain.ErrCustomerHasPurchases),
		errors.Is(err, retaildomain.ErrProductCodeTaken):
		return http.StatusConflict // 409
	case errors.Is(err, retaildomain.ErrInvalidCustomer),
		errors.Is(err, retaildomain.ErrInvalidProduct),
		errors.Is(err, retaildomain.ErrInvalidPurchase):
		return http.StatusBadRequest // 400
	default:
		return http.StatusInternalServerError // 500
	}
}
