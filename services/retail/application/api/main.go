package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/retailstore/pkg/app"
	"github.com/ghuser/retailstore/services/retail/application/handlers"
	appsvcs "github.com/ghuser/retailstore/services/retail/application/services"
)

// RetailRoutes registers the retail endpoints on the provided chi router.
func RetailRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	customers := handlers.NewCustomerHandlers(svcs)
	products := handlers.NewProductHandlers(svcs)
	purchases := handlers.NewPurchaseHandlers(svcs)

	r.Group(func(r chi.Router) {
		r.Route("/customer", func(r chi.Router) {
			r.Get("/{id}", customers.Get)
			r.Post("/", customers.Create)
			r.Put("/", customers.Update)
			r.Delete("/{id}", customers.Delete)
		})
		r.Route("/product", func(r chi.Router) {
			r.Get("/{code}", products.Get)
			r.Post("/", products.Create)
			r.Put("/", products.Update)
			r.Delete("/{code}", products.Delete)
		})
		r.Route("/purchase", func(r chi.Router) {
			r.Get("/{id}", purchases.Get)
			r.Post("/", purchases.Create)
		})
	})
}
