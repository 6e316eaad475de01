package services

import (
	"github.com/ghuser/retailstore/pkg/app"
	"github.com/ghuser/retailstore/pkg/cache"
	"github.com/ghuser/retailstore/services/retail/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Customers *CustomerService
	Catalog   *CatalogService
	Purchases *PurchaseService
}

// New wires all retail application services with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	customers := postgres.NewCustomerRepository(a.Db)
	products := postgres.NewProductRepository(a.Db)
	purchases := postgres.NewPurchaseRepository(a.Db, a.EventBus)
	productCache := cache.NewProductCache(a.Redis)
	return &Services{
		Customers: NewCustomerService(customers),
		Catalog:   NewCatalogService(products, productCache),
		Purchases: NewPurchaseService(purchases, customers, products),
	}
}
