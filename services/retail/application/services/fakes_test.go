package services

import (
	"context"
	"sync"

	retaildomain "github.com/ghuser/retailstore/services/retail/domain"
	"github.com/ghuser/retailstore/services/retail/domain/models"
)

// fakeCustomerRepo is an in-memory CustomerRepository. Purchases recorded in
// the paired fakePurchaseRepo drive the deletion guard.
type fakeCustomerRepo struct {
	mu        sync.Mutex
	nextID    int64
	customers map[int64]models.Customer
	purchases *fakePurchaseRepo

	existsErr error
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{nextID: 1, customers: make(map[int64]models.Customer)}
}

func (f *fakeCustomerRepo) Create(_ context.Context, c *models.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = f.nextID
	f.nextID++
	f.customers[c.ID] = *c
	return nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id int64) (*models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.customers[id]
	if !ok {
		return nil, retaildomain.ErrCustomerNotFound
	}
	return &c, nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, c *models.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.customers[c.ID]; !ok {
		return retaildomain.ErrCustomerNotFound
	}
	f.customers[c.ID] = *c
	return nil
}

func (f *fakeCustomerRepo) DeleteIfUnreferenced(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.customers[id]; !ok {
		return retaildomain.ErrCustomerNotFound
	}
	if f.purchases != nil && f.purchases.referencesCustomer(id) {
		return retaildomain.ErrCustomerHasPurchases
	}
	delete(f.customers, id)
	return nil
}

func (f *fakeCustomerRepo) Exists(_ context.Context, id int64) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.customers[id]
	return ok, nil
}

// fakeProductRepo is an in-memory ProductRepository. createRejects makes the
// next n Create calls fail with ErrProductCodeTaken to simulate lost races.
type fakeProductRepo struct {
	mu            sync.Mutex
	products      map[models.ProductCode]models.Product
	createRejects int
	createCalls   int
	filterErr     error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[models.ProductCode]models.Product)}
}

func (f *fakeProductRepo) Create(_ context.Context, p *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createRejects > 0 {
		f.createRejects--
		return retaildomain.ErrProductCodeTaken
	}
	if _, ok := f.products[p.Code]; ok {
		return retaildomain.ErrProductCodeTaken
	}
	f.products[p.Code] = *p
	return nil
}

func (f *fakeProductRepo) GetByCode(_ context.Context, code models.ProductCode) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[code]
	if !ok {
		return nil, retaildomain.ErrProductNotFound
	}
	return &p, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[p.Code]; !ok {
		return retaildomain.ErrProductNotFound
	}
	f.products[p.Code] = *p
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, code models.ProductCode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[code]; !ok {
		return retaildomain.ErrProductNotFound
	}
	delete(f.products, code)
	return nil
}

func (f *fakeProductRepo) CodeExists(_ context.Context, code models.ProductCode) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.products[code]
	return ok, nil
}

func (f *fakeProductRepo) FilterExisting(_ context.Context, codes []models.ProductCode) ([]models.ProductCode, error) {
	if f.filterErr != nil {
		return nil, f.filterErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var existing []models.ProductCode
	for _, c := range codes {
		if _, ok := f.products[c]; ok {
			existing = append(existing, c)
		}
	}
	return existing, nil
}

func (f *fakeProductRepo) seed(code models.ProductCode, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[code] = models.Product{Code: code, Title: title}
}

// fakePurchaseRepo is an in-memory PurchaseRepository.
type fakePurchaseRepo struct {
	mu        sync.Mutex
	nextID    int64
	purchases map[int64]models.Purchase
	createErr error
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{nextID: 1, purchases: make(map[int64]models.Purchase)}
}

func (f *fakePurchaseRepo) Create(_ context.Context, p *models.Purchase) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = f.nextID
	f.nextID++
	f.purchases[p.ID] = *p
	return nil
}

func (f *fakePurchaseRepo) GetByID(_ context.Context, id int64) (*models.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.purchases[id]
	if !ok {
		return nil, retaildomain.ErrPurchaseNotFound
	}
	return &p, nil
}

func (f *fakePurchaseRepo) referencesCustomer(customerID int64) bool {
	for _, p := range f.purchases {
		if p.CustomerID == customerID {
			return true
		}
	}
	return false
}
