package catalog

import (
	"context"
	"sync"

	"github.com/invoicebot/backend/internal/domain"
)

// MemoryCatalog is a thread-safe in-memory catalog. It backs local runs and
// tests; production uses MongoCatalog against the shared store.
type MemoryCatalog struct {
	customers []domain.Customer
	products  []domain.Product
	mutex     sync.RWMutex
}

// NewMemoryCatalog creates an empty in-memory catalog
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{}
}

// AddCustomer stores a customer record
func (c *MemoryCatalog) AddCustomer(customer domain.Customer) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.customers = append(c.customers, customer)
}

// AddProduct stores a product record
func (c *MemoryCatalog) AddProduct(product domain.Product) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.products = append(c.products, product)
}

// FindCustomer returns a copy of the first customer whose stored name equals
// the normalized query, or (nil, nil) on a miss.
func (c *MemoryCatalog) FindCustomer(ctx context.Context, name string) (*domain.Customer, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	for i := range c.customers {
		if NamesEqual(c.customers[i].Name, name) {
			customer := c.customers[i]
			return &customer, nil
		}
	}
	return nil, nil
}

// FindProduct returns a copy of the first product whose stored name equals
// the normalized query, or (nil, nil) on a miss.
func (c *MemoryCatalog) FindProduct(ctx context.Context, name string) (*domain.Product, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	for i := range c.products {
		if NamesEqual(c.products[i].Name, name) {
			product := c.products[i]
			return &product, nil
		}
	}
	return nil, nil
}
