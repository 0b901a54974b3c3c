package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/invoicebot/backend/internal/domain"
	"github.com/shopspring/decimal"
)

func lookupFrom(products map[string]*domain.Product) ProductLookup {
	return func(ctx context.Context, name string) (*domain.Product, error) {
		return products[name], nil
	}
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestAssembleOrder_Valid(t *testing.T) {
	ctx := context.Background()
	customer := &domain.Customer{Name: "Bob", Phone: "555"}

	t.Run("single item with 18 percent tax", func(t *testing.T) {
		request := &domain.ParsedRequest{
			CustomerName: "Bob",
			Items:        []domain.RequestItem{{ProductName: "pen", Quantity: 1}},
		}
		lookup := lookupFrom(map[string]*domain.Product{
			"pen": {Name: "Pen", UnitPrice: decimal.NewFromInt(5)},
		})

		order, err := AssembleOrder(ctx, request, customer, lookup, decimal.NewFromInt(18))
		if err != nil {
			t.Fatalf("AssembleOrder() error = %v, want nil", err)
		}

		if order.Status != domain.StatusValid {
			t.Fatalf("Status = %v, want StatusValid", order.Status)
		}
		if !order.Renderable() {
			t.Error("Renderable() = false, want true")
		}
		if len(order.Items) != 1 {
			t.Fatalf("len(Items) = %d, want 1", len(order.Items))
		}
		// Line item carries the catalog's canonical casing, not the query's.
		if order.Items[0].ProductName != "Pen" {
			t.Errorf("ProductName = %q, want Pen", order.Items[0].ProductName)
		}
		if !order.Subtotal.Equal(decimal.NewFromInt(5)) {
			t.Errorf("Subtotal = %s, want 5", order.Subtotal)
		}
		if !order.Tax.Equal(mustDecimal(t, "0.9")) {
			t.Errorf("Tax = %s, want 0.9", order.Tax)
		}
		if !order.Total.Equal(mustDecimal(t, "5.9")) {
			t.Errorf("Total = %s, want 5.9", order.Total)
		}
	})

	t.Run("price 50 qty 2 gives subtotal 100 tax 18 total 118", func(t *testing.T) {
		request := &domain.ParsedRequest{
			CustomerName: "Bob",
			Items:        []domain.RequestItem{{ProductName: "Stapler", Quantity: 2}},
		}
		lookup := lookupFrom(map[string]*domain.Product{
			"Stapler": {Name: "Stapler", UnitPrice: decimal.NewFromInt(50)},
		})

		order, err := AssembleOrder(ctx, request, customer, lookup, decimal.NewFromInt(18))
		if err != nil {
			t.Fatalf("AssembleOrder() error = %v, want nil", err)
		}

		if !order.Subtotal.Equal(decimal.NewFromInt(100)) {
			t.Errorf("Subtotal = %s, want 100", order.Subtotal)
		}
		if !order.Tax.Equal(decimal.NewFromInt(18)) {
			t.Errorf("Tax = %s, want 18", order.Tax)
		}
		if !order.Total.Equal(decimal.NewFromInt(118)) {
			t.Errorf("Total = %s, want 118", order.Total)
		}
	})

	t.Run("multiple items sum in input order", func(t *testing.T) {
		request := &domain.ParsedRequest{
			CustomerName: "Bob",
			Items: []domain.RequestItem{
				{ProductName: "Pen", Quantity: 3},
				{ProductName: "Notebook", Quantity: 2},
			},
		}
		lookup := lookupFrom(map[string]*domain.Product{
			"Pen":      {Name: "Pen", UnitPrice: mustDecimal(t, "5.50")},
			"Notebook": {Name: "Notebook", UnitPrice: decimal.NewFromInt(40)},
		})

		order, err := AssembleOrder(ctx, request, customer, lookup, decimal.NewFromInt(10))
		if err != nil {
			t.Fatalf("AssembleOrder() error = %v, want nil", err)
		}

		if len(order.Items) != 2 {
			t.Fatalf("len(Items) = %d, want 2", len(order.Items))
		}
		if !order.Items[0].Subtotal.Equal(mustDecimal(t, "16.50")) {
			t.Errorf("Items[0].Subtotal = %s, want 16.50", order.Items[0].Subtotal)
		}
		if !order.Subtotal.Equal(mustDecimal(t, "96.50")) {
			t.Errorf("Subtotal = %s, want 96.50", order.Subtotal)
		}
		if !order.Tax.Equal(mustDecimal(t, "9.65")) {
			t.Errorf("Tax = %s, want 9.65", order.Tax)
		}
		if !order.Total.Equal(mustDecimal(t, "106.15")) {
			t.Errorf("Total = %s, want 106.15", order.Total)
		}
	})
}

func TestAssembleOrder_CustomerNotFound(t *testing.T) {
	request := &domain.ParsedRequest{
		CustomerName: "Ghost",
		Items:        []domain.RequestItem{{ProductName: "Pen", Quantity: 1}},
	}

	lookupCalled := false
	lookup := func(ctx context.Context, name string) (*domain.Product, error) {
		lookupCalled = true
		return nil, nil
	}

	order, err := AssembleOrder(context.Background(), request, nil, lookup, decimal.NewFromInt(18))
	if err != nil {
		t.Fatalf("AssembleOrder() error = %v, want nil", err)
	}

	if order.Status != domain.StatusCustomerNotFound {
		t.Errorf("Status = %v, want StatusCustomerNotFound", order.Status)
	}
	if order.Renderable() {
		t.Error("Renderable() = true, want false")
	}
	if lookupCalled {
		t.Error("product lookup ran despite absent customer")
	}
}

func TestAssembleOrder_ProductsNotFound(t *testing.T) {
	ctx := context.Background()
	customer := &domain.Customer{Name: "Bob"}

	t.Run("one missing product invalidates the order", func(t *testing.T) {
		request := &domain.ParsedRequest{
			CustomerName: "Bob",
			Items: []domain.RequestItem{
				{ProductName: "A", Quantity: 2},
				{ProductName: "B", Quantity: 3},
			},
		}
		lookup := lookupFrom(map[string]*domain.Product{
			"A": {Name: "A", UnitPrice: decimal.NewFromInt(10)},
		})

		order, err := AssembleOrder(ctx, request, customer, lookup, decimal.NewFromInt(18))
		if err != nil {
			t.Fatalf("AssembleOrder() error = %v, want nil", err)
		}

		if order.Status != domain.StatusProductsNotFound {
			t.Errorf("Status = %v, want StatusProductsNotFound", order.Status)
		}
		if len(order.Missing) != 1 || order.Missing[0] != "B" {
			t.Errorf("Missing = %v, want [B]", order.Missing)
		}
		// Resolved items are discarded, never partially invoiced.
		if len(order.Items) != 0 {
			t.Errorf("len(Items) = %d, want 0", len(order.Items))
		}
		if order.Renderable() {
			t.Error("Renderable() = true, want false")
		}
	})

	t.Run("all misses accumulate in first-seen order", func(t *testing.T) {
		request := &domain.ParsedRequest{
			CustomerName: "Bob",
			Items: []domain.RequestItem{
				{ProductName: "X", Quantity: 1},
				{ProductName: "A", Quantity: 1},
				{ProductName: "Y", Quantity: 1},
			},
		}
		lookup := lookupFrom(map[string]*domain.Product{
			"A": {Name: "A", UnitPrice: decimal.NewFromInt(10)},
		})

		order, err := AssembleOrder(ctx, request, customer, lookup, decimal.NewFromInt(18))
		if err != nil {
			t.Fatalf("AssembleOrder() error = %v, want nil", err)
		}

		if len(order.Missing) != 2 || order.Missing[0] != "X" || order.Missing[1] != "Y" {
			t.Errorf("Missing = %v, want [X Y]", order.Missing)
		}
	})
}

func TestAssembleOrder_LookupError(t *testing.T) {
	request := &domain.ParsedRequest{
		CustomerName: "Bob",
		Items:        []domain.RequestItem{{ProductName: "Pen", Quantity: 1}},
	}
	lookup := func(ctx context.Context, name string) (*domain.Product, error) {
		return nil, domain.ErrCatalogUnavailable
	}

	order, err := AssembleOrder(context.Background(), request, &domain.Customer{Name: "Bob"}, lookup, decimal.NewFromInt(18))
	if !errors.Is(err, domain.ErrCatalogUnavailable) {
		t.Errorf("AssembleOrder() error = %v, want ErrCatalogUnavailable", err)
	}
	if order != nil {
		t.Errorf("order = %+v, want nil on infrastructure error", order)
	}
}
