package usecase

import (
	"context"
	"fmt"

	"github.com/invoicebot/backend/internal/domain"
	"github.com/shopspring/decimal"
)

// ProductLookup resolves one product name against the catalog.
// A clean miss is (nil, nil); a non-nil error is an infrastructure failure.
type ProductLookup func(ctx context.Context, name string) (*domain.Product, error)

var oneHundred = decimal.NewFromInt(100)

// AssembleOrder resolves and prices every item of a parsed request.
//
// Items are resolved sequentially in input order. Misses accumulate into
// Missing in first-seen order and do not stop later items from resolving;
// a single miss still makes the whole order terminal-invalid, so resolved
// line items are never partially invoiced. An absent customer short-circuits
// before any product lookup. The returned error is non-nil only for catalog
// infrastructure failures, never for not-found outcomes.
func AssembleOrder(
	ctx context.Context,
	request *domain.ParsedRequest,
	customer *domain.Customer,
	lookup ProductLookup,
	taxRatePercent decimal.Decimal,
) (*domain.AssembledOrder, error) {
	if customer == nil {
		return &domain.AssembledOrder{Status: domain.StatusCustomerNotFound}, nil
	}

	order := &domain.AssembledOrder{
		Status:   domain.StatusValid,
		Customer: customer,
	}

	for _, item := range request.Items {
		product, err := lookup(ctx, item.ProductName)
		if err != nil {
			return nil, fmt.Errorf("looking up product %q: %w", item.ProductName, err)
		}
		if product == nil {
			order.Missing = append(order.Missing, item.ProductName)
			continue
		}

		quantity := decimal.NewFromInt(int64(item.Quantity))
		order.Items = append(order.Items, domain.LineItem{
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   product.UnitPrice,
			Subtotal:    product.UnitPrice.Mul(quantity),
		})
	}

	if len(order.Missing) > 0 {
		order.Status = domain.StatusProductsNotFound
		order.Items = nil
		return order, nil
	}

	for _, line := range order.Items {
		order.Subtotal = order.Subtotal.Add(line.Subtotal)
	}
	order.Tax = order.Subtotal.Mul(taxRatePercent).Div(oneHundred)
	order.Total = order.Subtotal.Add(order.Tax)

	return order, nil
}
