package domain

import "github.com/shopspring/decimal"

// RequestItem is one (product name, quantity) pair extracted from a command.
// The product name is kept exactly as typed; casing is resolved later by the
// catalog lookup.
type RequestItem struct {
	ProductName string
	Quantity    int
}

// ParsedRequest is the structured form of a /generate command.
// Invariants: CustomerName is non-empty, Items is non-empty, and every
// quantity is >= 1. A value violating these is never produced by the parser.
type ParsedRequest struct {
	CustomerName string
	Items        []RequestItem
}

// Customer is a customer record as stored in the catalog.
// Name carries the canonical casing from the store, regardless of how the
// query was typed.
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
}

// Product is a product record as stored in the catalog.
type Product struct {
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	MRP         decimal.Decimal `json:"mrp,omitempty"`
	Description string          `json:"description,omitempty"`
	Seller      string          `json:"seller,omitempty"`
}

// LineItem is one resolved product entry within an order.
type LineItem struct {
	ProductName string          `json:"name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderStatus classifies the terminal state of an assembled order.
type OrderStatus int

const (
	// StatusValid means every item resolved and totals are computed;
	// the order is eligible for rendering.
	StatusValid OrderStatus = iota
	// StatusCustomerNotFound means the customer lookup returned nothing;
	// no product resolution was attempted.
	StatusCustomerNotFound
	// StatusProductsNotFound means one or more items did not resolve;
	// Missing lists their names.
	StatusProductsNotFound
)

// AssembledOrder is the result of resolving and pricing a ParsedRequest.
// Either Status is StatusValid and the totals are set, or Status marks the
// failure and the order must not be rendered.
type AssembledOrder struct {
	Status   OrderStatus
	Customer *Customer
	Items    []LineItem
	// Missing holds unresolved product names in first-seen order.
	Missing  []string
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Renderable reports whether the order may be handed to the renderer.
func (o *AssembledOrder) Renderable() bool {
	return o != nil && o.Status == StatusValid
}
