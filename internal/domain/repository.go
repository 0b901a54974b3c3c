package domain

import "context"

// CatalogRepository defines read-only name lookups against the catalog store.
// A clean miss is (nil, nil): absence is a first-class outcome, not an error.
// A non-nil error means the store itself failed and must not be treated as a
// miss by callers.
type CatalogRepository interface {
	FindCustomer(ctx context.Context, name string) (*Customer, error)
	FindProduct(ctx context.Context, name string) (*Product, error)
}

// InvoiceRenderer turns a valid assembled order into a document artifact at
// the given path.
type InvoiceRenderer interface {
	Render(order *AssembledOrder, path string) error
}

// Messenger delivers replies back to the requester. Both success and failure
// notices travel through the same channel.
type Messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendDocument(ctx context.Context, chatID int64, path string) error
}
