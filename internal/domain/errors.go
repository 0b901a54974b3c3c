package domain

import "errors"

var (
	// ErrInvalidCommand is returned when a command does not match the
	// /generate invoice grammar or yields no valid items
	ErrInvalidCommand = errors.New("invalid invoice command")

	// ErrCustomerNotFound is returned when a customer lookup has no match
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrProductsNotFound is returned when one or more products have no match
	ErrProductsNotFound = errors.New("products not found")

	// ErrCatalogUnavailable is returned when the catalog store itself fails,
	// as opposed to a clean miss
	ErrCatalogUnavailable = errors.New("catalog store unavailable")

	// ErrRenderFailed is returned when the invoice document could not be produced
	ErrRenderFailed = errors.New("invoice rendering failed")

	// ErrDeliveryFailed is returned when the outbound reply could not be sent
	ErrDeliveryFailed = errors.New("reply delivery failed")
)
