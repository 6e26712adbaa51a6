package orderitem

import (
	"context"
	"errors"
)

// Repository defines the persistence port for OrderItem.
//
// Storage (Postgres):
// - table: order_items(id, order_id, product_id, product_name, quantity,
//   color, size, unit_price)
type Repository interface {
	// CreateBatch inserts the rows in the given order, stopping at the
	// first failure. Rows inserted before the failure are kept.
	CreateBatch(ctx context.Context, items []OrderItem) error

	// ListByOrderID returns the rows for an order in insertion order.
	ListByOrderID(ctx context.Context, orderID string) ([]OrderItem, error)
}

// Common repository errors
var (
	ErrNotFound = errors.New("orderItem: not found")
	ErrConflict = errors.New("orderItem: conflict")
)
