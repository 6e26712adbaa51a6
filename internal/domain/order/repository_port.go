package order

import (
	"context"
	"errors"
)

// Repository defines the persistence port for Order.
//
// Storage (Postgres):
// - table: orders(id, user_id, total_amount, status, receipt_url, admin_notes, created_at)
type Repository interface {
	// Queries
	GetByID(ctx context.Context, id string) (Order, error)
	// ListByUserID returns the user's orders, newest first.
	ListByUserID(ctx context.Context, userID string) ([]Order, error)
	// List returns all orders, newest first.
	List(ctx context.Context) ([]Order, error)

	// Commands
	Create(ctx context.Context, o Order) (Order, error)
	UpdateStatus(ctx context.Context, id string, st Status) error
	// UpdateReceipt sets receipt_url and status together (single statement).
	UpdateReceipt(ctx context.Context, id, receiptPath string, st Status) error
	UpdateAdminNotes(ctx context.Context, id, notes string) error
}

// Standard repository errors
var (
	ErrNotFound = errors.New("order: not found")
	ErrConflict = errors.New("order: conflict")
)
