// internal/domain/cart/repository_port.go
package cart

import "context"

// Repository is a persistence port for Cart.
//
// Storage (Firestore):
// - collection: carts
// - docId: userId
// - fields: userId, items(array, insertion order), createdAt, updatedAt
//
// Load/save are explicit lifecycle calls made by the application layer:
// every mutation is followed by a full-state Upsert under the fixed doc key.
type Repository interface {
	// GetByUserID returns the cart for the user.
	// Not-found returns (nil, nil); the application layer treats nil as
	// "no cart yet" and starts from an empty one.
	GetByUserID(ctx context.Context, userID string) (*Cart, error)

	// Upsert saves the full cart state (create or update).
	Upsert(ctx context.Context, c *Cart) error

	// DeleteByUserID deletes the cart doc (e.g. after order submission).
	DeleteByUserID(ctx context.Context, userID string) error
}
