// internal/domain/order/entity.go
package order

import (
	"errors"
	"strings"
	"time"
)

// ========================================
// Entity
// ========================================

// Order is the persistent order row. TotalAmount is frozen at submission
// time (minor units); item rows live in the orderitem aggregate.
type Order struct {
	ID     string
	UserID string

	TotalAmount int64
	Status      Status

	// ReceiptPath is the opaque storage object path of the uploaded
	// payment receipt; nil until one is attached.
	ReceiptPath *string

	// AdminNotes is free-form operator text; nil when never set.
	AdminNotes *string

	CreatedAt time.Time
}

// ========================================
// Errors
// ========================================

var (
	ErrInvalidID     = errors.New("order: invalid id")
	ErrInvalidUserID = errors.New("order: invalid userId")
	ErrInvalidAmount = errors.New("order: invalid totalAmount")
	ErrInvalidPath   = errors.New("order: invalid receipt path")
)

// ========================================
// Constructors
// ========================================

// New builds an order at submission time. receiptPath may be nil; when it is
// non-nil the order starts at payment_uploaded, otherwise at pending.
func New(id, userID string, totalAmount int64, receiptPath *string, createdAt time.Time) (Order, error) {
	o := Order{
		ID:          strings.TrimSpace(id),
		UserID:      strings.TrimSpace(userID),
		TotalAmount: totalAmount,
		Status:      StatusPending,
		CreatedAt:   createdAt.UTC(),
	}
	if receiptPath != nil {
		p := strings.TrimSpace(*receiptPath)
		if p == "" {
			return Order{}, ErrInvalidPath
		}
		o.ReceiptPath = &p
		o.Status = StatusPaymentUploaded
	}
	if err := o.validate(); err != nil {
		return Order{}, err
	}
	return o, nil
}

// ========================================
// Behavior (mutators)
// ========================================

// TransitionTo applies a validated lifecycle transition.
func (o *Order) TransitionTo(to Status) error {
	if _, ok := allStatuses[to]; !ok {
		return ErrUnknownStatus
	}
	if !CanTransition(o.Status, to) {
		return ErrInvalidTransition
	}
	o.Status = to
	return nil
}

// ForceStatus sets the status without lifecycle validation. It is the
// administrative override path; the value must still be a known status.
func (o *Order) ForceStatus(to Status) error {
	if _, ok := allStatuses[to]; !ok {
		return ErrUnknownStatus
	}
	o.Status = to
	return nil
}

// AttachReceipt records an uploaded receipt path. When the order is still
// pending it also moves to payment_uploaded; any later state keeps its
// status and only the path is replaced.
func (o *Order) AttachReceipt(path string) error {
	p := strings.TrimSpace(path)
	if p == "" {
		return ErrInvalidPath
	}
	o.ReceiptPath = &p
	if o.Status == StatusPending {
		o.Status = StatusPaymentUploaded
	}
	return nil
}

// SetAdminNotes replaces the operator notes verbatim.
func (o *Order) SetAdminNotes(notes string) {
	o.AdminNotes = &notes
}

// ========================================
// Validation
// ========================================

func (o Order) validate() error {
	if o.ID == "" {
		return ErrInvalidID
	}
	if o.UserID == "" {
		return ErrInvalidUserID
	}
	if o.TotalAmount < 0 {
		return ErrInvalidAmount
	}
	if _, ok := allStatuses[o.Status]; !ok {
		return ErrUnknownStatus
	}
	if o.CreatedAt.IsZero() {
		return errors.New("order: invalid createdAt")
	}
	return nil
}
