// internal/domain/order/status.go
package order

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the closed set of order lifecycle states.
type Status string

const (
	StatusPending         Status = "pending"
	StatusPaymentUploaded Status = "payment_uploaded"
	StatusConfirmed       Status = "confirmed"
	StatusShipped         Status = "shipped"
	StatusDelivered       Status = "delivered"
	StatusCancelled       Status = "cancelled"
)

var ErrUnknownStatus = errors.New("order: unknown status")

// ErrInvalidTransition marks a status change not allowed by the lifecycle.
var ErrInvalidTransition = errors.New("order: invalid status transition")

// allStatuses is the closed value set; anything else is rejected at parse.
var allStatuses = map[Status]struct{}{
	StatusPending:         {},
	StatusPaymentUploaded: {},
	StatusConfirmed:       {},
	StatusShipped:         {},
	StatusDelivered:       {},
	StatusCancelled:       {},
}

// transitions encodes the forward chain:
// pending → payment_uploaded → confirmed → shipped → delivered.
// cancelled is reachable from any non-terminal state (handled in CanTransition).
var transitions = map[Status]Status{
	StatusPending:         StatusPaymentUploaded,
	StatusPaymentUploaded: StatusConfirmed,
	StatusConfirmed:       StatusShipped,
	StatusShipped:         StatusDelivered,
}

// ParseStatus validates a raw string against the closed status set.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.TrimSpace(s))
	if _, ok := allStatuses[st]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return st, nil
}

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether from → to is a legal lifecycle edge.
func CanTransition(from, to Status) bool {
	if _, ok := allStatuses[from]; !ok {
		return false
	}
	if _, ok := allStatuses[to]; !ok {
		return false
	}
	if from.Terminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return transitions[from] == to
}
