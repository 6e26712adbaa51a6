// internal/domain/orderItem/entity.go
package orderitem

import (
	"errors"
	"strings"
)

// OrderItem is an immutable per-order line row: a denormalized copy of the
// cart entry at submission time (name and unit price frozen).
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	Quantity    int
	Color       string
	Size        string
	UnitPrice   int64 // minor units
}

// Errors
var (
	ErrInvalidID        = errors.New("orderItem: invalid id")
	ErrInvalidOrderID   = errors.New("orderItem: invalid orderId")
	ErrInvalidProductID = errors.New("orderItem: invalid productId")
	ErrInvalidQuantity  = errors.New("orderItem: invalid quantity")
	ErrInvalidUnitPrice = errors.New("orderItem: invalid unitPrice")
)

// Policy
var (
	MinQuantity = 1 // inclusive
)

// New builds an order item row. Color/size may be empty (variant-less
// products); everything else is required.
func New(id, orderID, productID, productName string, quantity int, color, size string, unitPrice int64) (OrderItem, error) {
	oi := OrderItem{
		ID:          strings.TrimSpace(id),
		OrderID:     strings.TrimSpace(orderID),
		ProductID:   strings.TrimSpace(productID),
		ProductName: strings.TrimSpace(productName),
		Quantity:    quantity,
		Color:       strings.TrimSpace(color),
		Size:        strings.TrimSpace(size),
		UnitPrice:   unitPrice,
	}
	if err := oi.validate(); err != nil {
		return OrderItem{}, err
	}
	return oi, nil
}

// Subtotal returns unitPrice × quantity in minor units.
func (o OrderItem) Subtotal() int64 {
	return o.UnitPrice * int64(o.Quantity)
}

func (o OrderItem) validate() error {
	if o.ID == "" {
		return ErrInvalidID
	}
	if o.OrderID == "" {
		return ErrInvalidOrderID
	}
	if o.ProductID == "" {
		return ErrInvalidProductID
	}
	if o.Quantity < MinQuantity {
		return ErrInvalidQuantity
	}
	if o.UnitPrice < 0 {
		return ErrInvalidUnitPrice
	}
	return nil
}
