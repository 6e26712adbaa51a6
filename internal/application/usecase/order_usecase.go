// internal/application/usecase/order_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	orderdom "storefront/internal/domain/order"
	itemdom "storefront/internal/domain/orderItem"
)

var ErrOrderInvalidArgument = errors.New("order_usecase: invalid argument")

// OrderWithItems pairs an order row with its item rows for the read side.
type OrderWithItems struct {
	Order orderdom.Order
	Items []itemdom.OrderItem
}

// OrderUsecase orchestrates the order read side and status administration.
type OrderUsecase struct {
	orders orderdom.Repository
	items  itemdom.Repository
}

func NewOrderUsecase(orders orderdom.Repository, items itemdom.Repository) *OrderUsecase {
	return &OrderUsecase{orders: orders, items: items}
}

// =======================
// Queries
// =======================

func (uc *OrderUsecase) GetByID(ctx context.Context, id string) (OrderWithItems, error) {
	oid := strings.TrimSpace(id)
	if oid == "" {
		return OrderWithItems{}, ErrOrderInvalidArgument
	}
	o, err := uc.orders.GetByID(ctx, oid)
	if err != nil {
		return OrderWithItems{}, err
	}
	rows, err := uc.items.ListByOrderID(ctx, oid)
	if err != nil {
		return OrderWithItems{}, err
	}
	return OrderWithItems{Order: o, Items: rows}, nil
}

// ListByUser returns the user's orders with items, newest first.
func (uc *OrderUsecase) ListByUser(ctx context.Context, userID string) ([]OrderWithItems, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrOrderInvalidArgument
	}
	orders, err := uc.orders.ListByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	return uc.attachItems(ctx, orders)
}

// ListAll returns every order with items, newest first (admin surface).
func (uc *OrderUsecase) ListAll(ctx context.Context) ([]OrderWithItems, error) {
	orders, err := uc.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	return uc.attachItems(ctx, orders)
}

// =======================
// Commands
// =======================

// SetStatus applies a lifecycle-validated transition. Illegal edges fail
// with order.ErrInvalidTransition and nothing is written.
func (uc *OrderUsecase) SetStatus(ctx context.Context, id string, to orderdom.Status) (orderdom.Order, error) {
	oid := strings.TrimSpace(id)
	if oid == "" {
		return orderdom.Order{}, ErrOrderInvalidArgument
	}
	o, err := uc.orders.GetByID(ctx, oid)
	if err != nil {
		return orderdom.Order{}, err
	}
	if err := o.TransitionTo(to); err != nil {
		return orderdom.Order{}, err
	}
	if err := uc.orders.UpdateStatus(ctx, oid, o.Status); err != nil {
		return orderdom.Order{}, err
	}
	return o, nil
}

// ForceStatus is the administrative override: it skips lifecycle
// validation but still rejects unknown status values.
func (uc *OrderUsecase) ForceStatus(ctx context.Context, id string, to orderdom.Status) (orderdom.Order, error) {
	oid := strings.TrimSpace(id)
	if oid == "" {
		return orderdom.Order{}, ErrOrderInvalidArgument
	}
	o, err := uc.orders.GetByID(ctx, oid)
	if err != nil {
		return orderdom.Order{}, err
	}
	if err := o.ForceStatus(to); err != nil {
		return orderdom.Order{}, err
	}
	if err := uc.orders.UpdateStatus(ctx, oid, o.Status); err != nil {
		return orderdom.Order{}, err
	}
	return o, nil
}

// SetAdminNotes replaces the operator notes on an order.
func (uc *OrderUsecase) SetAdminNotes(ctx context.Context, id, notes string) (orderdom.Order, error) {
	oid := strings.TrimSpace(id)
	if oid == "" {
		return orderdom.Order{}, ErrOrderInvalidArgument
	}
	o, err := uc.orders.GetByID(ctx, oid)
	if err != nil {
		return orderdom.Order{}, err
	}
	o.SetAdminNotes(notes)
	if err := uc.orders.UpdateAdminNotes(ctx, oid, notes); err != nil {
		return orderdom.Order{}, err
	}
	return o, nil
}

func (uc *OrderUsecase) attachItems(ctx context.Context, orders []orderdom.Order) ([]OrderWithItems, error) {
	out := make([]OrderWithItems, 0, len(orders))
	for _, o := range orders {
		rows, err := uc.items.ListByOrderID(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, OrderWithItems{Order: o, Items: rows})
	}
	return out, nil
}
