// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	cartdom "storefront/internal/domain/cart"
)

var (
	ErrCartInvalidArgument = errors.New("cart_usecase: invalid argument")
)

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// CartUsecase coordinates cart operations. Every mutation is a full
// load-mutate-save cycle against the injected repository; an absent doc
// hydrates as an empty cart.
type CartUsecase struct {
	repo  cartdom.Repository
	clock Clock
}

func NewCartUsecase(repo cartdom.Repository) *CartUsecase {
	return &CartUsecase{
		repo:  repo,
		clock: systemClock{},
	}
}

// NewCartUsecaseWithClock is useful for tests.
func NewCartUsecaseWithClock(repo cartdom.Repository, clock Clock) *CartUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &CartUsecase{repo: repo, clock: clock}
}

// Get returns the cart for userID; an absent doc is returned as an empty
// cart (not persisted until the first mutation).
func (uc *CartUsecase) Get(ctx context.Context, userID string) (*cartdom.Cart, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return cartdom.New(uid, uc.clock.Now()), nil
	}
	return c, nil
}

// AddItem merges it into the cart and persists the full state.
// it.Quantity must be >= 1 and it.UnitPrice >= 0.
func (uc *CartUsecase) AddItem(ctx context.Context, userID string, it cartdom.Item) (*cartdom.Cart, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" || strings.TrimSpace(it.ProductID) == "" || it.Quantity < 1 || it.UnitPrice < 0 {
		return nil, ErrCartInvalidArgument
	}

	now := uc.clock.Now()

	c, err := uc.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = cartdom.New(uid, now)
	}

	c.AddItem(it, now)
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetItemQuantity sets the quantity of the matching entry.
// quantity < 1 routes to removal, matching the storefront's decrement UX.
func (uc *CartUsecase) SetItemQuantity(ctx context.Context, userID, productID string, quantity int, color, size string) (*cartdom.Cart, error) {
	uid := strings.TrimSpace(userID)
	pid := strings.TrimSpace(productID)
	if uid == "" || pid == "" {
		return nil, ErrCartInvalidArgument
	}

	if quantity < 1 {
		return uc.RemoveItem(ctx, uid, pid, color, size)
	}

	now := uc.clock.Now()

	c, err := uc.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = cartdom.New(uid, now)
	}

	c.SetQuantity(pid, quantity, color, size, now)
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveItem removes the entry matching (productID, color, size) exactly.
func (uc *CartUsecase) RemoveItem(ctx context.Context, userID, productID, color, size string) (*cartdom.Cart, error) {
	uid := strings.TrimSpace(userID)
	pid := strings.TrimSpace(productID)
	if uid == "" || pid == "" {
		return nil, ErrCartInvalidArgument
	}

	now := uc.clock.Now()

	c, err := uc.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = cartdom.New(uid, now)
	}

	c.RemoveItem(pid, color, size, now)
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear deletes the cart doc.
func (uc *CartUsecase) Clear(ctx context.Context, userID string) error {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return ErrCartInvalidArgument
	}
	return uc.repo.DeleteByUserID(ctx, uid)
}
