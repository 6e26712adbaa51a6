// internal/application/usecase/checkout_usecase.go
package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	cartdom "storefront/internal/domain/cart"
	orderdom "storefront/internal/domain/order"
	itemdom "storefront/internal/domain/orderItem"
	receiptdom "storefront/internal/domain/receipt"
)

// ReceiptFile is an optional payment receipt attached at submission.
type ReceiptFile struct {
	Data        []byte
	Ext         string // without dot, e.g. "pdf", "jpg"
	ContentType string
}

// OrderMailer sends the post-submission confirmation (best-effort).
type OrderMailer interface {
	SendOrderConfirmation(ctx context.Context, to string, o orderdom.Order, items []itemdom.OrderItem) error
}

// CheckoutUsecase turns the current cart into a persistent order.
//
// The submission sequence is strictly ordered and each step is gated on the
// previous one succeeding:
//
//  1. optional receipt upload           (failure: ErrUpload, nothing written)
//  2. order row insert                  (failure: ErrPersistence, blob orphaned)
//  3. order item inserts, one per entry (failure: ErrPersistence, order row kept)
//  4. cart clear + best-effort email
//
// There is no transaction and no compensation: a step-3 failure leaves the
// order row with zero item rows, which is the documented contract. Overlapping
// submissions by the same user are rejected with ErrSubmitInFlight.
type CheckoutUsecase struct {
	carts    cartdom.Repository
	orders   orderdom.Repository
	items    itemdom.Repository
	receipts receiptdom.Store
	mailer   OrderMailer // optional

	clock Clock
	newID func() string

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewCheckoutUsecase(
	carts cartdom.Repository,
	orders orderdom.Repository,
	items itemdom.Repository,
	receipts receiptdom.Store,
	mailer OrderMailer,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		carts:    carts,
		orders:   orders,
		items:    items,
		receipts: receipts,
		mailer:   mailer,
		clock:    systemClock{},
		newID:    uuid.NewString,
		inFlight: map[string]struct{}{},
	}
}

// NewCheckoutUsecaseWithClock is useful for tests.
func NewCheckoutUsecaseWithClock(
	carts cartdom.Repository,
	orders orderdom.Repository,
	items itemdom.Repository,
	receipts receiptdom.Store,
	mailer OrderMailer,
	clock Clock,
	newID func() string,
) *CheckoutUsecase {
	uc := NewCheckoutUsecase(carts, orders, items, receipts, mailer)
	if clock != nil {
		uc.clock = clock
	}
	if newID != nil {
		uc.newID = newID
	}
	return uc
}

// Submit places an order from the user's current cart. file may be nil
// (bank-transfer receipt can be uploaded later); notifyEmail may be empty.
func (uc *CheckoutUsecase) Submit(ctx context.Context, userID string, file *ReceiptFile, notifyEmail string) (orderdom.Order, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return orderdom.Order{}, fmt.Errorf("%w: empty userId", ErrValidation)
	}

	if !uc.acquire(uid) {
		return orderdom.Order{}, ErrSubmitInFlight
	}
	defer uc.release(uid)

	c, err := uc.carts.GetByUserID(ctx, uid)
	if err != nil {
		return orderdom.Order{}, fmt.Errorf("%w: load cart: %v", ErrPersistence, err)
	}
	if c.IsEmpty() {
		return orderdom.Order{}, fmt.Errorf("%w: empty cart", ErrValidation)
	}

	snapshot := c.Snapshot()
	total := c.TotalAmount()
	now := uc.clock.Now()

	// 1. optional receipt upload
	var receiptPath *string
	if file != nil {
		path := fmt.Sprintf("receipts/%s/%d.%s", uid, now.UnixMilli(), normalizeExt(file.Ext))
		stored, upErr := uc.receipts.Upload(ctx, path, file.ContentType, file.Data)
		if upErr != nil {
			return orderdom.Order{}, fmt.Errorf("%w: %v", ErrUpload, upErr)
		}
		receiptPath = &stored
	}

	// 2. order row
	o, err := orderdom.New(uc.newID(), uid, total, receiptPath, now)
	if err != nil {
		return orderdom.Order{}, fmt.Errorf("%w: build order: %v", ErrPersistence, err)
	}
	created, err := uc.orders.Create(ctx, o)
	if err != nil {
		return orderdom.Order{}, fmt.Errorf("%w: create order: %v", ErrPersistence, err)
	}

	// 3. item rows (the order row is kept even when this fails)
	rows := make([]itemdom.OrderItem, 0, len(snapshot))
	for _, it := range snapshot {
		row, rowErr := itemdom.New(uc.newID(), created.ID, it.ProductID, it.ProductName, it.Quantity, it.Color, it.Size, it.UnitPrice)
		if rowErr != nil {
			return created, fmt.Errorf("%w: build order item: %v", ErrPersistence, rowErr)
		}
		rows = append(rows, row)
	}
	if err := uc.items.CreateBatch(ctx, rows); err != nil {
		return created, fmt.Errorf("%w: create order items: %v", ErrPersistence, err)
	}

	// 4. clear cart + best-effort confirmation
	if err := uc.carts.DeleteByUserID(ctx, uid); err != nil {
		log.Printf("[checkout] WARN: clear cart failed uid=%s order=%s: %v", uid, created.ID, err)
	}
	if uc.mailer != nil && strings.TrimSpace(notifyEmail) != "" {
		if err := uc.mailer.SendOrderConfirmation(ctx, notifyEmail, created, rows); err != nil {
			log.Printf("[checkout] WARN: confirmation mail failed order=%s: %v", created.ID, err)
		}
	}

	return created, nil
}

func (uc *CheckoutUsecase) acquire(uid string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if _, busy := uc.inFlight[uid]; busy {
		return false
	}
	uc.inFlight[uid] = struct{}{}
	return true
}

func (uc *CheckoutUsecase) release(uid string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	delete(uc.inFlight, uid)
}

func normalizeExt(ext string) string {
	e := strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if e == "" {
		return "bin"
	}
	return strings.ToLower(e)
}
