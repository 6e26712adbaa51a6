// internal/application/usecase/receipt_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	orderdom "storefront/internal/domain/order"
	receiptdom "storefront/internal/domain/receipt"
)

var ErrReceiptInvalidArgument = errors.New("receipt_usecase: invalid argument")

// ReceiptUsecase handles post-submission receipt upload and signed viewing.
type ReceiptUsecase struct {
	orders   orderdom.Repository
	receipts receiptdom.Store
	clock    Clock
}

func NewReceiptUsecase(orders orderdom.Repository, receipts receiptdom.Store) *ReceiptUsecase {
	return &ReceiptUsecase{orders: orders, receipts: receipts, clock: systemClock{}}
}

// NewReceiptUsecaseWithClock is useful for tests.
func NewReceiptUsecaseWithClock(orders orderdom.Repository, receipts receiptdom.Store, clock Clock) *ReceiptUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &ReceiptUsecase{orders: orders, receipts: receipts, clock: clock}
}

// Upload attaches a payment receipt to an existing order owned by userID.
// The blob lands under receipts/{userID}/{orderID}-{ts}.{ext}; a pending
// order moves to payment_uploaded, any other status only gets the new path.
func (uc *ReceiptUsecase) Upload(ctx context.Context, userID, orderID string, file ReceiptFile) (orderdom.Order, error) {
	uid := strings.TrimSpace(userID)
	oid := strings.TrimSpace(orderID)
	if uid == "" || oid == "" || len(file.Data) == 0 {
		return orderdom.Order{}, ErrReceiptInvalidArgument
	}

	o, err := uc.orders.GetByID(ctx, oid)
	if err != nil {
		return orderdom.Order{}, err
	}
	if o.UserID != uid {
		return orderdom.Order{}, orderdom.ErrNotFound
	}

	path := fmt.Sprintf("receipts/%s/%s-%d.%s", uid, oid, uc.clock.Now().UnixMilli(), normalizeExt(file.Ext))
	stored, err := uc.receipts.Upload(ctx, path, file.ContentType, file.Data)
	if err != nil {
		return orderdom.Order{}, fmt.Errorf("%w: %v", ErrUpload, err)
	}

	if err := o.AttachReceipt(stored); err != nil {
		return orderdom.Order{}, err
	}
	if err := uc.orders.UpdateReceipt(ctx, oid, stored, o.Status); err != nil {
		return orderdom.Order{}, fmt.Errorf("%w: update receipt: %v", ErrPersistence, err)
	}
	return o, nil
}

// ViewURL issues a fresh signed GET URL for a stored receipt path. Validity
// is fixed at receipt.ViewURLValidity; URLs are never cached or reused.
func (uc *ReceiptUsecase) ViewURL(ctx context.Context, objectPath string) (string, error) {
	p := strings.TrimSpace(objectPath)
	if p == "" {
		return "", ErrReceiptInvalidArgument
	}
	return uc.receipts.IssueViewURL(ctx, p, receiptdom.ViewURLValidity)
}
