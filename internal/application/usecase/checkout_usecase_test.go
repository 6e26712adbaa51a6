package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "storefront/internal/domain/cart"
	orderdom "storefront/internal/domain/order"
	receiptdom "storefront/internal/domain/receipt"
)

var submitAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func seedCart(repo *cartRepoMock, userID string) *cartdom.Cart {
	c := cartdom.New(userID, submitAt)
	c.AddItem(cartdom.Item{ProductID: "p1", ProductName: "Tee", Quantity: 2, UnitPrice: 1000, Color: "red", Size: "M"}, submitAt)
	c.AddItem(cartdom.Item{ProductID: "p2", ProductName: "Sticker", Quantity: 1, UnitPrice: 500}, submitAt)
	repo.carts[userID] = c
	return c
}

func newCheckoutForTest(carts *cartRepoMock, orders *orderRepoMock, items *itemRepoMock, receipts receiptdom.Store, mailer OrderMailer) *CheckoutUsecase {
	return NewCheckoutUsecaseWithClock(carts, orders, items, receipts, mailer, fixedClock{submitAt}, seqID())
}

func TestSubmit_WithoutReceipt(t *testing.T) {
	carts := newCartRepoMock()
	orders := newOrderRepoMock()
	items := newItemRepoMock()
	receipts := &receiptStoreMock{}
	seedCart(carts, "user-1")

	uc := newCheckoutForTest(carts, orders, items, receipts, nil)

	o, err := uc.Submit(context.Background(), "user-1", nil, "")
	require.NoError(t, err)

	assert.Equal(t, orderdom.StatusPending, o.Status)
	assert.Nil(t, o.ReceiptPath)
	assert.Equal(t, int64(2500), o.TotalAmount)
	assert.Empty(t, receipts.uploadedPaths)

	rows, err := items.ListByOrderID(context.Background(), o.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "p1", rows[0].ProductID)
	assert.Equal(t, 2, rows[0].Quantity)
	assert.Equal(t, int64(1000), rows[0].UnitPrice)
	assert.Equal(t, "p2", rows[1].ProductID)

	// cart is gone after a successful submit
	assert.NotContains(t, carts.carts, "user-1")
}

func TestSubmit_WithReceipt(t *testing.T) {
	carts := newCartRepoMock()
	orders := newOrderRepoMock()
	items := newItemRepoMock()
	receipts := &receiptStoreMock{}
	seedCart(carts, "user-1")

	uc := newCheckoutForTest(carts, orders, items, receipts, nil)

	file := &ReceiptFile{Data: []byte("%PDF"), Ext: ".PDF", ContentType: "application/pdf"}
	o, err := uc.Submit(context.Background(), "user-1", file, "")
	require.NoError(t, err)

	assert.Equal(t, orderdom.StatusPaymentUploaded, o.Status)
	require.NotNil(t, o.ReceiptPath)

	wantPath := fmt.Sprintf("receipts/user-1/%d.pdf", submitAt.UnixMilli())
	assert.Equal(t, wantPath, *o.ReceiptPath)
	require.Len(t, receipts.uploadedPaths, 1)
	assert.Equal(t, wantPath, receipts.uploadedPaths[0])
	assert.Equal(t, "application/pdf", receipts.uploadedTypes[0])
}

func TestSubmit_ReceiptExtDefaultsToBin(t *testing.T) {
	carts := newCartRepoMock()
	receipts := &receiptStoreMock{}
	seedCart(carts, "user-1")

	uc := newCheckoutForTest(carts, newOrderRepoMock(), newItemRepoMock(), receipts, nil)

	_, err := uc.Submit(context.Background(), "user-1", &ReceiptFile{Data: []byte("x")}, "")
	require.NoError(t, err)

	require.Len(t, receipts.uploadedPaths, 1)
	assert.Equal(t, fmt.Sprintf("receipts/user-1/%d.bin", submitAt.UnixMilli()), receipts.uploadedPaths[0])
}

func TestSubmit_EmptyUserID(t *testing.T) {
	carts := newCartRepoMock()
	uc := newCheckoutForTest(carts, newOrderRepoMock(), newItemRepoMock(), &receiptStoreMock{}, nil)

	_, err := uc.Submit(context.Background(), "  ", nil, "")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, carts.getCalls)
}

func TestSubmit_EmptyCart(t *testing.T) {
	carts := newCartRepoMock()
	orders := newOrderRepoMock()
	receipts := &receiptStoreMock{}

	uc := newCheckoutForTest(carts, orders, newItemRepoMock(), receipts, nil)

	_, err := uc.Submit(context.Background(), "user-1", nil, "")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, orders.createCalls)
	assert.Empty(t, receipts.uploadedPaths)
}

func TestSubmit_CartLoadError(t *testing.T) {
	carts := newCartRepoMock()
	carts.getErr = errors.New("firestore down")

	uc := newCheckoutForTest(carts, newOrderRepoMock(), newItemRepoMock(), &receiptStoreMock{}, nil)

	_, err := uc.Submit(context.Background(), "user-1", nil, "")
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestSubmit_UploadFailureWritesNothing(t *testing.T) {
	carts := newCartRepoMock()
	orders := newOrderRepoMock()
	items := newItemRepoMock()
	receipts := &receiptStoreMock{uploadErr: errors.New("gcs down")}
	seedCart(carts, "user-1")

	uc := newCheckoutForTest(carts, orders, items, receipts, nil)

	_, err := uc.Submit(context.Background(), "user-1", &ReceiptFile{Data: []byte("x"), Ext: "pdf"}, "")
	assert.ErrorIs(t, err, ErrUpload)

	assert.Zero(t, orders.createCalls)
	assert.Empty(t, items.rows)
	assert.Contains(t, carts.carts, "user-1")
}

func TestSubmit_OrderInsertFailureKeepsCart(t *testing.T) {
	carts := newCartRepoMock()
	orders := newOrderRepoMock()
	orders.createErr = errors.New("db down")
	items := newItemRepoMock()
	seedCart(carts, "user-1")

	uc := newCheckoutForTest(carts, orders, items, &receiptStoreMock{}, nil)

	_, err := uc.Submit(context.Background(), "user-1", nil, "")
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Empty(t, items.rows)
	assert.Contains(t, carts.carts, "user-1")
}

func TestSubmit_ItemInsertFailureKeepsOrderRow(t *testing.T) {
	carts := newCartRepoMock()
	orders := newOrderRepoMock()
	items := newItemRepoMock()
	items.failAfter = 1 // second row fails
	seedCart(carts, "user-1")

	uc := newCheckoutForTest(carts, orders, items, &receiptStoreMock{}, nil)

	o, err := uc.Submit(context.Background(), "user-1", nil, "")
	require.ErrorIs(t, err, ErrPersistence)

	// the order row survives; the returned order identifies it
	require.NotEmpty(t, o.ID)
	stored, getErr := orders.GetByID(context.Background(), o.ID)
	require.NoError(t, getErr)
	assert.Equal(t, int64(2500), stored.TotalAmount)

	// only the rows inserted before the failure exist, and the cart is kept
	assert.Len(t, items.rows, 1)
	assert.Contains(t, carts.carts, "user-1")
	assert.Zero(t, carts.deleteCalls)
}

func TestSubmit_FirstItemInsertFailureLeavesOrderWithZeroRows(t *testing.T) {
	carts := newCartRepoMock()
	orders := newOrderRepoMock()
	items := newItemRepoMock()
	items.failAfter = 0
	seedCart(carts, "user-1")

	uc := newCheckoutForTest(carts, orders, items, &receiptStoreMock{}, nil)

	o, err := uc.Submit(context.Background(), "user-1", nil, "")
	require.ErrorIs(t, err, ErrPersistence)

	_, getErr := orders.GetByID(context.Background(), o.ID)
	require.NoError(t, getErr)
	rows, listErr := items.ListByOrderID(context.Background(), o.ID)
	require.NoError(t, listErr)
	assert.Empty(t, rows)
}

func TestSubmit_SendsConfirmationMail(t *testing.T) {
	carts := newCartRepoMock()
	mailer := &mailerMock{}
	seedCart(carts, "user-1")

	uc := newCheckoutForTest(carts, newOrderRepoMock(), newItemRepoMock(), &receiptStoreMock{}, mailer)

	o, err := uc.Submit(context.Background(), "user-1", nil, "buyer@example.com")
	require.NoError(t, err)

	require.Len(t, mailer.sentTo, 1)
	assert.Equal(t, "buyer@example.com", mailer.sentTo[0])
	assert.Equal(t, o.ID, mailer.sentOrder[0].ID)
}

func TestSubmit_MailFailureDoesNotFailOrder(t *testing.T) {
	carts := newCartRepoMock()
	mailer := &mailerMock{err: errors.New("sendgrid down")}
	seedCart(carts, "user-1")

	uc := newCheckoutForTest(carts, newOrderRepoMock(), newItemRepoMock(), &receiptStoreMock{}, mailer)

	_, err := uc.Submit(context.Background(), "user-1", nil, "buyer@example.com")
	assert.NoError(t, err)
}

// blockingReceiptStore parks Upload until released, to hold a submission
// in flight from the test.
type blockingReceiptStore struct {
	receiptStoreMock
	entered chan struct{}
	release chan struct{}
}

func (b *blockingReceiptStore) Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error) {
	close(b.entered)
	<-b.release
	return b.receiptStoreMock.Upload(ctx, objectPath, contentType, data)
}

func TestSubmit_RejectsOverlappingSubmission(t *testing.T) {
	carts := newCartRepoMock()
	seedCart(carts, "user-1")

	store := &blockingReceiptStore{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	uc := newCheckoutForTest(carts, newOrderRepoMock(), newItemRepoMock(), store, nil)

	done := make(chan error, 1)
	go func() {
		_, err := uc.Submit(context.Background(), "user-1", &ReceiptFile{Data: []byte("x"), Ext: "pdf"}, "")
		done <- err
	}()

	<-store.entered

	_, err := uc.Submit(context.Background(), "user-1", nil, "")
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(store.release)
	require.NoError(t, <-done)

	// the guard is released afterwards, but the cart is now empty
	_, err = uc.Submit(context.Background(), "user-1", nil, "")
	assert.ErrorIs(t, err, ErrValidation)
}
