package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderdom "storefront/internal/domain/order"
	receiptdom "storefront/internal/domain/receipt"
)

var receiptAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func seedOrder(t *testing.T, repo *orderRepoMock, id, userID string, st orderdom.Status) orderdom.Order {
	t.Helper()
	o, err := orderdom.New(id, userID, 2500, nil, receiptAt)
	require.NoError(t, err)
	require.NoError(t, o.ForceStatus(st))
	repo.orders[id] = o
	return o
}

func TestReceiptUpload_PendingMovesToPaymentUploaded(t *testing.T) {
	orders := newOrderRepoMock()
	store := &receiptStoreMock{}
	seedOrder(t, orders, "ord-1", "user-1", orderdom.StatusPending)

	uc := NewReceiptUsecaseWithClock(orders, store, fixedClock{receiptAt})

	o, err := uc.Upload(context.Background(), "user-1", "ord-1", ReceiptFile{Data: []byte("%PDF"), Ext: "pdf", ContentType: "application/pdf"})
	require.NoError(t, err)

	assert.Equal(t, orderdom.StatusPaymentUploaded, o.Status)
	wantPath := fmt.Sprintf("receipts/user-1/ord-1-%d.pdf", receiptAt.UnixMilli())
	require.NotNil(t, o.ReceiptPath)
	assert.Equal(t, wantPath, *o.ReceiptPath)

	stored, err := orders.GetByID(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.Equal(t, orderdom.StatusPaymentUploaded, stored.Status)
	assert.Equal(t, wantPath, *stored.ReceiptPath)
}

func TestReceiptUpload_NonPendingKeepsStatus(t *testing.T) {
	orders := newOrderRepoMock()
	store := &receiptStoreMock{}
	seedOrder(t, orders, "ord-1", "user-1", orderdom.StatusConfirmed)

	uc := NewReceiptUsecaseWithClock(orders, store, fixedClock{receiptAt})

	o, err := uc.Upload(context.Background(), "user-1", "ord-1", ReceiptFile{Data: []byte("x"), Ext: "jpg"})
	require.NoError(t, err)

	assert.Equal(t, orderdom.StatusConfirmed, o.Status)
	require.NotNil(t, o.ReceiptPath)
}

func TestReceiptUpload_OwnershipMismatchIsNotFound(t *testing.T) {
	orders := newOrderRepoMock()
	store := &receiptStoreMock{}
	seedOrder(t, orders, "ord-1", "user-1", orderdom.StatusPending)

	uc := NewReceiptUsecaseWithClock(orders, store, fixedClock{receiptAt})

	_, err := uc.Upload(context.Background(), "intruder", "ord-1", ReceiptFile{Data: []byte("x")})
	assert.ErrorIs(t, err, orderdom.ErrNotFound)
	assert.Empty(t, store.uploadedPaths)
}

func TestReceiptUpload_Validation(t *testing.T) {
	uc := NewReceiptUsecaseWithClock(newOrderRepoMock(), &receiptStoreMock{}, fixedClock{receiptAt})

	_, err := uc.Upload(context.Background(), "", "ord-1", ReceiptFile{Data: []byte("x")})
	assert.ErrorIs(t, err, ErrReceiptInvalidArgument)

	_, err = uc.Upload(context.Background(), "user-1", "", ReceiptFile{Data: []byte("x")})
	assert.ErrorIs(t, err, ErrReceiptInvalidArgument)

	_, err = uc.Upload(context.Background(), "user-1", "ord-1", ReceiptFile{})
	assert.ErrorIs(t, err, ErrReceiptInvalidArgument)
}

func TestReceiptUpload_StoreFailure(t *testing.T) {
	orders := newOrderRepoMock()
	store := &receiptStoreMock{uploadErr: errors.New("gcs down")}
	seedOrder(t, orders, "ord-1", "user-1", orderdom.StatusPending)

	uc := NewReceiptUsecaseWithClock(orders, store, fixedClock{receiptAt})

	_, err := uc.Upload(context.Background(), "user-1", "ord-1", ReceiptFile{Data: []byte("x")})
	assert.ErrorIs(t, err, ErrUpload)
	assert.Zero(t, orders.updateReceiptCalls)
}

func TestViewURL_UsesFixedValidity(t *testing.T) {
	store := &receiptStoreMock{}
	uc := NewReceiptUsecaseWithClock(newOrderRepoMock(), store, fixedClock{receiptAt})

	url, err := uc.ViewURL(context.Background(), "receipts/user-1/ord-1-1.pdf")
	require.NoError(t, err)

	assert.Equal(t, "https://signed.example.com/receipts/user-1/ord-1-1.pdf", url)
	assert.Equal(t, receiptdom.ViewURLValidity, store.lastExpiresIn)

	_, err = uc.ViewURL(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrReceiptInvalidArgument)
}
