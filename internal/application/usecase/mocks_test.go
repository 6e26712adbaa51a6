package usecase

import (
	"context"
	"fmt"
	"time"

	cartdom "storefront/internal/domain/cart"
	orderdom "storefront/internal/domain/order"
	itemdom "storefront/internal/domain/orderItem"
)

// ----------------------------------------------------------------------
// Fixed clock / deterministic ids
// ----------------------------------------------------------------------

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func seqID() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// ----------------------------------------------------------------------
// cart.Repository mock
// ----------------------------------------------------------------------

type cartRepoMock struct {
	carts map[string]*cartdom.Cart

	getErr    error
	upsertErr error
	deleteErr error

	getCalls    int
	upsertCalls int
	deleteCalls int
}

func newCartRepoMock() *cartRepoMock {
	return &cartRepoMock{carts: map[string]*cartdom.Cart{}}
}

func (m *cartRepoMock) GetByUserID(_ context.Context, userID string) (*cartdom.Cart, error) {
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.carts[userID], nil
}

func (m *cartRepoMock) Upsert(_ context.Context, c *cartdom.Cart) error {
	m.upsertCalls++
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.carts[c.UserID] = c
	return nil
}

func (m *cartRepoMock) DeleteByUserID(_ context.Context, userID string) error {
	m.deleteCalls++
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.carts, userID)
	return nil
}

// ----------------------------------------------------------------------
// order.Repository mock
// ----------------------------------------------------------------------

type orderRepoMock struct {
	orders map[string]orderdom.Order

	createErr error

	createCalls        int
	updateStatusCalls  int
	updateReceiptCalls int
}

func newOrderRepoMock() *orderRepoMock {
	return &orderRepoMock{orders: map[string]orderdom.Order{}}
}

func (m *orderRepoMock) GetByID(_ context.Context, id string) (orderdom.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	return o, nil
}

func (m *orderRepoMock) ListByUserID(_ context.Context, userID string) ([]orderdom.Order, error) {
	var out []orderdom.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *orderRepoMock) List(_ context.Context) ([]orderdom.Order, error) {
	var out []orderdom.Order
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, nil
}

func (m *orderRepoMock) Create(_ context.Context, o orderdom.Order) (orderdom.Order, error) {
	m.createCalls++
	if m.createErr != nil {
		return orderdom.Order{}, m.createErr
	}
	m.orders[o.ID] = o
	return o, nil
}

func (m *orderRepoMock) UpdateStatus(_ context.Context, id string, st orderdom.Status) error {
	m.updateStatusCalls++
	o, ok := m.orders[id]
	if !ok {
		return orderdom.ErrNotFound
	}
	o.Status = st
	m.orders[id] = o
	return nil
}

func (m *orderRepoMock) UpdateReceipt(_ context.Context, id, receiptPath string, st orderdom.Status) error {
	m.updateReceiptCalls++
	o, ok := m.orders[id]
	if !ok {
		return orderdom.ErrNotFound
	}
	o.ReceiptPath = &receiptPath
	o.Status = st
	m.orders[id] = o
	return nil
}

func (m *orderRepoMock) UpdateAdminNotes(_ context.Context, id, notes string) error {
	o, ok := m.orders[id]
	if !ok {
		return orderdom.ErrNotFound
	}
	o.AdminNotes = &notes
	m.orders[id] = o
	return nil
}

// ----------------------------------------------------------------------
// orderItem.Repository mock
// ----------------------------------------------------------------------

type itemRepoMock struct {
	rows []itemdom.OrderItem

	// failAfter inserts this many rows and then fails the batch, so the
	// partially inserted state can be asserted. -1 disables failure.
	failAfter int
	batchErr  error

	batchCalls int
}

func newItemRepoMock() *itemRepoMock {
	return &itemRepoMock{failAfter: -1}
}

func (m *itemRepoMock) CreateBatch(_ context.Context, items []itemdom.OrderItem) error {
	m.batchCalls++
	for i, it := range items {
		if m.failAfter >= 0 && i >= m.failAfter {
			if m.batchErr != nil {
				return m.batchErr
			}
			return itemdom.ErrConflict
		}
		m.rows = append(m.rows, it)
	}
	return nil
}

func (m *itemRepoMock) ListByOrderID(_ context.Context, orderID string) ([]itemdom.OrderItem, error) {
	var out []itemdom.OrderItem
	for _, it := range m.rows {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out, nil
}

// ----------------------------------------------------------------------
// receipt.Store mock
// ----------------------------------------------------------------------

type receiptStoreMock struct {
	uploadErr error
	urlErr    error

	uploadedPaths []string
	uploadedTypes []string
	uploadedBytes [][]byte

	lastURLPath   string
	lastExpiresIn time.Duration
}

func (m *receiptStoreMock) Upload(_ context.Context, objectPath, contentType string, data []byte) (string, error) {
	if m.uploadErr != nil {
		return "", m.uploadErr
	}
	m.uploadedPaths = append(m.uploadedPaths, objectPath)
	m.uploadedTypes = append(m.uploadedTypes, contentType)
	m.uploadedBytes = append(m.uploadedBytes, data)
	return objectPath, nil
}

func (m *receiptStoreMock) IssueViewURL(_ context.Context, objectPath string, expiresIn time.Duration) (string, error) {
	if m.urlErr != nil {
		return "", m.urlErr
	}
	m.lastURLPath = objectPath
	m.lastExpiresIn = expiresIn
	return "https://signed.example.com/" + objectPath, nil
}

// ----------------------------------------------------------------------
// OrderMailer mock
// ----------------------------------------------------------------------

type mailerMock struct {
	err error

	sentTo    []string
	sentOrder []orderdom.Order
}

func (m *mailerMock) SendOrderConfirmation(_ context.Context, to string, o orderdom.Order, _ []itemdom.OrderItem) error {
	if m.err != nil {
		return m.err
	}
	m.sentTo = append(m.sentTo, to)
	m.sentOrder = append(m.sentOrder, o)
	return nil
}
