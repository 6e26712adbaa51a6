package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	dbcommon "storefront/internal/adapters/out/db/common"
	orderdom "storefront/internal/domain/order"
)

// PostgreSQL implementation of order.Repository
type OrderRepositoryPG struct {
	DB *sql.DB
}

func NewOrderRepositoryPG(db *sql.DB) *OrderRepositoryPG {
	return &OrderRepositoryPG{DB: db}
}

const orderColumns = `id, user_id, total_amount, status, receipt_url, admin_notes, created_at`

// ========================
// Queries
// ========================

func (r *OrderRepositoryPG) GetByID(ctx context.Context, id string) (orderdom.Order, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1`
	row := run.QueryRowContext(ctx, q, strings.TrimSpace(id))
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return orderdom.Order{}, orderdom.ErrNotFound
		}
		return orderdom.Order{}, err
	}
	return o, nil
}

func (r *OrderRepositoryPG) ListByUserID(ctx context.Context, userID string) ([]orderdom.Order, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC, id DESC`
	rows, err := run.QueryContext(ctx, q, strings.TrimSpace(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *OrderRepositoryPG) List(ctx context.Context) ([]orderdom.Order, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `
SELECT ` + orderColumns + `
FROM orders
ORDER BY created_at DESC, id DESC`
	rows, err := run.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

// ========================
// Commands
// ========================

func (r *OrderRepositoryPG) Create(ctx context.Context, o orderdom.Order) (orderdom.Order, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `
INSERT INTO orders (` + orderColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + orderColumns
	row := run.QueryRowContext(ctx, q,
		strings.TrimSpace(o.ID),
		strings.TrimSpace(o.UserID),
		o.TotalAmount,
		string(o.Status),
		dbcommon.ToDBText(o.ReceiptPath),
		dbcommon.ToDBText(o.AdminNotes),
		o.CreatedAt.UTC(),
	)
	created, err := scanOrder(row)
	if err != nil {
		if dbcommon.IsUniqueViolation(err) {
			return orderdom.Order{}, orderdom.ErrConflict
		}
		return orderdom.Order{}, err
	}
	return created, nil
}

func (r *OrderRepositoryPG) UpdateStatus(ctx context.Context, id string, st orderdom.Status) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `UPDATE orders SET status = $2 WHERE id = $1`
	return execExpectingRow(ctx, run, q, strings.TrimSpace(id), string(st))
}

func (r *OrderRepositoryPG) UpdateReceipt(ctx context.Context, id, receiptPath string, st orderdom.Status) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `UPDATE orders SET receipt_url = $2, status = $3 WHERE id = $1`
	return execExpectingRow(ctx, run, q, strings.TrimSpace(id), strings.TrimSpace(receiptPath), string(st))
}

func (r *OrderRepositoryPG) UpdateAdminNotes(ctx context.Context, id, notes string) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `UPDATE orders SET admin_notes = $2 WHERE id = $1`
	return execExpectingRow(ctx, run, q, strings.TrimSpace(id), notes)
}

// ========================
// Helpers
// ========================

func execExpectingRow(ctx context.Context, run dbcommon.Runner, q string, args ...any) error {
	res, err := run.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return orderdom.ErrNotFound
	}
	return nil
}

func scanOrder(s dbcommon.RowScanner) (orderdom.Order, error) {
	var (
		o           orderdom.Order
		status      string
		receiptPath sql.NullString
		adminNotes  sql.NullString
	)
	if err := s.Scan(
		&o.ID,
		&o.UserID,
		&o.TotalAmount,
		&status,
		&receiptPath,
		&adminNotes,
		&o.CreatedAt,
	); err != nil {
		return orderdom.Order{}, err
	}
	o.Status = orderdom.Status(status)
	o.ReceiptPath = dbcommon.FromNullString(receiptPath)
	o.AdminNotes = dbcommon.FromNullString(adminNotes)
	return o, nil
}

func collectOrders(rows *sql.Rows) ([]orderdom.Order, error) {
	out := make([]orderdom.Order, 0, 16)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
