package db

import (
	"context"
	"database/sql"
	"strings"

	dbcommon "storefront/internal/adapters/out/db/common"
	itemdom "storefront/internal/domain/orderItem"
)

// PostgreSQL implementation of orderitem.Repository
type OrderItemRepositoryPG struct {
	DB *sql.DB
}

func NewOrderItemRepositoryPG(db *sql.DB) *OrderItemRepositoryPG {
	return &OrderItemRepositoryPG{DB: db}
}

const orderItemColumns = `id, order_id, product_id, product_name, quantity, color, size, unit_price`

// CreateBatch inserts rows one by one in input order and stops at the first
// failure. There is deliberately no wrapping transaction: rows inserted
// before a failure are kept (see the submission contract).
func (r *OrderItemRepositoryPG) CreateBatch(ctx context.Context, items []itemdom.OrderItem) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `
INSERT INTO order_items (` + orderItemColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, it := range items {
		_, err := run.ExecContext(ctx, q,
			strings.TrimSpace(it.ID),
			strings.TrimSpace(it.OrderID),
			strings.TrimSpace(it.ProductID),
			strings.TrimSpace(it.ProductName),
			it.Quantity,
			nullableText(it.Color),
			nullableText(it.Size),
			it.UnitPrice,
		)
		if err != nil {
			if dbcommon.IsUniqueViolation(err) {
				return itemdom.ErrConflict
			}
			return err
		}
	}
	return nil
}

func (r *OrderItemRepositoryPG) ListByOrderID(ctx context.Context, orderID string) ([]itemdom.OrderItem, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `
SELECT ` + orderItemColumns + `
FROM order_items
WHERE order_id = $1
ORDER BY id ASC`
	rows, err := run.QueryContext(ctx, q, strings.TrimSpace(orderID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]itemdom.OrderItem, 0, 8)
	for rows.Next() {
		it, err := scanOrderItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanOrderItem(s dbcommon.RowScanner) (itemdom.OrderItem, error) {
	var (
		it    itemdom.OrderItem
		color sql.NullString
		size  sql.NullString
	)
	if err := s.Scan(
		&it.ID,
		&it.OrderID,
		&it.ProductID,
		&it.ProductName,
		&it.Quantity,
		&color,
		&size,
		&it.UnitPrice,
	); err != nil {
		return itemdom.OrderItem{}, err
	}
	it.Color = color.String
	it.Size = size.String
	return it, nil
}

func nullableText(s string) any {
	v := strings.TrimSpace(s)
	if v == "" {
		return nil
	}
	return v
}
