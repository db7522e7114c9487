package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ArbaazShaikh07/Ecomlytics/internal/core/domain"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) ReplaceAll(ctx context.Context, orders []domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin orders tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM orders`); err != nil {
		return fmt.Errorf("clear orders: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO orders (id, order_date, customer_id, product_id, product_name, category, quantity, price, total, status)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`)
	if err != nil {
		return fmt.Errorf("prepare order insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range orders {
		_, err := stmt.ExecContext(ctx,
			o.ID, o.OrderDate, o.CustomerID, o.ProductID, o.ProductName,
			o.Category, o.Quantity, o.Price, o.Total, o.Status,
		)
		if err != nil {
			return fmt.Errorf("insert order %s: %w", o.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit orders tx: %w", err)
	}
	return nil
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, order_date, customer_id, product_id, product_name, category, quantity, price, total, status
FROM orders
ORDER BY order_date, id
`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Order, 0)
	for rows.Next() {
		var o domain.Order
		err := rows.Scan(
			&o.ID, &o.OrderDate, &o.CustomerID, &o.ProductID, &o.ProductName,
			&o.Category, &o.Quantity, &o.Price, &o.Total, &o.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return out, nil
}
