package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ArbaazShaikh07/Ecomlytics/internal/core/domain"
)

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) ReplaceAll(ctx context.Context, customers []domain.Customer) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin customers tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM customers`); err != nil {
		return fmt.Errorf("clear customers: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO customers (id, customer_id, name, email, join_date, last_purchase_date, total_spent, order_count, churn_probability)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`)
	if err != nil {
		return fmt.Errorf("prepare customer insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range customers {
		_, err := stmt.ExecContext(ctx,
			c.ID, c.CustomerID, c.Name, c.Email, c.JoinDate,
			lastPurchaseValue(c.LastPurchaseDate), c.TotalSpent, c.OrderCount, c.ChurnProbability,
		)
		if err != nil {
			return fmt.Errorf("insert customer %s: %w", c.CustomerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit customers tx: %w", err)
	}
	return nil
}

func (r *CustomerRepository) ListAll(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, customer_id, name, email, join_date, last_purchase_date, total_spent, order_count, churn_probability
FROM customers
ORDER BY customer_id
`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Customer, 0)
	for rows.Next() {
		var c domain.Customer
		var lastPurchase domain.Date
		err := rows.Scan(
			&c.ID, &c.CustomerID, &c.Name, &c.Email, &c.JoinDate,
			&lastPurchase, &c.TotalSpent, &c.OrderCount, &c.ChurnProbability,
		)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		if !lastPurchase.IsZero() {
			c.LastPurchaseDate = &lastPurchase
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return out, nil
}

func (r *CustomerRepository) UpdateDerived(ctx context.Context, customerID string, derived domain.CustomerDerived) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE customers
SET total_spent = $2, order_count = $3, last_purchase_date = $4, churn_probability = $5
WHERE customer_id = $1
`, customerID, derived.TotalSpent, derived.OrderCount, lastPurchaseValue(derived.LastPurchaseDate), derived.ChurnProbability)
	if err != nil {
		return fmt.Errorf("update customer derived fields: %w", err)
	}
	return nil
}

func lastPurchaseValue(d *domain.Date) any {
	if d == nil || d.IsZero() {
		return nil
	}
	return *d
}
