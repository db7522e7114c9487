package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ArbaazShaikh07/Ecomlytics/internal/core/domain"
)

type InventoryRepository struct {
	db *sql.DB
}

func NewInventoryRepository(db *sql.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) ReplaceAll(ctx context.Context, items []domain.InventoryItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin inventory tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM inventory`); err != nil {
		return fmt.Errorf("clear inventory: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO inventory (id, product_id, product_name, category, current_stock, reorder_point, unit_cost)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`)
	if err != nil {
		return fmt.Errorf("prepare inventory insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		_, err := stmt.ExecContext(ctx,
			item.ID, item.ProductID, item.ProductName, item.Category,
			item.CurrentStock, item.ReorderPoint, item.UnitCost,
		)
		if err != nil {
			return fmt.Errorf("insert inventory item %s: %w", item.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit inventory tx: %w", err)
	}
	return nil
}

func (r *InventoryRepository) ListAll(ctx context.Context) ([]domain.InventoryItem, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, product_id, product_name, category, current_stock, reorder_point, unit_cost
FROM inventory
ORDER BY product_id
`)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	out := make([]domain.InventoryItem, 0)
	for rows.Next() {
		var item domain.InventoryItem
		err := rows.Scan(
			&item.ID, &item.ProductID, &item.ProductName, &item.Category,
			&item.CurrentStock, &item.ReorderPoint, &item.UnitCost,
		)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inventory: %w", err)
	}
	return out, nil
}
