package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ArbaazShaikh07/Ecomlytics/internal/core/domain"
)

type ForecastRepository struct {
	db *sql.DB
}

func NewForecastRepository(db *sql.DB) *ForecastRepository {
	return &ForecastRepository{db: db}
}

// ReplaceAll swaps the forecast collection in a single transaction so a
// concurrent reader sees either the old window or the new one, never a gap.
func (r *ForecastRepository) ReplaceAll(ctx context.Context, forecasts []domain.Forecast) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin forecasts tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM forecasts`); err != nil {
		return fmt.Errorf("clear forecasts: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO forecasts (id, product_id, product_name, category, forecast_date, predicted_quantity, confidence)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`)
	if err != nil {
		return fmt.Errorf("prepare forecast insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range forecasts {
		_, err := stmt.ExecContext(ctx,
			f.ID, f.ProductID, f.ProductName, f.Category,
			f.ForecastDate, f.PredictedQuantity, f.Confidence,
		)
		if err != nil {
			return fmt.Errorf("insert forecast %s: %w", f.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit forecasts tx: %w", err)
	}
	return nil
}

func (r *ForecastRepository) ListAll(ctx context.Context) ([]domain.Forecast, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, product_id, product_name, category, forecast_date, predicted_quantity, confidence
FROM forecasts
ORDER BY product_id, forecast_date
`)
	if err != nil {
		return nil, fmt.Errorf("list forecasts: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Forecast, 0)
	for rows.Next() {
		var f domain.Forecast
		err := rows.Scan(
			&f.ID, &f.ProductID, &f.ProductName, &f.Category,
			&f.ForecastDate, &f.PredictedQuantity, &f.Confidence,
		)
		if err != nil {
			return nil, fmt.Errorf("scan forecast: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate forecasts: %w", err)
	}
	return out, nil
}
