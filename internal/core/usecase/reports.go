package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/ArbaazShaikh07/Ecomlytics/internal/core/domain"
	"github.com/ArbaazShaikh07/Ecomlytics/internal/core/ports"
)

// ReportsUseCase serves the pull-based analytics reads. Every call
// recomputes from current record store contents; nothing is cached.
type ReportsUseCase struct {
	orders    ports.OrderStore
	customers ports.CustomerStore
	inventory ports.InventoryStore
	forecasts ports.ForecastStore
}

func NewReportsUseCase(
	orders ports.OrderStore,
	customers ports.CustomerStore,
	inventory ports.InventoryStore,
	forecasts ports.ForecastStore,
) *ReportsUseCase {
	return &ReportsUseCase{
		orders:    orders,
		customers: customers,
		inventory: inventory,
		forecasts: forecasts,
	}
}

func (uc *ReportsUseCase) KPIs(ctx context.Context) (*domain.KPIReport, error) {
	orders, err := uc.orders.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	customers, err := uc.customers.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return BuildKPIReport(orders, customers), nil
}

func (uc *ReportsUseCase) Forecasts(ctx context.Context) ([]domain.Forecast, error) {
	forecasts, err := uc.forecasts.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list forecasts: %w", err)
	}
	return forecasts, nil
}

// ChurnRanking lists customers by descending churn risk.
func (uc *ReportsUseCase) ChurnRanking(ctx context.Context) ([]domain.Customer, error) {
	customers, err := uc.customers.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	sort.SliceStable(customers, func(i, j int) bool {
		return customers[i].ChurnProbability > customers[j].ChurnProbability
	})
	return customers, nil
}

func (uc *ReportsUseCase) Recommendations(ctx context.Context) ([]domain.Recommendation, error) {
	items, err := uc.inventory.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	forecasts, err := uc.forecasts.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list forecasts: %w", err)
	}
	return BuildRecommendations(items, forecasts), nil
}

// Simulate projects revenue from the live order snapshot, never from
// cached KPI values.
func (uc *ReportsUseCase) Simulate(ctx context.Context, scenario string, value float64) (*domain.SimulationResult, error) {
	orders, err := uc.orders.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if len(orders) == 0 {
		return nil, domain.WrapError(domain.ErrNoData, "simulate", errors.New("no order data available"))
	}

	var revenue float64
	for _, o := range orders {
		revenue += o.Total
	}
	return SimulateRevenue(scenario, value, revenue)
}
