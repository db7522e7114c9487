package usecase

import (
	"context"
	"fmt"

	"github.com/ArbaazShaikh07/Ecomlytics/internal/core/domain"
	"github.com/ArbaazShaikh07/Ecomlytics/internal/core/ports"
)

type RecomputeUseCase struct {
	orders      ports.OrderStore
	customers   ports.CustomerStore
	forecasts   ports.ForecastStore
	jobs        ports.UploadJobStore
	horizonDays int
}

func NewRecomputeUseCase(
	orders ports.OrderStore,
	customers ports.CustomerStore,
	forecasts ports.ForecastStore,
	jobs ports.UploadJobStore,
	horizonDays int,
) *RecomputeUseCase {
	return &RecomputeUseCase{
		orders:      orders,
		customers:   customers,
		forecasts:   forecasts,
		jobs:        jobs,
		horizonDays: horizonDays,
	}
}

// Process runs the worker-side refresh for one upload job, recording the
// outcome on the job row. A failed refresh leaves previously derived state
// untouched.
func (uc *RecomputeUseCase) Process(ctx context.Context, req domain.RecomputeRequest) error {
	if err := uc.jobs.UpdateStatus(ctx, req.JobID, domain.JobStatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	if err := uc.refresh(ctx, req.Dataset); err != nil {
		if failErr := uc.jobs.UpdateStatus(ctx, req.JobID, domain.JobStatusFailed, err.Error()); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.jobs.UpdateStatus(ctx, req.JobID, domain.JobStatusReady, ""); err != nil {
		return fmt.Errorf("set status=ready: %w", err)
	}
	return nil
}

func (uc *RecomputeUseCase) refresh(ctx context.Context, dataset domain.Dataset) error {
	switch dataset {
	case domain.DatasetOrders:
		if err := uc.rebuildForecasts(ctx); err != nil {
			return err
		}
		return uc.rescoreChurn(ctx)
	case domain.DatasetCustomers:
		return uc.rescoreChurn(ctx)
	}
	return domain.WrapError(domain.ErrInvalidInput, "recompute", fmt.Errorf("dataset %q has no derived state", dataset))
}

func (uc *RecomputeUseCase) rebuildForecasts(ctx context.Context) error {
	orders, err := uc.orders.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}
	if len(orders) == 0 {
		return nil
	}

	forecasts := BuildForecasts(orders, uc.horizonDays)
	if len(forecasts) == 0 {
		// No product has enough history; prior forecasts stay in place.
		return nil
	}
	if err := uc.forecasts.ReplaceAll(ctx, forecasts); err != nil {
		return fmt.Errorf("replace forecasts: %w", err)
	}
	return nil
}

func (uc *RecomputeUseCase) rescoreChurn(ctx context.Context) error {
	customers, err := uc.customers.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list customers: %w", err)
	}
	orders, err := uc.orders.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}
	if len(customers) == 0 || len(orders) == 0 {
		return nil
	}

	reference, ok := MaxOrderDate(orders)
	if !ok {
		return nil
	}
	for _, scored := range ScoreChurn(reference, customers, orders) {
		if err := uc.customers.UpdateDerived(ctx, scored.CustomerID, scored.Derived); err != nil {
			return fmt.Errorf("update customer %s: %w", scored.CustomerID, err)
		}
	}
	return nil
}
