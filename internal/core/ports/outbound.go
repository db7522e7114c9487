package ports

import (
	"context"

	"github.com/ArbaazShaikh07/Ecomlytics/internal/core/domain"
)

// OrderStore persists the orders collection with full-replace semantics.
type OrderStore interface {
	ReplaceAll(ctx context.Context, orders []domain.Order) error
	ListAll(ctx context.Context) ([]domain.Order, error)
}

// CustomerStore persists customers and their churn-derived fields.
type CustomerStore interface {
	ReplaceAll(ctx context.Context, customers []domain.Customer) error
	ListAll(ctx context.Context) ([]domain.Customer, error)
	UpdateDerived(ctx context.Context, customerID string, derived domain.CustomerDerived) error
}

// InventoryStore persists the inventory collection.
type InventoryStore interface {
	ReplaceAll(ctx context.Context, items []domain.InventoryItem) error
	ListAll(ctx context.Context) ([]domain.InventoryItem, error)
}

// ForecastStore persists generated forecasts. ReplaceAll must swap the whole
// collection atomically so readers never observe an empty window.
type ForecastStore interface {
	ReplaceAll(ctx context.Context, forecasts []domain.Forecast) error
	ListAll(ctx context.Context) ([]domain.Forecast, error)
}

// UploadJobStore persists upload job lifecycle state.
type UploadJobStore interface {
	Create(ctx context.Context, job *domain.UploadJob) error
	GetByID(ctx context.Context, id string) (*domain.UploadJob, error)
	UpdateStatus(ctx context.Context, id string, status domain.JobStatus, errMessage string) error
}

// RecomputeQueue publishes/consumes deferred recompute requests.
type RecomputeQueue interface {
	PublishRecompute(ctx context.Context, req domain.RecomputeRequest) error
	SubscribeRecompute(ctx context.Context, handler func(context.Context, domain.RecomputeRequest) error) error
}
