package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/ArbaazShaikh07/Ecomlytics/internal/core/domain"
	"github.com/ArbaazShaikh07/Ecomlytics/internal/core/ports"
)

type IngestDatasetUseCase struct {
	orders    ports.OrderStore
	customers ports.CustomerStore
	inventory ports.InventoryStore
	jobs      ports.UploadJobStore
	queue     ports.RecomputeQueue
}

func NewIngestDatasetUseCase(
	orders ports.OrderStore,
	customers ports.CustomerStore,
	inventory ports.InventoryStore,
	jobs ports.UploadJobStore,
	queue ports.RecomputeQueue,
) *IngestDatasetUseCase {
	return &IngestDatasetUseCase{
		orders:    orders,
		customers: customers,
		inventory: inventory,
		jobs:      jobs,
		queue:     queue,
	}
}

// Upload normalizes the uploaded file synchronously, replaces the target
// collection wholesale, and defers forecast/churn recompute to the worker
// via the queue. The returned job is the client's handle for polling
// recompute completion.
func (uc *IngestDatasetUseCase) Upload(ctx context.Context, dataset domain.Dataset, source io.Reader) (*domain.UploadJob, error) {
	rows, header, err := ReadRows(source)
	if err != nil {
		return nil, err
	}

	var count int
	switch dataset {
	case domain.DatasetOrders:
		records, err := NormalizeOrders(rows, header)
		if err != nil {
			return nil, err
		}
		if err := uc.orders.ReplaceAll(ctx, records); err != nil {
			return nil, fmt.Errorf("replace orders: %w", err)
		}
		count = len(records)

	case domain.DatasetCustomers:
		records, err := NormalizeCustomers(rows, header)
		if err != nil {
			return nil, err
		}
		if err := uc.customers.ReplaceAll(ctx, records); err != nil {
			return nil, fmt.Errorf("replace customers: %w", err)
		}
		count = len(records)

	case domain.DatasetInventory:
		records, err := NormalizeInventory(rows, header)
		if err != nil {
			return nil, err
		}
		if err := uc.inventory.ReplaceAll(ctx, records); err != nil {
			return nil, fmt.Errorf("replace inventory: %w", err)
		}
		count = len(records)

	default:
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload", fmt.Errorf("unsupported collection %q", dataset))
	}

	now := time.Now().UTC()
	job := &domain.UploadJob{
		ID:          uuid.NewString(),
		Dataset:     dataset,
		RecordCount: count,
		Status:      domain.JobStatusReceived,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create upload job: %w", err)
	}

	if !dataset.NeedsRecompute() {
		if err := uc.jobs.UpdateStatus(ctx, job.ID, domain.JobStatusReady, ""); err != nil {
			return nil, fmt.Errorf("finalize upload job: %w", err)
		}
		job.Status = domain.JobStatusReady
		return job, nil
	}

	if err := uc.queue.PublishRecompute(ctx, domain.RecomputeRequest{JobID: job.ID, Dataset: dataset}); err != nil {
		_ = uc.jobs.UpdateStatus(ctx, job.ID, domain.JobStatusFailed, err.Error())
		return nil, fmt.Errorf("publish recompute request: %w", err)
	}
	return job, nil
}
