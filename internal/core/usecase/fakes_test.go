package usecase

import (
	"context"
	"errors"

	"github.com/ArbaazShaikh07/Ecomlytics/internal/core/domain"
)

type orderStoreFake struct {
	orders     []domain.Order
	replaceErr error
	listErr    error
	replaced   int
}

func (f *orderStoreFake) ReplaceAll(_ context.Context, orders []domain.Order) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.orders = orders
	f.replaced++
	return nil
}

func (f *orderStoreFake) ListAll(context.Context) ([]domain.Order, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.orders, nil
}

type customerStoreFake struct {
	customers  []domain.Customer
	derived    map[string]domain.CustomerDerived
	replaceErr error
	updateErr  error
}

func (f *customerStoreFake) ReplaceAll(_ context.Context, customers []domain.Customer) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.customers = customers
	return nil
}

func (f *customerStoreFake) ListAll(context.Context) ([]domain.Customer, error) {
	return f.customers, nil
}

func (f *customerStoreFake) UpdateDerived(_ context.Context, customerID string, derived domain.CustomerDerived) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.derived == nil {
		f.derived = make(map[string]domain.CustomerDerived)
	}
	f.derived[customerID] = derived
	return nil
}

type inventoryStoreFake struct {
	items      []domain.InventoryItem
	replaceErr error
}

func (f *inventoryStoreFake) ReplaceAll(_ context.Context, items []domain.InventoryItem) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.items = items
	return nil
}

func (f *inventoryStoreFake) ListAll(context.Context) ([]domain.InventoryItem, error) {
	return f.items, nil
}

type forecastStoreFake struct {
	forecasts  []domain.Forecast
	replaceErr error
	replaced   int
}

func (f *forecastStoreFake) ReplaceAll(_ context.Context, forecasts []domain.Forecast) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.forecasts = forecasts
	f.replaced++
	return nil
}

func (f *forecastStoreFake) ListAll(context.Context) ([]domain.Forecast, error) {
	return f.forecasts, nil
}

type jobStoreFake struct {
	jobs      map[string]*domain.UploadJob
	statuses  []domain.JobStatus
	createErr error
	updateErr error
}

func (f *jobStoreFake) Create(_ context.Context, job *domain.UploadJob) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.jobs == nil {
		f.jobs = make(map[string]*domain.UploadJob)
	}
	copyJob := *job
	f.jobs[job.ID] = &copyJob
	return nil
}

func (f *jobStoreFake) GetByID(_ context.Context, id string) (*domain.UploadJob, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "get job", errors.New(id))
	}
	return job, nil
}

func (f *jobStoreFake) UpdateStatus(_ context.Context, id string, status domain.JobStatus, errMessage string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.statuses = append(f.statuses, status)
	if job, ok := f.jobs[id]; ok {
		job.Status = status
		job.Error = errMessage
	}
	return nil
}

type queueFake struct {
	published []domain.RecomputeRequest
	err       error
}

func (f *queueFake) PublishRecompute(_ context.Context, req domain.RecomputeRequest) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, req)
	return nil
}

func (f *queueFake) SubscribeRecompute(context.Context, func(context.Context, domain.RecomputeRequest) error) error {
	return errors.New("not implemented")
}

func mustDate(t interface{ Fatalf(string, ...any) }, s string) domain.Date {
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q) error = %v", s, err)
	}
	return d
}
