package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ArbaazShaikh07/Ecomlytics/internal/core/domain"
)

const ordersCSV = `order_date,customer_id,product_id,product_name,category,quantity,price
2024-01-15,C001,P001,Laptop,Electronics,1,1200
2024-01-15,C001,P001,Laptop,Electronics,1,1200
2024-01-16,C002,P002,Mouse,Electronics,2,25
`

func newIngestUseCase() (*IngestDatasetUseCase, *orderStoreFake, *inventoryStoreFake, *jobStoreFake, *queueFake) {
	orders := &orderStoreFake{}
	customers := &customerStoreFake{}
	inventory := &inventoryStoreFake{}
	jobs := &jobStoreFake{}
	queue := &queueFake{}
	uc := NewIngestDatasetUseCase(orders, customers, inventory, jobs, queue)
	return uc, orders, inventory, jobs, queue
}

func TestUploadOrdersReplacesAndQueuesRecompute(t *testing.T) {
	uc, orders, _, jobs, queue := newIngestUseCase()

	job, err := uc.Upload(context.Background(), domain.DatasetOrders, strings.NewReader(ordersCSV))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if job.RecordCount != 2 {
		t.Fatalf("expected 2 records after dedup, got %d", job.RecordCount)
	}
	if job.Status != domain.JobStatusReceived {
		t.Fatalf("expected status received, got %s", job.Status)
	}
	if orders.replaced != 1 || len(orders.orders) != 2 {
		t.Fatalf("expected store replaced with 2 orders, got replaced=%d n=%d", orders.replaced, len(orders.orders))
	}
	if len(queue.published) != 1 || queue.published[0].JobID != job.ID || queue.published[0].Dataset != domain.DatasetOrders {
		t.Fatalf("expected recompute request for job %s, got %+v", job.ID, queue.published)
	}
	if jobs.jobs[job.ID] == nil {
		t.Fatalf("expected job persisted")
	}
}

func TestUploadReplacesPriorContents(t *testing.T) {
	uc, orders, _, _, _ := newIngestUseCase()
	orders.orders = []domain.Order{{ID: "stale"}}

	if _, err := uc.Upload(context.Background(), domain.DatasetOrders, strings.NewReader(ordersCSV)); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	for _, o := range orders.orders {
		if o.ID == "stale" {
			t.Fatalf("expected prior contents fully superseded")
		}
	}
}

func TestUploadInventorySkipsRecompute(t *testing.T) {
	uc, _, inventory, jobs, queue := newIngestUseCase()

	csv := "product_id,product_name,current_stock,reorder_point,unit_cost\nP001,Laptop,15,10,800\n"
	job, err := uc.Upload(context.Background(), domain.DatasetInventory, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if job.Status != domain.JobStatusReady {
		t.Fatalf("inventory upload should complete immediately, got %s", job.Status)
	}
	if len(queue.published) != 0 {
		t.Fatalf("inventory upload must not queue recompute, got %+v", queue.published)
	}
	if len(inventory.items) != 1 {
		t.Fatalf("expected 1 inventory item stored, got %d", len(inventory.items))
	}
	if len(jobs.statuses) != 1 || jobs.statuses[0] != domain.JobStatusReady {
		t.Fatalf("expected single ready transition, got %v", jobs.statuses)
	}
}

func TestUploadUnknownDataset(t *testing.T) {
	uc, orders, _, _, _ := newIngestUseCase()

	_, err := uc.Upload(context.Background(), domain.Dataset("bogus"), strings.NewReader(ordersCSV))
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
	if orders.replaced != 0 {
		t.Fatalf("no collection may change on invalid dataset")
	}
}

func TestUploadMissingColumnLeavesStateUntouched(t *testing.T) {
	uc, orders, _, jobs, queue := newIngestUseCase()

	_, err := uc.Upload(context.Background(), domain.DatasetOrders, strings.NewReader("customer_id,product_id\nC001,P001\n"))
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
	if orders.replaced != 0 || len(jobs.jobs) != 0 || len(queue.published) != 0 {
		t.Fatalf("expected no state change on rejected upload")
	}
}

func TestUploadPublishFailureMarksJobFailed(t *testing.T) {
	uc, _, _, jobs, queue := newIngestUseCase()
	queue.err = errors.New("queue down")

	_, err := uc.Upload(context.Background(), domain.DatasetOrders, strings.NewReader(ordersCSV))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "publish recompute request") {
		t.Fatalf("expected publish error, got %v", err)
	}
	if len(jobs.statuses) != 1 || jobs.statuses[0] != domain.JobStatusFailed {
		t.Fatalf("expected job marked failed, got %v", jobs.statuses)
	}
}
