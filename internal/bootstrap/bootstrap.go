package bootstrap

import (
	"context"
	"fmt"

	"github.com/ArbaazShaikh07/Ecomlytics/internal/config"
	"github.com/ArbaazShaikh07/Ecomlytics/internal/core/ports"
	"github.com/ArbaazShaikh07/Ecomlytics/internal/core/usecase"
	"github.com/ArbaazShaikh07/Ecomlytics/internal/infrastructure/queue/nats"
	"github.com/ArbaazShaikh07/Ecomlytics/internal/infrastructure/repository/postgres"
	"github.com/ArbaazShaikh07/Ecomlytics/internal/infrastructure/resilience"
)

type App struct {
	Config config.Config

	Queue ports.RecomputeQueue
	Jobs  ports.UploadJobStore

	IngestUC    ports.DatasetIngestor
	RecomputeUC ports.RecomputeProcessor
	ReportsUC   ports.AnalyticsReader

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	orders := postgres.NewOrderRepository(db)
	customers := postgres.NewCustomerRepository(db)
	inventory := postgres.NewInventoryRepository(db)
	forecasts := postgres.NewForecastRepository(db)
	jobs := postgres.NewUploadJobRepository(db)

	executor := resilience.NewExecutor(resilience.DefaultPolicy())
	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init recompute queue: %w", err)
	}

	ingestUC := usecase.NewIngestDatasetUseCase(orders, customers, inventory, jobs, queue)
	recomputeUC := usecase.NewRecomputeUseCase(orders, customers, forecasts, jobs, cfg.ForecastHorizonDays)
	reportsUC := usecase.NewReportsUseCase(orders, customers, inventory, forecasts)

	return &App{
		Config: cfg,
		Queue:  queue,
		Jobs:   jobs,

		IngestUC:    ingestUC,
		RecomputeUC: recomputeUC,
		ReportsUC:   reportsUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
