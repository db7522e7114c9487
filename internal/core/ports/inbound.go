package ports

import (
	"context"
	"io"

	"github.com/ArbaazShaikh07/Ecomlytics/internal/core/domain"
)

// DatasetIngestor is the inbound contract for CSV upload orchestration.
type DatasetIngestor interface {
	Upload(ctx context.Context, dataset domain.Dataset, source io.Reader) (*domain.UploadJob, error)
}

// RecomputeProcessor is the inbound contract for asynchronous refresh of
// derived analytics state.
type RecomputeProcessor interface {
	Process(ctx context.Context, req domain.RecomputeRequest) error
}

// AnalyticsReader exposes the pull-based analytics computed from current
// record store contents on every call.
type AnalyticsReader interface {
	KPIs(ctx context.Context) (*domain.KPIReport, error)
	Forecasts(ctx context.Context) ([]domain.Forecast, error)
	ChurnRanking(ctx context.Context) ([]domain.Customer, error)
	Recommendations(ctx context.Context) ([]domain.Recommendation, error)
	Simulate(ctx context.Context, scenario string, value float64) (*domain.SimulationResult, error)
}
