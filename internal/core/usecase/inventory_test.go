package usecase

import (
	"math"
	"testing"

	"github.com/ArbaazShaikh07/Ecomlytics/internal/core/domain"
)

func TestBuildRecommendationsReorderFlagIndependentOfForecasts(t *testing.T) {
	items := []domain.InventoryItem{
		{ProductID: "P001", CurrentStock: 5, ReorderPoint: 10},
		{ProductID: "P002", CurrentStock: 10, ReorderPoint: 10},
		{ProductID: "P003", CurrentStock: 50, ReorderPoint: 20},
	}

	recommendations := BuildRecommendations(items, nil)
	if len(recommendations) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(recommendations))
	}
	for _, r := range recommendations {
		want := r.CurrentStock < r.ReorderPoint
		if r.NeedsReorder != want {
			t.Fatalf("product %s: needs_reorder=%v, want %v", r.ProductID, r.NeedsReorder, want)
		}
		if r.PredictedDemand != 0 {
			t.Fatalf("product %s: expected zero demand without forecasts, got %v", r.ProductID, r.PredictedDemand)
		}
		if r.RecommendedOrderQty != 0 {
			t.Fatalf("product %s: expected zero order qty without demand, got %d", r.ProductID, r.RecommendedOrderQty)
		}
	}
}

func TestBuildRecommendationsSumsForecastDemand(t *testing.T) {
	items := []domain.InventoryItem{
		{ProductID: "P001", CurrentStock: 3, ReorderPoint: 10},
		{ProductID: "P002", CurrentStock: 100, ReorderPoint: 10},
	}
	forecasts := []domain.Forecast{
		{ProductID: "P001", PredictedQuantity: 4.5},
		{ProductID: "P001", PredictedQuantity: 5.2},
		{ProductID: "P002", PredictedQuantity: 10},
	}

	recommendations := BuildRecommendations(items, forecasts)

	if math.Abs(recommendations[0].PredictedDemand-9.7) > 1e-9 {
		t.Fatalf("expected summed demand 9.7, got %v", recommendations[0].PredictedDemand)
	}
	// int(9.7 - 3) = 6
	if recommendations[0].RecommendedOrderQty != 6 {
		t.Fatalf("expected order qty 6, got %d", recommendations[0].RecommendedOrderQty)
	}
	// Demand below stock clamps to zero.
	if recommendations[1].RecommendedOrderQty != 0 {
		t.Fatalf("expected order qty 0, got %d", recommendations[1].RecommendedOrderQty)
	}
}
