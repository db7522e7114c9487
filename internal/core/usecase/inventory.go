package usecase

import (
	"github.com/ArbaazShaikh07/Ecomlytics/internal/core/domain"
)

// BuildRecommendations joins current stock against summed forecast demand.
// needs_reorder depends only on stock vs reorder point; predicted demand
// defaults to zero for products without forecasts. Nothing is mutated.
func BuildRecommendations(items []domain.InventoryItem, forecasts []domain.Forecast) []domain.Recommendation {
	demand := make(map[string]float64)
	for _, f := range forecasts {
		demand[f.ProductID] += f.PredictedQuantity
	}

	recommendations := make([]domain.Recommendation, 0, len(items))
	for _, item := range items {
		predicted := demand[item.ProductID]
		qty := int(predicted - float64(item.CurrentStock))
		if qty < 0 {
			qty = 0
		}
		recommendations = append(recommendations, domain.Recommendation{
			InventoryItem:       item,
			PredictedDemand:     predicted,
			NeedsReorder:        item.CurrentStock < item.ReorderPoint,
			RecommendedOrderQty: qty,
		})
	}
	return recommendations
}
