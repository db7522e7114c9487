package usecase

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/ArbaazShaikh07/Ecomlytics/internal/core/domain"
)

const (
	DefaultForecastHorizonDays = 7

	// minForecastHistoryDays is the minimum distinct order days needed to
	// fit a trend for a product.
	minForecastHistoryDays = 3
)

// BuildForecasts fits a per-product least-squares line over daily order
// quantity (independent variable: zero-based day index) and projects it
// across the horizon. Predictions are clamped at zero and dated from each
// product's last observed order date, not from the current day.
func BuildForecasts(orders []domain.Order, horizonDays int) []domain.Forecast {
	if horizonDays <= 0 {
		horizonDays = DefaultForecastHorizonDays
	}

	type productSeries struct {
		name     string
		category string
		daily    map[domain.Date]float64
	}
	series := make(map[string]*productSeries)
	productIDs := make([]string, 0)
	for _, o := range orders {
		s, ok := series[o.ProductID]
		if !ok {
			s = &productSeries{name: o.ProductName, category: o.Category, daily: make(map[domain.Date]float64)}
			series[o.ProductID] = s
			productIDs = append(productIDs, o.ProductID)
		}
		s.daily[o.OrderDate] += float64(o.Quantity)
	}

	var forecasts []domain.Forecast
	for _, productID := range productIDs {
		s := series[productID]
		if len(s.daily) < minForecastHistoryDays {
			continue
		}

		days := make([]domain.Date, 0, len(s.daily))
		for d := range s.daily {
			days = append(days, d)
		}
		sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

		quantities := make([]float64, len(days))
		for i, d := range days {
			quantities[i] = s.daily[d]
		}

		slope, intercept := fitLine(quantities)
		lastDay := days[len(days)-1]
		for i := 0; i < horizonDays; i++ {
			x := float64(len(quantities) + i)
			forecasts = append(forecasts, domain.Forecast{
				ID:                uuid.NewString(),
				ProductID:         productID,
				ProductName:       s.name,
				Category:          s.category,
				ForecastDate:      lastDay.AddDays(i + 1),
				PredictedQuantity: math.Max(0, intercept+slope*x),
				Confidence:        domain.ForecastConfidenceMedium,
			})
		}
	}
	return forecasts
}

// fitLine returns the slope and intercept of the ordinary least-squares
// line through (i, y[i]).
func fitLine(y []float64) (slope, intercept float64) {
	n := float64(len(y))
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}
