package usecase

import (
	"math"

	"github.com/ArbaazShaikh07/Ecomlytics/internal/core/domain"
)

// RFM weights and saturation points for the churn heuristic.
const (
	churnRecencyWeight   = 0.5
	churnFrequencyWeight = 0.3
	churnMonetaryWeight  = 0.2

	churnRecencySaturationDays     = 180
	churnFrequencySaturationOrders = 20
	churnMonetarySaturationSpend   = 10000

	// churnNoOrdersProbability applies to customers with no order history.
	churnNoOrdersProbability = 0.8
)

// ScoredCustomer pairs a customer business key with recomputed derived fields.
type ScoredCustomer struct {
	CustomerID string
	Derived    domain.CustomerDerived
}

// ScoreChurn recomputes churn risk and purchase aggregates for every
// customer. The reference date is shared by the whole pass so one scoring
// run is internally consistent.
func ScoreChurn(reference domain.Date, customers []domain.Customer, orders []domain.Order) []ScoredCustomer {
	type aggregate struct {
		count int
		spent float64
		last  domain.Date
	}
	byCustomer := make(map[string]*aggregate)
	for _, o := range orders {
		agg := byCustomer[o.CustomerID]
		if agg == nil {
			agg = &aggregate{}
			byCustomer[o.CustomerID] = agg
		}
		agg.count++
		agg.spent += o.Total
		if agg.last.IsZero() || o.OrderDate.After(agg.last) {
			agg.last = o.OrderDate
		}
	}

	scored := make([]ScoredCustomer, 0, len(customers))
	for _, c := range customers {
		agg := byCustomer[c.CustomerID]
		if agg == nil {
			scored = append(scored, ScoredCustomer{
				CustomerID: c.CustomerID,
				Derived:    domain.CustomerDerived{ChurnProbability: churnNoOrdersProbability},
			})
			continue
		}

		recency := math.Min(float64(reference.DaysSince(agg.last))/churnRecencySaturationDays, 1)
		frequency := 1 - math.Min(float64(agg.count)/churnFrequencySaturationOrders, 1)
		monetary := 1 - math.Min(agg.spent/churnMonetarySaturationSpend, 1)
		probability := churnRecencyWeight*recency + churnFrequencyWeight*frequency + churnMonetaryWeight*monetary

		last := agg.last
		scored = append(scored, ScoredCustomer{
			CustomerID: c.CustomerID,
			Derived: domain.CustomerDerived{
				TotalSpent:       agg.spent,
				OrderCount:       agg.count,
				LastPurchaseDate: &last,
				ChurnProbability: math.Round(probability*100) / 100,
			},
		})
	}
	return scored
}

// MaxOrderDate returns the latest order date across the whole snapshot.
func MaxOrderDate(orders []domain.Order) (domain.Date, bool) {
	var max domain.Date
	for _, o := range orders {
		if max.IsZero() || o.OrderDate.After(max) {
			max = o.OrderDate
		}
	}
	return max, !max.IsZero()
}
