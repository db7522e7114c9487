package usecase

import (
	"fmt"
	"math"

	"github.com/ArbaazShaikh07/Ecomlytics/internal/core/domain"
)

// Elasticity assumptions: each 1% of price change moves volume 2% the
// other way; each $100 of ad spend lifts revenue 2%.
const (
	priceVolumeImpactPerPercent = 0.02
	adSpendLiftPer100           = 0.02
)

// SimulateRevenue applies the closed-form scenario to the given live
// revenue figure. Unknown scenarios are an invalid-input error.
func SimulateRevenue(scenario string, value float64, currentRevenue float64) (*domain.SimulationResult, error) {
	switch scenario {
	case domain.ScenarioPriceChange:
		multiplier := 1 + value/100
		volumeImpact := 1 - math.Abs(value)*priceVolumeImpactPerPercent
		simulated := currentRevenue * multiplier * volumeImpact
		return buildSimulation(scenario, currentRevenue, simulated, nil), nil

	case domain.ScenarioAdSpend:
		lift := value / 100 * adSpendLiftPer100
		simulated := currentRevenue * (1 + lift)
		roi := 0.0
		if value > 0 {
			roi = (simulated - currentRevenue) / value
		}
		return buildSimulation(scenario, currentRevenue, simulated, &roi), nil
	}
	return nil, domain.WrapError(domain.ErrInvalidInput, "simulate", fmt.Errorf("unknown scenario %q", scenario))
}

func buildSimulation(scenario string, current, simulated float64, roi *float64) *domain.SimulationResult {
	change := simulated - current
	percent := 0.0
	if current != 0 {
		percent = change / current * 100
	}
	return &domain.SimulationResult{
		Scenario:         scenario,
		CurrentRevenue:   current,
		SimulatedRevenue: simulated,
		Change:           change,
		ChangePercent:    percent,
		ROI:              roi,
	}
}
