package estimate

import (
	"fmt"

	"travel_ideas/internal/domain"
)

// NormalizeTier maps a requested tier onto low, med or high. Anything that is
// not exactly "low" or "high" is med.
func NormalizeTier(t domain.Tier) domain.Tier {
	switch t {
	case domain.TierLow, domain.TierHigh:
		return t
	default:
		return domain.TierMed
	}
}

// EstimateDailyCost returns the per-day cost for the country at the given tier,
// or nil when the country has no baseline.
func EstimateDailyCost(rows []domain.CostBaseline, countryISO2 string, tier domain.Tier) (*int64, error) {
	for i := range rows {
		if rows[i].CountryISO2 != countryISO2 {
			continue
		}
		field, col := tierAmount(rows[i], NormalizeTier(tier))
		v, err := field.Int64()
		if err != nil {
			return nil, fmt.Errorf("cost baseline %s %s: %w", countryISO2, col, err)
		}
		return &v, nil
	}
	return nil, nil
}

func tierAmount(r domain.CostBaseline, t domain.Tier) (domain.Amount, string) {
	switch t {
	case domain.TierLow:
		return r.DailyLow, "daily_cost_low"
	case domain.TierHigh:
		return r.DailyHigh, "daily_cost_high"
	default:
		return r.DailyMed, "daily_cost_med"
	}
}
