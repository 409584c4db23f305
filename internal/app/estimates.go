package app

import (
	"errors"

	"github.com/rs/zerolog/log"

	"travel_ideas/internal/adapters/observability"
	"travel_ideas/internal/domain"
	"travel_ideas/internal/estimate"
)

type tripEstimate struct {
	airfare  domain.AirfareQuote
	daily    *int64
	budget   domain.BudgetRange
	warnings []string
}

// estimateTrip runs the airfare and daily-cost lookups and the budget band for
// one country. Integrity errors do not fail the request: the affected price is
// reported absent and a warning is attached.
func estimateTrip(c *Catalog, origin, iso2, month string, days int, tier domain.Tier) tripEstimate {
	var out tripEstimate

	q, err := estimate.EstimateAirfare(c.Airfares(), origin, iso2, month)
	switch {
	case err != nil:
		out.warnings = append(out.warnings, integrityWarning("airfare", iso2, err))
	case !q.Found():
		observability.ObserveEstimate("airfare", "miss")
	case q.MonthFallback:
		observability.ObserveEstimate("airfare", "fallback")
		out.airfare = q
	default:
		observability.ObserveEstimate("airfare", "hit")
		out.airfare = q
	}

	daily, err := estimate.EstimateDailyCost(c.Costs(), iso2, tier)
	switch {
	case err != nil:
		out.warnings = append(out.warnings, integrityWarning("daily_cost", iso2, err))
	case daily == nil:
		observability.ObserveEstimate("daily_cost", "miss")
	default:
		observability.ObserveEstimate("daily_cost", "hit")
		out.daily = daily
	}

	out.budget = estimate.TotalBudgetRange(out.airfare.Median, out.daily, days)
	return out
}

func integrityWarning(kind, iso2 string, err error) string {
	observability.ObserveEstimate(kind, "integrity_error")
	ev := log.Warn()
	if !errors.Is(err, domain.ErrDataIntegrity) {
		ev = log.Error()
	}
	ev.Err(err).Str("kind", kind).Str("country", iso2).Msg("estimate lookup failed")
	return kind + ": " + err.Error()
}
