package estimate

import (
	"math"

	"travel_ideas/internal/domain"
)

// Uncertainty band around the point estimate, in percent.
const (
	LowBandPercent  = 85
	HighBandPercent = 115
)

// TotalBudgetRange combines airfare and daily cost over days into a ±15% band.
// If either price is nil both bounds are nil. The arithmetic is exact integer
// math truncated toward zero; days is not range-checked. A total that does not
// fit in int64 has no estimate and both bounds are nil.
func TotalBudgetRange(airfareMedian, dailyCost *int64, days int) domain.BudgetRange {
	if airfareMedian == nil || dailyCost == nil {
		return domain.BudgetRange{}
	}
	stay, ok := mul64(*dailyCost, int64(days))
	if !ok {
		return domain.BudgetRange{}
	}
	base, ok := add64(*airfareMedian, stay)
	if !ok {
		return domain.BudgetRange{}
	}
	low, okLow := percentOf(base, LowBandPercent)
	high, okHigh := percentOf(base, HighBandPercent)
	if !okLow || !okHigh {
		return domain.BudgetRange{}
	}
	return domain.BudgetRange{Low: &low, High: &high}
}

// percentOf returns base*pct/100 truncated toward zero without forming base*pct.
// base/100 and base%100 share a sign, so the two parts truncate the same way.
func percentOf(base, pct int64) (int64, bool) {
	whole, ok := mul64(base/100, pct)
	if !ok {
		return 0, false
	}
	return add64(whole, base%100*pct/100)
}

func mul64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	p := a * b
	return p, p/b == a
}

func add64(a, b int64) (int64, bool) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return 0, false
	}
	return s, true
}
