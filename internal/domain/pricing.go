package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxAmount is the largest price accepted from reference data, in JPY.
const MaxAmount = 1_000_000_000_000

// Amount is a monetary cell exactly as it appeared in the reference data (JPY).
// It is parsed only when a lookup selects the row, so a malformed value surfaces
// as ErrDataIntegrity at that point instead of failing the whole dataset.
type Amount string

// Int64 parses the amount. Fractional values are truncated; empty, non-numeric,
// negative, non-finite and values above MaxAmount are integrity errors.
func (a Amount) Int64() (int64, error) {
	s := strings.TrimSpace(string(a))
	if s == "" {
		return 0, fmt.Errorf("empty amount: %w", ErrDataIntegrity)
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative amount %q: %w", s, ErrDataIntegrity)
		}
		if n > MaxAmount {
			return 0, fmt.Errorf("amount %q out of range: %w", s, ErrDataIntegrity)
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("malformed amount %q: %w", s, ErrDataIntegrity)
	}
	if f < 0 {
		return 0, fmt.Errorf("negative amount %q: %w", s, ErrDataIntegrity)
	}
	if f > MaxAmount {
		return 0, fmt.Errorf("amount %q out of range: %w", s, ErrDataIntegrity)
	}
	return int64(f), nil
}

// Tier is a spend tier. Only low, med and high are meaningful; any other value
// is treated as med by the estimators.
type Tier string

const (
	TierLow  Tier = "low"
	TierMed  Tier = "med"
	TierHigh Tier = "high"
)

var Tiers = []Tier{TierLow, TierMed, TierHigh}

type CostBaseline struct {
	CountryISO2 string
	DailyLow    Amount
	DailyMed    Amount
	DailyHigh   Amount
}

// AirfareRecord is one row of the airfare cache. Month is empty for the
// all-months fallback row.
type AirfareRecord struct {
	Origin      string
	CountryISO2 string
	Month       string
	MedianPrice Amount
	MinPrice    Amount
}

// AirfareQuote holds the looked-up prices; nil means no estimate.
// MonthFallback reports that the requested month had no rows and the quote
// comes from the route's other rows.
type AirfareQuote struct {
	Median        *int64 `json:"median"`
	Min           *int64 `json:"min"`
	MonthFallback bool   `json:"month_fallback"`
}

func (q AirfareQuote) Found() bool { return q.Median != nil }

// BudgetRange is the total trip budget band; both bounds are nil when no estimate exists.
type BudgetRange struct {
	Low  *int64 `json:"low"`
	High *int64 `json:"high"`
}

func (b BudgetRange) Available() bool { return b.Low != nil && b.High != nil }

// Dataset is the full set of reference tables in source order.
type Dataset struct {
	Regions  []Region
	Spots    []Spot
	Costs    []CostBaseline
	Airfares []AirfareRecord
}
