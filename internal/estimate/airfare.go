package estimate

import (
	"fmt"

	"travel_ideas/internal/domain"
)

// EstimateAirfare returns the median and minimum fare for origin→countryISO2.
//
// A non-empty month narrows the rows to that month; when the month has no rows
// the filter is dropped and the route's first row is used, with MonthFallback
// set. No matching row yields a quote with nil prices and a nil error.
func EstimateAirfare(rows []domain.AirfareRecord, origin, countryISO2, month string) (domain.AirfareQuote, error) {
	first, firstInMonth := -1, -1
	for i := range rows {
		r := &rows[i]
		if r.Origin != origin || r.CountryISO2 != countryISO2 {
			continue
		}
		if first < 0 {
			first = i
		}
		if month != "" && r.Month == month {
			firstInMonth = i
			break
		}
		if month == "" {
			break
		}
	}

	pick, fallback := first, false
	if month != "" {
		if firstInMonth >= 0 {
			pick = firstInMonth
		} else if first >= 0 {
			fallback = true
		}
	}
	if pick < 0 {
		return domain.AirfareQuote{}, nil
	}

	row := rows[pick]
	median, err := row.MedianPrice.Int64()
	if err != nil {
		return domain.AirfareQuote{}, fmt.Errorf("airfare %s-%s median_price: %w", origin, countryISO2, err)
	}
	lowest, err := row.MinPrice.Int64()
	if err != nil {
		return domain.AirfareQuote{}, fmt.Errorf("airfare %s-%s min_price: %w", origin, countryISO2, err)
	}
	return domain.AirfareQuote{Median: &median, Min: &lowest, MonthFallback: fallback}, nil
}
