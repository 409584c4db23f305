package domain

import "time"

// CompareItem is the snapshot stored when a user marks a spot for comparison.
type CompareItem struct {
	CountryISO2 string    `json:"country_iso2"`
	SpotName    string    `json:"name"`
	Days        int       `json:"days"`
	CostTier    Tier      `json:"cost_level"`
	Month       string    `json:"month,omitempty"`
	AddedAt     time.Time `json:"added_at"`
}

// CompareEntry is a CompareItem with a freshly computed estimate.
type CompareEntry struct {
	Item      CompareItem  `json:"item"`
	Country   CountryRef   `json:"country"`
	Airfare   AirfareQuote `json:"airfare"`
	DailyCost *int64       `json:"daily_cost"`
	Budget    BudgetRange  `json:"budget"`
	Warnings  []string     `json:"warnings,omitempty"`
}
