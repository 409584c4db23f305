package domain

type ExploreQuery struct {
	CountryISO2 string
	Tags        []string
	Month       string // "" = any month
	Days        int
	Tier        Tier
}

// SpotCard is a ranked spot annotated with the trip budget.
type SpotCard struct {
	RankedSpot
	Budget BudgetRange `json:"budget"`
}

type ExploreResult struct {
	Country     CountryRef   `json:"country"`
	Origin      string       `json:"origin"`
	Month       string       `json:"month,omitempty"`
	Days        int          `json:"days"`
	Tier        Tier         `json:"tier"`
	Airfare     AirfareQuote `json:"airfare"`
	DailyCost   *int64       `json:"daily_cost"`
	Budget      BudgetRange  `json:"budget"`
	BestSeasons []string     `json:"best_seasons"`
	Spots       []SpotCard   `json:"spots"`
	Warnings    []string     `json:"warnings,omitempty"`
}
