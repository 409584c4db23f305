package domain

type Spot struct {
	Name        string   `json:"name"`
	CountryISO2 string   `json:"country_iso2"`
	CountryName string   `json:"country_name"` // localized display name carried by the spots file
	Tags        []string `json:"tags"`
	BestMonths  string   `json:"best_months"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Summary     string   `json:"summary"`
	Type        string   `json:"type"` // experience type label
}

// RankedSpot is a Spot copy with its tag score.
type RankedSpot struct {
	Spot
	TagScore int `json:"tag_score"`
}
