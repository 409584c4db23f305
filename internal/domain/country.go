package domain

// CountryRef is one entry of the regions/countries catalog. ISO2 is the join key
// with spots, cost baselines and airfare records.
type CountryRef struct {
	ISO2   string `json:"iso2"`
	NameJA string `json:"name_ja"`
	NameEN string `json:"name_en"`
	Flag   string `json:"flag"`
	Region string `json:"region"`
}

// Region groups countries in catalog order.
type Region struct {
	Name      string       `json:"name"`
	Countries []CountryRef `json:"countries"`
}

// Label is the selector text shown for a country, e.g. "🇯🇵 日本 (Japan)".
func (c CountryRef) Label() string {
	return c.Flag + " " + c.NameJA + " (" + c.NameEN + ")"
}
