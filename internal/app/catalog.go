package app

import (
	"slices"

	"travel_ideas/internal/domain"
	"travel_ideas/internal/estimate"
)

// Catalog is an immutable snapshot of the reference dataset. It is built once
// and shared read-only by every request.
type Catalog struct {
	regions   []domain.Region
	countries map[string]domain.CountryRef
	spots     []domain.Spot
	costs     []domain.CostBaseline
	airfares  []domain.AirfareRecord
	months    []string
	tags      []string
}

func NewCatalog(ds domain.Dataset) *Catalog {
	c := &Catalog{
		regions:   make([]domain.Region, len(ds.Regions)),
		countries: make(map[string]domain.CountryRef),
		spots:     make([]domain.Spot, len(ds.Spots)),
		costs:     slices.Clone(ds.Costs),
		airfares:  slices.Clone(ds.Airfares),
	}
	for i, r := range ds.Regions {
		r.Countries = slices.Clone(r.Countries)
		c.regions[i] = r
		for _, cr := range r.Countries {
			if _, dup := c.countries[cr.ISO2]; !dup {
				c.countries[cr.ISO2] = cr
			}
		}
	}

	seenTag := map[string]bool{}
	for i, s := range ds.Spots {
		s.Tags = slices.Clone(s.Tags)
		c.spots[i] = s
		for _, t := range s.Tags {
			if !seenTag[t] {
				seenTag[t] = true
				c.tags = append(c.tags, t)
			}
		}
	}

	seenMonth := map[string]bool{}
	for _, a := range ds.Airfares {
		if a.Month != "" && !seenMonth[a.Month] {
			seenMonth[a.Month] = true
			c.months = append(c.months, a.Month)
		}
	}
	slices.Sort(c.months)
	return c
}

// Regions returns regions and their countries in catalog order.
func (c *Catalog) Regions() []domain.Region {
	out := make([]domain.Region, len(c.regions))
	for i, r := range c.regions {
		r.Countries = slices.Clone(r.Countries)
		out[i] = r
	}
	return out
}

func (c *Catalog) Country(iso2 string) (domain.CountryRef, bool) {
	cr, ok := c.countries[iso2]
	return cr, ok
}

// SpotsFor returns copies of the country's spots in dataset order.
func (c *Catalog) SpotsFor(iso2 string) []domain.Spot {
	return estimate.FilterByCountry(c.spots, iso2)
}

// Months lists the distinct months present in the airfare table, ascending.
func (c *Catalog) Months() []string { return slices.Clone(c.months) }

// Tags lists distinct spot tags in first-appearance order.
func (c *Catalog) Tags() []string { return slices.Clone(c.tags) }

// Costs and Airfares expose the shared tables; callers must not modify them.
func (c *Catalog) Costs() []domain.CostBaseline     { return c.costs }
func (c *Catalog) Airfares() []domain.AirfareRecord { return c.airfares }
