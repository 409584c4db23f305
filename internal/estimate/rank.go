package estimate

import (
	"slices"

	"travel_ideas/internal/domain"
)

// FilterByCountry returns copies of the spots belonging to countryISO2, in input order.
func FilterByCountry(spots []domain.Spot, countryISO2 string) []domain.Spot {
	out := make([]domain.Spot, 0, len(spots))
	for _, s := range spots {
		if s.CountryISO2 == countryISO2 {
			s.Tags = slices.Clone(s.Tags)
			out = append(out, s)
		}
	}
	return out
}

// TagScore counts the spot tags present in selected. A tag repeated on the
// spot counts once per occurrence.
func TagScore(tags []string, selected map[string]struct{}) int {
	n := 0
	for _, t := range tags {
		if _, ok := selected[t]; ok {
			n++
		}
	}
	return n
}

// RankSpots scores spots against the selected tags and orders them by
// descending score. The sort is stable: equal scores keep input order, which
// carries the dataset's curation priority. With no tags selected every score
// is 0 and the order is unchanged.
func RankSpots(spots []domain.Spot, selected []string) []domain.RankedSpot {
	want := make(map[string]struct{}, len(selected))
	for _, t := range selected {
		want[t] = struct{}{}
	}

	out := make([]domain.RankedSpot, len(spots))
	for i, s := range spots {
		s.Tags = slices.Clone(s.Tags)
		out[i] = domain.RankedSpot{Spot: s}
		if len(want) > 0 {
			out[i].TagScore = TagScore(s.Tags, want)
		}
	}
	if len(want) == 0 {
		return out
	}

	slices.SortStableFunc(out, func(a, b domain.RankedSpot) int {
		return b.TagScore - a.TagScore
	})
	return out
}
