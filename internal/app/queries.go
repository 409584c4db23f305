package app

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"travel_ideas/internal/domain"
	"travel_ideas/internal/estimate"
)

const bestSeasonCount = 3

type ExploreService struct {
	catalog  *Catalog
	cache    domain.Cache
	cacheTTL time.Duration
	origin   string
}

// NewExploreService wires the explore read path. cache may be nil.
func NewExploreService(c *Catalog, cache domain.Cache, ttl time.Duration, origin string) *ExploreService {
	return &ExploreService{catalog: c, cache: cache, cacheTTL: ttl, origin: origin}
}

func (s *ExploreService) Origin() string           { return s.origin }
func (s *ExploreService) Regions() []domain.Region { return s.catalog.Regions() }
func (s *ExploreService) Months() []string         { return s.catalog.Months() }
func (s *ExploreService) Tags() []string           { return s.catalog.Tags() }

// Explore ranks the country's spots by the selected tags and attaches the
// trip budget estimate to the result and to every spot.
func (s *ExploreService) Explore(ctx context.Context, q domain.ExploreQuery) (domain.ExploreResult, error) {
	iso2 := strings.ToUpper(strings.TrimSpace(q.CountryISO2))
	if iso2 == "" {
		return domain.ExploreResult{}, fmt.Errorf("country is required: %w", domain.ErrInvalidInput)
	}
	country, ok := s.catalog.Country(iso2)
	if !ok {
		return domain.ExploreResult{}, fmt.Errorf("country %s: %w", iso2, domain.ErrNotFound)
	}
	tier := estimate.NormalizeTier(q.Tier)

	key := exploreKey(iso2, q.Tags, q.Month, q.Days, tier)
	var cached domain.ExploreResult
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &cached); ok {
			return cached, nil
		}
	}

	est := estimateTrip(s.catalog, s.origin, iso2, q.Month, q.Days, tier)
	ranked := estimate.RankSpots(s.catalog.SpotsFor(iso2), q.Tags)

	res := domain.ExploreResult{
		Country:     country,
		Origin:      s.origin,
		Month:       q.Month,
		Days:        q.Days,
		Tier:        tier,
		Airfare:     est.airfare,
		DailyCost:   est.daily,
		Budget:      est.budget,
		BestSeasons: []string{},
		Spots:       make([]domain.SpotCard, 0, len(ranked)),
		Warnings:    est.warnings,
	}
	for _, r := range ranked {
		res.Spots = append(res.Spots, domain.SpotCard{RankedSpot: r, Budget: est.budget})
	}
	for _, r := range ranked[:min(bestSeasonCount, len(ranked))] {
		if r.BestMonths != "" {
			res.BestSeasons = append(res.BestSeasons, r.BestMonths)
		}
	}

	if s.cache != nil && s.cacheTTL > 0 {
		_ = s.cache.Set(ctx, key, res, int(s.cacheTTL.Seconds()))
	}
	return res, nil
}

// exploreKey is order-insensitive in tags since ranking only depends on the set.
func exploreKey(iso2 string, tags []string, month string, days int, tier domain.Tier) string {
	t := slices.Clone(tags)
	slices.Sort(t)
	t = slices.Compact(t)
	return fmt.Sprintf("explore:%s:%s:%s:%d:%s", iso2, strings.Join(t, ","), month, days, tier)
}
