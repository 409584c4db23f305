package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"travel_ideas/internal/domain"
	"travel_ideas/internal/estimate"
)

// CompareService manages the session-scoped compare list. Items are snapshots;
// estimates are recomputed whenever the list is viewed.
type CompareService struct {
	catalog *Catalog
	store   domain.CompareStore
	origin  string
	now     func() time.Time
}

func NewCompareService(c *Catalog, store domain.CompareStore, origin string) *CompareService {
	return &CompareService{catalog: c, store: store, origin: origin, now: time.Now}
}

func (s *CompareService) NewSession() string { return uuid.NewString() }

func (s *CompareService) Add(ctx context.Context, sessionID string, item domain.CompareItem) (domain.CompareItem, error) {
	if err := checkSession(sessionID); err != nil {
		return domain.CompareItem{}, err
	}
	item.CountryISO2 = strings.ToUpper(strings.TrimSpace(item.CountryISO2))
	if _, ok := s.catalog.Country(item.CountryISO2); !ok {
		return domain.CompareItem{}, fmt.Errorf("country %q: %w", item.CountryISO2, domain.ErrNotFound)
	}
	if !s.hasSpot(item.CountryISO2, item.SpotName) {
		return domain.CompareItem{}, fmt.Errorf("spot %q in %s: %w", item.SpotName, item.CountryISO2, domain.ErrNotFound)
	}
	item.CostTier = estimate.NormalizeTier(item.CostTier)
	item.AddedAt = s.now().UTC()

	if err := s.store.Append(ctx, sessionID, item); err != nil {
		return domain.CompareItem{}, fmt.Errorf("append compare item: %w", err)
	}
	return item, nil
}

func (s *CompareService) List(ctx context.Context, sessionID string) ([]domain.CompareItem, error) {
	if err := checkSession(sessionID); err != nil {
		return nil, err
	}
	return s.store.List(ctx, sessionID)
}

// View returns the compare list with a fresh estimate per item.
func (s *CompareService) View(ctx context.Context, sessionID string) ([]domain.CompareEntry, error) {
	items, err := s.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.CompareEntry, 0, len(items))
	for _, it := range items {
		country, _ := s.catalog.Country(it.CountryISO2)
		est := estimateTrip(s.catalog, s.origin, it.CountryISO2, it.Month, it.Days, it.CostTier)
		out = append(out, domain.CompareEntry{
			Item:      it,
			Country:   country,
			Airfare:   est.airfare,
			DailyCost: est.daily,
			Budget:    est.budget,
			Warnings:  est.warnings,
		})
	}
	return out, nil
}

func (s *CompareService) Clear(ctx context.Context, sessionID string) error {
	if err := checkSession(sessionID); err != nil {
		return err
	}
	return s.store.Clear(ctx, sessionID)
}

func (s *CompareService) hasSpot(iso2, name string) bool {
	for _, sp := range s.catalog.SpotsFor(iso2) {
		if sp.Name == name {
			return true
		}
	}
	return false
}

func checkSession(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("session id %q: %w", id, domain.ErrInvalidInput)
	}
	return nil
}
