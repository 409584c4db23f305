package estimate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_ideas/internal/domain"
	"travel_ideas/internal/estimate"
)

func costRows() []domain.CostBaseline {
	return []domain.CostBaseline{
		{CountryISO2: "JP", DailyLow: "8000", DailyMed: "15000", DailyHigh: "30000"},
		{CountryISO2: "TH", DailyLow: "4000", DailyMed: "9000", DailyHigh: "20000"},
		{CountryISO2: "TH", DailyLow: "1", DailyMed: "1", DailyHigh: "1"},
		{CountryISO2: "XX", DailyLow: "5000", DailyMed: "abc", DailyHigh: "12000"},
	}
}

func TestEstimateDailyCost_TierMapping(t *testing.T) {
	tests := []struct {
		tier domain.Tier
		want int64
	}{
		{domain.TierLow, 8000},
		{domain.TierMed, 15000},
		{domain.TierHigh, 30000},
		{"", 15000},
		{"xyz", 15000},
		{"LOW", 15000},
	}
	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			got, err := estimate.EstimateDailyCost(costRows(), "JP", tt.tier)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestEstimateDailyCost_FirstRowWins(t *testing.T) {
	got, err := estimate.EstimateDailyCost(costRows(), "TH", domain.TierMed)
	require.NoError(t, err)
	assert.Equal(t, int64(9000), *got)
}

func TestEstimateDailyCost_NotFound(t *testing.T) {
	got, err := estimate.EstimateDailyCost(costRows(), "FR", domain.TierMed)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEstimateDailyCost_IntegrityErrorOnlyForSelectedField(t *testing.T) {
	_, err := estimate.EstimateDailyCost(costRows(), "XX", domain.TierMed)
	assert.ErrorIs(t, err, domain.ErrDataIntegrity)

	got, err := estimate.EstimateDailyCost(costRows(), "XX", domain.TierHigh)
	require.NoError(t, err)
	assert.Equal(t, int64(12000), *got)
}

func TestNormalizeTier(t *testing.T) {
	assert.Equal(t, domain.TierLow, estimate.NormalizeTier("low"))
	assert.Equal(t, domain.TierHigh, estimate.NormalizeTier("high"))
	assert.Equal(t, domain.TierMed, estimate.NormalizeTier("med"))
	assert.Equal(t, domain.TierMed, estimate.NormalizeTier(" low"))
}
