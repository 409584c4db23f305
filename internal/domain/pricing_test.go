package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_ideas/internal/domain"
)

func TestAmount_Int64(t *testing.T) {
	for _, tc := range []struct {
		in   domain.Amount
		want int64
	}{
		{"0", 0},
		{" 80000 ", 80000},
		{"80000.9", 80000},
		{"1000000000000", domain.MaxAmount},
	} {
		got, err := tc.in.Int64()
		require.NoError(t, err, string(tc.in))
		assert.Equal(t, tc.want, got, string(tc.in))
	}
}

func TestAmount_Int64_IntegrityErrors(t *testing.T) {
	for _, in := range []domain.Amount{
		"", "n/a", "-5", "-0.5", "NaN", "Inf",
		"1000000000001", "100000000000000000", "9223372036854775807", "1e18",
	} {
		_, err := in.Int64()
		assert.ErrorIs(t, err, domain.ErrDataIntegrity, string(in))
	}
}
