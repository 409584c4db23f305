package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisad "travel_ideas/internal/adapters/redis"
	"travel_ideas/internal/domain"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redisad.Cache, *redisad.CompareStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redisad.NewClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = client.Close() })
	return mr, redisad.New(client, "test:"), redisad.NewCompareStore(client, 30*time.Minute)
}

func TestCache_SetGetDel(t *testing.T) {
	mr, cache, _ := newRedis(t)
	ctx := context.Background()

	var got domain.BudgetRange
	ok, err := cache.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	low, high := int64(127500), int64(172500)
	require.NoError(t, cache.Set(ctx, "k", domain.BudgetRange{Low: &low, High: &high}, 60))
	assert.True(t, mr.Exists("test:k"), "keys carry the prefix")
	assert.Equal(t, time.Minute, mr.TTL("test:k"))

	ok, err = cache.Get(ctx, "k", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(127500), *got.Low)
	assert.Equal(t, int64(172500), *got.High)

	require.NoError(t, cache.Del(ctx, "k"))
	ok, _ = cache.Get(ctx, "k", &got)
	assert.False(t, ok)
}

func TestCache_NilBoundsSurviveRoundTrip(t *testing.T) {
	_, cache, _ := newRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "absent", domain.BudgetRange{}, 60))
	got := domain.BudgetRange{Low: new(int64)}
	ok, err := cache.Get(ctx, "absent", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Nil(t, got.Low, "absent must not come back as zero")
	assert.Nil(t, got.High)
}

func TestCompareStore_AppendListClear(t *testing.T) {
	mr, _, store := newRedis(t)
	ctx := context.Background()
	sid := "6b0f3a4e-4a8c-4bd2-9a35-0c3e2f1d7a10"

	items, err := store.List(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, items)

	at := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.Append(ctx, sid, domain.CompareItem{CountryISO2: "TH", SpotName: "ワット・アルン", Days: 5, CostTier: domain.TierLow, AddedAt: at}))
	require.NoError(t, store.Append(ctx, sid, domain.CompareItem{CountryISO2: "FR", SpotName: "ルーヴル美術館", Days: 7, CostTier: domain.TierHigh, Month: "2025-08", AddedAt: at}))
	assert.Equal(t, 30*time.Minute, mr.TTL("compare:"+sid))

	items, err = store.List(ctx, sid)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "ワット・アルン", items[0].SpotName)
	assert.Equal(t, "2025-08", items[1].Month)
	assert.True(t, at.Equal(items[1].AddedAt))

	// sessions are isolated
	other, err := store.List(ctx, "another")
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, store.Clear(ctx, sid))
	items, err = store.List(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCompareStore_SessionExpires(t *testing.T) {
	mr, _, store := newRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s1", domain.CompareItem{CountryISO2: "JP", SpotName: "x"}))
	mr.FastForward(31 * time.Minute)

	items, err := store.List(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, items)
}
