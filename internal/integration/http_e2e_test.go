//go:build integration || !unit

package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	server "travel_ideas/internal/adapters/http_server"
	"travel_ideas/internal/adapters/observability"
	redisad "travel_ideas/internal/adapters/redis"
	"travel_ideas/internal/app"
	"travel_ideas/internal/domain"
	"travel_ideas/internal/storage/files"
)

// ---------- helpers ----------

func dataDir(t *testing.T) string {
	t.Helper()
	if d := os.Getenv("DATA_DIR"); d != "" {
		return d
	}
	return "../../data"
}

func decode[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	defer res.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&v))
	return v
}

func startStack(t *testing.T) (*httptest.Server, *miniredis.Miniredis) {
	t.Helper()

	ds, err := files.NewLoader(files.NewDirSource(dataDir(t)), "dir").LoadDataset(context.Background())
	require.NoError(t, err)
	catalog := app.NewCatalog(ds)

	mr := miniredis.RunT(t)
	rdb := redisad.NewClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rdb.Close() })

	srv := server.New(server.Options{})
	srv.Mount("/metrics", observability.MetricsHandler(observability.InitRegistry()))
	srv.MountHandlers(&server.Handlers{
		Explore: app.NewExploreService(catalog, redisad.New(rdb, "travel:"), time.Minute, "NRT"),
		Compare: app.NewCompareService(catalog, redisad.NewCompareStore(rdb, time.Hour), "NRT"),
		Days:    server.DaysRange{Min: 3, Max: 21, Default: 7},
	})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts, mr
}

// ---------- tests ----------

func TestE2E_ExploreAndCompare(t *testing.T) {
	ts, mr := startStack(t)

	// form options
	res, err := http.Get(ts.URL + "/v1/options")
	require.NoError(t, err)
	opts := decode[map[string]any](t, res)
	assert.Equal(t, []any{"2025-09", "2025-12"}, opts["months"])

	regions := decode[[]domain.Region](t, must(http.Get(ts.URL+"/v1/regions")))
	require.Len(t, regions, 3)
	assert.Equal(t, "アジア", regions[0].Name)
	assert.Equal(t, "TH", regions[0].Countries[0].ISO2)

	// explore: history + architecture in Thailand, December, 7 days, med tier
	res = must(http.Get(ts.URL + "/v1/explore?country=TH&tags=歴史,建築&month=2025-12&days=7"))
	require.Equal(t, http.StatusOK, res.StatusCode)
	ex := decode[domain.ExploreResult](t, res)
	require.Len(t, ex.Spots, 3)
	assert.Equal(t, "ワット・アルン", ex.Spots[0].Name)
	assert.Equal(t, 2, ex.Spots[0].TagScore)
	assert.Equal(t, "ピピ島", ex.Spots[2].Name)
	// (98000 + 10000*7) = 168000
	assert.Equal(t, int64(142800), *ex.Budget.Low)
	assert.Equal(t, int64(193200), *ex.Budget.High)
	assert.Equal(t, "🇹🇭 タイ (Thailand)", ex.Country.Label())

	// the explore result is cached in redis
	keys := mr.Keys()
	found := false
	for _, k := range keys {
		if strings.HasPrefix(k, "travel:explore:") {
			found = true
		}
	}
	assert.True(t, found, "expected an explore cache entry, got %v", keys)

	// compare session
	sess := decode[map[string]string](t, must(http.Post(ts.URL+"/v1/sessions", "application/json", nil)))
	base := ts.URL + "/v1/sessions/" + sess["session_id"] + "/compare"

	for _, body := range []string{
		`{"country_iso2":"IT","name":"ドロミーティ","days":10,"cost_level":"high","month":"2025-09"}`,
		`{"country_iso2":"KR","name":"景福宮","days":3,"cost_level":"low"}`,
	} {
		res := must(http.Post(base, "application/json", strings.NewReader(body)))
		res.Body.Close()
		require.Equal(t, http.StatusCreated, res.StatusCode, body)
	}

	view := decode[[]domain.CompareEntry](t, must(http.Get(base+"/view")))
	require.Len(t, view, 2)
	// (170000 + 38000*10) = 550000
	assert.Equal(t, int64(467500), *view[0].Budget.Low)
	assert.Equal(t, int64(632500), *view[0].Budget.High)
	// (38000 + 7000*3) = 59000
	assert.Equal(t, int64(50150), *view[1].Budget.Low)
	assert.Equal(t, "韓国", view[1].Country.NameJA)

	// session ends when the list expires
	mr.FastForward(2 * time.Hour)
	items := decode[[]domain.CompareItem](t, must(http.Get(base)))
	assert.Empty(t, items)

	// metrics were recorded along the way
	res = must(http.Get(ts.URL + "/metrics"))
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func must(res *http.Response, err error) *http.Response {
	if err != nil {
		panic(err)
	}
	return res
}
