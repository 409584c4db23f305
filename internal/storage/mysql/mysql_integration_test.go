//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"travel_ideas/internal/domain"
	mysqlrepo "travel_ideas/internal/storage/mysql"
)

// ---------- small helpers ----------

func migrationsDir(t *testing.T) string {
	t.Helper()
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return filepath.Join("..", "..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir(t)

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

// ---------- the test ----------

func TestRepo_MySQL_UpsertAndLoad(t *testing.T) {
	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=travel",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "travel")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)

	repo := mysqlrepo.New(db)
	ctx := context.Background()

	regions := []domain.Region{
		{Name: "ヨーロッパ", Countries: []domain.CountryRef{
			{ISO2: "FR", NameJA: "フランス", NameEN: "France", Flag: "🇫🇷"},
		}},
		{Name: "南極", Countries: []domain.CountryRef{}},
		{Name: "アジア", Countries: []domain.CountryRef{
			{ISO2: "TH", NameJA: "タイ", NameEN: "Thailand", Flag: "🇹🇭"},
			{ISO2: "VN", NameJA: "ベトナム", NameEN: "Vietnam", Flag: "🇻🇳"},
		}},
	}
	if _, err := repo.UpsertRegions(ctx, regions); err != nil {
		t.Fatalf("UpsertRegions: %v", err)
	}
	if _, err := repo.UpsertCountries(ctx, regions); err != nil {
		t.Fatalf("UpsertCountries: %v", err)
	}
	spots := []domain.Spot{
		{Name: "ワット・アルン", CountryISO2: "TH", Tags: []string{"建築", "歴史"}, BestMonths: "11月〜2月", Lat: 13.74, Lng: 100.49},
		{Name: "ハロン湾", CountryISO2: "VN", Lat: 20.91, Lng: 107.18, Type: "クルーズ"},
		{Name: "stale", CountryISO2: "VN", Lat: 1, Lng: 1},
	}
	if _, err := repo.UpsertSpots(ctx, spots); err != nil {
		t.Fatalf("UpsertSpots: %v", err)
	}
	// second run with a shorter file drops the trailing row
	n, err := repo.UpsertSpots(ctx, spots[:2])
	if err != nil {
		t.Fatalf("UpsertSpots: %v", err)
	}
	if err := repo.Trim(ctx, "spots", n); err != nil {
		t.Fatalf("Trim: %v", err)
	}
	if _, err := repo.UpsertCosts(ctx, []domain.CostBaseline{
		{CountryISO2: "TH", DailyLow: "4000", DailyMed: "9000", DailyHigh: ""},
	}); err != nil {
		t.Fatalf("UpsertCosts: %v", err)
	}
	if _, err := repo.UpsertAirfares(ctx, []domain.AirfareRecord{
		{Origin: "NRT", CountryISO2: "TH", MedianPrice: "80000", MinPrice: "52000"},
		{Origin: "NRT", CountryISO2: "TH", Month: "2025-09", MedianPrice: "72000", MinPrice: "45000"},
	}); err != nil {
		t.Fatalf("UpsertAirfares: %v", err)
	}

	// Assert
	ds, err := repo.LoadDataset(ctx)
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	if len(ds.Regions) != 3 || ds.Regions[0].Name != "ヨーロッパ" || len(ds.Regions[2].Countries) != 2 {
		t.Fatalf("unexpected regions: %+v", ds.Regions)
	}
	// a region without countries keeps its place, same as the files loader
	if ds.Regions[1].Name != "南極" || ds.Regions[1].Countries == nil || len(ds.Regions[1].Countries) != 0 {
		t.Fatalf("empty region lost: %+v", ds.Regions[1])
	}
	if ds.Regions[2].Countries[0].Region != "アジア" {
		t.Fatalf("country region: %+v", ds.Regions[2].Countries[0])
	}
	if len(ds.Spots) != 2 || ds.Spots[0].Tags[1] != "歴史" || ds.Spots[1].Type != "クルーズ" || len(ds.Spots[1].Tags) != 0 {
		t.Fatalf("unexpected spots: %+v", ds.Spots)
	}
	if ds.Costs[0].DailyMed != "9000" || ds.Costs[0].DailyHigh != "" {
		t.Fatalf("unexpected costs: %+v", ds.Costs)
	}
	if len(ds.Airfares) != 2 || ds.Airfares[0].Month != "" || ds.Airfares[1].Month != "2025-09" {
		t.Fatalf("unexpected airfares: %+v", ds.Airfares)
	}
	if err := repo.Trim(ctx, "users; --", 0); err == nil {
		t.Fatalf("expected Trim to reject unknown table")
	}
}
