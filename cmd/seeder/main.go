package main

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"travel_ideas/internal/adapters/observability"
	"travel_ideas/internal/domain"
	"travel_ideas/internal/shared"
	"travel_ideas/internal/storage/files"
	mysqlrepo "travel_ideas/internal/storage/mysql"
	"travel_ideas/internal/storage/objectstore"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("dir", cfg.DataDir).
		Str("target", cfg.SeedTarget).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	src := files.NewDirSource(cfg.DataDir)

	switch cfg.SeedTarget {
	case "mysql":
		ds, err := files.NewLoader(src, "dir").LoadDataset(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("reading dataset files failed")
		}
		seedMySQL(ctx, cfg, ds)
	case "s3":
		seedObjectStore(ctx, cfg, src)
	default:
		log.Fatal().Str("target", cfg.SeedTarget).Msg("SEED_TARGET must be mysql or s3")
	}
}

func seedMySQL(ctx context.Context, cfg shared.Config, ds domain.Dataset) {
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	upserts := map[string]func(ctx context.Context) (int, error){
		"regions":        func(ctx context.Context) (int, error) { return repo.UpsertRegions(ctx, ds.Regions) },
		"countries":      func(ctx context.Context) (int, error) { return repo.UpsertCountries(ctx, ds.Regions) },
		"spots":          func(ctx context.Context) (int, error) { return repo.UpsertSpots(ctx, ds.Spots) },
		"cost_baselines": func(ctx context.Context) (int, error) { return repo.UpsertCosts(ctx, ds.Costs) },
		"airfare_cache":  func(ctx context.Context) (int, error) { return repo.UpsertAirfares(ctx, ds.Airfares) },
	}

	sem := semaphore.NewWeighted(int64(max(cfg.SeedWorkers, 1)))
	var wg sync.WaitGroup
	var mu sync.Mutex
	failed := 0

	for _, table := range mysqlrepo.Tables {
		run := upserts[table]
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(table string) {
			defer wg.Done()
			defer sem.Release(1)

			n, err := run(ctx)
			if err == nil {
				err = repo.Trim(ctx, table, n)
			}
			if err != nil {
				log.Warn().Str("table", table).Err(err).Msg("seed failed")
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			log.Info().Str("table", table).Int("rows", n).Msg("seed ok")
		}(table)
	}

	wg.Wait()
	if failed > 0 {
		log.Fatal().Int("failed", failed).Msg("seeding incomplete")
	}
	log.Info().Msg("seeding completed")
}

// seedObjectStore uploads the raw files unchanged so the API can read them with DATA_SOURCE=s3.
func seedObjectStore(ctx context.Context, cfg shared.Config, src domain.DatasetSource) {
	store, err := objectstore.New(objectstore.Config{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		UseSSL:    cfg.S3UseSSL,
		Bucket:    cfg.S3Bucket,
		Prefix:    cfg.S3Prefix,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("object store init failed")
	}
	if err := store.EnsureBucket(ctx, ""); err != nil {
		log.Fatal().Err(err).Msg("ensure bucket failed")
	}

	for _, name := range files.AllFiles {
		rc, err := src.Open(ctx, name)
		if err != nil {
			log.Fatal().Err(err).Str("file", name).Msg("open dataset file failed")
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			log.Fatal().Err(err).Str("file", name).Msg("read dataset file failed")
		}
		if err := store.Put(ctx, name, bytes.NewReader(b), int64(len(b))); err != nil {
			log.Fatal().Err(err).Str("file", name).Msg("upload failed")
		}
		log.Info().Str("file", name).Int("bytes", len(b)).Msg("uploaded")
	}
	log.Info().Msg("seeding completed")
}
