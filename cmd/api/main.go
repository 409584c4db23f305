package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "travel_ideas/internal/adapters/http_server"
	"travel_ideas/internal/adapters/observability"
	redisad "travel_ideas/internal/adapters/redis"
	"travel_ideas/internal/app"
	"travel_ideas/internal/domain"
	"travel_ideas/internal/shared"
	"travel_ideas/internal/storage/files"
	mysqlrepo "travel_ideas/internal/storage/mysql"
	"travel_ideas/internal/storage/objectstore"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// datasets are read once; the catalog is immutable afterwards
	loader := datasetLoader(cfg)
	ds, err := loader.LoadDataset(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.DataSource).Msg("dataset load failed")
	}
	catalog := app.NewCatalog(ds)

	// deps
	rdb := redisad.NewClient(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
	}
	cache := redisad.New(rdb, "travel:")
	compare := redisad.NewCompareStore(rdb, cfg.SessionTTL)

	explore := app.NewExploreService(catalog, cache, cfg.CacheTTL, cfg.Origin)
	cmp := app.NewCompareService(catalog, compare, cfg.Origin)

	// http
	srv := server.New(server.Options{
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		TrustProxy:     cfg.TrustProxy,
	})
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Explore: explore,
		Compare: cmp,
		Days:    server.DaysRange{Min: cfg.MinDays, Max: cfg.MaxDays, Default: cfg.DefaultDays},
	})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdown); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Str("origin", cfg.Origin).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
	_ = rdb.Close()
	log.Info().Msg("API stopped")
}

func datasetLoader(cfg shared.Config) domain.DatasetLoader {
	switch cfg.DataSource {
	case "dir":
		return files.NewLoader(files.NewDirSource(cfg.DataDir), "dir")
	case "s3":
		src, err := objectstore.New(objectstore.Config{
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
		return files.NewLoader(src, "s3")
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		return mysqlrepo.New(db)
	default:
		log.Fatal().Str("source", cfg.DataSource).Msg("DATA_SOURCE must be dir, s3 or mysql")
		return nil
	}
}
