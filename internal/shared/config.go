package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	// DataSource selects where the reference datasets come from: dir, s3 or mysql.
	DataSource  string
	DataDir     string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Prefix    string
	S3UseSSL    bool
	MySQLDSN    string

	RedisAddr  string
	RedisDB    int
	RedisPass  string
	CacheTTL   time.Duration
	SessionTTL time.Duration

	Origin      string
	MinDays     int
	MaxDays     int
	DefaultDays int

	RateLimitRPS   int
	RateLimitBurst int
	TrustProxy     bool // honor X-Forwarded-For when behind a reverse proxy
	SeedWorkers    int
	SeedTarget     string // mysql|s3
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using process environment")
	}
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-integer setting")
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),

		DataSource:  strings.ToLower(env("DATA_SOURCE", "dir")),
		DataDir:     env("DATA_DIR", "./data"),
		S3Endpoint:  env("S3_ENDPOINT", "localhost:9000"),
		S3AccessKey: env("S3_ACCESS_KEY", ""),
		S3SecretKey: env("S3_SECRET_KEY", ""),
		S3Bucket:    env("S3_BUCKET", "travel-datasets"),
		S3Prefix:    env("S3_PREFIX", ""),
		S3UseSSL:    env("S3_USE_SSL", "false") == "true",
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/travel?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),

		RedisAddr:  env("REDIS_ADDR", "localhost:6379"),
		RedisPass:  env("REDIS_PASSWORD", ""),
		RedisDB:    atoi("REDIS_DB", 0),
		CacheTTL:   time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		SessionTTL: time.Duration(atoi("SESSION_TTL_SECONDS", 7200)) * time.Second,

		Origin:      env("ORIGIN_AIRPORT", "NRT"),
		MinDays:     atoi("MIN_DAYS", 3),
		MaxDays:     atoi("MAX_DAYS", 21),
		DefaultDays: atoi("DEFAULT_DAYS", 7),

		RateLimitRPS:   atoi("RATE_LIMIT_RPS", 20),
		RateLimitBurst: atoi("RATE_LIMIT_BURST", 40),
		TrustProxy:     env("TRUST_PROXY", "false") == "true",
		SeedWorkers:    atoi("SEED_WORKERS", 4),
		SeedTarget:     strings.ToLower(env("SEED_TARGET", "mysql")),
	}
	if c.MinDays > c.MaxDays {
		log.Warn().Int("min", c.MinDays).Int("max", c.MaxDays).Msg("MIN_DAYS > MAX_DAYS, swapping")
		c.MinDays, c.MaxDays = c.MaxDays, c.MinDays
	}
	if c.DefaultDays < c.MinDays || c.DefaultDays > c.MaxDays {
		c.DefaultDays = c.MinDays
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
