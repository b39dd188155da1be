package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies PNL_* environment variable overrides, and
// returns the final Config. An empty path skips the file and uses
// defaults plus environment overrides only. The returned Config has NOT
// been validated; the caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known PNL_* environment variables and
// overwrites the corresponding Config fields when a variable is set.
// This lets operators inject endpoints and credentials at deploy time
// without touching the TOML file.
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Solana.RPCEndpoint, "PNL_SOLANA_RPC_ENDPOINT")
	setStr(&cfg.Solana.WSEndpoint, "PNL_SOLANA_WS_ENDPOINT")
	setDuration(&cfg.Solana.Timeout, "PNL_SOLANA_TIMEOUT")
	setInt(&cfg.Solana.MaxRetries, "PNL_SOLANA_MAX_RETRIES")

	setBool(&cfg.Redis.Enabled, "PNL_REDIS_ENABLED")
	setStr(&cfg.Redis.Addr, "PNL_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "PNL_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "PNL_REDIS_DB")
	setDuration(&cfg.Redis.TTL, "PNL_REDIS_TTL")

	setBool(&cfg.Postgres.Enabled, "PNL_POSTGRES_ENABLED")
	setStr(&cfg.Postgres.Host, "PNL_POSTGRES_HOST")
	setInt(&cfg.Postgres.Port, "PNL_POSTGRES_PORT")
	setStr(&cfg.Postgres.Database, "PNL_POSTGRES_DATABASE")
	setStr(&cfg.Postgres.User, "PNL_POSTGRES_USER")
	setStr(&cfg.Postgres.Password, "PNL_POSTGRES_PASSWORD")
	setStr(&cfg.Postgres.SSLMode, "PNL_POSTGRES_SSL_MODE")
	setInt(&cfg.Postgres.PoolMaxConns, "PNL_POSTGRES_POOL_MAX_CONNS")
	setBool(&cfg.Postgres.RunMigrations, "PNL_POSTGRES_RUN_MIGRATIONS")

	setBool(&cfg.ClickHouse.Enabled, "PNL_CLICKHOUSE_ENABLED")
	setStr(&cfg.ClickHouse.Addr, "PNL_CLICKHOUSE_ADDR")
	setStr(&cfg.ClickHouse.Database, "PNL_CLICKHOUSE_DATABASE")
	setStr(&cfg.ClickHouse.User, "PNL_CLICKHOUSE_USER")
	setStr(&cfg.ClickHouse.Password, "PNL_CLICKHOUSE_PASSWORD")

	setInt(&cfg.Ingestion.PageLimit, "PNL_INGESTION_PAGE_LIMIT")
	setInt(&cfg.Ingestion.MaxTransactions, "PNL_INGESTION_MAX_TRANSACTIONS")

	setFloat64(&cfg.Classifier.MinTradedAmount, "PNL_CLASSIFIER_MIN_TRADED_AMOUNT")
	setFloat64(&cfg.Classifier.MinBaseAmount, "PNL_CLASSIFIER_MIN_BASE_AMOUNT")

	setFloat64(&cfg.Ledger.QuantityEpsilon, "PNL_LEDGER_QUANTITY_EPSILON")
	setFloat64(&cfg.Ledger.CostEpsilon, "PNL_LEDGER_COST_EPSILON")
	setFloat64(&cfg.Ledger.OversellTolerance, "PNL_LEDGER_OVERSELL_TOLERANCE")

	setFloat64(&cfg.Quality.MinDetectionRate, "PNL_QUALITY_MIN_DETECTION_RATE")
	setFloat64(&cfg.Quality.OutlierPnLPercent, "PNL_QUALITY_OUTLIER_PNL_PERCENT")
	setFloat64(&cfg.Quality.OutlierPnLSOL, "PNL_QUALITY_OUTLIER_PNL_SOL")

	setBool(&cfg.Metrics.Enabled, "PNL_METRICS_ENABLED")
	setInt(&cfg.Metrics.Port, "PNL_METRICS_PORT")
}

// Typed env-var helpers. Each only mutates the target when the
// environment variable is present and non-empty.

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}
