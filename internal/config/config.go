// Package config defines the application configuration and validation
// helpers. Fields are populated from a TOML file and then optionally
// overridden by PNL_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration structure.
type Config struct {
	Solana     SolanaConfig     `toml:"solana"`
	Redis      RedisConfig      `toml:"redis"`
	Postgres   PostgresConfig   `toml:"postgres"`
	ClickHouse ClickHouseConfig `toml:"clickhouse"`
	Ingestion  IngestionConfig  `toml:"ingestion"`
	Classifier ClassifierConfig `toml:"classifier"`
	Ledger     LedgerConfig     `toml:"ledger"`
	Quality    QualityConfig    `toml:"quality"`
	Metrics    MetricsConfig    `toml:"metrics"`
}

// SolanaConfig holds RPC and WebSocket endpoints.
type SolanaConfig struct {
	RPCEndpoint string   `toml:"rpc_endpoint"`
	WSEndpoint  string   `toml:"ws_endpoint"`
	Timeout     duration `toml:"timeout"`
	MaxRetries  int      `toml:"max_retries"`
}

// RedisConfig holds transaction cache parameters.
type RedisConfig struct {
	Enabled  bool     `toml:"enabled"`
	Addr     string   `toml:"addr"`
	Password string   `toml:"password"`
	DB       int      `toml:"db"`
	TTL      duration `toml:"ttl"`
}

// PostgresConfig holds PostgreSQL connection parameters.
type PostgresConfig struct {
	Enabled       bool   `toml:"enabled"`
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	Database      string `toml:"database"`
	User          string `toml:"user"`
	Password      string `toml:"password"`
	SSLMode       string `toml:"ssl_mode"`
	PoolMaxConns  int    `toml:"pool_max_conns"`
	RunMigrations bool   `toml:"run_migrations"`
}

// DSN builds a PostgreSQL connection string.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

// ClickHouseConfig holds ClickHouse connection parameters for the
// analytics store.
type ClickHouseConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

// IngestionConfig bounds history acquisition.
type IngestionConfig struct {
	PageLimit       int `toml:"page_limit"`
	MaxTransactions int `toml:"max_transactions"`
}

// ClassifierConfig holds swap classification thresholds.
type ClassifierConfig struct {
	MinTradedAmount float64 `toml:"min_traded_amount"`
	MinBaseAmount   float64 `toml:"min_base_amount"`
}

// LedgerConfig holds cost-basis engine tolerances.
type LedgerConfig struct {
	QuantityEpsilon   float64 `toml:"quantity_epsilon"`
	CostEpsilon       float64 `toml:"cost_epsilon"`
	OversellTolerance float64 `toml:"oversell_tolerance"`
}

// QualityConfig holds result quality thresholds.
type QualityConfig struct {
	MinDetectionRate  float64 `toml:"min_detection_rate"`
	OutlierPnLPercent float64 `toml:"outlier_pnl_percent"`
	OutlierPnLSOL     float64 `toml:"outlier_pnl_sol"`
}

// MetricsConfig holds the Prometheus endpoint parameters.
type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
	Port    int  `toml:"port"`
}

// duration wraps time.Duration to support TOML string decoding ("30s").
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns a Config populated with reasonable default values.
func Defaults() Config {
	return Config{
		Solana: SolanaConfig{
			RPCEndpoint: "https://api.mainnet-beta.solana.com",
			WSEndpoint:  "wss://api.mainnet-beta.solana.com",
			Timeout:     duration{30 * time.Second},
			MaxRetries:  3,
		},
		Redis: RedisConfig{
			Enabled: false,
			Addr:    "localhost:6379",
			TTL:     duration{24 * time.Hour},
		},
		Postgres: PostgresConfig{
			Enabled:       false,
			Host:          "localhost",
			Port:          5432,
			Database:      "wallet_pnl",
			User:          "postgres",
			SSLMode:       "disable",
			PoolMaxConns:  10,
			RunMigrations: true,
		},
		ClickHouse: ClickHouseConfig{
			Enabled:  false,
			Addr:     "localhost:9000",
			Database: "wallet_pnl",
			User:     "default",
		},
		Ingestion: IngestionConfig{
			PageLimit:       1000,
			MaxTransactions: 0,
		},
		Classifier: ClassifierConfig{
			MinTradedAmount: 1e-6,
			MinBaseAmount:   1e-5,
		},
		Ledger: LedgerConfig{
			QuantityEpsilon:   1e-6,
			CostEpsilon:       1e-8,
			OversellTolerance: 0.005,
		},
		Quality: QualityConfig{
			MinDetectionRate:  0.10,
			OutlierPnLPercent: 10000,
			OutlierPnLSOL:     1000,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
		},
	}
}

// Validate checks Config for invalid values and returns a combined error
// describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if c.Solana.RPCEndpoint == "" {
		errs = append(errs, "solana: rpc_endpoint must not be empty")
	}
	if c.Solana.MaxRetries < 0 {
		errs = append(errs, "solana: max_retries must be >= 0")
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		errs = append(errs, "redis: addr must not be empty when enabled")
	}

	if c.Postgres.Enabled {
		if c.Postgres.Host == "" {
			errs = append(errs, "postgres: host must not be empty when enabled")
		}
		if c.Postgres.Port <= 0 || c.Postgres.Port > 65535 {
			errs = append(errs, fmt.Sprintf("postgres: port must be 1-65535, got %d", c.Postgres.Port))
		}
		if c.Postgres.Database == "" {
			errs = append(errs, "postgres: database must not be empty when enabled")
		}
		if c.Postgres.PoolMaxConns < 1 {
			errs = append(errs, "postgres: pool_max_conns must be >= 1")
		}
	}

	if c.ClickHouse.Enabled {
		if c.ClickHouse.Addr == "" {
			errs = append(errs, "clickhouse: addr must not be empty when enabled")
		}
		if c.ClickHouse.Database == "" {
			errs = append(errs, "clickhouse: database must not be empty when enabled")
		}
	}

	if c.Ingestion.PageLimit < 1 || c.Ingestion.PageLimit > 1000 {
		errs = append(errs, fmt.Sprintf("ingestion: page_limit must be 1-1000, got %d", c.Ingestion.PageLimit))
	}
	if c.Ingestion.MaxTransactions < 0 {
		errs = append(errs, "ingestion: max_transactions must be >= 0")
	}

	if c.Classifier.MinTradedAmount < 0 {
		errs = append(errs, "classifier: min_traded_amount must be >= 0")
	}
	if c.Classifier.MinBaseAmount < 0 {
		errs = append(errs, "classifier: min_base_amount must be >= 0")
	}

	if c.Ledger.QuantityEpsilon <= 0 {
		errs = append(errs, "ledger: quantity_epsilon must be > 0")
	}
	if c.Ledger.CostEpsilon <= 0 {
		errs = append(errs, "ledger: cost_epsilon must be > 0")
	}
	if c.Ledger.OversellTolerance < 0 {
		errs = append(errs, "ledger: oversell_tolerance must be >= 0")
	}

	if c.Quality.MinDetectionRate < 0 || c.Quality.MinDetectionRate > 1 {
		errs = append(errs, "quality: min_detection_rate must be in [0, 1]")
	}

	if c.Metrics.Enabled {
		if c.Metrics.Port <= 0 || c.Metrics.Port > 65535 {
			errs = append(errs, fmt.Sprintf("metrics: port must be 1-65535, got %d", c.Metrics.Port))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
