package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"solana-wallet-pnl/internal/analysis"
	"solana-wallet-pnl/internal/cache"
	"solana-wallet-pnl/internal/classification"
	"solana-wallet-pnl/internal/config"
	"solana-wallet-pnl/internal/domain"
	"solana-wallet-pnl/internal/ingestion"
	"solana-wallet-pnl/internal/ledger"
	"solana-wallet-pnl/internal/observability"
	"solana-wallet-pnl/internal/quality"
	"solana-wallet-pnl/internal/reporting"
	"solana-wallet-pnl/internal/solana"
	"solana-wallet-pnl/internal/storage/clickhouse"
	"solana-wallet-pnl/internal/storage/migrations"
	pgstore "solana-wallet-pnl/internal/storage/postgres"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to TOML config file (optional)")
	wallet := flag.String("wallet", "", "Wallet address to analyze")
	outputDir := flag.String("output-dir", "reports", "Output directory for generated files")
	rpcEndpoint := flag.String("rpc-endpoint", "", "Solana RPC HTTP endpoint (overrides config)")
	limit := flag.Int("limit", 0, "Maximum transactions to analyze, newest first (overrides config)")
	useFixtures := flag.Bool("use-fixtures", false, "Use built-in demo transactions instead of RPC")
	flag.Parse()

	logger := log.New(os.Stdout, "[analyze] ", log.LstdFlags)

	if *wallet == "" && !*useFixtures {
		fmt.Fprintln(os.Stderr, "Error: --wallet is required (or use --use-fixtures)")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("Load config: %v", err)
	}
	if *rpcEndpoint != "" {
		cfg.Solana.RPCEndpoint = *rpcEndpoint
	}
	if *limit > 0 {
		cfg.Ingestion.MaxTransactions = *limit
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid config: %v", err)
	}

	if *useFixtures {
		if *wallet == "" {
			*wallet = fixtureWallet
		}
	} else if err := solana.ValidateWalletAddress(*wallet); err != nil {
		logger.Fatalf("Invalid wallet address: %v", err)
	}

	ctx := context.Background()

	if err := run(ctx, logger, cfg, *wallet, *outputDir, *useFixtures); err != nil {
		logger.Fatalf("Error: %v", err)
	}
}

func run(ctx context.Context, logger *log.Logger, cfg *config.Config, wallet, outputDir string, useFixtures bool) error {
	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.DefaultMetrics
	}

	var transactions []*domain.RawTransaction
	if useFixtures {
		transactions = fixtureTransactions()
		logger.Printf("Using %d fixture transactions", len(transactions))
	} else {
		var err error
		transactions, err = fetchHistory(ctx, logger, cfg, metrics, wallet)
		if err != nil {
			return err
		}
	}

	// Run analysis
	runner := analysis.NewRunner(wallet).
		WithClassifier(classification.New(classification.Config{
			MinTradedAmount: cfg.Classifier.MinTradedAmount,
			MinBaseAmount:   cfg.Classifier.MinBaseAmount,
		})).
		WithLedgerConfig(ledger.Config{
			QuantityEpsilon:   cfg.Ledger.QuantityEpsilon,
			CostEpsilon:       cfg.Ledger.CostEpsilon,
			OversellTolerance: cfg.Ledger.OversellTolerance,
		}).
		WithAssessor(quality.New(quality.Config{
			MinDetectionRate:  cfg.Quality.MinDetectionRate,
			OutlierPnLPercent: cfg.Quality.OutlierPnLPercent,
			OutlierPnLSOL:     cfg.Quality.OutlierPnLSOL,
		}))
	if metrics != nil {
		runner = runner.WithMetrics(metrics)
	}

	result, err := runner.Run(transactions)
	if err != nil {
		return fmt.Errorf("run analysis: %w", err)
	}
	logger.Printf("Classified %d swaps, %d closed trades, %d open holdings",
		len(result.Swaps), len(result.ClosedTrades), len(result.OpenHoldings))
	logger.Printf("Quality: %.1f/100 (%s)", result.Quality.Score, result.Quality.Confidence)

	// Persist
	if cfg.Postgres.Enabled {
		if err := persistPostgres(ctx, cfg, result); err != nil {
			return err
		}
		logger.Println("Results stored in PostgreSQL")
	}
	if cfg.ClickHouse.Enabled {
		if err := persistClickhouse(ctx, cfg, result); err != nil {
			return err
		}
		logger.Println("Results stored in ClickHouse")
	}

	// Render report files
	report := reporting.NewGenerator().Generate(result)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	files := []struct {
		name    string
		content string
	}{
		{fmt.Sprintf("REPORT_%s.md", wallet), reporting.RenderMarkdown(report)},
		{fmt.Sprintf("CLOSED_TRADES_%s.csv", wallet), reporting.RenderCSV(report.ClosedTrades)},
		{fmt.Sprintf("HOLDINGS_%s.csv", wallet), reporting.RenderHoldingsCSV(report.OpenHoldings)},
	}
	for _, f := range files {
		path := filepath.Join(outputDir, f.name)
		if err := os.WriteFile(path, []byte(f.content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Printf("Wrote %s", path)
	}

	return nil
}

// fetchHistory builds the RPC history source, optionally cache-backed,
// and fetches the wallet's transactions.
func fetchHistory(ctx context.Context, logger *log.Logger, cfg *config.Config, metrics *observability.Metrics, wallet string) ([]*domain.RawTransaction, error) {
	rpc := solana.NewHTTPClient(cfg.Solana.RPCEndpoint,
		solana.WithTimeout(cfg.Solana.Timeout.Duration),
		solana.WithMaxRetries(cfg.Solana.MaxRetries),
	)

	source := ingestion.NewWalletHistorySource(rpc).
		WithPageLimit(cfg.Ingestion.PageLimit).
		WithMaxTransactions(cfg.Ingestion.MaxTransactions)
	if metrics != nil {
		source = source.WithMetrics(metrics)
	}

	if cfg.Redis.Enabled {
		rdb, err := cache.NewClient(ctx, cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL.Duration,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		defer rdb.Close()
		source = source.WithCache(cache.NewTxCache(rdb, cfg.Redis.TTL.Duration))
		logger.Printf("Transaction cache enabled at %s", cfg.Redis.Addr)
	}

	logger.Printf("Fetching transaction history for %s", wallet)
	transactions, err := source.FetchHistory(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	logger.Printf("Fetched %d transactions", len(transactions))
	return transactions, nil
}

// persistPostgres replaces the wallet's rows with this run's results.
func persistPostgres(ctx context.Context, cfg *config.Config, result *domain.AnalysisResult) error {
	pool, err := pgstore.NewPool(ctx, cfg.Postgres.DSN(), int32(cfg.Postgres.PoolMaxConns))
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	if cfg.Postgres.RunMigrations {
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			return fmt.Errorf("run postgres migrations: %w", err)
		}
	}

	swapStore := pgstore.NewSwapStore(pool)
	tradeStore := pgstore.NewClosedTradeStore(pool)
	reportStore := pgstore.NewQualityReportStore(pool)

	if err := swapStore.DeleteByWallet(ctx, result.Wallet); err != nil {
		return fmt.Errorf("delete swaps: %w", err)
	}
	swaps := make([]*domain.Swap, len(result.Swaps))
	for i := range result.Swaps {
		swaps[i] = &result.Swaps[i]
	}
	if err := swapStore.InsertBulk(ctx, result.Wallet, swaps); err != nil {
		return fmt.Errorf("insert swaps: %w", err)
	}

	if err := tradeStore.DeleteByWallet(ctx, result.Wallet); err != nil {
		return fmt.Errorf("delete closed trades: %w", err)
	}
	trades := make([]*domain.ClosedTrade, len(result.ClosedTrades))
	for i := range result.ClosedTrades {
		trades[i] = &result.ClosedTrades[i]
	}
	if err := tradeStore.InsertBulk(ctx, result.Wallet, trades); err != nil {
		return fmt.Errorf("insert closed trades: %w", err)
	}

	if err := reportStore.Insert(ctx, result.Wallet, result.GeneratedAt, &result.Quality); err != nil {
		return fmt.Errorf("insert quality report: %w", err)
	}

	return nil
}

// persistClickhouse appends this run's realized trades to the analytics
// store.
func persistClickhouse(ctx context.Context, cfg *config.Config, result *domain.AnalysisResult) error {
	dsn := fmt.Sprintf("clickhouse://%s:%s@%s/%s",
		cfg.ClickHouse.User, cfg.ClickHouse.Password, cfg.ClickHouse.Addr, cfg.ClickHouse.Database)

	conn, err := clickhouse.NewConn(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect to clickhouse: %w", err)
	}
	defer conn.Close()

	if err := migrations.RunClickhouseMigrations(ctx, conn); err != nil {
		return fmt.Errorf("run clickhouse migrations: %w", err)
	}

	trades := make([]*domain.ClosedTrade, len(result.ClosedTrades))
	for i := range result.ClosedTrades {
		trades[i] = &result.ClosedTrades[i]
	}
	return clickhouse.NewClosedTradeStore(conn).InsertBulk(ctx, result.Wallet, trades)
}
