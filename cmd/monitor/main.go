package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"solana-wallet-pnl/internal/analysis"
	"solana-wallet-pnl/internal/classification"
	"solana-wallet-pnl/internal/config"
	"solana-wallet-pnl/internal/domain"
	"solana-wallet-pnl/internal/ingestion"
	"solana-wallet-pnl/internal/ledger"
	"solana-wallet-pnl/internal/observability"
	"solana-wallet-pnl/internal/quality"
	"solana-wallet-pnl/internal/solana"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to TOML config file (optional)")
	wallet := flag.String("wallet", "", "Wallet address to monitor")
	rpcEndpoint := flag.String("rpc-endpoint", "", "Solana RPC HTTP endpoint (overrides config)")
	wsEndpoint := flag.String("ws-endpoint", "", "Solana WebSocket endpoint (overrides config)")
	metricsPort := flag.Int("metrics-port", 0, "Prometheus metrics port (overrides config, implies enabled)")
	skipHistory := flag.Bool("skip-history", false, "Start from live activity only, without backfilling history")
	flag.Parse()

	logger := log.New(os.Stdout, "[monitor] ", log.LstdFlags)

	if *wallet == "" {
		fmt.Fprintln(os.Stderr, "Error: --wallet is required")
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
	if *wsEndpoint != "" {
		cfg.Solana.WSEndpoint = *wsEndpoint
	}
	if *metricsPort > 0 {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Port = *metricsPort
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid config: %v", err)
	}
	if cfg.Solana.WSEndpoint == "" {
		logger.Fatal("solana.ws_endpoint is required for monitoring")
	}

	if err := solana.ValidateWalletAddress(*wallet); err != nil {
		logger.Fatalf("Invalid wallet address: %v", err)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		cancel()
	}()

	// Start metrics server if enabled
	metrics := observability.DefaultMetrics
	if cfg.Metrics.Enabled {
		addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ok"))
			})
			logger.Printf("Starting metrics server on %s", addr)
			if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
				logger.Printf("Metrics server error: %v", err)
			}
		}()
	}

	if err := run(ctx, logger, cfg, metrics, *wallet, *skipHistory); err != nil && err != context.Canceled {
		logger.Fatalf("Error: %v", err)
	}

	logger.Println("Shutdown complete")
}

func run(ctx context.Context, logger *log.Logger, cfg *config.Config, metrics *observability.Metrics, wallet string, skipHistory bool) error {
	rpc := solana.NewHTTPClient(cfg.Solana.RPCEndpoint,
		solana.WithTimeout(cfg.Solana.Timeout.Duration),
		solana.WithMaxRetries(cfg.Solana.MaxRetries),
	)

	ws, err := solana.NewWSClient(ctx, cfg.Solana.WSEndpoint, nil)
	if err != nil {
		return fmt.Errorf("create websocket client: %w", err)
	}
	defer ws.Close()

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
		})).
		WithMetrics(metrics)

	// Backfill history so live trades land on correct cost basis.
	var transactions []*domain.RawTransaction
	if !skipHistory {
		source := ingestion.NewWalletHistorySource(rpc).
			WithPageLimit(cfg.Ingestion.PageLimit).
			WithMaxTransactions(cfg.Ingestion.MaxTransactions).
			WithMetrics(metrics)

		logger.Printf("Backfilling transaction history for %s", wallet)
		transactions, err = source.FetchHistory(ctx, wallet)
		if err != nil {
			return fmt.Errorf("fetch history: %w", err)
		}
		logger.Printf("Backfilled %d transactions", len(transactions))

		result, err := runner.Run(transactions)
		if err != nil {
			return fmt.Errorf("run analysis: %w", err)
		}
		logResult(logger, result)
	}

	// Subscribe to live activity and re-analyze on every new transaction.
	watcher := ingestion.NewWalletWatcher(ws, rpc).WithMetrics(metrics)
	txCh, err := watcher.Subscribe(ctx, wallet)
	if err != nil {
		return fmt.Errorf("subscribe to wallet logs: %w", err)
	}

	logger.Printf("Watching %s for live activity", wallet)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case tx, ok := <-txCh:
			if !ok {
				return fmt.Errorf("live subscription closed")
			}
			logger.Printf("%s", formatNewTransaction(tx))

			transactions = append(transactions, tx)
			result, err := runner.Run(transactions)
			if err != nil {
				return fmt.Errorf("run analysis: %w", err)
			}
			logResult(logger, result)
		}
	}
}

// formatNewTransaction renders the arrival line for a live transaction.
func formatNewTransaction(tx *domain.RawTransaction) string {
	return fmt.Sprintf("New transaction %s at %s",
		tx.Signature, time.Unix(tx.BlockTime, 0).UTC().Format(time.RFC3339))
}

// logResult prints a one-line PnL summary after each analysis.
func logResult(logger *log.Logger, result *domain.AnalysisResult) {
	logger.Printf("Swaps: %d | Closed trades: %d | Net PnL: %.6f SOL | Quality: %.1f (%s)",
		len(result.Swaps), len(result.ClosedTrades),
		result.Summary.NetSOL, result.Quality.Score, result.Quality.Confidence)
}
