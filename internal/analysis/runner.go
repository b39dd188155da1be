// Package analysis orchestrates one full wallet analysis: transfer
// normalization, swap classification, the FIFO ledger run and the quality
// assessment over the combined output.
package analysis

import (
	"errors"
	"time"

	"solana-wallet-pnl/internal/classification"
	"solana-wallet-pnl/internal/domain"
	"solana-wallet-pnl/internal/ledger"
	"solana-wallet-pnl/internal/normalization"
	"solana-wallet-pnl/internal/observability"
	"solana-wallet-pnl/internal/quality"
)

// ErrEmptyWallet is returned when the runner is constructed without a
// wallet address. This is a programmer error, not a data problem.
var ErrEmptyWallet = errors.New("analysis: wallet address is empty")

// Runner performs wallet analyses. Each Run uses its own ledger engine
// instance, so independent wallets may be analyzed from separate Runner
// instances in parallel.
type Runner struct {
	wallet     string
	classifier *classification.Classifier
	ledgerCfg  ledger.Config
	assessor   *quality.Assessor
	metrics    *observability.Metrics
	now        func() time.Time
}

// NewRunner creates a Runner for one wallet with default thresholds.
func NewRunner(wallet string) *Runner {
	return &Runner{
		wallet:     wallet,
		classifier: classification.New(classification.Config{}),
		assessor:   quality.New(quality.Config{}),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// WithClassifier overrides the default classifier.
func (r *Runner) WithClassifier(c *classification.Classifier) *Runner {
	r.classifier = c
	return r
}

// WithLedgerConfig overrides the default ledger tolerances.
func (r *Runner) WithLedgerConfig(cfg ledger.Config) *Runner {
	r.ledgerCfg = cfg
	return r
}

// WithAssessor overrides the default quality assessor.
func (r *Runner) WithAssessor(a *quality.Assessor) *Runner {
	r.assessor = a
	return r
}

// WithMetrics enables Prometheus instrumentation.
func (r *Runner) WithMetrics(m *observability.Metrics) *Runner {
	r.metrics = m
	return r
}

// WithClock sets a custom clock function for deterministic output.
func (r *Runner) WithClock(now func() time.Time) *Runner {
	r.now = now
	return r
}

// Run analyzes one batch of raw transactions. Unclassifiable transactions
// are excluded silently and surface only through the quality report's
// detection rate; Run fails only on programmer errors.
func (r *Runner) Run(transactions []*domain.RawTransaction) (*domain.AnalysisResult, error) {
	if r.wallet == "" {
		return nil, ErrEmptyWallet
	}
	started := r.now()

	var swaps []domain.Swap
	for _, tx := range transactions {
		if tx == nil {
			continue
		}
		deltas := normalization.Compute(tx, r.wallet)
		swap := r.classifier.Classify(tx, deltas)
		if swap == nil {
			if r.metrics != nil {
				r.metrics.UnclassifiableTransactions.Inc()
			}
			continue
		}
		if r.metrics != nil {
			r.metrics.SwapsClassified.WithLabelValues(swap.Direction).Inc()
		}
		swaps = append(swaps, *swap)
	}

	result := ledger.New(r.ledgerCfg).Process(swaps)
	report := r.assessor.Assess(len(transactions), len(swaps), result)

	if r.metrics != nil {
		r.metrics.LedgerRuns.Inc()
		r.metrics.ClosedTradesTotal.Add(float64(len(result.ClosedTrades)))
		r.metrics.OversellsDetected.Add(float64(result.Summary.OversellCount))
		r.metrics.ZeroCostSells.Add(float64(result.Summary.ZeroProfitCount))
		r.metrics.AnalysisDuration.Observe(r.now().Sub(started).Seconds())
		r.metrics.LastSuccessfulAnalysis.Set(float64(r.now().Unix()))
	}

	return &domain.AnalysisResult{
		Wallet:       r.wallet,
		Transactions: len(transactions),
		Swaps:        swaps,
		ClosedTrades: result.ClosedTrades,
		OpenHoldings: result.OpenHoldings,
		Summary:      result.Summary,
		Quality:      report,
		GeneratedAt:  started.Unix(),
	}, nil
}
