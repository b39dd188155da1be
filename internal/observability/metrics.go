// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Ingestion metrics
	TransactionsFetched   prometheus.Counter
	TransactionsRejected  prometheus.Counter
	SignaturePagesFetched prometheus.Counter
	CacheHits             prometheus.Counter
	CacheMisses           prometheus.Counter

	// Classification metrics
	SwapsClassified            *prometheus.CounterVec
	UnclassifiableTransactions prometheus.Counter

	// Ledger metrics
	LedgerRuns        prometheus.Counter
	ClosedTradesTotal prometheus.Counter
	OversellsDetected prometheus.Counter
	ZeroCostSells     prometheus.Counter

	// Latency metrics
	RPCCallLatency   *prometheus.HistogramVec
	AnalysisDuration prometheus.Histogram

	// Database metrics
	DBQueryErrors *prometheus.CounterVec

	// Health metrics
	LastSuccessfulAnalysis prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "wallet_pnl"
	}

	return &Metrics{
		// Ingestion metrics
		TransactionsFetched: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "transactions_fetched_total",
			Help:      "Total number of wallet transactions fetched",
		}),
		TransactionsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "transactions_rejected_total",
			Help:      "Total number of transactions rejected at the acquisition boundary",
		}),
		SignaturePagesFetched: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "signature_pages_fetched_total",
			Help:      "Total number of signature pages fetched from RPC",
		}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total number of transaction cache hits",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total number of transaction cache misses",
		}),

		// Classification metrics
		SwapsClassified: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "classification",
			Name:      "swaps_total",
			Help:      "Total number of classified swaps by direction",
		}, []string{"direction"}),
		UnclassifiableTransactions: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "classification",
			Name:      "unclassifiable_total",
			Help:      "Total number of transactions excluded by the classifier",
		}),

		// Ledger metrics
		LedgerRuns: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "runs_total",
			Help:      "Total number of ledger runs",
		}),
		ClosedTradesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "closed_trades_total",
			Help:      "Total number of closed trades emitted",
		}),
		OversellsDetected: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "oversells_total",
			Help:      "Total number of sells exceeding recorded holdings",
		}),
		ZeroCostSells: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "zero_cost_sells_total",
			Help:      "Total number of sells with no recorded purchase",
		}),

		// Latency metrics
		RPCCallLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "call_duration_seconds",
			Help:      "Solana RPC call latency by method",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		AnalysisDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "duration_seconds",
			Help:      "Full wallet analysis duration",
			Buckets:   prometheus.DefBuckets,
		}),

		// Database metrics
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"store"}),

		// Health metrics
		LastSuccessfulAnalysis: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_analysis_timestamp",
			Help:      "Unix timestamp of last successful analysis",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordSwapClassified increments the classified swap counter.
func RecordSwapClassified(direction string) {
	DefaultMetrics.SwapsClassified.WithLabelValues(direction).Inc()
}

// RecordUnclassifiable increments the excluded transaction counter.
func RecordUnclassifiable() {
	DefaultMetrics.UnclassifiableTransactions.Inc()
}

// RecordRPCLatency records RPC call latency.
func RecordRPCLatency(method string, seconds float64) {
	DefaultMetrics.RPCCallLatency.WithLabelValues(method).Observe(seconds)
}

// RecordDBError records a database query error for a store.
func RecordDBError(store string) {
	DefaultMetrics.DBQueryErrors.WithLabelValues(store).Inc()
}
