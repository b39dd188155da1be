package reporting

import "time"

// Report is the presentation form of one wallet analysis run.
type Report struct {
	// Metadata
	GeneratedAt time.Time
	Wallet      string

	// Activity Summary
	Activity ActivitySummary

	// Data Quality
	Quality QualitySection

	// Realized trades (sorted by sell_timestamp, asset)
	ClosedTrades []ClosedTradeRow

	// Per-asset realized PnL (sorted by realized_pnl DESC, asset)
	AssetBreakdown []AssetBreakdownRow

	// Open positions (sorted by asset)
	OpenHoldings []HoldingRow
}

// ActivitySummary describes the analyzed activity.
type ActivitySummary struct {
	Transactions   int // raw transactions examined
	Swaps          int // classified swaps
	BuyCount       int
	SellCount      int
	OversellCount  int
	TotalBuySOL    float64
	TotalSellSOL   float64
	NetSOL         float64
	DateRangeStart int64 // Unix seconds, 0 when no swaps
	DateRangeEnd   int64 // Unix seconds, 0 when no swaps
}

// QualitySection carries the quality assessment into the report.
type QualitySection struct {
	Score               float64
	ClassificationScore float64
	LedgerScore         float64
	CompletenessScore   float64
	Confidence          string
	Issues              []QualityIssueRow
	Diagnostics         []string
}

// QualityIssueRow represents one flagged quality condition.
type QualityIssueRow struct {
	Code     string
	Severity string
	Message  string
}

// ClosedTradeRow represents one row in the realized trades table.
type ClosedTradeRow struct {
	Asset              string
	Quantity           float64
	CostBasis          float64
	Proceeds           float64
	RealizedPnL        float64
	PnLPercent         *float64 // nil when cost basis is zero
	BuyTimestamp       int64
	SellTimestamp      int64
	HoldingDurationSec int64
	Signature          string
	ZeroCostBasis      bool
}

// AssetBreakdownRow aggregates realized results for one asset.
type AssetBreakdownRow struct {
	Asset         string
	TradeCount    int
	WinCount      int
	TotalCost     float64
	TotalProceeds float64
	RealizedPnL   float64
}

// HoldingRow represents one open position.
type HoldingRow struct {
	Asset              string
	LotCount           int
	TotalQuantity      float64
	AverageCostPerUnit float64
}
