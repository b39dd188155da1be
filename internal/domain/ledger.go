package domain

// Lot is an open purchase record inside a Holding. Lots are created on
// buy swaps and consumed oldest-first by sell swaps.
type Lot struct {
	Quantity    float64 // remaining token quantity, > 0
	CostPerUnit float64 // SOL per token at acquisition
	Timestamp   int64   // acquisition time, Unix seconds
	Signature   string  // originating transaction signature
}

// Holding is the per-asset aggregate of open purchase lots, oldest first.
type Holding struct {
	Asset              string // token mint address
	Lots               []Lot  // FIFO order, oldest first
	TotalQuantity      float64
	AverageCostPerUnit float64 // weighted by lot quantity
}

// ClosedTrade is the realized outcome of a sell event or a portion of one.
// Corresponds to the closed_trades table in PostgreSQL.
type ClosedTrade struct {
	Asset              string   // token mint address
	Quantity           float64  // quantity sold, > 0
	CostBasis          float64  // SOL cost of consumed lots
	Proceeds           float64  // SOL received
	RealizedPnL        float64  // Proceeds - CostBasis
	PnLPercent         *float64 // RealizedPnL / CostBasis * 100, nil when cost basis is zero
	BuyTimestamp       int64    // oldest consumed lot's timestamp, 0 when no lot existed
	SellTimestamp      int64    // sell transaction timestamp
	HoldingDurationSec int64    // SellTimestamp - BuyTimestamp, 0 when no lot existed
	Signature          string   // sell transaction signature
	ZeroCostBasis      bool     // true for missing-buy and oversell portions
}

// LedgerSummary aggregates counters over one ledger run.
type LedgerSummary struct {
	TotalSwaps      int     // swaps handed to the engine
	BuyCount        int     // processed buys
	SellCount       int     // processed sells (split sells count once)
	OversellCount   int     // sells exceeding available quantity
	ZeroProfitCount int     // sells with no prior holding
	TotalBuySOL     float64 // aggregate buy cost in SOL
	TotalSellSOL    float64 // aggregate sell proceeds in SOL
	NetSOL          float64 // TotalSellSOL - TotalBuySOL

	// Diagnostics collects invariant-repair warnings from the post-run
	// self-check. Never treated as an error by callers.
	Diagnostics []string
}

// LedgerResult is the full output of one ledger run.
type LedgerResult struct {
	ClosedTrades []ClosedTrade
	OpenHoldings []Holding
	Summary      LedgerSummary
}
