package domain

// AnalysisResult bundles the output of one full wallet analysis:
// classified swaps, realized trades, open holdings and the quality
// assessment over all of it.
type AnalysisResult struct {
	Wallet       string // analyzed wallet address
	Transactions int    // raw transactions examined
	Swaps        []Swap
	ClosedTrades []ClosedTrade
	OpenHoldings []Holding
	Summary      LedgerSummary
	Quality      QualityReport
	GeneratedAt  int64 // Unix timestamp in seconds
}
