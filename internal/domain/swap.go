package domain

// BaseAssetID is the canonical asset id for SOL. Wrapped SOL is folded
// into this id during normalization.
const BaseAssetID = "SOL"

// WrappedSOLMint is the SPL mint address of wrapped SOL.
const WrappedSOLMint = "So11111111111111111111111111111111111111112"

// Swap represents a classified trade derived from one transaction.
// Corresponds to the swaps table in PostgreSQL.
type Swap struct {
	Signature    string  // Solana transaction signature
	Timestamp    int64   // Unix timestamp in seconds
	Fee          float64 // transaction fee in SOL
	BaseAsset    string  // quote asset id, always BaseAssetID
	TradedAsset  string  // mint address of the traded token
	TradedAmount float64 // traded token quantity, > 0
	BaseAmount   float64 // SOL amount paid (buy) or received (sell), > 0
	Direction    string  // "buy" | "sell"
	UnitPrice    float64 // BaseAmount / TradedAmount
	Platform     string  // attribution label, "unknown" on miss
}

// Swap direction constants
const (
	DirectionBuy  = "buy"
	DirectionSell = "sell"
)
