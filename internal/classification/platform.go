package classification

import (
	"strings"

	"solana-wallet-pnl/internal/domain"
)

// Known DEX and router program IDs.
const (
	// RaydiumAMMV4 is the Raydium AMM v4 program ID.
	RaydiumAMMV4 = "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8"
	// RaydiumCLMM is the Raydium concentrated liquidity program ID.
	RaydiumCLMM = "CAMMCzo5YL8w4VFF8KVHrK22GGUsp5VTaW7grrKgrWqK"
	// PumpFun is the pump.fun program ID.
	PumpFun = "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P"
	// JupiterV6 is the Jupiter aggregator v6 program ID.
	JupiterV6 = "JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4"
	// OrcaWhirlpool is the Orca whirlpool program ID.
	OrcaWhirlpool = "whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc"
	// MeteoraDLMM is the Meteora DLMM program ID.
	MeteoraDLMM = "LBUZKhRxPF3XUpBCjp4YzTKgLccjZhTSDM9YuVaPwxo"
)

// platformByProgram maps program IDs to attribution labels.
var platformByProgram = map[string]string{
	RaydiumAMMV4:  "raydium",
	RaydiumCLMM:   "raydium",
	PumpFun:       "pumpfun",
	JupiterV6:     "jupiter",
	OrcaWhirlpool: "orca",
	MeteoraDLMM:   "meteora",
}

// PlatformUnknown is returned when no known program or hint matches.
const PlatformUnknown = "unknown"

// AttributePlatform labels the venue of a transaction. Best effort only:
// a miss returns PlatformUnknown and never blocks classification.
func AttributePlatform(tx *domain.RawTransaction) string {
	if tx == nil {
		return PlatformUnknown
	}
	if src := strings.ToLower(strings.TrimSpace(tx.Source)); src != "" {
		return src
	}
	for _, key := range tx.AccountKeys {
		if label, ok := platformByProgram[key]; ok {
			return label
		}
	}
	return PlatformUnknown
}
