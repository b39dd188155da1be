// Package classification decides whether a transaction is a swap and
// emits a canonical Swap record with direction and unit price.
package classification

import (
	"math"
	"sort"

	"solana-wallet-pnl/internal/domain"
	"solana-wallet-pnl/internal/normalization"
)

// Default classifier thresholds.
const (
	// DefaultMinTradedAmount rejects dust-sized token legs.
	DefaultMinTradedAmount = 1e-6
	// DefaultMinBaseAmount rejects swaps priced below this many SOL.
	// Filters pure airdrops and fee-only transactions.
	DefaultMinBaseAmount = 1e-5
)

// Config parameterizes the classifier. Zero values fall back to defaults.
type Config struct {
	MinTradedAmount float64
	MinBaseAmount   float64
}

// Classifier turns per-transaction net deltas into Swap records.
type Classifier struct {
	cfg Config
}

// New creates a Classifier, applying defaults for unset thresholds.
func New(cfg Config) *Classifier {
	if cfg.MinTradedAmount <= 0 {
		cfg.MinTradedAmount = DefaultMinTradedAmount
	}
	if cfg.MinBaseAmount <= 0 {
		cfg.MinBaseAmount = DefaultMinBaseAmount
	}
	return &Classifier{cfg: cfg}
}

// Classify produces at most one Swap for a transaction, or nil when the
// transaction is not a swap. It never returns an error: unclassifiable
// input is excluded, not failed, and the caller counts exclusions.
func (c *Classifier) Classify(tx *domain.RawTransaction, deltas *normalization.NetDeltas) *domain.Swap {
	if tx == nil || deltas == nil || tx.BlockTime <= 0 {
		return nil
	}

	asset, delta, ok := dominantAsset(deltas)
	if !ok {
		return nil
	}

	direction := domain.DirectionBuy
	baseAmount := deltas.LargestBaseSent
	if delta < 0 {
		direction = domain.DirectionSell
		baseAmount = deltas.LargestBaseReceived
	}

	tradedAmount := math.Abs(delta)
	if tradedAmount < c.cfg.MinTradedAmount || baseAmount < c.cfg.MinBaseAmount {
		return nil
	}

	return &domain.Swap{
		Signature:    tx.Signature,
		Timestamp:    tx.BlockTime,
		Fee:          tx.Fee,
		BaseAsset:    domain.BaseAssetID,
		TradedAsset:  asset,
		TradedAmount: tradedAmount,
		BaseAmount:   baseAmount,
		Direction:    direction,
		UnitPrice:    baseAmount / tradedAmount,
		Platform:     AttributePlatform(tx),
	}
}

// dominantAsset selects the non-base asset with the largest absolute net
// delta. Ties break by lexicographic asset id: transfer-array order is an
// upstream serialization artifact, while mint ordering is stable across
// providers.
func dominantAsset(deltas *normalization.NetDeltas) (string, float64, bool) {
	candidates := make([]string, 0, len(deltas.Order))
	for _, asset := range deltas.Order {
		if asset == domain.BaseAssetID {
			continue
		}
		candidates = append(candidates, asset)
	}
	if len(candidates) == 0 {
		return "", 0, false
	}
	sort.Strings(candidates)

	best := candidates[0]
	for _, asset := range candidates[1:] {
		if math.Abs(deltas.Deltas[asset]) > math.Abs(deltas.Deltas[best]) {
			best = asset
		}
	}
	return best, deltas.Deltas[best], true
}
