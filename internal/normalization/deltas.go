// Package normalization turns a raw transaction's transfer records into
// per-asset net deltas for the wallet under analysis.
package normalization

import (
	"math"

	"solana-wallet-pnl/internal/domain"
)

// DustEpsilon is the default threshold below which a net delta is treated
// as zero (intermediate routing noise), not a real balance change.
const DustEpsilon = 1e-6

// NetDeltas holds per-asset net balance changes for one wallet within one
// transaction. Wrapped SOL is folded into domain.BaseAssetID before delta
// computation.
type NetDeltas struct {
	// Deltas maps assetID -> received minus sent for the wallet.
	Deltas map[string]float64

	// Order lists asset IDs in first-encounter transfer order. Iteration
	// over Deltas must go through Order so output is deterministic.
	Order []string

	// LargestBaseSent is the largest single SOL amount (native or wrapped)
	// the wallet sent in the transaction. Multi-hop routing can move SOL
	// through intermediate accounts, so the largest observed leg is a
	// better trade-size estimate than the net delta.
	LargestBaseSent float64

	// LargestBaseReceived is the largest single SOL amount the wallet
	// received in the transaction.
	LargestBaseReceived float64
}

// BaseDelta returns the wallet's net SOL change, 0 if SOL never moved.
func (d *NetDeltas) BaseDelta() float64 {
	return d.Deltas[domain.BaseAssetID]
}

// Compute derives net deltas for wallet from one transaction.
// Pure function: no side effects, deterministic output.
func Compute(tx *domain.RawTransaction, wallet string) *NetDeltas {
	d := &NetDeltas{Deltas: make(map[string]float64)}
	if tx == nil || wallet == "" {
		return d
	}

	for _, t := range tx.TokenTransfers {
		asset := normalizeAsset(t.Mint)
		if t.ToAccount == wallet {
			d.add(asset, t.Amount)
		}
		if t.FromAccount == wallet {
			d.add(asset, -t.Amount)
		}
		if asset == domain.BaseAssetID {
			d.trackBaseLeg(t.Amount, t.FromAccount == wallet, t.ToAccount == wallet)
		}
	}

	for _, t := range tx.NativeTransfers {
		if t.ToAccount == wallet {
			d.add(domain.BaseAssetID, t.Amount)
		}
		if t.FromAccount == wallet {
			d.add(domain.BaseAssetID, -t.Amount)
		}
		d.trackBaseLeg(t.Amount, t.FromAccount == wallet, t.ToAccount == wallet)
	}

	d.dropDust()
	return d
}

// add accumulates a delta, recording first-encounter order.
func (d *NetDeltas) add(asset string, amount float64) {
	if _, seen := d.Deltas[asset]; !seen {
		d.Order = append(d.Order, asset)
	}
	d.Deltas[asset] += amount
}

func (d *NetDeltas) trackBaseLeg(amount float64, sent, received bool) {
	if sent && amount > d.LargestBaseSent {
		d.LargestBaseSent = amount
	}
	if received && amount > d.LargestBaseReceived {
		d.LargestBaseReceived = amount
	}
}

// dropDust removes assets whose net delta rounds to zero. These are
// routing hops where the wallet received and sent the same amount.
func (d *NetDeltas) dropDust() {
	kept := d.Order[:0]
	for _, asset := range d.Order {
		if math.Abs(d.Deltas[asset]) < DustEpsilon {
			delete(d.Deltas, asset)
			continue
		}
		kept = append(kept, asset)
	}
	d.Order = kept
}

// normalizeAsset folds wrapped SOL into the canonical base asset id.
func normalizeAsset(mint string) string {
	if mint == domain.WrappedSOLMint {
		return domain.BaseAssetID
	}
	return mint
}
