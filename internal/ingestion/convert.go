package ingestion

import (
	"solana-wallet-pnl/internal/domain"
	"solana-wallet-pnl/internal/solana"
)

// ConvertTransaction derives a parsed wallet transaction from raw RPC
// balance metadata. Transfers are synthesized from per-mint balance
// deltas of accounts owned by the wallet, which captures swaps routed
// through any number of intermediate hops without decoding instructions.
//
// Returns nil for transactions that must not reach the engine: failed
// transactions and transactions without a block time.
func ConvertTransaction(tx *solana.Transaction, wallet string) *domain.RawTransaction {
	if tx == nil || tx.Meta == nil {
		return nil
	}
	if tx.Meta.Err != nil {
		return nil
	}
	if tx.BlockTime == 0 {
		return nil
	}

	raw := &domain.RawTransaction{
		Signature:   tx.Signature,
		Slot:        tx.Slot,
		BlockTime:   tx.BlockTime,
		Fee:         float64(tx.Meta.Fee) / float64(solana.LamportsPerSOL),
		AccountKeys: accountKeys(tx),
	}

	raw.TokenTransfers = tokenTransfers(tx, wallet)
	if nt, ok := nativeTransfer(tx, wallet); ok {
		raw.NativeTransfers = append(raw.NativeTransfers, nt)
	}

	return raw
}

func accountKeys(tx *solana.Transaction) []string {
	if tx.Message == nil {
		return nil
	}
	return tx.Message.AccountKeys
}

// tokenTransfers computes one transfer per mint for which the wallet's
// token balance changed. Pre-only mints (balance went to zero and the
// account closed) still produce an outgoing transfer.
func tokenTransfers(tx *solana.Transaction, wallet string) []domain.TokenTransfer {
	pre := make(map[string]float64)
	for _, tb := range tx.Meta.PreTokenBalances {
		if tb.Owner == wallet {
			pre[tb.Mint] += tb.UIAmount
		}
	}

	var transfers []domain.TokenTransfer
	seen := make(map[string]bool)

	for _, tb := range tx.Meta.PostTokenBalances {
		if tb.Owner != wallet || seen[tb.Mint] {
			continue
		}
		seen[tb.Mint] = true
		delta := tb.UIAmount - pre[tb.Mint]
		if t, ok := transferForDelta(tb.Mint, delta, wallet); ok {
			transfers = append(transfers, t)
		}
	}

	for _, tb := range tx.Meta.PreTokenBalances {
		if tb.Owner != wallet || seen[tb.Mint] {
			continue
		}
		seen[tb.Mint] = true
		if t, ok := transferForDelta(tb.Mint, -pre[tb.Mint], wallet); ok {
			transfers = append(transfers, t)
		}
	}

	return transfers
}

func transferForDelta(mint string, delta float64, wallet string) (domain.TokenTransfer, bool) {
	switch {
	case delta > 0:
		return domain.TokenTransfer{Mint: mint, Amount: delta, ToAccount: wallet}, true
	case delta < 0:
		return domain.TokenTransfer{Mint: mint, Amount: -delta, FromAccount: wallet}, true
	default:
		return domain.TokenTransfer{}, false
	}
}

// nativeTransfer computes the wallet's SOL delta from lamport balances.
// The fee is excluded from the transfer so it can be accounted
// separately; it is paid by the first account key.
func nativeTransfer(tx *solana.Transaction, wallet string) (domain.NativeTransfer, bool) {
	if tx.Message == nil {
		return domain.NativeTransfer{}, false
	}

	idx := -1
	for i, key := range tx.Message.AccountKeys {
		if key == wallet {
			idx = i
			break
		}
	}
	if idx < 0 || idx >= len(tx.Meta.PreBalances) || idx >= len(tx.Meta.PostBalances) {
		return domain.NativeTransfer{}, false
	}

	lamports := tx.Meta.PostBalances[idx] - tx.Meta.PreBalances[idx]
	if idx == 0 {
		lamports += tx.Meta.Fee
	}
	if lamports == 0 {
		return domain.NativeTransfer{}, false
	}

	sol := float64(lamports) / float64(solana.LamportsPerSOL)
	if sol > 0 {
		return domain.NativeTransfer{Amount: sol, ToAccount: wallet}, true
	}
	return domain.NativeTransfer{Amount: -sol, FromAccount: wallet}, true
}
