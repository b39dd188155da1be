// Package ingestion acquires wallet transactions from Solana RPC and
// WebSocket endpoints and converts them into the parsed form the rest of
// the pipeline consumes.
package ingestion

import (
	"context"

	"solana-wallet-pnl/internal/domain"
)

// HistorySource provides the full confirmed transaction history of a wallet.
type HistorySource interface {
	// FetchHistory returns wallet transactions in chronological order
	// (oldest first). Failed transactions and transactions without a
	// block time are excluded.
	FetchHistory(ctx context.Context, wallet string) ([]*domain.RawTransaction, error)
}

// LiveSource provides wallet transactions as they confirm on-chain.
type LiveSource interface {
	// Subscribe returns a channel of parsed wallet transactions. The
	// channel is closed when the context is cancelled or the underlying
	// connection drops.
	Subscribe(ctx context.Context, wallet string) (<-chan *domain.RawTransaction, error)
}
