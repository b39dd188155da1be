package storage

import (
	"context"

	"solana-wallet-pnl/internal/domain"
)

// SwapStore provides access to classified swap storage.
type SwapStore interface {
	// Insert adds a swap for a wallet. Returns ErrDuplicateKey if
	// (wallet, signature) exists.
	Insert(ctx context.Context, wallet string, s *domain.Swap) error

	// InsertBulk adds multiple swaps atomically. Fails entire batch on
	// any duplicate.
	InsertBulk(ctx context.Context, wallet string, swaps []*domain.Swap) error

	// GetByWallet retrieves all swaps for a wallet, ordered by
	// timestamp ASC, signature ASC.
	GetByWallet(ctx context.Context, wallet string) ([]*domain.Swap, error)

	// DeleteByWallet removes all swaps for a wallet, so a re-analysis
	// can replace them.
	DeleteByWallet(ctx context.Context, wallet string) error
}

// ClosedTradeStore provides access to realized trade storage. An
// oversold sell produces two trades with the same signature, so trades
// carry no natural key and duplicates are handled by replacing a
// wallet's rows per run.
type ClosedTradeStore interface {
	// InsertBulk adds multiple trades atomically.
	InsertBulk(ctx context.Context, wallet string, trades []*domain.ClosedTrade) error

	// GetByWallet retrieves all trades for a wallet, ordered by
	// sell timestamp ASC.
	GetByWallet(ctx context.Context, wallet string) ([]*domain.ClosedTrade, error)

	// GetByAsset retrieves a wallet's trades for one asset, ordered by
	// sell timestamp ASC.
	GetByAsset(ctx context.Context, wallet, asset string) ([]*domain.ClosedTrade, error)

	// DeleteByWallet removes all trades for a wallet.
	DeleteByWallet(ctx context.Context, wallet string) error
}

// QualityReportStore provides access to analysis quality reports.
type QualityReportStore interface {
	// Insert adds a report for a wallet at generatedAt (Unix seconds).
	Insert(ctx context.Context, wallet string, generatedAt int64, r *domain.QualityReport) error

	// GetLatest retrieves the most recent report for a wallet.
	// Returns ErrNotFound if none exists.
	GetLatest(ctx context.Context, wallet string) (*domain.QualityReport, error)
}
