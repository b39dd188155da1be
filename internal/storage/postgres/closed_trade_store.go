package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"solana-wallet-pnl/internal/domain"
	"solana-wallet-pnl/internal/storage"
)

// ClosedTradeStore implements storage.ClosedTradeStore using PostgreSQL.
type ClosedTradeStore struct {
	pool *Pool
}

// NewClosedTradeStore creates a new ClosedTradeStore.
func NewClosedTradeStore(pool *Pool) *ClosedTradeStore {
	return &ClosedTradeStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ClosedTradeStore = (*ClosedTradeStore)(nil)

const insertClosedTradeQuery = `
	INSERT INTO closed_trades (
		wallet, asset, quantity, cost_basis, proceeds, realized_pnl,
		pnl_percent, buy_timestamp, sell_timestamp, holding_duration_sec,
		signature, zero_cost_basis
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`

// InsertBulk adds multiple trades atomically.
func (s *ClosedTradeStore) InsertBulk(ctx context.Context, wallet string, trades []*domain.ClosedTrade) error {
	if len(trades) == 0 {
		return nil
	}
	if wallet == "" {
		return storage.ErrInvalidInput
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, trade := range trades {
		if trade == nil || trade.Asset == "" {
			return storage.ErrInvalidInput
		}
		_, err := tx.Exec(ctx, insertClosedTradeQuery,
			wallet,
			trade.Asset,
			trade.Quantity,
			trade.CostBasis,
			trade.Proceeds,
			trade.RealizedPnL,
			trade.PnLPercent,
			trade.BuyTimestamp,
			trade.SellTimestamp,
			trade.HoldingDurationSec,
			trade.Signature,
			trade.ZeroCostBasis,
		)
		if err != nil {
			return fmt.Errorf("insert closed trade in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetByWallet retrieves all trades for a wallet, ordered by sell timestamp ASC.
func (s *ClosedTradeStore) GetByWallet(ctx context.Context, wallet string) ([]*domain.ClosedTrade, error) {
	query := selectClosedTradesQuery + `
		WHERE wallet = $1
		ORDER BY sell_timestamp ASC, id ASC
	`

	rows, err := s.pool.Query(ctx, query, wallet)
	if err != nil {
		return nil, fmt.Errorf("get closed trades by wallet: %w", err)
	}
	defer rows.Close()

	return scanClosedTrades(rows)
}

// GetByAsset retrieves a wallet's trades for one asset, ordered by sell timestamp ASC.
func (s *ClosedTradeStore) GetByAsset(ctx context.Context, wallet, asset string) ([]*domain.ClosedTrade, error) {
	query := selectClosedTradesQuery + `
		WHERE wallet = $1 AND asset = $2
		ORDER BY sell_timestamp ASC, id ASC
	`

	rows, err := s.pool.Query(ctx, query, wallet, asset)
	if err != nil {
		return nil, fmt.Errorf("get closed trades by asset: %w", err)
	}
	defer rows.Close()

	return scanClosedTrades(rows)
}

// DeleteByWallet removes all trades for a wallet.
func (s *ClosedTradeStore) DeleteByWallet(ctx context.Context, wallet string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM closed_trades WHERE wallet = $1`, wallet); err != nil {
		return fmt.Errorf("delete closed trades by wallet: %w", err)
	}
	return nil
}

const selectClosedTradesQuery = `
	SELECT asset, quantity, cost_basis, proceeds, realized_pnl,
	       pnl_percent, buy_timestamp, sell_timestamp, holding_duration_sec,
	       signature, zero_cost_basis
	FROM closed_trades
`

// scanClosedTrades scans multiple rows into a slice of ClosedTrade.
func scanClosedTrades(rows pgx.Rows) ([]*domain.ClosedTrade, error) {
	var trades []*domain.ClosedTrade

	for rows.Next() {
		var trade domain.ClosedTrade

		err := rows.Scan(
			&trade.Asset,
			&trade.Quantity,
			&trade.CostBasis,
			&trade.Proceeds,
			&trade.RealizedPnL,
			&trade.PnLPercent,
			&trade.BuyTimestamp,
			&trade.SellTimestamp,
			&trade.HoldingDurationSec,
			&trade.Signature,
			&trade.ZeroCostBasis,
		)
		if err != nil {
			return nil, fmt.Errorf("scan closed trade row: %w", err)
		}

		trades = append(trades, &trade)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate closed trade rows: %w", err)
	}

	return trades, nil
}
