package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"solana-wallet-pnl/internal/domain"
	"solana-wallet-pnl/internal/storage"
)

// SwapStore implements storage.SwapStore using PostgreSQL.
type SwapStore struct {
	pool *Pool
}

// NewSwapStore creates a new SwapStore.
func NewSwapStore(pool *Pool) *SwapStore {
	return &SwapStore{pool: pool}
}

// Compile-time interface check.
var _ storage.SwapStore = (*SwapStore)(nil)

const insertSwapQuery = `
	INSERT INTO swaps (
		wallet, signature, timestamp, fee, base_asset, traded_asset,
		traded_amount, base_amount, direction, unit_price, platform
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

// Insert adds a swap. Returns ErrDuplicateKey if (wallet, signature) exists.
func (s *SwapStore) Insert(ctx context.Context, wallet string, swap *domain.Swap) error {
	if wallet == "" || swap == nil || swap.Signature == "" {
		return storage.ErrInvalidInput
	}

	_, err := s.pool.Exec(ctx, insertSwapQuery,
		wallet,
		swap.Signature,
		swap.Timestamp,
		swap.Fee,
		swap.BaseAsset,
		swap.TradedAsset,
		swap.TradedAmount,
		swap.BaseAmount,
		swap.Direction,
		swap.UnitPrice,
		swap.Platform,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert swap: %w", err)
	}
	return nil
}

// InsertBulk adds multiple swaps atomically. Fails entire batch on any duplicate.
func (s *SwapStore) InsertBulk(ctx context.Context, wallet string, swaps []*domain.Swap) error {
	if len(swaps) == 0 {
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

	for _, swap := range swaps {
		if swap == nil || swap.Signature == "" {
			return storage.ErrInvalidInput
		}
		_, err := tx.Exec(ctx, insertSwapQuery,
			wallet,
			swap.Signature,
			swap.Timestamp,
			swap.Fee,
			swap.BaseAsset,
			swap.TradedAsset,
			swap.TradedAmount,
			swap.BaseAmount,
			swap.Direction,
			swap.UnitPrice,
			swap.Platform,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert swap in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetByWallet retrieves all swaps for a wallet, ordered by timestamp ASC.
func (s *SwapStore) GetByWallet(ctx context.Context, wallet string) ([]*domain.Swap, error) {
	query := `
		SELECT signature, timestamp, fee, base_asset, traded_asset,
		       traded_amount, base_amount, direction, unit_price, platform
		FROM swaps
		WHERE wallet = $1
		ORDER BY timestamp ASC, signature ASC
	`

	rows, err := s.pool.Query(ctx, query, wallet)
	if err != nil {
		return nil, fmt.Errorf("get swaps by wallet: %w", err)
	}
	defer rows.Close()

	return scanSwaps(rows)
}

// DeleteByWallet removes all swaps for a wallet.
func (s *SwapStore) DeleteByWallet(ctx context.Context, wallet string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM swaps WHERE wallet = $1`, wallet); err != nil {
		return fmt.Errorf("delete swaps by wallet: %w", err)
	}
	return nil
}

// scanSwaps scans multiple rows into a slice of Swap.
func scanSwaps(rows pgx.Rows) ([]*domain.Swap, error) {
	var swaps []*domain.Swap

	for rows.Next() {
		var swap domain.Swap

		err := rows.Scan(
			&swap.Signature,
			&swap.Timestamp,
			&swap.Fee,
			&swap.BaseAsset,
			&swap.TradedAsset,
			&swap.TradedAmount,
			&swap.BaseAmount,
			&swap.Direction,
			&swap.UnitPrice,
			&swap.Platform,
		)
		if err != nil {
			return nil, fmt.Errorf("scan swap row: %w", err)
		}

		swaps = append(swaps, &swap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate swap rows: %w", err)
	}

	return swaps, nil
}
