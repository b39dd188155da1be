package clickhouse

import (
	"context"
	"fmt"

	"solana-wallet-pnl/internal/domain"
)

// ClosedTradeStore is an append-only analytics copy of realized trades.
// It exists for aggregate queries over large histories; the PostgreSQL
// store remains the system of record.
type ClosedTradeStore struct {
	conn *Conn
}

// NewClosedTradeStore creates a new ClosedTradeStore.
func NewClosedTradeStore(conn *Conn) *ClosedTradeStore {
	return &ClosedTradeStore{conn: conn}
}

// AssetPnL aggregates realized results per traded asset.
type AssetPnL struct {
	Asset         string
	TradeCount    int
	WinCount      int
	TotalPnL      float64
	TotalProceeds float64
	TotalCost     float64
}

// DailyPnL aggregates realized results per UTC day of sale.
type DailyPnL struct {
	Day        string // YYYY-MM-DD
	TradeCount int
	TotalPnL   float64
}

// InsertBulk appends trades for a wallet.
func (s *ClosedTradeStore) InsertBulk(ctx context.Context, wallet string, trades []*domain.ClosedTrade) error {
	if len(trades) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO closed_trades (
			wallet, asset, quantity, cost_basis, proceeds, realized_pnl,
			pnl_percent, buy_timestamp, sell_timestamp, holding_duration_sec,
			signature, zero_cost_basis
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, t := range trades {
		var zeroCost uint8
		if t.ZeroCostBasis {
			zeroCost = 1
		}
		err = batch.Append(
			wallet, t.Asset, t.Quantity, t.CostBasis, t.Proceeds, t.RealizedPnL,
			t.PnLPercent, t.BuyTimestamp, t.SellTimestamp, t.HoldingDurationSec,
			t.Signature, zeroCost,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByWallet retrieves all trades for a wallet, ordered by sell timestamp ASC.
func (s *ClosedTradeStore) GetByWallet(ctx context.Context, wallet string) ([]*domain.ClosedTrade, error) {
	query := `
		SELECT asset, quantity, cost_basis, proceeds, realized_pnl,
		       pnl_percent, buy_timestamp, sell_timestamp, holding_duration_sec,
		       signature, zero_cost_basis
		FROM closed_trades
		WHERE wallet = ?
		ORDER BY sell_timestamp ASC
	`

	rows, err := s.conn.Query(ctx, query, wallet)
	if err != nil {
		return nil, fmt.Errorf("query by wallet: %w", err)
	}
	defer rows.Close()

	return scanClosedTrades(rows)
}

// PnLByAsset aggregates a wallet's realized PnL per asset, ordered by
// total PnL DESC.
func (s *ClosedTradeStore) PnLByAsset(ctx context.Context, wallet string) ([]*AssetPnL, error) {
	query := `
		SELECT asset,
		       toInt64(count()) AS trade_count,
		       toInt64(countIf(realized_pnl > 0)) AS win_count,
		       sum(realized_pnl) AS total_pnl,
		       sum(proceeds) AS total_proceeds,
		       sum(cost_basis) AS total_cost
		FROM closed_trades
		WHERE wallet = ?
		GROUP BY asset
		ORDER BY total_pnl DESC
	`

	rows, err := s.conn.Query(ctx, query, wallet)
	if err != nil {
		return nil, fmt.Errorf("query pnl by asset: %w", err)
	}
	defer rows.Close()

	var result []*AssetPnL
	for rows.Next() {
		var a AssetPnL
		var tradeCount, winCount int64

		err := rows.Scan(
			&a.Asset, &tradeCount, &winCount,
			&a.TotalPnL, &a.TotalProceeds, &a.TotalCost,
		)
		if err != nil {
			return nil, fmt.Errorf("scan asset pnl row: %w", err)
		}

		a.TradeCount = int(tradeCount)
		a.WinCount = int(winCount)
		result = append(result, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate asset pnl rows: %w", err)
	}

	return result, nil
}

// PnLByDay aggregates a wallet's realized PnL per UTC sale day, ordered
// chronologically.
func (s *ClosedTradeStore) PnLByDay(ctx context.Context, wallet string) ([]*DailyPnL, error) {
	query := `
		SELECT toString(toDate(toDateTime(sell_timestamp))) AS day,
		       toInt64(count()) AS trade_count,
		       sum(realized_pnl) AS total_pnl
		FROM closed_trades
		WHERE wallet = ?
		GROUP BY day
		ORDER BY day ASC
	`

	rows, err := s.conn.Query(ctx, query, wallet)
	if err != nil {
		return nil, fmt.Errorf("query pnl by day: %w", err)
	}
	defer rows.Close()

	var result []*DailyPnL
	for rows.Next() {
		var d DailyPnL
		var tradeCount int64

		if err := rows.Scan(&d.Day, &tradeCount, &d.TotalPnL); err != nil {
			return nil, fmt.Errorf("scan daily pnl row: %w", err)
		}

		d.TradeCount = int(tradeCount)
		result = append(result, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily pnl rows: %w", err)
	}

	return result, nil
}

// scanClosedTrades scans multiple rows.
func scanClosedTrades(rows chRows) ([]*domain.ClosedTrade, error) {
	var trades []*domain.ClosedTrade

	for rows.Next() {
		var t domain.ClosedTrade
		var zeroCost uint8

		err := rows.Scan(
			&t.Asset, &t.Quantity, &t.CostBasis, &t.Proceeds, &t.RealizedPnL,
			&t.PnLPercent, &t.BuyTimestamp, &t.SellTimestamp, &t.HoldingDurationSec,
			&t.Signature, &zeroCost,
		)
		if err != nil {
			return nil, fmt.Errorf("scan closed trade row: %w", err)
		}

		t.ZeroCostBasis = zeroCost != 0
		trades = append(trades, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate closed trade rows: %w", err)
	}

	return trades, nil
}
