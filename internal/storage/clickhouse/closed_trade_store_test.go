package clickhouse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"solana-wallet-pnl/internal/domain"
)

const testWallet = "WalletAAAA"

func TestClosedTradeStore_InsertBulkAndGet(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewClosedTradeStore(conn)
	ctx := context.Background()

	trades := []*domain.ClosedTrade{
		{
			Asset: "MintX", Quantity: 100, CostBasis: 0.1, Proceeds: 0.15,
			RealizedPnL: 0.05, PnLPercent: ptr(50.0),
			BuyTimestamp: 1700000000, SellTimestamp: 1700000600,
			HoldingDurationSec: 600, Signature: "sig2",
		},
		{
			Asset: "MintY", Quantity: 50, Proceeds: 0.3, RealizedPnL: 0,
			SellTimestamp: 1700000300, Signature: "sig1", ZeroCostBasis: true,
		},
	}

	require.NoError(t, store.InsertBulk(ctx, testWallet, trades))

	got, err := store.GetByWallet(ctx, testWallet)
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.Equal(t, "MintY", got[0].Asset)
	require.True(t, got[0].ZeroCostBasis)
	require.Nil(t, got[0].PnLPercent)

	require.Equal(t, "MintX", got[1].Asset)
	require.NotNil(t, got[1].PnLPercent)
	require.Equal(t, 50.0, *got[1].PnLPercent)
}

func TestClosedTradeStore_PnLByAsset(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewClosedTradeStore(conn)
	ctx := context.Background()

	trades := []*domain.ClosedTrade{
		{Asset: "MintX", Quantity: 100, CostBasis: 0.1, Proceeds: 0.15, RealizedPnL: 0.05, SellTimestamp: 1700000100, Signature: "sig1"},
		{Asset: "MintX", Quantity: 200, CostBasis: 0.3, Proceeds: 0.2, RealizedPnL: -0.1, SellTimestamp: 1700000200, Signature: "sig2"},
		{Asset: "MintY", Quantity: 50, CostBasis: 0.2, Proceeds: 0.5, RealizedPnL: 0.3, SellTimestamp: 1700000300, Signature: "sig3"},
	}
	require.NoError(t, store.InsertBulk(ctx, testWallet, trades))

	got, err := store.PnLByAsset(ctx, testWallet)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Ordered by total PnL DESC.
	require.Equal(t, "MintY", got[0].Asset)
	require.Equal(t, 1, got[0].TradeCount)
	require.Equal(t, 1, got[0].WinCount)
	require.InDelta(t, 0.3, got[0].TotalPnL, 1e-9)

	require.Equal(t, "MintX", got[1].Asset)
	require.Equal(t, 2, got[1].TradeCount)
	require.Equal(t, 1, got[1].WinCount)
	require.InDelta(t, -0.05, got[1].TotalPnL, 1e-9)
	require.InDelta(t, 0.35, got[1].TotalProceeds, 1e-9)
	require.InDelta(t, 0.4, got[1].TotalCost, 1e-9)
}

func TestClosedTradeStore_PnLByDay(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewClosedTradeStore(conn)
	ctx := context.Background()

	// 1700000100 and 1700000200 fall on 2023-11-14; 1700100000 on 2023-11-16.
	trades := []*domain.ClosedTrade{
		{Asset: "MintX", Quantity: 100, CostBasis: 0.1, Proceeds: 0.15, RealizedPnL: 0.05, SellTimestamp: 1700000100, Signature: "sig1"},
		{Asset: "MintY", Quantity: 50, CostBasis: 0.2, Proceeds: 0.1, RealizedPnL: -0.1, SellTimestamp: 1700000200, Signature: "sig2"},
		{Asset: "MintX", Quantity: 10, CostBasis: 0.05, Proceeds: 0.25, RealizedPnL: 0.2, SellTimestamp: 1700100000, Signature: "sig3"},
	}
	require.NoError(t, store.InsertBulk(ctx, testWallet, trades))

	got, err := store.PnLByDay(ctx, testWallet)
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.Equal(t, "2023-11-14", got[0].Day)
	require.Equal(t, 2, got[0].TradeCount)
	require.InDelta(t, -0.05, got[0].TotalPnL, 1e-9)

	require.Equal(t, "2023-11-16", got[1].Day)
	require.Equal(t, 1, got[1].TradeCount)
	require.InDelta(t, 0.2, got[1].TotalPnL, 1e-9)
}

func TestClosedTradeStore_EmptyWallet(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewClosedTradeStore(conn)
	ctx := context.Background()

	got, err := store.GetByWallet(ctx, "unknown")
	require.NoError(t, err)
	require.Empty(t, got)

	agg, err := store.PnLByAsset(ctx, "unknown")
	require.NoError(t, err)
	require.Empty(t, agg)
}
