package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"solana-wallet-pnl/internal/domain"
	"solana-wallet-pnl/internal/storage"
)

const testWallet = "WalletAAAA"

func testSwap(signature string, timestamp int64) *domain.Swap {
	return &domain.Swap{
		Signature:    signature,
		Timestamp:    timestamp,
		Fee:          0.000005,
		BaseAsset:    domain.BaseAssetID,
		TradedAsset:  "MintX",
		TradedAmount: 1000,
		BaseAmount:   2.0,
		Direction:    domain.DirectionBuy,
		UnitPrice:    0.002,
		Platform:     "raydium",
	}
}

func TestSwapStore_InsertAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewSwapStore(pool)
	ctx := context.Background()

	err := store.Insert(ctx, testWallet, testSwap("sig1", 1700000000))
	require.NoError(t, err)

	swaps, err := store.GetByWallet(ctx, testWallet)
	require.NoError(t, err)
	require.Len(t, swaps, 1)
	require.Equal(t, "sig1", swaps[0].Signature)
	require.Equal(t, domain.DirectionBuy, swaps[0].Direction)
	require.Equal(t, 0.002, swaps[0].UnitPrice)
	require.Equal(t, "raydium", swaps[0].Platform)
}

func TestSwapStore_DuplicateKey(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewSwapStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, testWallet, testSwap("sig1", 1700000000)))

	err := store.Insert(ctx, testWallet, testSwap("sig1", 1700000001))
	require.ErrorIs(t, err, storage.ErrDuplicateKey)

	// Same signature for a different wallet is allowed.
	require.NoError(t, store.Insert(ctx, "WalletBBBB", testSwap("sig1", 1700000000)))
}

func TestSwapStore_InsertBulkAtomic(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewSwapStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, testWallet, testSwap("sig2", 1700000002)))

	// Batch containing an existing signature must fail entirely.
	err := store.InsertBulk(ctx, testWallet, []*domain.Swap{
		testSwap("sig1", 1700000001),
		testSwap("sig2", 1700000002),
	})
	require.ErrorIs(t, err, storage.ErrDuplicateKey)

	swaps, err := store.GetByWallet(ctx, testWallet)
	require.NoError(t, err)
	require.Len(t, swaps, 1)
	require.Equal(t, "sig2", swaps[0].Signature)
}

func TestSwapStore_GetByWalletOrdered(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewSwapStore(pool)
	ctx := context.Background()

	require.NoError(t, store.InsertBulk(ctx, testWallet, []*domain.Swap{
		testSwap("sig3", 1700000300),
		testSwap("sig1", 1700000100),
		testSwap("sig2", 1700000200),
	}))

	swaps, err := store.GetByWallet(ctx, testWallet)
	require.NoError(t, err)
	require.Len(t, swaps, 3)
	require.Equal(t, "sig1", swaps[0].Signature)
	require.Equal(t, "sig2", swaps[1].Signature)
	require.Equal(t, "sig3", swaps[2].Signature)
}

func TestSwapStore_DeleteByWallet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewSwapStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, testWallet, testSwap("sig1", 1700000000)))
	require.NoError(t, store.Insert(ctx, "WalletBBBB", testSwap("sig2", 1700000001)))

	require.NoError(t, store.DeleteByWallet(ctx, testWallet))

	swaps, err := store.GetByWallet(ctx, testWallet)
	require.NoError(t, err)
	require.Empty(t, swaps)

	other, err := store.GetByWallet(ctx, "WalletBBBB")
	require.NoError(t, err)
	require.Len(t, other, 1)
}
