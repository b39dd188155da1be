package memory

import (
	"context"
	"errors"
	"testing"

	"solana-wallet-pnl/internal/domain"
	"solana-wallet-pnl/internal/storage"
)

const wallet = "WalletAAAA"

func TestSwapStore_InsertAndGet(t *testing.T) {
	store := NewSwapStore()
	ctx := context.Background()

	swap := &domain.Swap{
		Signature:    "sig1",
		Timestamp:    1700000000,
		BaseAsset:    domain.BaseAssetID,
		TradedAsset:  "MintX",
		TradedAmount: 1000,
		BaseAmount:   2.0,
		Direction:    domain.DirectionBuy,
		UnitPrice:    0.002,
		Platform:     "raydium",
	}

	if err := store.Insert(ctx, wallet, swap); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	result, err := store.GetByWallet(ctx, wallet)
	if err != nil {
		t.Fatalf("GetByWallet failed: %v", err)
	}

	if len(result) != 1 {
		t.Fatalf("Expected 1 swap, got %d", len(result))
	}
	if result[0].UnitPrice != 0.002 {
		t.Errorf("UnitPrice mismatch: got %f, want %f", result[0].UnitPrice, 0.002)
	}
}

func TestSwapStore_DuplicateKey(t *testing.T) {
	store := NewSwapStore()
	ctx := context.Background()

	swap := &domain.Swap{Signature: "sig1", Timestamp: 1000}

	if err := store.Insert(ctx, wallet, swap); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}
	if err := store.Insert(ctx, wallet, swap); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}

	// Same signature for a different wallet is fine.
	if err := store.Insert(ctx, "WalletBBBB", swap); err != nil {
		t.Errorf("Insert for different wallet failed: %v", err)
	}
}

func TestSwapStore_InsertBulkAtomic(t *testing.T) {
	store := NewSwapStore()
	ctx := context.Background()

	swaps := []*domain.Swap{
		{Signature: "sig1", Timestamp: 1000},
		{Signature: "sig2", Timestamp: 2000},
		{Signature: "sig1", Timestamp: 3000}, // intra-batch duplicate
	}

	if err := store.InsertBulk(ctx, wallet, swaps); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("Expected ErrDuplicateKey, got %v", err)
	}

	result, err := store.GetByWallet(ctx, wallet)
	if err != nil {
		t.Fatalf("GetByWallet failed: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("Failed batch must insert nothing, got %d swaps", len(result))
	}
}

func TestSwapStore_GetByWalletOrdered(t *testing.T) {
	store := NewSwapStore()
	ctx := context.Background()

	swaps := []*domain.Swap{
		{Signature: "sig3", Timestamp: 3000},
		{Signature: "sig1", Timestamp: 1000},
		{Signature: "sig2", Timestamp: 2000},
	}
	if err := store.InsertBulk(ctx, wallet, swaps); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	result, err := store.GetByWallet(ctx, wallet)
	if err != nil {
		t.Fatalf("GetByWallet failed: %v", err)
	}
	if len(result) != 3 {
		t.Fatalf("Expected 3 swaps, got %d", len(result))
	}
	for i, want := range []string{"sig1", "sig2", "sig3"} {
		if result[i].Signature != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, result[i].Signature)
		}
	}
}

func TestSwapStore_DeleteByWallet(t *testing.T) {
	store := NewSwapStore()
	ctx := context.Background()

	if err := store.Insert(ctx, wallet, &domain.Swap{Signature: "sig1", Timestamp: 1000}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Insert(ctx, "WalletBBBB", &domain.Swap{Signature: "sig2", Timestamp: 2000}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if err := store.DeleteByWallet(ctx, wallet); err != nil {
		t.Fatalf("DeleteByWallet failed: %v", err)
	}

	result, _ := store.GetByWallet(ctx, wallet)
	if len(result) != 0 {
		t.Errorf("Expected 0 swaps after delete, got %d", len(result))
	}
	other, _ := store.GetByWallet(ctx, "WalletBBBB")
	if len(other) != 1 {
		t.Errorf("Other wallet's swaps must survive, got %d", len(other))
	}
}

func TestSwapStore_InvalidInput(t *testing.T) {
	store := NewSwapStore()
	ctx := context.Background()

	if err := store.Insert(ctx, wallet, nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil swap, got %v", err)
	}
	if err := store.Insert(ctx, "", &domain.Swap{Signature: "sig1"}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty wallet, got %v", err)
	}
	if err := store.Insert(ctx, wallet, &domain.Swap{}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty signature, got %v", err)
	}
}

func TestSwapStore_ReturnsCopies(t *testing.T) {
	store := NewSwapStore()
	ctx := context.Background()

	if err := store.Insert(ctx, wallet, &domain.Swap{Signature: "sig1", Timestamp: 1000, UnitPrice: 0.5}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	first, _ := store.GetByWallet(ctx, wallet)
	first[0].UnitPrice = 99

	second, _ := store.GetByWallet(ctx, wallet)
	if second[0].UnitPrice != 0.5 {
		t.Errorf("Store data mutated through returned copy: %f", second[0].UnitPrice)
	}
}
