package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"solana-wallet-pnl/internal/domain"
	"solana-wallet-pnl/internal/storage"
)

// SwapStore is an in-memory implementation of storage.SwapStore.
type SwapStore struct {
	mu   sync.RWMutex
	data map[string]*walletSwap // keyed by composite key
}

type walletSwap struct {
	wallet string
	swap   domain.Swap
}

// NewSwapStore creates a new in-memory swap store.
func NewSwapStore() *SwapStore {
	return &SwapStore{
		data: make(map[string]*walletSwap),
	}
}

// swapKey generates a unique key for a swap.
func swapKey(wallet, signature string) string {
	return fmt.Sprintf("%s|%s", wallet, signature)
}

// Insert adds a swap. Returns ErrDuplicateKey if (wallet, signature) exists.
func (s *SwapStore) Insert(_ context.Context, wallet string, swap *domain.Swap) error {
	if wallet == "" || swap == nil || swap.Signature == "" {
		return storage.ErrInvalidInput
	}

	key := swapKey(wallet, swap.Signature)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[key]; exists {
		return storage.ErrDuplicateKey
	}

	s.data[key] = &walletSwap{wallet: wallet, swap: *swap}
	return nil
}

// InsertBulk adds multiple swaps atomically. Fails entire batch on any duplicate.
func (s *SwapStore) InsertBulk(_ context.Context, wallet string, swaps []*domain.Swap) error {
	if len(swaps) == 0 {
		return nil
	}
	if wallet == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Track keys in this batch to detect intra-batch duplicates
	batchKeys := make(map[string]struct{}, len(swaps))

	for _, swap := range swaps {
		if swap == nil || swap.Signature == "" {
			return storage.ErrInvalidInput
		}
		key := swapKey(wallet, swap.Signature)

		if _, exists := s.data[key]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[key]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = struct{}{}
	}

	for _, swap := range swaps {
		key := swapKey(wallet, swap.Signature)
		s.data[key] = &walletSwap{wallet: wallet, swap: *swap}
	}

	return nil
}

// GetByWallet retrieves all swaps for a wallet, ordered by timestamp ASC.
func (s *SwapStore) GetByWallet(_ context.Context, wallet string) ([]*domain.Swap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Swap
	for _, ws := range s.data {
		if ws.wallet == wallet {
			copy := ws.swap
			result = append(result, &copy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Timestamp != result[j].Timestamp {
			return result[i].Timestamp < result[j].Timestamp
		}
		return result[i].Signature < result[j].Signature
	})

	return result, nil
}

// DeleteByWallet removes all swaps for a wallet.
func (s *SwapStore) DeleteByWallet(_ context.Context, wallet string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, ws := range s.data {
		if ws.wallet == wallet {
			delete(s.data, key)
		}
	}
	return nil
}

var _ storage.SwapStore = (*SwapStore)(nil)
