package memory

import (
	"context"
	"sort"
	"sync"

	"solana-wallet-pnl/internal/domain"
	"solana-wallet-pnl/internal/storage"
)

// ClosedTradeStore is an in-memory implementation of storage.ClosedTradeStore.
type ClosedTradeStore struct {
	mu   sync.RWMutex
	data map[string][]domain.ClosedTrade // keyed by wallet
}

// NewClosedTradeStore creates a new in-memory closed trade store.
func NewClosedTradeStore() *ClosedTradeStore {
	return &ClosedTradeStore{
		data: make(map[string][]domain.ClosedTrade),
	}
}

// InsertBulk adds multiple trades atomically.
func (s *ClosedTradeStore) InsertBulk(_ context.Context, wallet string, trades []*domain.ClosedTrade) error {
	if len(trades) == 0 {
		return nil
	}
	if wallet == "" {
		return storage.ErrInvalidInput
	}
	for _, t := range trades {
		if t == nil || t.Asset == "" {
			return storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range trades {
		s.data[wallet] = append(s.data[wallet], cloneTrade(t))
	}
	return nil
}

// GetByWallet retrieves all trades for a wallet, ordered by sell timestamp ASC.
func (s *ClosedTradeStore) GetByWallet(_ context.Context, wallet string) ([]*domain.ClosedTrade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.ClosedTrade
	for i := range s.data[wallet] {
		copy := cloneTrade(&s.data[wallet][i])
		result = append(result, &copy)
	}

	sortTrades(result)
	return result, nil
}

// GetByAsset retrieves a wallet's trades for one asset, ordered by sell timestamp ASC.
func (s *ClosedTradeStore) GetByAsset(_ context.Context, wallet, asset string) ([]*domain.ClosedTrade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.ClosedTrade
	for i := range s.data[wallet] {
		if s.data[wallet][i].Asset == asset {
			copy := cloneTrade(&s.data[wallet][i])
			result = append(result, &copy)
		}
	}

	sortTrades(result)
	return result, nil
}

// DeleteByWallet removes all trades for a wallet.
func (s *ClosedTradeStore) DeleteByWallet(_ context.Context, wallet string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, wallet)
	return nil
}

func sortTrades(trades []*domain.ClosedTrade) {
	sort.SliceStable(trades, func(i, j int) bool {
		if trades[i].SellTimestamp != trades[j].SellTimestamp {
			return trades[i].SellTimestamp < trades[j].SellTimestamp
		}
		return trades[i].Asset < trades[j].Asset
	})
}

// cloneTrade copies a trade including its nullable percent field.
func cloneTrade(t *domain.ClosedTrade) domain.ClosedTrade {
	copy := *t
	if t.PnLPercent != nil {
		v := *t.PnLPercent
		copy.PnLPercent = &v
	}
	return copy
}

var _ storage.ClosedTradeStore = (*ClosedTradeStore)(nil)
