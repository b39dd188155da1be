package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"solana-wallet-pnl/internal/cache"
	"solana-wallet-pnl/internal/domain"
	"solana-wallet-pnl/internal/observability"
	"solana-wallet-pnl/internal/solana"
)

// DefaultPageLimit is the maximum signatures per getSignaturesForAddress
// call allowed by the RPC API.
const DefaultPageLimit = 1000

// TransactionCache caches fetched transactions by signature.
type TransactionCache interface {
	Get(ctx context.Context, signature string) (*solana.Transaction, error)
	Set(ctx context.Context, signature string, tx *solana.Transaction) error
}

// WalletHistorySource fetches the complete transaction history of a
// wallet by paging signatures and retrieving each transaction.
type WalletHistorySource struct {
	rpc       solana.RPCClient
	cache     TransactionCache
	metrics   *observability.Metrics
	pageLimit int
	// maxTransactions bounds the number of parsed transactions returned;
	// zero means unlimited.
	maxTransactions int
}

var _ HistorySource = (*WalletHistorySource)(nil)

// NewWalletHistorySource creates a history source over the given RPC client.
func NewWalletHistorySource(rpc solana.RPCClient) *WalletHistorySource {
	return &WalletHistorySource{
		rpc:       rpc,
		pageLimit: DefaultPageLimit,
	}
}

// WithCache enables the transaction cache.
func (s *WalletHistorySource) WithCache(c TransactionCache) *WalletHistorySource {
	s.cache = c
	return s
}

// WithMetrics enables metrics recording.
func (s *WalletHistorySource) WithMetrics(m *observability.Metrics) *WalletHistorySource {
	s.metrics = m
	return s
}

// WithPageLimit overrides the signature page size.
func (s *WalletHistorySource) WithPageLimit(limit int) *WalletHistorySource {
	if limit > 0 {
		s.pageLimit = limit
	}
	return s
}

// WithMaxTransactions caps how many transactions are fetched, newest first.
func (s *WalletHistorySource) WithMaxTransactions(max int) *WalletHistorySource {
	s.maxTransactions = max
	return s
}

// FetchHistory pages through the wallet's signatures newest-first,
// fetches each confirmed transaction, and returns the parsed results in
// chronological order.
func (s *WalletHistorySource) FetchHistory(ctx context.Context, wallet string) ([]*domain.RawTransaction, error) {
	var txs []*domain.RawTransaction
	var before string

page:
	for {
		opts := &solana.SignaturesOpts{Limit: s.pageLimit}
		if before != "" {
			opts.Before = before
		}

		sigs, err := s.rpc.GetSignaturesForAddress(ctx, wallet, opts)
		if err != nil {
			return nil, fmt.Errorf("get signatures for %s: %w", wallet, err)
		}
		if s.metrics != nil {
			s.metrics.SignaturePagesFetched.Inc()
		}
		if len(sigs) == 0 {
			break
		}

		for _, sig := range sigs {
			if sig.Err != nil || sig.BlockTime == nil {
				s.recordRejected()
				continue
			}

			tx, err := s.fetchTransaction(ctx, sig.Signature)
			if err != nil {
				return nil, fmt.Errorf("get transaction %s: %w", sig.Signature, err)
			}

			raw := ConvertTransaction(tx, wallet)
			if raw == nil {
				s.recordRejected()
				continue
			}

			txs = append(txs, raw)
			if s.metrics != nil {
				s.metrics.TransactionsFetched.Inc()
			}
			if s.maxTransactions > 0 && len(txs) >= s.maxTransactions {
				break page
			}
		}

		if len(sigs) < s.pageLimit {
			break
		}
		before = sigs[len(sigs)-1].Signature
	}

	// Signatures arrive newest-first; the engine wants oldest-first.
	for i, j := 0, len(txs)-1; i < j; i, j = i+1, j-1 {
		txs[i], txs[j] = txs[j], txs[i]
	}

	return txs, nil
}

// fetchTransaction consults the cache before hitting RPC. Cache failures
// other than a miss degrade to an RPC fetch.
func (s *WalletHistorySource) fetchTransaction(ctx context.Context, signature string) (*solana.Transaction, error) {
	if s.cache != nil {
		tx, err := s.cache.Get(ctx, signature)
		if err == nil {
			if s.metrics != nil {
				s.metrics.CacheHits.Inc()
			}
			return tx, nil
		}
		if !errors.Is(err, cache.ErrNotFound) {
			log.Printf("[ingestion] cache get %s: %v", signature, err)
		}
		if s.metrics != nil {
			s.metrics.CacheMisses.Inc()
		}
	}

	start := time.Now()
	tx, err := s.rpc.GetTransaction(ctx, signature)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RPCCallLatency.WithLabelValues("getTransaction").Observe(time.Since(start).Seconds())
	}

	if s.cache != nil && tx != nil {
		if err := s.cache.Set(ctx, signature, tx); err != nil {
			log.Printf("[ingestion] cache set %s: %v", signature, err)
		}
	}
	return tx, nil
}

func (s *WalletHistorySource) recordRejected() {
	if s.metrics != nil {
		s.metrics.TransactionsRejected.Inc()
	}
}
