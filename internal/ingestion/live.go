package ingestion

import (
	"context"
	"fmt"
	"log"
	"time"

	"solana-wallet-pnl/internal/domain"
	"solana-wallet-pnl/internal/observability"
	"solana-wallet-pnl/internal/solana"
)

const (
	maxFetchRetries = 3
	baseRetryDelay  = 500 * time.Millisecond
)

// WalletWatcher streams a wallet's transactions live via a logs
// subscription. Each notification is resolved to a full transaction over
// RPC, since log notifications carry no balance data.
type WalletWatcher struct {
	ws      solana.WSClient
	rpc     solana.RPCClient
	metrics *observability.Metrics
}

var _ LiveSource = (*WalletWatcher)(nil)

// NewWalletWatcher creates a live source over the given clients.
func NewWalletWatcher(ws solana.WSClient, rpc solana.RPCClient) *WalletWatcher {
	return &WalletWatcher{ws: ws, rpc: rpc}
}

// WithMetrics enables metrics recording.
func (w *WalletWatcher) WithMetrics(m *observability.Metrics) *WalletWatcher {
	w.metrics = m
	return w
}

// Subscribe starts streaming parsed transactions mentioning the wallet.
func (w *WalletWatcher) Subscribe(ctx context.Context, wallet string) (<-chan *domain.RawTransaction, error) {
	logsCh, err := w.ws.SubscribeLogs(ctx, solana.LogsFilter{
		Mentions: []string{wallet},
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe logs for %s: %w", wallet, err)
	}
	log.Printf("[watch] subscribed to wallet %s", wallet)

	out := make(chan *domain.RawTransaction, 64)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case notif, ok := <-logsCh:
				if !ok {
					log.Printf("[watch] subscription closed for wallet %s", wallet)
					return
				}
				if notif.Err != nil {
					continue
				}
				w.handleNotification(ctx, out, wallet, notif)
			}
		}
	}()

	return out, nil
}

func (w *WalletWatcher) handleNotification(ctx context.Context, out chan<- *domain.RawTransaction, wallet string, notif solana.LogNotification) {
	tx, err := w.retryGetTransaction(ctx, notif.Signature)
	if err != nil {
		log.Printf("[watch] get transaction %s: %v", notif.Signature, err)
		return
	}

	raw := ConvertTransaction(tx, wallet)
	if raw == nil {
		if w.metrics != nil {
			w.metrics.TransactionsRejected.Inc()
		}
		return
	}
	if w.metrics != nil {
		w.metrics.TransactionsFetched.Inc()
	}

	select {
	case out <- raw:
	case <-ctx.Done():
	}
}

// retryGetTransaction fetches a transaction with exponential backoff.
// Notifications can arrive before the transaction is queryable, so a
// few retries cover the propagation gap.
func (w *WalletWatcher) retryGetTransaction(ctx context.Context, signature string) (*solana.Transaction, error) {
	var lastErr error
	for attempt := 0; attempt < maxFetchRetries; attempt++ {
		tx, err := w.rpc.GetTransaction(ctx, signature)
		if err == nil && tx != nil {
			return tx, nil
		}
		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("transaction %s not yet available", signature)
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		delay := baseRetryDelay * time.Duration(1<<attempt)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}
