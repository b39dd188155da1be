package ingestion

import (
	"context"
	"fmt"
	"testing"

	"solana-wallet-pnl/internal/cache"
	"solana-wallet-pnl/internal/solana"
)

// stubRPC serves canned signature pages and transactions.
type stubRPC struct {
	pages   [][]solana.SignatureInfo
	txs     map[string]*solana.Transaction
	txCalls map[string]int
	page    int
}

func (s *stubRPC) GetSignaturesForAddress(ctx context.Context, address string, opts *solana.SignaturesOpts) ([]solana.SignatureInfo, error) {
	if s.page >= len(s.pages) {
		return nil, nil
	}
	page := s.pages[s.page]
	s.page++
	return page, nil
}

func (s *stubRPC) GetTransaction(ctx context.Context, signature string) (*solana.Transaction, error) {
	if s.txCalls == nil {
		s.txCalls = make(map[string]int)
	}
	s.txCalls[signature]++
	tx, ok := s.txs[signature]
	if !ok {
		return nil, fmt.Errorf("unexpected signature %s", signature)
	}
	return tx, nil
}

var _ solana.RPCClient = (*stubRPC)(nil)

func sigInfo(sig string, blockTime int64) solana.SignatureInfo {
	return solana.SignatureInfo{Signature: sig, BlockTime: &blockTime}
}

func walletTx(sig string, blockTime int64) *solana.Transaction {
	return &solana.Transaction{
		Signature: sig,
		BlockTime: blockTime,
		Meta: &solana.TransactionMeta{
			Fee:          5000,
			PreBalances:  []int64{2_000_000_000},
			PostBalances: []int64{999_995_000},
		},
		Message: &solana.TransactionMessage{AccountKeys: []string{testWallet}},
	}
}

func TestFetchHistory_PagesAndChronologicalOrder(t *testing.T) {
	rpc := &stubRPC{
		pages: [][]solana.SignatureInfo{
			{sigInfo("sig3", 300), sigInfo("sig2", 200)},
			{sigInfo("sig1", 100)},
		},
		txs: map[string]*solana.Transaction{
			"sig1": walletTx("sig1", 100),
			"sig2": walletTx("sig2", 200),
			"sig3": walletTx("sig3", 300),
		},
	}

	src := NewWalletHistorySource(rpc).WithPageLimit(2)
	txs, err := src.FetchHistory(context.Background(), testWallet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(txs) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(txs))
	}
	for i, want := range []string{"sig1", "sig2", "sig3"} {
		if txs[i].Signature != want {
			t.Errorf("position %d: expected %s, got %s", i, want, txs[i].Signature)
		}
	}
}

func TestFetchHistory_SkipsFailedAndTimelessSignatures(t *testing.T) {
	bt := int64(200)
	rpc := &stubRPC{
		pages: [][]solana.SignatureInfo{
			{
				{Signature: "failed", BlockTime: &bt, Err: "InstructionError"},
				{Signature: "timeless"},
				sigInfo("sig1", 100),
			},
		},
		txs: map[string]*solana.Transaction{
			"sig1": walletTx("sig1", 100),
		},
	}

	src := NewWalletHistorySource(rpc).WithPageLimit(10)
	txs, err := src.FetchHistory(context.Background(), testWallet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(txs) != 1 || txs[0].Signature != "sig1" {
		t.Fatalf("expected only sig1, got %+v", txs)
	}
	if rpc.txCalls["failed"] != 0 || rpc.txCalls["timeless"] != 0 {
		t.Error("rejected signatures must not be fetched")
	}
}

func TestFetchHistory_MaxTransactionsCap(t *testing.T) {
	rpc := &stubRPC{
		pages: [][]solana.SignatureInfo{
			{sigInfo("sig3", 300), sigInfo("sig2", 200), sigInfo("sig1", 100)},
		},
		txs: map[string]*solana.Transaction{
			"sig1": walletTx("sig1", 100),
			"sig2": walletTx("sig2", 200),
			"sig3": walletTx("sig3", 300),
		},
	}

	src := NewWalletHistorySource(rpc).WithPageLimit(10).WithMaxTransactions(2)
	txs, err := src.FetchHistory(context.Background(), testWallet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Newest two, returned oldest-first.
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	if txs[0].Signature != "sig2" || txs[1].Signature != "sig3" {
		t.Errorf("unexpected capped result: %s, %s", txs[0].Signature, txs[1].Signature)
	}
	if rpc.txCalls["sig1"] != 0 {
		t.Error("transactions beyond the cap must not be fetched")
	}
}

// mapCache is an in-memory TransactionCache for tests.
type mapCache struct {
	entries map[string]*solana.Transaction
	sets    int
}

func (c *mapCache) Get(ctx context.Context, signature string) (*solana.Transaction, error) {
	tx, ok := c.entries[signature]
	if !ok {
		return nil, cache.ErrNotFound
	}
	return tx, nil
}

func (c *mapCache) Set(ctx context.Context, signature string, tx *solana.Transaction) error {
	c.entries[signature] = tx
	c.sets++
	return nil
}

func TestFetchHistory_CacheAvoidsRPCFetch(t *testing.T) {
	rpc := &stubRPC{
		pages: [][]solana.SignatureInfo{
			{sigInfo("sig2", 200), sigInfo("sig1", 100)},
		},
		txs: map[string]*solana.Transaction{
			"sig2": walletTx("sig2", 200),
		},
	}
	c := &mapCache{entries: map[string]*solana.Transaction{
		"sig1": walletTx("sig1", 100),
	}}

	src := NewWalletHistorySource(rpc).WithPageLimit(10).WithCache(c)
	txs, err := src.FetchHistory(context.Background(), testWallet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	if rpc.txCalls["sig1"] != 0 {
		t.Error("cached transaction must not be fetched over RPC")
	}
	if c.sets != 1 {
		t.Errorf("expected 1 cache fill for the miss, got %d", c.sets)
	}
}
