package ingestion

import (
	"math"
	"testing"

	"solana-wallet-pnl/internal/solana"
)

const testWallet = "WalletAAAA"

func solTx() *solana.Transaction {
	return &solana.Transaction{
		Signature: "sig1",
		Slot:      100,
		BlockTime: 1700000000,
		Meta: &solana.TransactionMeta{
			Fee: 5000,
			// Wallet spends 2 SOL plus the fee.
			PreBalances:  []int64{3_000_000_000, 0},
			PostBalances: []int64{999_995_000, 2_000_000_000},
			PostTokenBalances: []solana.TokenBalance{
				{AccountIndex: 2, Mint: "MintX", Owner: testWallet, UIAmount: 1000},
			},
		},
		Message: &solana.TransactionMessage{
			AccountKeys: []string{testWallet, "PoolVault", "TokenAcct"},
		},
	}
}

func TestConvertTransaction_Buy(t *testing.T) {
	raw := ConvertTransaction(solTx(), testWallet)
	if raw == nil {
		t.Fatal("expected transaction, got nil")
	}

	if raw.Signature != "sig1" || raw.BlockTime != 1700000000 {
		t.Errorf("unexpected identity fields: %+v", raw)
	}
	if math.Abs(raw.Fee-0.000005) > 1e-12 {
		t.Errorf("expected fee 0.000005 SOL, got %v", raw.Fee)
	}

	if len(raw.TokenTransfers) != 1 {
		t.Fatalf("expected 1 token transfer, got %d", len(raw.TokenTransfers))
	}
	tt := raw.TokenTransfers[0]
	if tt.Mint != "MintX" || tt.Amount != 1000 || tt.ToAccount != testWallet {
		t.Errorf("unexpected token transfer: %+v", tt)
	}

	if len(raw.NativeTransfers) != 1 {
		t.Fatalf("expected 1 native transfer, got %d", len(raw.NativeTransfers))
	}
	nt := raw.NativeTransfers[0]
	// Fee is accounted separately: lamport delta -2_000_005_000 plus fee
	// gives an even 2 SOL outflow.
	if nt.FromAccount != testWallet || math.Abs(nt.Amount-2.0) > 1e-9 {
		t.Errorf("unexpected native transfer: %+v", nt)
	}
}

func TestConvertTransaction_SellClosesTokenAccount(t *testing.T) {
	tx := solTx()
	// Token account closed: the mint appears only in pre balances.
	tx.Meta.PreTokenBalances = []solana.TokenBalance{
		{AccountIndex: 2, Mint: "MintX", Owner: testWallet, UIAmount: 500},
	}
	tx.Meta.PostTokenBalances = nil
	tx.Meta.PreBalances = []int64{1_000_000_000, 0}
	tx.Meta.PostBalances = []int64{1_499_995_000, 0}

	raw := ConvertTransaction(tx, testWallet)
	if raw == nil {
		t.Fatal("expected transaction, got nil")
	}

	if len(raw.TokenTransfers) != 1 {
		t.Fatalf("expected 1 token transfer, got %d", len(raw.TokenTransfers))
	}
	tt := raw.TokenTransfers[0]
	if tt.FromAccount != testWallet || tt.Amount != 500 {
		t.Errorf("expected 500 MintX outflow, got %+v", tt)
	}

	if len(raw.NativeTransfers) != 1 {
		t.Fatalf("expected 1 native transfer, got %d", len(raw.NativeTransfers))
	}
	nt := raw.NativeTransfers[0]
	if nt.ToAccount != testWallet || math.Abs(nt.Amount-0.5) > 1e-9 {
		t.Errorf("expected 0.5 SOL inflow, got %+v", nt)
	}
}

func TestConvertTransaction_OtherOwnersIgnored(t *testing.T) {
	tx := solTx()
	tx.Meta.PostTokenBalances = append(tx.Meta.PostTokenBalances,
		solana.TokenBalance{AccountIndex: 3, Mint: "MintY", Owner: "SomeoneElse", UIAmount: 42})

	raw := ConvertTransaction(tx, testWallet)
	if raw == nil {
		t.Fatal("expected transaction, got nil")
	}
	for _, tt := range raw.TokenTransfers {
		if tt.Mint == "MintY" {
			t.Errorf("transfer for foreign owner must not appear: %+v", tt)
		}
	}
}

func TestConvertTransaction_Rejections(t *testing.T) {
	failed := solTx()
	failed.Meta.Err = map[string]interface{}{"InstructionError": []interface{}{}}
	if ConvertTransaction(failed, testWallet) != nil {
		t.Error("failed transaction must be rejected")
	}

	noTime := solTx()
	noTime.BlockTime = 0
	if ConvertTransaction(noTime, testWallet) != nil {
		t.Error("transaction without block time must be rejected")
	}

	if ConvertTransaction(nil, testWallet) != nil {
		t.Error("nil transaction must be rejected")
	}
}

func TestConvertTransaction_FeeOnlyNativeDeltaDropped(t *testing.T) {
	tx := solTx()
	tx.Meta.PostTokenBalances = nil
	// Only the fee left the wallet.
	tx.Meta.PreBalances = []int64{1_000_000_000, 0}
	tx.Meta.PostBalances = []int64{999_995_000, 0}

	raw := ConvertTransaction(tx, testWallet)
	if raw == nil {
		t.Fatal("expected transaction, got nil")
	}
	if len(raw.NativeTransfers) != 0 {
		t.Errorf("fee-only delta must not produce a transfer: %+v", raw.NativeTransfers)
	}
}
