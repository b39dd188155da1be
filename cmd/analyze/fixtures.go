package main

import "solana-wallet-pnl/internal/domain"

// fixtureWallet is the wallet the demo transactions belong to.
const fixtureWallet = "DemoWa11etDemoWa11etDemoWa11etDemoWa11et111"

// fixtureTransactions returns a small demo history exercising the full
// engine: two buys, a profitable partial sell, an oversold sell and a
// sell with no recorded purchase.
func fixtureTransactions() []*domain.RawTransaction {
	return []*domain.RawTransaction{
		{
			Signature: "demo-buy-1",
			BlockTime: 1700000000,
			Fee:       0.000005,
			TokenTransfers: []domain.TokenTransfer{
				{Mint: "DemoMintXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXX", Amount: 1000, FromAccount: "pool", ToAccount: fixtureWallet},
			},
			NativeTransfers: []domain.NativeTransfer{
				{Amount: 0.5, FromAccount: fixtureWallet, ToAccount: "pool"},
			},
		},
		{
			Signature: "demo-buy-2",
			BlockTime: 1700000600,
			Fee:       0.000005,
			TokenTransfers: []domain.TokenTransfer{
				{Mint: "DemoMintXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXX", Amount: 500, FromAccount: "pool", ToAccount: fixtureWallet},
			},
			NativeTransfers: []domain.NativeTransfer{
				{Amount: 0.3, FromAccount: fixtureWallet, ToAccount: "pool"},
			},
		},
		{
			Signature: "demo-sell-1",
			BlockTime: 1700001200,
			Fee:       0.000005,
			TokenTransfers: []domain.TokenTransfer{
				{Mint: "DemoMintXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXX", Amount: 1200, FromAccount: fixtureWallet, ToAccount: "pool"},
			},
			NativeTransfers: []domain.NativeTransfer{
				{Amount: 0.9, FromAccount: "pool", ToAccount: fixtureWallet},
			},
		},
		{
			// Oversell: only 300 DemoMintX remain but 400 are sold.
			Signature: "demo-oversell",
			BlockTime: 1700001800,
			Fee:       0.000005,
			TokenTransfers: []domain.TokenTransfer{
				{Mint: "DemoMintXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXX", Amount: 400, FromAccount: fixtureWallet, ToAccount: "pool"},
			},
			NativeTransfers: []domain.NativeTransfer{
				{Amount: 0.25, FromAccount: "pool", ToAccount: fixtureWallet},
			},
		},
		{
			// Sell with no recorded purchase, e.g. an airdropped token.
			Signature: "demo-missing-buy",
			BlockTime: 1700002400,
			Fee:       0.000005,
			TokenTransfers: []domain.TokenTransfer{
				{Mint: "DemoMintYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYY", Amount: 50, FromAccount: fixtureWallet, ToAccount: "pool"},
			},
			NativeTransfers: []domain.NativeTransfer{
				{Amount: 0.1, FromAccount: "pool", ToAccount: fixtureWallet},
			},
		},
	}
}
