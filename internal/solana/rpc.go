package solana

import "context"

// RPCClient defines the Solana RPC HTTP interface.
type RPCClient interface {
	// GetTransaction retrieves a transaction by signature.
	// Returns (nil, nil) when the transaction is not found.
	GetTransaction(ctx context.Context, signature string) (*Transaction, error)

	// GetSignaturesForAddress retrieves signatures for an address with pagination.
	GetSignaturesForAddress(ctx context.Context, address string, opts *SignaturesOpts) ([]SignatureInfo, error)
}

// Transaction represents a Solana transaction with the balance metadata
// needed to derive wallet transfers.
type Transaction struct {
	Slot      int64
	Signature string
	BlockTime int64 // Unix timestamp (seconds), 0 when unavailable
	Meta      *TransactionMeta
	Message   *TransactionMessage
}

// TransactionMeta contains transaction metadata.
type TransactionMeta struct {
	Err               interface{}
	Fee               int64 // lamports
	PreBalances       []int64
	PostBalances      []int64
	PreTokenBalances  []TokenBalance
	PostTokenBalances []TokenBalance
	LogMessages       []string
}

// TokenBalance is one SPL token account balance snapshot.
type TokenBalance struct {
	AccountIndex int
	Mint         string
	Owner        string
	UIAmount     float64
}

// TransactionMessage contains parsed transaction message.
type TransactionMessage struct {
	AccountKeys []string
}
