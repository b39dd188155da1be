package domain

// TokenTransfer represents one observed SPL token movement inside a transaction.
type TokenTransfer struct {
	Mint        string  // token mint address
	Amount      float64 // token amount in UI units (always positive)
	FromAccount string  // sender account
	ToAccount   string  // receiver account
}

// NativeTransfer represents one observed SOL movement inside a transaction.
type NativeTransfer struct {
	Amount      float64 // SOL amount (always positive)
	FromAccount string  // sender account
	ToAccount   string  // receiver account
}

// RawTransaction is a parsed wallet transaction as delivered by the
// acquisition layer. BlockTime is required; transactions without it are
// rejected before reaching the engine.
type RawTransaction struct {
	Signature       string  // Solana transaction signature
	Slot            int64   // Solana slot number
	BlockTime       int64   // Unix timestamp in seconds
	Fee             float64 // transaction fee in SOL
	Type            string  // best-effort type hint (e.g. "SWAP"), may be empty
	Source          string  // best-effort source hint (e.g. "RAYDIUM"), may be empty
	AccountKeys     []string
	TokenTransfers  []TokenTransfer
	NativeTransfers []NativeTransfer
}
