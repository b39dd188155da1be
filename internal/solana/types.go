package solana

// LamportsPerSOL converts between lamports and SOL.
const LamportsPerSOL = 1_000_000_000

// SignatureInfo from getSignaturesForAddress.
type SignatureInfo struct {
	Signature string
	Slot      int64
	BlockTime *int64
	Err       interface{}
}

// SignaturesOpts defines optional pagination parameters for getSignaturesForAddress.
type SignaturesOpts struct {
	Before string // Start searching backwards from this signature
	Until  string // Search until this signature
	Limit  int    // Maximum number of signatures to return
}
