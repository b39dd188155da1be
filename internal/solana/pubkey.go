package solana

import (
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// ValidateWalletAddress checks that addr is a plausible Solana wallet:
// base58, 32 bytes, and a point on the ed25519 curve. Program-derived
// addresses are off-curve and rejected, which is what we want for a
// wallet under analysis.
func ValidateWalletAddress(addr string) error {
	decoded, err := base58.Decode(addr)
	if err != nil {
		return fmt.Errorf("decode address: %w", err)
	}
	if len(decoded) != 32 {
		return fmt.Errorf("address must be 32 bytes, got %d", len(decoded))
	}
	if !isOnCurve(decoded) {
		return fmt.Errorf("address %s is not on the ed25519 curve", addr)
	}
	return nil
}

// isOnCurve reports whether the 32-byte point lies on the ed25519 curve.
func isOnCurve(point []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(point)
	return err == nil
}
