package solana

import (
	"bytes"
	"testing"
)

func TestValidateWalletAddress(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		wantErr bool
	}{
		{
			name: "system program address is on curve",
			addr: "11111111111111111111111111111111",
		},
		{
			name:    "invalid base58 characters",
			addr:    "0OIl-not-base58",
			wantErr: true,
		},
		{
			name:    "too short",
			addr:    "abc",
			wantErr: true,
		},
		{
			name:    "empty",
			addr:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWalletAddress(tt.addr)
			if tt.wantErr && err == nil {
				t.Errorf("expected error for %q", tt.addr)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error for %q: %v", tt.addr, err)
			}
		})
	}
}

func TestIsOnCurve(t *testing.T) {
	// The zero encoding (y=0) is a canonical curve point.
	if !isOnCurve(make([]byte, 32)) {
		t.Error("zero point should be on curve")
	}

	// y = 2^255-1 is non-canonical and must be rejected.
	if isOnCurve(bytes.Repeat([]byte{0xFF}, 32)) {
		t.Error("non-canonical encoding should be rejected")
	}
}
