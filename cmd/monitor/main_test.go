package main

import (
	"strings"
	"testing"

	"solana-wallet-pnl/internal/domain"
)

func TestFormatNewTransaction(t *testing.T) {
	tx := &domain.RawTransaction{
		Signature: "sig1",
		BlockTime: 1700000000,
	}

	got := formatNewTransaction(tx)

	if !strings.Contains(got, "sig1") {
		t.Errorf("expected signature in output, got: %s", got)
	}
	// BlockTime 1700000000 is 2023-11-14T22:13:20Z.
	if !strings.Contains(got, "2023-11-14T22:13:20Z") {
		t.Errorf("expected block time in output, got: %s", got)
	}
}
