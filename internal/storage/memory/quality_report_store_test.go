package memory

import (
	"context"
	"errors"
	"testing"

	"solana-wallet-pnl/internal/domain"
	"solana-wallet-pnl/internal/storage"
)

func TestQualityReportStore_InsertAndGetLatest(t *testing.T) {
	store := NewQualityReportStore()
	ctx := context.Background()

	old := &domain.QualityReport{Score: 70, Confidence: domain.ConfidenceMedium}
	recent := &domain.QualityReport{
		Score:      95,
		Confidence: domain.ConfidenceHigh,
		Issues: []domain.QualityIssue{
			{Code: "LOW_DETECTION_RATE", Severity: domain.SeverityWarning, Message: "few swaps detected"},
		},
	}

	if err := store.Insert(ctx, wallet, 1000, old); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Insert(ctx, wallet, 2000, recent); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetLatest(ctx, wallet)
	if err != nil {
		t.Fatalf("GetLatest failed: %v", err)
	}
	if got.Score != 95 || got.Confidence != domain.ConfidenceHigh {
		t.Errorf("Expected latest report, got %+v", got)
	}
	if len(got.Issues) != 1 || got.Issues[0].Code != "LOW_DETECTION_RATE" {
		t.Errorf("Issues not preserved: %+v", got.Issues)
	}
}

func TestQualityReportStore_NotFound(t *testing.T) {
	store := NewQualityReportStore()

	_, err := store.GetLatest(context.Background(), "unknown")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestQualityReportStore_ReturnsCopies(t *testing.T) {
	store := NewQualityReportStore()
	ctx := context.Background()

	if err := store.Insert(ctx, wallet, 1000, &domain.QualityReport{Score: 80}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	first, _ := store.GetLatest(ctx, wallet)
	first.Score = 0

	second, _ := store.GetLatest(ctx, wallet)
	if second.Score != 80 {
		t.Errorf("Store data mutated through returned copy: %f", second.Score)
	}
}
