package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"solana-wallet-pnl/internal/domain"
	"solana-wallet-pnl/internal/storage"
)

func TestQualityReportStore_InsertAndGetLatest(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewQualityReportStore(pool)
	ctx := context.Background()

	old := &domain.QualityReport{
		Score: 70, ClassificationScore: 60, LedgerScore: 80,
		CompletenessScore: 70, Confidence: domain.ConfidenceMedium,
	}
	recent := &domain.QualityReport{
		Score: 95, ClassificationScore: 100, LedgerScore: 90,
		CompletenessScore: 95, Confidence: domain.ConfidenceHigh,
		Issues: []domain.QualityIssue{
			{Code: "OVERSELL_RATIO", Severity: domain.SeverityWarning, Message: "1 of 10 sells oversold"},
		},
	}

	require.NoError(t, store.Insert(ctx, testWallet, 1700000000, old))
	require.NoError(t, store.Insert(ctx, testWallet, 1700000600, recent))

	got, err := store.GetLatest(ctx, testWallet)
	require.NoError(t, err)
	require.Equal(t, 95.0, got.Score)
	require.Equal(t, domain.ConfidenceHigh, got.Confidence)
	require.Len(t, got.Issues, 1)
	require.Equal(t, "OVERSELL_RATIO", got.Issues[0].Code)
}

func TestQualityReportStore_NotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewQualityReportStore(pool)

	_, err := store.GetLatest(context.Background(), "unknown")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestQualityReportStore_EmptyIssues(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewQualityReportStore(pool)
	ctx := context.Background()

	report := &domain.QualityReport{Score: 100, Confidence: domain.ConfidenceHigh}
	require.NoError(t, store.Insert(ctx, testWallet, 1700000000, report))

	got, err := store.GetLatest(ctx, testWallet)
	require.NoError(t, err)
	require.Empty(t, got.Issues)
}
