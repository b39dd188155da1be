package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"solana-wallet-pnl/internal/domain"
	"solana-wallet-pnl/internal/storage"
)

// QualityReportStore implements storage.QualityReportStore using PostgreSQL.
type QualityReportStore struct {
	pool *Pool
}

// NewQualityReportStore creates a new QualityReportStore.
func NewQualityReportStore(pool *Pool) *QualityReportStore {
	return &QualityReportStore{pool: pool}
}

// Compile-time interface check.
var _ storage.QualityReportStore = (*QualityReportStore)(nil)

// Insert adds a report for a wallet.
func (s *QualityReportStore) Insert(ctx context.Context, wallet string, generatedAt int64, r *domain.QualityReport) error {
	if wallet == "" || r == nil {
		return storage.ErrInvalidInput
	}

	issues, err := json.Marshal(r.Issues)
	if err != nil {
		return fmt.Errorf("marshal issues: %w", err)
	}

	query := `
		INSERT INTO quality_reports (
			wallet, generated_at, score, classification_score,
			ledger_score, completeness_score, confidence, issues
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = s.pool.Exec(ctx, query,
		wallet,
		generatedAt,
		r.Score,
		r.ClassificationScore,
		r.LedgerScore,
		r.CompletenessScore,
		r.Confidence,
		issues,
	)
	if err != nil {
		return fmt.Errorf("insert quality report: %w", err)
	}
	return nil
}

// GetLatest retrieves the most recent report for a wallet.
func (s *QualityReportStore) GetLatest(ctx context.Context, wallet string) (*domain.QualityReport, error) {
	query := `
		SELECT score, classification_score, ledger_score,
		       completeness_score, confidence, issues
		FROM quality_reports
		WHERE wallet = $1
		ORDER BY generated_at DESC, id DESC
		LIMIT 1
	`

	var report domain.QualityReport
	var issues []byte

	err := s.pool.QueryRow(ctx, query, wallet).Scan(
		&report.Score,
		&report.ClassificationScore,
		&report.LedgerScore,
		&report.CompletenessScore,
		&report.Confidence,
		&issues,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get latest quality report: %w", err)
	}

	if err := json.Unmarshal(issues, &report.Issues); err != nil {
		return nil, fmt.Errorf("unmarshal issues: %w", err)
	}

	return &report, nil
}
