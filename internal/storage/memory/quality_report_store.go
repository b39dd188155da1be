package memory

import (
	"context"
	"sync"

	"solana-wallet-pnl/internal/domain"
	"solana-wallet-pnl/internal/storage"
)

// QualityReportStore is an in-memory implementation of storage.QualityReportStore.
type QualityReportStore struct {
	mu   sync.RWMutex
	data map[string][]storedReport // keyed by wallet
}

type storedReport struct {
	generatedAt int64
	report      domain.QualityReport
}

// NewQualityReportStore creates a new in-memory quality report store.
func NewQualityReportStore() *QualityReportStore {
	return &QualityReportStore{
		data: make(map[string][]storedReport),
	}
}

// Insert adds a report for a wallet.
func (s *QualityReportStore) Insert(_ context.Context, wallet string, generatedAt int64, r *domain.QualityReport) error {
	if wallet == "" || r == nil {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[wallet] = append(s.data[wallet], storedReport{
		generatedAt: generatedAt,
		report:      cloneReport(r),
	})
	return nil
}

// GetLatest retrieves the most recent report for a wallet.
func (s *QualityReportStore) GetLatest(_ context.Context, wallet string) (*domain.QualityReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reports := s.data[wallet]
	if len(reports) == 0 {
		return nil, storage.ErrNotFound
	}

	latest := reports[0]
	for _, r := range reports[1:] {
		if r.generatedAt >= latest.generatedAt {
			latest = r
		}
	}

	copy := cloneReport(&latest.report)
	return &copy, nil
}

func cloneReport(r *domain.QualityReport) domain.QualityReport {
	copy := *r
	copy.Issues = append([]domain.QualityIssue(nil), r.Issues...)
	return copy
}

var _ storage.QualityReportStore = (*QualityReportStore)(nil)
