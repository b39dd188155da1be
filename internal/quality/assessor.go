// Package quality scores the trustworthiness of one analysis run.
// The assessor reads classified swaps and ledger output and produces
// diagnostics only; it never mutates ledger results.
package quality

import (
	"fmt"
	"math"

	"solana-wallet-pnl/internal/domain"
)

// Default assessment thresholds.
const (
	// DefaultMinDetectionRate is the swaps/transactions ratio below which
	// the classification score is penalized.
	DefaultMinDetectionRate = 0.10
	// DefaultOutlierPnLPercent flags trades beyond +-10000% PnL.
	DefaultOutlierPnLPercent = 10000.0
	// DefaultOutlierPnLSOL flags trades with absolute PnL beyond this ceiling.
	DefaultOutlierPnLSOL = 1000.0
)

// Penalty weights per component. Score starts at 100 and each component
// can subtract at most its weight.
const (
	detectionWeight  = 25.0
	oversellWeight   = 30.0
	zeroProfitWeight = 25.0
	outlierWeight    = 20.0
)

// Config parameterizes the assessor. Zero values fall back to defaults.
type Config struct {
	MinDetectionRate  float64
	OutlierPnLPercent float64
	OutlierPnLSOL     float64
}

// Assessor computes quality reports over ledger output.
type Assessor struct {
	cfg Config
}

// New creates an Assessor, applying defaults for unset thresholds.
func New(cfg Config) *Assessor {
	if cfg.MinDetectionRate <= 0 {
		cfg.MinDetectionRate = DefaultMinDetectionRate
	}
	if cfg.OutlierPnLPercent <= 0 {
		cfg.OutlierPnLPercent = DefaultOutlierPnLPercent
	}
	if cfg.OutlierPnLSOL <= 0 {
		cfg.OutlierPnLSOL = DefaultOutlierPnLSOL
	}
	return &Assessor{cfg: cfg}
}

// Assess scores one ledger run. transactionCount is the number of raw
// transactions examined, swapCount the number that classified as swaps.
func (a *Assessor) Assess(transactionCount, swapCount int, result *domain.LedgerResult) domain.QualityReport {
	report := domain.QualityReport{
		ClassificationScore: 100,
		LedgerScore:         100,
		CompletenessScore:   100,
	}
	if result == nil {
		report.Confidence = domain.ConfidenceLow
		report.Score = 0
		return report
	}

	detectionPenalty := a.assessDetection(transactionCount, swapCount, &report)
	oversellPenalty := a.assessOversells(result, &report)
	zeroProfitPenalty := a.assessZeroProfit(result, &report)
	outlierPenalty := a.assessOutliers(result, &report)

	report.Score = clamp(100 - detectionPenalty - oversellPenalty - zeroProfitPenalty - outlierPenalty)
	report.ClassificationScore = clamp(100 - detectionPenalty*(100/detectionWeight))
	report.LedgerScore = clamp(100 - (oversellPenalty+zeroProfitPenalty)*(100/(oversellWeight+zeroProfitWeight)))
	report.CompletenessScore = clamp(100 - (zeroProfitPenalty*(100/zeroProfitWeight)+detectionPenalty*(100/detectionWeight))/2)

	report.Confidence = confidenceFor(report.Score, a.hasErrorCondition(result))
	return report
}

// assessDetection penalizes a very low swap detection rate: either the
// wallet barely trades, or the classifier is missing swaps.
func (a *Assessor) assessDetection(transactionCount, swapCount int, report *domain.QualityReport) float64 {
	if transactionCount == 0 {
		report.Issues = append(report.Issues, domain.QualityIssue{
			Code:     "NO_TRANSACTIONS",
			Severity: domain.SeverityError,
			Message:  "no transactions were examined",
		})
		return detectionWeight
	}

	rate := float64(swapCount) / float64(transactionCount)
	if rate >= a.cfg.MinDetectionRate {
		return 0
	}

	report.Issues = append(report.Issues, domain.QualityIssue{
		Code:     "LOW_DETECTION_RATE",
		Severity: domain.SeverityWarning,
		Message:  fmt.Sprintf("only %d of %d transactions classified as swaps (%.1f%%)", swapCount, transactionCount, rate*100),
	})
	// Scale linearly: rate 0 costs the full weight.
	return detectionWeight * (1 - rate/a.cfg.MinDetectionRate)
}

func (a *Assessor) assessOversells(result *domain.LedgerResult, report *domain.QualityReport) float64 {
	if len(result.ClosedTrades) == 0 || result.Summary.OversellCount == 0 {
		return 0
	}

	ratio := float64(result.Summary.OversellCount) / float64(len(result.ClosedTrades))
	report.Issues = append(report.Issues, domain.QualityIssue{
		Code:     "OVERSELL_RATIO",
		Severity: domain.SeverityWarning,
		Message:  fmt.Sprintf("%d oversells across %d closed trades: more sold than recorded bought", result.Summary.OversellCount, len(result.ClosedTrades)),
	})
	return oversellWeight * math.Min(ratio*4, 1)
}

func (a *Assessor) assessZeroProfit(result *domain.LedgerResult, report *domain.QualityReport) float64 {
	if len(result.ClosedTrades) == 0 {
		return 0
	}

	zeroCost := 0
	for _, trade := range result.ClosedTrades {
		if trade.ZeroCostBasis {
			zeroCost++
		}
	}
	if zeroCost == 0 {
		return 0
	}

	ratio := float64(zeroCost) / float64(len(result.ClosedTrades))
	report.Issues = append(report.Issues, domain.QualityIssue{
		Code:     "ZERO_COST_BASIS_RATIO",
		Severity: domain.SeverityWarning,
		Message:  fmt.Sprintf("%d of %d closed trades have no cost basis (airdrops or missing history)", zeroCost, len(result.ClosedTrades)),
	})
	return zeroProfitWeight * math.Min(ratio*2, 1)
}

func (a *Assessor) assessOutliers(result *domain.LedgerResult, report *domain.QualityReport) float64 {
	outliers := 0
	for _, trade := range result.ClosedTrades {
		if trade.PnLPercent != nil && math.Abs(*trade.PnLPercent) > a.cfg.OutlierPnLPercent {
			outliers++
			continue
		}
		if math.Abs(trade.RealizedPnL) > a.cfg.OutlierPnLSOL {
			outliers++
		}
	}
	if outliers == 0 {
		return 0
	}

	report.Issues = append(report.Issues, domain.QualityIssue{
		Code:     "EXTREME_OUTLIERS",
		Severity: domain.SeverityWarning,
		Message:  fmt.Sprintf("%d trades have extreme PnL values, data may be misclassified", outliers),
	})
	ratio := float64(outliers) / float64(len(result.ClosedTrades))
	return outlierWeight * math.Min(ratio*5, 1)
}

// hasErrorCondition reports whether any data-integrity signal was seen.
func (a *Assessor) hasErrorCondition(result *domain.LedgerResult) bool {
	return result.Summary.OversellCount > 0 || len(result.Summary.Diagnostics) > 0
}

// confidenceFor maps a score to a confidence level. Any detected
// oversell or invariant repair caps the level at MEDIUM regardless of
// score: a high-scoring run is downgraded, while a low-scoring run
// stays LOW rather than being lifted to MEDIUM.
func confidenceFor(score float64, errorCondition bool) string {
	switch {
	case score > 80:
		if errorCondition {
			return domain.ConfidenceMedium
		}
		return domain.ConfidenceHigh
	case score >= 60:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
