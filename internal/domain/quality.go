package domain

// Confidence levels for a quality report.
const (
	ConfidenceHigh   = "HIGH"
	ConfidenceMedium = "MEDIUM"
	ConfidenceLow    = "LOW"
)

// Issue severities.
const (
	SeverityInfo    = "INFO"
	SeverityWarning = "WARNING"
	SeverityError   = "ERROR"
)

// QualityIssue is one flagged data-quality condition.
type QualityIssue struct {
	Code     string // stable machine-readable code, e.g. "OVERSELL_RATIO"
	Severity string
	Message  string
}

// QualityReport scores the trustworthiness of one analysis run.
// Diagnostics only; it never feeds back into ledger results.
type QualityReport struct {
	Score               float64 // overall, clamped to [0, 100]
	ClassificationScore float64 // swap detection confidence
	LedgerScore         float64 // ledger integrity
	CompletenessScore   float64 // data completeness
	Issues              []QualityIssue
	Confidence          string // HIGH | MEDIUM | LOW
}
