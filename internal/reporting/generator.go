package reporting

import (
	"sort"
	"time"

	"solana-wallet-pnl/internal/domain"
)

// Generator produces reports from analysis results.
type Generator struct {
	now func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator() *Generator {
	return &Generator{
		now: func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate builds a complete report from one analysis result.
func (g *Generator) Generate(result *domain.AnalysisResult) *Report {
	return &Report{
		GeneratedAt:    g.now(),
		Wallet:         result.Wallet,
		Activity:       generateActivitySummary(result),
		Quality:        generateQualitySection(result),
		ClosedTrades:   generateClosedTradeRows(result.ClosedTrades),
		AssetBreakdown: generateAssetBreakdown(result.ClosedTrades),
		OpenHoldings:   generateHoldingRows(result.OpenHoldings),
	}
}

// generateActivitySummary computes the activity summary from the result.
func generateActivitySummary(result *domain.AnalysisResult) ActivitySummary {
	summary := ActivitySummary{
		Transactions:  result.Transactions,
		Swaps:         len(result.Swaps),
		BuyCount:      result.Summary.BuyCount,
		SellCount:     result.Summary.SellCount,
		OversellCount: result.Summary.OversellCount,
		TotalBuySOL:   result.Summary.TotalBuySOL,
		TotalSellSOL:  result.Summary.TotalSellSOL,
		NetSOL:        result.Summary.NetSOL,
	}

	if len(result.Swaps) > 0 {
		summary.DateRangeStart = result.Swaps[0].Timestamp
		summary.DateRangeEnd = result.Swaps[0].Timestamp
		for _, s := range result.Swaps {
			if s.Timestamp < summary.DateRangeStart {
				summary.DateRangeStart = s.Timestamp
			}
			if s.Timestamp > summary.DateRangeEnd {
				summary.DateRangeEnd = s.Timestamp
			}
		}
	}

	return summary
}

// generateQualitySection copies the quality report into presentation rows.
func generateQualitySection(result *domain.AnalysisResult) QualitySection {
	section := QualitySection{
		Score:               result.Quality.Score,
		ClassificationScore: result.Quality.ClassificationScore,
		LedgerScore:         result.Quality.LedgerScore,
		CompletenessScore:   result.Quality.CompletenessScore,
		Confidence:          result.Quality.Confidence,
		Diagnostics:         append([]string(nil), result.Summary.Diagnostics...),
	}

	for _, issue := range result.Quality.Issues {
		section.Issues = append(section.Issues, QualityIssueRow{
			Code:     issue.Code,
			Severity: issue.Severity,
			Message:  issue.Message,
		})
	}

	return section
}

// generateClosedTradeRows builds sorted realized-trade rows.
func generateClosedTradeRows(trades []domain.ClosedTrade) []ClosedTradeRow {
	rows := make([]ClosedTradeRow, len(trades))
	for i, t := range trades {
		rows[i] = ClosedTradeRow{
			Asset:              t.Asset,
			Quantity:           t.Quantity,
			CostBasis:          t.CostBasis,
			Proceeds:           t.Proceeds,
			RealizedPnL:        t.RealizedPnL,
			PnLPercent:         t.PnLPercent,
			BuyTimestamp:       t.BuyTimestamp,
			SellTimestamp:      t.SellTimestamp,
			HoldingDurationSec: t.HoldingDurationSec,
			Signature:          t.Signature,
			ZeroCostBasis:      t.ZeroCostBasis,
		}
	}

	sortClosedTradeRows(rows)
	return rows
}

// generateAssetBreakdown aggregates realized trades per asset.
func generateAssetBreakdown(trades []domain.ClosedTrade) []AssetBreakdownRow {
	byAsset := make(map[string]*AssetBreakdownRow)
	for _, t := range trades {
		row := byAsset[t.Asset]
		if row == nil {
			row = &AssetBreakdownRow{Asset: t.Asset}
			byAsset[t.Asset] = row
		}
		row.TradeCount++
		if t.RealizedPnL > 0 {
			row.WinCount++
		}
		row.TotalCost += t.CostBasis
		row.TotalProceeds += t.Proceeds
		row.RealizedPnL += t.RealizedPnL
	}

	rows := make([]AssetBreakdownRow, 0, len(byAsset))
	for _, row := range byAsset {
		rows = append(rows, *row)
	}

	// Sort by realized_pnl DESC, asset ASC as tie-break.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].RealizedPnL != rows[j].RealizedPnL {
			return rows[i].RealizedPnL > rows[j].RealizedPnL
		}
		return rows[i].Asset < rows[j].Asset
	})

	return rows
}

// generateHoldingRows builds sorted open-position rows.
func generateHoldingRows(holdings []domain.Holding) []HoldingRow {
	rows := make([]HoldingRow, len(holdings))
	for i, h := range holdings {
		rows[i] = HoldingRow{
			Asset:              h.Asset,
			LotCount:           len(h.Lots),
			TotalQuantity:      h.TotalQuantity,
			AverageCostPerUnit: h.AverageCostPerUnit,
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Asset < rows[j].Asset
	})

	return rows
}

// sortClosedTradeRows sorts rows by (sell_timestamp, asset, signature).
func sortClosedTradeRows(rows []ClosedTradeRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].SellTimestamp != rows[j].SellTimestamp {
			return rows[i].SellTimestamp < rows[j].SellTimestamp
		}
		if rows[i].Asset != rows[j].Asset {
			return rows[i].Asset < rows[j].Asset
		}
		return rows[i].Signature < rows[j].Signature
	})
}
