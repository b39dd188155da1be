package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Wallet PnL Report\n\n")
	sb.WriteString(fmt.Sprintf("Wallet: `%s`\n\n", r.Wallet))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))

	// Activity Summary
	sb.WriteString("## Activity Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Transactions | %d |\n", r.Activity.Transactions))
	sb.WriteString(fmt.Sprintf("| Swaps | %d |\n", r.Activity.Swaps))
	sb.WriteString(fmt.Sprintf("| Buys | %d |\n", r.Activity.BuyCount))
	sb.WriteString(fmt.Sprintf("| Sells | %d |\n", r.Activity.SellCount))
	sb.WriteString(fmt.Sprintf("| Oversells | %d |\n", r.Activity.OversellCount))
	sb.WriteString(fmt.Sprintf("| Total Buy (SOL) | %.6f |\n", r.Activity.TotalBuySOL))
	sb.WriteString(fmt.Sprintf("| Total Sell (SOL) | %.6f |\n", r.Activity.TotalSellSOL))
	sb.WriteString(fmt.Sprintf("| Net (SOL) | %.6f |\n", r.Activity.NetSOL))
	sb.WriteString(fmt.Sprintf("| Date Range Start | %s |\n", formatUnix(r.Activity.DateRangeStart)))
	sb.WriteString(fmt.Sprintf("| Date Range End | %s |\n", formatUnix(r.Activity.DateRangeEnd)))
	sb.WriteString("\n")

	// Data Quality
	sb.WriteString("## Data Quality\n\n")
	sb.WriteString(fmt.Sprintf("Score: **%.1f / 100** | Confidence: **%s**\n\n", r.Quality.Score, r.Quality.Confidence))
	sb.WriteString("| Component | Score |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Classification | %.1f |\n", r.Quality.ClassificationScore))
	sb.WriteString(fmt.Sprintf("| Ledger | %.1f |\n", r.Quality.LedgerScore))
	sb.WriteString(fmt.Sprintf("| Completeness | %.1f |\n", r.Quality.CompletenessScore))
	sb.WriteString("\n")

	if len(r.Quality.Issues) > 0 {
		sb.WriteString("### Issues\n\n")
		sb.WriteString("| Code | Severity | Message |\n")
		sb.WriteString("|------|----------|--------|\n")
		for _, issue := range r.Quality.Issues {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n",
				issue.Code, issue.Severity, issue.Message))
		}
		sb.WriteString("\n")
	}

	if len(r.Quality.Diagnostics) > 0 {
		sb.WriteString("### Ledger Diagnostics\n\n")
		for _, d := range r.Quality.Diagnostics {
			sb.WriteString(fmt.Sprintf("- %s\n", d))
		}
		sb.WriteString("\n")
	}

	// Per-Asset Breakdown
	sb.WriteString("## Realized PnL by Asset\n\n")
	if len(r.AssetBreakdown) > 0 {
		sb.WriteString("| Asset | Trades | Wins | Cost (SOL) | Proceeds (SOL) | PnL (SOL) |\n")
		sb.WriteString("|-------|--------|------|------------|----------------|----------|\n")
		for _, a := range r.AssetBreakdown {
			sb.WriteString(fmt.Sprintf("| %s | %d | %d | %.6f | %.6f | %.6f |\n",
				a.Asset, a.TradeCount, a.WinCount,
				a.TotalCost, a.TotalProceeds, a.RealizedPnL))
		}
	} else {
		sb.WriteString("No realized trades.\n")
	}
	sb.WriteString("\n")

	// Closed Trades
	sb.WriteString("## Closed Trades\n\n")
	if len(r.ClosedTrades) > 0 {
		sb.WriteString("| Asset | Quantity | Cost (SOL) | Proceeds (SOL) | PnL (SOL) | PnL% | Held (s) | Signature |\n")
		sb.WriteString("|-------|----------|------------|----------------|-----------|------|----------|----------|\n")
		for _, t := range r.ClosedTrades {
			sb.WriteString(fmt.Sprintf("| %s | %.6f | %.6f | %.6f | %.6f | %s | %d | %s |\n",
				t.Asset, t.Quantity, t.CostBasis, t.Proceeds, t.RealizedPnL,
				formatPnLPercent(t.PnLPercent), t.HoldingDurationSec, t.Signature))
		}
	} else {
		sb.WriteString("No closed trades.\n")
	}
	sb.WriteString("\n")

	// Open Holdings
	sb.WriteString("## Open Holdings\n\n")
	if len(r.OpenHoldings) > 0 {
		sb.WriteString("| Asset | Lots | Quantity | Avg Cost (SOL) |\n")
		sb.WriteString("|-------|------|----------|----------------|\n")
		for _, h := range r.OpenHoldings {
			sb.WriteString(fmt.Sprintf("| %s | %d | %.6f | %.8f |\n",
				h.Asset, h.LotCount, h.TotalQuantity, h.AverageCostPerUnit))
		}
	} else {
		sb.WriteString("No open holdings.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

// formatPnLPercent renders a nullable percentage; zero-cost trades have none.
func formatPnLPercent(pct *float64) string {
	if pct == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *pct)
}

// formatUnix renders a Unix-seconds timestamp, "-" when unset.
func formatUnix(ts int64) string {
	if ts == 0 {
		return "-"
	}
	return time.Unix(ts, 0).UTC().Format(time.RFC3339)
}
