package reporting

import (
	"fmt"
	"strings"
)

// RenderCSV renders closed trades as CSV string.
func RenderCSV(trades []ClosedTradeRow) string {
	var sb strings.Builder

	// Header
	sb.WriteString("asset,quantity,cost_basis,proceeds,realized_pnl,pnl_percent,")
	sb.WriteString("buy_timestamp,sell_timestamp,holding_duration_sec,signature,zero_cost_basis\n")

	// Rows
	for _, t := range trades {
		pct := ""
		if t.PnLPercent != nil {
			pct = fmt.Sprintf("%.6f", *t.PnLPercent)
		}
		sb.WriteString(fmt.Sprintf("%s,%.6f,%.8f,%.8f,%.8f,%s,%d,%d,%d,%s,%t\n",
			t.Asset,
			t.Quantity,
			t.CostBasis,
			t.Proceeds,
			t.RealizedPnL,
			pct,
			t.BuyTimestamp,
			t.SellTimestamp,
			t.HoldingDurationSec,
			t.Signature,
			t.ZeroCostBasis,
		))
	}

	return sb.String()
}

// RenderHoldingsCSV renders open holdings as CSV string.
func RenderHoldingsCSV(holdings []HoldingRow) string {
	var sb strings.Builder

	sb.WriteString("asset,lot_count,total_quantity,average_cost_per_unit\n")

	for _, h := range holdings {
		sb.WriteString(fmt.Sprintf("%s,%d,%.6f,%.8f\n",
			h.Asset,
			h.LotCount,
			h.TotalQuantity,
			h.AverageCostPerUnit,
		))
	}

	return sb.String()
}
