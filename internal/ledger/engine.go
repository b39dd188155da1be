// Package ledger implements the chronological FIFO cost-basis ledger.
// It consumes classified swaps in timestamp order, maintains per-asset
// purchase lots and emits realized closed trades and open holdings.
package ledger

import (
	"fmt"
	"log"
	"math"
	"sort"

	"solana-wallet-pnl/internal/domain"
)

// Default numeric tolerances.
const (
	// DefaultQuantityEpsilon absorbs float64 noise in quantity comparisons.
	DefaultQuantityEpsilon = 1e-6
	// DefaultCostEpsilon absorbs float64 noise in per-unit cost comparisons.
	DefaultCostEpsilon = 1e-8
	// DefaultOversellTolerance is the fraction by which a sell may exceed
	// recorded holdings before it is treated as an oversell.
	DefaultOversellTolerance = 0.005
)

// Config parameterizes the engine. Zero values fall back to defaults.
type Config struct {
	QuantityEpsilon   float64
	CostEpsilon       float64
	OversellTolerance float64
}

// Engine owns per-run mutable ledger state. Not safe for concurrent use;
// run one analysis per instance, or sequentially on the same instance.
// Process fully resets state, so reuse across runs cannot leak lots.
type Engine struct {
	cfg      Config
	holdings map[string]*domain.Holding
	closed   []domain.ClosedTrade
	summary  domain.LedgerSummary
}

// New creates an Engine, applying defaults for unset tolerances.
func New(cfg Config) *Engine {
	if cfg.QuantityEpsilon <= 0 {
		cfg.QuantityEpsilon = DefaultQuantityEpsilon
	}
	if cfg.CostEpsilon <= 0 {
		cfg.CostEpsilon = DefaultCostEpsilon
	}
	if cfg.OversellTolerance <= 0 {
		cfg.OversellTolerance = DefaultOversellTolerance
	}
	return &Engine{cfg: cfg}
}

// Process runs the full ledger over swaps and returns closed trades, open
// holdings and run counters. Input order does not matter: swaps are
// stable-sorted by timestamp, so equal timestamps keep input order and
// output is bit-for-bit identical across runs.
func (e *Engine) Process(swaps []domain.Swap) *domain.LedgerResult {
	e.reset()
	e.summary.TotalSwaps = len(swaps)

	ordered := make([]domain.Swap, len(swaps))
	copy(ordered, swaps)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp < ordered[j].Timestamp
	})

	for _, s := range ordered {
		switch s.Direction {
		case domain.DirectionBuy:
			e.applyBuy(s)
		case domain.DirectionSell:
			e.applySell(s)
		}
	}

	e.summary.NetSOL = e.summary.TotalSellSOL - e.summary.TotalBuySOL

	return &domain.LedgerResult{
		ClosedTrades: e.closed,
		OpenHoldings: e.collectHoldings(),
		Summary:      e.summary,
	}
}

func (e *Engine) reset() {
	e.holdings = make(map[string]*domain.Holding)
	e.closed = nil
	e.summary = domain.LedgerSummary{}
}

// applyBuy appends a new lot to the asset's holding.
func (e *Engine) applyBuy(s domain.Swap) {
	h := e.holdings[s.TradedAsset]
	if h == nil {
		h = &domain.Holding{Asset: s.TradedAsset}
		e.holdings[s.TradedAsset] = h
	}

	h.Lots = append(h.Lots, domain.Lot{
		Quantity:    s.TradedAmount,
		CostPerUnit: s.UnitPrice,
		Timestamp:   s.Timestamp,
		Signature:   s.Signature,
	})
	h.TotalQuantity += s.TradedAmount
	h.AverageCostPerUnit = averageCost(h.Lots, h.TotalQuantity)

	e.summary.BuyCount++
	e.summary.TotalBuySOL += s.BaseAmount
}

// applySell matches a sell against recorded lots oldest-first.
func (e *Engine) applySell(s domain.Swap) {
	e.summary.SellCount++
	e.summary.TotalSellSOL += s.BaseAmount

	h := e.holdings[s.TradedAsset]
	available := 0.0
	if h != nil {
		available = h.TotalQuantity
	}

	// Missing-buy sell: airdropped asset or data gap. Conservative
	// policy: realized PnL is zero, never proceeds-as-profit.
	if available < e.cfg.QuantityEpsilon {
		e.closed = append(e.closed, zeroCostTrade(s.TradedAsset, s.TradedAmount, s.BaseAmount, s.Timestamp, s.Signature))
		e.summary.ZeroProfitCount++
		return
	}

	requested := s.TradedAmount

	// Oversell: more sold than ever bought, beyond tolerance. The matched
	// fraction is processed normally; the remainder gets zero PnL.
	if requested > available*(1+e.cfg.OversellTolerance) {
		f := available / requested
		e.closed = append(e.closed, e.consume(h, available, s.BaseAmount*f, s.Timestamp, s.Signature))
		e.closed = append(e.closed, zeroCostTrade(s.TradedAsset, requested-available, s.BaseAmount*(1-f), s.Timestamp, s.Signature))
		e.summary.OversellCount++
		return
	}

	e.closed = append(e.closed, e.consume(h, requested, s.BaseAmount, s.Timestamp, s.Signature))
}

// consume walks purchase lots from the front, consuming quantity and
// accumulating cost basis. Fully consumed lots are removed; a partially
// consumed lot has its quantity reduced in place.
func (e *Engine) consume(h *domain.Holding, quantity, proceeds float64, sellTime int64, signature string) domain.ClosedTrade {
	remaining := quantity
	costBasis := 0.0
	buyTime := int64(0)

	for remaining > e.cfg.QuantityEpsilon && len(h.Lots) > 0 {
		lot := &h.Lots[0]
		if buyTime == 0 {
			buyTime = lot.Timestamp
		}

		consumed := math.Min(remaining, lot.Quantity)
		costBasis += consumed * lot.CostPerUnit
		remaining -= consumed
		lot.Quantity -= consumed

		if lot.Quantity < e.cfg.QuantityEpsilon {
			h.Lots = h.Lots[1:]
		}
	}

	h.TotalQuantity -= quantity
	if h.TotalQuantity < e.cfg.QuantityEpsilon {
		delete(e.holdings, h.Asset)
	} else {
		h.AverageCostPerUnit = averageCost(h.Lots, h.TotalQuantity)
	}

	trade := domain.ClosedTrade{
		Asset:         h.Asset,
		Quantity:      quantity,
		CostBasis:     costBasis,
		Proceeds:      proceeds,
		RealizedPnL:   proceeds - costBasis,
		BuyTimestamp:  buyTime,
		SellTimestamp: sellTime,
		Signature:     signature,
	}
	if buyTime > 0 {
		trade.HoldingDurationSec = sellTime - buyTime
	}
	if costBasis > e.cfg.CostEpsilon {
		pct := trade.RealizedPnL / costBasis * 100
		trade.PnLPercent = &pct
	}
	return trade
}

// zeroCostTrade builds the conservative record for quantity sold without
// any recorded purchase: zero cost basis and zero realized PnL.
func zeroCostTrade(asset string, quantity, proceeds float64, sellTime int64, signature string) domain.ClosedTrade {
	return domain.ClosedTrade{
		Asset:         asset,
		Quantity:      quantity,
		CostBasis:     0,
		Proceeds:      proceeds,
		RealizedPnL:   0,
		SellTimestamp: sellTime,
		Signature:     signature,
		ZeroCostBasis: true,
	}
}

// collectHoldings returns remaining holdings above the dust epsilon in
// deterministic asset order, re-verifying internal consistency first.
func (e *Engine) collectHoldings() []domain.Holding {
	assets := make([]string, 0, len(e.holdings))
	for asset := range e.holdings {
		assets = append(assets, asset)
	}
	sort.Strings(assets)

	var result []domain.Holding
	for _, asset := range assets {
		h := e.holdings[asset]
		e.verifyHolding(h)
		if h.TotalQuantity < e.cfg.QuantityEpsilon {
			continue
		}
		result = append(result, *h)
	}
	return result
}

// verifyHolding checks that lot quantities still sum to TotalQuantity and
// repairs any drift. Drift indicates a bookkeeping bug, not bad input, so
// it is corrected and reported rather than failed: downstream reporting
// should degrade gracefully.
func (e *Engine) verifyHolding(h *domain.Holding) {
	sum := 0.0
	for _, lot := range h.Lots {
		sum += lot.Quantity
	}
	if math.Abs(sum-h.TotalQuantity) > e.cfg.QuantityEpsilon {
		diag := fmt.Sprintf("holding %s: lot sum %.9f != total %.9f, corrected", h.Asset, sum, h.TotalQuantity)
		e.summary.Diagnostics = append(e.summary.Diagnostics, diag)
		log.Printf("[ledger] %s", diag)
		h.TotalQuantity = sum
	}
	h.AverageCostPerUnit = averageCost(h.Lots, h.TotalQuantity)
}

func averageCost(lots []domain.Lot, totalQuantity float64) float64 {
	if totalQuantity <= 0 {
		return 0
	}
	weighted := 0.0
	for _, lot := range lots {
		weighted += lot.Quantity * lot.CostPerUnit
	}
	return weighted / totalQuantity
}
