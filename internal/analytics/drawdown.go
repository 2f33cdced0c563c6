package analytics

import "tradelog/internal/models"

// Drawdown holds the maximum peak-to-trough decline of cumulative P&L,
// both as an absolute amount and as a percentage of the peak. Both are
// non-negative magnitudes.
type Drawdown struct {
	MaxAbsolute float64 `json:"max_drawdown"`
	MaxPercent  float64 `json:"max_drawdown_percent"`
}

// MaxDrawdown accumulates closed-trade P&L in exit-date order, tracking
// the running high-water mark. The drawdown at each step is peak minus
// running total; the percentage form divides by the peak and is skipped
// while the peak is not positive.
func MaxDrawdown(trades []models.Trade) Drawdown {
	closed := closedTrades(trades)
	sortByExitAsc(closed)

	var d Drawdown
	var running, peak float64
	for i := range closed {
		running += profitLoss(&closed[i])
		if running > peak {
			peak = running
		}
		dd := peak - running
		if dd > d.MaxAbsolute {
			d.MaxAbsolute = dd
		}
		if peak > 0 {
			if pct := dd / peak * 100; pct > d.MaxPercent {
				d.MaxPercent = pct
			}
		}
	}
	return d
}
