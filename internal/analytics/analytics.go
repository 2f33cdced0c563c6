// Package analytics reduces a collection of trades into performance
// summaries, grouped breakdowns, and time series.
//
// Every function here is a pure computation over the supplied slice: the
// package never reaches into the store, never caches results, and never
// mutates its input (slices are copied before sorting). Ratio and
// percentage math resolves degenerate denominators to 0 rather than
// producing NaN or infinity.
package analytics

import (
	"sort"

	"tradelog/internal/calc"
	"tradelog/internal/models"
)

// closedTrades returns a copy of the trades that count toward win/loss
// statistics: status closed with a recorded exit price.
func closedTrades(trades []models.Trade) []models.Trade {
	out := make([]models.Trade, 0, len(trades))
	for _, t := range trades {
		if t.IsClosed() {
			out = append(out, t)
		}
	}
	return out
}

// sortByExitAsc sorts trades by exit date ascending, in place. Callers pass
// defensive copies so the caller's view of trade order is never disturbed.
func sortByExitAsc(trades []models.Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].ExitDate.Before(trades[j].ExitDate)
	})
}

// sortByEntryAsc sorts trades by entry date ascending, in place.
func sortByEntryAsc(trades []models.Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].EntryDate.Before(trades[j].EntryDate)
	})
}

// profitLoss recomputes P&L from source fields. Aggregations never trust a
// possibly stale stored derived value.
func profitLoss(t *models.Trade) float64 {
	return calc.ProfitLoss(t)
}

// riskReward recomputes the risk/reward ratio from source fields.
func riskReward(t *models.Trade) float64 {
	return calc.RiskRewardRatio(t)
}
