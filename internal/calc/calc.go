// Package calc computes the derived fields of a single trade.
//
// Every function is pure and total: degenerate inputs (missing exit, zero
// denominators) resolve to 0, never to NaN, infinity, or an error. Profit
// and loss dependent quantities are exactly 0 until a trade is closed with
// a recorded exit price.
package calc

import (
	"tradelog/internal/config"
	"tradelog/internal/models"
)

// ProfitLoss returns the realized profit or loss of a trade: the
// directional price difference times position size, minus commission.
// Returns 0 for trades that are not closed or have no exit price.
func ProfitLoss(t *models.Trade) float64 {
	if !t.IsClosed() {
		return 0
	}
	diff := t.ExitPrice - t.EntryPrice
	if t.Direction == models.Short {
		diff = t.EntryPrice - t.ExitPrice
	}
	return diff*t.PositionSize - t.Commission
}

// ProfitLossPercent returns the profit or loss relative to the entry value
// of the position, as a percentage. Returns 0 when the trade is not closed
// or the entry value is 0.
func ProfitLossPercent(t *models.Trade) float64 {
	if !t.IsClosed() {
		return 0
	}
	entryValue := t.EntryPrice * t.PositionSize
	if entryValue == 0 {
		return 0
	}
	return ProfitLoss(t) / entryValue * 100
}

// RiskAmount returns the amount at risk between entry and stop loss.
// Returns 0 when no stop loss is set. The raw directional distance is
// reported as computed; a stop on the wrong side of entry yields a negative
// value rather than a crash, validation is expected to reject such trades
// before they are stored.
func RiskAmount(t *models.Trade) float64 {
	if t.StopLoss == 0 {
		return 0
	}
	dist := t.EntryPrice - t.StopLoss
	if t.Direction == models.Short {
		dist = t.StopLoss - t.EntryPrice
	}
	return dist * t.PositionSize
}

// RewardAmount returns the potential reward between entry and take profit.
// Returns 0 when no take profit is set.
func RewardAmount(t *models.Trade) float64 {
	if t.TakeProfit == 0 {
		return 0
	}
	dist := t.TakeProfit - t.EntryPrice
	if t.Direction == models.Short {
		dist = t.EntryPrice - t.TakeProfit
	}
	return dist * t.PositionSize
}

// RiskRewardRatio returns reward divided by risk, or 0 when risk is 0.
func RiskRewardRatio(t *models.Trade) float64 {
	risk := RiskAmount(t)
	if risk == 0 {
		return 0
	}
	return RewardAmount(t) / risk
}

// RiskPercent returns the risk amount as a percentage of the account size.
// A trade without its own account size falls back to the configured
// default; a denominator that is still 0 yields 0.
func RiskPercent(t *models.Trade, journal config.JournalConfig) float64 {
	account := t.AccountSize
	if account == 0 {
		account = journal.DefaultAccountSize
	}
	if account == 0 {
		return 0
	}
	return RiskAmount(t) / account * 100
}

// Recompute refreshes all six derived fields from the trade's source
// fields. The store calls this on every create and update so persisted
// records never carry stale derived values; the six fields are always
// written together.
func Recompute(t *models.Trade, journal config.JournalConfig) {
	t.ProfitLoss = ProfitLoss(t)
	t.ProfitLossPercent = ProfitLossPercent(t)
	t.RiskAmount = RiskAmount(t)
	t.RewardAmount = RewardAmount(t)
	t.RiskRewardRatio = RiskRewardRatio(t)
	t.RiskPercent = RiskPercent(t, journal)
}
