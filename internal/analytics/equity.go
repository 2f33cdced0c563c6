package analytics

import (
	"time"

	"tradelog/internal/models"
)

// EquityPoint is one step of the cumulative equity series.
type EquityPoint struct {
	Date       time.Time `json:"date"`
	Equity     float64   `json:"equity"`
	TradeID    string    `json:"trade_id,omitempty"`
	Symbol     string    `json:"symbol,omitempty"`
	ProfitLoss float64   `json:"profit_loss"`
}

// EquityCurve produces the running-equity series over closed trades in
// exit-date order, starting from the supplied initial capital. With no
// closed trades the curve is a single point at the current moment equal to
// the initial capital, so a chart always has at least one point.
func EquityCurve(trades []models.Trade, initialCapital float64) []EquityPoint {
	closed := closedTrades(trades)
	sortByExitAsc(closed)

	if len(closed) == 0 {
		return []EquityPoint{{Date: time.Now(), Equity: initialCapital}}
	}

	points := make([]EquityPoint, 0, len(closed))
	equity := initialCapital
	for i := range closed {
		t := &closed[i]
		pl := profitLoss(t)
		equity += pl
		points = append(points, EquityPoint{
			Date:       t.ExitDate,
			Equity:     equity,
			TradeID:    t.ID,
			Symbol:     t.Symbol,
			ProfitLoss: pl,
		})
	}
	return points
}
