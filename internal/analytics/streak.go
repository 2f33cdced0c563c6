package analytics

import "tradelog/internal/models"

// Streaks holds the win/loss streak figures over a trade collection.
// Best is the longest run of consecutive wins (positive), Worst the
// longest run of consecutive losses (negative), Current the streak in
// force after the chronologically last closed trade.
type Streaks struct {
	Best    int `json:"best_streak"`
	Worst   int `json:"worst_streak"`
	Current int `json:"current_streak"`
}

// StreakAnalysis scans closed trades in exit-date order maintaining a
// signed run counter. A winning trade extends a positive run or starts one
// at +1, a losing trade extends a negative run or starts one at -1. A
// trade with exactly zero P&L neither extends nor resets the run; it
// passes through leaving the counter untouched.
func StreakAnalysis(trades []models.Trade) Streaks {
	closed := closedTrades(trades)
	sortByExitAsc(closed)

	var s Streaks
	run := 0
	for i := range closed {
		pl := profitLoss(&closed[i])
		switch {
		case pl > 0:
			if run > 0 {
				run++
			} else {
				run = 1
			}
			if run > s.Best {
				s.Best = run
			}
		case pl < 0:
			if run < 0 {
				run--
			} else {
				run = -1
			}
			if run < s.Worst {
				s.Worst = run
			}
		}
	}
	s.Current = run
	return s
}
