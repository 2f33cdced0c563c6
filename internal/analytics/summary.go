package analytics

import "tradelog/internal/models"

// Summary is a read-only snapshot of journal performance at a point in
// time. It is always freshly derived and never persisted.
type Summary struct {
	TotalTrades     int `json:"total_trades"`
	OpenTrades      int `json:"open_trades"`
	ClosedTrades    int `json:"closed_trades"`
	CancelledTrades int `json:"cancelled_trades"`

	WinningTrades   int     `json:"winning_trades"`
	LosingTrades    int     `json:"losing_trades"`
	BreakEvenTrades int     `json:"break_even_trades"`
	WinRate         float64 `json:"win_rate"`

	TotalProfit float64 `json:"total_profit"`
	TotalLoss   float64 `json:"total_loss"`
	NetProfit   float64 `json:"net_profit"`

	// AverageLoss and LargestLoss carry the sign of the underlying P&L
	// (negative); TotalLoss is a magnitude so that NetProfit is
	// TotalProfit - TotalLoss.
	ProfitFactor float64 `json:"profit_factor"`
	AverageWin   float64 `json:"average_win"`
	AverageLoss  float64 `json:"average_loss"`
	LargestWin   float64 `json:"largest_win"`
	LargestLoss  float64 `json:"largest_loss"`

	AverageRiskReward float64 `json:"average_risk_reward"`
	Expectancy        float64 `json:"expectancy"`

	BestStreak    int `json:"best_streak"`
	WorstStreak   int `json:"worst_streak"`
	CurrentStreak int `json:"current_streak"`

	MaxDrawdown        float64 `json:"max_drawdown"`
	MaxDrawdownPercent float64 `json:"max_drawdown_percent"`
}

// Summarize computes the full performance summary over the supplied
// trades. Only closed trades count toward win/loss and ratio statistics; a
// closed trade with exactly zero P&L counts toward the closed total but is
// neither a win nor a loss.
func Summarize(trades []models.Trade) Summary {
	s := Summary{TotalTrades: len(trades)}

	for i := range trades {
		switch trades[i].Status {
		case models.StatusOpen:
			s.OpenTrades++
		case models.StatusCancelled:
			s.CancelledTrades++
		}
	}

	closed := closedTrades(trades)
	s.ClosedTrades = len(closed)

	var sumRR, sumPL float64
	for i := range closed {
		t := &closed[i]
		pl := profitLoss(t)
		sumPL += pl
		sumRR += riskReward(t)

		switch {
		case pl > 0:
			s.WinningTrades++
			s.TotalProfit += pl
			if pl > s.LargestWin {
				s.LargestWin = pl
			}
		case pl < 0:
			s.LosingTrades++
			s.TotalLoss += -pl
			if pl < s.LargestLoss {
				s.LargestLoss = pl
			}
		default:
			s.BreakEvenTrades++
		}
	}

	s.NetProfit = s.TotalProfit - s.TotalLoss

	if s.ClosedTrades > 0 {
		s.WinRate = float64(s.WinningTrades) / float64(s.ClosedTrades) * 100
		s.AverageRiskReward = sumRR / float64(s.ClosedTrades)
		s.Expectancy = sumPL / float64(s.ClosedTrades)
	}
	if s.TotalLoss > 0 {
		s.ProfitFactor = s.TotalProfit / s.TotalLoss
	}
	if s.WinningTrades > 0 {
		s.AverageWin = s.TotalProfit / float64(s.WinningTrades)
	}
	if s.LosingTrades > 0 {
		s.AverageLoss = -s.TotalLoss / float64(s.LosingTrades)
	}

	streaks := StreakAnalysis(trades)
	s.BestStreak = streaks.Best
	s.WorstStreak = streaks.Worst
	s.CurrentStreak = streaks.Current

	dd := MaxDrawdown(trades)
	s.MaxDrawdown = dd.MaxAbsolute
	s.MaxDrawdownPercent = dd.MaxPercent

	return s
}
