package analytics

import (
	"strings"

	"tradelog/internal/models"
)

// GroupStats is a performance summary restricted to the trades sharing one
// categorical key.
type GroupStats struct {
	Trades            int     `json:"trades"`
	ClosedTrades      int     `json:"closed_trades"`
	Wins              int     `json:"wins"`
	Losses            int     `json:"losses"`
	WinRate           float64 `json:"win_rate"`
	NetProfit         float64 `json:"net_profit"`
	ProfitFactor      float64 `json:"profit_factor"`
	AverageRiskReward float64 `json:"average_risk_reward"`
}

// groupStats applies the summary formulas to one subset.
func groupStats(trades []models.Trade) GroupStats {
	g := GroupStats{Trades: len(trades)}

	var grossProfit, grossLoss, sumRR float64
	for i := range trades {
		t := &trades[i]
		if !t.IsClosed() {
			continue
		}
		g.ClosedTrades++
		pl := profitLoss(t)
		g.NetProfit += pl
		sumRR += riskReward(t)
		switch {
		case pl > 0:
			g.Wins++
			grossProfit += pl
		case pl < 0:
			g.Losses++
			grossLoss += -pl
		}
	}

	if g.ClosedTrades > 0 {
		g.WinRate = float64(g.Wins) / float64(g.ClosedTrades) * 100
		g.AverageRiskReward = sumRR / float64(g.ClosedTrades)
	}
	if grossLoss > 0 {
		g.ProfitFactor = grossProfit / grossLoss
	}
	return g
}

// ByAssetType partitions trades across the full asset type enumeration.
// Asset types with no trades still appear, with zero counts.
func ByAssetType(trades []models.Trade) map[models.AssetType]GroupStats {
	buckets := make(map[models.AssetType][]models.Trade, len(models.AssetTypes))
	for _, at := range models.AssetTypes {
		buckets[at] = nil
	}
	for _, t := range trades {
		if _, ok := buckets[t.AssetType]; ok {
			buckets[t.AssetType] = append(buckets[t.AssetType], t)
		}
	}

	out := make(map[models.AssetType]GroupStats, len(buckets))
	for at, subset := range buckets {
		out[at] = groupStats(subset)
	}
	return out
}

// ByStrategy partitions trades by strategy label. Only values actually
// present are reported; trades with a blank strategy are skipped.
func ByStrategy(trades []models.Trade) map[string]GroupStats {
	return byLabel(trades, func(t *models.Trade) string { return t.Strategy })
}

// ByEmotionalState partitions trades by recorded emotional state. Only
// values actually present are reported; blank entries are skipped.
func ByEmotionalState(trades []models.Trade) map[string]GroupStats {
	return byLabel(trades, func(t *models.Trade) string { return t.EmotionalState })
}

func byLabel(trades []models.Trade, key func(*models.Trade) string) map[string]GroupStats {
	buckets := make(map[string][]models.Trade)
	for i := range trades {
		label := strings.TrimSpace(key(&trades[i]))
		if label == "" {
			continue
		}
		buckets[label] = append(buckets[label], trades[i])
	}

	out := make(map[string]GroupStats, len(buckets))
	for label, subset := range buckets {
		out[label] = groupStats(subset)
	}
	return out
}

// MonthStats is the performance of the closed trades exiting in one
// calendar month.
type MonthStats struct {
	NetProfit    float64 `json:"net_profit"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	WinRate      float64 `json:"win_rate"`
	ProfitFactor float64 `json:"profit_factor"`
}

// Monthly groups closed trades by the year-month of their exit date
// (keys like "2026-03") and computes per-month totals.
func Monthly(trades []models.Trade) map[string]MonthStats {
	closed := closedTrades(trades)

	type acc struct {
		net, grossProfit, grossLoss float64
		wins, losses, n             int
	}
	months := make(map[string]*acc)
	for i := range closed {
		t := &closed[i]
		key := t.ExitDate.Format("2006-01")
		a := months[key]
		if a == nil {
			a = &acc{}
			months[key] = a
		}
		pl := profitLoss(t)
		a.net += pl
		a.n++
		switch {
		case pl > 0:
			a.wins++
			a.grossProfit += pl
		case pl < 0:
			a.losses++
			a.grossLoss += -pl
		}
	}

	out := make(map[string]MonthStats, len(months))
	for key, a := range months {
		m := MonthStats{NetProfit: a.net, Wins: a.wins, Losses: a.losses}
		if a.n > 0 {
			m.WinRate = float64(a.wins) / float64(a.n) * 100
		}
		if a.grossLoss > 0 {
			m.ProfitFactor = a.grossProfit / a.grossLoss
		}
		out[key] = m
	}
	return out
}
