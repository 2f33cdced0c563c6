package analytics

import (
	"math"

	"tradelog/internal/config"
	"tradelog/internal/models"
)

// Sizing describes how consistently positions are sized and what size the
// configured risk budget suggests.
type Sizing struct {
	AveragePositionSize float64 `json:"average_position_size"`
	StdDevPositionSize  float64 `json:"std_dev_position_size"`

	// ConsistencyScore is 100 for perfectly uniform sizing, falling as
	// the relative spread grows, floored at 0.
	ConsistencyScore float64 `json:"consistency_score"`

	// RecommendedPositionSize derives from the configured account size
	// and risk-per-trade percentage relative to the observed average.
	RecommendedPositionSize float64 `json:"recommended_position_size"`
}

// PositionSizing computes mean and population standard deviation of
// position size across closed trades. Every ratio resolves to 0 when its
// denominator is 0.
func PositionSizing(trades []models.Trade, journal config.JournalConfig) Sizing {
	closed := closedTrades(trades)

	var s Sizing
	if len(closed) == 0 {
		return s
	}

	var sum float64
	for i := range closed {
		sum += closed[i].PositionSize
	}
	mean := sum / float64(len(closed))
	s.AveragePositionSize = mean

	var sqDiff float64
	for i := range closed {
		d := closed[i].PositionSize - mean
		sqDiff += d * d
	}
	s.StdDevPositionSize = math.Sqrt(sqDiff / float64(len(closed)))

	if mean > 0 {
		s.ConsistencyScore = math.Max(0, 100-s.StdDevPositionSize/mean*100)
		s.RecommendedPositionSize = journal.DefaultAccountSize * journal.RiskPerTradePercent / 100 / mean
	}

	return s
}
