package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tradelog/internal/config"
	"tradelog/internal/models"
)

func sizedSeries(sizes ...float64) []models.Trade {
	trades := series(make([]float64, len(sizes))...)
	for i := range trades {
		trades[i].PositionSize = sizes[i]
		trades[i].ExitPrice = 110
	}
	return trades
}

func TestSizingEmpty(t *testing.T) {
	s := PositionSizing(nil, config.JournalConfig{DefaultAccountSize: 10000, RiskPerTradePercent: 1})

	assert.Zero(t, s.AveragePositionSize)
	assert.Zero(t, s.ConsistencyScore)
	assert.Zero(t, s.RecommendedPositionSize)
}

func TestSizingUniformSizes(t *testing.T) {
	journal := config.JournalConfig{DefaultAccountSize: 10000, RiskPerTradePercent: 1}
	s := PositionSizing(sizedSeries(100, 100, 100), journal)

	assert.InDelta(t, 100, s.AveragePositionSize, 1e-9)
	assert.Zero(t, s.StdDevPositionSize)
	assert.InDelta(t, 100, s.ConsistencyScore, 1e-9, "uniform sizing scores a full 100")
	// 10000 * 1% / 100
	assert.InDelta(t, 1, s.RecommendedPositionSize, 1e-9)
}

func TestSizingPopulationStdDev(t *testing.T) {
	journal := config.JournalConfig{DefaultAccountSize: 10000, RiskPerTradePercent: 1}
	s := PositionSizing(sizedSeries(50, 150), journal)

	assert.InDelta(t, 100, s.AveragePositionSize, 1e-9)
	// Population form: sqrt(((50-100)^2 + (150-100)^2) / 2) = 50.
	assert.InDelta(t, 50, s.StdDevPositionSize, 1e-9)
	assert.InDelta(t, 50, s.ConsistencyScore, 1e-9)
}

func TestSizingConsistencyFlooredAtZero(t *testing.T) {
	journal := config.JournalConfig{DefaultAccountSize: 10000, RiskPerTradePercent: 1}
	// Spread wider than the mean would push the score negative.
	s := PositionSizing(sizedSeries(1, 1, 1000), journal)

	assert.GreaterOrEqual(t, s.ConsistencyScore, 0.0)
}
