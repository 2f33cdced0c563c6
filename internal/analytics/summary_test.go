package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tradelog/internal/models"
)

// closedAt builds a closed long trade with the given net P&L, exiting at
// the given time. Entry is pinned at 100 with unit size so exit = 100 + pl.
func closedAt(pl float64, exit time.Time) models.Trade {
	return models.Trade{
		AssetType:    models.AssetStocks,
		Symbol:       "TEST",
		Direction:    models.Long,
		Status:       models.StatusClosed,
		PositionSize: 1,
		EntryPrice:   100,
		EntryDate:    exit.Add(-24 * time.Hour),
		ExitPrice:    100 + pl,
		ExitDate:     exit,
	}
}

// series builds a chronological run of closed trades, one day apart, with
// the given P&L sequence.
func series(pls ...float64) []models.Trade {
	base := time.Date(2026, 1, 5, 16, 0, 0, 0, time.UTC)
	trades := make([]models.Trade, len(pls))
	for i, pl := range pls {
		trades[i] = closedAt(pl, base.AddDate(0, 0, i))
	}
	return trades
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)

	assert.Zero(t, s.TotalTrades)
	assert.Zero(t, s.WinRate)
	assert.Zero(t, s.ProfitFactor)
	assert.Zero(t, s.Expectancy)
	assert.Zero(t, s.MaxDrawdown)
}

func TestSummarizeCounts(t *testing.T) {
	trades := series(520, 300, -47)
	trades = append(trades, models.Trade{Status: models.StatusOpen, Symbol: "OPEN"})
	trades = append(trades, models.Trade{Status: models.StatusCancelled, Symbol: "CXL"})

	s := Summarize(trades)

	assert.Equal(t, 5, s.TotalTrades)
	assert.Equal(t, 1, s.OpenTrades)
	assert.Equal(t, 1, s.CancelledTrades)
	assert.Equal(t, 3, s.ClosedTrades)
	assert.Equal(t, 2, s.WinningTrades)
	assert.Equal(t, 1, s.LosingTrades)
}

func TestSummarizeWinRateAndProfitFactor(t *testing.T) {
	s := Summarize(series(520, 300, -47))

	// 2 wins of 3 closed.
	assert.InDelta(t, 66.666, s.WinRate, 0.01)
	assert.InDelta(t, 820, s.TotalProfit, 1e-9)
	assert.InDelta(t, 47, s.TotalLoss, 1e-9)
	assert.InDelta(t, 773, s.NetProfit, 1e-9)
	// 820 / 47
	assert.InDelta(t, 17.446, s.ProfitFactor, 0.001)
	assert.InDelta(t, 773.0/3, s.Expectancy, 1e-9)
}

func TestSummarizeBreakEvenCountsInDenominatorOnly(t *testing.T) {
	s := Summarize(series(100, 0, -50, 0))

	assert.Equal(t, 4, s.ClosedTrades)
	assert.Equal(t, 1, s.WinningTrades)
	assert.Equal(t, 1, s.LosingTrades)
	assert.Equal(t, 2, s.BreakEvenTrades)
	assert.InDelta(t, 25.0, s.WinRate, 1e-9)
}

func TestSummarizeLossSigns(t *testing.T) {
	s := Summarize(series(200, -80, -120))

	assert.InDelta(t, 200, s.TotalProfit, 1e-9)
	assert.InDelta(t, 200, s.TotalLoss, 1e-9, "total loss is a positive magnitude")
	assert.InDelta(t, 0, s.NetProfit, 1e-9)
	assert.InDelta(t, -100, s.AverageLoss, 1e-9, "average loss keeps the negative sign")
	assert.InDelta(t, -120, s.LargestLoss, 1e-9, "largest loss is the most negative P&L")
	assert.InDelta(t, 200, s.LargestWin, 1e-9)
	assert.InDelta(t, 200, s.AverageWin, 1e-9)
}

func TestSummarizeZeroLossGuards(t *testing.T) {
	s := Summarize(series(100, 50))

	assert.Zero(t, s.ProfitFactor, "no losses resolves to 0, never infinity")
	assert.Zero(t, s.AverageLoss)
	assert.Zero(t, s.LargestLoss)
}

func TestSummarizeIgnoresStoredDerivedFields(t *testing.T) {
	trades := series(520)
	// A stale persisted value must not leak into the aggregate.
	trades[0].ProfitLoss = -99999

	s := Summarize(trades)
	assert.InDelta(t, 520, s.NetProfit, 1e-9)
}

func TestSummarizeOrderIndependent(t *testing.T) {
	trades := series(520, -47, 300, -120, 75)
	shuffled := []models.Trade{trades[3], trades[0], trades[4], trades[2], trades[1]}

	assert.Equal(t, Summarize(trades), Summarize(shuffled))
}

func TestSummarizeDoesNotMutateInput(t *testing.T) {
	trades := series(5, -3, 8, -1)
	before := make([]models.Trade, len(trades))
	copy(before, trades)

	Summarize(trades)

	assert.Equal(t, before, trades, "aggregation sorts defensive copies only")
}
