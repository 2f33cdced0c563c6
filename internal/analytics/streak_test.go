package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tradelog/internal/models"
)

func TestStreaksEmpty(t *testing.T) {
	s := StreakAnalysis(nil)
	assert.Zero(t, s.Best)
	assert.Zero(t, s.Worst)
	assert.Zero(t, s.Current)
}

func TestStreaksBasic(t *testing.T) {
	s := StreakAnalysis(series(10, 10, -5, 10))

	assert.Equal(t, 2, s.Best)
	assert.Equal(t, -1, s.Worst)
	assert.Equal(t, 1, s.Current)
}

func TestStreaksLossRun(t *testing.T) {
	s := StreakAnalysis(series(-5, -5, -5, 10, -5))

	assert.Equal(t, 1, s.Best)
	assert.Equal(t, -3, s.Worst)
	assert.Equal(t, -1, s.Current)
}

func TestStreaksZeroPnLPassesThrough(t *testing.T) {
	// The break-even trade neither extends nor resets the run.
	s := StreakAnalysis(series(10, 10, 0, 10))

	assert.Equal(t, 3, s.Best)
	assert.Zero(t, s.Worst)
	assert.Equal(t, 3, s.Current)
}

func TestStreaksAllZero(t *testing.T) {
	s := StreakAnalysis(series(0, 0, 0))
	assert.Zero(t, s.Best)
	assert.Zero(t, s.Worst)
	assert.Zero(t, s.Current)
}

func TestStreaksUseExitDateOrder(t *testing.T) {
	base := time.Date(2026, 2, 2, 16, 0, 0, 0, time.UTC)
	// Supplied out of order; chronologically the sequence is win, win, loss.
	trades := []models.Trade{
		closedAt(-5, base.AddDate(0, 0, 2)),
		closedAt(10, base),
		closedAt(10, base.AddDate(0, 0, 1)),
	}

	s := StreakAnalysis(trades)
	assert.Equal(t, 2, s.Best)
	assert.Equal(t, -1, s.Current)
}

func TestStreaksIgnoreOpenTrades(t *testing.T) {
	trades := series(10, 10)
	trades = append(trades, models.Trade{Status: models.StatusOpen, Symbol: "OPEN"})

	s := StreakAnalysis(trades)
	assert.Equal(t, 2, s.Best)
	assert.Equal(t, 2, s.Current)
}
