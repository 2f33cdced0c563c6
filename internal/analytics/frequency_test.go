package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tradelog/internal/models"
)

// enteredOn builds a closed winning trade entered at the given time.
func enteredOn(entry time.Time) models.Trade {
	return models.Trade{
		AssetType:    models.AssetStocks,
		Symbol:       "TEST",
		Direction:    models.Long,
		Status:       models.StatusClosed,
		PositionSize: 1,
		EntryPrice:   100,
		EntryDate:    entry,
		ExitPrice:    110,
		ExitDate:     entry.Add(4 * time.Hour),
	}
}

func TestFrequencyEmpty(t *testing.T) {
	f := TradeFrequency(nil)
	assert.Zero(t, f.TotalClosed)
	assert.Zero(t, f.TradesPerWeek)
	assert.Zero(t, f.TradesPerMonth)
}

func TestFrequencySingleTradeHasZeroSpan(t *testing.T) {
	f := TradeFrequency([]models.Trade{
		enteredOn(time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)),
	})

	assert.Equal(t, 1, f.TotalClosed)
	assert.Zero(t, f.SpanDays)
	assert.Zero(t, f.TradesPerWeek, "zero span leaves every ratio at 0")
	assert.Zero(t, f.TradingDaysPerWeek)
}

func TestFrequencySpanAndRates(t *testing.T) {
	// Mondays 2026-03-02 and 2026-03-16 plus Wednesday 2026-03-04:
	// a 14-day span, so 2 weeks.
	trades := []models.Trade{
		enteredOn(time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)),
		enteredOn(time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC)),
		enteredOn(time.Date(2026, 3, 16, 9, 30, 0, 0, time.UTC)),
	}

	f := TradeFrequency(trades)

	assert.Equal(t, 3, f.TotalClosed)
	assert.InDelta(t, 14, f.SpanDays, 1e-9)
	assert.InDelta(t, 1.5, f.TradesPerWeek, 1e-9)
	assert.InDelta(t, 3/(14/30.44), f.TradesPerMonth, 1e-9)
	assert.InDelta(t, 1.5, f.TradingDaysPerWeek, 1e-9, "3 distinct dates over 2 weeks")
}

func TestFrequencyDayOfWeekDistribution(t *testing.T) {
	trades := []models.Trade{
		enteredOn(time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)),  // Monday
		enteredOn(time.Date(2026, 3, 16, 9, 30, 0, 0, time.UTC)), // Monday
		enteredOn(time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC)),  // Wednesday
	}

	f := TradeFrequency(trades)

	assert.Equal(t, 2, f.ByDayOfWeek[time.Monday].Count)
	assert.Equal(t, 1, f.ByDayOfWeek[time.Wednesday].Count)
	assert.InDelta(t, 2.0/3*100, f.ByDayOfWeek[time.Monday].Percent, 1e-9)
	assert.Equal(t, time.Monday, f.MostActiveDay)
	assert.Equal(t, time.Sunday, f.LeastActiveDay, "zero-count tie goes to the lowest index")
}

func TestFrequencyTieGoesToLowestIndex(t *testing.T) {
	trades := []models.Trade{
		enteredOn(time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)), // Monday
		enteredOn(time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC)), // Wednesday
	}

	f := TradeFrequency(trades)
	assert.Equal(t, time.Monday, f.MostActiveDay)
}
