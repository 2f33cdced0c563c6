package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tradelog/internal/models"
)

func TestByAssetTypeCoversFullEnum(t *testing.T) {
	trades := series(100, -50)
	for i := range trades {
		trades[i].AssetType = models.AssetForex
	}

	groups := ByAssetType(trades)

	assert.Len(t, groups, len(models.AssetTypes), "every asset type appears, traded or not")
	assert.Equal(t, 2, groups[models.AssetForex].Trades)
	assert.Zero(t, groups[models.AssetStocks].Trades)
	assert.Zero(t, groups[models.AssetCrypto].Trades)
	assert.Zero(t, groups[models.AssetOptions].Trades)
}

func TestByAssetTypeStats(t *testing.T) {
	trades := series(100, -50, 200)
	for i := range trades {
		trades[i].AssetType = models.AssetCrypto
	}

	g := ByAssetType(trades)[models.AssetCrypto]

	assert.Equal(t, 3, g.ClosedTrades)
	assert.Equal(t, 2, g.Wins)
	assert.Equal(t, 1, g.Losses)
	assert.InDelta(t, 66.666, g.WinRate, 0.01)
	assert.InDelta(t, 250, g.NetProfit, 1e-9)
	assert.InDelta(t, 300.0/50, g.ProfitFactor, 1e-9)
}

func TestByStrategySkipsBlankLabels(t *testing.T) {
	trades := series(100, -50, 75)
	trades[0].Strategy = "breakout"
	trades[1].Strategy = "breakout"
	trades[2].Strategy = "   "

	groups := ByStrategy(trades)

	assert.Len(t, groups, 1)
	assert.Equal(t, 2, groups["breakout"].Trades)
	assert.InDelta(t, 50, groups["breakout"].NetProfit, 1e-9)
}

func TestByEmotionalState(t *testing.T) {
	trades := series(100, -50, -25)
	trades[0].EmotionalState = "calm"
	trades[1].EmotionalState = "fomo"
	trades[2].EmotionalState = "fomo"

	groups := ByEmotionalState(trades)

	assert.Len(t, groups, 2)
	assert.InDelta(t, 100, groups["calm"].WinRate, 1e-9)
	assert.Zero(t, groups["fomo"].WinRate)
	assert.InDelta(t, -75, groups["fomo"].NetProfit, 1e-9)
}

func TestMonthlyKeysByExitDate(t *testing.T) {
	trades := []models.Trade{
		closedAt(100, time.Date(2026, 1, 15, 16, 0, 0, 0, time.UTC)),
		closedAt(-40, time.Date(2026, 1, 28, 16, 0, 0, 0, time.UTC)),
		closedAt(60, time.Date(2026, 2, 3, 16, 0, 0, 0, time.UTC)),
	}

	months := Monthly(trades)

	assert.Len(t, months, 2)
	jan := months["2026-01"]
	assert.Equal(t, 1, jan.Wins)
	assert.Equal(t, 1, jan.Losses)
	assert.InDelta(t, 60, jan.NetProfit, 1e-9)
	assert.InDelta(t, 50, jan.WinRate, 1e-9)
	assert.InDelta(t, 100.0/40, jan.ProfitFactor, 1e-9)

	feb := months["2026-02"]
	assert.Equal(t, 1, feb.Wins)
	assert.InDelta(t, 60, feb.NetProfit, 1e-9)
}

func TestMonthlyIgnoresOpenTrades(t *testing.T) {
	trades := series(100)
	trades = append(trades, models.Trade{
		Status:    models.StatusOpen,
		EntryDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	})

	months := Monthly(trades)
	assert.Len(t, months, 1)
}
