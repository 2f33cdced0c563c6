package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"tradelog/internal/models"
)

func tradesFromPLs(pls []float64) []models.Trade {
	base := time.Date(2026, 1, 5, 16, 0, 0, 0, time.UTC)
	trades := make([]models.Trade, len(pls))
	for i, pl := range pls {
		trades[i] = models.Trade{
			AssetType:    models.AssetStocks,
			Symbol:       "TEST",
			Direction:    models.Long,
			Status:       models.StatusClosed,
			PositionSize: 1,
			EntryPrice:   1000,
			EntryDate:    base.AddDate(0, 0, i).Add(-time.Hour),
			ExitPrice:    1000 + pl,
			ExitDate:     base.AddDate(0, 0, i),
		}
	}
	return trades
}

// Property: the summary is independent of input order. Every aggregate
// sorts its own defensive copy, so shuffled input produces identical
// results.
func TestProperty_SummaryOrderIndependent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	// Whole-unit P&L values keep the sums exact in any accumulation order.
	plsGen := gen.SliceOf(gen.Int64Range(-500, 500))

	properties.Property("summary of reversed input matches", prop.ForAll(
		func(ipls []int64) bool {
			pls := make([]float64, len(ipls))
			for i, v := range ipls {
				pls[i] = float64(v)
			}
			trades := tradesFromPLs(pls)
			reversed := make([]models.Trade, len(trades))
			for i := range trades {
				reversed[len(trades)-1-i] = trades[i]
			}
			return Summarize(trades) == Summarize(reversed)
		},
		plsGen,
	))

	properties.TestingRun(t)
}

// Property: drawdown figures are non-negative and the absolute drawdown
// never exceeds the total loss magnitude.
func TestProperty_DrawdownBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	plsGen := gen.SliceOf(gen.Float64Range(-500, 500))

	properties.Property("drawdown is a non-negative magnitude", prop.ForAll(
		func(pls []float64) bool {
			d := MaxDrawdown(tradesFromPLs(pls))
			if d.MaxAbsolute < 0 || d.MaxPercent < 0 {
				return false
			}
			var totalLoss float64
			for _, pl := range pls {
				if pl < 0 {
					totalLoss += -pl
				}
			}
			return d.MaxAbsolute <= totalLoss+1e-6
		},
		plsGen,
	))

	properties.TestingRun(t)
}

// Property: the last point of the equity curve equals the initial capital
// plus the summary's net profit.
func TestProperty_EquityCurveEndsAtNetProfit(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	plsGen := gen.SliceOf(gen.Float64Range(-500, 500))
	capitalGen := gen.Float64Range(0, 100000)

	properties.Property("final equity = capital + net P&L", prop.ForAll(
		func(pls []float64, capital float64) bool {
			trades := tradesFromPLs(pls)
			curve := EquityCurve(trades, capital)
			s := Summarize(trades)
			final := curve[len(curve)-1].Equity
			return math.Abs(final-(capital+s.NetProfit)) < 1e-6
		},
		plsGen, capitalGen,
	))

	properties.TestingRun(t)
}

// Property: win rate stays within [0, 100] and wins + losses + break-evens
// equals the closed count.
func TestProperty_SummaryCountsConsistent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	plsGen := gen.SliceOf(gen.Float64Range(-500, 500))

	properties.Property("counts partition the closed trades", prop.ForAll(
		func(pls []float64) bool {
			s := Summarize(tradesFromPLs(pls))
			if s.WinRate < 0 || s.WinRate > 100 {
				return false
			}
			return s.WinningTrades+s.LosingTrades+s.BreakEvenTrades == s.ClosedTrades
		},
		plsGen,
	))

	properties.TestingRun(t)
}
