package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"tradelog/internal/analytics"
	"tradelog/internal/errors"
	"tradelog/internal/models"
)

// addStatsCommands adds the derived-analytics commands.
func addStatsCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newStatsCmd(app))
	rootCmd.AddCommand(newReportCmd(app))
	rootCmd.AddCommand(newEquityCmd(app))
	rootCmd.AddCommand(newFrequencyCmd(app))
	rootCmd.AddCommand(newSizingCmd(app))
}

// loadAll fetches the full journal for an analytics pass.
func loadAll(app *App, output *Output) ([]models.Trade, error) {
	if !requireStore(app, output) {
		return nil, errors.ErrDatabase
	}
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	trades, err := app.Store.Load(ctx)
	if err != nil {
		reportError(output, err)
		return nil, err
	}
	return trades, nil
}

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show overall performance statistics",
		Long: `Show the performance summary over the whole journal.

All figures are derived from closed trades; open and cancelled trades
only affect the counts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			trades, err := loadAll(app, output)
			if err != nil {
				return err
			}

			summary := analytics.Summarize(trades)
			if output.IsJSON() {
				return output.JSON(summary)
			}

			output.Bold("Trades")
			output.Printf("  Total:      %d (open %d, closed %d, cancelled %d)\n",
				summary.TotalTrades, summary.OpenTrades, summary.ClosedTrades, summary.CancelledTrades)
			output.Printf("  Wins:       %d   Losses: %d   Break-even: %d\n",
				summary.WinningTrades, summary.LosingTrades, summary.BreakEvenTrades)
			output.Printf("  Win Rate:   %.2f%%\n", summary.WinRate)
			output.Println()

			output.Bold("Profit & Loss")
			output.Printf("  Net Profit:    %s\n", output.FormatPnL(summary.NetProfit))
			output.Printf("  Total Profit:  %s\n", FormatCurrency(summary.TotalProfit))
			output.Printf("  Total Loss:    %s\n", FormatCurrency(summary.TotalLoss))
			output.Printf("  Profit Factor: %.2f\n", summary.ProfitFactor)
			output.Printf("  Expectancy:    %s per trade\n", output.FormatPnL(summary.Expectancy))
			output.Println()

			output.Bold("Extremes")
			output.Printf("  Average Win:   %s   Average Loss: %s\n",
				FormatCurrency(summary.AverageWin), FormatCurrency(summary.AverageLoss))
			output.Printf("  Largest Win:   %s   Largest Loss: %s\n",
				FormatCurrency(summary.LargestWin), FormatCurrency(summary.LargestLoss))
			output.Printf("  Avg R:R:       %s\n", FormatRiskReward(summary.AverageRiskReward))
			output.Println()

			output.Bold("Streaks & Drawdown")
			output.Printf("  Best Streak:    %+d\n", summary.BestStreak)
			output.Printf("  Worst Streak:   %+d\n", summary.WorstStreak)
			output.Printf("  Current Streak: %+d\n", summary.CurrentStreak)
			output.Printf("  Max Drawdown:   %s (%.2f%%)\n",
				FormatCurrency(summary.MaxDrawdown), summary.MaxDrawdownPercent)
			return nil
		},
	}
}

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Grouped performance breakdowns",
		Long: `Break performance down by a categorical dimension.

Dimensions: asset (all asset types, including empty ones), strategy,
emotion, month (calendar month of the exit date).`,
		Example: `  tradelog report --by asset
  tradelog report --by strategy
  tradelog report --by month`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			trades, err := loadAll(app, output)
			if err != nil {
				return err
			}

			by, _ := cmd.Flags().GetString("by")
			switch by {
			case "asset":
				return renderAssetReport(output, trades)
			case "strategy":
				return renderLabelReport(output, "Strategy", analytics.ByStrategy(trades))
			case "emotion":
				return renderLabelReport(output, "Emotion", analytics.ByEmotionalState(trades))
			case "month":
				return renderMonthlyReport(output, trades)
			default:
				err := fmt.Errorf("unknown dimension %q (want asset, strategy, emotion, or month)", by)
				output.Error("%v", err)
				return err
			}
		},
	}

	cmd.Flags().String("by", "asset", "grouping dimension (asset, strategy, emotion, month)")
	return cmd
}

func renderAssetReport(output *Output, trades []models.Trade) error {
	groups := analytics.ByAssetType(trades)
	if output.IsJSON() {
		return output.JSON(groups)
	}

	table := NewTable(output, "Asset", "Trades", "Closed", "Win Rate", "Net P&L", "PF", "Avg R:R")
	for _, at := range models.AssetTypes {
		g := groups[at]
		table.AddRow(
			string(at),
			strconv.Itoa(g.Trades),
			strconv.Itoa(g.ClosedTrades),
			fmt.Sprintf("%.1f%%", g.WinRate),
			output.FormatPnL(g.NetProfit),
			fmt.Sprintf("%.2f", g.ProfitFactor),
			fmt.Sprintf("%.2f", g.AverageRiskReward),
		)
	}
	table.Render()
	return nil
}

func renderLabelReport(output *Output, column string, groups map[string]analytics.GroupStats) error {
	if output.IsJSON() {
		return output.JSON(groups)
	}
	if len(groups) == 0 {
		output.Info("No labelled trades to report on.")
		return nil
	}

	labels := make([]string, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	table := NewTable(output, column, "Trades", "Closed", "Win Rate", "Net P&L", "PF", "Avg R:R")
	for _, label := range labels {
		g := groups[label]
		table.AddRow(
			label,
			strconv.Itoa(g.Trades),
			strconv.Itoa(g.ClosedTrades),
			fmt.Sprintf("%.1f%%", g.WinRate),
			output.FormatPnL(g.NetProfit),
			fmt.Sprintf("%.2f", g.ProfitFactor),
			fmt.Sprintf("%.2f", g.AverageRiskReward),
		)
	}
	table.Render()
	return nil
}

func renderMonthlyReport(output *Output, trades []models.Trade) error {
	months := analytics.Monthly(trades)
	if output.IsJSON() {
		return output.JSON(months)
	}
	if len(months) == 0 {
		output.Info("No closed trades to report on.")
		return nil
	}

	keys := make([]string, 0, len(months))
	for key := range months {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	table := NewTable(output, "Month", "Wins", "Losses", "Win Rate", "Net P&L", "PF")
	for _, key := range keys {
		m := months[key]
		table.AddRow(
			key,
			strconv.Itoa(m.Wins),
			strconv.Itoa(m.Losses),
			fmt.Sprintf("%.1f%%", m.WinRate),
			output.FormatPnL(m.NetProfit),
			fmt.Sprintf("%.2f", m.ProfitFactor),
		)
	}
	table.Render()
	return nil
}

func newEquityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equity",
		Short: "Show the equity curve",
		Long:  "Show the cumulative equity series over closed trades in exit-date order.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			trades, err := loadAll(app, output)
			if err != nil {
				return err
			}

			capital, _ := cmd.Flags().GetFloat64("capital")
			if !cmd.Flags().Changed("capital") {
				capital = app.Config.Journal.InitialCapital
			}

			curve := analytics.EquityCurve(trades, capital)
			if output.IsJSON() {
				return output.JSON(curve)
			}

			table := NewTable(output, "Date", "Symbol", "P&L", "Equity")
			for _, p := range curve {
				symbol := p.Symbol
				if symbol == "" {
					symbol = "-"
				}
				table.AddRow(
					FormatDate(p.Date),
					symbol,
					output.FormatPnL(p.ProfitLoss),
					FormatCurrency(p.Equity),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().Float64("capital", 0, "starting capital (default: configured initial capital)")
	return cmd
}

func newFrequencyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "frequency",
		Short: "Show trading frequency statistics",
		Long:  "Show how often trades are taken and how they spread across weekdays.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			trades, err := loadAll(app, output)
			if err != nil {
				return err
			}

			freq := analytics.TradeFrequency(trades)
			if output.IsJSON() {
				return output.JSON(freq)
			}

			if freq.TotalClosed == 0 {
				output.Info("No closed trades yet.")
				return nil
			}

			output.Bold("Frequency")
			output.Printf("  Closed Trades:    %d over %.0f days (%s to %s)\n",
				freq.TotalClosed, freq.SpanDays, FormatDate(freq.FirstEntry), FormatDate(freq.LastEntry))
			output.Printf("  Trades/Week:      %.2f\n", freq.TradesPerWeek)
			output.Printf("  Trades/Month:     %.2f\n", freq.TradesPerMonth)
			output.Printf("  Trading Days/Wk:  %.2f\n", freq.TradingDaysPerWeek)
			output.Println()

			output.Bold("By Day of Week")
			for day := time.Sunday; day <= time.Saturday; day++ {
				stat := freq.ByDayOfWeek[day]
				output.Printf("  %-10s %3d  (%.1f%%)\n", day.String(), stat.Count, stat.Percent)
			}
			output.Println()
			output.Printf("  Most active:  %s\n", freq.MostActiveDay)
			output.Printf("  Least active: %s\n", freq.LeastActiveDay)
			return nil
		},
	}
}

func newSizingCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sizing",
		Short: "Show position sizing analysis",
		Long: `Analyze position sizing consistency across closed trades and suggest
a size from the configured account size and risk budget.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			trades, err := loadAll(app, output)
			if err != nil {
				return err
			}

			sizing := analytics.PositionSizing(trades, app.Config.Journal)
			if output.IsJSON() {
				return output.JSON(sizing)
			}

			output.Bold("Position Sizing")
			output.Printf("  Average Size:     %.4g\n", sizing.AveragePositionSize)
			output.Printf("  Std Deviation:    %.4g\n", sizing.StdDevPositionSize)
			output.Printf("  Consistency:      %.1f/100\n", sizing.ConsistencyScore)
			output.Printf("  Recommended Size: %.4g\n", sizing.RecommendedPositionSize)
			output.Println()
			output.Dim("Recommendation uses account size %s at %.2f%% risk per trade.",
				FormatCurrency(app.Config.Journal.DefaultAccountSize), app.Config.Journal.RiskPerTradePercent)
			return nil
		},
	}
}
