package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tradelog/internal/errors"
	"tradelog/internal/logging"
	"tradelog/internal/models"
	"tradelog/internal/store"
)

const commandTimeout = 30 * time.Second

// addTradeCommands adds journal record commands.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newAddCmd(app))
	rootCmd.AddCommand(newCloseCmd(app))
	rootCmd.AddCommand(newUpdateCmd(app))
	rootCmd.AddCommand(newDeleteCmd(app))
	rootCmd.AddCommand(newShowCmd(app))
	rootCmd.AddCommand(newListCmd(app))
}

// parseDate accepts a few common layouts so dates can be typed by hand.
func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (want YYYY-MM-DD)", value)
}

// reportError prints validation failures as an itemized list and other
// errors as a single line.
func reportError(output *Output, err error) {
	var verr *errors.ValidationError
	if errors.As(err, &verr) {
		output.Error("Trade rejected:")
		for _, msg := range verr.Messages {
			output.Printf("  - %s\n", msg)
		}
		return
	}
	output.Error("%v", err)
}

func newAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new trade",
		Long: `Record a new trade in the journal.

The trade is validated, its derived fields (P&L, risk, reward, ratios)
are computed, and it is persisted. Open trades carry zero P&L until
closed.`,
		Example: `  tradelog add --asset stocks --symbol AAPL --direction long --size 100 --entry 150.25 --stop 148 --target 155
  tradelog add --asset forex --symbol EURUSD --direction short --size 10000 --entry 1.085 --strategy "news fade"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if !requireStore(app, output) {
				return errors.ErrDatabase
			}
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			t, err := tradeFromFlags(cmd)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			if err := app.Store.Add(ctx, t); err != nil {
				reportError(output, err)
				return err
			}

			logging.LogTradeSaved(app.Logger, t.ID, t.Symbol, string(t.Status), t.ProfitLoss)

			if output.IsJSON() {
				return output.JSON(t)
			}
			output.Success("Trade recorded: %s", t.ID)
			printTrade(output, t)
			return nil
		},
	}

	addTradeFlags(cmd)
	return cmd
}

func addTradeFlags(cmd *cobra.Command) {
	cmd.Flags().String("asset", "", "asset type (stocks, forex, crypto, options)")
	cmd.Flags().String("symbol", "", "traded symbol")
	cmd.Flags().String("direction", "", "trade direction (long, short)")
	cmd.Flags().String("status", "open", "trade status (open, closed, cancelled)")
	cmd.Flags().Float64("size", 0, "position size")
	cmd.Flags().Float64("entry", 0, "entry price")
	cmd.Flags().String("entry-date", "", "entry date (default: now)")
	cmd.Flags().Float64("exit", 0, "exit price")
	cmd.Flags().String("exit-date", "", "exit date")
	cmd.Flags().Float64("commission", 0, "commission paid")
	cmd.Flags().Float64("stop", 0, "stop loss price")
	cmd.Flags().Float64("target", 0, "take profit price")
	cmd.Flags().Float64("account", 0, "account size for this trade")
	cmd.Flags().String("strategy", "", "strategy label")
	cmd.Flags().String("emotion", "", "emotional state")
	cmd.Flags().String("market", "", "market conditions")
	cmd.Flags().String("rationale", "", "why the trade was taken")
	cmd.Flags().String("lessons", "", "lessons learned")
	cmd.Flags().String("tags", "", "comma-separated tags")
	cmd.Flags().Int("rating", 0, "trade rating (0-5)")
}

func tradeFromFlags(cmd *cobra.Command) (*models.Trade, error) {
	asset, _ := cmd.Flags().GetString("asset")
	symbol, _ := cmd.Flags().GetString("symbol")
	direction, _ := cmd.Flags().GetString("direction")
	status, _ := cmd.Flags().GetString("status")
	size, _ := cmd.Flags().GetFloat64("size")
	entry, _ := cmd.Flags().GetFloat64("entry")
	exit, _ := cmd.Flags().GetFloat64("exit")
	commission, _ := cmd.Flags().GetFloat64("commission")
	stop, _ := cmd.Flags().GetFloat64("stop")
	target, _ := cmd.Flags().GetFloat64("target")
	account, _ := cmd.Flags().GetFloat64("account")
	strategy, _ := cmd.Flags().GetString("strategy")
	emotion, _ := cmd.Flags().GetString("emotion")
	market, _ := cmd.Flags().GetString("market")
	rationale, _ := cmd.Flags().GetString("rationale")
	lessons, _ := cmd.Flags().GetString("lessons")
	tags, _ := cmd.Flags().GetString("tags")
	rating, _ := cmd.Flags().GetInt("rating")

	t := &models.Trade{
		AssetType:        models.AssetType(asset),
		Symbol:           strings.ToUpper(strings.TrimSpace(symbol)),
		Direction:        models.Direction(direction),
		Status:           models.Status(status),
		PositionSize:     size,
		EntryPrice:       entry,
		EntryDate:        time.Now(),
		ExitPrice:        exit,
		Commission:       commission,
		StopLoss:         stop,
		TakeProfit:       target,
		AccountSize:      account,
		Strategy:         strategy,
		EmotionalState:   emotion,
		MarketConditions: market,
		Rationale:        rationale,
		LessonsLearned:   lessons,
		Rating:           rating,
	}

	if v, _ := cmd.Flags().GetString("entry-date"); v != "" {
		d, err := parseDate(v)
		if err != nil {
			return nil, err
		}
		t.EntryDate = d
	}
	if v, _ := cmd.Flags().GetString("exit-date"); v != "" {
		d, err := parseDate(v)
		if err != nil {
			return nil, err
		}
		t.ExitDate = d
	}
	if tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				t.Tags = append(t.Tags, tag)
			}
		}
	}
	return t, nil
}

func newCloseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "close <trade-id>",
		Short: "Close an open trade",
		Long: `Close an open trade by recording its exit price and date.

The trade's derived fields are recomputed from the final prices.`,
		Example: `  tradelog close 01J3... --exit 155.50
  tradelog close 01J3... --exit 155.50 --exit-date 2026-08-20 --lessons "let winners run"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if !requireStore(app, output) {
				return errors.ErrDatabase
			}
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			t, err := app.Store.Get(ctx, args[0])
			if err != nil {
				reportError(output, err)
				return err
			}

			exit, _ := cmd.Flags().GetFloat64("exit")
			t.ExitPrice = exit
			t.ExitDate = time.Now()
			t.Status = models.StatusClosed

			if v, _ := cmd.Flags().GetString("exit-date"); v != "" {
				d, err := parseDate(v)
				if err != nil {
					output.Error("%v", err)
					return err
				}
				t.ExitDate = d
			}
			if v, _ := cmd.Flags().GetFloat64("commission"); cmd.Flags().Changed("commission") {
				t.Commission = v
			}
			if v, _ := cmd.Flags().GetString("lessons"); v != "" {
				t.LessonsLearned = v
			}
			if v, _ := cmd.Flags().GetInt("rating"); cmd.Flags().Changed("rating") {
				t.Rating = v
			}

			if err := app.Store.Update(ctx, t); err != nil {
				reportError(output, err)
				return err
			}

			logging.LogTradeSaved(app.Logger, t.ID, t.Symbol, string(t.Status), t.ProfitLoss)

			if output.IsJSON() {
				return output.JSON(t)
			}
			output.Success("Trade closed: %s", t.ID)
			output.Printf("  P&L: %s (%s)\n", output.FormatPnL(t.ProfitLoss), output.FormatPercent(t.ProfitLossPercent))
			return nil
		},
	}

	cmd.Flags().Float64("exit", 0, "exit price")
	cmd.Flags().String("exit-date", "", "exit date (default: now)")
	cmd.Flags().Float64("commission", 0, "commission paid")
	cmd.Flags().String("lessons", "", "lessons learned")
	cmd.Flags().Int("rating", 0, "trade rating (0-5)")
	cmd.MarkFlagRequired("exit")

	return cmd
}

func newUpdateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <trade-id>",
		Short: "Update a trade",
		Long: `Update fields of an existing trade.

Only flags you pass are changed. The trade is re-validated and its
derived fields are recomputed before it is saved.`,
		Example: `  tradelog update 01J3... --stop 149.00
  tradelog update 01J3... --strategy "breakout" --emotion confident`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if !requireStore(app, output) {
				return errors.ErrDatabase
			}
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			t, err := app.Store.Get(ctx, args[0])
			if err != nil {
				reportError(output, err)
				return err
			}

			if err := applyUpdateFlags(cmd, t); err != nil {
				output.Error("%v", err)
				return err
			}

			if err := app.Store.Update(ctx, t); err != nil {
				reportError(output, err)
				return err
			}

			logging.LogTradeSaved(app.Logger, t.ID, t.Symbol, string(t.Status), t.ProfitLoss)

			if output.IsJSON() {
				return output.JSON(t)
			}
			output.Success("Trade updated: %s", t.ID)
			printTrade(output, t)
			return nil
		},
	}

	addTradeFlags(cmd)
	return cmd
}

// applyUpdateFlags copies only the flags the user set onto the trade,
// field by field against the schema.
func applyUpdateFlags(cmd *cobra.Command, t *models.Trade) error {
	flags := cmd.Flags()

	if flags.Changed("asset") {
		v, _ := flags.GetString("asset")
		t.AssetType = models.AssetType(v)
	}
	if flags.Changed("symbol") {
		v, _ := flags.GetString("symbol")
		t.Symbol = strings.ToUpper(strings.TrimSpace(v))
	}
	if flags.Changed("direction") {
		v, _ := flags.GetString("direction")
		t.Direction = models.Direction(v)
	}
	if flags.Changed("status") {
		v, _ := flags.GetString("status")
		t.Status = models.Status(v)
	}
	if flags.Changed("size") {
		t.PositionSize, _ = flags.GetFloat64("size")
	}
	if flags.Changed("entry") {
		t.EntryPrice, _ = flags.GetFloat64("entry")
	}
	if flags.Changed("exit") {
		t.ExitPrice, _ = flags.GetFloat64("exit")
	}
	if flags.Changed("commission") {
		t.Commission, _ = flags.GetFloat64("commission")
	}
	if flags.Changed("stop") {
		t.StopLoss, _ = flags.GetFloat64("stop")
	}
	if flags.Changed("target") {
		t.TakeProfit, _ = flags.GetFloat64("target")
	}
	if flags.Changed("account") {
		t.AccountSize, _ = flags.GetFloat64("account")
	}
	if flags.Changed("strategy") {
		t.Strategy, _ = flags.GetString("strategy")
	}
	if flags.Changed("emotion") {
		t.EmotionalState, _ = flags.GetString("emotion")
	}
	if flags.Changed("market") {
		t.MarketConditions, _ = flags.GetString("market")
	}
	if flags.Changed("rationale") {
		t.Rationale, _ = flags.GetString("rationale")
	}
	if flags.Changed("lessons") {
		t.LessonsLearned, _ = flags.GetString("lessons")
	}
	if flags.Changed("rating") {
		t.Rating, _ = flags.GetInt("rating")
	}
	if flags.Changed("tags") {
		v, _ := flags.GetString("tags")
		t.Tags = nil
		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				t.Tags = append(t.Tags, tag)
			}
		}
	}
	if flags.Changed("entry-date") {
		v, _ := flags.GetString("entry-date")
		d, err := parseDate(v)
		if err != nil {
			return err
		}
		t.EntryDate = d
	}
	if flags.Changed("exit-date") {
		v, _ := flags.GetString("exit-date")
		d, err := parseDate(v)
		if err != nil {
			return err
		}
		t.ExitDate = d
	}
	return nil
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <trade-id>",
		Short: "Delete a trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if !requireStore(app, output) {
				return errors.ErrDatabase
			}
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			if err := app.Store.Delete(ctx, args[0]); err != nil {
				reportError(output, err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]string{"deleted": args[0]})
			}
			output.Success("Trade deleted: %s", args[0])
			return nil
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <trade-id>",
		Short: "Show a trade in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if !requireStore(app, output) {
				return errors.ErrDatabase
			}
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			t, err := app.Store.Get(ctx, args[0])
			if err != nil {
				reportError(output, err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(t)
			}
			printTrade(output, t)
			return nil
		},
	}
}

func printTrade(output *Output, t *models.Trade) {
	output.Bold("%s %s %s", strings.ToUpper(string(t.Direction)), t.Symbol, output.ColoredString(ColorDim, "("+string(t.AssetType)+")"))
	output.Printf("  ID:        %s\n", t.ID)
	output.Printf("  Status:    %s\n", t.Status)
	output.Printf("  Size:      %.4g @ %s\n", t.PositionSize, FormatPrice(t.EntryPrice))
	output.Printf("  Entered:   %s\n", FormatDateTime(t.EntryDate))
	if t.HasExit() {
		output.Printf("  Exited:    %s @ %s\n", FormatDateTime(t.ExitDate), FormatPrice(t.ExitPrice))
	}
	if t.StopLoss != 0 {
		output.Printf("  Stop:      %s\n", FormatPrice(t.StopLoss))
	}
	if t.TakeProfit != 0 {
		output.Printf("  Target:    %s\n", FormatPrice(t.TakeProfit))
	}
	if t.Commission != 0 {
		output.Printf("  Commission: %s\n", FormatCurrency(t.Commission))
	}

	output.Println()
	output.Bold("Derived")
	output.Printf("  P&L:          %s (%s)\n", output.FormatPnL(t.ProfitLoss), output.FormatPercent(t.ProfitLossPercent))
	output.Printf("  Risk:         %s (%.2f%% of account)\n", FormatCurrency(t.RiskAmount), t.RiskPercent)
	output.Printf("  Reward:       %s\n", FormatCurrency(t.RewardAmount))
	output.Printf("  Risk/Reward:  %s\n", FormatRiskReward(t.RiskRewardRatio))

	if t.Strategy != "" || t.EmotionalState != "" || t.MarketConditions != "" || len(t.Tags) > 0 || t.Rationale != "" || t.LessonsLearned != "" || t.Rating > 0 {
		output.Println()
		output.Bold("Journal")
		if t.Strategy != "" {
			output.Printf("  Strategy:   %s\n", t.Strategy)
		}
		if t.EmotionalState != "" {
			output.Printf("  Emotion:    %s\n", t.EmotionalState)
		}
		if t.MarketConditions != "" {
			output.Printf("  Market:     %s\n", t.MarketConditions)
		}
		if len(t.Tags) > 0 {
			output.Printf("  Tags:       %s\n", strings.Join(t.Tags, ", "))
		}
		if t.Rating > 0 {
			output.Printf("  Rating:     %d/5\n", t.Rating)
		}
		if t.Rationale != "" {
			output.Printf("  Rationale:  %s\n", t.Rationale)
		}
		if t.LessonsLearned != "" {
			output.Printf("  Lessons:    %s\n", t.LessonsLearned)
		}
	}
}

func newListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trades",
		Long:  "List journal trades, optionally filtered by symbol, status, asset type, strategy, or date range.",
		Example: `  tradelog list
  tradelog list --status open
  tradelog list --symbol AAPL --from 2026-01-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if !requireStore(app, output) {
				return errors.ErrDatabase
			}
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			filter := store.TradeFilter{}
			filter.Symbol, _ = cmd.Flags().GetString("symbol")
			filter.Symbol = strings.ToUpper(filter.Symbol)
			if v, _ := cmd.Flags().GetString("status"); v != "" {
				filter.Status = models.Status(v)
			}
			if v, _ := cmd.Flags().GetString("asset"); v != "" {
				filter.AssetType = models.AssetType(v)
			}
			filter.Strategy, _ = cmd.Flags().GetString("strategy")
			filter.Limit, _ = cmd.Flags().GetInt("limit")
			if v, _ := cmd.Flags().GetString("from"); v != "" {
				d, err := parseDate(v)
				if err != nil {
					output.Error("%v", err)
					return err
				}
				filter.StartDate = d
			}
			if v, _ := cmd.Flags().GetString("to"); v != "" {
				d, err := parseDate(v)
				if err != nil {
					output.Error("%v", err)
					return err
				}
				filter.EndDate = d
			}

			trades, err := app.Store.List(ctx, filter)
			if err != nil {
				reportError(output, err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(trades)
			}

			if len(trades) == 0 {
				output.Info("No trades found.")
				return nil
			}

			table := NewTable(output, "ID", "Date", "Asset", "Symbol", "Dir", "Size", "Entry", "Exit", "P&L", "Status")
			for i := range trades {
				t := &trades[i]
				exit := "-"
				if t.HasExit() {
					exit = FormatPrice(t.ExitPrice)
				}
				table.AddRow(
					TruncateString(t.ID, 10),
					FormatDate(t.EntryDate),
					string(t.AssetType),
					t.Symbol,
					string(t.Direction),
					fmt.Sprintf("%.4g", t.PositionSize),
					FormatPrice(t.EntryPrice),
					exit,
					output.FormatPnL(t.ProfitLoss),
					string(t.Status),
				)
			}
			table.Render()
			output.Println()
			output.Dim("%d trade(s)", len(trades))
			return nil
		},
	}

	cmd.Flags().String("symbol", "", "filter by symbol")
	cmd.Flags().String("status", "", "filter by status (open, closed, cancelled)")
	cmd.Flags().String("asset", "", "filter by asset type")
	cmd.Flags().String("strategy", "", "filter by strategy")
	cmd.Flags().String("from", "", "filter by entry date, inclusive start")
	cmd.Flags().String("to", "", "filter by entry date, inclusive end")
	cmd.Flags().Int("limit", 0, "maximum number of trades")

	return cmd
}
