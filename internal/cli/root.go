package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tradelog/internal/config"
	"tradelog/internal/logging"
	"tradelog/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  store.TradeStore
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	SetCurrencySymbol(cfg.UI.Currency)

	dataStore, err := store.NewSQLiteStore(cfg.DatabasePath(), cfg.Journal)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, journal commands will be unavailable")
	} else {
		app.Store = dataStore
		logger.Debug().Str("path", cfg.DatabasePath()).Msg("SQLite store initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "tradelog",
		Short: "tradelog - personal trade journal and analytics",
		Long: `tradelog is a personal trade-journaling CLI.

It records trades across stocks, forex, crypto, and options in a local
SQLite database and derives performance statistics: win rate, profit
factor, drawdown, streaks, risk/reward, equity curve, and grouped
breakdowns by asset, strategy, and emotional state.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/tradelog)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addTradeCommands(rootCmd, app)
	addStatsCommands(rootCmd, app)
	addCSVCommands(rootCmd, app)
	addChartCommands(rootCmd, app)
	addCoreCommands(rootCmd, app)

	return rootCmd
}

func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
			} else {
				output.Printf("tradelog v%s\n", Version)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			output.Bold("Journal")
			output.Printf("  Default Account Size: %s\n", FormatCurrency(app.Config.Journal.DefaultAccountSize))
			output.Printf("  Risk Per Trade:       %.2f%%\n", app.Config.Journal.RiskPerTradePercent)
			output.Printf("  Initial Capital:      %s\n", FormatCurrency(app.Config.Journal.InitialCapital))
			output.Println()
			output.Bold("Storage")
			output.Printf("  Database: %s\n", app.Config.DatabasePath())
			output.Println()
			output.Bold("Logging")
			output.Printf("  Level:   %s\n", app.Config.Logging.Level)
			output.Printf("  Console: %v\n", app.Config.Logging.Console)
			output.Printf("  File:    %v\n", app.Config.Logging.File)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

// requireStore fails fast with a friendly message when the store could not
// be initialized.
func requireStore(app *App, output *Output) bool {
	if app.Store == nil {
		output.Error("Store not initialized. Check the database path in your configuration.")
		return false
	}
	return true
}
