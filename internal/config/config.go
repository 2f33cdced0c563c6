// Package config provides configuration management for the trade journal.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Journal JournalConfig `mapstructure:"journal"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
	Storage StorageConfig `mapstructure:"storage"`
}

// JournalConfig holds the journal and analytics settings consumed by the
// calculator and aggregation engine.
type JournalConfig struct {
	// DefaultAccountSize is the fallback denominator for risk percentage
	// when a trade has no account size of its own.
	DefaultAccountSize float64 `mapstructure:"default_account_size"`
	// RiskPerTradePercent feeds the position sizing analysis.
	RiskPerTradePercent float64 `mapstructure:"risk_per_trade_percent"`
	// InitialCapital is the default base for the equity curve.
	InitialCapital float64 `mapstructure:"initial_capital"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	Currency     string `mapstructure:"currency"`
	DateFormat   string `mapstructure:"date_format"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    bool   `mapstructure:"file"`
}

// StorageConfig holds persistence configuration.
type StorageConfig struct {
	// DatabasePath overrides the default SQLite database location.
	DatabasePath string `mapstructure:"database_path"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/tradelog"
	}
	return filepath.Join(home, ".config", "tradelog")
}

// Default returns the built-in configuration used when no file exists.
func Default() *Config {
	return &Config{
		Journal: JournalConfig{
			DefaultAccountSize:  10000,
			RiskPerTradePercent: 1.0,
			InitialCapital:      10000,
		},
		UI: UIConfig{
			ColorEnabled: true,
			Currency:     "$",
			DateFormat:   "2006-01-02",
		},
		Logging: LoggingConfig{
			Level:   "info",
			Console: true,
			File:    true,
		},
	}
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// First run: write the template and continue with defaults.
			if werr := createTemplateConfig(configDir); werr != nil {
				return nil, fmt.Errorf("writing config template: %w", werr)
			}
		} else {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	applyEnvOverrides(v, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("journal.default_account_size", def.Journal.DefaultAccountSize)
	v.SetDefault("journal.risk_per_trade_percent", def.Journal.RiskPerTradePercent)
	v.SetDefault("journal.initial_capital", def.Journal.InitialCapital)
	v.SetDefault("ui.color_enabled", def.UI.ColorEnabled)
	v.SetDefault("ui.currency", def.UI.Currency)
	v.SetDefault("ui.date_format", def.UI.DateFormat)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.console", def.Logging.Console)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("storage.database_path", "")
}

func applyEnvOverrides(v *viper.Viper, cfg *Config) {
	if path := os.Getenv("TRADELOG_DB"); path != "" {
		cfg.Storage.DatabasePath = path
	}
	if level := os.Getenv("TRADELOG_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Journal.DefaultAccountSize < 0 {
		return fmt.Errorf("default_account_size must be non-negative")
	}
	if c.Journal.RiskPerTradePercent < 0 || c.Journal.RiskPerTradePercent > 100 {
		return fmt.Errorf("risk_per_trade_percent must be between 0 and 100")
	}
	if c.Journal.InitialCapital < 0 {
		return fmt.Errorf("initial_capital must be non-negative")
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	return nil
}

// DatabasePath returns the resolved SQLite database path.
func (c *Config) DatabasePath() string {
	if c.Storage.DatabasePath != "" {
		return c.Storage.DatabasePath
	}
	return filepath.Join(DefaultConfigDir(), "tradelog.db")
}
