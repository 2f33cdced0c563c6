package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# tradelog configuration

[journal]
# Fallback account size when a trade does not carry its own.
# Used as the denominator for risk percentage.
default_account_size = 10000.0
# Risk per trade as a percentage of account size.
# Feeds the position sizing analysis.
risk_per_trade_percent = 1.0
# Starting capital for the equity curve.
initial_capital = 10000.0

[ui]
# Enable colored output
color_enabled = true
# Currency symbol for monetary values
currency = "$"
# Date format
date_format = "2006-01-02"

[logging]
# Log level: debug, info, warn, error
level = "info"
# Log to the terminal
console = true
# Log to a rotated file under the config directory
file = true

[storage]
# Override the SQLite database location (default: <config dir>/tradelog.db)
database_path = ""
`

// createTemplateConfig writes the default config.toml so the user has a
// documented file to edit.
func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	return os.WriteFile(path, []byte(configTemplate), 0644)
}
