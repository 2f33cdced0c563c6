package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"tradelog/internal/csvio"
	"tradelog/internal/errors"
	"tradelog/internal/logging"
)

// addCSVCommands adds CSV export and import.
func addCSVCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newExportCmd(app))
	rootCmd.AddCommand(newImportCmd(app))
}

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the journal to CSV",
		Long:  "Export every trade, derived fields included, to a CSV file or stdout.",
		Example: `  tradelog export --out trades.csv
  tradelog export > trades.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			trades, err := loadAll(app, output)
			if err != nil {
				return err
			}

			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				return csvio.Export(cmd.OutOrStdout(), trades)
			}

			f, err := os.Create(out)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			defer f.Close()

			if err := csvio.Export(f, trades); err != nil {
				output.Error("%v", err)
				return err
			}
			output.Success("Exported %d trade(s) to %s", len(trades), out)
			return nil
		},
	}

	cmd.Flags().String("out", "", "output file (default: stdout)")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import trades from CSV",
		Long: `Import trades from a CSV file.

The import is all-or-nothing: every row is validated first, and a single
bad row rejects the whole file with a per-row error report. Derived
fields in the file are ignored and recomputed on write.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if !requireStore(app, output) {
				return errors.ErrDatabase
			}

			f, err := os.Open(args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}
			defer f.Close()

			trades, err := csvio.Import(f)
			if err != nil {
				var imErr *errors.ImportError
				if errors.As(err, &imErr) {
					output.Error("Import rejected: %d bad row(s)", len(imErr.Rows))
					for _, re := range imErr.Rows {
						output.Printf("  row %d:\n", re.Row)
						for _, msg := range re.Messages {
							output.Printf("    - %s\n", msg)
						}
					}
					return err
				}
				output.Error("%v", err)
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			if err := app.Store.AddBatch(ctx, trades); err != nil {
				reportError(output, err)
				return err
			}

			logging.LogImport(app.Logger, args[0], len(trades), nil)

			if output.IsJSON() {
				return output.JSON(map[string]int{"imported": len(trades)})
			}
			output.Success("Imported %d trade(s) from %s", len(trades), args[0])
			return nil
		},
	}
}
