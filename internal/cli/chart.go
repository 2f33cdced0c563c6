package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/vicanso/go-charts/v2"

	"tradelog/internal/analytics"
)

// addChartCommands adds chart rendering.
func addChartCommands(rootCmd *cobra.Command, app *App) {
	chartCmd := &cobra.Command{
		Use:   "chart",
		Short: "Render charts from the journal",
	}
	chartCmd.AddCommand(newEquityChartCmd(app))
	rootCmd.AddCommand(chartCmd)
}

func newEquityChartCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equity",
		Short: "Render the equity curve as a PNG",
		Example: `  tradelog chart equity
  tradelog chart equity --out my-equity.png --capital 25000`,
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
			img, err := renderEquityChart(curve)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			out, _ := cmd.Flags().GetString("out")
			if err := os.WriteFile(out, img, 0o644); err != nil {
				output.Error("%v", err)
				return err
			}
			output.Success("Wrote equity chart (%d points) to %s", len(curve), out)
			return nil
		},
	}

	cmd.Flags().String("out", "equity.png", "output PNG file")
	cmd.Flags().Float64("capital", 0, "starting capital (default: configured initial capital)")
	return cmd
}

func renderEquityChart(curve []analytics.EquityPoint) ([]byte, error) {
	labels := make([]string, len(curve))
	values := make([]float64, len(curve))
	yMin, yMax := curve[0].Equity, curve[0].Equity
	for i, p := range curve {
		labels[i] = p.Date.Format("Jan 02")
		values[i] = p.Equity
		if p.Equity < yMin {
			yMin = p.Equity
		}
		if p.Equity > yMax {
			yMax = p.Equity
		}
	}

	pad := (yMax - yMin) * 0.05
	if pad == 0 {
		pad = yMax * 0.01
	}
	yMin -= pad
	yMax += pad

	painter, err := charts.LineRender([][]float64{values},
		charts.TitleTextOptionFunc("Equity Curve"),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag(), SplitNumber: 8}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}
