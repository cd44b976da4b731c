package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/secfacts/internal/model"
)

var multiCmd = &cobra.Command{
	Use:   "multi <company> <metric>...",
	Short: "Fetch several metrics for one company, aligned by fiscal year",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer eng.Close() //nolint:errcheck

		years, _ := cmd.Flags().GetInt("years")

		result, qerr := eng.MultiMetric(ctx, args[0], args[1:], years)
		if qerr != nil {
			return renderError(qerr)
		}

		if jsonOutput {
			return emitJSON(result)
		}
		formatMultiResult(os.Stdout, result)
		return nil
	},
}

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Build a tickers x metrics grid for one fiscal year",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer eng.Close() //nolint:errcheck

		tickers, _ := cmd.Flags().GetStringSlice("tickers")
		metrics, _ := cmd.Flags().GetStringSlice("metrics")
		year, _ := cmd.Flags().GetInt("year")

		result, qerr := eng.Matrix(ctx, tickers, metrics, year)
		if qerr != nil {
			return renderError(qerr)
		}

		if jsonOutput {
			return emitJSON(result)
		}
		formatMatrixResult(os.Stdout, result)
		return nil
	},
}

func init() {
	multiCmd.Flags().Int("years", 0, "number of fiscal years (default 5)")

	matrixCmd.Flags().StringSlice("tickers", nil, "tickers, comma separated")
	matrixCmd.Flags().StringSlice("metrics", nil, "metric ids, comma separated")
	matrixCmd.Flags().Int("year", 0, "fiscal year (default: latest reported)")
	_ = matrixCmd.MarkFlagRequired("tickers")
	_ = matrixCmd.MarkFlagRequired("metrics")

	rootCmd.AddCommand(multiCmd)
	rootCmd.AddCommand(matrixCmd)
}

// formatMultiResult writes years as rows and metrics as columns.
func formatMultiResult(out io.Writer, r *model.MultiMetricResult) {
	fmt.Fprintf(out, "%s (%s)\n\n", r.Company.Name, r.Company.Ticker)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	headers := make([]string, 0, len(r.Series)+1)
	headers = append(headers, "FY")
	for _, s := range r.Series {
		headers = append(headers, strings.ToUpper(s.Metric.ID))
	}
	fmt.Fprintln(w, strings.Join(headers, "\t"))

	for _, year := range r.Years {
		row := make([]string, 0, len(r.Series)+1)
		row = append(row, fmt.Sprintf("%d", year))
		for _, s := range r.Series {
			if v, ok := s.Values[year]; ok {
				row = append(row, formatAmount(v, s.Metric.UnitType))
			} else {
				row = append(row, "-")
			}
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

// formatMatrixResult writes tickers as rows and metrics as columns.
func formatMatrixResult(out io.Writer, r *model.MatrixResult) {
	fmt.Fprintf(out, "FY%d\n\n", r.FiscalYear)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	headers := make([]string, 0, len(r.Metrics)+1)
	headers = append(headers, "TICKER")
	for _, m := range r.Metrics {
		headers = append(headers, strings.ToUpper(m.ID))
	}
	fmt.Fprintln(w, strings.Join(headers, "\t"))

	for _, col := range r.Columns {
		row := make([]string, 0, len(r.Metrics)+1)
		name := col.Company.Ticker
		if col.Error != nil {
			fmt.Fprintf(w, "%s\t%s\n", name, col.Error.Code)
			continue
		}
		row = append(row, name)
		for _, m := range r.Metrics {
			if v := col.Values[m.ID]; v != nil {
				row = append(row, formatAmount(*v, m.UnitType))
			} else {
				row = append(row, "-")
			}
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}
