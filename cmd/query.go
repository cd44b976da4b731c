package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/secfacts/internal/engine"
	"github.com/sells-group/secfacts/internal/model"
)

var queryCmd = &cobra.Command{
	Use:   "query <company> <metric>",
	Short: "Fetch one metric's history for a company",
	Long:  "Resolves the company, extracts the metric from its XBRL facts, and prints the series with growth figures and provenance.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer eng.Close() //nolint:errcheck

		periods, _ := cmd.Flags().GetInt("periods")
		year, _ := cmd.Flags().GetInt("year")
		quarterly, _ := cmd.Flags().GetBool("quarterly")

		periodType := engine.PeriodAnnual
		if quarterly {
			periodType = engine.PeriodQuarterly
		}

		result, qerr := eng.Query(ctx, args[0], args[1], periods, year, periodType)
		if qerr != nil {
			return renderError(qerr)
		}

		if jsonOutput {
			return emitJSON(result)
		}
		formatQueryResult(os.Stdout, result)
		return nil
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare <metric> <ticker>...",
	Short: "Compare one metric across several companies",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer eng.Close() //nolint:errcheck

		years, _ := cmd.Flags().GetInt("years")

		result, qerr := eng.Compare(ctx, args[1:], args[0], years)
		if qerr != nil {
			return renderError(qerr)
		}

		if jsonOutput {
			return emitJSON(result)
		}
		formatCompareResult(os.Stdout, result)
		return nil
	},
}

func init() {
	queryCmd.Flags().Int("periods", 0, "number of periods to return (default 5 years / 8 quarters)")
	queryCmd.Flags().Int("year", 0, "pin the series to end at this fiscal year")
	queryCmd.Flags().Bool("quarterly", false, "return quarterly values instead of annual")

	compareCmd.Flags().Int("years", 0, "number of fiscal years to compare (default 5)")

	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(compareCmd)
}

// formatQueryResult writes the series, calculations, and provenance notes.
func formatQueryResult(out io.Writer, r *model.QueryResult) {
	fmt.Fprintf(out, "%s (%s, CIK %s) - %s\n\n", r.Company.Name, r.Company.Ticker, r.Company.CIK, r.Metric.DisplayName)

	yoyByYear := make(map[int]*float64)
	if r.Calculations != nil {
		for _, y := range r.Calculations.YoY {
			yoyByYear[y.FiscalYear] = y.Percent
		}
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PERIOD\tVALUE\tYOY\tFORM\tFILED")
	for _, p := range r.Data {
		yoy := ""
		if pct, ok := yoyByYear[p.FiscalYear]; ok {
			if pct != nil {
				yoy = fmt.Sprintf("%+.1f%%", *pct)
			} else {
				yoy = "n/a"
			}
		}
		fmt.Fprintf(w, "%s %d\t%s\t%s\t%s\t%s\n",
			p.FiscalPeriod, p.FiscalYear,
			formatAmount(p.Value, r.Metric.UnitType),
			yoy, p.Source.FormType, p.Source.FilingDate,
		)
	}
	w.Flush()

	if r.Calculations != nil {
		fmt.Fprintln(out)
		for _, c := range r.Calculations.CAGR {
			fmt.Fprintf(out, "CAGR %dy: %+.1f%%\n", c.Years, c.Percent)
		}
		if r.Calculations.GrowthSignal != "" {
			fmt.Fprintf(out, "Growth: %s\n", r.Calculations.GrowthSignal)
		}
	}

	fmt.Fprintf(out, "\nConcept: %s\n", r.Provenance.SelectedConcept)
	for _, note := range r.Provenance.Notes {
		fmt.Fprintf(out, "Note: %s\n", note)
	}
}

// formatCompareResult writes one row per ticker, latest value first.
func formatCompareResult(out io.Writer, r *model.CompareResult) {
	fmt.Fprintf(out, "%s\n\n", r.Metric.DisplayName)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TICKER\tFY\tVALUE\tSTATUS")
	for _, e := range r.Entries {
		if e.Error != nil {
			fmt.Fprintf(w, "%s\t\t\t%s\n", e.Ticker, e.Error.Code)
			continue
		}
		latest := e.Result.Data[len(e.Result.Data)-1]
		fmt.Fprintf(w, "%s\t%d\t%s\tok\n",
			e.Result.Company.Ticker, latest.FiscalYear,
			formatAmount(latest.Value, r.Metric.UnitType),
		)
	}
	w.Flush()
}
