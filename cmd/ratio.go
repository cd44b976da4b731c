package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/secfacts/internal/model"
)

var ratioCmd = &cobra.Command{
	Use:   "ratio <company> <ratio>",
	Short: "Compute a derived ratio for a company",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer eng.Close() //nolint:errcheck

		years, _ := cmd.Flags().GetInt("years")

		result, qerr := eng.Ratio(ctx, args[0], args[1], years)
		if qerr != nil {
			return renderError(qerr)
		}

		if jsonOutput {
			return emitJSON(result)
		}
		formatRatioResult(os.Stdout, result)
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary <company>",
	Short: "Full snapshot: every catalog metric plus derived ratios",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer eng.Close() //nolint:errcheck

		year, _ := cmd.Flags().GetInt("year")

		result, qerr := eng.Summary(ctx, args[0], year, 0)
		if qerr != nil {
			return renderError(qerr)
		}

		if jsonOutput {
			return emitJSON(result)
		}
		formatSummaryResult(os.Stdout, result)
		return nil
	},
}

func init() {
	ratioCmd.Flags().Int("years", 0, "number of fiscal years (default 5)")
	summaryCmd.Flags().Int("year", 0, "pin the snapshot to this fiscal year")

	rootCmd.AddCommand(ratioCmd)
	rootCmd.AddCommand(summaryCmd)
}

func formatRatioResult(out io.Writer, r *model.RatioResult) {
	fmt.Fprintf(out, "%s (%s) - %s\n\n", r.Company.Name, r.Company.Ticker, r.Ratio.DisplayName)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FY\tVALUE")
	for _, p := range r.Data {
		fmt.Fprintf(w, "%d\t%s\n", p.FiscalYear, formatRatio(p.Value, r.Ratio.Format))
	}
	w.Flush()

	if r.DivByZeroSkip > 0 {
		fmt.Fprintf(out, "\n%d year(s) skipped: zero denominator\n", r.DivByZeroSkip)
	}
	fmt.Fprintf(out, "\nConcept: %s\n", r.Provenance.SelectedConcept)
	for _, note := range r.Provenance.Notes {
		fmt.Fprintf(out, "Note: %s\n", note)
	}
}

func formatSummaryResult(out io.Writer, r *model.SummaryResult) {
	fmt.Fprintf(out, "%s (%s, CIK %s) - FY%d\n\n", r.Company.Name, r.Company.Ticker, r.Company.CIK, r.FiscalYear)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tFY\tVALUE\tYOY")
	for _, m := range r.Metrics {
		yoy := ""
		if m.YoYPercent != nil {
			yoy = fmt.Sprintf("%+.1f%%", *m.YoYPercent)
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", m.DisplayName, m.FiscalYear, formatAmount(m.Value, m.UnitType), yoy)
	}
	w.Flush()

	if len(r.Ratios) > 0 {
		fmt.Fprintln(out)
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "RATIO\tFY\tVALUE")
		for _, rr := range r.Ratios {
			fmt.Fprintf(w, "%s\t%d\t%s\n", rr.DisplayName, rr.FiscalYear, formatRatio(rr.Value, rr.Format))
		}
		w.Flush()
	}
}
