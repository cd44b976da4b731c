package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/secfacts/internal/catalog"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "List the metrics the catalog can resolve",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cat := catalog.New()

		if jsonOutput {
			return emitJSON(cat.MetricIDs())
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSTATEMENT\tCONCEPTS")
		for _, m := range cat.Metrics() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", m.ID, m.DisplayName, m.Statement, len(m.Concepts))
		}
		w.Flush()
		return nil
	},
}

var ratiosCmd = &cobra.Command{
	Use:   "ratios",
	Short: "List the derived ratios the catalog can compute",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cat := catalog.New()

		if jsonOutput {
			return emitJSON(cat.RatioIDs())
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tFORMULA\tFORMAT")
		for _, r := range cat.Ratios() {
			op := "/"
			if r.Operation == catalog.OperationSubtract {
				op = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s %s %s\t%s\n", r.ID, r.DisplayName, r.Numerator, op, r.Denominator, r.Format)
		}
		w.Flush()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(ratiosCmd)
}
