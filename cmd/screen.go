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

var screenCmd = &cobra.Command{
	Use:   "screen <metric> <period>",
	Short: "Rank every filer reporting a metric for a calendar period",
	Long:  "Uses the XBRL frames API. Period is CY2024 for annual or CY2024Q1 for quarterly frames.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer eng.Close() //nolint:errcheck

		opts := engine.ScreenOptions{}
		if cmd.Flags().Changed("min") {
			v, _ := cmd.Flags().GetFloat64("min")
			opts.Min = &v
		}
		if cmd.Flags().Changed("max") {
			v, _ := cmd.Flags().GetFloat64("max")
			opts.Max = &v
		}
		opts.Ascending, _ = cmd.Flags().GetBool("asc")
		opts.Limit, _ = cmd.Flags().GetInt("limit")

		result, qerr := eng.Screen(ctx, args[0], args[1], opts)
		if qerr != nil {
			return renderError(qerr)
		}

		if jsonOutput {
			return emitJSON(result)
		}
		formatScreenResult(os.Stdout, result)
		return nil
	},
}

func init() {
	screenCmd.Flags().Float64("min", 0, "minimum value filter")
	screenCmd.Flags().Float64("max", 0, "maximum value filter")
	screenCmd.Flags().Bool("asc", false, "sort ascending instead of descending")
	screenCmd.Flags().Int("limit", engine.DefaultScreenLimit, "max entries to show")

	rootCmd.AddCommand(screenCmd)
}

func formatScreenResult(out io.Writer, r *model.ScreenResult) {
	fmt.Fprintf(out, "%s - %s (concept %s)\n\n", r.Metric.DisplayName, r.Period, r.ConceptUsed)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tCOMPANY\tCIK\tVALUE")
	for i, e := range r.Entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, e.EntityName, e.CIK, formatAmount(e.Value, r.Metric.UnitType))
	}
	w.Flush()
}
