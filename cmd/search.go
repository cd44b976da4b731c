package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/secfacts/internal/edgar"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over filing documents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer eng.Close() //nolint:errcheck

		forms, _ := cmd.Flags().GetStringSlice("forms")
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")
		limit, _ := cmd.Flags().GetInt("limit")

		hits, err := eng.Client().SearchFilings(ctx, args[0], forms, start, end, limit)
		if err != nil {
			return err
		}

		if jsonOutput {
			return emitJSON(hits)
		}
		formatSearchHits(os.Stdout, hits)
		return nil
	},
}

func init() {
	searchCmd.Flags().StringSlice("forms", nil, "restrict to form types (10-K, 8-K, ...)")
	searchCmd.Flags().String("start", "", "start date (YYYY-MM-DD)")
	searchCmd.Flags().String("end", "", "end date (YYYY-MM-DD)")
	searchCmd.Flags().Int("limit", 10, "max hits to show")

	rootCmd.AddCommand(searchCmd)
}

func formatSearchHits(out io.Writer, hits []edgar.SearchHit) {
	if len(hits) == 0 {
		fmt.Fprintln(out, "No results.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COMPANY\tFORM\tFILED\tDOCUMENT")
	for _, h := range hits {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			strings.Join(h.Source.DisplayNames, "; "),
			h.Source.FormType, h.Source.FileDate, h.ID)
	}
	w.Flush()
}
