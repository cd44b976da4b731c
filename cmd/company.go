package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/secfacts/internal/edgar"
)

var companyCmd = &cobra.Command{
	Use:   "company <query>",
	Short: "Resolve a ticker, alias, or company name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer eng.Close() //nolint:errcheck

		company, qerr := eng.Resolve(ctx, args[0])
		if qerr != nil {
			return renderError(qerr)
		}

		if jsonOutput {
			return emitJSON(company)
		}
		fmt.Printf("%s\nTicker: %s\nCIK:    %s\n", company.Name, company.Ticker, company.CIK)
		return nil
	},
}

var companyFilingsCmd = &cobra.Command{
	Use:   "filings <query>",
	Short: "List a company's recent filings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer eng.Close() //nolint:errcheck

		company, qerr := eng.Resolve(ctx, args[0])
		if qerr != nil {
			return renderError(qerr)
		}

		subs, err := eng.Client().GetCompanySubmissions(ctx, company.CIK)
		if err != nil {
			return err
		}

		form, _ := cmd.Flags().GetString("form")
		limit, _ := cmd.Flags().GetInt("limit")

		if jsonOutput {
			return emitJSON(subs)
		}
		formatFilings(os.Stdout, subs, form, limit)
		return nil
	},
}

func init() {
	companyFilingsCmd.Flags().String("form", "", "filter by form type (10-K, 10-Q, 8-K, ...)")
	companyFilingsCmd.Flags().Int("limit", 20, "max filings to show")

	companyCmd.AddCommand(companyFilingsCmd)
	rootCmd.AddCommand(companyCmd)
}

// formatFilings walks the column-oriented filing index; entries at the same
// index belong to the same filing.
func formatFilings(out io.Writer, subs *edgar.Submissions, form string, limit int) {
	fmt.Fprintf(out, "%s\n\n", subs.Name)

	recent := subs.Filings.Recent
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FORM\tFILED\tREPORT DATE\tACCESSION")

	shown := 0
	for i := range recent.AccessionNumber {
		if form != "" && recent.Form[i] != form {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			recent.Form[i], recent.FilingDate[i], recent.ReportDate[i], recent.AccessionNumber[i])
		shown++
		if limit > 0 && shown >= limit {
			break
		}
	}
	w.Flush()

	if shown == 0 {
		fmt.Fprintln(out, "No matching filings.")
	}
}
