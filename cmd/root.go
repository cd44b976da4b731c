package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/secfacts/internal/config"
	"github.com/sells-group/secfacts/internal/engine"
	"github.com/sells-group/secfacts/internal/model"
)

var (
	cfg        *config.Config
	jsonOutput bool

	// printer renders large dollar amounts with thousands separators.
	printer = message.NewPrinter(language.AmericanEnglish)
)

var rootCmd = &cobra.Command{
	Use:   "secfacts",
	Short: "Query SEC EDGAR XBRL financial facts",
	Long:  "Resolves companies, extracts metrics from XBRL company facts, derives growth figures and ratios, and screens filers across the market.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit JSON instead of tables")
}

// initEngine builds the engine from the loaded config.
func initEngine(ctx context.Context) (*engine.Engine, error) {
	return engine.New(ctx, cfg)
}

// emitJSON pretty-prints v to stdout.
func emitJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderError prints a taxonomy error with its suggestions and returns it as
// the command error so the process exits non-zero.
func renderError(qerr *model.Error) error {
	fmt.Fprintf(os.Stderr, "error (%s): %s\n", qerr.Code, qerr.Message)
	if len(qerr.Suggestions) > 0 {
		fmt.Fprintln(os.Stderr, "did you mean:")
		for _, s := range qerr.Suggestions {
			fmt.Fprintf(os.Stderr, "  %s\n", s)
		}
	}
	if len(qerr.Available) > 0 {
		fmt.Fprintln(os.Stderr, "available:")
		for _, a := range qerr.Available {
			fmt.Fprintf(os.Stderr, "  %s\n", a)
		}
	}
	return fmt.Errorf("%s", qerr.Code)
}

// formatAmount renders a metric value for tables. Currency and share counts
// get separators; ratio-unit values like EPS keep two decimals.
func formatAmount(v float64, unitType string) string {
	switch unitType {
	case "ratio":
		return printer.Sprintf("%.2f", v)
	default:
		return printer.Sprintf("%.0f", v)
	}
}

// formatRatio renders a composed ratio per its format convention.
func formatRatio(v float64, format string) string {
	switch format {
	case "percentage":
		return fmt.Sprintf("%.1f%%", v)
	case "multiple":
		return fmt.Sprintf("%.2fx", v)
	default:
		return printer.Sprintf("%.0f", v)
	}
}
