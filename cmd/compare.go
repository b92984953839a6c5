package cmd

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"KeywordGrep/internal/coordinator"
)

// ErrMismatch is returned when the two strategies disagree.
var ErrMismatch = errors.New("strategies produced different results")

var (
	compareShared   int
	compareIsolated int
)

var compareCmd = &cobra.Command{
	Use:   "compare [keywords...]",
	Short: "Run both worker strategies and check they agree",
	Long: `Run the shared and the isolated worker strategies over the same file
list, print both results, and report whether they are identical.
Exits with an error when they differ.

Examples:
  kwgrep compare
  kwgrep compare --shared-workers 4 --isolated-workers 16 python event`,
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().IntVar(&compareShared, "shared-workers", -1, "shared strategy workers (default from config)")
	compareCmd.Flags().IntVar(&compareIsolated, "isolated-workers", -1, "isolated strategy workers (default from config, 0 = CPU count)")
}

func runCompare(cmd *cobra.Command, args []string) error {
	req := coordinator.Request{
		SharedWorkers:   cfg.Workers.Shared,
		IsolatedWorkers: cfg.Workers.Isolated,
	}
	if compareShared >= 0 {
		req.SharedWorkers = compareShared
	}
	if compareIsolated >= 0 {
		req.IsolatedWorkers = compareIsolated
	}

	keywords := keywordsFor(args)
	reg := prometheus.NewRegistry()
	searcher, err := newSearcher(keywords, reg)
	if err != nil {
		return err
	}

	comparison, err := coordinator.NewOrchestrator(searcher, lg).Compare(cmd.Context(), req)
	if err != nil {
		return err
	}

	printer := newPrinter(cmd)
	if err := printer.PrintReport("Results (shared workers)", comparison.Shared, keywords); err != nil {
		return err
	}
	if err := printer.PrintReport("Results (isolated workers)", comparison.Isolated, keywords); err != nil {
		return err
	}
	if err := writeMetrics(reg); err != nil {
		return err
	}

	if !comparison.Match {
		printer.Error("Results differ between strategies (run %s):\n%s", comparison.RunID, comparison.Diff)
		return ErrMismatch
	}
	printer.Success("Results match for both strategies (run %s)", comparison.RunID)
	return nil
}
