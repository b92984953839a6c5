package cmd

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"KeywordGrep/internal/types"
)

var (
	searchStrategy string
	searchWorkers  int
)

var searchCmd = &cobra.Command{
	Use:   "search [keywords...]",
	Short: "Search for keywords with one worker strategy",
	Long: `Search the root directory for the given keywords (or the configured
defaults) using a single worker strategy, and print the matching files.

Examples:
  kwgrep search python thread
  kwgrep search --strategy shared --workers 8`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchStrategy, "strategy", "s", string(types.StrategyIsolated), "worker strategy: shared or isolated")
	searchCmd.Flags().IntVarP(&searchWorkers, "workers", "w", -1, "number of workers (default from config, 0 = CPU count)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	strategy, ok := types.ParseStrategy(searchStrategy)
	if !ok {
		return fmt.Errorf("invalid strategy %q: must be shared or isolated", searchStrategy)
	}

	workers := searchWorkers
	if workers < 0 {
		workers = cfg.Workers.Isolated
		if strategy == types.StrategyShared {
			workers = cfg.Workers.Shared
		}
	}

	keywords := keywordsFor(args)
	reg := prometheus.NewRegistry()
	searcher, err := newSearcher(keywords, reg)
	if err != nil {
		return err
	}

	report, err := searcher.Search(cmd.Context(), strategy, workers)
	if err != nil {
		return err
	}

	printer := newPrinter(cmd)
	if err := printer.PrintReport(fmt.Sprintf("Results (%s)", strategy), report, keywords); err != nil {
		return err
	}
	return writeMetrics(reg)
}
