// Package cmd contains all CLI commands for kwgrep
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"KeywordGrep/internal/config"
	"KeywordGrep/internal/grep"
	"KeywordGrep/internal/logger"
	"KeywordGrep/internal/metrics"
	"KeywordGrep/internal/output"
)

var (
	cfgFile string
	verbose bool
	noColor bool
	root    string
	cfg     *config.Config
	lg      *logger.Logger
	version = "dev"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kwgrep",
	Short: "Parallel keyword search over text files",
	Long: `kwgrep scans a directory tree of text files for a set of keywords and
lists, per keyword, every file that contains it (case-insensitive substring match).

Two worker strategies are available: "shared" workers append into one locked
result, "isolated" workers build private results that are merged afterwards.

Example usage:
  kwgrep search --root data python thread      # Search with isolated workers
  kwgrep search --strategy shared -w 8         # Search default keywords with 8 shared workers
  kwgrep compare --root data                   # Run both strategies and compare`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// An interrupt cancels a running search.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .kwgrep.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&root, "root", "r", "", "directory to search (overrides search.root)")
}

// initConfig loads configuration and sets up the logger.
func initConfig() error {
	var err error

	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if root != "" {
		cfg.Search.Root = root
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	lg = logger.NewWithWriter(os.Stderr, level, cfg.Logging.Format)

	lg.Debug("Configuration loaded: root=%s keywords=%v extensions=%v shared_workers=%d isolated_workers=%d",
		cfg.Search.Root, cfg.Search.Keywords, cfg.Search.Extensions, cfg.Workers.Shared, cfg.Workers.Isolated)
	return nil
}

// newPrinter builds the printer for cmd's writers from config and flags.
func newPrinter(cmd *cobra.Command) *output.Printer {
	useColors := !noColor && output.ResolveColors(cfg.Output.Colors)
	return output.NewPrinterWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr(), useColors)
}

// keywordsFor returns the keywords given as arguments, or the configured ones.
func keywordsFor(args []string) []string {
	if len(args) > 0 {
		return args
	}
	return cfg.Search.Keywords
}

// newSearcher builds a searcher rooted at the configured directory. Reported
// paths are relative to that directory.
func newSearcher(keywords []string, reg prometheus.Registerer) (*grep.Searcher, error) {
	if err := cfg.CheckRoot(); err != nil {
		return nil, err
	}

	return grep.NewSearcher(grep.Options{
		FS:         osfs.New(cfg.Search.Root),
		Root:       ".",
		Keywords:   keywords,
		Extensions: cfg.Search.Extensions,
		Logger:     lg,
		Metrics:    metrics.New(reg),
	})
}

// writeMetrics dumps the registry when metrics.file is configured.
func writeMetrics(reg *prometheus.Registry) error {
	if cfg.Metrics.File == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(cfg.Metrics.File, reg); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	lg.Debug("Metrics written to %s", cfg.Metrics.File)
	return nil
}
