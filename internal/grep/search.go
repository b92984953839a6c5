package grep

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/go-git/go-billy/v5"

	"KeywordGrep/internal/discovery"
	"KeywordGrep/internal/logger"
	"KeywordGrep/internal/mapreduce"
	"KeywordGrep/internal/metrics"
	"KeywordGrep/internal/types"
)

// Options configures a Searcher.
type Options struct {
	FS         billy.Filesystem
	Root       string
	Keywords   []string
	Extensions []string
	Logger     *logger.Logger
	Metrics    *metrics.Metrics
}

// Report is the outcome of one search run.
type Report struct {
	Strategy    types.Strategy
	Workers     int
	Files       int
	Result      types.Result
	Diagnostics []types.Diagnostic
	Elapsed     time.Duration
}

// Searcher runs keyword searches over one directory tree.
type Searcher struct {
	opts   Options
	lister *discovery.Lister
	logger *logger.Logger
}

// NewSearcher validates opts and creates a Searcher.
func NewSearcher(opts Options) (*Searcher, error) {
	if opts.FS == nil {
		return nil, fmt.Errorf("no filesystem provided")
	}
	if len(opts.Keywords) == 0 {
		return nil, ErrNoKeywords
	}
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	return &Searcher{
		opts:   opts,
		lister: discovery.NewLister(opts.FS, opts.Extensions, opts.Logger),
		logger: opts.Logger,
	}, nil
}

// ListFiles returns the text files under the search root.
func (s *Searcher) ListFiles(ctx context.Context) ([]string, error) {
	return s.lister.List(ctx, s.opts.Root)
}

// Search lists the files under the root and runs one strategy over them.
func (s *Searcher) Search(ctx context.Context, strategy types.Strategy, workers int) (*Report, error) {
	files, err := s.ListFiles(ctx)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx, files, strategy, workers)
}

// Run scans files with the given strategy and returns the normalized result.
// A workers value below 1 uses the host CPU count.
func (s *Searcher) Run(ctx context.Context, files []string, strategy types.Strategy, workers int) (*Report, error) {
	start := time.Now()
	lg := s.logger.With("strategy", string(strategy))

	if workers < 1 {
		workers = runtime.NumCPU()
	}

	report := &Report{
		Strategy: strategy,
		Files:    len(files),
	}

	if len(files) == 0 {
		lg.Warn("No text files found under %s", s.opts.Root)
		report.Result = mapreduce.Normalize(mapreduce.Merge(nil, s.opts.Keywords), s.opts.Keywords)
		report.Diagnostics = append(report.Diagnostics, types.Diagnostic{
			Kind:    types.DirectoryEmpty,
			Path:    s.opts.Root,
			Message: "no text files found",
		})
		report.Elapsed = time.Since(start)
		return report, nil
	}

	reader := discovery.NewReader(s.opts.FS, lg, s.opts.Metrics)
	kg, err := NewKeywordGrep(s.opts.Keywords, reader)
	if err != nil {
		return nil, err
	}

	engine := mapreduce.NewEngine(strategy, workers)
	engine.SetLogger(lg)
	engine.SetMetrics(s.opts.Metrics)

	global, err := engine.Execute(ctx, files, s.opts.Keywords, kg)
	if err != nil {
		return nil, fmt.Errorf("%s search failed: %w", strategy, err)
	}

	report.Workers = len(mapreduce.Partition(files, workers))
	report.Result = mapreduce.Normalize(global, s.opts.Keywords)
	report.Diagnostics = append(report.Diagnostics, reader.Failures()...)
	report.Elapsed = time.Since(start)

	lg.Info("Search finished: files=%d workers=%d read_failures=%d elapsed=%s",
		report.Files, report.Workers, len(reader.Failures()), report.Elapsed)
	return report, nil
}
