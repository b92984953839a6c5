package mapreduce

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"KeywordGrep/internal/logger"
	"KeywordGrep/internal/metrics"
	"KeywordGrep/internal/types"
)

// ErrWorkerFailed is returned when any worker errors or panics. No partial
// result is produced in that case.
var ErrWorkerFailed = errors.New("scan worker failed")

// Emitter receives one (folded keyword, path) match.
type Emitter func(keyword, path string)

// Mapper scans one chunk and emits its matches. Map is called concurrently
// from several goroutines, each with its own chunk.
type Mapper interface {
	Map(ctx context.Context, chunk types.Chunk, emit Emitter) error
}

// Engine fans a file list out over workers and folds their matches back
// into one global result.
type Engine struct {
	strategy types.Strategy
	workers  int
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

// NewEngine creates an engine running the given strategy on up to workers goroutines.
func NewEngine(strategy types.Strategy, workers int) *Engine {
	return &Engine{
		strategy: strategy,
		workers:  workers,
		logger:   logger.Nop(),
	}
}

// SetLogger configures the logger used for worker lifecycle messages.
func (e *Engine) SetLogger(lg *logger.Logger) {
	if lg != nil {
		e.logger = lg
	}
}

// SetMetrics configures where run metrics are recorded.
func (e *Engine) SetMetrics(m *metrics.Metrics) {
	e.metrics = m
}

// Execute partitions files, runs the mapper over each chunk and returns the
// merged result. Every requested keyword is present in the result.
func (e *Engine) Execute(
	ctx context.Context,
	files []string,
	keywords []string,
	mapper Mapper,
) (types.GlobalResult, error) {
	start := time.Now()

	chunks := Partition(files, e.workers)
	if len(chunks) == 0 {
		return Merge(nil, keywords), nil
	}

	var (
		result types.GlobalResult
		err    error
	)
	switch e.strategy {
	case types.StrategyShared:
		result, err = e.runShared(ctx, chunks, keywords, mapper)
	case types.StrategyIsolated:
		result, err = e.runIsolated(ctx, chunks, keywords, mapper)
	default:
		return nil, fmt.Errorf("unknown strategy %q", e.strategy)
	}
	if err != nil {
		return nil, err
	}

	e.metrics.ObserveSearch(string(e.strategy), time.Since(start))
	return result, nil
}

// runShared lets every worker append into one locked result.
func (e *Engine) runShared(
	ctx context.Context,
	chunks []types.Chunk,
	keywords []string,
	mapper Mapper,
) (types.GlobalResult, error) {
	var wg sync.WaitGroup
	shared := NewSharedResult(keywords)
	errs := make([]error, len(chunks))

	for i, chunk := range chunks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = e.runWorker(ctx, chunk, mapper, shared.Add)
		}()
	}

	wg.Wait()
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return shared.Snapshot(), nil
}

// runIsolated gives every worker a private result that is sent back exactly
// once over a channel and merged after all workers have finished.
func (e *Engine) runIsolated(
	ctx context.Context,
	chunks []types.Chunk,
	keywords []string,
	mapper Mapper,
) (types.GlobalResult, error) {
	results := make(chan *types.LocalResult, len(chunks))
	g, gctx := errgroup.WithContext(ctx)

	for _, chunk := range chunks {
		g.Go(func() error {
			local := types.NewLocalResult(chunk.Index)
			if err := e.runWorker(gctx, chunk, mapper, local.Add); err != nil {
				return err
			}
			results <- local
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(results)

	locals := make([]*types.LocalResult, 0, len(chunks))
	for local := range results {
		locals = append(locals, local)
	}
	if len(locals) != len(chunks) {
		return nil, fmt.Errorf("%w: collected %d of %d worker results", ErrWorkerFailed, len(locals), len(chunks))
	}

	return Merge(locals, keywords), nil
}

// runWorker runs the mapper on one chunk, turning errors and panics into ErrWorkerFailed.
func (e *Engine) runWorker(ctx context.Context, chunk types.Chunk, mapper Mapper, sink Emitter) (err error) {
	label := string(e.strategy)
	lg := e.logger.With("strategy", label, "worker", chunk.Index)

	defer func() {
		if r := recover(); r != nil {
			lg.Error("Worker panicked: %v", r)
			err = fmt.Errorf("%w: worker %d panicked: %v", ErrWorkerFailed, chunk.Index, r)
		}
	}()

	e.metrics.RecordWorker(label, len(chunk.Files))
	lg.Debug("Worker started: files=%d", len(chunk.Files))

	emit := func(keyword, path string) {
		e.metrics.RecordMatch(label)
		sink(keyword, path)
	}
	if err := mapper.Map(ctx, chunk, emit); err != nil {
		lg.Error("Worker failed: %v", err)
		return fmt.Errorf("%w: worker %d: %w", ErrWorkerFailed, chunk.Index, err)
	}

	lg.Debug("Worker finished")
	return nil
}
