package coordinator

import (
	"context"
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"KeywordGrep/internal/grep"
	"KeywordGrep/internal/logger"
	"KeywordGrep/internal/types"
)

// Request describes one comparison run.
type Request struct {
	SharedWorkers   int
	IsolatedWorkers int
}

// Comparison holds both strategy reports and whether they agree.
type Comparison struct {
	RunID    string
	Shared   *grep.Report
	Isolated *grep.Report
	Match    bool
	// Diff is a go-cmp diff (shared -> isolated), empty when Match is true.
	Diff string
}

// Orchestrator runs both concurrency strategies over the same file list and
// checks that they produce the same normalized result.
type Orchestrator struct {
	searcher *grep.Searcher
	logger   *logger.Logger
}

// NewOrchestrator creates an orchestrator on top of searcher.
func NewOrchestrator(searcher *grep.Searcher, lg *logger.Logger) *Orchestrator {
	if lg == nil {
		lg = logger.Nop()
	}
	return &Orchestrator{
		searcher: searcher,
		logger:   lg,
	}
}

// Compare lists the files once, runs the shared strategy and then the
// isolated strategy over that list, and compares the results. A worker
// failure in either run aborts the comparison.
func (o *Orchestrator) Compare(ctx context.Context, req Request) (*Comparison, error) {
	runID := "run-" + uuid.New().String()[:8]
	lg := o.logger.With("run_id", runID)

	files, err := o.searcher.ListFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	lg.Info("Comparison started: files=%d shared_workers=%d isolated_workers=%d",
		len(files), req.SharedWorkers, req.IsolatedWorkers)

	shared, err := o.searcher.Run(ctx, files, types.StrategyShared, req.SharedWorkers)
	if err != nil {
		return nil, err
	}

	isolated, err := o.searcher.Run(ctx, files, types.StrategyIsolated, req.IsolatedWorkers)
	if err != nil {
		return nil, err
	}

	cmpResult := &Comparison{
		RunID:    runID,
		Shared:   shared,
		Isolated: isolated,
		Match:    shared.Result.Equal(isolated.Result),
	}
	if !cmpResult.Match {
		cmpResult.Diff = cmp.Diff(shared.Result, isolated.Result)
		lg.Error("Strategies disagree:\n%s", cmpResult.Diff)
	} else {
		lg.Info("Strategies agree: keywords=%d", len(shared.Result))
	}

	return cmpResult, nil
}
