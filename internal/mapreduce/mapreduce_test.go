package mapreduce

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"KeywordGrep/internal/metrics"
	"KeywordGrep/internal/types"
)

// tableMapper emits the keywords listed for each path.
type tableMapper struct {
	contents map[string][]string
}

func (m *tableMapper) Map(ctx context.Context, chunk types.Chunk, emit Emitter) error {
	for _, path := range chunk.Files {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, kw := range m.contents[path] {
			emit(kw, path)
		}
	}
	return nil
}

// ChaosMapper wraps a mapper, sleeps a random amount before each chunk so
// workers finish in arbitrary order, and panics on the listed paths.
type ChaosMapper struct {
	inner    Mapper
	maxDelay time.Duration
	panicOn  map[string]bool
	mu       sync.Mutex
	rng      *rand.Rand
	calls    atomic.Int32
}

func NewChaosMapper(inner Mapper, maxDelay time.Duration, seed uint64) *ChaosMapper {
	return &ChaosMapper{
		inner:    inner,
		maxDelay: maxDelay,
		panicOn:  make(map[string]bool),
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b9)),
	}
}

func (cm *ChaosMapper) Map(ctx context.Context, chunk types.Chunk, emit Emitter) error {
	cm.calls.Add(1)

	cm.mu.Lock()
	delay := time.Duration(cm.rng.Int64N(int64(cm.maxDelay) + 1))
	cm.mu.Unlock()
	time.Sleep(delay)

	for _, path := range chunk.Files {
		if cm.panicOn[path] {
			panic(fmt.Sprintf("chaos: refusing to scan %s", path))
		}
	}
	return cm.inner.Map(ctx, chunk, emit)
}

func corpus(n int) (*tableMapper, []string) {
	m := &tableMapper{contents: make(map[string][]string)}
	files := fileList(n)
	for i, f := range files {
		for j, kw := range keywords {
			if (i+1)%(j+2) == 0 {
				m.contents[f] = append(m.contents[f], kw)
			}
		}
	}
	return m, files
}

func TestExecuteStrategiesAgreeForAnyWorkerCount(t *testing.T) {
	mapper, files := corpus(37)

	want, err := NewEngine(types.StrategyShared, 1).Execute(context.Background(), files, keywords, mapper)
	require.NoError(t, err)
	wantResult := Normalize(want, keywords)

	for _, strategy := range []types.Strategy{types.StrategyShared, types.StrategyIsolated} {
		for workers := 1; workers <= 12; workers++ {
			got, err := NewEngine(strategy, workers).Execute(context.Background(), files, keywords, mapper)
			require.NoError(t, err)
			assert.Equal(t, wantResult, Normalize(got, keywords), "strategy=%s workers=%d", strategy, workers)
		}
	}
}

func TestExecuteEmptyFileList(t *testing.T) {
	for _, strategy := range []types.Strategy{types.StrategyShared, types.StrategyIsolated} {
		got, err := NewEngine(strategy, 4).Execute(context.Background(), nil, keywords, &tableMapper{})
		require.NoError(t, err)
		require.Len(t, got, len(keywords))
		for _, kw := range keywords {
			assert.Empty(t, got[kw])
		}
	}
}

func TestExecuteUnknownStrategy(t *testing.T) {
	_, files := corpus(3)
	_, err := NewEngine("fork", 2).Execute(context.Background(), files, keywords, &tableMapper{})
	assert.ErrorContains(t, err, "unknown strategy")
}

func TestExecuteRecordsMetrics(t *testing.T) {
	mapper, files := corpus(10)
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	engine := NewEngine(types.StrategyIsolated, 4)
	engine.SetMetrics(m)
	_, err := engine.Execute(context.Background(), files, keywords, mapper)
	require.NoError(t, err)

	emitted := 0
	for _, kws := range mapper.contents {
		emitted += len(kws)
	}
	assert.Equal(t, 4.0, testutil.ToFloat64(m.Workers.WithLabelValues("isolated")))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.FilesDispatched.WithLabelValues("isolated")))
	assert.Equal(t, float64(emitted), testutil.ToFloat64(m.Matches.WithLabelValues("isolated")))
}

// TestChaosCompletionOrder randomizes worker completion order and checks
// that neither strategy's output depends on it.
func TestChaosCompletionOrder(t *testing.T) {
	mapper, files := corpus(24)
	base, err := NewEngine(types.StrategyIsolated, 1).Execute(context.Background(), files, keywords, mapper)
	require.NoError(t, err)
	want := Normalize(base, keywords)

	for seed := uint64(1); seed <= 5; seed++ {
		for _, strategy := range []types.Strategy{types.StrategyShared, types.StrategyIsolated} {
			chaos := NewChaosMapper(mapper, 3*time.Millisecond, seed)
			got, err := NewEngine(strategy, 6).Execute(context.Background(), files, keywords, chaos)
			require.NoError(t, err)
			assert.Equal(t, want, Normalize(got, keywords), "seed=%d strategy=%s", seed, strategy)
			assert.Equal(t, int32(6), chaos.calls.Load())
		}
	}
}

// TestChaosWorkerPanicFailsSearch checks that a crashing worker aborts the
// whole search instead of silently dropping its chunk.
func TestChaosWorkerPanicFailsSearch(t *testing.T) {
	mapper, files := corpus(12)

	for _, strategy := range []types.Strategy{types.StrategyShared, types.StrategyIsolated} {
		chaos := NewChaosMapper(mapper, time.Millisecond, 7)
		chaos.panicOn[files[5]] = true

		got, err := NewEngine(strategy, 4).Execute(context.Background(), files, keywords, chaos)
		require.Error(t, err, "strategy=%s", strategy)
		assert.ErrorIs(t, err, ErrWorkerFailed)
		assert.Contains(t, err.Error(), "worker 1 panicked")
		assert.Nil(t, got)
	}
}

type failingMapper struct{ err error }

func (f failingMapper) Map(context.Context, types.Chunk, Emitter) error { return f.err }

func TestExecuteWorkerErrorIsFatal(t *testing.T) {
	boom := errors.New("disk on fire")
	_, files := corpus(6)

	for _, strategy := range []types.Strategy{types.StrategyShared, types.StrategyIsolated} {
		_, err := NewEngine(strategy, 3).Execute(context.Background(), files, keywords, failingMapper{err: boom})
		assert.ErrorIs(t, err, ErrWorkerFailed)
		assert.ErrorIs(t, err, boom)
	}
}

func TestExecuteCanceledContext(t *testing.T) {
	mapper, files := corpus(6)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, strategy := range []types.Strategy{types.StrategyShared, types.StrategyIsolated} {
		_, err := NewEngine(strategy, 3).Execute(ctx, files, keywords, mapper)
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func BenchmarkExecuteShared(b *testing.B) {
	mapper, files := corpus(500)
	engine := NewEngine(types.StrategyShared, 8)
	for b.Loop() {
		_, _ = engine.Execute(context.Background(), files, keywords, mapper)
	}
}

func BenchmarkExecuteIsolated(b *testing.B) {
	mapper, files := corpus(500)
	engine := NewEngine(types.StrategyIsolated, 8)
	for b.Loop() {
		_, _ = engine.Execute(context.Background(), files, keywords, mapper)
	}
}
