// Package metrics provides Prometheus metrics for keyword search runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "kwgrep"

// Metrics holds the collectors for one registry. A nil *Metrics records nothing.
type Metrics struct {
	// FilesDispatched counts files handed to workers.
	FilesDispatched *prometheus.CounterVec
	// Matches counts (keyword, path) pairs emitted by workers.
	Matches *prometheus.CounterVec
	// Workers counts workers started.
	Workers *prometheus.CounterVec
	// ReadFailures counts files that could not be read.
	ReadFailures prometheus.Counter
	// SearchDuration measures a full engine run.
	SearchDuration *prometheus.HistogramVec
}

// New registers the search collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		FilesDispatched: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "files_dispatched_total",
				Help:      "Total number of files handed to scan workers",
			},
			[]string{"strategy"},
		),
		Matches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "matches_total",
				Help:      "Total number of keyword matches emitted by scan workers",
			},
			[]string{"strategy"},
		),
		Workers: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "workers_total",
				Help:      "Total number of scan workers started",
			},
			[]string{"strategy"},
		),
		ReadFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "read_failures_total",
				Help:      "Total number of files that could not be read",
			},
		),
		SearchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_duration_seconds",
				Help:      "Duration of a search run in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"strategy"},
		),
	}
}

// RecordWorker records a worker starting on a chunk of n files.
func (m *Metrics) RecordWorker(strategy string, n int) {
	if m == nil {
		return
	}
	m.Workers.WithLabelValues(strategy).Inc()
	m.FilesDispatched.WithLabelValues(strategy).Add(float64(n))
}

// RecordMatch records one emitted match.
func (m *Metrics) RecordMatch(strategy string) {
	if m == nil {
		return
	}
	m.Matches.WithLabelValues(strategy).Inc()
}

// RecordReadFailure records a file that could not be read.
func (m *Metrics) RecordReadFailure() {
	if m == nil {
		return
	}
	m.ReadFailures.Inc()
}

// ObserveSearch records the duration of a run.
func (m *Metrics) ObserveSearch(strategy string, d time.Duration) {
	if m == nil {
		return
	}
	m.SearchDuration.WithLabelValues(strategy).Observe(d.Seconds())
}
