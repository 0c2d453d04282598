// Package metrics provides Prometheus metrics for the station viewer.
package metrics

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Fetch outcomes used as the "outcome" label of FeedFetchesTotal.
const (
	OutcomeSuccess   = "success"
	OutcomeHTTPError = "http_error"
	OutcomeTransport = "transport_error"
	OutcomeMalformed = "malformed"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Registry is the Prometheus registry for this metrics instance
	Registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Feed metrics
	FeedFetchesTotal    *prometheus.CounterVec
	FeedFetchDuration   *prometheus.HistogramVec
	StationsLoaded      *prometheus.GaugeVec
	SnapshotAgeSeconds  prometheus.Gauge
	UnmatchedStatusRows prometheus.Counter

	logger *slog.Logger

	// collectorStarted prevents spawning multiple collector goroutines
	collectorStarted atomic.Bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates and registers all application metrics with a new registry.
func New() *Metrics {
	return NewWithLogger(nil)
}

// NewWithLogger creates metrics with a logger for error reporting.
func NewWithLogger(logger *slog.Logger) *Metrics {
	registry := prometheus.NewRegistry()

	httpRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bysykkel_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bysykkel_http_request_duration_seconds",
			Help:    "HTTP request latency distribution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	feedFetchesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bysykkel_feed_fetches_total",
			Help: "Upstream GBFS feed fetches by feed and outcome",
		},
		[]string{"feed", "outcome"},
	)

	feedFetchDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bysykkel_feed_fetch_duration_seconds",
			Help:    "Upstream GBFS feed fetch latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"feed"},
	)

	stationsLoaded := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bysykkel_stations_loaded",
			Help: "Stations held by the last successful load, by collection",
		},
		[]string{"collection"},
	)

	snapshotAge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "bysykkel_snapshot_age_seconds",
		Help: "Seconds since the merged station collection was produced",
	})

	unmatched := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bysykkel_unmatched_status_records_total",
		Help: "Availability records skipped because their station is not in the directory",
	})

	registry.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		feedFetchesTotal,
		feedFetchDuration,
		stationsLoaded,
		snapshotAge,
		unmatched,
	)

	return &Metrics{
		Registry:            registry,
		HTTPRequestsTotal:   httpRequestsTotal,
		HTTPRequestDuration: httpRequestDuration,
		FeedFetchesTotal:    feedFetchesTotal,
		FeedFetchDuration:   feedFetchDuration,
		StationsLoaded:      stationsLoaded,
		SnapshotAgeSeconds:  snapshotAge,
		UnmatchedStatusRows: unmatched,
		logger:              logger,
	}
}

// ObserveFetch records one upstream fetch. Safe on a nil receiver.
func (m *Metrics) ObserveFetch(feed, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.FeedFetchesTotal.WithLabelValues(feed, outcome).Inc()
	m.FeedFetchDuration.WithLabelValues(feed).Observe(took.Seconds())
}

// SetStationsLoaded records the size of a collection. Safe on a nil receiver.
func (m *Metrics) SetStationsLoaded(collection string, n int) {
	if m == nil {
		return
	}
	m.StationsLoaded.WithLabelValues(collection).Set(float64(n))
}

// AddUnmatched counts availability records dropped by the merge.
func (m *Metrics) AddUnmatched(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.UnmatchedStatusRows.Add(float64(n))
}

// StartSnapshotAgeCollector periodically sets SnapshotAgeSeconds from age.
// age reports false while no snapshot exists. Calling it again is a no-op;
// Shutdown stops it.
func (m *Metrics) StartSnapshotAgeCollector(age func() (time.Duration, bool), interval time.Duration) {
	if age == nil {
		return
	}

	if !m.collectorStarted.CompareAndSwap(false, true) {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	// Add to WaitGroup BEFORE exposing cancel to avoid race with Shutdown
	m.wg.Add(1)
	m.cancel = cancel

	go func() {
		defer m.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				if m.logger != nil {
					m.logger.Error("panic in snapshot age collector", "error", r)
				}
			}
		}()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if d, ok := age(); ok {
					m.SnapshotAgeSeconds.Set(d.Seconds())
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Shutdown stops the collector goroutine and waits for it to exit.
// This method is safe to call multiple times.
func (m *Metrics) Shutdown() {
	if m == nil {
		return
	}
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
}
