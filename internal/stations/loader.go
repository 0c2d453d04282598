package stations

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"viewer.bysykkel.dev/internal/clock"
	"viewer.bysykkel.dev/internal/gbfs"
	"viewer.bysykkel.dev/internal/logging"
	"viewer.bysykkel.dev/internal/metrics"
)

// FeedClient is the part of gbfs.Client the loader needs.
type FeedClient interface {
	StationInformation(ctx context.Context) ([]gbfs.StationInformation, error)
	StationStatus(ctx context.Context) ([]gbfs.StationStatus, error)
}

// Loader runs the two-stage pipeline: fetch the directory, then fetch
// availability and merge it into that directory.
type Loader struct {
	client  FeedClient
	store   *Store
	metrics *metrics.Metrics
	clock   clock.Clock
	logger  *slog.Logger

	// runMu keeps runs from overlapping.
	runMu sync.Mutex
}

// NewLoader creates a loader writing into store. A nil store gets a fresh one.
func NewLoader(client FeedClient, store *Store, m *metrics.Metrics, clk clock.Clock, logger *slog.Logger) *Loader {
	if store == nil {
		store = NewStore()
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		client:  client,
		store:   store,
		metrics: m,
		clock:   clk,
		logger:  logger.With(slog.String("component", "station_loader")),
	}
}

// Store returns the store the loader writes to.
func (l *Loader) Store() *Store {
	return l.store
}

// Load runs the pipeline once and returns the resulting state together with
// the failure that set the error slot, if any. A directory failure ends the
// run before availability is requested. When ctx is cancelled mid-run no
// further events are dispatched.
func (l *Loader) Load(ctx context.Context) (State, error) {
	l.runMu.Lock()
	defer l.runMu.Unlock()

	ctx = logging.WithLogger(ctx, l.logger)
	l.store.Dispatch(Event{Kind: RunStarted, At: l.clock.Now()})

	records, err := l.client.StationInformation(ctx)
	if err != nil {
		return l.fail(ctx, DirectoryFailed, err)
	}
	directory := FromDirectory(records)
	l.store.Dispatch(Event{Kind: DirectoryLoaded, Collection: directory, At: l.clock.Now()})
	l.metrics.SetStationsLoaded("directory", directory.Len())
	logging.LogOperation(l.logger, "station_directory_loaded", slog.Int("stations", directory.Len()))

	if err := ctx.Err(); err != nil {
		return l.store.Snapshot(), err
	}

	statuses, err := l.client.StationStatus(ctx)
	if err != nil {
		return l.fail(ctx, AvailabilityFailed, err)
	}
	merged, unmatched := Merge(directory, statuses)
	state := l.store.Dispatch(Event{
		Kind:       AvailabilityMerged,
		Collection: merged,
		Index:      NewSpatialIndex(merged),
		At:         l.clock.Now(),
	})
	l.metrics.SetStationsLoaded("merged", merged.Len())
	l.metrics.AddUnmatched(unmatched)
	logging.LogOperation(l.logger, "station_availability_merged",
		slog.Int("stations", merged.Len()),
		slog.Int("status_records", len(statuses)),
		slog.Int("unmatched", unmatched))

	return state, nil
}

func (l *Loader) fail(ctx context.Context, kind EventKind, err error) (State, error) {
	if ctx.Err() != nil {
		return l.store.Snapshot(), err
	}

	message := gbfs.DisplayMessage(err)
	logging.LogError(l.logger, fmt.Sprintf("station pipeline step failed: %s", kind), err,
		slog.String("display_message", message))

	state := l.store.Dispatch(Event{Kind: kind, Message: message, At: l.clock.Now()})
	return state, err
}
