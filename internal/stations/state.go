package stations

import (
	"sync"
	"time"
)

type EventKind int

const (
	// RunStarted clears the error slot at the start of a pipeline run. The
	// previous collections stay readable until replaced.
	RunStarted EventKind = iota + 1
	DirectoryLoaded
	DirectoryFailed
	AvailabilityMerged
	AvailabilityFailed
)

func (k EventKind) String() string {
	switch k {
	case RunStarted:
		return "run_started"
	case DirectoryLoaded:
		return "directory_loaded"
	case DirectoryFailed:
		return "directory_failed"
	case AvailabilityMerged:
		return "availability_merged"
	case AvailabilityFailed:
		return "availability_failed"
	}
	return "unknown"
}

// Event is one completed step of a pipeline run.
type Event struct {
	Kind       EventKind
	Collection *Collection
	Index      *SpatialIndex
	Message    string
	At         time.Time
}

// State is everything the views derive from. There is one error slot; a
// later failure overwrites an earlier one.
type State struct {
	ErrorMessage string
	Directory    *Collection
	Merged       *Collection
	Index        *SpatialIndex

	DirectoryLoadedAt time.Time
	MergedAt          time.Time
}

// InitialState has an empty directory and no render-ready collection.
func InitialState() State {
	return State{Directory: NewCollection()}
}

// HasError reports whether the error slot is set.
func (s State) HasError() bool {
	return s.ErrorMessage != ""
}

// Apply returns the state after e. Each event touches only the fields its
// step owns.
func (s State) Apply(e Event) State {
	switch e.Kind {
	case RunStarted:
		s.ErrorMessage = ""
	case DirectoryLoaded:
		s.Directory = e.Collection
		s.DirectoryLoadedAt = e.At
	case DirectoryFailed, AvailabilityFailed:
		s.ErrorMessage = e.Message
	case AvailabilityMerged:
		s.Merged = e.Collection
		s.Index = e.Index
		s.MergedAt = e.At
	}
	return s
}

// Store serializes Dispatch and hands out snapshots to concurrent readers.
type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: InitialState()}
}

// Dispatch applies e and returns the new state.
func (st *Store) Dispatch(e Event) State {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.state = st.state.Apply(e)
	return st.state
}

// Snapshot returns the current state. Collections in it are never mutated,
// so the snapshot stays consistent after the lock is released.
func (st *Store) Snapshot() State {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.state
}
