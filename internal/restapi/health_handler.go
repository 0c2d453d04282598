package restapi

import (
	"encoding/json"
	"net/http"

	"viewer.bysykkel.dev/internal/clock"
)

// HealthResponse represents the JSON response from the health endpoint.
type HealthResponse struct {
	Status             string  `json:"status"`
	Detail             string  `json:"detail,omitempty"`
	Stations           int     `json:"stations"`
	SnapshotAgeSeconds float64 `json:"snapshotAgeSeconds,omitempty"`
	Stale              bool    `json:"stale,omitempty"`
}

// healthHandler answers 200 only when a merged collection exists and the
// error slot is empty. A stale snapshot is still healthy but flagged.
func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if api.Application == nil || api.Loader == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(HealthResponse{
			Status: "unavailable",
			Detail: "station loader not initialized",
		})
		return
	}

	state := api.Snapshot()

	if state.HasError() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(HealthResponse{
			Status: "unavailable",
			Detail: state.ErrorMessage,
		})
		return
	}

	if state.Merged == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(HealthResponse{
			Status: "starting",
			Detail: "station data has not been loaded yet",
		})
		return
	}

	clk := api.Clock
	if clk == nil {
		clk = clock.RealClock{}
	}
	now := clk.Now()
	detector := api.staleDetector
	if detector == nil {
		detector = NewStaleDetector()
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(HealthResponse{
		Status:             "ok",
		Stations:           state.Merged.Len(),
		SnapshotAgeSeconds: detector.Age(state.MergedAt, now).Seconds(),
		Stale:              detector.Check(state.MergedAt, now),
	})
}
