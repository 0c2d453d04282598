package restapi

import (
	"fmt"
	"net/http"
	"strconv"

	"viewer.bysykkel.dev/internal/models"
	"viewer.bysykkel.dev/internal/stations"
	"viewer.bysykkel.dev/internal/utils"
)

const (
	defaultNearbyRadius = 500.0
	maxNearbyRadius     = 5000.0
)

// loadedState returns the current snapshot when it can answer station
// queries. Otherwise it writes the 503 and returns false.
func (api *RestAPI) loadedState(w http.ResponseWriter, r *http.Request) (stations.State, bool) {
	state := api.Snapshot()
	if state.HasError() {
		api.sendError(w, r, http.StatusServiceUnavailable, state.ErrorMessage)
		return state, false
	}
	if state.Merged == nil {
		api.sendError(w, r, http.StatusServiceUnavailable, "station data not loaded yet")
		return state, false
	}
	return state, true
}

func (api *RestAPI) stationsHandler(w http.ResponseWriter, r *http.Request) {
	state, ok := api.loadedState(w, r)
	if !ok {
		return
	}
	api.sendResponse(w, r, models.NewListResponse(state.Merged.Stations(), api.Clock))
}

func (api *RestAPI) availableStationsHandler(w http.ResponseWriter, r *http.Request) {
	state, ok := api.loadedState(w, r)
	if !ok {
		return
	}

	var available []stations.Station
	for _, s := range state.Merged.Stations() {
		if s.AvailableBikes != nil && *s.AvailableBikes > 0 {
			available = append(available, s)
		}
	}
	if len(available) == 0 {
		api.sendNoContent(w)
		return
	}
	api.sendResponse(w, r, models.NewListResponse(available, api.Clock))
}

func (api *RestAPI) stationHandler(w http.ResponseWriter, r *http.Request) {
	rawID := r.PathValue("id")
	id, err := strconv.Atoi(rawID)
	if err != nil {
		api.sendError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid station id %q", rawID))
		return
	}

	state, ok := api.loadedState(w, r)
	if !ok {
		return
	}

	station, found := state.Merged.Get(id)
	if !found {
		api.sendNotFound(w, r, fmt.Sprintf("No data found for station with ID %d", id))
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(station, api.Clock))
}

func (api *RestAPI) nearbyStationsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	lat, errLat := strconv.ParseFloat(query.Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(query.Get("lon"), 64)
	if errLat != nil || errLon != nil || !utils.ValidCoordinate(lat, lon) {
		api.sendError(w, r, http.StatusBadRequest, "lat and lon must be valid coordinates")
		return
	}

	radius := defaultNearbyRadius
	if raw := query.Get("radius"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			api.sendError(w, r, http.StatusBadRequest, "radius must be a positive number of meters")
			return
		}
		radius = min(parsed, maxNearbyRadius)
	}

	state, ok := api.loadedState(w, r)
	if !ok {
		return
	}

	hits := state.Index.Nearby(lat, lon, radius)
	api.sendResponse(w, r, models.NewListResponse(hits, api.Clock))
}

// refreshHandler runs the pipeline once more. A failed run answers 502 with
// the message the table would show.
func (api *RestAPI) refreshHandler(w http.ResponseWriter, r *http.Request) {
	if api.Loader == nil {
		api.sendError(w, r, http.StatusServiceUnavailable, "station loader not configured")
		return
	}

	state, err := api.Loader.Load(r.Context())
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		api.sendError(w, r, http.StatusBadGateway, state.ErrorMessage)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(models.NewSnapshotStatus(state), api.Clock))
}
