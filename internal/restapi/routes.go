package restapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Cache tiers in seconds.
const (
	noCache       = 0
	stationsCache = 30
	configCache   = 300
)

// SetRoutes registers the API on mux.
func (api *RestAPI) SetRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", api.healthHandler)

	api.handle(mux, "GET /api/stations", stationsCache, api.stationsHandler)
	api.handle(mux, "GET /api/stations/available", stationsCache, api.availableStationsHandler)
	api.handle(mux, "GET /api/stations/nearby", stationsCache, api.nearbyStationsHandler)
	api.handle(mux, "GET /api/stations/{id}", stationsCache, api.stationHandler)
	api.handle(mux, "POST /api/stations/refresh", noCache, api.refreshHandler)

	api.handle(mux, "GET /api/config", configCache, api.configHandler)
	api.handle(mux, "GET /api/current-time", noCache, api.currentTimeHandler)

	if api.Metrics != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(api.Metrics.Registry, promhttp.HandlerOpts{}))
	}
}

func (api *RestAPI) handle(mux *http.ServeMux, pattern string, cacheSeconds int, h http.HandlerFunc) {
	mux.Handle(pattern, CacheControlMiddleware(cacheSeconds, h))
}
