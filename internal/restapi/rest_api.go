package restapi

import (
	"viewer.bysykkel.dev/internal/app"
)

// RestAPI serves the station query API on top of the shared Application.
type RestAPI struct {
	*app.Application
	staleDetector *StaleDetector
}

func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application:   app,
		staleDetector: NewStaleDetector(),
	}
}

// Shutdown stops background work owned by the API's dependencies.
func (api *RestAPI) Shutdown() {
	if api == nil || api.Application == nil {
		return
	}
	api.Metrics.Shutdown()
}
