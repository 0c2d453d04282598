package restapi

import (
	"net/http"

	"viewer.bysykkel.dev/internal/gbfs"
	"viewer.bysykkel.dev/internal/models"
)

func (api *RestAPI) configHandler(w http.ResponseWriter, r *http.Request) {
	cfg := api.Config

	configEntry := models.ConfigModel{
		ID:               "bysykkel-viewer",
		Name:             "Bysykkel station viewer",
		Environment:      cfg.Env.String(),
		ClientIdentifier: cfg.ClientIdentifier,
		RequestTimeoutMs: cfg.RequestTimeout.Milliseconds(),
		Feeds: []models.FeedConfig{
			{Name: gbfs.FeedStationInformation, URL: cfg.StationInformationURL},
			{Name: gbfs.FeedStationStatus, URL: cfg.StationStatusURL},
		},
	}

	api.sendResponse(w, r, models.NewEntryResponse(configEntry, api.Clock))
}
