package webui

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"viewer.bysykkel.dev/internal/app"
	"viewer.bysykkel.dev/internal/appconf"
	"viewer.bysykkel.dev/internal/clock"
	"viewer.bysykkel.dev/internal/stations"
)

func intPtr(v int) *int { return &v }

// newTestWebUI returns a WebUI whose store holds state.
func newTestWebUI(t *testing.T, env appconf.Environment, events ...stations.Event) *WebUI {
	t.Helper()
	store := stations.NewStore()
	for _, e := range events {
		store.Dispatch(e)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewMockClock(time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC))

	cfg := appconf.Default()
	cfg.Env = env
	return NewWebUI(&app.Application{
		Config: cfg,
		Logger: logger,
		Loader: stations.NewLoader(nil, store, nil, clk, logger),
		Clock:  clk,
	})
}

func mergedEvents() []stations.Event {
	directory := stations.NewCollection()
	directory.Put(stations.Station{ID: 1, Name: "Bogstadveien", Address: "Bogstadveien 27"})
	directory.Put(stations.Station{ID: 2, Name: "Tom & Jerry's <plass>", Address: "Kirkeveien 64"})

	merged := directory.Clone()
	s, _ := merged.Get(1)
	s.AvailableBikes = intPtr(5)
	merged.Put(s)

	at := time.Date(2024, 6, 15, 14, 29, 0, 0, time.UTC)
	return []stations.Event{
		{Kind: stations.DirectoryLoaded, Collection: directory, At: at},
		{Kind: stations.AvailabilityMerged, Collection: merged, At: at},
	}
}

func serve(t *testing.T, webUI *WebUI, target string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	webUI.SetWebUIRoutes(mux)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}
