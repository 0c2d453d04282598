package restapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"viewer.bysykkel.dev/internal/app"
	"viewer.bysykkel.dev/internal/appconf"
	"viewer.bysykkel.dev/internal/clock"
	"viewer.bysykkel.dev/internal/gbfs"
	"viewer.bysykkel.dev/internal/metrics"
	"viewer.bysykkel.dev/internal/models"
	"viewer.bysykkel.dev/internal/stations"
)

var testTime = time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

// fakeFeeds stands in for the GBFS client.
type fakeFeeds struct {
	mu          sync.Mutex
	info        []gbfs.StationInformation
	infoErr     error
	status      []gbfs.StationStatus
	statusErr   error
	infoCalls   int
	statusCalls int
}

func (f *fakeFeeds) StationInformation(ctx context.Context) ([]gbfs.StationInformation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.infoCalls++
	return f.info, f.infoErr
}

func (f *fakeFeeds) StationStatus(ctx context.Context) ([]gbfs.StationStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	return f.status, f.statusErr
}

func (f *fakeFeeds) calls() (info, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.infoCalls, f.statusCalls
}

// osloFeeds has three located stations around Majorstuen: one with bikes,
// one empty and one without a status record.
func osloFeeds() *fakeFeeds {
	return &fakeFeeds{
		info: []gbfs.StationInformation{
			{StationID: 2350, Name: "Blindern T-bane", Address: "Apalveien 60", Lat: 59.9400, Lon: 10.7163},
			{StationID: 627, Name: "Majorstuen", Address: "Sørkedalsveien 1", Lat: 59.9297, Lon: 10.7146},
			{StationID: 623, Name: "Bogstadveien", Address: "Bogstadveien 27", Lat: 59.9259, Lon: 10.7263},
		},
		status: []gbfs.StationStatus{
			{StationID: 2350, NumBikesAvailable: intPtr(4)},
			{StationID: 627, NumBikesAvailable: intPtr(0)},
		},
	}
}

// createTestApiWithFeeds builds an API whose loader reads from feeds. The
// pipeline is not run; call load for that.
func createTestApiWithFeeds(t *testing.T, feeds stations.FeedClient) *RestAPI {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewMockClock(testTime)
	m := metrics.New()

	cfg := appconf.Default()
	cfg.Env = appconf.Test

	application := &app.Application{
		Config:  cfg,
		Logger:  logger,
		Loader:  stations.NewLoader(feeds, nil, m, clk, logger),
		Clock:   clk,
		Metrics: m,
	}

	api := NewRestAPI(application)
	t.Cleanup(api.Shutdown)
	return api
}

// createTestApi returns an API that has already loaded osloFeeds.
func createTestApi(t *testing.T) *RestAPI {
	t.Helper()
	api := createTestApiWithFeeds(t, osloFeeds())
	load(t, api)
	return api
}

func load(t *testing.T, api *RestAPI) stations.State {
	t.Helper()
	state, _ := api.Loader.Load(context.Background())
	return state
}

func serveApi(t *testing.T, api *RestAPI) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	api.SetRoutes(mux)
	server := httptest.NewServer(WithMiddleware(mux, api.Logger, api.Metrics))
	t.Cleanup(server.Close)
	return server
}

// serveApiAndRetrieveEndpoint performs method on endpoint and decodes the
// envelope when the response has a body.
func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, method, endpoint string) (*http.Response, models.ResponseModel) {
	t.Helper()
	server := serveApi(t, api)

	req, err := http.NewRequest(method, server.URL+endpoint, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var model models.ResponseModel
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(body) > 0 && resp.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(body, &model))
	}
	return resp, model
}

func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	t.Helper()
	api := createTestApi(t)
	resp, model := serveApiAndRetrieveEndpoint(t, api, http.MethodGet, endpoint)
	return api, resp, model
}

func listFrom(t *testing.T, model models.ResponseModel) []interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data is not an object: %T", model.Data)
	list, ok := data["list"].([]interface{})
	require.True(t, ok, "data.list is not an array: %T", data["list"])
	return list
}

func entryFrom(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data is not an object: %T", model.Data)
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok, "data.entry is not an object: %T", data["entry"])
	return entry
}
