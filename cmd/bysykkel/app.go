package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/pkg/browser"
	"viewer.bysykkel.dev/internal/app"
	"viewer.bysykkel.dev/internal/appconf"
	"viewer.bysykkel.dev/internal/clock"
	"viewer.bysykkel.dev/internal/gbfs"
	"viewer.bysykkel.dev/internal/logging"
	"viewer.bysykkel.dev/internal/metrics"
	"viewer.bysykkel.dev/internal/restapi"
	"viewer.bysykkel.dev/internal/stations"
	"viewer.bysykkel.dev/internal/webui"
)

const (
	shutdownTimeout     = 30 * time.Second
	snapshotAgeInterval = 15 * time.Second
)

// openBrowser is replaced in tests.
var openBrowser = browser.OpenURL

// BuildApplication wires the feed client, the loader and the ambient
// dependencies. Logs go to logOut.
func BuildApplication(cfg appconf.Config, logOut io.Writer) (*app.Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.NewLogger(logOut, cfg.LogFormat, cfg.Verbose).
		With(slog.String("env", cfg.Env.String()))
	clk := clock.RealClock{}
	m := metrics.NewWithLogger(logger)

	client := gbfs.NewClient(gbfs.Config{
		StationInformationURL: cfg.StationInformationURL,
		StationStatusURL:      cfg.StationStatusURL,
		ClientIdentifier:      cfg.ClientIdentifier,
		Timeout:               cfg.RequestTimeout,
	}, m).WithClock(clk)

	return &app.Application{
		Config:  cfg,
		Logger:  logger,
		Loader:  stations.NewLoader(client, nil, m, clk, logger),
		Clock:   clk,
		Metrics: m,
	}, nil
}

// CreateServer registers the API and the web UI on one mux behind the
// standard middleware chain.
func CreateServer(coreApp *app.Application, cfg appconf.Config) (*http.Server, *restapi.RestAPI) {
	api := restapi.NewRestAPI(coreApp)

	mux := http.NewServeMux()
	api.SetRoutes(mux)
	webui.NewWebUI(coreApp).SetWebUIRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      restapi.WithMiddleware(mux, coreApp.Logger, coreApp.Metrics),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: serverWriteTimeout(cfg),
		ErrorLog:     slog.NewLogLogger(coreApp.Logger.Handler(), slog.LevelError),
	}
	return srv, api
}

const (
	minWriteTimeout    = 10 * time.Second
	writeTimeoutMargin = 5 * time.Second
)

// serverWriteTimeout leaves room for a refresh, which makes two sequential
// feed requests each bounded by cfg.RequestTimeout.
func serverWriteTimeout(cfg appconf.Config) time.Duration {
	return max(2*cfg.RequestTimeout+writeTimeoutMargin, minWriteTimeout)
}

// Run loads the stations once, serves until ctx is cancelled and then shuts
// the server down. A failed first load is logged and served as the error
// message; it does not stop the server.
func Run(ctx context.Context, srv *http.Server, api *restapi.RestAPI, open bool) error {
	coreApp := api.Application
	defer api.Shutdown()

	if _, err := coreApp.Loader.Load(ctx); err != nil {
		coreApp.Logger.Warn("serving without a complete station table", slog.String("error", err.Error()))
	}

	coreApp.Metrics.StartSnapshotAgeCollector(func() (time.Duration, bool) {
		mergedAt := coreApp.Snapshot().MergedAt
		if mergedAt.IsZero() {
			return 0, false
		}
		return clock.Since(coreApp.Clock, mergedAt), true
	}, snapshotAgeInterval)

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()

	url := fmt.Sprintf("http://localhost:%d/", ln.Addr().(*net.TCPAddr).Port)
	logging.LogOperation(coreApp.Logger, "server_started",
		slog.String("addr", ln.Addr().String()),
		slog.String("url", url))

	if open {
		if err := openBrowser(url); err != nil {
			logging.LogError(coreApp.Logger, "failed to open browser", err, slog.String("url", url))
		}
	}

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logging.LogOperation(coreApp.Logger, "server_shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	logging.LogOperation(coreApp.Logger, "server_stopped")
	return nil
}
