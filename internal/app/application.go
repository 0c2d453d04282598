package app

import (
	"log/slog"

	"viewer.bysykkel.dev/internal/appconf"
	"viewer.bysykkel.dev/internal/clock"
	"viewer.bysykkel.dev/internal/metrics"
	"viewer.bysykkel.dev/internal/stations"
)

// Application holds the dependencies shared by the HTTP handlers, the web UI
// and the CLI commands.
type Application struct {
	Config  appconf.Config
	Logger  *slog.Logger
	Loader  *stations.Loader
	Clock   clock.Clock
	Metrics *metrics.Metrics
}

// Snapshot returns the current station state, or the initial state when no
// loader is wired.
func (app *Application) Snapshot() stations.State {
	if app == nil || app.Loader == nil {
		return stations.InitialState()
	}
	return app.Loader.Store().Snapshot()
}

// IsProduction reports whether debug surfaces must stay hidden.
func (app *Application) IsProduction() bool {
	return app != nil && app.Config.Env == appconf.Production
}
