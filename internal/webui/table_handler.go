package webui

import (
	"bytes"
	"net/http"
	"time"

	"viewer.bysykkel.dev/internal/logging"
	"viewer.bysykkel.dev/internal/view"
)

type tablePage struct {
	Title     string
	Headers   []string
	Table     view.Table
	UpdatedAt string
}

// tableHandler renders the error message when one is set and the station
// table otherwise.
func (webUI *WebUI) tableHandler(w http.ResponseWriter, r *http.Request) {
	state := webUI.Snapshot()

	page := tablePage{
		Title:   "Oslo Bysykkel stations",
		Headers: view.Headers,
		Table:   view.Build(state),
	}
	if !state.MergedAt.IsZero() && !page.Table.ShowsError() {
		page.UpdatedAt = state.MergedAt.Format(time.RFC3339)
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "table.html", page); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to execute table template", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
