package webui

import (
	"net/http"

	"github.com/davecgh/go-spew/spew"
	"viewer.bysykkel.dev/internal/logging"
)

type debugData struct {
	Title string
	Pre   string
}

func writeDebugData(w http.ResponseWriter, r *http.Request, title string, data interface{}) {
	content := spew.Sdump(data)
	w.Header().Set("Content-Type", "text/html")

	err := templates.ExecuteTemplate(w, "debug_index.html", debugData{
		Title: title,
		Pre:   content,
	})
	if err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to execute debug template", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// debugIndexHandler dumps part of the current state. It does not exist in
// production.
func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	if webUI.IsProduction() {
		http.NotFound(w, r)
		return
	}

	state := webUI.Snapshot()

	var data interface{}
	var title string

	switch r.URL.Query().Get("dataType") {
	case "state":
		data = state
		title = "State - Everything"
	case "error":
		data = state.ErrorMessage
		title = "State - Error Message"
	case "directory":
		data = state.Directory.Stations()
		title = "Station Information - Directory"
	case "merged":
		data = state.Merged.Stations()
		title = "Station Status - Merged"
	case "config":
		data = webUI.Config
		title = "Configuration"
	default:
		data = map[string]string{
			"error": "Please use one of the following: state, error, directory, merged, config.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, r, title, data)
}
