package webui

import (
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
)

var allowedStaticExtensions = map[string]bool{
	".css": true, ".js": true,
	".png": true, ".svg": true, ".ico": true,
}

// staticHandler serves files embedded under static/. Only flat file names
// with a whitelisted extension are served.
func (webUI *WebUI) staticHandler(w http.ResponseWriter, r *http.Request) {
	fileName := r.PathValue("file")

	ext := strings.ToLower(path.Ext(fileName))
	if !allowedStaticExtensions[ext] {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	if fileName != path.Base(fileName) || strings.Contains(fileName, "..") || strings.ContainsAny(fileName, "/\\\x00") {
		slog.Warn("rejected static file name", "file", fileName)
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	name := path.Join("static", fileName)
	if stat, err := fs.Stat(staticFS, name); err != nil || stat.IsDir() {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	http.ServeFileFS(w, r, staticFS, name)
}
