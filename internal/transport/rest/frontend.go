package rest

import (
	"net/http"
)

// FrontendHandler serves the browser UI from disk. Empty paths disable the
// corresponding route.
type FrontendHandler struct {
	indexPath string
	static    http.Handler
}

// NewFrontendHandler creates a FrontendHandler.
func NewFrontendHandler(indexPath, staticDir string) *FrontendHandler {
	h := &FrontendHandler{indexPath: indexPath}
	if staticDir != "" {
		h.static = http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir)))
	}
	return h
}

// Index handles GET /.
func (h *FrontendHandler) Index(w http.ResponseWriter, r *http.Request) {
	if h.indexPath == "" {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFile(w, r, h.indexPath)
}

// Static handles GET /static/...
func (h *FrontendHandler) Static(w http.ResponseWriter, r *http.Request) {
	if h.static == nil {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	h.static.ServeHTTP(w, r)
}
