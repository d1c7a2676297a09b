package rest

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// FrontendHandler serves the static single-page frontend, falling back
// to the index document for client-side routes.
type FrontendHandler struct {
	root  string
	index string
}

func NewFrontendHandler(root string, index string) *FrontendHandler {
	return &FrontendHandler{root: root, index: index}
}

func (h *FrontendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requested := filepath.Join(h.root, filepath.Clean("/"+strings.TrimPrefix(r.URL.Path, "/")))

	info, err := os.Stat(requested)
	if err != nil || info.IsDir() {
		http.ServeFile(w, r, filepath.Join(h.root, h.index))
		return
	}
	http.ServeFile(w, r, requested)
}
