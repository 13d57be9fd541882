// Package data serves the feed files under /data/.
package data

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const prefix = "/data/"

// Handler maps GET /data/... requests onto files inside a fixed directory.
// Requests resolving outside that directory are rejected.
type Handler struct {
	root string
}

// NewHandler creates a handler rooted at dir.
func NewHandler(dir string) *Handler {
	return &Handler{root: dir}
}

// Register attaches the /data/ route to mux.
func Register(_ context.Context, mux *http.ServeMux, dir string) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle(prefix, NewHandler(dir))
}

// ServeHTTP serves one file. Missing files and traversal attempts both get
// a plain 404; nothing about the directory layout leaks.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}

	rel := strings.TrimPrefix(r.URL.Path, prefix)
	target, ok := h.resolve(rel)
	if !ok {
		http.NotFound(w, r)
		return
	}

	info, err := os.Stat(target)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, target)
}

// resolve maps a request path to a file path and reports whether it stays
// inside the root directory.
func (h *Handler) resolve(rel string) (string, bool) {
	if rel == "" || strings.Contains(rel, "\x00") {
		return "", false
	}
	// Clean as an absolute path so ".." cannot climb above the root.
	clean := filepath.Clean("/" + filepath.FromSlash(rel))
	target := filepath.Join(h.root, clean)

	absRoot, err := filepath.Abs(h.root)
	if err != nil {
		return "", false
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", false
	}
	if absTarget != absRoot && !strings.HasPrefix(absTarget, absRoot+string(filepath.Separator)) {
		return "", false
	}
	return absTarget, true
}
