// Package site serves the embedded browser UI.
package site

import (
	"context"
	"net/http"
)

// Register attaches the embedded UI routes to mux at /.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/", http.FileServer(FS()))
}
