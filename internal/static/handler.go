// Package static serves a directory tree over HTTP for local development.
//
// Files are served with net/http's file server, which infers content types,
// lists directories without an index.html and refuses to resolve paths above
// the root. Preflight requests are answered without touching the filesystem,
// and every response carries the headers from DevHeaders.
package static

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// NewHandler returns the handler serving the files under root.
//
// GET and HEAD are file requests. OPTIONS on any path is an empty 200.
// Every other method is answered with 501, as there is nothing to post to.
func NewHandler(root string) http.Handler {
	r := mux.NewRouter()
	// The file server cleans paths itself; a mux redirect would answer
	// "/a/../b" before the headers are applied.
	r.SkipClean(true)

	r.Methods(http.MethodOptions).HandlerFunc(Preflight)
	r.PathPrefix("/").
		Methods(http.MethodGet, http.MethodHead).
		Handler(http.FileServer(http.Dir(root)))
	r.MethodNotAllowedHandler = http.HandlerFunc(Unsupported)

	return WithHeaders(DevHeaders(), r)
}

// Preflight answers a CORS preflight request with an empty 200.
func Preflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Unsupported answers methods the server does not implement.
func Unsupported(w http.ResponseWriter, r *http.Request) {
	http.Error(w, fmt.Sprintf("Unsupported method ('%s')", r.Method), http.StatusNotImplemented)
}
