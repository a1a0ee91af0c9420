package static

import "net/http"

// Header values added to every response.
const (
	AllowOrigin  = "*"
	AllowMethods = "GET, POST, OPTIONS"
	AllowHeaders = "Content-Type"
	CacheControl = "no-store, no-cache, must-revalidate"
)

// DevHeaders returns the fixed set of headers that open the server to
// cross-origin scripts and keep browsers from caching anything it serves.
func DevHeaders() http.Header {
	return http.Header{
		"Access-Control-Allow-Origin":  {AllowOrigin},
		"Access-Control-Allow-Methods": {AllowMethods},
		"Access-Control-Allow-Headers": {AllowHeaders},
		"Cache-Control":                {CacheControl},
	}
}

// WithHeaders returns a handler that sets extra on every response of next.
//
// The headers are applied when the response header is finalized rather than
// before next runs: net/http's file server deletes Cache-Control on its error
// path, so anything set up front would be missing from 404s.
func WithHeaders(extra http.Header, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hw := &headerWriter{ResponseWriter: w, extra: extra}
		next.ServeHTTP(hw, r)
		// A handler that returns without writing still gets a 200.
		if !hw.wroteHeader {
			hw.WriteHeader(http.StatusOK)
		}
	})
}

type headerWriter struct {
	http.ResponseWriter
	extra       http.Header
	wroteHeader bool
}

func (w *headerWriter) WriteHeader(code int) {
	// 1xx responses are informational; the final header is still to come.
	if code >= 100 && code <= 199 && code != http.StatusSwitchingProtocols {
		w.ResponseWriter.WriteHeader(code)
		return
	}
	if !w.wroteHeader {
		w.wroteHeader = true
		h := w.ResponseWriter.Header()
		for k, vv := range w.extra {
			h[k] = append([]string(nil), vv...)
		}
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *headerWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *headerWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
