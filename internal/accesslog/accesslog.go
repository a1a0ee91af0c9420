// Package accesslog writes one line per handled request.
//
// Lines follow the layout of the classic development servers:
//
//	127.0.0.1 - - [18/Oct/2026 10:04:05] "GET /index.html HTTP/1.1" 200 1234
//
// Responses with a status of 400 or above are preceded by a
// "code 404, message Not Found" line.
package accesslog

import (
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/fatih/color"
)

// TimeLayout is the timestamp layout used inside the brackets.
const TimeLayout = "02/Jan/2006 15:04:05"

var (
	okColor       = color.New(color.FgGreen)
	redirectColor = color.New(color.FgCyan)
	clientColor   = color.New(color.FgYellow)
	serverColor   = color.New(color.FgRed, color.Bold)
)

// Middleware logs every request served by next to logger.
// The logger should be created without flags; the line carries its own time.
func Middleware(logger *log.Logger, next http.Handler) http.Handler {
	return middleware{logger: logger, next: next, now: time.Now}
}

type middleware struct {
	logger *log.Logger
	next   http.Handler
	now    func() time.Time
}

func (m middleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec := &recorder{ResponseWriter: w}
	m.next.ServeHTTP(rec, r)

	status := rec.status
	if status == 0 {
		status = http.StatusOK
	}

	client := clientAddr(r.RemoteAddr)
	stamp := m.now().Format(TimeLayout)
	if status >= http.StatusBadRequest {
		m.logger.Printf("%s - - [%s] code %d, message %s", client, stamp, status, http.StatusText(status))
	}
	m.logger.Printf("%s - - [%s] \"%s %s %s\" %s %s",
		client, stamp, r.Method, r.RequestURI, r.Proto, colorStatus(status), size(rec.written))
}

func clientAddr(remote string) string {
	host, _, err := net.SplitHostPort(remote)
	if err != nil {
		return remote
	}
	return host
}

func size(n int64) string {
	if n == 0 {
		return "-"
	}
	return strconv.FormatInt(n, 10)
}

func colorStatus(status int) string {
	s := strconv.Itoa(status)
	switch {
	case status >= 500:
		return serverColor.Sprint(s)
	case status >= 400:
		return clientColor.Sprint(s)
	case status >= 300:
		return redirectColor.Sprint(s)
	case status >= 200:
		return okColor.Sprint(s)
	}
	return s
}

type recorder struct {
	http.ResponseWriter
	status  int
	written int64
}

func (r *recorder) WriteHeader(code int) {
	if r.status == 0 && code >= 200 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *recorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.written += int64(n)
	return n, err
}

func (r *recorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
