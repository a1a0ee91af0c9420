// Package server owns the listening socket of the development server.
//
// Binding and serving are separate steps so that a bind failure can be
// reported before anything is printed, and so that tests can bind port 0 and
// read back the address the kernel chose.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/net/netutil"

	"github.com/f4ah6o/devserver-go/internal/config"
)

// Server serves one handler on one TCP socket.
type Server struct {
	config     *config.Config
	httpServer *http.Server
	listener   net.Listener
	logger     *log.Logger
}

// New creates a server for handler. Nothing is bound until Listen.
func New(cfg *config.Config, handler http.Handler, logger *log.Logger) *Server {
	return &Server{
		config: cfg,
		httpServer: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ErrorLog:          logger,
		},
		logger: logger,
	}
}

// Listen binds the configured address. Failures are returned as *BindError.
func (s *Server) Listen() error {
	if s.listener != nil {
		return errors.New("server: already listening")
	}

	addr := s.config.Addr()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return &BindError{
			Addr:   addr,
			Err:    err,
			Holder: FindPortHolder(context.Background(), s.config.Port),
		}
	}

	if n := s.config.MaxConnections; n > 0 {
		ln = netutil.LimitListener(ln, n)
	}
	s.listener = ln
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Port returns the bound TCP port, or 0 before Listen.
func (s *Server) Port() int {
	addr := s.Addr()
	if addr == nil {
		return 0
	}
	_, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return 0
	}
	n, _ := strconv.Atoi(port)
	return n
}

// Serve handles connections until ctx is canceled, then stops accepting,
// waits up to the configured shutdown timeout for in-flight requests and
// releases the socket. A canceled ctx is a clean stop and returns nil.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		return errors.New("server: Serve called before Listen")
	}

	errc := make(chan error, 1)
	go func() {
		errc <- s.httpServer.Serve(s.listener)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", s.listener.Addr(), err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Printf("Forcing shutdown: %v", err)
		s.httpServer.Close()
	}
	<-errc
	return nil
}
