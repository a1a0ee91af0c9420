// Package main provides a static file server for local development.
//
// It serves the directory this file lives in, with permissive CORS headers
// and caching disabled, on port 8000 unless a devserver.toml or
// devserver.yaml next to it says otherwise.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/f4ah6o/devserver-go/internal/accesslog"
	"github.com/f4ah6o/devserver-go/internal/banner"
	"github.com/f4ah6o/devserver-go/internal/config"
	"github.com/f4ah6o/devserver-go/internal/rootdir"
	"github.com/f4ah6o/devserver-go/internal/server"
	"github.com/f4ah6o/devserver-go/internal/static"
)

func main() {
	absDir, err := rootdir.OfCaller()
	if err != nil {
		log.Fatalf("Failed to resolve directory: %v", err)
	}
	// Relative lookups resolve against the served directory, wherever the
	// server was started from.
	if err := os.Chdir(absDir); err != nil {
		log.Fatalf("Failed to enter %s: %v", absDir, err)
	}

	cfg, err := config.Load(absDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := log.New(os.Stderr, "", 0)

	var handler http.Handler = static.NewHandler(cfg.Root)
	if cfg.AccessLog {
		handler = accesslog.Middleware(logger, handler)
	}

	srv := server.New(cfg, handler, logger)
	if err := srv.Listen(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	banner.Print(os.Stdout, banner.Startup(cfg.Title, srv.Port()))
	log.Printf("Serving %s", cfg.Root)
	if cfg.Source != "" {
		log.Printf("Using config %s", cfg.Source)
	}

	err = srv.Serve(ctx)
	banner.Stopped(os.Stdout)
	if err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
