// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/inteligenciarte/luxurystudio/internal/api"
	"github.com/inteligenciarte/luxurystudio/internal/api/apiutil"
	"github.com/inteligenciarte/luxurystudio/internal/api/booking"
	"github.com/inteligenciarte/luxurystudio/internal/api/landing"
	"github.com/inteligenciarte/luxurystudio/internal/config"
)

func newServer(cfg *config.Config) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
		api.WithSecurityHeaders,
	)

	// Register routes
	registerRoutes(router, cfg.App.StaticDir)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, staticDir string) {
	// Main page handler
	mux.HandleFunc("/", landing.HandleIndex)

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"}); err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write health response")
		}
	})

	// Booking dialog routes
	mux.HandleFunc("/booking/open", booking.HandleOpen)
	mux.HandleFunc("/booking/close", booking.HandleClose)
	mux.HandleFunc("/booking/form", booking.HandleFormAction)
	mux.HandleFunc("/booking/submit", booking.HandleSubmit)

	// Static file handling with logging
	if staticDir == "" {
		staticDir = "static"
	}
	fs := http.FileServer(http.Dir(staticDir))

	mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debug().
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Str("static_dir", staticDir).
			Msg("Static file request")
		http.StripPrefix("/static/", fs).ServeHTTP(w, r)
	}))
}
