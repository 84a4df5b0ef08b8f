// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server binds the extractor to HTTP: POST /api/extract with a
// {"scenario": "..."} body returns a signal vector or a JSON error.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/CaptainMig/nerva-v8/internal/extract"
	"github.com/CaptainMig/nerva-v8/internal/httputil"
	"github.com/CaptainMig/nerva-v8/pkg/types"
)

// Extractor is the part of extract.Extractor the HTTP binding needs.
type Extractor interface {
	Extract(ctx context.Context, scenario string) (types.SignalVector, error)
}

// Server holds the handler dependencies.
type Server struct {
	extractor Extractor
	cfg       types.ServerConfig
}

// extractRequest is the inbound body of POST /api/extract.
type extractRequest struct {
	Scenario string `json:"scenario"`
}

// NewRouter returns the complete HTTP handler: routes plus request ID, panic
// recovery, and CORS middleware. Zero-valued cfg fields take the defaults.
func NewRouter(ex Extractor, cfg types.ServerConfig) http.Handler {
	def := types.DefaultServerConfig()
	if cfg.AllowedOrigin == "" {
		cfg.AllowedOrigin = def.AllowedOrigin
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = def.MaxBodyBytes
	}

	s := &Server{extractor: ex, cfg: cfg}

	r := mux.NewRouter()
	r.HandleFunc("/api/extract", s.handleExtract).Methods(http.MethodPost)
	r.HandleFunc("/health", handleHealth).Methods(http.MethodGet)
	r.MethodNotAllowedHandler = http.HandlerFunc(handleMethodNotAllowed)
	r.NotFoundHandler = http.HandlerFunc(handleNotFound)

	// CORS sits outside the router so preflight and 405 responses carry the headers too.
	return requestIDMiddleware(recoverMiddleware(s.corsMiddleware(r)))
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := RequestID(r.Context())

	var req extractRequest
	if err := httputil.DecodeJSON(w, r, s.cfg.MaxBodyBytes, &req); err != nil {
		log.Printf("extract id=%s kind=%s err=%q", id, extract.KindInvalidInput, err)
		httputil.WriteError(w, http.StatusBadRequest, httputil.ErrorBody{
			Error:   string(extract.KindInvalidInput),
			Details: err.Error(),
		})
		return
	}

	ctx := r.Context()
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}

	vec, err := s.extractor.Extract(ctx, req.Scenario)
	if err != nil {
		status, body := errorResponse(err)
		log.Printf("extract id=%s kind=%s status=%d upstream_status=%d duration=%s err=%q",
			id, body.Error, status, body.Status, time.Since(start).Round(time.Millisecond), err)
		httputil.WriteError(w, status, body)
		return
	}

	log.Printf("extract id=%s kind=ok status=200 duration=%s", id, time.Since(start).Round(time.Millisecond))
	httputil.WriteJSON(w, http.StatusOK, vec)
}

// errorResponse maps an extraction error to its HTTP status and body.
func errorResponse(err error) (int, httputil.ErrorBody) {
	kind := extract.KindOf(err)
	body := httputil.ErrorBody{Error: string(kind), Details: err.Error()}

	switch kind {
	case extract.KindInvalidInput:
		return http.StatusBadRequest, body
	case extract.KindUpstream:
		var upErr *extract.UpstreamError
		errors.As(err, &upErr)
		body.Status = upErr.Status
		if upErr.Body != "" {
			body.Details = upErr.Body
		}
		return http.StatusBadGateway, body
	default:
		// configuration, malformed and internal failures are all server-side.
		return http.StatusInternalServerError, body
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteError(w, http.StatusMethodNotAllowed, httputil.ErrorBody{
		Error:   "method_not_allowed",
		Details: "POST only",
	})
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	httputil.WriteError(w, http.StatusNotFound, httputil.ErrorBody{
		Error:   "not_found",
		Details: fmt.Sprintf("no route for %s", r.URL.Path),
	})
}

// Run serves h on cfg.Addr until ctx is cancelled, then shuts down
// gracefully, waiting up to shutdownTimeout for in-flight requests.
func Run(ctx context.Context, cfg types.ServerConfig, h http.Handler) error {
	writeTimeout := cfg.RequestTimeout
	if writeTimeout > 0 {
		writeTimeout += 5 * time.Second
	}
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("nerva listening on %s", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving on %s: %w", cfg.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Printf("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// shutdownTimeout bounds graceful shutdown in Run.
var shutdownTimeout = 10 * time.Second
