// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"log"
	"net/http"
	"runtime/debug"

	"github.com/google/uuid"

	"github.com/CaptainMig/nerva-v8/internal/extract"
	"github.com/CaptainMig/nerva-v8/internal/httputil"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLen = 128

type ctxKey int

const requestIDKey ctxKey = iota

// RequestID returns the request ID stored in ctx, or "" if none.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestIDMiddleware reuses an incoming X-Request-ID or assigns a new UUID,
// echoes it on the response, and stores it in the request context.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// recoverMiddleware turns a handler panic into a 500 JSON response.
func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic id=%s: %v\n%s", RequestID(r.Context()), rec, debug.Stack())
				httputil.WriteError(w, http.StatusInternalServerError, httputil.ErrorBody{
					Error:   string(extract.KindInternal),
					Details: "unexpected server error",
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware allows cross-origin calls and answers preflight requests
// with a bare 200.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.AllowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
