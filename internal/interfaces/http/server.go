// Package http exposes the weight computation and pooling operations over a
// local read-mostly HTTP surface, plus health and Prometheus endpoints.
package http

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/sawpanic/pioneerpool/internal/config"
	"github.com/sawpanic/pioneerpool/internal/net/ratelimit"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// Server serves the PioneerPool HTTP API.
type Server struct {
	router  *mux.Router
	server  *http.Server
	config  config.ServerConfig
	metrics *MetricsRegistry
	limiter *ratelimit.Limiter
}

// NewServer creates an HTTP server bound to the configured address.
func NewServer(cfg config.ServerConfig, metrics *MetricsRegistry) (*Server, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("port %d is busy or unavailable: %w", cfg.Port, err)
	}
	listener.Close()

	s := &Server{
		router:  mux.NewRouter(),
		config:  cfg,
		metrics: metrics,
		limiter: ratelimit.NewLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
		IdleTimeout:  cfg.IdleTimeout(),
	}

	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.requestLoggingMiddleware)
	s.router.Use(s.rateLimitMiddleware)
	s.router.Use(s.timeoutMiddleware)

	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.Handle("/metrics", s.metrics.Handler()).Methods("GET")

	api := s.router.PathPrefix("/v1").Subrouter()
	api.Use(s.jsonContentTypeMiddleware)
	api.HandleFunc("/weights", s.handleWeights).Methods("POST")
	api.HandleFunc("/pool", s.handlePool).Methods("POST")

	s.router.NotFoundHandler = http.HandlerFunc(s.handleNotFound)
}

// requestIDMiddleware adds a unique request ID to each request
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()[:8]
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLoggingMiddleware logs requests and records HTTP metrics
func (s *Server) requestLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)

		duration := time.Since(start)
		s.metrics.HTTPRequests.WithLabelValues(r.URL.Path, fmt.Sprintf("%d", wrapper.statusCode)).Inc()
		s.metrics.HTTPDuration.WithLabelValues(r.URL.Path).Observe(duration.Seconds())

		log.Info().
			Any("request_id", r.Context().Value(requestIDKey)).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapper.statusCode).
			Dur("duration", duration).
			Str("remote", r.RemoteAddr).
			Msg("http request")
	})
}

// rateLimitMiddleware applies the per-client token bucket
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if !s.limiter.Allow(host) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// timeoutMiddleware enforces the per-request timeout
func (s *Server) timeoutMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), s.config.RequestTimeout())
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// jsonContentTypeMiddleware sets the JSON content type for API responses
func (s *Server) jsonContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Info().Str("addr", s.server.Addr).Msg("starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Address returns the configured listen address
func (s *Server) Address() string {
	return s.server.Addr
}

// Router exposes the route tree, used by the HTTP tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// responseWrapper captures HTTP status codes for logging
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
