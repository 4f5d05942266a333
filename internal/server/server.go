package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/DigSite_Go/internal/database"
	"github.com/osse101/DigSite_Go/internal/handler"
	"github.com/osse101/DigSite_Go/internal/logger"
	"github.com/osse101/DigSite_Go/internal/metrics"
	"github.com/osse101/DigSite_Go/internal/session"
	"github.com/osse101/DigSite_Go/internal/sse"
)

// Options configures the HTTP listener and authentication
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
}

// Players is the player directory surface exposed over HTTP
type Players interface {
	handler.PlayerStore
	handler.BuffActivator
}

// Deps are the services the routes are served by. DBPool is nil with in-memory storage.
type Deps struct {
	DBPool     database.Pool
	Sessions   session.Service
	Players    Players
	Objectives handler.ObjectiveSetter
	Hub        *sse.Hub
}

type Server struct {
	httpServer *http.Server
}

// NewServer wires the middleware chain and every route. It does not listen.
func NewServer(opts Options, deps Deps) *Server {
	r := chi.NewRouter()

	// outermost first: headers are set even on auth and rate-limit rejections
	proxies := ParseProxies(opts.TrustedProxies)
	monitor := NewActivityMonitor(DefaultActivityLimits())

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(opts.APIKey, proxies, monitor))
	r.Use(RateLimitMiddleware(proxies, monitor))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// probes, build info and scrape target are unversioned and public
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.DBPool))

	r.Get("/version", handler.HandleVersion())

	r.Handle("/metrics", promhttp.Handler())

	r.Route(APIPrefix, func(r chi.Router) {
		digHandler := handler.NewDigHandler(deps.Sessions, deps.Players)
		r.Route("/dig", func(r chi.Router) {
			r.Post("/can-dig", digHandler.HandleCanDig)
			r.Post("/start", digHandler.HandleStartDig)
			r.Post("/progress", digHandler.HandleProgress)
			r.Post("/complete", digHandler.HandleComplete)
			r.Post("/exit", digHandler.HandleExit)
			r.Post("/leave-spot", digHandler.HandleLeaveSpot)
			r.Post("/activate-buff", digHandler.HandleActivateBuff)
			r.Get("/state", digHandler.HandleState)
		})

		adminHandler := handler.NewAdminHandler(deps.Players, deps.Objectives, deps.Sessions)
		r.Route("/admin", func(r chi.Router) {
			r.Post("/player", adminHandler.HandleUpsertPlayer)
			r.Post("/quest", adminHandler.HandleSetObjective)
			r.Post("/reap", adminHandler.HandleReap)
		})

		// Event stream; private dig events need ?player_id=
		if deps.Hub != nil {
			r.Get("/events", sse.Handler(deps.Hub))
		}
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           r,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush passes through so event streams work behind the logger
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// quietPaths are polled by probes and scrapers and never logged
var quietPaths = []string{"/healthz", "/readyz", "/metrics"}

func sanitizeHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
			out[k] = []string{RedactedValue}
			continue
		}
		out[k] = v
	}
	return out
}

// loggingMiddleware tags each request with an ID, echoes it back in
// X-Request-ID and logs start and completion
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, p := range quietPaths {
			if strings.HasPrefix(r.URL.Path, p) {
				next.ServeHTTP(w, r)
				return
			}
		}

		start := time.Now()
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, requestID)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"content_length", r.ContentLength)
		log.Debug(LogMsgRequestHeaders, "headers", sanitizeHeaders(r.Header))

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
