package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/mcfadden20/Swim-meet-timer/internal/database"
	"github.com/mcfadden20/Swim-meet-timer/internal/handler"
	"github.com/mcfadden20/Swim-meet-timer/internal/ledger"
	"github.com/mcfadden20/Swim-meet-timer/internal/logger"
	"github.com/mcfadden20/Swim-meet-timer/internal/metrics"
	"github.com/mcfadden20/Swim-meet-timer/internal/results"
)

// Dependencies are the services the HTTP surface routes to.
type Dependencies struct {
	DB             database.Pool
	DataDir        handler.DirChecker
	Status         handler.StatusSource
	Results        results.Service
	Ledger         ledger.Service
	TrustedProxies []string
	RequestLimit   int
	RequestWindow  time.Duration
}

type Server struct {
	httpServer *http.Server
	router     chi.Router
}

// NewServer creates a new Server instance
func NewServer(port int, deps Dependencies) *Server {
	r := NewRouter(deps)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		router: r,
	}
}

// NewRouter builds the chi router with the full middleware stack.
func NewRouter(deps Dependencies) chi.Router {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector(deps.RequestLimit, deps.RequestWindow)

	r.Use(middleware.Recoverer)
	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(SecurityLoggingMiddleware(deps.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(DefaultMaxRequestBytes))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.DB, deps.DataDir))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/maestro/status", handler.HandleMeetStatus(deps.Status))

		r.Route("/results", func(r chi.Router) {
			r.Post("/", handler.HandleSubmitTime(deps.Results))
			r.Put("/{id}", handler.HandleCorrectResult(deps.Results))
		})

		r.Route("/official", func(r chi.Router) {
			r.Post("/submit-dq", handler.HandleSubmitDQ(deps.Results))
			r.Post("/verify-pin", handler.HandleVerifyPIN(deps.Results))
		})

		sync := handler.NewSyncHandlers(deps.Ledger)
		r.Route("/sync", func(r chi.Router) {
			r.Get("/verify-auth", sync.HandleVerifyAuth())
			r.Get("/pending-files", sync.HandlePendingFiles())
			r.Post("/receipt", sync.HandleReceipt())
		})
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// Handler exposes the router, mainly for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.router
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
		statusCode:     http.StatusOK,
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

// redactQuery masks meet credentials carried in the query string.
func redactQuery(u *url.URL) string {
	if u.RawQuery == "" {
		return ""
	}
	q := u.Query()
	for _, key := range SensitiveQueryParams {
		if q.Has(key) {
			q.Set(key, RedactedValue)
		}
	}
	return q.Encode()
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if slices.ContainsFunc(QuietPaths, func(p string) bool { return strings.HasPrefix(r.URL.Path, p) }) {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"query", redactQuery(r.URL),
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
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
