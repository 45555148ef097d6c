package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/osse101/FleetSync_Go/docs"
	"github.com/osse101/FleetSync_Go/internal/database"
	"github.com/osse101/FleetSync_Go/internal/eventlog"
	"github.com/osse101/FleetSync_Go/internal/handler"
	"github.com/osse101/FleetSync_Go/internal/logger"
	"github.com/osse101/FleetSync_Go/internal/metrics"
	"github.com/osse101/FleetSync_Go/internal/syncrun"
)

// Options configures the HTTP surface
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	CORSOrigins    []string
	// RateLimit is the request budget per client IP and window
	RateLimit int
}

// Services are the collaborators the routes call into
type Services struct {
	DB       database.Pool
	Sync     syncrun.Service
	Importer handler.WincplImporter
	Records  handler.RecordService
	Events   eventlog.Service
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options, svc Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, svc),
			ReadHeaderTimeout: ReadHeaderTimeout,
			WriteTimeout:      WriteTimeout,
		},
	}
}

// NewRouter builds the chi router with the middleware stack and every route
func NewRouter(opts Options, svc Services) chi.Router {
	r := chi.NewRouter()

	detector := NewSuspiciousActivityDetector(opts.RateLimit)

	// outermost first
	r.Use(middleware.Recoverer)
	r.Use(SecurityHeadersMiddleware())
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type", HeaderAPIKey, HeaderAuthorization},
			ExposedHeaders:   []string{HeaderRequestID},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}
	r.Use(loggingMiddleware)
	r.Use(metrics.Middleware)
	r.Use(RateLimitMiddleware(opts.TrustedProxies, detector))
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(svc.DB))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	syncHandler := handler.NewSyncHandler(svc.Sync)
	wincplHandler := handler.NewWincplHandler(svc.Importer)
	recordHandler := handler.NewRecordHandler(svc.Records)
	eventHandler := handler.NewEventHandler(svc.Events)

	r.Route("/api/v1", func(r chi.Router) {
		// Wincpl uploads carry their own, larger body limit
		r.Post("/wincpl/import", wincplHandler.HandleImport)

		r.Group(func(r chi.Router) {
			r.Use(RequestSizeLimitMiddleware(DefaultMaxRequestBytes))

			r.Route("/sync", func(r chi.Router) {
				r.Get("/status", syncHandler.HandleSyncStatus)
				r.Get("/history", syncHandler.HandleSyncHistory)
				r.Get("/runs/{id}", syncHandler.HandleGetRun)
				r.Post("/{entity}", syncHandler.HandleTriggerSync)
			})

			r.Route("/drivers", func(r chi.Router) {
				r.Get("/", recordHandler.HandleListDrivers)
				r.Get("/{id}", recordHandler.HandleGetDriver)
				r.Patch("/{id}", recordHandler.HandlePatchDriver)
			})

			r.Route("/vehicles", func(r chi.Router) {
				r.Get("/", recordHandler.HandleListVehicles)
				r.Get("/{id}", recordHandler.HandleGetVehicle)
				r.Patch("/{id}", recordHandler.HandlePatchVehicle)
			})

			r.Get("/events", eventHandler.HandleListEvents)
			r.Get("/admin/cache/stats", recordHandler.HandleCacheStats)
		})
	})

	return r
}

// Handler exposes the router, mainly for tests
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

// Unwrap lets http.ResponseController reach the underlying writer
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func isProbePath(path string) bool {
	return strings.HasPrefix(path, "/healthz") ||
		strings.HasPrefix(path, "/readyz") ||
		strings.HasPrefix(path, "/metrics")
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isProbePath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()

		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" || len(requestID) > 64 {
			requestID = logger.GenerateRequestID()
		}
		w.Header().Set(HeaderRequestID, requestID)

		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header, len(r.Header))
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
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
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server. It returns http.ErrServerClosed after Stop.
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	slog.Default().Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
