package api

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Addr           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	RequestTimeout time.Duration
	MaxConcurrent  int
	CORSOrigins    []string // empty = same-origin only
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(addr string) ServerConfig {
	return ServerConfig{
		Addr:           addr,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   10 * time.Second,
		RequestTimeout: 5 * time.Second,
		MaxConcurrent:  runtime.NumCPU() * 2,
	}
}

// NewRouter builds the chi router with every route and middleware.
func NewRouter(cfg ServerConfig, h *Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(withRequestID, withSecurityHeaders, withAccessLog, withRecovery)
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(withConcurrencyLimit(cfg.MaxConcurrent), withTimeout(cfg.RequestTimeout))

		r.Get("/health", h.HandleHealth)
		r.Get("/stats", h.HandleStats)
		r.Delete("/network", h.HandleClearNetwork)

		r.Route("/stops", func(r chi.Router) {
			r.Post("/", h.HandleCreateStop)
			r.Get("/", h.HandleListStops)
			r.Get("/extremes", h.HandleExtremes)
			r.Get("/nearest", h.HandleNearestStop)
			r.Get("/in-box", h.HandleStopsInBox)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.HandleGetStop)
				r.Patch("/", h.HandleUpdateStop)
				r.Delete("/", h.HandleDeleteStop)
				r.Get("/closest", h.HandleClosestStops)
				r.Get("/regions", h.HandleStopRegions)
				r.Get("/routes", h.HandleStopRoutes)
			})
		})

		r.Route("/regions", func(r chi.Router) {
			r.Post("/", h.HandleCreateRegion)
			r.Get("/", h.HandleListRegions)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.HandleGetRegion)
				r.Post("/stops", h.HandleAttachStop)
				r.Post("/subregions", h.HandleAttachSubregion)
				r.Get("/bbox", h.HandleRegionBBox)
			})
		})
		r.Get("/common-region", h.HandleCommonRegion)

		r.Route("/routes", func(r chi.Router) {
			r.Post("/", h.HandleCreateRoute)
			r.Get("/", h.HandleListRoutes)
			r.Delete("/", h.HandleClearRoutes)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.HandleGetRoute)
				r.Post("/trips", h.HandleAddTrip)
				r.Get("/times", h.HandleRouteTimes)
			})
		})

		r.Get("/journeys/{variant}", h.HandleJourney)
	})

	return r
}

// NewServer creates an HTTP server with all routes and middleware.
func NewServer(cfg ServerConfig, h *Handlers) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      NewRouter(cfg, h),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

// ListenAndServe starts the server and blocks until shutdown signal.
func ListenAndServe(srv *http.Server) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

type ctxKey int

const requestIDKey ctxKey = iota

// requestID returns the id assigned by withRequestID, or "".
func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// withRequestID reuses a client supplied X-Request-ID or assigns a new uuid.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// withAccessLog logs every request and records the HTTP metrics under the
// matched route pattern.
func withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())

		log.Info().
			Str("request_id", requestID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Dur("elapsed", elapsed).
			Msg("Request")
	})
}

func withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Str("request_id", requestID(r.Context())).
					Interface("panic", rec).
					Msg("Recovered from panic")
				writeError(w, r, http.StatusInternalServerError, "internal_error", "")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// withConcurrencyLimit rejects requests beyond max in flight with a 503.
func withConcurrencyLimit(max int) func(http.Handler) http.Handler {
	if max <= 0 {
		max = 1
	}
	sem := make(chan struct{}, max)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			default:
				w.Header().Set("Retry-After", "1")
				writeError(w, r, http.StatusServiceUnavailable, "service_unavailable", "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func withTimeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
