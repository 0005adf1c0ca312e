package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"partyhub/internal/party/handler"
	"partyhub/internal/platform/metrics"
	"partyhub/internal/platform/middleware"
	"partyhub/pkg/platform/httputil"
	"partyhub/pkg/platform/middleware/metadata"
	"partyhub/pkg/platform/middleware/requesttime"
)

// readinessCheck reports whether a backing dependency is usable.
type readinessCheck struct {
	name  string
	check func(ctx context.Context) error
}

type routerDeps struct {
	logger         *slog.Logger
	service        handler.Service
	httpMetrics    *metrics.Metrics
	gatherer       prometheus.Gatherer
	allowedOrigins []string
	requestTimeout time.Duration
	debug          bool
	readiness      []readinessCheck
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(d.logger, d.debug, d.httpMetrics))
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Logger(d.logger))
	r.Use(middleware.CORS(d.allowedOrigins))
	r.Use(middleware.Latency(d.httpMetrics))
	r.Use(middleware.Timeout(d.requestTimeout))
	r.Use(middleware.ContentTypeJSON)

	r.Get("/health", handleHealth)
	r.Get("/ready", handleReady(d.readiness))
	if d.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.gatherer, promhttp.HandlerOpts{}))
	}

	handler.New(d.service, d.logger, handler.WithDebugErrors(d.debug)).Register(r)

	r.NotFound(handleUnmatched)
	r.MethodNotAllowed(handleUnmatched)
	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func handleReady(checks []readinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for _, c := range checks {
			if err := c.check(ctx); err != nil {
				results[c.name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[c.name] = "ok"
		}
		httputil.WriteJSON(w, status, map[string]any{
			"ready":  status == http.StatusOK,
			"checks": results,
		})
	}
}

// handleUnmatched answers unknown paths and methods with 404 and the route
// listing.
func handleUnmatched(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusNotFound, map[string]any{
		"error":             "not_found",
		"error_description": "Route " + r.Method + " " + r.URL.Path + " not found",
		"availableRoutes":   append([]string{"GET /health", "GET /ready", "GET /metrics"}, handler.Routes()...),
	})
}
