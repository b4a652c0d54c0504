// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/trafficwatch/internal/config"
	"github.com/tomtom215/trafficwatch/internal/logging"
	"github.com/tomtom215/trafficwatch/internal/middleware"
)

// multipartOverhead is added to the upload size limit for part headers and boundaries.
const multipartOverhead = 1 << 20

// compressLevel is the gzip level for dataset and route listing responses.
const compressLevel = 5

// RouteInfo describes one registered route.
type RouteInfo struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// Router builds the HTTP handler tree.
type Router struct {
	handler       *Handler
	config        *config.Config
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router for h.
func NewRouter(h *Handler, cfg *config.Config) *Router {
	return &Router{
		handler:       h,
		config:        cfg,
		chiMiddleware: NewChiMiddleware(ChiMiddlewareConfigFromSecurity(&cfg.Security)),
	}
}

// SetupChi configures all HTTP routes and returns the root handler.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	mw := router.chiMiddleware
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(mw.CORS()) // CORS must be global to handle OPTIONS preflight

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders())

		// Health and discovery
		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimitHealth())
			r.Use(NoStore)
			r.Get("/health", h.Health)
			r.Get("/health/live", h.HealthLive)
			r.Get("/health/ready", h.HealthReady)
			r.With(chimiddleware.Compress(compressLevel, "application/json")).Get("/routes", h.Routes)
		})

		// Static datasets
		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit())
			r.Use(chimiddleware.Compress(compressLevel, "application/json"))
			r.Get("/pois", h.POIs)
			r.Get("/cctv", h.CCTV)
			r.Get("/baselines", h.Baselines)
			r.Get("/insights", h.Insights)
		})

		// Outbound calls share the stricter quota
		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimitUpstream())
			r.Get("/proxy", h.Proxy)
			r.Get("/directions", h.Directions)
			r.Get("/estimate/route", h.EstimateRoute)
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimitEstimate())
			r.Use(NoStore)
			r.Use(chimiddleware.RequestSize(router.config.Server.MaxBodyBytes))
			r.Post("/estimate", h.Estimate)
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimitUpload())
			r.Use(chimiddleware.RequestSize(router.config.Uploads.MaxBytes + multipartOverhead))
			r.Post("/upload", h.Upload)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(mw.RateLimit())
		r.Get("/uploads/{filename}", h.ServeUpload)
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	h.routes = collectRoutes(r)
	return r
}

// collectRoutes lists every registered method and path, sorted by path.
func collectRoutes(r chi.Routes) []RouteInfo {
	var routes []RouteInfo
	walkFn := func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		route = strings.ReplaceAll(route, "/*/", "/")
		routes = append(routes, RouteInfo{Method: method, Path: route})
		return nil
	}
	if err := chi.Walk(r, walkFn); err != nil {
		logging.Warn().Err(err).Msg("Failed to walk routes")
	}

	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})
	return routes
}

// Routes lists the registered routes
//
// @Summary List routes
// @Description Returns the method and path of every registered route
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse{data=[]RouteInfo} "Registered routes"
// @Router /routes [get]
func (h *Handler) Routes(w http.ResponseWriter, r *http.Request) {
	count := len(h.routes)
	NewResponseWriter(w, r).SuccessWithMeta(h.routes, &APIMeta{Count: &count})
}
