// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the body of the health endpoint.
type HealthStatus struct {
	Status               string   `json:"status"`
	Version              string   `json:"version"`
	Environment          string   `json:"environment"`
	Uptime               float64  `json:"uptime"`
	MissingDatasets      []string `json:"missing_datasets,omitempty"`
	DirectionsConfigured bool     `json:"directions_configured"`
	UpstreamBreaker      string   `json:"upstream_breaker,omitempty"`
}

// Health handles health check requests
//
// @Summary Get service health status
// @Description Reports dataset availability, directions provider configuration, outbound circuit breaker state and uptime
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus} "Health status retrieved successfully"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	missing := h.missingDatasets()
	breaker := h.breakerState()

	status := "healthy"
	if len(missing) > 0 || breaker == "open" {
		status = "degraded"
	}

	env := ""
	if h.config != nil {
		env = h.config.Server.Environment
	}

	NewResponseWriter(w, r).Success(HealthStatus{
		Status:               status,
		Version:              Version,
		Environment:          env,
		Uptime:               time.Since(h.startTime).Seconds(),
		MissingDatasets:      missing,
		DirectionsConfigured: h.directions != nil && h.directions.Configured(),
		UpstreamBreaker:      breaker,
	})
}

// HealthLive handles liveness probe requests
//
// @Summary Liveness probe
// @Description Returns 200 OK while the process is alive, regardless of datasets or upstreams
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse "Service is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests
//
// @Summary Readiness probe
// @Description Returns 200 when every configured dataset is readable, 503 otherwise
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse "Service is ready"
// @Failure 503 {object} APIResponse "Service is not ready"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	missing := h.missingDatasets()
	ready := len(missing) == 0

	statusCode := http.StatusOK
	if !ready {
		statusCode = http.StatusServiceUnavailable
	}

	NewResponseWriter(w, r).SuccessWithStatus(statusCode, map[string]interface{}{
		"ready_to_serve":   ready,
		"missing_datasets": missing,
		"uptime":           time.Since(h.startTime).Seconds(),
	})
}

func (h *Handler) missingDatasets() []string {
	if h.datasets == nil {
		return nil
	}
	return h.datasets.Check()
}

func (h *Handler) breakerState() string {
	if h.upstream == nil {
		return ""
	}
	return h.upstream.BreakerState()
}
