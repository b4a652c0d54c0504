// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Estimator outcome labels.
const (
	OutcomeComputed = "computed"
	OutcomeFreeFlow = "free_flow"
	OutcomeInvalid  = "invalid"
	OutcomeFault    = "fault"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Estimator Metrics
	EstimatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trafficwatch_estimates_total",
			Help: "Congestion estimates by outcome (computed, free_flow, invalid, fault)",
		},
		[]string{"outcome"},
	)

	EstimatedFlow = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "trafficwatch_estimated_flow_veh_per_hour",
			Help:    "Distribution of computed link flows in vehicles per hour",
			Buckets: []float64{100, 250, 500, 1000, 1500, 2000, 3000, 5000, 10000},
		},
	)

	// Upstream Metrics
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trafficwatch_upstream_requests_total",
			Help: "Outbound requests by caller and status class (2xx, 4xx, 5xx, error)",
		},
		[]string{"caller", "status_class"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trafficwatch_upstream_request_duration_seconds",
			Help:    "Outbound request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"caller"},
	)

	UpstreamRateLimitWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "trafficwatch_upstream_rate_limit_wait_seconds",
			Help:    "Time spent waiting for the outbound rate limiter",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Upload Metrics
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trafficwatch_uploads_total",
			Help: "File uploads by result (stored, rejected_type, too_large, error)",
		},
		[]string{"result"},
	)

	UploadBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trafficwatch_upload_bytes_total",
			Help: "Total bytes persisted by the upload store",
		},
	)

	// Dataset Metrics
	DatasetReadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trafficwatch_dataset_reads_total",
			Help: "Static dataset reads by dataset and result (ok, missing, malformed, error)",
		},
		[]string{"dataset", "result"},
	)

	DatasetsMissing = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "trafficwatch_datasets_missing",
			Help: "Number of configured datasets absent from the data directory at the last check",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a request rejected by the inbound limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordEstimate counts an estimator outcome. flow is observed only for computed results.
func RecordEstimate(outcome string, flow float64) {
	EstimatesTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeComputed {
		EstimatedFlow.Observe(flow)
	}
}

// RecordUpstreamRequest records an outbound call. statusCode 0 means a transport error.
func RecordUpstreamRequest(caller string, statusCode int, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(caller, statusClass(statusCode)).Inc()
	UpstreamRequestDuration.WithLabelValues(caller).Observe(duration.Seconds())
}

func statusClass(code int) string {
	switch {
	case code <= 0:
		return "error"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

// RecordUpload counts an upload attempt and, when stored, its size.
func RecordUpload(result string, size int64) {
	UploadsTotal.WithLabelValues(result).Inc()
	if result == "stored" && size > 0 {
		UploadBytes.Add(float64(size))
	}
}

// RecordDatasetRead counts a dataset read.
func RecordDatasetRead(dataset, result string) {
	DatasetReadsTotal.WithLabelValues(dataset, result).Inc()
}
