// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

/*
Package metrics provides Prometheus metrics collection and export for observability.

Collectors are registered with the default registry through promauto at package
init and exposed at /metrics by the API router:

	curl http://localhost:3000/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total{method,endpoint,status_code} (counter)
  - api_request_duration_seconds{method,endpoint} (histogram)
  - api_active_requests (gauge)
  - api_rate_limit_hits_total{endpoint} (counter)

Estimator Metrics:
  - trafficwatch_estimates_total{outcome} (counter): computed, free_flow, invalid, fault
  - trafficwatch_estimated_flow_veh_per_hour (histogram)

Upstream Metrics:
  - trafficwatch_upstream_requests_total{caller,status_class} (counter)
  - trafficwatch_upstream_request_duration_seconds{caller} (histogram)
  - trafficwatch_upstream_rate_limit_wait_seconds (histogram)
  - circuit_breaker_state{name} (gauge): 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total{name,result} (counter)
  - circuit_breaker_consecutive_failures{name} (gauge)
  - circuit_breaker_state_transitions_total{name,from_state,to_state} (counter)

Upload and Dataset Metrics:
  - trafficwatch_uploads_total{result} (counter)
  - trafficwatch_upload_bytes_total (counter)
  - trafficwatch_dataset_reads_total{dataset,result} (counter)
  - trafficwatch_datasets_missing (gauge)

# Usage

	start := time.Now()
	// ... handle request ...
	metrics.RecordAPIRequest(r.Method, "/api/v1/estimate", "200", time.Since(start))

The endpoint label is the chi route pattern, never the raw path, to keep
cardinality bounded.
*/
package metrics
