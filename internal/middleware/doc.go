// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

/*
Package middleware provides net/http middleware shared by the API router.

Key Components:

  - RequestID: UUID request IDs propagated to the response header and the logging context
  - PrometheusMetrics: request count, latency and in-flight instrumentation labelled by chi route pattern

Both have the func(http.Handler) http.Handler shape and plug straight into chi:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)

RequestID must run before anything that logs through logging.Ctx so that
request_id and correlation_id appear on every line for the request.
*/
package middleware
