// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

/*
Package api provides the HTTP layer of Trafficwatch.

Routes are registered on a chi router by Router.SetupChi:

	GET  /api/v1/health, /health/live, /health/ready   service status and probes
	GET  /api/v1/routes                                 registered routes
	GET  /api/v1/pois, /cctv, /baselines, /insights     static datasets, JSON verbatim
	GET  /api/v1/proxy?url=                             generic URL proxy
	GET  /api/v1/directions?origin=&destination=        directions passthrough
	POST /api/v1/estimate                               congestion estimator
	GET  /api/v1/estimate/route                         directions fed into the estimator
	POST /api/v1/upload                                 multipart video upload
	GET  /uploads/{filename}                            stored uploads
	GET  /metrics, /swagger/*                           observability

Response shapes:

Most routes answer with the APIResponse envelope ({success, data, error, meta}).
Datasets are written verbatim, the proxy copies the upstream reply, and
directions returns {T_min, L_km, raw}. The estimate endpoint keeps its own
contract: the result object on 200, {"error": message} on 400 and 500.

Middleware:

Every request gets an X-Request-ID and a correlation ID in its logging
context (internal/middleware.RequestID), then chi RealIP and Recoverer,
Prometheus instrumentation and go-chi/cors. Route groups add go-chi/httprate
limits, security headers, gzip for datasets and request body caps.
*/
package api
