// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

/*
Command server runs the Trafficwatch HTTP backend.

Startup order:

 1. Configuration via koanf v2 (defaults, optional config.yaml, environment)
 2. Logging via zerolog
 3. Dataset reader over DATA_DIR
 4. Upstream fetcher (rate limiter and circuit breaker) shared by the proxy
    and the directions lookup
 5. Upload store under UPLOAD_DIR
 6. chi router and http.Server
 7. suture supervisor tree: dataset monitor in the data layer, HTTP server
    in the API layer

SIGINT or SIGTERM cancels the root context. The HTTP server stops accepting
connections and waits up to HTTP_SHUTDOWN_TIMEOUT for in-flight requests.

# Example

	export DATA_DIR=./data
	export UPLOAD_DIR=./uploads
	export DIRECTIONS_API_KEY=your-key
	./trafficwatch

	curl -s -X POST localhost:3000/api/v1/estimate \
	  -d '{"T_min":60,"Tff_min":30,"L_km":5,"qpc":1000,"alpha":0.15,"beta":4}'
	{"q_veh_per_h":1606.86,"N_veh":1607,"Tratio":2}
*/
package main
