// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

/*
Package upstream forwards requests to external HTTP services and reshapes their replies.

A single Fetcher owns the outbound http.Client and is shared by the raw URL
Proxy and the Directions lookup. Every call goes through:

 1. a golang.org/x/time/rate limiter bounding outbound requests per second
    (it waits for a token within the request context and never retries)
 2. a sony/gobreaker circuit breaker that opens after consecutive transport
    failures; upstream non-2xx replies are forwarded and do not count as failures
 3. a body cap so an upstream cannot exhaust memory

Errors are sentinels matched with errors.Is at the HTTP boundary:

	ErrInvalidTargetURL        400  caller supplied a relative or non-http(s) URL
	ErrCircuitOpen             503  breaker open or half-open probe budget spent
	ErrRateLimited             503  no outbound token before the context deadline
	ErrTransport               502  DNS, connect, TLS or read failure
	ErrBodyTooLarge            502  upstream body exceeds the configured cap
	ErrDirectionsNotConfigured 500  no provider key
	ErrNoRoute                 502  provider status other than OK, or no legs
*/
package upstream
