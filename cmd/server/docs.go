// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

// @title Trafficwatch API
// @version 1.0
// @description Traffic monitoring backend: static datasets, upstream proxying, video report intake and BPR congestion estimation.
// @description
// @description ## Error Responses
// @description
// @description Envelope endpoints return:
// @description ```json
// @description {
// @description   "success": false,
// @description   "error": {"code": "ERROR_CODE", "message": "Human-readable message", "request_id": "..."},
// @description   "meta": {"timestamp": "2026-01-01T00:00:00Z"}
// @description }
// @description ```
// @description `POST /estimate` keeps its flat contract: `{"error": "..."}` on failure.
// @description
// @description ## Rate Limiting
// @description
// @description Per-IP limits apply per route group. Exceeding one returns 429 with `X-RateLimit-*` headers.
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/trafficwatch/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:3000
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Core
// @tag.description Health probes and route listing
//
// @tag.name Datasets
// @tag.description Static JSON datasets served from the data directory
//
// @tag.name Upstream
// @tag.description Generic proxy and directions passthrough
//
// @tag.name Estimator
// @tag.description BPR inversion: flow and vehicle count from observed travel time
//
// @tag.name Uploads
// @tag.description Video report intake
package main
