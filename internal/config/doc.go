// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

/*
Package config provides centralized configuration management for Trafficwatch.

Configuration is built once at startup by Load and passed by pointer to the
components that need it. Nothing reads the environment after Load returns.

# Configuration Sources

Sources are layered with Koanf v2, later layers override earlier ones:

 1. Built-in defaults (Defaults)
 2. Optional YAML file: $CONFIG_PATH, ./config.yaml, /etc/trafficwatch/config.yaml
 3. Environment variables listed below

# Environment Variables

HTTP Server (ServerConfig):
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 3000)
  - HTTP_TIMEOUT: Read/write timeout (default: 30s)
  - HTTP_SHUTDOWN_TIMEOUT: Graceful shutdown budget (default: 10s)
  - HTTP_MAX_BODY_BYTES: Request body limit outside uploads (default: 1MB)
  - ENVIRONMENT: development or production (default: development)

Security (SecurityConfig):
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS: Requests per window per client (default: 100)
  - RATE_LIMIT_WINDOW: Rate limit window (default: 1m)
  - DISABLE_RATE_LIMIT: Disable request limiting (default: false)

Datasets (DataConfig):
  - DATA_DIR: Directory holding the JSON datasets (default: ./data)
  - DATA_POIS_FILE, DATA_CCTV_FILE, DATA_BASELINES_FILE, DATA_INSIGHTS_FILE

Uploads (UploadsConfig):
  - UPLOAD_DIR: Storage directory (default: ./uploads)
  - UPLOAD_MAX_BYTES: Largest accepted file (default: 200MB)
  - UPLOAD_ALLOWED_TYPES: Comma-separated content types, "video/*" wildcards allowed
  - PUBLIC_BASE_URL: Prefix for returned file URLs (default: empty, relative URLs)

Upstream (UpstreamConfig):
  - UPSTREAM_TIMEOUT: Outbound request timeout (default: 15s)
  - UPSTREAM_MAX_BODY_BYTES: Largest upstream body forwarded (default: 10MB)
  - UPSTREAM_RATE: Outbound requests per second (default: 10)
  - UPSTREAM_BURST: Outbound burst size (default: 20)
  - UPSTREAM_BREAKER_FAILURES: Consecutive failures that open the breaker (default: 5)
  - UPSTREAM_BREAKER_TIMEOUT: Open state duration (default: 30s)

Directions (DirectionsConfig):
  - DIRECTIONS_BASE_URL: Provider base URL (default: https://maps.googleapis.com)
  - DIRECTIONS_API_KEY: Provider key; directions routes fail with 500 when empty

Logging (LoggingConfig):
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: Include caller file:line (default: false)

# Usage Example

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if cfg.ShouldWarnAboutCORS() {
	    logging.Warn().Msg("CORS_ORIGINS=* in production")
	}
*/
package config
