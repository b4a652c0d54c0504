// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

// Package logging provides centralized zerolog-based structured logging for Trafficwatch.
//
// The package provides:
//   - JSON output for production and console output for development
//   - Context-aware logging with request and correlation ID propagation
//   - An slog adapter so suture's supervisor events land in zerolog
//   - Redaction helpers for upstream URLs that carry API keys
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("addr", addr).Msg("Server starting")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Directions lookup failed")
//
// # Configuration
//
// Environment Variables (read by internal/config):
//
//	LOG_LEVEL   - Minimum log level: trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - Output format: json, console (default: json)
//	LOG_CALLER  - Include caller file:line: true, false (default: false)
//
// # Redaction
//
// Never log a directions request URL directly, it carries the provider key:
//
//	logging.Debug().Str("url", logging.RedactURL(u)).Msg("Directions request")
//
// # Thread Safety
//
// The global logger is guarded by a RWMutex. Init may be called again to reconfigure.
package logging
