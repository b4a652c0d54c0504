// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateSecurity,
		c.validateData,
		c.validateUploads,
		c.validateUpstream,
		c.validateDirections,
		c.validateLogging,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("HTTP_MAX_BODY_BYTES must be positive")
	}
	if !validEnvironments[strings.ToLower(c.Server.Environment)] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, dev, staging, production, prod")
	}
	return nil
}

var validEnvironments = map[string]bool{
	"development": true,
	"dev":         true,
	"staging":     true,
	"production":  true,
	"prod":        true,
}

// IsProduction returns true if the application is running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// IsDevelopment returns true if the application is running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "" || env == "development" || env == "dev"
}

func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			continue
		}
		if err := checkURL(origin, "CORS_ORIGINS entry", false); err != nil {
			return err
		}
	}
	return c.validateRateLimits()
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS reports a wildcard CORS policy in production, logged at startup.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.IsProduction() && c.hasWildcardCORS()
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

func (c *Config) validateData() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("DATA_DIR is required")
	}
	for name, file := range c.Data.Files() {
		if file == "" {
			return fmt.Errorf("data file for %q is required", name)
		}
		if strings.ContainsAny(file, `/\`) || file == ".." {
			return fmt.Errorf("data file for %q must be a plain file name, got %q", name, file)
		}
	}
	return nil
}

func (c *Config) validateUploads() error {
	if c.Uploads.Dir == "" {
		return fmt.Errorf("UPLOAD_DIR is required")
	}
	if c.Uploads.MaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}
	if c.Uploads.Timeout <= 0 {
		return fmt.Errorf("UPLOAD_TIMEOUT must be positive")
	}
	if len(c.Uploads.AllowedTypes) == 0 {
		return fmt.Errorf("UPLOAD_ALLOWED_TYPES must list at least one content type")
	}
	for _, ct := range c.Uploads.AllowedTypes {
		major, minor, ok := strings.Cut(ct, "/")
		if !ok || major == "" || minor == "" || major == "*" {
			return fmt.Errorf("UPLOAD_ALLOWED_TYPES entry %q must look like type/subtype or type/*", ct)
		}
	}
	if c.Uploads.PublicBaseURL != "" {
		return checkURL(c.Uploads.PublicBaseURL, "PUBLIC_BASE_URL", false)
	}
	return nil
}

func (c *Config) validateUpstream() error {
	u := c.Upstream
	if u.Timeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	}
	if u.MaxBodyBytes <= 0 {
		return fmt.Errorf("UPSTREAM_MAX_BODY_BYTES must be positive")
	}
	if u.RatePerSecond <= 0 {
		return fmt.Errorf("UPSTREAM_RATE must be positive")
	}
	if u.Burst < 1 {
		return fmt.Errorf("UPSTREAM_BURST must be at least 1")
	}
	if u.BreakerFailures < 1 {
		return fmt.Errorf("UPSTREAM_BREAKER_FAILURES must be at least 1")
	}
	if u.BreakerTimeout <= 0 {
		return fmt.Errorf("UPSTREAM_BREAKER_TIMEOUT must be positive")
	}
	return nil
}

// validateDirections only checks the provider when a key is configured;
// without one the directions routes report a server error per request.
func (c *Config) validateDirections() error {
	if !c.Directions.Configured() {
		return nil
	}
	if containsPlaceholder(c.Directions.APIKey) {
		return fmt.Errorf("DIRECTIONS_API_KEY contains a placeholder value")
	}
	return checkURL(c.Directions.BaseURL, "DIRECTIONS_BASE_URL", true)
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// placeholderPatterns indicate the user forgot to set a real value.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_API_KEY",
	"YOUR_KEY",
	"PLACEHOLDER",
}

func containsPlaceholder(value string) bool {
	upper := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// checkURL requires an http(s) scheme and a host. With baseOnly set, a path
// other than "/" and any query are rejected too.
func checkURL(raw, name string, baseOnly bool) error {
	u, err := url.Parse(raw)
	switch {
	case err != nil:
		return fmt.Errorf("%s is not a valid URL: %w", name, err)
	case u.Scheme != "http" && u.Scheme != "https":
		return fmt.Errorf("%s scheme must be http or https, got %q", name, u.Scheme)
	case u.Host == "":
		return fmt.Errorf("%s host is required", name)
	case !baseOnly:
		return nil
	case u.Path != "" && u.Path != "/":
		return fmt.Errorf("%s must be a base URL without path, got %q", name, u.Path)
	case u.RawQuery != "":
		return fmt.Errorf("%s must not contain query parameters", name)
	}
	return nil
}
