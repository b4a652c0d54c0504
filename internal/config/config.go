// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Security   SecurityConfig   `koanf:"security"`
	Data       DataConfig       `koanf:"data"`
	Uploads    UploadsConfig    `koanf:"uploads"`
	Upstream   UpstreamConfig   `koanf:"upstream"`
	Directions DirectionsConfig `koanf:"directions"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	MaxBodyBytes    int64         `koanf:"max_body_bytes"`
	Environment     string        `koanf:"environment"` // "development" or "production"
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// SecurityConfig holds CORS and request limiting settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// DataConfig locates the static JSON datasets.
type DataConfig struct {
	Dir           string `koanf:"dir"`
	POIsFile      string `koanf:"pois_file"`
	CCTVFile      string `koanf:"cctv_file"`
	BaselinesFile string `koanf:"baselines_file"`
	InsightsFile  string `koanf:"insights_file"`
}

// Files maps dataset names to file names relative to Dir.
func (d DataConfig) Files() map[string]string {
	return map[string]string{
		"pois":      d.POIsFile,
		"cctv":      d.CCTVFile,
		"baselines": d.BaselinesFile,
		"insights":  d.InsightsFile,
	}
}

// UploadsConfig holds file intake settings.
// Timeout replaces the server read and write deadlines for an upload request,
// which the general HTTP_TIMEOUT would otherwise cut short.
type UploadsConfig struct {
	Dir           string        `koanf:"dir"`
	MaxBytes      int64         `koanf:"max_bytes"`
	PublicBaseURL string        `koanf:"public_base_url"`
	AllowedTypes  []string      `koanf:"allowed_types"`
	Timeout       time.Duration `koanf:"timeout"`
}

// UpstreamConfig holds outbound HTTP settings shared by the proxy and directions lookups.
type UpstreamConfig struct {
	Timeout       time.Duration `koanf:"timeout"`
	MaxBodyBytes  int64         `koanf:"max_body_bytes"`
	RatePerSecond float64       `koanf:"rate_per_second"`
	Burst         int           `koanf:"burst"`

	// Circuit breaker (sony/gobreaker)
	BreakerMaxRequests uint32        `koanf:"breaker_max_requests"` // probes allowed while half-open
	BreakerInterval    time.Duration `koanf:"breaker_interval"`     // closed-state counter reset
	BreakerTimeout     time.Duration `koanf:"breaker_timeout"`      // open-state duration
	BreakerFailures    uint32        `koanf:"breaker_failures"`     // consecutive failures to trip
}

// DirectionsConfig configures the external directions provider.
type DirectionsConfig struct {
	BaseURL string `koanf:"base_url"`
	APIKey  string `koanf:"api_key"`
}

// Configured reports whether a provider key is present.
func (d DirectionsConfig) Configured() bool {
	return d.APIKey != ""
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration with the following precedence (highest to lowest):
//  1. Environment variables
//  2. Config file (CONFIG_PATH, or config.yaml if present)
//  3. Built-in defaults
//
// See LoadWithKoanf for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
