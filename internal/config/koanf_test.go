// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// isolate points the loader at an empty directory and clears mapped env vars.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(ConfigPathEnvVar, "")
	for name := range envMappings {
		key := strings.ToUpper(name)
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return dir
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := Defaults()

	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, []string{"*"}) {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}
	if cfg.Data.POIsFile != "pois.json" || cfg.Data.InsightsFile != "insights.json" {
		t.Errorf("Data files = %+v, want pois.json/insights.json defaults", cfg.Data)
	}
	if !reflect.DeepEqual(cfg.Uploads.AllowedTypes, []string{"video/*"}) {
		t.Errorf("Uploads.AllowedTypes = %v, want [video/*]", cfg.Uploads.AllowedTypes)
	}
	if cfg.Uploads.Timeout != 30*time.Minute {
		t.Errorf("Uploads.Timeout = %v, want 30m", cfg.Uploads.Timeout)
	}
	if cfg.Upstream.BreakerFailures != 5 {
		t.Errorf("Upstream.BreakerFailures = %d, want 5", cfg.Upstream.BreakerFailures)
	}
	if cfg.Directions.Configured() {
		t.Error("Directions.Configured() = true by default, want false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Defaults().Validate() error = %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"HTTP_PORT", "server.port"},
		{"HTTP_HOST", "server.host"},
		{"ENVIRONMENT", "server.environment"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"DATA_DIR", "data.dir"},
		{"UPLOAD_MAX_BYTES", "uploads.max_bytes"},
		{"PUBLIC_BASE_URL", "uploads.public_base_url"},
		{"UPLOAD_TIMEOUT", "uploads.timeout"},
		{"UPSTREAM_RATE", "upstream.rate_per_second"},
		{"DIRECTIONS_API_KEY", "directions.api_key"},
		{"LOG_LEVEL", "logging.level"},
		{"log_format", "logging.format"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.input); got != tt.expected {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := isolate(t)

	if got := findConfigFile(); got != "" {
		t.Errorf("findConfigFile() = %q, want empty string", got)
	}

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: {}\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if got := findConfigFile(); got != "config.yaml" {
		t.Errorf("findConfigFile() = %q, want config.yaml", got)
	}

	custom := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(custom, []byte("server: {}\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, custom)
	if got := findConfigFile(); got != custom {
		t.Errorf("findConfigFile() = %q, want %q", got, custom)
	}

	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
	if got := findConfigFile(); got != "config.yaml" {
		t.Errorf("findConfigFile() with missing CONFIG_PATH = %q, want fallback config.yaml", got)
	}
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	isolate(t)

	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("UPSTREAM_TIMEOUT", "5s")
	t.Setenv("CORS_ORIGINS", "https://ops.example.com, https://map.example.com")
	t.Setenv("UPLOAD_ALLOWED_TYPES", "video/mp4,video/webm")
	t.Setenv("DIRECTIONS_API_KEY", "AIzaRealKeyValue123")
	t.Setenv("DISABLE_RATE_LIMIT", "true")
	t.Setenv("UPLOAD_TIMEOUT", "2h")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Upstream.Timeout != 5*time.Second {
		t.Errorf("Upstream.Timeout = %v, want 5s", cfg.Upstream.Timeout)
	}
	wantOrigins := []string{"https://ops.example.com", "https://map.example.com"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, wantOrigins) {
		t.Errorf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, wantOrigins)
	}
	if !reflect.DeepEqual(cfg.Uploads.AllowedTypes, []string{"video/mp4", "video/webm"}) {
		t.Errorf("Uploads.AllowedTypes = %v", cfg.Uploads.AllowedTypes)
	}
	if !cfg.Directions.Configured() {
		t.Error("Directions.Configured() = false, want true")
	}
	if cfg.Uploads.Timeout != 2*time.Hour {
		t.Errorf("Uploads.Timeout = %v, want 2h", cfg.Uploads.Timeout)
	}
	if !cfg.Security.RateLimitDisabled {
		t.Error("Security.RateLimitDisabled = false, want true")
	}

	// Defaults survive for unset values.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0 (default)", cfg.Server.Host)
	}
	if cfg.Data.Dir != "./data" {
		t.Errorf("Data.Dir = %q, want ./data (default)", cfg.Data.Dir)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	dir := isolate(t)

	content := `
server:
  port: 8888
  host: "127.0.0.1"
security:
  cors_origins:
    - "https://ops.example.com"
data:
  dir: "/srv/trafficwatch/data"
logging:
  level: "warn"
`
	path := filepath.Join(dir, "tw.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 8888 || cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server = %s, want 127.0.0.1:8888", cfg.Server.Addr())
	}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, []string{"https://ops.example.com"}) {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Data.Dir != "/srv/trafficwatch/data" {
		t.Errorf("Data.Dir = %q", cfg.Data.Dir)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
	if cfg.Data.CCTVFile != "cctv.json" {
		t.Errorf("Data.CCTVFile = %q, want cctv.json (default)", cfg.Data.CCTVFile)
	}
}

func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 8888\nlogging:\n  level: warn\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("HTTP_PORT", "9999")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999 (env override)", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn (from file)", cfg.Logging.Level)
	}
}

func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"port out of range", map[string]string{"HTTP_PORT": "70000"}},
		{"bad log level", map[string]string{"LOG_LEVEL": "verbose"}},
		{"bad environment", map[string]string{"ENVIRONMENT": "qa-cluster"}},
		{"zero upstream rate", map[string]string{"UPSTREAM_RATE": "0"}},
		{"bad upload type", map[string]string{"UPLOAD_ALLOWED_TYPES": "mp4"}},
		{"zero upload timeout", map[string]string{"UPLOAD_TIMEOUT": "0s"}},
		{"placeholder key", map[string]string{"DIRECTIONS_API_KEY": "YOUR_API_KEY"}},
		{"directions path", map[string]string{"DIRECTIONS_API_KEY": "k-123456789", "DIRECTIONS_BASE_URL": "https://maps.example.com/maps/api"}},
		{"relative cors origin", map[string]string{"CORS_ORIGINS": "ops.example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := LoadWithKoanf(); err == nil {
				t.Error("LoadWithKoanf() error = nil, want validation error")
			}
		})
	}
}
