// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

package api

import (
	"context"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/trafficwatch/internal/config"
	"github.com/tomtom215/trafficwatch/internal/datasets"
	"github.com/tomtom215/trafficwatch/internal/upstream"
	"github.com/tomtom215/trafficwatch/internal/uploads"
)

// testConfig returns defaults with rate limiting disabled.
func testConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Security.RateLimitDisabled = true
	cfg.Uploads.MaxBytes = 1024
	return cfg
}

// newTestServer builds the full router around deps.
func newTestServer(t *testing.T, cfg *config.Config, deps Dependencies) (*Handler, http.Handler) {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	h := NewHandler(cfg, deps)
	return h, NewRouter(h, cfg).SetupChi()
}

func doRequest(t *testing.T, handler http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil && method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode envelope %q: %v", rec.Body.String(), err)
	}
	return resp
}

// writeDatasets writes every dataset file with a small JSON document and
// returns a reader over them.
func writeDatasets(t *testing.T, skip ...string) *datasets.Reader {
	t.Helper()
	dir := t.TempDir()
	files := config.Defaults().Data.Files()
	for name, file := range files {
		if contains(skip, name) {
			continue
		}
		content := `{"dataset":"` + name + `"}`
		if err := os.WriteFile(filepath.Join(dir, file), []byte(content), 0o600); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}
	return datasets.NewReader(dir, files)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type fakeProxy struct {
	resp *upstream.Response
	err  error
	got  string
}

func (f *fakeProxy) Forward(_ context.Context, rawURL string) (*upstream.Response, error) {
	f.got = rawURL
	return f.resp, f.err
}

type fakeDirections struct {
	result     *upstream.DirectionsResult
	err        error
	configured bool
}

func (f *fakeDirections) Lookup(_ context.Context, _, _ string) (*upstream.DirectionsResult, error) {
	return f.result, f.err
}

func (f *fakeDirections) Configured() bool {
	return f.configured
}

type fakeBreaker string

func (f fakeBreaker) BreakerState() string {
	return string(f)
}

// newTestUploads returns a real store in a temp dir.
func newTestUploads(t *testing.T, maxBytes int64) *uploads.Store {
	t.Helper()
	s, err := uploads.New(t.TempDir(), maxBytes, []string{"video/*"}, "http://localhost:3000")
	if err != nil {
		t.Fatalf("uploads.New() error = %v", err)
	}
	return s
}

// failingStore satisfies UploadStore and always fails with err.
type failingStore struct {
	err error
}

func (f failingStore) Save(context.Context, string, string, io.Reader) (*uploads.Stored, error) {
	return nil, f.err
}

func (f failingStore) Open(string) (*os.File, fs.FileInfo, error) {
	return nil, nil, f.err
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

func serve(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}
