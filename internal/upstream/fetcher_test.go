// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/trafficwatch/internal/metrics"
)

func testFetcher(t *testing.T, breakerName string) *Fetcher {
	t.Helper()
	return NewFetcher(Options{
		Timeout:      2 * time.Second,
		MaxBodyBytes: 1024,
		Breaker: BreakerSettings{
			Name:        breakerName,
			MaxRequests: 1,
			Timeout:     time.Hour,
			Failures:    2,
		},
	})
}

// deadURL returns the address of a server that has already been closed.
func deadURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	u := srv.URL
	srv.Close()
	return u
}

func TestFetch_ReturnsBodyAndStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != defaultUserAgent {
			t.Errorf("User-Agent = %q, want %q", ua, defaultUserAgent)
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("Accept header not forwarded")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	f := testFetcher(t, "test-fetch-ok")
	resp, err := f.Fetch(context.Background(), "test", http.MethodGet, srv.URL, http.Header{"Accept": {"application/json"}})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if resp.StatusCode != http.StatusAccepted {
		t.Errorf("StatusCode = %d, want %d", resp.StatusCode, http.StatusAccepted)
	}
	if resp.ContentType != "application/json" {
		t.Errorf("ContentType = %q", resp.ContentType)
	}
	if string(resp.Body) != `{"ok":true}` {
		t.Errorf("Body = %q", resp.Body)
	}
	if !resp.OK() {
		t.Error("OK() = false, want true")
	}
}

func TestFetch_UpstreamErrorsDoNotTripBreaker(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := testFetcher(t, "test-fetch-5xx")
	for i := 0; i < 5; i++ {
		resp, err := f.Get(context.Background(), "test", srv.URL)
		if err != nil {
			t.Fatalf("Get() #%d error = %v", i, err)
		}
		if resp.StatusCode != http.StatusInternalServerError {
			t.Errorf("StatusCode = %d, want 500", resp.StatusCode)
		}
	}
	if got := f.BreakerState(); got != "closed" {
		t.Errorf("BreakerState() = %q, want closed", got)
	}
}

func TestFetch_TransportFailuresOpenBreaker(t *testing.T) {
	t.Parallel()

	f := testFetcher(t, "test-fetch-trip")
	target := deadURL(t)

	for i := 0; i < 2; i++ {
		_, err := f.Get(context.Background(), "test", target)
		if !errors.Is(err, ErrTransport) {
			t.Fatalf("Get() #%d error = %v, want ErrTransport", i, err)
		}
	}
	if got := f.BreakerState(); got != "open" {
		t.Fatalf("BreakerState() = %q, want open", got)
	}

	_, err := f.Get(context.Background(), "test", target)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("Get() with open breaker error = %v, want ErrCircuitOpen", err)
	}
	if !IsBreakerRejection(err) {
		t.Error("IsBreakerRejection() = false, want true")
	}

	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("test-fetch-trip")); got != 2 {
		t.Errorf("breaker state gauge = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerRequests.WithLabelValues("test-fetch-trip", "rejected")); got != 1 {
		t.Errorf("rejected requests = %v, want 1", got)
	}
}

func TestFetch_BodyTooLarge(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 2048)))
	}))
	defer srv.Close()

	f := testFetcher(t, "test-fetch-large")
	for i := 0; i < 3; i++ {
		if _, err := f.Get(context.Background(), "test", srv.URL); !errors.Is(err, ErrBodyTooLarge) {
			t.Fatalf("Get() error = %v, want ErrBodyTooLarge", err)
		}
	}
	if got := f.BreakerState(); got != "closed" {
		t.Errorf("BreakerState() = %q, want closed", got)
	}
}

func TestFetch_CanceledContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := testFetcher(t, "test-fetch-cancel")
	if _, err := f.Get(ctx, "test", srv.URL); !errors.Is(err, context.Canceled) {
		t.Errorf("Get() error = %v, want context.Canceled", err)
	}
}

func TestFetch_RateLimitedBeforeDeadline(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f := NewFetcher(Options{
		RatePerSecond: 0.001,
		Burst:         1,
		Breaker:       BreakerSettings{Name: "test-fetch-rate"},
	})

	if _, err := f.Get(context.Background(), "test", srv.URL); err != nil {
		t.Fatalf("first Get() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := f.Get(ctx, "test", srv.URL); !errors.Is(err, ErrRateLimited) {
		t.Errorf("second Get() error = %v, want ErrRateLimited", err)
	}
}

func TestStateToString(t *testing.T) {
	t.Parallel()

	f := testFetcher(t, "test-state-string")
	if got := f.BreakerState(); got != "closed" {
		t.Errorf("BreakerState() = %q, want closed", got)
	}
	if got := stateToFloat(f.breaker.state()); got != 0 {
		t.Errorf("stateToFloat(closed) = %v, want 0", got)
	}
}
