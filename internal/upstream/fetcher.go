// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/trafficwatch/internal/config"
	"github.com/tomtom215/trafficwatch/internal/logging"
	"github.com/tomtom215/trafficwatch/internal/metrics"
)

// Sentinel errors returned by Fetch and the helpers built on it.
var (
	ErrCircuitOpen  = errors.New("upstream circuit open")
	ErrRateLimited  = errors.New("upstream rate limit exceeded")
	ErrTransport    = errors.New("upstream request failed")
	ErrBodyTooLarge = errors.New("upstream response too large")
)

const defaultUserAgent = "trafficwatch/1.0"

// Options configures a Fetcher.
type Options struct {
	Timeout       time.Duration
	MaxBodyBytes  int64
	RatePerSecond float64 // <= 0 disables outbound limiting
	Burst         int
	Breaker       BreakerSettings
	UserAgent     string

	// Transport overrides the default round tripper, mainly for tests.
	Transport http.RoundTripper
}

// OptionsFromConfig maps the upstream config section onto Options.
func OptionsFromConfig(cfg *config.UpstreamConfig) Options {
	return Options{
		Timeout:       cfg.Timeout,
		MaxBodyBytes:  cfg.MaxBodyBytes,
		RatePerSecond: cfg.RatePerSecond,
		Burst:         cfg.Burst,
		Breaker: BreakerSettings{
			Name:        "upstream",
			MaxRequests: cfg.BreakerMaxRequests,
			Interval:    cfg.BreakerInterval,
			Timeout:     cfg.BreakerTimeout,
			Failures:    cfg.BreakerFailures,
		},
	}
}

// Response is an upstream reply read into memory.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Fetcher performs rate limited, circuit broken outbound HTTP requests.
// It is safe for concurrent use.
type Fetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	breaker   *breaker
	maxBody   int64
	userAgent string
}

// NewFetcher creates a Fetcher from opts.
func NewFetcher(opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 10 << 20
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}

	limit := rate.Inf
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Fetcher{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: opts.Transport,
		},
		limiter:   rate.NewLimiter(limit, burst),
		breaker:   newBreaker(opts.Breaker),
		maxBody:   opts.MaxBodyBytes,
		userAgent: opts.UserAgent,
	}
}

// BreakerState returns the current breaker state name: closed, half-open or open.
func (f *Fetcher) BreakerState() string {
	return stateToString(f.breaker.state())
}

// Fetch sends a request and reads the whole response body.
//
// caller labels the request in metrics and logs. Non-2xx responses are returned
// with a nil error; only transport failures count against the breaker.
func (f *Fetcher) Fetch(ctx context.Context, caller, method, rawURL string, header http.Header) (*Response, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}

	logger := logging.Ctx(ctx)
	start := time.Now()

	resp, err := f.breaker.execute(func() (*Response, error) {
		return f.do(ctx, method, rawURL, header)
	})
	duration := time.Since(start)

	if err != nil {
		metrics.RecordUpstreamRequest(caller, 0, duration)
		logger.Warn().Err(err).
			Str("caller", caller).
			Str("url", logging.RedactURL(rawURL)).
			Dur("duration", duration).
			Msg("Upstream request failed")
		return nil, err
	}

	metrics.RecordUpstreamRequest(caller, resp.StatusCode, duration)
	logger.Debug().
		Str("caller", caller).
		Str("url", logging.RedactURL(rawURL)).
		Int("status", resp.StatusCode).
		Int("bytes", len(resp.Body)).
		Dur("duration", duration).
		Msg("Upstream request completed")
	return resp, nil
}

// Get is Fetch with method GET and no extra headers.
func (f *Fetcher) Get(ctx context.Context, caller, rawURL string) (*Response, error) {
	return f.Fetch(ctx, caller, http.MethodGet, rawURL, nil)
}

func (f *Fetcher) wait(ctx context.Context) error {
	start := time.Now()
	err := f.limiter.Wait(ctx)
	metrics.UpstreamRateLimitWait.Observe(time.Since(start).Seconds())
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	// Wait fails early when the deadline would pass before a token is available.
	return fmt.Errorf("%w: %w", ErrRateLimited, err)
}

func (f *Fetcher) do(ctx context.Context, method, rawURL string, header http.Header) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrTransport, err)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); errors.Is(ctxErr, context.Canceled) {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}
	if int64(len(body)) > f.maxBody {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, f.maxBody)
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// IsBreakerRejection reports whether err came from an open or saturated breaker.
func IsBreakerRejection(err error) bool {
	return errors.Is(err, ErrCircuitOpen) ||
		errors.Is(err, gobreaker.ErrOpenState) ||
		errors.Is(err, gobreaker.ErrTooManyRequests)
}
