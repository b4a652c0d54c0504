// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

package upstream

import (
	"context"
	"errors"

	"github.com/tomtom215/trafficwatch/internal/validation"
)

// ErrInvalidTargetURL rejects proxy targets that are not absolute http(s) URLs.
var ErrInvalidTargetURL = errors.New("url must be an absolute http or https URL")

const proxyCaller = "proxy"

// Proxy fetches arbitrary caller-supplied URLs and returns the reply unmodified.
type Proxy struct {
	fetcher *Fetcher
}

// NewProxy creates a Proxy sharing f.
func NewProxy(f *Fetcher) *Proxy {
	return &Proxy{fetcher: f}
}

// Forward fetches rawURL with GET. The upstream status, content type and body
// are returned as-is, including non-2xx replies.
func (p *Proxy) Forward(ctx context.Context, rawURL string) (*Response, error) {
	if !validation.IsHTTPURL(rawURL) {
		return nil, ErrInvalidTargetURL
	}
	return p.fetcher.Get(ctx, proxyCaller, rawURL)
}
