// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

package api

import (
	"context"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/trafficwatch/internal/config"
	"github.com/tomtom215/trafficwatch/internal/upstream"
	"github.com/tomtom215/trafficwatch/internal/uploads"
)

// Version is reported by the health endpoint. Overridden at build time via -ldflags.
var Version = "dev"

// DatasetReader serves static JSON datasets.
type DatasetReader interface {
	Read(ctx context.Context, name string) (json.RawMessage, error)
	Names() []string
	Check() []string
}

// URLProxy forwards arbitrary URLs.
type URLProxy interface {
	Forward(ctx context.Context, rawURL string) (*upstream.Response, error)
}

// DirectionsLookup resolves live travel time between two places.
type DirectionsLookup interface {
	Lookup(ctx context.Context, origin, destination string) (*upstream.DirectionsResult, error)
	Configured() bool
}

// UploadStore persists and serves uploaded files.
type UploadStore interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (*uploads.Stored, error)
	Open(name string) (*os.File, fs.FileInfo, error)
}

// BreakerReporter exposes the outbound circuit breaker state.
type BreakerReporter interface {
	BreakerState() string
}

// Dependencies groups the collaborators of Handler. Nil members disable the
// routes that need them.
type Dependencies struct {
	Datasets   DatasetReader
	Proxy      URLProxy
	Directions DirectionsLookup
	Uploads    UploadStore
	Upstream   BreakerReporter
}

// Handler holds the HTTP handlers and their collaborators.
type Handler struct {
	config     *config.Config
	datasets   DatasetReader
	proxy      URLProxy
	directions DirectionsLookup
	uploads    UploadStore
	upstream   BreakerReporter
	startTime  time.Time

	routes []RouteInfo
}

// NewHandler creates a Handler.
func NewHandler(cfg *config.Config, deps Dependencies) *Handler {
	return &Handler{
		config:     cfg,
		datasets:   deps.Datasets,
		proxy:      deps.Proxy,
		directions: deps.Directions,
		uploads:    deps.Uploads,
		upstream:   deps.Upstream,
		startTime:  time.Now(),
	}
}
