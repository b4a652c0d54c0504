// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

// Package datasets serves the static JSON datasets (points of interest, CCTV
// feeds, regional baselines and the insights feed) from a data directory.
//
// Files are reread on every call, so operators can replace a dataset on disk
// without restarting the server. Content is checked to be valid JSON and then
// returned verbatim.
package datasets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/goccy/go-json"

	"github.com/tomtom215/trafficwatch/internal/metrics"
)

// Dataset names served by the API.
const (
	POIs      = "pois"
	CCTV      = "cctv"
	Baselines = "baselines"
	Insights  = "insights"
)

var (
	// ErrUnknownDataset is returned for a name with no configured file.
	ErrUnknownDataset = errors.New("unknown dataset")

	// ErrDatasetMissing wraps fs.ErrNotExist for a configured file that is absent.
	ErrDatasetMissing = errors.New("dataset file missing")

	// ErrMalformedDataset is returned when the file is not valid JSON.
	ErrMalformedDataset = errors.New("dataset is not valid JSON")
)

// Reader reads datasets from a directory. It is safe for concurrent use.
type Reader struct {
	dir   string
	files map[string]string
	names []string
}

// NewReader creates a Reader over dir. files maps dataset names to file names
// relative to dir; entries with an empty file name are ignored.
func NewReader(dir string, files map[string]string) *Reader {
	r := &Reader{dir: dir, files: make(map[string]string, len(files))}
	for name, file := range files {
		if file == "" {
			continue
		}
		r.files[name] = file
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r
}

// Names lists the configured datasets in sorted order.
func (r *Reader) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Read returns the raw JSON of the named dataset.
func (r *Reader) Read(ctx context.Context, name string) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, ok := r.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
	}

	data, err := os.ReadFile(filepath.Join(r.dir, file))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			metrics.RecordDatasetRead(name, "missing")
			return nil, fmt.Errorf("%w: %s: %w", ErrDatasetMissing, name, err)
		}
		metrics.RecordDatasetRead(name, "error")
		return nil, fmt.Errorf("read dataset %s: %w", name, err)
	}

	if !json.Valid(data) {
		metrics.RecordDatasetRead(name, "malformed")
		return nil, fmt.Errorf("%w: %s", ErrMalformedDataset, name)
	}

	metrics.RecordDatasetRead(name, "ok")
	return json.RawMessage(data), nil
}

// Check stats every configured file and returns the names of those that
// cannot be read. An empty result means all datasets are present.
func (r *Reader) Check() []string {
	var missing []string
	for _, name := range r.names {
		info, err := os.Stat(filepath.Join(r.dir, r.files[name]))
		if err != nil || info.IsDir() {
			missing = append(missing, name)
		}
	}
	return missing
}
