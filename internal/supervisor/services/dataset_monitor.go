// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

package services

import (
	"context"
	"slices"
	"time"

	"github.com/tomtom215/trafficwatch/internal/logging"
	"github.com/tomtom215/trafficwatch/internal/metrics"
)

const defaultMonitorInterval = time.Minute

// DatasetChecker reports configured datasets that are absent on disk.
type DatasetChecker interface {
	Check() []string
}

// DatasetMonitorService periodically checks the static datasets and keeps
// the trafficwatch_datasets_missing gauge current. A change in the missing
// set is logged once rather than on every tick.
type DatasetMonitorService struct {
	checker  DatasetChecker
	interval time.Duration
	last     []string
}

// NewDatasetMonitorService creates the monitor. A non-positive interval
// falls back to one minute.
func NewDatasetMonitorService(checker DatasetChecker, interval time.Duration) *DatasetMonitorService {
	if interval <= 0 {
		interval = defaultMonitorInterval
	}
	return &DatasetMonitorService{checker: checker, interval: interval}
}

// Serve implements suture.Service. The first check runs immediately.
func (m *DatasetMonitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.check()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.check()
		}
	}
}

func (m *DatasetMonitorService) check() {
	missing := m.checker.Check()
	slices.Sort(missing)
	metrics.DatasetsMissing.Set(float64(len(missing)))

	if slices.Equal(missing, m.last) {
		return
	}
	logger := logging.WithComponent("dataset-monitor")
	if len(missing) == 0 {
		logger.Info().Msg("All datasets available")
	} else {
		logger.Warn().Strs("missing", missing).Msg("Datasets missing from data directory")
	}
	m.last = missing
}

// String names the service in supervisor events.
func (m *DatasetMonitorService) String() string {
	return "dataset-monitor"
}
