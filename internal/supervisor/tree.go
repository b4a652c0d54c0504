// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

package supervisor

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"
)

// TreeConfig carries the restart policy shared by every supervisor in the tree.
// FailureDecay is in seconds, as suture expects.
type TreeConfig struct {
	FailureThreshold float64
	FailureDecay     float64
	FailureBackoff   time.Duration
	ShutdownTimeout  time.Duration
}

// DefaultTreeConfig mirrors suture's built-in defaults.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		FailureThreshold: 5,
		FailureDecay:     30,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

func (c TreeConfig) sutureSpec() suture.Spec {
	return suture.Spec{
		FailureThreshold: c.FailureThreshold,
		FailureDecay:     c.FailureDecay,
		FailureBackoff:   c.FailureBackoff,
		Timeout:          c.ShutdownTimeout,
	}
}

// SupervisorTree is the process hierarchy:
//
//	trafficwatch
//	├── data-layer  (dataset monitor)
//	└── api-layer   (HTTP server)
//
// Each layer restarts its own children, so a crashing dataset monitor never
// takes the listener down with it.
type SupervisorTree struct {
	root   *suture.Supervisor
	data   *suture.Supervisor
	api    *suture.Supervisor
	config TreeConfig
}

// NewSupervisorTree builds the tree. Zero fields in config take defaults.
// Supervisor events are reported through logger.
func NewSupervisorTree(logger *slog.Logger, config TreeConfig) (*SupervisorTree, error) {
	d := DefaultTreeConfig()
	config.FailureThreshold = cmp.Or(config.FailureThreshold, d.FailureThreshold)
	config.FailureDecay = cmp.Or(config.FailureDecay, d.FailureDecay)
	config.FailureBackoff = cmp.Or(config.FailureBackoff, d.FailureBackoff)
	config.ShutdownTimeout = cmp.Or(config.ShutdownTimeout, d.ShutdownTimeout)

	events := &sutureslog.Handler{Logger: logger}
	rootSpec := config.sutureSpec()
	rootSpec.EventHook = events.MustHook()

	tree := &SupervisorTree{
		root:   suture.New("trafficwatch", rootSpec),
		data:   suture.New("data-layer", config.sutureSpec()),
		api:    suture.New("api-layer", config.sutureSpec()),
		config: config,
	}
	tree.root.Add(tree.data)
	tree.root.Add(tree.api)
	return tree, nil
}

// AddDataService registers a service that watches local data.
func (t *SupervisorTree) AddDataService(svc suture.Service) suture.ServiceToken {
	return t.data.Add(svc)
}

// AddAPIService registers a request-serving service.
func (t *SupervisorTree) AddAPIService(svc suture.Service) suture.ServiceToken {
	return t.api.Add(svc)
}

// Run serves the tree until ctx is canceled or the root supervisor gives up,
// then reports services that missed the shutdown timeout. The root delivers
// exactly one exit value and never closes its channel, so Run receives once.
func (t *SupervisorTree) Run(ctx context.Context) (suture.UnstoppedServiceReport, error) {
	err := <-t.root.ServeBackground(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	unstopped, reportErr := t.root.UnstoppedServiceReport()
	if err == nil {
		err = reportErr
	}
	return unstopped, err
}
