// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/trafficwatch/internal/config"
)

// Directions errors.
var (
	ErrDirectionsNotConfigured = errors.New("directions provider is not configured")
	ErrNoRoute                 = errors.New("directions provider returned no route")
	ErrMissingLocation         = errors.New("origin and destination are required")
)

const (
	directionsCaller = "directions"
	directionsPath   = "/maps/api/directions/json"
)

// DirectionsResult carries the travel time and length of the first route leg
// together with the provider reply.
type DirectionsResult struct {
	TravelTimeMin float64         `json:"T_min"`
	LengthKm      float64         `json:"L_km"`
	Raw           json.RawMessage `json:"raw"`
}

// Directions queries a Google Directions compatible provider.
type Directions struct {
	fetcher *Fetcher
	baseURL string
	apiKey  string
}

// NewDirections creates a Directions client sharing f.
func NewDirections(f *Fetcher, cfg *config.DirectionsConfig) *Directions {
	return &Directions{
		fetcher: f,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
	}
}

// Configured reports whether an API key is present.
func (d *Directions) Configured() bool {
	return d.apiKey != ""
}

type directionsValue struct {
	Value float64 `json:"value"`
}

type directionsReply struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Legs []struct {
			Duration          *directionsValue `json:"duration"`
			DurationInTraffic *directionsValue `json:"duration_in_traffic"`
			Distance          *directionsValue `json:"distance"`
		} `json:"legs"`
	} `json:"routes"`
}

// Lookup fetches live directions between origin and destination.
// Traffic-aware duration is preferred over the static duration when present.
func (d *Directions) Lookup(ctx context.Context, origin, destination string) (*DirectionsResult, error) {
	if !d.Configured() {
		return nil, ErrDirectionsNotConfigured
	}
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return nil, ErrMissingLocation
	}

	resp, err := d.fetcher.Get(ctx, directionsCaller, d.requestURL(origin, destination))
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: HTTP %d", ErrNoRoute, resp.StatusCode)
	}

	var reply directionsReply
	if err := json.Unmarshal(resp.Body, &reply); err != nil {
		return nil, fmt.Errorf("%w: decode reply: %w", ErrNoRoute, err)
	}
	if reply.Status != "OK" {
		if reply.ErrorMessage != "" {
			return nil, fmt.Errorf("%w: status %s: %s", ErrNoRoute, reply.Status, reply.ErrorMessage)
		}
		return nil, fmt.Errorf("%w: status %s", ErrNoRoute, reply.Status)
	}
	if len(reply.Routes) == 0 || len(reply.Routes[0].Legs) == 0 {
		return nil, fmt.Errorf("%w: empty routes", ErrNoRoute)
	}

	leg := reply.Routes[0].Legs[0]
	duration := leg.DurationInTraffic
	if duration == nil || duration.Value <= 0 {
		duration = leg.Duration
	}
	if duration == nil || leg.Distance == nil {
		return nil, fmt.Errorf("%w: leg without duration or distance", ErrNoRoute)
	}

	return &DirectionsResult{
		TravelTimeMin: duration.Value / 60,
		LengthKm:      leg.Distance.Value / 1000,
		Raw:           json.RawMessage(resp.Body),
	}, nil
}

func (d *Directions) requestURL(origin, destination string) string {
	q := url.Values{}
	q.Set("origin", origin)
	q.Set("destination", destination)
	q.Set("departure_time", "now")
	q.Set("key", d.apiKey)
	return d.baseURL + directionsPath + "?" + q.Encode()
}
