// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/trafficwatch/internal/validation"
)

// ProxyRequest holds the query parameters of the proxy endpoint.
type ProxyRequest struct {
	URL string `json:"url" validate:"required,http_url,max=4096"`
}

// DirectionsRequest holds the query parameters of the directions endpoint.
type DirectionsRequest struct {
	Origin      string `json:"origin" validate:"required,max=512"`
	Destination string `json:"destination" validate:"required,max=512"`
}

// RouteEstimateRequest holds the query parameters of the route estimate pipeline.
// Observed travel time and link length come from the directions provider.
type RouteEstimateRequest struct {
	DirectionsRequest
	FreeFlowMin float64 `json:"tff_min" validate:"gt=0"`
	Qpc         float64 `json:"qpc" validate:"gt=0"`
	Alpha       float64 `json:"alpha" validate:"gt=0"`
	Beta        float64 `json:"beta" validate:"gt=0"`
}

// parseFloatParams reads the named query parameters as floats. A missing
// parameter reads as zero and is left to validation.
func parseFloatParams(r *http.Request, names ...string) (map[string]float64, error) {
	values := make(map[string]float64, len(names))
	q := r.URL.Query()
	for _, name := range names {
		raw := strings.TrimSpace(q.Get(name))
		if raw == "" {
			values[name] = 0
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("parameter '%s' must be a number", name)
		}
		values[name] = v
	}
	return values, nil
}

// validateRequest validates a struct using go-playground/validator and writes the
// envelope error on failure. It reports whether the request is valid.
func validateRequest(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return true
	}
	apiErr := verr.ToAPIError()
	NewResponseWriter(w, r).ValidationError(apiErr.Message, apiErr.Details)
	return false
}
