// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

package api

import (
	"net/http"

	"github.com/tomtom215/trafficwatch/internal/logging"
)

// Proxy forwards a GET request to an arbitrary URL
//
// @Summary Generic URL proxy
// @Description Fetches the given absolute http(s) URL and returns the upstream status, content type and body unmodified
// @Tags Upstream
// @Produce */*
// @Param url query string true "Absolute http or https URL"
// @Success 200 {string} string "Upstream body"
// @Failure 400 {object} APIResponse "Missing or invalid url"
// @Failure 502 {object} APIResponse "Upstream unreachable"
// @Failure 503 {object} APIResponse "Upstream circuit open"
// @Router /proxy [get]
func (h *Handler) Proxy(w http.ResponseWriter, r *http.Request) {
	if h.proxy == nil {
		NewResponseWriter(w, r).ServiceUnavailable("Proxy is not configured")
		return
	}

	req := ProxyRequest{URL: r.URL.Query().Get("url")}
	if !validateRequest(w, r, &req) {
		return
	}

	resp, err := h.proxy.Forward(r.Context(), req.URL)
	if err != nil {
		writeUpstreamError(w, r, "proxy", err)
		return
	}

	if resp.ContentType != "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := w.Write(resp.Body); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write proxied body")
	}
}

// Directions looks up live directions between two places
//
// @Summary Directions passthrough
// @Description Queries the directions provider and returns the first leg's travel time in minutes, length in km and the provider reply
// @Tags Upstream
// @Produce json
// @Param origin query string true "Origin address or lat,lng"
// @Param destination query string true "Destination address or lat,lng"
// @Success 200 {object} upstream.DirectionsResult "Travel time and length"
// @Failure 400 {object} APIResponse "Missing parameters"
// @Failure 500 {object} APIResponse "Provider not configured"
// @Failure 502 {object} APIResponse "No route or provider failure"
// @Router /directions [get]
func (h *Handler) Directions(w http.ResponseWriter, r *http.Request) {
	if h.directions == nil {
		NewResponseWriter(w, r).InternalError("Server error")
		return
	}

	q := r.URL.Query()
	req := DirectionsRequest{Origin: q.Get("origin"), Destination: q.Get("destination")}
	if !validateRequest(w, r, &req) {
		return
	}

	result, err := h.directions.Lookup(r.Context(), req.Origin, req.Destination)
	if err != nil {
		writeUpstreamError(w, r, "directions", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
