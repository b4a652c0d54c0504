// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/trafficwatch/internal/datasets"
	"github.com/tomtom215/trafficwatch/internal/logging"
)

// POIs serves the points-of-interest dataset
//
// @Summary Points of interest
// @Description Returns the points-of-interest dataset verbatim
// @Tags Datasets
// @Produce json
// @Success 200 {object} object "Dataset JSON"
// @Failure 404 {object} APIResponse "Dataset not present"
// @Failure 500 {object} APIResponse "Dataset is malformed"
// @Router /pois [get]
func (h *Handler) POIs(w http.ResponseWriter, r *http.Request) {
	h.serveDataset(w, r, datasets.POIs)
}

// CCTV serves the CCTV feed catalogue
//
// @Summary CCTV feeds
// @Description Returns the CCTV feed dataset verbatim
// @Tags Datasets
// @Produce json
// @Success 200 {object} object "Dataset JSON"
// @Failure 404 {object} APIResponse "Dataset not present"
// @Router /cctv [get]
func (h *Handler) CCTV(w http.ResponseWriter, r *http.Request) {
	h.serveDataset(w, r, datasets.CCTV)
}

// Baselines serves regional traffic baselines
//
// @Summary Regional baselines
// @Description Returns the regional baseline dataset verbatim
// @Tags Datasets
// @Produce json
// @Success 200 {object} object "Dataset JSON"
// @Failure 404 {object} APIResponse "Dataset not present"
// @Router /baselines [get]
func (h *Handler) Baselines(w http.ResponseWriter, r *http.Request) {
	h.serveDataset(w, r, datasets.Baselines)
}

// Insights serves the canned insights feed
//
// @Summary Traffic insights
// @Description Returns the canned insights feed verbatim
// @Tags Datasets
// @Produce json
// @Success 200 {object} object "Dataset JSON"
// @Failure 404 {object} APIResponse "Dataset not present"
// @Router /insights [get]
func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	h.serveDataset(w, r, datasets.Insights)
}

func (h *Handler) serveDataset(w http.ResponseWriter, r *http.Request, name string) {
	if h.datasets == nil {
		NewResponseWriter(w, r).ServiceUnavailable("Datasets are not configured")
		return
	}

	body, err := h.datasets.Read(r.Context(), name)
	switch {
	case err == nil:
		writeRawJSON(w, http.StatusOK, body)
	case errors.Is(err, datasets.ErrUnknownDataset), errors.Is(err, datasets.ErrDatasetMissing):
		logging.Ctx(r.Context()).Warn().Err(err).Str("dataset", name).Msg("Dataset unavailable")
		NewResponseWriter(w, r).NotFound("Dataset not found: " + name)
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("dataset", name).Msg("Failed to read dataset")
		NewResponseWriter(w, r).InternalError("Failed to read dataset")
	}
}
