// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/trafficwatch/internal/estimator"
	"github.com/tomtom215/trafficwatch/internal/logging"
	"github.com/tomtom215/trafficwatch/internal/metrics"
)

// msgEstimateFault covers any estimator failure that is not a rejection.
const (
	msgEstimateFault    = "Internal server error."
	msgEstimateTooLarge = "Request body too large."
)

// EstimateError is the error body of the estimate endpoint.
type EstimateError struct {
	Error string `json:"error"`
}

// Estimate handles congestion estimation requests
//
// @Summary Estimate link flow from travel time
// @Description Inverts the BPR link-performance function: from observed and free-flow travel times and the link's capacity curve, returns flow (veh/h), vehicles on the link during the observed time and the travel time ratio
// @Tags Estimator
// @Accept json
// @Produce json
// @Param request body EstimateRequestDoc true "Observed link state"
// @Success 200 {object} estimator.Result "Estimation result"
// @Failure 400 {object} EstimateError "Invalid input"
// @Failure 413 {object} EstimateError "Body too large"
// @Failure 500 {object} EstimateError "Internal error"
// @Router /estimate [post]
func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	logger := logging.Ctx(r.Context())

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error().Interface("panic", rec).Msg("Estimator panicked")
			metrics.RecordEstimate(metrics.OutcomeFault, 0)
			writeJSON(w, http.StatusInternalServerError, EstimateError{Error: msgEstimateFault})
		}
	}()

	req, err := estimator.Decode(r.Body)
	if err != nil {
		h.writeEstimateError(w, r, err)
		return
	}

	result, err := estimator.Estimate(req)
	if err != nil {
		h.writeEstimateError(w, r, err)
		return
	}

	recordEstimate(result)
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) writeEstimateError(w http.ResponseWriter, r *http.Request, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		metrics.RecordEstimate(metrics.OutcomeInvalid, 0)
		writeJSON(w, http.StatusRequestEntityTooLarge, EstimateError{Error: msgEstimateTooLarge})
		return
	}

	var inputErr *estimator.InvalidInputError
	if errors.As(err, &inputErr) {
		metrics.RecordEstimate(metrics.OutcomeInvalid, 0)
		writeJSON(w, http.StatusBadRequest, EstimateError{Error: inputErr.Message})
		return
	}

	logging.Ctx(r.Context()).Error().Err(err).Msg("Estimation failed")
	metrics.RecordEstimate(metrics.OutcomeFault, 0)
	writeJSON(w, http.StatusInternalServerError, EstimateError{Error: msgEstimateFault})
}

func recordEstimate(result estimator.Result) {
	if result.IsFreeFlow() {
		metrics.RecordEstimate(metrics.OutcomeFreeFlow, 0)
		return
	}
	metrics.RecordEstimate(metrics.OutcomeComputed, result.FlowVehPerHour)
}

// EstimateRequestDoc documents the estimate request body.
type EstimateRequestDoc struct {
	TMin   float64 `json:"T_min" example:"60"`
	TffMin float64 `json:"Tff_min" example:"30"`
	LKm    float64 `json:"L_km" example:"5"`
	Qpc    float64 `json:"qpc" example:"1000"`
	Alpha  float64 `json:"alpha" example:"0.15"`
	Beta   float64 `json:"beta" example:"4"`
}

// RouteEstimate is the payload of the route estimate pipeline.
type RouteEstimate struct {
	TravelTimeMin float64          `json:"T_min"`
	LengthKm      float64          `json:"L_km"`
	Estimate      estimator.Result `json:"estimate"`
}

// EstimateRoute estimates flow on a live route
//
// @Summary Estimate flow on a live route
// @Description Looks up directions between origin and destination and feeds the observed travel time and length into the estimator
// @Tags Estimator
// @Produce json
// @Param origin query string true "Origin"
// @Param destination query string true "Destination"
// @Param tff_min query number true "Free-flow travel time in minutes"
// @Param qpc query number true "Practical capacity in veh/h"
// @Param alpha query number true "BPR alpha"
// @Param beta query number true "BPR beta"
// @Success 200 {object} APIResponse{data=RouteEstimate} "Route estimate"
// @Failure 400 {object} APIResponse "Invalid parameters"
// @Failure 502 {object} APIResponse "Directions provider failure"
// @Router /estimate/route [get]
func (h *Handler) EstimateRoute(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.directions == nil {
		rw.InternalError("Server error")
		return
	}

	params, err := parseFloatParams(r, "tff_min", "qpc", "alpha", "beta")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	q := r.URL.Query()
	req := RouteEstimateRequest{
		DirectionsRequest: DirectionsRequest{Origin: q.Get("origin"), Destination: q.Get("destination")},
		FreeFlowMin:       params["tff_min"],
		Qpc:               params["qpc"],
		Alpha:             params["alpha"],
		Beta:              params["beta"],
	}
	if !validateRequest(w, r, &req) {
		return
	}

	route, err := h.directions.Lookup(r.Context(), req.Origin, req.Destination)
	if err != nil {
		writeUpstreamError(w, r, "directions", err)
		return
	}

	result, err := estimator.Estimate(estimator.Request{
		ObservedTravelTimeMin:  route.TravelTimeMin,
		FreeFlowTravelTimeMin:  req.FreeFlowMin,
		LinkLengthKm:           route.LengthKm,
		CapacityFlowVehPerHour: req.Qpc,
		Alpha:                  req.Alpha,
		Beta:                   req.Beta,
	})
	if err != nil {
		var inputErr *estimator.InvalidInputError
		if errors.As(err, &inputErr) {
			metrics.RecordEstimate(metrics.OutcomeInvalid, 0)
			rw.BadRequest(inputErr.Message)
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("Route estimation failed")
		metrics.RecordEstimate(metrics.OutcomeFault, 0)
		rw.InternalError(msgEstimateFault)
		return
	}

	recordEstimate(result)
	rw.Success(RouteEstimate{
		TravelTimeMin: route.TravelTimeMin,
		LengthKm:      route.LengthKm,
		Estimate:      result,
	})
}
