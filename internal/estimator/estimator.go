// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

package estimator

import (
	"math"
)

// Messages carried by InvalidInputError.
const (
	MsgNonPositiveFields = "All fields must be positive numbers."
	MsgInvalidBase       = "Invalid base value, check parameters."
)

// NoteFreeFlow is attached to results where the observed time does not exceed free flow.
const NoteFreeFlow = "Free flow or better than free flow."

// Request is the validated input of a single estimation.
// Every field must be finite and strictly greater than zero.
type Request struct {
	ObservedTravelTimeMin  float64 // T_min, minutes
	FreeFlowTravelTimeMin  float64 // Tff_min, minutes
	LinkLengthKm           float64 // L_km, carried but not used by the output formula
	CapacityFlowVehPerHour float64 // qpc, practical capacity of the link
	Alpha                  float64 // BPR congestion sensitivity
	Beta                   float64 // BPR exponent
}

// Result is the outcome of a successful estimation.
//
// TravelTimeRatio is nil in the free-flow case, where Note is set instead.
type Result struct {
	FlowVehPerHour  float64  `json:"q_veh_per_h"`
	VehicleCount    int64    `json:"N_veh"`
	TravelTimeRatio *float64 `json:"Tratio,omitempty"`
	Note            string   `json:"note,omitempty"`
}

// IsFreeFlow reports whether the result is the degenerate zero-flow case.
func (r Result) IsFreeFlow() bool {
	return r.Note == NoteFreeFlow
}

// Estimate inverts the BPR travel-time function for the given request.
//
// Validation runs first and short-circuits. When the observed time is at or below the
// free-flow time the zero-flow result is returned without further computation.
func Estimate(req Request) (Result, error) {
	if !req.valid() {
		return Result{}, invalidInput(MsgNonPositiveFields)
	}

	observedHours := req.ObservedTravelTimeMin / 60
	freeFlowHours := req.FreeFlowTravelTimeMin / 60

	if req.ObservedTravelTimeMin <= req.FreeFlowTravelTimeMin {
		return Result{Note: NoteFreeFlow}, nil
	}

	ratio := observedHours / freeFlowHours
	base := (ratio - 1) / req.Alpha
	// Unreachable with alpha > 0 and ratio > 1; kept as a guard on the power below.
	if base < 0 {
		return Result{}, invalidInput(MsgInvalidBase)
	}

	flow := req.CapacityFlowVehPerHour * math.Pow(base, 1/req.Beta)
	roundedFlow := roundTo(flow, 2)
	if !isFinite(roundedFlow) {
		return Result{}, &ComputationError{Flow: flow}
	}
	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
	vehicles := math.RoundToEven(flow * observedHours)
	if !isFinite(vehicles) || vehicles >= math.MaxInt64 {
		return Result{}, &ComputationError{Flow: flow, Vehicles: vehicles}
	}
	roundedRatio := roundTo(ratio, 3)

	return Result{
		FlowVehPerHour:  roundedFlow,
		VehicleCount:    int64(vehicles),
		TravelTimeRatio: &roundedRatio,
	}, nil
}

// travelTime evaluates the forward BPR function in minutes for a flow on a link.
func travelTime(freeFlowMin, flowVehPerHour, capacityVehPerHour, alpha, beta float64) float64 {
	return freeFlowMin * (1 + alpha*math.Pow(flowVehPerHour/capacityVehPerHour, beta))
}

func (req Request) valid() bool {
	for _, v := range [...]float64{
		req.ObservedTravelTimeMin,
		req.FreeFlowTravelTimeMin,
		req.LinkLengthKm,
		req.CapacityFlowVehPerHour,
		req.Alpha,
		req.Beta,
	} {
		if !positiveFinite(v) {
			return false
		}
	}
	return true
}

func positiveFinite(v float64) bool {
	return isFinite(v) && v > 0
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// roundTo rounds half to even at the given number of decimal places.
func roundTo(v float64, places int) float64 {
	scale := math.Pow10(places)
	return math.RoundToEven(v*scale) / scale
}
