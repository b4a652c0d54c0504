// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

// Package estimator recovers link flow and vehicle counts from observed travel times.
//
// The Bureau of Public Roads (BPR) link-performance function relates travel time on a
// road segment to its flow-to-capacity ratio:
//
//	T = Tff * (1 + alpha * (q/c)^beta)
//
// Estimate applies the algebraic inverse of that curve. Given an observed travel time T
// and the free-flow time Tff it solves for the flow q:
//
//	q = c * ((T/Tff - 1) / alpha)^(1/beta)
//
// and derives the number of vehicles present on the link as q multiplied by the observed
// travel time in hours.
//
// # Usage
//
//	req, err := estimator.Decode(r.Body)
//	if err != nil {
//	    // always an *InvalidInputError
//	}
//	res, err := estimator.Estimate(req)
//
// # Errors
//
// The package has a single error kind, InvalidInputError, matched by ErrInvalidInput.
// It is returned for missing, non-numeric, non-finite or non-positive fields and for a
// negative intermediate base value. A travel time at or below free flow is not an error:
// it produces a zero-flow Result carrying a note.
//
// # Thread Safety
//
// Everything in this package is a pure function with no shared state.
package estimator
