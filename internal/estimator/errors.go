// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

package estimator

import (
	"errors"
	"fmt"
)

// ErrInvalidInput matches every InvalidInputError via errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError rejects a request. Message is safe to show to API clients.
// Err, when set, is the read failure behind the rejection.
type InvalidInputError struct {
	Message string
	Err     error
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

// Unwrap returns the read failure, if any.
func (e *InvalidInputError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalidInput.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalidInput(msg string) error {
	return &InvalidInputError{Message: msg}
}

// ComputationError reports a result that cannot be represented: a flow that is not
// finite once rounded, or a vehicle count beyond int64. It is an internal fault,
// not a rejection.
type ComputationError struct {
	Flow     float64
	Vehicles float64
}

func (e *ComputationError) Error() string {
	if e.Vehicles != 0 {
		return fmt.Sprintf("estimator: vehicle count %v overflows int64 (flow %v)", e.Vehicles, e.Flow)
	}
	return fmt.Sprintf("estimator: flow is not representable (%v)", e.Flow)
}
