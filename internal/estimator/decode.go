// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

package estimator

import (
	"io"

	"github.com/goccy/go-json"

	"github.com/tomtom215/trafficwatch/internal/validation"
)

// payload mirrors the JSON body. Pointers distinguish a missing field from zero.
type payload struct {
	TMin   *float64 `json:"T_min" validate:"required,gt=0"`
	TffMin *float64 `json:"Tff_min" validate:"required,gt=0"`
	LKm    *float64 `json:"L_km" validate:"required,gt=0"`
	Qpc    *float64 `json:"qpc" validate:"required,gt=0"`
	Alpha  *float64 `json:"alpha" validate:"required,gt=0"`
	Beta   *float64 `json:"beta" validate:"required,gt=0"`
}

// Decode reads a JSON estimation body and returns the typed request.
// Every failure, including malformed JSON, is an *InvalidInputError. A read
// failure, such as *http.MaxBytesError, stays reachable through errors.As.
func Decode(r io.Reader) (Request, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Request{}, &InvalidInputError{Message: MsgNonPositiveFields, Err: err}
	}
	return DecodeBytes(data)
}

// DecodeBytes is Decode for an in-memory body.
func DecodeBytes(data []byte) (Request, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Request{}, invalidInput(MsgNonPositiveFields)
	}
	if verr := validation.ValidateStruct(&p); verr != nil {
		return Request{}, invalidInput(MsgNonPositiveFields)
	}

	req := Request{
		ObservedTravelTimeMin:  *p.TMin,
		FreeFlowTravelTimeMin:  *p.TffMin,
		LinkLengthKm:           *p.LKm,
		CapacityFlowVehPerHour: *p.Qpc,
		Alpha:                  *p.Alpha,
		Beta:                   *p.Beta,
	}
	if !req.valid() {
		return Request{}, invalidInput(MsgNonPositiveFields)
	}
	return req, nil
}
