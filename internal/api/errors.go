// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/trafficwatch/internal/logging"
	"github.com/tomtom215/trafficwatch/internal/upstream"
	"github.com/tomtom215/trafficwatch/internal/uploads"
)

// writeUpstreamError maps upstream package errors onto envelope responses.
func writeUpstreamError(w http.ResponseWriter, r *http.Request, service string, err error) {
	rw := NewResponseWriter(w, r)
	logger := logging.Ctx(r.Context())

	switch {
	case errors.Is(err, upstream.ErrInvalidTargetURL):
		rw.BadRequest("Parameter 'url' must be an absolute http or https URL")
	case errors.Is(err, upstream.ErrMissingLocation):
		rw.BadRequest("Parameters 'origin' and 'destination' are required")
	case errors.Is(err, upstream.ErrDirectionsNotConfigured):
		logger.Error().Err(err).Msg("Directions requested without a provider key")
		rw.InternalError("Server error")
	case upstream.IsBreakerRejection(err), errors.Is(err, upstream.ErrRateLimited):
		logger.Warn().Err(err).Str("service", service).Msg("Upstream call rejected")
		rw.ServiceUnavailable("External service temporarily unavailable: " + service)
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful can be written.
		logger.Debug().Err(err).Str("service", service).Msg("Upstream call canceled")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn().Err(err).Str("service", service).Msg("Upstream call timed out")
		rw.Error(http.StatusGatewayTimeout, ErrCodeExternalServiceFail, "External service timed out: "+service)
	default:
		rw.ExternalServiceError(service, err)
	}
}

// writeUploadError maps upload store errors onto envelope responses.
func writeUploadError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)

	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, uploads.ErrTooLarge), errors.As(err, &maxBytesErr):
		rw.PayloadTooLarge("Upload exceeds the maximum allowed size")
	case errors.Is(err, uploads.ErrUnsupportedType):
		rw.Error(http.StatusUnsupportedMediaType, ErrCodeUnsupportedMediaType, err.Error())
	case errors.Is(err, uploads.ErrInvalidName):
		rw.BadRequest("Invalid file name")
	case errors.Is(err, uploads.ErrEmpty):
		rw.BadRequest("Uploaded file is empty")
	case errors.Is(err, uploads.ErrNotFound):
		rw.NotFound("File not found")
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("Upload storage failed")
		rw.InternalError("Failed to store upload")
	}
}
