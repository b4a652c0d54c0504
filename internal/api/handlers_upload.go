// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/trafficwatch/internal/logging"
)

// uploadField is the multipart form field carrying the file.
const uploadField = "file"

// Upload stores a video report
//
// @Summary Upload a video report
// @Description Accepts a multipart/form-data body with a "file" field and stores it under a timestamped name
// @Tags Uploads
// @Accept mpfd
// @Produce json
// @Param file formData file true "Video file"
// @Success 201 {object} APIResponse{data=uploads.Stored} "Stored upload"
// @Failure 400 {object} APIResponse "Missing or malformed file"
// @Failure 413 {object} APIResponse "Upload too large"
// @Failure 415 {object} APIResponse "Unsupported content type"
// @Router /upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.uploads == nil {
		rw.ServiceUnavailable("Uploads are not configured")
		return
	}

	extendUploadDeadline(w, r, h.config.Uploads.Timeout)

	// Stream parts so large videos never sit in memory or a temp file twice.
	mr, err := r.MultipartReader()
	if err != nil {
		rw.BadRequest("Expected a multipart/form-data body")
		return
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			rw.BadRequest("Missing file field 'file'")
			return
		}
		if err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				writeUploadError(w, r, err)
				return
			}
			rw.BadRequest("Malformed multipart body")
			return
		}

		if part.FormName() != uploadField || part.FileName() == "" {
			_ = part.Close()
			continue
		}

		stored, err := h.uploads.Save(r.Context(), part.FileName(), part.Header.Get("Content-Type"), part)
		_ = part.Close()
		if err != nil {
			writeUploadError(w, r, err)
			return
		}
		rw.Created(stored)
		return
	}
}

// extendUploadDeadline lifts the server-wide read and write deadlines for the
// rest of this request. Writers that cannot set deadlines keep the server ones.
func extendUploadDeadline(w http.ResponseWriter, r *http.Request, timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	deadline := time.Now().Add(timeout)
	rc := http.NewResponseController(w)
	if err := rc.SetReadDeadline(deadline); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Upload read deadline not extended")
		return
	}
	if err := rc.SetWriteDeadline(deadline); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Upload write deadline not extended")
	}
}

// ServeUpload returns a stored upload.
//
// @Summary Download an upload
// @Tags Uploads
// @Produce octet-stream
// @Param filename path string true "Stored file name"
// @Success 200 {file} file "File content"
// @Failure 404 {object} APIResponse "Not found"
// @Router /uploads/{filename} [get]
func (h *Handler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	if h.uploads == nil {
		NewResponseWriter(w, r).NotFound("File not found")
		return
	}

	f, info, err := h.uploads.Open(chi.URLParam(r, "filename"))
	if err != nil {
		writeUploadError(w, r, err)
		return
	}
	defer func() { _ = f.Close() }()

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
