// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

// Package uploads stores video reports submitted by field users and serves them back.
//
// Files are written under a single directory with timestamp-addressed names
// (<unix millis>_<sanitized name>). Reads go through an os.Root so a crafted
// name cannot escape the upload directory.
package uploads

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/tomtom215/trafficwatch/internal/logging"
	"github.com/tomtom215/trafficwatch/internal/metrics"
)

// Errors returned by Store.
var (
	ErrTooLarge        = errors.New("upload exceeds maximum size")
	ErrUnsupportedType = errors.New("unsupported content type")
	ErrInvalidName     = errors.New("invalid file name")
	ErrNotFound        = errors.New("upload not found")
	ErrEmpty           = errors.New("upload is empty")
)

// Upload metric results.
const (
	resultStored   = "stored"
	resultRejected = "rejected"
	resultFailed   = "failed"
)

const (
	maxBaseNameLength = 100
	maxCollisions     = 100
	sniffLength       = 3072
)

// Stored describes a persisted upload.
type Stored struct {
	Filename    string `json:"filename"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

// Store persists uploads in a directory.
type Store struct {
	dir           string
	maxBytes      int64
	allowedTypes  []string
	publicBaseURL string
	now           func() time.Time
}

// New creates the upload directory if needed and returns a Store rooted at it.
// allowedTypes entries are media types, with "type/*" matching any subtype.
func New(dir string, maxBytes int64, allowedTypes []string, publicBaseURL string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("upload directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{
		dir:           dir,
		maxBytes:      maxBytes,
		allowedTypes:  allowedTypes,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		now:           time.Now,
	}, nil
}

// Dir returns the upload directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes r to a new file derived from filename.
//
// contentType is the client-declared type. When it is empty or generic the
// content is sniffed. The size limit is enforced while copying; a partial file
// is removed on any failure.
func (s *Store) Save(ctx context.Context, filename, contentType string, r io.Reader) (*Stored, error) {
	logger := logging.Ctx(ctx)

	base := SanitizeName(filename)
	if base == "" {
		metrics.RecordUpload(resultRejected, 0)
		return nil, ErrInvalidName
	}

	br := bufio.NewReaderSize(r, sniffLength)
	mediaType, err := s.resolveType(contentType, br)
	if err != nil {
		metrics.RecordUpload(resultRejected, 0)
		return nil, err
	}

	file, name, err := s.create(base)
	if err != nil {
		metrics.RecordUpload(resultFailed, 0)
		return nil, err
	}
	path := filepath.Join(s.dir, name)

	limit := s.maxBytes
	src := io.Reader(br)
	if limit > 0 {
		src = io.LimitReader(br, limit+1)
	}
	size, copyErr := io.Copy(file, src)
	closeErr := file.Close()

	switch {
	case copyErr != nil:
		os.Remove(path) //nolint:errcheck // Best effort cleanup on error
		metrics.RecordUpload(resultFailed, 0)
		return nil, fmt.Errorf("failed to save upload: %w", copyErr)
	case closeErr != nil:
		os.Remove(path) //nolint:errcheck // Best effort cleanup on error
		metrics.RecordUpload(resultFailed, 0)
		return nil, fmt.Errorf("failed to close upload: %w", closeErr)
	case limit > 0 && size > limit:
		os.Remove(path) //nolint:errcheck // Best effort cleanup on error
		metrics.RecordUpload(resultRejected, 0)
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, limit)
	case size == 0:
		os.Remove(path) //nolint:errcheck // Best effort cleanup on error
		metrics.RecordUpload(resultRejected, 0)
		return nil, ErrEmpty
	}

	metrics.RecordUpload(resultStored, size)
	logger.Info().
		Str("filename", name).
		Str("content_type", mediaType).
		Int64("size", size).
		Msg("Upload stored")

	return &Stored{
		Filename:    name,
		URL:         s.URL(name),
		Size:        size,
		ContentType: mediaType,
	}, nil
}

// URL returns the retrieval URL for a stored file name.
func (s *Store) URL(name string) string {
	return s.publicBaseURL + "/uploads/" + url.PathEscape(name)
}

// Open returns a stored file for reading. Names containing path separators or
// resolving outside the upload directory are rejected.
func (s *Store) Open(name string) (*os.File, fs.FileInfo, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return nil, nil, ErrInvalidName
	}

	root, err := os.OpenRoot(s.dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open upload directory: %w", err)
	}
	defer func() { _ = root.Close() }()

	f, err := root.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, ErrInvalidName
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("failed to stat upload: %w", err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, nil, ErrNotFound
	}
	return f, info, nil
}

// create opens a new timestamp-addressed file, appending a counter on collision.
func (s *Store) create(base string) (*os.File, string, error) {
	stamp := strconv.FormatInt(s.now().UnixMilli(), 10)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for i := 0; i < maxCollisions; i++ {
		name := stamp + "_" + base
		if i > 0 {
			name = fmt.Sprintf("%s_%s-%d%s", stamp, stem, i, ext)
		}
		//nolint:gosec // G304: name is sanitized and joined to the upload directory
		f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
		if err == nil {
			return f, name, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", fmt.Errorf("failed to create upload file: %w", err)
		}
	}
	return nil, "", fmt.Errorf("failed to create upload file: too many collisions for %q", base)
}

// resolveType returns the media type to record, sniffing when the declared type is
// missing or generic, and checks it against the allowed list.
func (s *Store) resolveType(declared string, br *bufio.Reader) (string, error) {
	mediaType := ""
	if declared != "" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil {
			mediaType = strings.ToLower(mt)
		}
	}
	if mediaType == "" || mediaType == "application/octet-stream" {
		head, err := br.Peek(sniffLength)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
			return "", fmt.Errorf("failed to read upload: %w", err)
		}
		mt, _, _ := mime.ParseMediaType(mimetype.Detect(head).String())
		mediaType = mt
	}

	if !TypeAllowed(mediaType, s.allowedTypes) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mediaType)
	}
	return mediaType, nil
}

// TypeAllowed reports whether mediaType matches one of the allowed patterns.
// An empty pattern list allows everything.
func TypeAllowed(mediaType string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	major, _, _ := strings.Cut(mediaType, "/")
	for _, pattern := range allowed {
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		switch {
		case pattern == "*/*" || pattern == mediaType:
			return true
		case strings.HasSuffix(pattern, "/*") && strings.TrimSuffix(pattern, "/*") == major:
			return true
		}
	}
	return false
}

// SanitizeName reduces a client file name to a safe base name.
// It returns "" when nothing usable remains.
func SanitizeName(filename string) string {
	filename = strings.ReplaceAll(filename, `\`, "/")
	base := filepath.Base(filename)

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	name := strings.TrimLeft(b.String(), "._")
	if len(name) > maxBaseNameLength {
		ext := filepath.Ext(name)
		if len(ext) > 10 {
			ext = ""
		}
		name = name[:maxBaseNameLength-len(ext)] + ext
	}
	if strings.Trim(name, "_") == "" {
		return ""
	}
	return name
}
