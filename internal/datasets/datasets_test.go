// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

package datasets

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestReader(t *testing.T, contents map[string]string) *Reader {
	t.Helper()
	dir := t.TempDir()
	for file, body := range contents {
		if err := os.WriteFile(filepath.Join(dir, file), []byte(body), 0o600); err != nil {
			t.Fatalf("WriteFile(%s): %v", file, err)
		}
	}
	return NewReader(dir, map[string]string{
		POIs:      "pois.json",
		CCTV:      "cctv.json",
		Baselines: "baselines.json",
		Insights:  "insights.json",
	})
}

func TestReader_Read(t *testing.T) {
	t.Parallel()

	body := `[{"id":1,"name":"Central Station","lat":40.41,"lng":-3.70}]`
	r := newTestReader(t, map[string]string{"pois.json": body})

	got, err := r.Read(context.Background(), POIs)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(got) != body {
		t.Errorf("Read() = %s, want verbatim %s", got, body)
	}
}

func TestReader_RereadsOnEveryCall(t *testing.T) {
	t.Parallel()

	r := newTestReader(t, map[string]string{"cctv.json": `{"cams":[]}`})
	if _, err := r.Read(context.Background(), CCTV); err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	updated := `{"cams":[{"id":"c-1"}]}`
	if err := os.WriteFile(filepath.Join(r.dir, "cctv.json"), []byte(updated), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := r.Read(context.Background(), CCTV)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(got) != updated {
		t.Errorf("Read() = %s, want updated %s", got, updated)
	}
}

func TestReader_Errors(t *testing.T) {
	t.Parallel()

	r := newTestReader(t, map[string]string{
		"baselines.json": `{"region": "north",`,
	})

	tests := []struct {
		name    string
		dataset string
		want    error
	}{
		{"unknown dataset", "weather", ErrUnknownDataset},
		{"missing file", POIs, ErrDatasetMissing},
		{"malformed json", Baselines, ErrMalformedDataset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := r.Read(context.Background(), tt.dataset)
			if !errors.Is(err, tt.want) {
				t.Errorf("Read(%q) error = %v, want %v", tt.dataset, err, tt.want)
			}
		})
	}
}

func TestReader_MissingWrapsNotExist(t *testing.T) {
	t.Parallel()

	r := newTestReader(t, nil)
	_, err := r.Read(context.Background(), Insights)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Read() error = %v, want wrapped fs.ErrNotExist", err)
	}
}

func TestReader_CanceledContext(t *testing.T) {
	t.Parallel()

	r := newTestReader(t, map[string]string{"pois.json": `[]`})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Read(ctx, POIs); !errors.Is(err, context.Canceled) {
		t.Errorf("Read() error = %v, want context.Canceled", err)
	}
}

func TestReader_NamesAndCheck(t *testing.T) {
	t.Parallel()

	r := newTestReader(t, map[string]string{"pois.json": `[]`, "cctv.json": `[]`})

	want := []string{Baselines, CCTV, Insights, POIs}
	if got := r.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if got := r.Check(); !reflect.DeepEqual(got, []string{Baselines, Insights}) {
		t.Errorf("Check() = %v, want [baselines insights]", got)
	}
}

func TestNewReader_SkipsEmptyFileNames(t *testing.T) {
	t.Parallel()

	r := NewReader(t.TempDir(), map[string]string{POIs: "pois.json", CCTV: ""})
	if got := r.Names(); !reflect.DeepEqual(got, []string{POIs}) {
		t.Errorf("Names() = %v, want [pois]", got)
	}
}
