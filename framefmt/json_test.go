// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package framefmt

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestJSONShapes(t *testing.T) {
	type want struct {
		frames  []float64
		dropped int
		process string
	}
	check := func(name, doc string, w want) {
		t.Helper()
		c, err := ParseJSON("test.json", []byte(doc))
		if err != nil {
			t.Errorf("%s: unexpected error: %s", name, err)
			return
		}
		if diff := cmp.Diff(w.frames, c.FrameTimes()); diff != "" {
			t.Errorf("%s: frame times mismatch (-want +got):\n%s", name, diff)
		}
		if c.Dropped != w.dropped {
			t.Errorf("%s: got %d dropped, want %d", name, c.Dropped, w.dropped)
		}
		if c.Process != w.process {
			t.Errorf("%s: got process %q, want %q", name, c.Process, w.process)
		}
	}

	check("run objects", `{
		"Info": {"ProcessName": "game.exe"},
		"Runs": [
			{"CaptureData": {"MsBetweenPresents": [10, 11], "Dropped": [false, true]}},
			{"SensorData": {}},
			{"CaptureData": {"MsBetweenPresents": [12], "Dropped": [1]}}
		]}`,
		want{[]float64{10, 11, 12}, 2, "game.exe"})

	check("run arrays", `{"Runs": [[10, 11], "junk", [12]], "ProcessName": "top.exe"}`,
		want{[]float64{10, 11, 12}, 0, "top.exe"})

	// Run objects win over run arrays when both appear.
	check("mixed runs", `{"Runs": [[1, 2], {"CaptureData": {"MsBetweenPresents": [30]}}]}`,
		want{[]float64{30}, 0, UnknownProcess})

	check("capture data", `{"CaptureData": {"MsBetweenPresents": [5, 6], "Dropped": [true, 0, 1, 2, "true"]}}`,
		want{[]float64{5, 6}, 2, UnknownProcess})

	check("frame times", `{"MsBetweenPresents": [7, 8, 9], "Dropped": [true]}`,
		want{[]float64{7, 8, 9}, 0, UnknownProcess})

	// Runs without any recognizable run fall through to later shapes.
	check("empty runs", `{"Runs": [], "MsBetweenPresents": [4]}`,
		want{[]float64{4}, 0, UnknownProcess})

	// Info without a process name falls back to the top level.
	check("process fallback", `{"Info": {}, "ProcessName": "fallback.exe", "MsBetweenPresents": [4]}`,
		want{[]float64{4}, 0, "fallback.exe"})

	check("case-insensitive keys", `{"runs": [{"capturedata": {"msBetweenPresents": [3]}}]}`,
		want{[]float64{3}, 0, UnknownProcess})
}

func TestJSONFiltersFrames(t *testing.T) {
	c, err := ParseJSON("test.json", []byte(`{"MsBetweenPresents": [10, 0, -1, "12", null, 11]}`))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{10, 11}, c.FrameTimes()); diff != "" {
		t.Errorf("frame times mismatch (-want +got):\n%s", diff)
	}
	if c.Skipped != 4 {
		t.Errorf("got %d skipped, want 4", c.Skipped)
	}
}

func TestJSONDroppedSamples(t *testing.T) {
	// Dropped flags stay aligned with the frame they belong to even
	// when earlier frames are filtered out.
	c, err := ParseJSON("test.json", []byte(`{"CaptureData": {"MsBetweenPresents": [0, 10, 11], "Dropped": [true, false, true]}}`))
	if err != nil {
		t.Fatal(err)
	}
	want := []Sample{
		{FrameTime: 10, Timestamp: 0},
		{FrameTime: 11, Timestamp: 0.010, Dropped: true},
	}
	if diff := cmp.Diff(want, c.Samples, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}
	if c.Dropped != 2 {
		t.Errorf("got %d dropped, want 2", c.Dropped)
	}
}

func TestJSONTimestamps(t *testing.T) {
	c, err := ParseJSON("test.json", []byte(`{"MsBetweenPresents": [10, 10, 10, 10, 50]}`))
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 0.01, 0.02, 0.03, 0.04}
	if diff := cmp.Diff(want, c.Timestamps(), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("timestamps mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONCaseFoldedKeys(t *testing.T) {
	// Neither key matches "Runs" exactly. The lexically smallest
	// one must win every time, whatever the map order.
	data := []byte(`{"runs": [[1]], "RUNS": [[2]], "rUns": [[3]]}`)
	for i := 0; i < 100; i++ {
		c, err := ParseJSON("test.json", data)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]float64{2}, c.FrameTimes()); diff != "" {
			t.Fatalf("parse %d: frame times mismatch (-want +got):\n%s", i, diff)
		}
	}

	// An exact match beats any case-insensitive one.
	c, err := ParseJSON("test.json", []byte(`{"RUNS": [[2]], "Runs": [[5]]}`))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{5}, c.FrameTimes()); diff != "" {
		t.Errorf("frame times mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONErrors(t *testing.T) {
	check := func(doc string, want Kind) {
		t.Helper()
		c, err := ParseJSON("bad.json", []byte(doc))
		if err == nil {
			t.Errorf("%s: got %+v, want %s error", doc, c, want)
			return
		}
		if got := KindOf(err); got != want {
			t.Errorf("%s: got %s error (%s), want %s", doc, got, err, want)
		}
	}
	check(``, SyntaxError)
	check(`{"MsBetweenPresents": [1, 2`, SyntaxError)
	check(`[1, 2, 3]`, UnrecognizedSchema)
	check(`{}`, UnrecognizedSchema)
	check(`{"Runs": [{"Other": 1}]}`, UnrecognizedSchema)
	check(`{"MsBetweenPresents": 16.6}`, UnrecognizedSchema)
	check(`{"MsBetweenPresents": []}`, EmptyCapture)
	check(`{"Runs": [{"CaptureData": {"MsBetweenPresents": [0, -1]}}]}`, EmptyCapture)
	check(`{"Runs": [{"CaptureData": {}}]}`, EmptyCapture)
}

func TestJSONSyntaxErrorUnwraps(t *testing.T) {
	_, err := ParseJSON("bad.json", []byte(`{`))
	var e *Error
	if !errors.As(err, &e) || e.Err == nil {
		t.Fatalf("got %#v, want *Error wrapping the decoder error", err)
	}
	if errors.Unwrap(err) != e.Err {
		t.Errorf("Unwrap did not return the decoder error")
	}
}
