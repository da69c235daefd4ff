// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"golang.org/x/framestat/framefmt"
)

func TestText(t *testing.T) {
	golden(t, "beforeAfter", "before=before.csv", "after=after.json")
}

func TestTextSingle(t *testing.T) {
	got := run(t, "before.csv")
	lines := strings.Split(got, "\n")
	if !strings.HasSuffix(lines[0], "before.csv") {
		t.Errorf("header %q does not name the capture", lines[0])
	}
	if strings.Contains(got, "delta") {
		t.Errorf("single capture has a delta column:\n%s", got)
	}
	if !strings.Contains(got, "avg fps") || !strings.Contains(got, "50.0") {
		t.Errorf("missing average frame rate:\n%s", got)
	}
}

func TestCSV(t *testing.T) {
	got := run(t, "-format", "csv", "before.csv", "after.json")
	recs, err := csv.NewReader(strings.NewReader(got)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records, want header and 2 rows", len(recs))
	}
	if diff := cmp.Diff(csvHeader, recs[0]); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	col := make(map[string]int)
	for i, name := range recs[0] {
		col[name] = i
	}
	for i, want := range []struct{ label, fps string }{{"before.csv", "50"}, {"after.json", "100"}} {
		row := recs[i+1]
		if row[col["label"]] != want.label || row[col["avg_fps"]] != want.fps || row[col["frame_count"]] != "4" {
			t.Errorf("row %d = %v", i, row)
		}
	}
}

func TestJSON(t *testing.T) {
	type record struct {
		Label      string    `json:"label"`
		FileName   string    `json:"file_name"`
		FrameCount int       `json:"frame_count"`
		AvgFPS     float64   `json:"avg_fps"`
		FrameTimes []float64 `json:"frametimes"`
	}
	decode := func(out string) []record {
		t.Helper()
		var recs []record
		if err := json.Unmarshal([]byte(out), &recs); err != nil {
			t.Fatal(err)
		}
		return recs
	}

	out := run(t, "-format", "json", "a=after.json")
	if strings.Contains(out, `"frametimes"`) {
		t.Errorf("series present without -series:\n%s", out)
	}
	want := []record{{Label: "a", FileName: "after.json", FrameCount: 4, AvgFPS: 100}}
	if diff := cmp.Diff(want, decode(out)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	out = run(t, "-format", "json", "-series", "a=after.json")
	want[0].FrameTimes = []float64{10, 10, 10, 10}
	if diff := cmp.Diff(want, decode(out)); diff != "" {
		t.Errorf("with -series mismatch (-want +got):\n%s", diff)
	}
}

func TestErrors(t *testing.T) {
	for _, test := range []struct {
		args []string
		kind framefmt.Kind
	}{
		{[]string{"before.csv", "capture.txt"}, framefmt.UnsupportedFormat},
		{[]string{"empty.csv"}, framefmt.EmptyCapture},
		{[]string{"missing.json"}, framefmt.IOError},
	} {
		var out, outErr bytes.Buffer
		err := inTestdata(t, func() error { return framestat(&out, &outErr, test.args) })
		if got := framefmt.KindOf(err); got != test.kind {
			t.Errorf("%v: got error %v (%v), want %v", test.args, err, got, test.kind)
		}
		if out.Len() != 0 {
			t.Errorf("%v: unexpected output on error:\n%s", test.args, out.String())
		}
	}
}

func TestUsage(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"-format", "xml", "before.csv"},
		{"-bogus"},
		{"-scan", "dir", "before.csv"},
		{"-series", "before.csv"},
		{"-format", "csv", "-series", "before.csv"},
	} {
		var out, outErr bytes.Buffer
		if err := framestat(&out, &outErr, args); err != errUsage {
			t.Errorf("%v: got %v, want usage error", args, err)
		}
		if !strings.Contains(outErr.String(), "usage: framestat") {
			t.Errorf("%v: usage not printed:\n%s", args, outErr.String())
		}
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"CX_1.json", "CX_2.json", "CX_3.json", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0666); err != nil {
			t.Fatal(err)
		}
	}
	var out, outErr bytes.Buffer
	if err := framestat(&out, &outErr, []string{"-scan", dir, "-n", "2"}); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "CX_3.json") + "\n" + filepath.Join(dir, "CX_2.json") + "\n"
	if got := out.String(); got != want {
		t.Errorf("got:\n%swant:\n%s", got, want)
	}

	t.Setenv("APPDATA", "")
	out.Reset()
	if err := framestat(&out, &outErr, []string{"-scan", "default"}); err == nil {
		t.Errorf("-scan default succeeded with APPDATA unset")
	}
}

func inTestdata(t *testing.T, f func() error) error {
	t.Helper()
	// TODO: If framefmt.Files supported fs.FS, we wouldn't need this.
	if err := os.Chdir("testdata"); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir("..")
	return f()
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var got, gotErr bytes.Buffer
	t.Logf("framestat %s", strings.Join(args, " "))
	if err := inTestdata(t, func() error { return framestat(&got, &gotErr, args) }); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if gotErr.Len() != 0 {
		t.Errorf("unexpected stderr:\n%s", gotErr.String())
	}
	return got.String()
}

func golden(t *testing.T, name string, args ...string) {
	t.Helper()
	got := run(t, args...)

	wantPath := filepath.Join("testdata", name+".stdout")
	want, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatal(err)
	}
	if !diff(t, want, []byte(got)) {
		return
	}
	// diff printed the error.

	// Write a "got" file for reference.
	gotPath := filepath.Join("testdata", name+".got-stdout")
	if err := os.WriteFile(gotPath, []byte(got), 0666); err != nil {
		t.Fatalf("error writing %s: %s", gotPath, err)
	}
}

func diff(t *testing.T, want, got []byte) bool {
	t.Helper()
	if bytes.Equal(want, got) {
		return false
	}

	d := t.TempDir()
	wantPath, gotPath := filepath.Join(d, "want"), filepath.Join(d, "got")
	if err := os.WriteFile(wantPath, want, 0666); err != nil {
		t.Fatalf("error writing %s: %s", wantPath, err)
	}
	if err := os.WriteFile(gotPath, got, 0666); err != nil {
		t.Fatalf("error writing %s: %s", gotPath, err)
	}

	cmd := exec.Command("diff", "-Nu", "want", "got")
	cmd.Dir = d
	data, _ := cmd.CombinedOutput()
	if len(data) > 0 {
		t.Errorf("\n%s", data)
	} else {
		t.Errorf("want:\n%sgot:\n%s", want, got)
	}
	return true
}
