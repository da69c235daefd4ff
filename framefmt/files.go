// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package framefmt

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxFileBytes is the largest capture file ReadFile will read. A
// capture of several hundred thousand frames is a few tens of
// megabytes.
const MaxFileBytes = 256 << 20

// ReadFile reads and parses the capture at path.
//
// The format is detected before the file is opened, so a path with
// an unsupported extension fails without touching the file system.
func ReadFile(path string) (*Capture, error) {
	if _, err := Detect(path); err != nil {
		return nil, err
	}
	data, err := readLimited(path)
	if err != nil {
		return nil, &Error{Kind: IOError, FileName: filepath.Base(path), Msg: "reading capture", Err: err}
	}
	return Parse(path, data)
}

func readLimited(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	lr := &io.LimitedReader{R: f, N: MaxFileBytes + 1}
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if len(data) > MaxFileBytes {
		return nil, fmt.Errorf("file exceeds %d bytes", MaxFileBytes)
	}
	return data, nil
}

// A Files reads captures from a sequence of files.
//
// Each capture is given a label. By default, this is the path
// directly from Paths, except that duplicate paths are
// disambiguated by appending "#N". If AllowLabels is true, then
// entries in Paths may be of the form label=path, and the label part
// is used instead (without any disambiguation).
type Files struct {
	// Paths is the list of file names to read in.
	Paths []string

	// AllowLabels indicates that custom labels are allowed in
	// Paths. This is generally the desired behavior when the
	// file list comes from command-line flags, as it lets users
	// name captures "before" and "after".
	AllowLabels bool

	// inputs is the sequence of remaining inputs, or nil if this
	// Files has not started yet. Note that this distinguishes nil
	// from length 0.
	inputs []input

	capture *Capture
	label   string
	err     error
}

type input struct {
	path      string
	label     string
	isLabeled bool
}

// init does first-use initialization of f.
func (f *Files) init() {
	f.inputs = []input{}

	pathCount := make(map[string]int)
	for _, path := range f.Paths {
		label := path
		isLabeled := false
		if i := strings.Index(path, "="); f.AllowLabels && i >= 0 {
			label, path = path[:i], path[i+1:]
			isLabeled = true
		} else {
			pathCount[path]++
		}
		f.inputs = append(f.inputs, input{path, label, isLabeled})
	}

	// Two captures with the same label would be indistinguishable
	// in a comparison. For user labels, we do exactly what the
	// user says.
	pathI := make(map[string]int)
	for i := range f.inputs {
		inp := &f.inputs[i]
		if inp.isLabeled || pathCount[inp.path] == 1 {
			continue
		}
		inp.label = fmt.Sprintf("%s#%d", inp.path, pathI[inp.path])
		pathI[inp.path]++
	}
}

// Scan reads the next capture in the sequence of files and reports
// whether one was read. The caller should use the Capture and Label
// methods to get it. If Scan reaches the end of the file sequence,
// or if any file cannot be read or parsed, it returns false. In this
// case, the caller should use the Err method to check for errors.
func (f *Files) Scan() bool {
	if f.err != nil {
		return false
	}
	if f.inputs == nil {
		f.init()
	}
	if len(f.inputs) == 0 {
		f.capture, f.label = nil, ""
		return false
	}
	inp := f.inputs[0]
	f.inputs = f.inputs[1:]

	c, err := ReadFile(inp.path)
	if err != nil {
		f.capture, f.label, f.err = nil, "", err
		return false
	}
	f.capture, f.label = c, inp.label
	return true
}

// Capture returns the capture that was just read by Scan.
func (f *Files) Capture() *Capture {
	return f.capture
}

// Label returns the label of the capture that was just read by Scan.
func (f *Files) Label() string {
	return f.label
}

// Err returns the error that stopped Scan, if any. If Scan stopped
// because it read every file, or if Scan has not yet returned false,
// Err returns nil.
func (f *Files) Err() error {
	return f.err
}
