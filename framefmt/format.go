// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package framefmt

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// A Format is a capture file layout.
type Format int

const (
	// CSV is a PresentMon-style table with one frame per row.
	CSV Format = 1 + iota

	// JSON is a CapFrameX-style document of frame time lists.
	JSON
)

func (f Format) String() string {
	switch f {
	case CSV:
		return "csv"
	case JSON:
		return "json"
	}
	return "unknown"
}

// Detect returns the Format of the capture at path, chosen by its
// extension alone. It does not look at the file.
func Detect(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSV, nil
	case ".json":
		return JSON, nil
	}
	return 0, newError(UnsupportedFormat, filepath.Base(path), "unsupported capture format %q (want .csv or .json)", filepath.Ext(path))
}

// Parse parses data, the content of the capture at path, choosing
// the ingestor with Detect.
func Parse(path string, data []byte) (*Capture, error) {
	format, err := Detect(path)
	if err != nil {
		return nil, err
	}
	name := filepath.Base(path)
	if format == CSV {
		return ParseCSV(name, data)
	}
	return ParseJSON(name, data)
}

// decodeText strips a leading byte order mark from data and, if the
// mark says so, converts UTF-16 input to UTF-8.
func decodeText(data []byte) []byte {
	out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return data
	}
	return out
}
