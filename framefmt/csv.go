// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package framefmt

import (
	"math"
	"strconv"
	"strings"
)

// Column aliases, in priority order. Matching is case-insensitive.
var (
	frameTimeColumns = []string{"MsBetweenPresents", "FrameTime"}
	processColumns   = []string{"Application", "ProcessName"}
	timeColumns      = []string{"TimeInSeconds"}
	droppedColumns   = []string{"Dropped"}
)

// placeholderProcesses are process names capture tools write when
// they could not resolve the real one.
var placeholderProcesses = map[string]bool{
	"<unknown>": true,
	"<error>":   true,
}

// columns maps each logical field to its physical column index, or
// -1 if the header lacks it.
type columns struct {
	frameTime, process, time, dropped int
}

func resolveColumns(header []string) columns {
	find := func(aliases []string) int {
		for _, alias := range aliases {
			for i, h := range header {
				if strings.EqualFold(strings.TrimSpace(h), alias) {
					return i
				}
			}
		}
		return -1
	}
	return columns{
		frameTime: find(frameTimeColumns),
		process:   find(processColumns),
		time:      find(timeColumns),
		dropped:   find(droppedColumns),
	}
}

// field returns the trimmed value of column i in fields, or "" if
// the row is too short or the column is absent.
func field(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

// parseFinite parses s as a float, rejecting NaN and infinities.
func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseCSV parses a comma-separated capture. The first line is the
// header; every later line is a frame.
//
// Rows whose frame time is missing, malformed, or not positive are
// skipped and counted in Capture.Skipped. If the header has no
// timestamp column, or a row's timestamp is malformed, the timestamp
// is extrapolated from the previous frame.
func ParseCSV(fileName string, data []byte) (*Capture, error) {
	lines := strings.Split(string(decodeText(data)), "\n")
	header := strings.TrimSuffix(lines[0], "\r")
	if strings.TrimSpace(header) == "" {
		return nil, newError(EmptyCapture, fileName, "empty CSV capture")
	}
	cols := resolveColumns(strings.Split(header, ","))
	if cols.frameTime < 0 {
		return nil, newError(MissingColumn, fileName, "no frame time column (want one of %s)", strings.Join(frameTimeColumns, ", "))
	}

	c := &Capture{FileName: fileName}
	for _, line := range lines[1:] {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, ",")
		ft, ok := parseFinite(field(fields, cols.frameTime))
		if !ok || ft <= 0 {
			c.Skipped++
			continue
		}

		s := Sample{FrameTime: ft}
		if ts, ok := parseFinite(field(fields, cols.time)); ok {
			s.Timestamp = ts
		} else if n := len(c.Samples); n > 0 {
			s.Timestamp = c.Samples[n-1].Timestamp + ft/1000
		}

		if c.Process == "" {
			if p := field(fields, cols.process); p != "" && !placeholderProcesses[p] {
				c.Process = p
			}
		}

		if d := field(fields, cols.dropped); d == "1" || strings.EqualFold(d, "true") {
			s.Dropped = true
			c.Dropped++
		}
		c.Samples = append(c.Samples, s)
	}

	if len(c.Samples) == 0 {
		return nil, newError(EmptyCapture, fileName, "no valid frames in CSV capture")
	}
	if c.Process == "" {
		c.Process = UnknownProcess
	}
	return c, nil
}
