// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package framefmt

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// A shape is one known layout of a JSON capture document. match
// reports whether doc has this layout and, if so, appends its frames
// to c.
type shape struct {
	name  string
	match func(doc object, c *Capture) bool
}

// shapes lists the known layouts in the order they are tried.
var shapes = []shape{
	{"Runs[].CaptureData", matchRunObjects},
	{"Runs[][]", matchRunArrays},
	{"CaptureData", matchCaptureData},
	{"MsBetweenPresents", matchFrameTimes},
}

// ParseJSON parses a CapFrameX-style JSON capture.
//
// The document's layouts are tried in order: a "Runs" list of run
// objects each holding a "CaptureData" object, a "Runs" list of plain
// frame time lists, a top-level "CaptureData" object, and finally a
// top-level "MsBetweenPresents" list. Runs are concatenated in order.
//
// JSON captures carry no timestamps, so they are synthesized from the
// running sum of frame times.
func ParseJSON(fileName string, data []byte) (*Capture, error) {
	data = decodeText(data)
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &Error{Kind: SyntaxError, FileName: fileName, Msg: "malformed JSON capture", Err: err}
	}
	doc, ok := asObject(raw)
	if !ok {
		return nil, newError(UnrecognizedSchema, fileName, "JSON capture is not an object")
	}

	c := &Capture{FileName: fileName}
	matched := false
	for _, s := range shapes {
		if s.match(doc, c) {
			matched = true
			break
		}
	}
	if !matched {
		names := make([]string, len(shapes))
		for i, s := range shapes {
			names[i] = s.name
		}
		return nil, newError(UnrecognizedSchema, fileName, "no frame times found (want one of %s)", strings.Join(names, ", "))
	}
	if len(c.Samples) == 0 {
		return nil, newError(EmptyCapture, fileName, "no valid frames in JSON capture")
	}
	c.stampFromFrameTimes()

	c.Process = UnknownProcess
	info, _ := asObject(doc.get("Info"))
	if p, ok := asString(info.get("ProcessName")); ok {
		c.Process = p
	} else if p, ok := asString(doc.get("ProcessName")); ok {
		c.Process = p
	}
	return c, nil
}

func matchRunObjects(doc object, c *Capture) bool {
	runs, ok := asArray(doc.get("Runs"))
	if !ok {
		return false
	}
	found := false
	for _, r := range runs {
		run, ok := asObject(r)
		if !ok {
			continue
		}
		data, ok := asObject(run.get("CaptureData"))
		if !ok {
			continue
		}
		found = true
		c.appendFrames(data.get("MsBetweenPresents"), data.get("Dropped"))
	}
	return found
}

func matchRunArrays(doc object, c *Capture) bool {
	runs, ok := asArray(doc.get("Runs"))
	if !ok {
		return false
	}
	found := false
	for _, r := range runs {
		if _, ok := asArray(r); ok {
			found = true
			c.appendFrames(r, nil)
		}
	}
	return found
}

func matchCaptureData(doc object, c *Capture) bool {
	data, ok := asObject(doc.get("CaptureData"))
	if !ok {
		return false
	}
	frames := data.get("MsBetweenPresents")
	if _, ok := asArray(frames); !ok {
		return false
	}
	c.appendFrames(frames, data.get("Dropped"))
	return true
}

func matchFrameTimes(doc object, c *Capture) bool {
	frames := doc.get("MsBetweenPresents")
	if _, ok := asArray(frames); !ok {
		return false
	}
	c.appendFrames(frames, nil)
	return true
}

// appendFrames appends the positive frame times in the JSON list
// frames to c. dropped, if a list, is the parallel list of dropped
// flags.
func (c *Capture) appendFrames(frames, dropped json.RawMessage) {
	flags, _ := asArray(dropped)
	for _, f := range flags {
		if isDropped(f) {
			c.Dropped++
		}
	}

	values, _ := asArray(frames)
	for i, v := range values {
		var ft float64
		if err := json.Unmarshal(v, &ft); err != nil || !(ft > 0) {
			c.Skipped++
			continue
		}
		s := Sample{FrameTime: ft}
		if i < len(flags) {
			s.Dropped = isDropped(flags[i])
		}
		c.Samples = append(c.Samples, s)
	}
}

// isDropped reports whether a dropped flag is set. Capture tools
// write either booleans or 0/1.
func isDropped(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	if string(v) == "true" {
		return true
	}
	n, err := strconv.ParseInt(string(v), 10, 64)
	return err == nil && n == 1
}

// An object is a decoded JSON object whose values are still raw.
type object map[string]json.RawMessage

// get returns the value for key, preferring an exact match and
// falling back to a case-insensitive one. Among several
// case-insensitive matches, the lexically smallest key wins. It
// returns nil if there is no such key.
func (o object) get(key string) json.RawMessage {
	if v, ok := o[key]; ok {
		return v
	}
	var best string
	var found bool
	for k := range o {
		if strings.EqualFold(k, key) && (!found || k < best) {
			best, found = k, true
		}
	}
	if !found {
		return nil
	}
	return o[best]
}

func asObject(v json.RawMessage) (object, bool) {
	if !hasPrefix(v, '{') {
		return nil, false
	}
	var o object
	if err := json.Unmarshal(v, &o); err != nil {
		return nil, false
	}
	return o, true
}

func asArray(v json.RawMessage) ([]json.RawMessage, bool) {
	if !hasPrefix(v, '[') {
		return nil, false
	}
	var a []json.RawMessage
	if err := json.Unmarshal(v, &a); err != nil {
		return nil, false
	}
	return a, true
}

func asString(v json.RawMessage) (string, bool) {
	if !hasPrefix(v, '"') {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}

func hasPrefix(v json.RawMessage, c byte) bool {
	v = bytes.TrimSpace(v)
	return len(v) > 0 && v[0] == c
}
