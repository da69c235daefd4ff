// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package framefmt reads per-frame presentation timing captures.
//
// Two capture layouts are understood: comma-separated tables as
// written by PresentMon and similar tools, and JSON documents as
// written by CapFrameX. Both are reduced to a Capture, an ordered
// sequence of frame samples that framemath summarizes.
//
// Capture tools are noisy. Rows with a missing or non-positive frame
// time are dropped rather than reported, and Capture.Skipped counts
// them.
//
// The parse functions in this package never perform I/O; ReadFile and
// Files are provided for callers that start from paths.
package framefmt

// UnknownProcess is the process name of a capture that does not
// record one.
const UnknownProcess = "Unknown"

// A Sample is the timing of one presented frame.
type Sample struct {
	// FrameTime is the time since the previous present, in
	// milliseconds. It is always > 0.
	FrameTime float64

	// Timestamp is the time of this present in seconds since the
	// start of the capture.
	Timestamp float64

	// Dropped indicates the capture tool flagged this frame as
	// dropped.
	Dropped bool
}

// A Capture is the full sequence of frames recorded in one benchmark
// run, in presentation order.
type Capture struct {
	Samples []Sample

	// Process is the name of the captured application, or
	// UnknownProcess.
	Process string

	// FileName is the base name of the file the capture was read
	// from. It is purely diagnostic.
	FileName string

	// Dropped is the number of frames flagged as dropped. For
	// JSON captures this counts the dropped flags directly, so
	// it need not equal the number of Samples with Dropped set.
	Dropped int

	// Skipped is the number of rows or values discarded because
	// their frame time was missing, malformed, or not positive.
	Skipped int
}

// FrameTimes returns the frame time of every sample, in order.
func (c *Capture) FrameTimes() []float64 {
	out := make([]float64, len(c.Samples))
	for i, s := range c.Samples {
		out[i] = s.FrameTime
	}
	return out
}

// Timestamps returns the timestamp of every sample, in order.
func (c *Capture) Timestamps() []float64 {
	out := make([]float64, len(c.Samples))
	for i, s := range c.Samples {
		out[i] = s.Timestamp
	}
	return out
}

// stampFromFrameTimes sets each sample's timestamp to the sum of the
// frame times before it.
func (c *Capture) stampFromFrameTimes() {
	t := 0.0
	for i := range c.Samples {
		c.Samples[i].Timestamp = t
		t += c.Samples[i].FrameTime / 1000
	}
}
