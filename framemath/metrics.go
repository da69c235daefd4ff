// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package framemath summarizes frame time captures.
//
// Compute reduces a framefmt.Capture to a Metrics record: average and
// percentile frame rates, frame time percentiles, a stutter estimate,
// and bounded series suitable for plotting. All functions in this
// package are pure and safe for concurrent use.
package framemath

import (
	"sort"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"

	"golang.org/x/framestat/framefmt"
)

// MaxDisplayPoints is the maximum length of the series in a Metrics.
const MaxDisplayPoints = 5000

// StutterFactor is the multiple of the average frame time above
// which a frame counts as a stutter.
const StutterFactor = 2.5

// Metrics summarizes one capture.
//
// Times are in milliseconds unless the name says otherwise. Rates are
// in frames per second. The field names used for JSON are part of the
// public interface consumed by result viewers.
type Metrics struct {
	FileName     string  `json:"file_name"`
	ProcessName  string  `json:"process_name"`
	DurationSecs float64 `json:"duration_secs"`
	FrameCount   int     `json:"frame_count"`

	AvgFPS    float64 `json:"avg_fps"`
	MinFPS    float64 `json:"min_fps"`
	MaxFPS    float64 `json:"max_fps"`
	P01FPS    float64 `json:"p01_fps"`
	P1FPS     float64 `json:"p1_fps"`
	P5FPS     float64 `json:"p5_fps"`
	MedianFPS float64 `json:"median_fps"`
	P95FPS    float64 `json:"p95_fps"`
	P99FPS    float64 `json:"p99_fps"`

	AvgFrameTime  float64 `json:"avg_frametime"`
	P95FrameTime  float64 `json:"p95_frametime"`
	P99FrameTime  float64 `json:"p99_frametime"`
	P999FrameTime float64 `json:"p999_frametime"`

	StutterCount  int     `json:"stutter_count"`
	StutterPct    float64 `json:"stutter_pct"`
	DroppedFrames int     `json:"dropped_frames"`

	// SkippedFrames is the number of input rows the ingestor
	// discarded. It is only set by Compute.
	SkippedFrames int `json:"skipped_frames"`

	// FrameTimes, Timestamps, and FPSValues are parallel series
	// of at most MaxDisplayPoints points. Timestamps are in
	// seconds.
	FrameTimes []float64 `json:"frametimes"`
	Timestamps []float64 `json:"timestamps"`
	FPSValues  []float64 `json:"fps_values"`
}

// Compute summarizes capture c.
func Compute(c *framefmt.Capture) *Metrics {
	m := New(c.FrameTimes(), c.Timestamps(), c.Dropped, c.Process, c.FileName)
	m.SkippedFrames = c.Skipped
	return m
}

// New summarizes a capture given as parallel frame time and timestamp
// series. frameTimes must not contain values <= 0.
//
// New does not retain or modify its arguments.
func New(frameTimes, timestamps []float64, dropped int, process, fileName string) *Metrics {
	n := len(frameTimes)
	if len(timestamps) != n {
		panic("frameTimes and timestamps must have the same length")
	}
	m := &Metrics{
		FileName:      fileName,
		ProcessName:   process,
		FrameCount:    n,
		DroppedFrames: dropped,
		FrameTimes:    []float64{},
		Timestamps:    []float64{},
		FPSValues:     []float64{},
	}
	if n == 0 {
		return m
	}

	fps := vec.Map(func(ft float64) float64 { return 1000 / ft }, frameTimes)
	m.DurationSecs = timestamps[n-1] - timestamps[0]

	m.AvgFrameTime = vec.Sum(frameTimes) / float64(n)
	if m.AvgFrameTime > 0 {
		m.AvgFPS = 1000 / m.AvgFrameTime
	}

	sortedFPS := append([]float64(nil), fps...)
	sort.Float64s(sortedFPS)
	m.MinFPS, m.MaxFPS = stats.Bounds(sortedFPS)
	m.P01FPS = Percentile(sortedFPS, 0.1)
	m.P1FPS = Percentile(sortedFPS, 1)
	m.P5FPS = Percentile(sortedFPS, 5)
	m.MedianFPS = Percentile(sortedFPS, 50)
	m.P95FPS = Percentile(sortedFPS, 95)
	m.P99FPS = Percentile(sortedFPS, 99)

	sortedFT := append([]float64(nil), frameTimes...)
	sort.Float64s(sortedFT)
	m.P95FrameTime = Percentile(sortedFT, 95)
	m.P99FrameTime = Percentile(sortedFT, 99)
	m.P999FrameTime = Percentile(sortedFT, 99.9)

	m.StutterCount = countStutters(frameTimes, m.AvgFrameTime)
	m.StutterPct = float64(m.StutterCount) / float64(n) * 100

	idx := Downsample(n)
	m.FrameTimes = gather(frameTimes, idx)
	m.Timestamps = gather(timestamps, idx)
	m.FPSValues = gather(fps, idx)
	return m
}

// countStutters returns the number of frames whose frame time is
// strictly greater than StutterFactor times avg.
func countStutters(frameTimes []float64, avg float64) int {
	threshold := avg * StutterFactor
	count := 0
	for _, ft := range frameTimes {
		if ft > threshold {
			count++
		}
	}
	return count
}
