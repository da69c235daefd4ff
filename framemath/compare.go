// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package framemath

import (
	"fmt"

	"github.com/aclements/go-moremath/mathx"
)

// A Delta is the change in one metric between two captures.
type Delta struct {
	// Name is a short label for the metric, such as "1% low".
	Name string

	// Unit is "fps", "ms", or "%".
	Unit string

	Old, New float64

	// HigherIsBetter indicates that an increase of this metric is
	// an improvement.
	HigherIsBetter bool
}

// Compare returns the change in the headline metrics from old to new,
// typically a capture before and after a configuration change.
func Compare(old, new *Metrics) []Delta {
	fps := func(name string, get func(*Metrics) float64) Delta {
		return Delta{name, "fps", get(old), get(new), true}
	}
	ms := func(name string, get func(*Metrics) float64) Delta {
		return Delta{name, "ms", get(old), get(new), false}
	}
	return []Delta{
		fps("avg", func(m *Metrics) float64 { return m.AvgFPS }),
		fps("median", func(m *Metrics) float64 { return m.MedianFPS }),
		fps("1% low", func(m *Metrics) float64 { return m.P1FPS }),
		fps("0.1% low", func(m *Metrics) float64 { return m.P01FPS }),
		fps("min", func(m *Metrics) float64 { return m.MinFPS }),
		ms("avg frame time", func(m *Metrics) float64 { return m.AvgFrameTime }),
		ms("p99 frame time", func(m *Metrics) float64 { return m.P99FrameTime }),
		{"stutter", "%", old.StutterPct, new.StutterPct, false},
	}
}

// Percent returns the relative change from Old to New in percent.
// It returns false if Old is zero and New is not.
func (d Delta) Percent() (float64, bool) {
	if d.Old == d.New {
		return 0, true
	}
	if d.Old == 0 {
		return 0, false
	}
	return (d.New/d.Old - 1) * 100, true
}

// Improvement returns +1 if the change is an improvement, -1 if it
// is a regression, and 0 if the metric did not change.
func (d Delta) Improvement() int {
	s := mathx.Sign(d.New - d.Old)
	if !d.HigherIsBetter {
		s = -s
	}
	return int(s)
}

// String formats the relative change as a signed percentage, such as
// "+5.00%". It returns "?" if the change cannot be expressed
// relative to Old.
func (d Delta) String() string {
	pct, ok := d.Percent()
	if !ok {
		return "?"
	}
	if pct == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%+.2f%%", pct)
}
