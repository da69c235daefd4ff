// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package framemath

import "math"

// Percentile returns the p'th percentile (0 <= p <= 100) of sorted,
// which must be in ascending order. It linearly interpolates between
// the two nearest ranks (method 7 of Hyndman and Fan), so
// Percentile(xs, 0) is the minimum and Percentile(xs, 100) is the
// maximum. p is clamped to [0, 100] and NaN is treated as 0. An
// empty slice has percentile 0.
//
// The interpolation is computed as lo + (hi-lo)*frac, which never
// leaves [lo, hi]. Results may differ in the last bit from the
// weighted form lo*(1-frac) + hi*frac.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	idx := p / 100 * float64(n-1)
	if !(idx > 0) {
		idx = 0
	} else if idx > float64(n-1) {
		idx = float64(n - 1)
	}
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	frac := idx - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
