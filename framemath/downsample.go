// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package framemath

// Downsample returns the indices of the points to keep when reducing
// a series of n points to at most MaxDisplayPoints. The indices are
// strictly increasing and evenly spaced; if n <= MaxDisplayPoints,
// every index is kept.
//
// The k'th index is k*n/MaxDisplayPoints computed in integer
// arithmetic, so the selection does not depend on floating-point
// rounding.
func Downsample(n int) []int {
	if n <= MaxDisplayPoints {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	idx := make([]int, MaxDisplayPoints)
	for k := range idx {
		idx[k] = k * n / MaxDisplayPoints
	}
	return idx
}

// gather returns xs[idx[0]], xs[idx[1]], ... as a new slice.
func gather(xs []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = xs[j]
	}
	return out
}
