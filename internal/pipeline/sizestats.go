package pipeline

import (
	"math"
	"slices"
)

// sizeClass grades one file size against the batch using Tukey fences.
type sizeClass int

const (
	sizeNormal  sizeClass = iota
	sizeOutlier           // outside Q1-1.5*IQR .. Q3+1.5*IQR
	sizeExtreme           // outside Q1-3*IQR .. Q3+3*IQR
)

// Minimum sample for quartiles to mean anything.
const minFenceSample = 4

// fences holds the quartiles of a batch's file sizes.
type fences struct {
	q1, q3 float64
	ok     bool // false when the sample is too small or has no spread
}

func newFences(vals []float64) fences {
	if len(vals) < minFenceSample {
		return fences{}
	}
	sorted := slices.Clone(vals)
	slices.Sort(sorted)
	q1, q3 := percentile(sorted, 25), percentile(sorted, 75)
	return fences{q1: q1, q3: q3, ok: q3 > q1}
}

func (f fences) iqr() float64 { return f.q3 - f.q1 }

// inner returns the outlier bounds; the low bound never drops below zero.
func (f fences) inner() (lo, hi float64) {
	return math.Max(f.q1-1.5*f.iqr(), 0), f.q3 + 1.5*f.iqr()
}

func (f fences) classify(v float64) sizeClass {
	if !f.ok || v <= 0 {
		return sizeNormal
	}
	k := 3 * f.iqr()
	if v < f.q1-k || v > f.q3+k {
		return sizeExtreme
	}
	if lo, hi := f.q1-1.5*f.iqr(), f.q3+1.5*f.iqr(); v < lo || v > hi {
		return sizeOutlier
	}
	return sizeNormal
}

// percentile interpolates linearly between the closest ranks of sorted.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	rank := p / 100 * float64(n-1)
	lo := int(rank)
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[lo+1]-sorted[lo])*frac
}
