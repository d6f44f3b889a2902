// Package collision implements 2D geometric primitives and the exact pairwise
// intersection tests used by the spatial index.
//
// The vertical axis grows up: an AABB's TopLeft has the greatest y and its
// BottomRight the smallest. Every comparison is exact, no epsilon is applied,
// so results on boundaries are subject to floating point rounding.
package collision

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Scalar is the constraint for the coordinate types of every geometric type.
type Scalar interface {
	constraints.Float
}

func sqrt[S Scalar](v S) S {
	return S(math.Sqrt(float64(v)))
}

func abs[S Scalar](v S) S {
	if v < 0 {
		return -v
	}
	return v
}

func minOf[S Scalar](a, b S) S {
	if a < b {
		return a
	}
	return b
}

func maxOf[S Scalar](a, b S) S {
	if a > b {
		return a
	}
	return b
}
