package internal

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Default tolerance for hulls, intersections and area filtering. Every
// operation takes its tolerance explicitly; these are only what the public
// wrappers pass when the caller doesn't say.
const DefaultEpsilon = 1e-9

// Default tolerance for the path splitting family. Cut points are computed
// from line intersections, so they carry more rounding than input vertices.
const SplitEpsilon = 1e-7

func Equal(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// Points are equal when every coordinate is within eps
func PointsEqual(a, b Point2, eps float64) bool {
	return Equal(a.X, b.X, eps) && Equal(a.Y, b.Y, eps)
}

// Lexicographic order, by x and then by y. This is the sweep order for the 2D
// hull.
func LexLess(a, b Point2) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

// Often we want to treat an array as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator, it only gives positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}

func Lerp(a, b Point2, t float64) Point2 {
	return r2.Add(a, r2.Scale(t, r2.Sub(b, a)))
}

// Stack of point indices, used for the hull chains
type IndexStack []int

func (s *IndexStack) Push(i int) {
	*s = append(*s, i)
}

func (s *IndexStack) Pop() int {
	if len(*s) == 0 {
		return -1
	}
	i := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return i
}

func (s *IndexStack) Peek() int {
	if len(*s) == 0 {
		return -1
	}
	return (*s)[len(*s)-1]
}

// The element below the top of the stack
func (s *IndexStack) Under() int {
	if len(*s) < 2 {
		return -1
	}
	return (*s)[len(*s)-2]
}

func (s *IndexStack) Empty() bool {
	return len(*s) == 0
}

func (s *IndexStack) Len() int {
	return len(*s)
}
