package internal

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// Convex hull of a 2D point set, using Andrew's monotone chain.
//
// The result is a list of indices into points, running counter-clockwise from
// the lexicographically lowest hull point. When all is true, points lying on
// hull edges are kept; otherwise only corners are returned. Degenerate inputs
// don't produce polygons: no points gives an empty list, coincident points
// give [0], and collinear points give the indices of the two extremes.
func Hull2DPath(points []Point2, all bool, eps float64) []int {
	CheckEpsilon("hull2d", eps)
	CheckPoints2("hull2d", points)

	switch len(points) {
	case 0:
		return []int{}
	case 1:
		return []int{0}
	}

	if _, _, _, ok := noncollinearTriple(lift(points), eps); !ok {
		return collinearExtremes(lift(points), eps)
	}

	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return LexLess(points[order[i]], points[order[j]])
	})

	lower := buildHullChain(points, order, all, eps)
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	upper := buildHullChain(points, order, all, eps)

	// Each chain ends where the other begins
	result := make([]int, 0, len(lower)+len(upper)-2)
	result = append(result, lower[:len(lower)-1]...)
	result = append(result, upper[:len(upper)-1]...)
	return result
}

// Walk the points in the given order, keeping only left turns. This is one
// half of the hull.
func buildHullChain(points []Point2, order []int, all bool, eps float64) IndexStack {
	chain := make(IndexStack, 0, len(order))
	for _, candidate := range order {
		for chain.Len() >= 2 && !isLeftTurn(points[chain.Under()], points[chain.Peek()], points[candidate], all, eps) {
			chain.Pop()
		}
		chain.Push(candidate)
	}
	return chain
}

// Orientation test for a -> b -> c. The tolerance is scaled by the lengths of
// the two legs so the test behaves the same at any coordinate scale. With all
// set, collinear turns count as left turns.
func isLeftTurn(a, b, c Point2, all bool, eps float64) bool {
	ab := r2.Sub(b, a)
	ac := r2.Sub(c, a)
	threshold := eps * r2.Norm(ab) * r2.Norm(ac)
	if all {
		if r2.Norm(ab) == 0 || r2.Norm(r2.Sub(c, b)) == 0 {
			// Duplicate points never survive, even when keeping edge points
			return false
		}
		return r2.Cross(ab, ac) >= -threshold
	}
	return r2.Cross(ab, ac) > threshold
}

// Whether p lies inside or on a hull returned by Hull2DPath
func PointInHull2(p Point2, points []Point2, hull []int, eps float64) bool {
	switch len(hull) {
	case 0:
		return false
	case 1:
		return r2.Norm(r2.Sub(p, points[hull[0]])) <= eps
	case 2:
		return PointOnSegment(p, points[hull[0]], points[hull[1]], eps)
	}
	for i := range hull {
		a := points[hull[i]]
		b := points[hull[CircularIndex(i+1, len(hull))]]
		edge := r2.Sub(b, a)
		if r2.Cross(edge, r2.Sub(p, a)) < -eps*r2.Norm(edge) {
			return false
		}
	}
	return true
}

// The distinct point indices used by a hull, in ascending order
func HullVertices(path []int, faces []Face) []int {
	seen := make(map[int]struct{})
	for _, i := range path {
		seen[i] = struct{}{}
	}
	for _, face := range faces {
		for _, i := range face {
			seen[i] = struct{}{}
		}
	}
	result := make([]int, 0, len(seen))
	for i := range seen {
		result = append(result, i)
	}
	sort.Ints(result)
	return result
}
