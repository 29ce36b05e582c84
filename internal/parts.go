package internal

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Distance of the side probes from a fragment's first edge, as a fraction of
// that edge's length
const probeFraction = 1.0 / 2048

// Break a possibly self-intersecting polygon into simple polygons that cover
// the region it fills under the given rule.
//
// The polygon is cut at its crossings, pieces that have filled area on both
// sides are discarded, and the remaining boundary pieces are joined back up
// into closed loops. Loops with an area below eps are dropped. A hole in the
// filled region comes back as its own loop inside the loop that surrounds it,
// so the region is the even-odd union of the result (see
// PolygonList.ContainsPointByEvenOdd).
func PolygonParts(poly Polygon, rule FillRule, eps float64) PolygonList {
	CheckEpsilon("polygon parts", eps)
	poly = Polygon(Unwrap(Path(poly), eps))
	if len(poly) < 3 {
		fatalf("polygon parts: polygon needs at least 3 points, got %d", len(poly))
	}

	var kept []Path
	for _, fragment := range TagSelfCrossingSubpaths(poly, rule, eps) {
		if fragment.Tag == Outer {
			kept = append(kept, fragment.Path)
		}
	}
	return AssembleFragments(kept, eps)
}

// Split a polygon at its crossings and tag each piece by probing just either
// side of the midpoint of its first edge. If both probes are filled in the
// original polygon the piece is Interior, otherwise it is Outer.
func TagSelfCrossingSubpaths(poly Polygon, rule FillRule, eps float64) []Fragment {
	subpaths := SplitPathAtSelfCrossings(Path(poly), true, eps)
	result := make([]Fragment, 0, len(subpaths))
	for _, subpath := range subpaths {
		a, b := subpath[0], subpath[1]
		mid := Lerp(a, b, 0.5)
		edge := r2.Sub(b, a)
		offset := r2.Scale(probeFraction, Point2{X: -edge.Y, Y: edge.X})

		// The probes sit a fixed distance off the boundary, so they are
		// classified by winding alone
		leftIn := rule.Fills(WindingNumber(r2.Add(mid, offset), poly))
		rightIn := rule.Fills(WindingNumber(r2.Sub(mid, offset), poly))

		tag := Outer
		if leftIn && rightIn {
			tag = Interior
		}
		result = append(result, Fragment{Tag: tag, Path: subpath})
	}
	return result
}

// Join open fragments into closed polygons.
//
// Assembly repeatedly seeds a loop with the fragment that starts furthest
// left. From the seed, two loops are grown: one always taking the sharpest
// right turn onto a connecting fragment, one always taking the sharpest left
// turn. The loop with the smaller area is kept, and every fragment it didn't
// use goes back into the pool. Fragments may be followed in either
// direction. When nothing connects to the free end of a growing path, the
// path is taken as it is.
//
// A loop that passes through the same point twice is split there. The
// returned polygons repeat no points, and loops with an area below eps are
// dropped.
func AssembleFragments(fragments []Path, eps float64) PolygonList {
	CheckEpsilon("assemble fragments", eps)

	pool := make([]Path, 0, len(fragments))
	for _, fragment := range fragments {
		CheckPoints2("assemble fragments", fragment)
		if len(fragment) > 1 {
			pool = append(pool, fragment)
		}
	}

	result := PolygonList{}
	for len(pool) > 0 {
		seed := 0
		for i, fragment := range pool {
			if fragment.First().X < pool[seed].First().X {
				seed = i
			}
		}

		leftLoop, leftRest := assembleLoop(pool, seed, false, eps)
		rightLoop, rightRest := assembleLoop(pool, seed, true, eps)

		loop, rest := rightLoop, rightRest
		if Polygon(leftLoop).Area() < Polygon(rightLoop).Area() {
			loop, rest = leftLoop, leftRest
		}
		pool = rest

		for _, piece := range splitAtRepeatedPoints(Deduplicate(loop, true, eps), eps) {
			polygon := Polygon(Deduplicate(piece, true, eps))
			if len(polygon) >= 3 && polygon.Area() >= eps {
				result = append(result, polygon)
			}
		}
	}
	return result
}

// Break a loop that passes through the same point twice into the two loops on
// either side of that point, until no point repeats. The even-odd region of
// the pieces is that of the loop.
func splitAtRepeatedPoints(loop Path, eps float64) []Path {
	result := []Path{}
	pending := []Path{loop}
	for len(pending) > 0 {
		current := pending[0]
		pending = pending[1:]

		i, j := repeatedPoint(current, eps)
		if i < 0 {
			result = append(result, current)
			continue
		}
		inner := append(Path{}, current[i:j]...)
		outer := append(append(Path{}, current[:i]...), current[j:]...)
		pending = append(pending, outer, inner)
	}
	return result
}

// The first pair of indices i < j with the same point, or -1, -1
func repeatedPoint(path Path, eps float64) (int, int) {
	for i := range path {
		for j := i + 1; j < len(path); j++ {
			if PointsEqual(path[i], path[j], eps) {
				return i, j
			}
		}
	}
	return -1, -1
}

// Grow a single loop from pool[seed], turning the same way at every junction.
// Returns the loop and the fragments that are left over. The pool itself is
// not modified.
func assembleLoop(pool []Path, seed int, rightmost bool, eps float64) (Path, []Path) {
	rest := make([]Path, 0, len(pool))
	rest = append(rest, pool[:seed]...)
	rest = append(rest, pool[seed+1:]...)

	path := append(Path{}, pool[seed]...)
	for {
		if IsClosedPath(path, eps) {
			return path, rest
		}

		next, index := extremeAngleFragment(path[len(path)-2], path.Last(), rest, rightmost, eps)
		if index < 0 {
			// Nothing connects. Take the path as it stands.
			return path, rest
		}
		rest = removePath(rest, index)

		if IsClosedPath(next, eps) {
			return next, prependPath(path, rest)
		}

		// If the fragment ends somewhere on the path, the loop closes there and
		// the part of the path before it goes back to the pool
		hit := -1
		for i := 0; i < len(path)-1; i++ {
			if PointsEqual(path[i], next.Last(), eps) {
				hit = i
			}
		}
		if hit >= 0 {
			loop := append(append(Path{}, path[hit:]...), next[1:]...)
			head := path[:hit+1]
			if len(head) > 1 {
				rest = prependPath(head, rest)
			}
			return loop, rest
		}

		path = append(path, next[1:]...)
	}
}

// Among the fragments with an end at the given point, find the one whose first
// edge turns most sharply right (or left) from the segment prev-end. The
// fragment is returned oriented to start at the point, along with its index.
// Ties go to the earliest fragment.
func extremeAngleFragment(prev, end Point2, fragments []Path, rightmost bool, eps float64) (Path, int) {
	incoming := r2.Sub(end, prev)
	incomingAngle := math.Atan2(incoming.Y, incoming.X)

	var best Path
	bestIndex := -1
	bestTurn := 0.0
	for i, fragment := range fragments {
		var oriented Path
		switch {
		case PointsEqual(end, fragment.First(), eps):
			oriented = fragment
		case PointsEqual(end, fragment.Last(), eps):
			oriented = fragment.Reverse()
		default:
			continue
		}
		outgoing := r2.Sub(oriented[1], oriented[0])
		turn := normalizeAngle(math.Atan2(outgoing.Y, outgoing.X) - incomingAngle)
		if bestIndex < 0 || (rightmost && turn < bestTurn) || (!rightmost && turn > bestTurn) {
			best, bestIndex, bestTurn = oriented, i, turn
		}
	}
	return best, bestIndex
}

// Normalize to (-pi, pi]
func normalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 2*math.Pi)
	if angle <= -math.Pi {
		angle += 2 * math.Pi
	} else if angle > math.Pi {
		angle -= 2 * math.Pi
	}
	return angle
}

func removePath(paths []Path, index int) []Path {
	result := make([]Path, 0, len(paths)-1)
	result = append(result, paths[:index]...)
	return append(result, paths[index+1:]...)
}

func prependPath(path Path, paths []Path) []Path {
	return append([]Path{path}, paths...)
}
