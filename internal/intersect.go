package internal

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// Find every crossing between non-adjacent segments of a path.
//
// Each segment's line splits the plane in two. Vertices are assigned a side by
// their signed distance from that line, with distances within eps counting as
// on the line. Two segments cross when each one has its endpoints strictly on
// opposite sides of the other's line. Surviving pairs are intersected exactly
// and kept when both parameters lie in [-eps, 1+eps].
//
// A path can also cross at one of its own vertices: either the vertex sits on
// another segment, or the path passes through the same point twice. These are
// reported once, with the vertex given as parameter 0 of the segment leaving
// it. Touching without crossing, or running along the same line, is not a
// crossing.
//
// Raising eps never adds intersections while distinct vertices stay further
// apart than eps. A vertex that comes to lie on a segment's line takes over
// the crossing one of its own segments had.
//
// Records come back ordered by (SegA, ParamA).
func PathSelfIntersections(path Path, closed bool, eps float64) []Intersection {
	CheckEpsilon("path self intersections", eps)
	CheckPoints2("path self intersections", path)

	points := path
	if closed && len(path) > 1 && !PointsEqual(path.First(), path.Last(), eps) {
		points = make(Path, len(path), len(path)+1)
		copy(points, path)
		points = append(points, path[0])
	}
	n := len(points)

	result := []Intersection{}
	for i := 0; i+3 <= n; i++ {
		a1, a2 := points[i], points[i+1]
		normalA, ok := unitNormal(a1, a2)
		if !ok {
			continue
		}

		// In a closed path, the last segment shares a vertex with the first
		lastJ := n - 2
		if i == 0 && closed {
			lastJ = n - 3
		}
		for j := i + 2; j <= lastJ; j++ {
			b1, b2 := points[j], points[j+1]
			if !straddles(a1, normalA, b1, b2, eps) {
				continue
			}
			normalB, ok := unitNormal(b1, b2)
			if !ok || !straddles(b1, normalB, a1, a2, eps) {
				continue
			}
			point, tA, tB, ok := LineIntersection(a1, a2, b1, b2, eps)
			if !ok || !inUnitInterval(tA, eps) || !inUnitInterval(tB, eps) {
				continue
			}
			result = append(result, Intersection{Point: point, SegA: i, ParamA: tA, SegB: j, ParamB: tB})
		}
	}

	result = append(result, vertexCrossings(points, closed, eps)...)

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.SegA != b.SegA {
			return a.SegA < b.SegA
		}
		if a.ParamA != b.ParamA {
			return a.ParamA < b.ParamA
		}
		if a.SegB != b.SegB {
			return a.SegB < b.SegB
		}
		return a.ParamB < b.ParamB
	})
	return result
}

// The path passing through one of its vertices
type vertexPass struct {
	index            int
	prev, at, next   Point2
	prevSeg, nextSeg int
}

// Vertices with a distinct point on either side. Points are as built by
// PathSelfIntersections, so a closed path already repeats its first point.
func vertexPasses(points Path, closed bool, eps float64) []vertexPass {
	segCount := len(points) - 1
	first, last := 1, segCount-1
	if closed {
		first = 0
	}
	var result []vertexPass
	for k := first; k <= last; k++ {
		prevSeg := k - 1
		if prevSeg < 0 {
			prevSeg = segCount - 1
		}
		pass := vertexPass{
			index:   k,
			prev:    points[prevSeg],
			at:      points[k],
			next:    points[k+1],
			prevSeg: prevSeg,
			nextSeg: k,
		}
		if PointsEqual(pass.prev, pass.at, eps) || PointsEqual(pass.next, pass.at, eps) {
			continue
		}
		result = append(result, pass)
	}
	return result
}

// Crossings that happen at a vertex of the path
func vertexCrossings(points Path, closed bool, eps float64) []Intersection {
	segCount := len(points) - 1
	passes := vertexPasses(points, closed, eps)
	result := []Intersection{}

	// A vertex lying inside another segment, with its neighbours on opposite
	// sides of that segment's line
	for _, pass := range passes {
		normalPrev, _ := unitNormal(pass.prev, pass.at)
		normalNext, _ := unitNormal(pass.at, pass.next)
		for j := 0; j < segCount; j++ {
			if j == pass.prevSeg || j == pass.nextSeg {
				continue
			}
			b1, b2 := points[j], points[j+1]
			normal, ok := unitNormal(b1, b2)
			if !ok || side(b1, normal, pass.at, eps) != 0 {
				continue
			}
			edge := r2.Sub(b2, b1)
			length := r2.Norm(edge)
			t := r2.Dot(r2.Sub(pass.at, b1), edge) / (length * length)
			if t*length <= eps || (1-t)*length <= eps {
				continue
			}
			if !straddles(b1, normal, pass.prev, pass.next, eps) ||
				!straddles(pass.prev, normalPrev, b1, b2, eps) ||
				!straddles(pass.at, normalNext, b1, b2, eps) {
				continue
			}
			if pass.index < j {
				result = append(result, Intersection{Point: pass.at, SegA: pass.index, ParamA: 0, SegB: j, ParamB: t})
			} else {
				result = append(result, Intersection{Point: pass.at, SegA: j, ParamA: t, SegB: pass.index, ParamB: 0})
			}
		}
	}

	// The path returning to a point it has already passed through
	for a := 0; a < len(passes); a++ {
		for b := a + 1; b < len(passes); b++ {
			first, second := passes[a], passes[b]
			if !PointsEqual(first.at, second.at, eps) || !passesCross(first, second, eps) {
				continue
			}
			result = append(result, Intersection{Point: first.at, SegA: first.index, SegB: second.index})
		}
	}
	return result
}

// Whether the second pass goes from one side of the first to the other. Rays
// lying within eps of the first pass's rays count as touching.
func passesCross(first, second vertexPass, eps float64) bool {
	out := r2.Sub(first.next, first.at)
	in := r2.Sub(first.prev, first.at)
	wedge := ccwAngle(out, in)
	if wedge <= eps/r2.Norm(in) || wedge >= 2*math.Pi-eps/r2.Norm(in) {
		// The first pass doubles back on itself
		return false
	}

	// Which side of the first pass a ray from its vertex lies on, or 0 when
	// it runs along it
	sideOf := func(p Point2) int {
		ray := r2.Sub(p, first.at)
		tolerance := eps / r2.Norm(ray)
		angle := ccwAngle(out, ray)
		if angle <= tolerance || angle >= 2*math.Pi-tolerance || math.Abs(angle-wedge) <= tolerance {
			return 0
		}
		if angle < wedge {
			return 1
		}
		return -1
	}
	return sideOf(second.prev)*sideOf(second.next) < 0
}

// The counterclockwise angle from one direction to another, in [0, 2pi)
func ccwAngle(from, to Point2) float64 {
	angle := math.Atan2(to.Y, to.X) - math.Atan2(from.Y, from.X)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

// Unit normal of the segment a-b, or false for a zero length segment
func unitNormal(a, b Point2) (Point2, bool) {
	d := r2.Sub(b, a)
	length := r2.Norm(d)
	if length == 0 {
		return Point2{}, false
	}
	return Point2{X: -d.Y / length, Y: d.X / length}, true
}

// Which side of a line a point is on: -1, 1, or 0 within eps of the line
func side(origin, normal, p Point2, eps float64) int {
	distance := r2.Dot(r2.Sub(p, origin), normal)
	if math.Abs(distance) <= eps {
		return 0
	}
	if distance < 0 {
		return -1
	}
	return 1
}

func straddles(origin, normal, p1, p2 Point2, eps float64) bool {
	return side(origin, normal, p1, eps)*side(origin, normal, p2, eps) < 0
}

func inUnitInterval(t, eps float64) bool {
	return t >= -eps && t <= 1+eps
}
