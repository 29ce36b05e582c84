package internal

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Intersection of the infinite lines through a1-a2 and b1-b2. The returned
// parameters locate the point along each segment, so 0 and 1 are the segment
// endpoints. Lines that are parallel within eps (scaled by the segment
// lengths) have no intersection.
func LineIntersection(a1, a2, b1, b2 Point2, eps float64) (point Point2, tA, tB float64, ok bool) {
	da := r2.Sub(a1, a2)
	db := r2.Sub(b1, b2)
	denominator := r2.Cross(da, db)
	if math.Abs(denominator) <= eps*r2.Norm(da)*r2.Norm(db) || denominator == 0 {
		return Point2{}, 0, 0, false
	}
	d := r2.Sub(a1, b1)
	tA = r2.Cross(d, db) / denominator
	tB = r2.Cross(d, da) / denominator
	return Lerp(a1, a2, tA), tA, tB, true
}

func DistanceToSegment(p, a, b Point2) float64 {
	ab := r2.Sub(b, a)
	lengthSquared := r2.Norm2(ab)
	if lengthSquared == 0 {
		return r2.Norm(r2.Sub(p, a))
	}
	t := r2.Dot(r2.Sub(p, a), ab) / lengthSquared
	t = math.Max(0, math.Min(1, t))
	return r2.Norm(r2.Sub(p, Lerp(a, b, t)))
}

func PointOnSegment(p, a, b Point2, eps float64) bool {
	return DistanceToSegment(p, a, b) <= eps
}

// Winding number of the polygon around p. Counter-clockwise loops count
// positive.
func WindingNumber(p Point2, poly Polygon) int {
	winding := 0
	n := len(poly)
	for i := range poly {
		p0 := r2.Sub(poly[i], p)
		p1 := r2.Sub(poly[CircularIndex(i+1, n)], p)
		if p0.Y <= 0 {
			if p1.Y > 0 && r2.Cross(p0, r2.Sub(p1, p0)) > 0 {
				winding++
			}
		} else if p1.Y <= 0 && r2.Cross(p0, r2.Sub(p1, p0)) < 0 {
			winding--
		}
	}
	return winding
}

// Classify a point against a polygon under a fill rule. Returns 1 if the
// point is filled, 0 if it is within eps of the boundary, and -1 otherwise.
// The polygon may self-intersect.
func PointInPolygon(p Point2, poly Polygon, rule FillRule, eps float64) int {
	n := len(poly)
	for i := range poly {
		a, b := poly[i], poly[CircularIndex(i+1, n)]
		if PointsEqual(a, b, eps) {
			continue
		}
		if PointOnSegment(p, a, b, eps) {
			return 0
		}
	}
	if rule.Fills(WindingNumber(p, poly)) {
		return 1
	}
	return -1
}

// Shoelace area, positive for counter-clockwise polygons
func (poly Polygon) SignedArea() float64 {
	if len(poly) < 3 {
		return 0
	}
	var sum float64
	origin := poly[0]
	for i := 1; i < len(poly)-1; i++ {
		sum += r2.Cross(r2.Sub(poly[i], origin), r2.Sub(poly[i+1], origin))
	}
	return sum / 2
}

func (poly Polygon) Area() float64 {
	return math.Abs(poly.SignedArea())
}

func (poly Polygon) IsCCW() bool {
	return poly.SignedArea() > 0
}

func (poly Polygon) Reverse() Polygon {
	result := make(Polygon, len(poly))
	for i, p := range poly {
		result[len(poly)-1-i] = p
	}
	return result
}

// Whether p is filled by the polygon under the rule, with boundary points
// counting as inside
func (poly Polygon) Contains(p Point2, rule FillRule, eps float64) bool {
	return PointInPolygon(p, poly, rule, eps) >= 0
}

// Even-odd containment across the whole list. Polygon parts come back with
// holes as separate loops nested inside their outer loop, so a point is in the
// region when an odd number of the polygons wind around it.
func (list PolygonList) ContainsPointByEvenOdd(p Point2) bool {
	count := 0
	for _, poly := range list {
		if WindingNumber(p, poly) != 0 {
			count++
		}
	}
	return count%2 == 1
}

// How many of the other polygons each polygon sits inside. For polygon parts,
// even depths are filled loops and odd depths are holes.
func (list PolygonList) NestingDepths() []int {
	result := make([]int, len(list))
	for i, poly := range list {
		probe, ok := poly.interiorProbe()
		if !ok {
			continue
		}
		for j, other := range list {
			if i != j && WindingNumber(probe, other) != 0 {
				result[i]++
			}
		}
	}
	return result
}

// A point just inside a simple polygon, next to the middle of its first edge
func (poly Polygon) interiorProbe() (Point2, bool) {
	if len(poly) < 3 {
		return Point2{}, false
	}
	a, b := poly[0], poly[1]
	edge := r2.Sub(b, a)
	inward := r2.Scale(probeFraction, Point2{X: -edge.Y, Y: edge.X})
	if !poly.IsCCW() {
		inward = r2.Scale(-1, inward)
	}
	return r2.Add(Lerp(a, b, 0.5), inward), true
}

func (list PolygonList) Area() float64 {
	var total float64
	for _, poly := range list {
		total += poly.Area()
	}
	return total
}

func (path Path) Reverse() Path {
	return Path(Polygon(path).Reverse())
}

func (path Path) First() Point2 {
	return path[0]
}

func (path Path) Last() Point2 {
	return path[len(path)-1]
}

// Whether the path's last point coincides with its first
func IsClosedPath(path Path, eps float64) bool {
	return len(path) > 1 && PointsEqual(path.First(), path.Last(), eps)
}

// Drop consecutive points that are equal within eps. For closed paths, a last
// point equal to the first is dropped too.
func Deduplicate(path Path, closed bool, eps float64) Path {
	result := make(Path, 0, len(path))
	for _, p := range path {
		if len(result) > 0 && PointsEqual(result.Last(), p, eps) {
			continue
		}
		result = append(result, p)
	}
	if closed && len(result) > 1 && PointsEqual(result.First(), result.Last(), eps) {
		result = result[:len(result)-1]
	}
	return result
}

// Drop the trailing repeat of the first point, if present
func Unwrap(path Path, eps float64) Path {
	if IsClosedPath(path, eps) {
		return path[:len(path)-1]
	}
	return path
}

// Oriented plane through three points. The normal is cross(c-a, b-a), so it
// points toward the side from which a, b, c appear clockwise.
type plane struct {
	normal Point3
	offset float64
}

func planeThrough(a, b, c Point3) plane {
	normal := r3.Cross(r3.Sub(c, a), r3.Sub(b, a))
	length := r3.Norm(normal)
	if length == 0 {
		// Degenerate triangle. A zero plane puts every point on it.
		return plane{}
	}
	normal = r3.Scale(1/length, normal)
	return plane{normal: normal, offset: r3.Dot(normal, a)}
}

// Signed distance from the plane, positive in front
func (pl plane) distance(p Point3) float64 {
	return r3.Dot(pl.normal, p) - pl.offset
}

// Distance of d from the line through the origin with unit direction n
func distanceToLine(d, n Point3) float64 {
	return r3.Norm(r3.Sub(d, r3.Scale(r3.Dot(d, n), n)))
}

func farthestFrom(origin Point3, points []Point3) int {
	best, bestDistance := 0, -1.0
	for i, p := range points {
		distance := r3.Norm(r3.Sub(p, origin))
		if distance > bestDistance {
			best, bestDistance = i, distance
		}
	}
	return best
}

// Find three points that are not collinear within eps. The first is always
// index 0, the second the point farthest from it, and the third the point
// farthest from the line through those two.
func noncollinearTriple(points []Point3, eps float64) (a, b, c int, ok bool) {
	if len(points) < 3 {
		return 0, 0, 0, false
	}
	pa := points[0]
	b = farthestFrom(pa, points)
	length := r3.Norm(r3.Sub(points[b], pa))
	if length <= eps {
		return 0, 0, 0, false
	}
	direction := r3.Scale(1/length, r3.Sub(points[b], pa))
	c, best := 0, -1.0
	for i, p := range points {
		distance := distanceToLine(r3.Sub(p, pa), direction)
		if distance > best {
			c, best = i, distance
		}
	}
	if best < eps*length {
		return 0, 0, 0, false
	}
	return 0, b, c, true
}

// Indices of the two extreme points of a collinear set, by projection onto the
// direction from the first point to the point farthest from it. A set of
// coincident points reduces to the first index.
func collinearExtremes(points []Point3, eps float64) []int {
	pa := points[0]
	far := farthestFrom(pa, points)
	direction := r3.Sub(points[far], pa)
	if r3.Norm(direction) <= eps {
		return []int{0}
	}
	minIndex, maxIndex := 0, 0
	minValue, maxValue := math.Inf(1), math.Inf(-1)
	for i, p := range points {
		value := r3.Dot(r3.Sub(p, pa), direction)
		if value < minValue {
			minIndex, minValue = i, value
		}
		if value > maxValue {
			maxIndex, maxValue = i, value
		}
	}
	return []int{minIndex, maxIndex}
}

func lift(points []Point2) []Point3 {
	result := make([]Point3, len(points))
	for i, p := range points {
		result[i] = Point3{X: p.X, Y: p.Y}
	}
	return result
}

// Express coplanar points in 2D coordinates of their plane. The 2D frame is
// right-handed when viewed from the front of the plane.
func projectToPlane(points []Point3, pl plane, origin, toward Point3) []Point2 {
	u := r3.Unit(r3.Sub(toward, origin))
	v := r3.Cross(pl.normal, u)
	result := make([]Point2, len(points))
	for i, p := range points {
		d := r3.Sub(p, origin)
		result[i] = Point2{X: r3.Dot(d, u), Y: r3.Dot(d, v)}
	}
	return result
}
