// Package advanced exposes the individual stages behind the top level
// polyhull functions: raw intersection records, split and tagged fragments,
// fragment assembly, and hull containment tests. Every function takes its
// tolerance explicitly.
//
// Failed preconditions (non-finite coordinates, invalid tolerances, polygons
// with too few points) are returned as errors.
package advanced

import "github.com/osuushi/polyhull/internal"

type Point2 = internal.Point2
type Point3 = internal.Point3
type Path = internal.Path
type Polygon = internal.Polygon
type PolygonList = internal.PolygonList
type Intersection = internal.Intersection
type Tag = internal.Tag
type Fragment = internal.Fragment
type Face = internal.Face
type Hull3D = internal.Hull3D
type FillRule = internal.FillRule
type Drawing = internal.Drawing
type GeometryError = internal.GeometryError

const (
	EvenOdd = internal.EvenOdd
	NonZero = internal.NonZero

	Interior = internal.Interior
	Outer    = internal.Outer

	DefaultEpsilon = internal.DefaultEpsilon
	SplitEpsilon   = internal.SplitEpsilon
)

func HandleGeometryPanicRecover(r interface{}) error {
	return internal.HandleGeometryPanicRecover(r)
}

// Deferred directly, so that recover sees the panic
func recoverGeometry(err *error) {
	if recoveredErr := internal.HandleGeometryPanicRecover(recover()); recoveredErr != nil {
		*err = recoveredErr
	}
}

func FillRuleFor(nonzero bool) FillRule {
	return internal.FillRuleFor(nonzero)
}

func ParseFillRule(s string) (FillRule, error) {
	return internal.ParseFillRule(s)
}

// Convert raw coordinate lists into points, checking that they all have the
// same dimension. The dimension is 2 or 3.
func Points(raw [][]float64) (points2 []Point2, points3 []Point3, dim int, err error) {
	defer recoverGeometry(&err)
	dim = internal.Dimension("points", raw)
	if dim == 2 {
		return internal.ToPoints2(raw), nil, dim, nil
	}
	return nil, internal.ToPoints3(raw), dim, nil
}

// Hulls

func Hull2DPath(points []Point2, all bool, eps float64) (result []int, err error) {
	defer recoverGeometry(&err)
	return internal.Hull2DPath(points, all, eps), nil
}

func Hull3DFaces(points []Point3, eps float64) (result Hull3D, err error) {
	defer recoverGeometry(&err)
	return internal.Hull3DFaces(points, eps), nil
}

// The distinct point indices used by a hull, ascending. Works for both the
// index path of a 2D or degenerate hull and the faces of a solid one.
func HullVertices(path []int, faces []Face) []int {
	return internal.HullVertices(path, faces)
}

func PointInHull2(p Point2, points []Point2, hull []int, eps float64) (result bool, err error) {
	defer recoverGeometry(&err)
	internal.CheckEpsilon("point in hull", eps)
	internal.CheckPoints2("point in hull", append([]Point2{p}, points...))
	checkIndices("point in hull", hull, len(points))
	return internal.PointInHull2(p, points, hull, eps), nil
}

func PointInHull3(p Point3, points []Point3, hull Hull3D, eps float64) (result bool, err error) {
	defer recoverGeometry(&err)
	internal.CheckEpsilon("point in hull", eps)
	internal.CheckPoints3("point in hull", append([]Point3{p}, points...))
	checkIndices("point in hull", internal.HullVertices(hull.Path, hull.Faces), len(points))
	return internal.PointInHull3(p, points, hull, eps), nil
}

// Paths

func PathSelfIntersections(path Path, closed bool, eps float64) (result []Intersection, err error) {
	defer recoverGeometry(&err)
	return internal.PathSelfIntersections(path, closed, eps), nil
}

func SplitPathAtSelfCrossings(path Path, closed bool, eps float64) (result []Path, err error) {
	defer recoverGeometry(&err)
	return internal.SplitPathAtSelfCrossings(path, closed, eps), nil
}

// The part of a path between two (segment, parameter) positions. See
// internal.PathSelect for how positions are interpreted.
func PathSelect(path Path, s1 int, u1 float64, s2 int, u2 float64, closed bool) Path {
	return internal.PathSelect(path, s1, u1, s2, u2, closed)
}

// Polygons

func TagSelfCrossingSubpaths(poly Polygon, rule FillRule, eps float64) (result []Fragment, err error) {
	defer recoverGeometry(&err)
	internal.CheckEpsilon("tag subpaths", eps)
	return internal.TagSelfCrossingSubpaths(poly, rule, eps), nil
}

func AssembleFragments(fragments []Path, eps float64) (result PolygonList, err error) {
	defer recoverGeometry(&err)
	return internal.AssembleFragments(fragments, eps), nil
}

func PolygonParts(poly Polygon, rule FillRule, eps float64) (result PolygonList, err error) {
	defer recoverGeometry(&err)
	return internal.PolygonParts(poly, rule, eps), nil
}

// Classify p against a polygon: 1 when filled under the rule, 0 on the
// boundary, -1 outside
func PointInPolygon(p Point2, poly Polygon, rule FillRule, eps float64) (result int, err error) {
	defer recoverGeometry(&err)
	internal.CheckEpsilon("point in polygon", eps)
	internal.CheckPoints2("point in polygon", append([]Point2{p}, poly...))
	return internal.PointInPolygon(p, poly, rule, eps), nil
}

func checkIndices(context string, indices []int, n int) {
	for _, i := range indices {
		if i < 0 || i >= n {
			internal.Fatalf("%s: index %d out of range for %d points", context, i, n)
		}
	}
}
