// Convex hulls and self-intersecting polygon decomposition for Go.
//
// This package computes 2D and 3D convex hulls of unordered point sets, finds
// the self-crossings of a path, cuts a path at those crossings, and breaks a
// self-intersecting polygon into simple polygons that fill the same region
// under the nonzero or even-odd rule.
//
// Hull results are indices into the input points, so callers can render them
// against the same point array. Every function takes an optional tolerance;
// see the advanced package for the individual stages.
package polyhull

import (
	"github.com/osuushi/polyhull/advanced"
	"github.com/pkg/errors"
)

type Point2 = advanced.Point2
type Point3 = advanced.Point3
type Path = advanced.Path
type Polygon = advanced.Polygon
type PolygonList = advanced.PolygonList
type Intersection = advanced.Intersection
type Face = advanced.Face
type Hull3D = advanced.Hull3D

const (
	DefaultEpsilon = advanced.DefaultEpsilon
	SplitEpsilon   = advanced.SplitEpsilon
)

// Result of Hull. A 2D input, or a degenerate 3D one, sets Path. A solid 3D
// hull sets Faces.
type HullResult struct {
	Dimension int
	Path      []int
	Faces     []Face
}

// Hull of raw points, all with 2 or all with 3 coordinates. The dimension is
// taken from the first point.
func Hull(points [][]float64, eps ...float64) (HullResult, error) {
	tolerance, err := pickTolerance(eps, DefaultEpsilon)
	if err != nil {
		return HullResult{}, err
	}
	points2, points3, dim, err := advanced.Points(points)
	if err != nil {
		return HullResult{}, err
	}
	if dim == 2 {
		path, err := advanced.Hull2DPath(points2, false, tolerance)
		return HullResult{Dimension: 2, Path: path}, err
	}
	hull, err := advanced.Hull3DFaces(points3, tolerance)
	return HullResult{Dimension: 3, Path: hull.Path, Faces: hull.Faces}, err
}

// Indices of the 2D hull, counter-clockwise from the lowest point. With all
// set, points on hull edges are included.
func Hull2DPath(points []Point2, all bool, eps ...float64) ([]int, error) {
	tolerance, err := pickTolerance(eps, DefaultEpsilon)
	if err != nil {
		return nil, err
	}
	return advanced.Hull2DPath(points, all, tolerance)
}

// Triangular faces of the 3D hull, clockwise when seen from outside.
// Degenerate inputs give an index path instead; see Hull3D.
func Hull3DFaces(points []Point3, eps ...float64) (Hull3D, error) {
	tolerance, err := pickTolerance(eps, DefaultEpsilon)
	if err != nil {
		return Hull3D{}, err
	}
	return advanced.Hull3DFaces(points, tolerance)
}

func PathSelfIntersections(path Path, closed bool, eps ...float64) ([]Intersection, error) {
	tolerance, err := pickTolerance(eps, DefaultEpsilon)
	if err != nil {
		return nil, err
	}
	return advanced.PathSelfIntersections(path, closed, tolerance)
}

// Cut a path at its self-crossings. The default tolerance is SplitEpsilon.
func SplitPathAtSelfCrossings(path Path, closed bool, eps ...float64) ([]Path, error) {
	tolerance, err := pickTolerance(eps, SplitEpsilon)
	if err != nil {
		return nil, err
	}
	return advanced.SplitPathAtSelfCrossings(path, closed, tolerance)
}

// Simple polygons covering the region a possibly self-intersecting polygon
// fills under the nonzero rule (or even-odd, when nonzero is false). Holes are
// returned as separate loops inside the loop around them.
func PolygonParts(poly Polygon, nonzero bool, eps ...float64) (PolygonList, error) {
	tolerance, err := pickTolerance(eps, DefaultEpsilon)
	if err != nil {
		return nil, err
	}
	return advanced.PolygonParts(poly, advanced.FillRuleFor(nonzero), tolerance)
}

func pickTolerance(eps []float64, fallback float64) (float64, error) {
	switch len(eps) {
	case 0:
		return fallback, nil
	case 1:
		return eps[0], nil
	}
	return 0, errors.Errorf("expected at most one tolerance, got %d", len(eps))
}
