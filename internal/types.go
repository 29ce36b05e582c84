package internal

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

type Point2 = r2.Vec
type Point3 = r3.Vec

// An ordered list of points. Whether a path is closed is never inferred from
// its points; every operation that cares takes an explicit closed flag.
type Path []Point2

// A closed path. The closing edge from the last point back to the first is
// implicit, so the first point is never repeated at the end.
type Polygon []Point2

type PolygonList []Polygon

// A crossing between two non-adjacent segments of a path. Segment i runs from
// point i to point i+1 (wrapping for closed paths). SegA is always less than
// SegB.
type Intersection struct {
	Point  Point2
	SegA   int
	ParamA float64
	SegB   int
	ParamB float64
}

type Tag string

const (
	// Both sides of the fragment are filled, so it lies inside the region
	Interior Tag = "I"
	// The fragment bounds the filled region and is kept for assembly
	Outer Tag = "O"
)

// A piece of a polygon between two consecutive cut points
type Fragment struct {
	Tag  Tag
	Path Path
}

// A triangular face of a 3D hull, as indices into the input points
type Face [3]int

// Result of a 3D hull. Degenerate inputs (fewer than three points, collinear
// or coplanar sets) produce a flat index path and no faces. Everything else
// produces a closed triangulated surface.
type Hull3D struct {
	Path  []int
	Faces []Face
}

// Whether the hull is a polyhedron rather than a degenerate path
func (h Hull3D) IsSolid() bool {
	return len(h.Faces) > 0
}

func (i Intersection) String() string {
	return fmt.Sprintf("[%v seg %d@%.4f x seg %d@%.4f]", fmtPoint(i.Point), i.SegA, i.ParamA, i.SegB, i.ParamB)
}

func (f Fragment) String() string {
	return fmt.Sprintf("%s%s", f.Tag, f.Path)
}

func (p Path) String() string {
	return fmtPoints(p)
}

func (p Polygon) String() string {
	return fmtPoints(p)
}

func fmtPoint(p Point2) string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

func fmtPoints(points []Point2) string {
	var b strings.Builder
	b.WriteString("[")
	for i, p := range points {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(fmtPoint(p))
	}
	b.WriteString("]")
	return b.String()
}
