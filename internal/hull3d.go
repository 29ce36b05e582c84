package internal

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Convex hull of a 3D point set, built incrementally.
//
// A seed tetrahedron is formed from a non-collinear triple and the first point
// off its plane. Each remaining point, in input order, is tested against the
// current faces. Faces it lies in front of are in conflict; their boundary
// (the horizon) is connected to the new point and the conflicting faces are
// dropped. Points in front of no face are interior and skipped.
//
// Faces wind clockwise when viewed from outside the hull. Coplanar faces are
// not merged. Inputs with fewer than three points, collinear points or
// coplanar points give a Hull3D with only Path set, using the same rules as
// Hull2DPath.
func Hull3DFaces(points []Point3, eps float64) Hull3D {
	CheckEpsilon("hull3d", eps)
	CheckPoints3("hull3d", points)

	if len(points) < 3 {
		path := make([]int, len(points))
		for i := range path {
			path[i] = i
		}
		return Hull3D{Path: path}
	}

	a, b, c, ok := noncollinearTriple(points, eps)
	if !ok {
		return Hull3D{Path: collinearExtremes(points, eps)}
	}

	base := planeThrough(points[a], points[b], points[c])
	d := -1
	for i, p := range points {
		if !Equal(base.distance(p), 0, eps) {
			d = i
			break
		}
	}
	if d < 0 {
		planar := projectToPlane(points, base, points[a], points[b])
		return Hull3D{Path: Hull2DPath(planar, false, eps)}
	}

	// The base face must face away from the fourth point
	if base.distance(points[d]) > 0 {
		b, c = c, b
	}

	h := newIncrementalHull(points, eps)
	h.addFace(Face{a, b, c})
	h.addFace(Face{d, b, a})
	h.addFace(Face{c, d, a})
	h.addFace(Face{b, d, c})

	for i := range points {
		if i == a || i == b || i == c || i == d {
			continue
		}
		h.insert(i)
	}
	return Hull3D{Faces: h.faces}
}

type halfEdge [2]int

func (e halfEdge) reverse() halfEdge {
	return halfEdge{e[1], e[0]}
}

// Working state for the incremental hull. Faces and planes are parallel
// slices.
type incrementalHull struct {
	points []Point3
	eps    float64
	faces  []Face
	planes []plane

	// Scratch, reused between insertions
	conflicts []int
	edges     map[halfEdge]struct{}
	horizon   []halfEdge
}

func newIncrementalHull(points []Point3, eps float64) *incrementalHull {
	return &incrementalHull{
		points: points,
		eps:    eps,
		edges:  make(map[halfEdge]struct{}),
	}
}

func (h *incrementalHull) addFace(face Face) {
	h.faces = append(h.faces, face)
	h.planes = append(h.planes, planeThrough(h.points[face[0]], h.points[face[1]], h.points[face[2]]))
}

// Swap-remove a face. The last face takes its slot.
func (h *incrementalHull) removeFace(i int) {
	last := len(h.faces) - 1
	h.faces[i] = h.faces[last]
	h.planes[i] = h.planes[last]
	h.faces = h.faces[:last]
	h.planes = h.planes[:last]
}

func (h *incrementalHull) insert(pointIndex int) {
	p := h.points[pointIndex]

	h.conflicts = h.conflicts[:0]
	for i, pl := range h.planes {
		if pl.distance(p) > h.eps {
			h.conflicts = append(h.conflicts, i)
		}
	}
	if len(h.conflicts) == 0 {
		return
	}

	// Half edges shared by two conflicting faces appear once in each direction.
	// Whatever is left over is the horizon.
	for edge := range h.edges {
		delete(h.edges, edge)
	}
	for _, i := range h.conflicts {
		face := h.faces[i]
		for k := 0; k < 3; k++ {
			h.edges[halfEdge{face[k], face[(k+1)%3]}] = struct{}{}
		}
	}
	h.horizon = h.horizon[:0]
	for _, i := range h.conflicts {
		face := h.faces[i]
		for k := 0; k < 3; k++ {
			edge := halfEdge{face[k], face[(k+1)%3]}
			if _, internal := h.edges[edge.reverse()]; !internal {
				h.horizon = append(h.horizon, edge)
			}
		}
	}

	// Conflicts are ascending, so removing from the back never moves a face
	// that is still waiting to be removed
	for k := len(h.conflicts) - 1; k >= 0; k-- {
		h.removeFace(h.conflicts[k])
	}
	for _, edge := range h.horizon {
		h.addFace(Face{edge[0], edge[1], pointIndex})
	}
}

// Outward unit normal of a hull face
func (f Face) Normal(points []Point3) Point3 {
	return planeThrough(points[f[0]], points[f[1]], points[f[2]]).normal
}

// Whether p lies inside or on a hull returned by Hull3DFaces. Degenerate hulls
// are tested in their own dimension.
func PointInHull3(p Point3, points []Point3, hull Hull3D, eps float64) bool {
	if !hull.IsSolid() {
		switch len(hull.Path) {
		case 0:
			return false
		case 1:
			return r3.Norm(r3.Sub(p, points[hull.Path[0]])) <= eps
		case 2:
			a, b := points[hull.Path[0]], points[hull.Path[1]]
			ab := r3.Sub(b, a)
			length := r3.Norm(ab)
			if length == 0 {
				return r3.Norm(r3.Sub(p, a)) <= eps
			}
			t := r3.Dot(r3.Sub(p, a), ab) / (length * length)
			return t >= -eps && t <= 1+eps && distanceToLine(r3.Sub(p, a), r3.Scale(1/length, ab)) <= eps
		}
		// Planar polygon: on the plane, and inside the projected hull
		base := planeThrough(points[hull.Path[0]], points[hull.Path[1]], points[hull.Path[2]])
		if !Equal(base.distance(p), 0, eps) {
			return false
		}
		projected := projectToPlane(append([]Point3{p}, points...), base, points[hull.Path[0]], points[hull.Path[1]])
		shifted := make([]int, len(hull.Path))
		for i, index := range hull.Path {
			shifted[i] = index + 1
		}
		return pointInEitherWinding(projected[0], projected, shifted, eps)
	}
	for _, face := range hull.Faces {
		pl := planeThrough(points[face[0]], points[face[1]], points[face[2]])
		if pl.distance(p) > eps {
			return false
		}
	}
	return true
}

// The planar case projects with an arbitrary frame, so the hull can come out
// either way round
func pointInEitherWinding(p Point2, points []Point2, hull []int, eps float64) bool {
	if PointInHull2(p, points, hull, eps) {
		return true
	}
	reversed := make([]int, len(hull))
	for i, index := range hull {
		reversed[len(hull)-1-i] = index
	}
	return PointInHull2(p, points, reversed, eps)
}
