// Package kernel turns hull results into the flat arrays a polyhedron
// renderer consumes. The renderer itself lives elsewhere; see kernel/sdfx for
// signed distance solids built from polygon parts.
package kernel

import (
	"github.com/chewxy/math32"
	"github.com/osuushi/polyhull/advanced"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Reverse the winding of every triangle in place. Hull faces wind clockwise
// seen from outside; renderers that expect counter-clockwise front faces
// should flip them.
func (m *Mesh) FlipWinding() {
	for i := 0; i+2 < len(m.Indices); i += 3 {
		m.Indices[i+1], m.Indices[i+2] = m.Indices[i+2], m.Indices[i+1]
	}
}

// Axis aligned bounds of the vertices. An empty mesh has min > max.
func (m *Mesh) Bounds() (min, max [3]float32) {
	for k := 0; k < 3; k++ {
		min[k] = math32.Inf(1)
		max[k] = math32.Inf(-1)
	}
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		for k := 0; k < 3; k++ {
			min[k] = math32.Min(min[k], m.Vertices[i+k])
			max[k] = math32.Max(max[k], m.Vertices[i+k])
		}
	}
	return
}

// Vertex i as a point
func (m *Mesh) Vertex(i uint32) [3]float32 {
	return [3]float32{m.Vertices[3*i], m.Vertices[3*i+1], m.Vertices[3*i+2]}
}

// Total area of the triangles
func (m *Mesh) SurfaceArea() float32 {
	var area float32
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Vertex(m.Indices[i]), m.Vertex(m.Indices[i+1]), m.Vertex(m.Indices[i+2])
		u := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
		v := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
		x := u[1]*v[2] - u[2]*v[1]
		y := u[2]*v[0] - u[0]*v[2]
		z := u[0]*v[1] - u[1]*v[0]
		area += math32.Sqrt(x*x+y*y+z*z) / 2
	}
	return area
}

// Build a mesh from a solid 3D hull. Every input point becomes a vertex, in
// input order, so face indices are unchanged. Each vertex normal is the
// average outward normal of the faces around it; points that aren't on the
// hull get a zero normal.
func MeshFromHull(points []advanced.Point3, hull advanced.Hull3D) (*Mesh, error) {
	if !hull.IsSolid() {
		return nil, errors.Errorf("hull has no faces (%d point path)", len(hull.Path))
	}

	vertices := make([]float32, 0, len(points)*3)
	for _, p := range points {
		vertices = append(vertices, float32(p.X), float32(p.Y), float32(p.Z))
	}

	sums := make([]r3.Vec, len(points))
	indices := make([]uint32, 0, len(hull.Faces)*3)
	for _, face := range hull.Faces {
		for _, i := range face {
			if i < 0 || i >= len(points) {
				return nil, errors.Errorf("face %v refers to point %d of %d", face, i, len(points))
			}
		}
		normal := face.Normal(points)
		for _, i := range face {
			sums[i] = r3.Add(sums[i], normal)
			indices = append(indices, uint32(i))
		}
	}

	return &Mesh{
		Vertices: vertices,
		Normals:  vertexNormals(sums),
		Indices:  indices,
	}, nil
}

// Build a mesh from separate triangles, each wound counter-clockwise seen from
// outside. Corners at the same position share a vertex, whose normal is the
// area weighted average of the triangles around it.
func MeshFromTriangles(triangles [][3]r3.Vec) (*Mesh, error) {
	if len(triangles) == 0 {
		return nil, errors.New("no triangles")
	}

	shared := make(map[[3]float32]uint32)
	var vertices []float32
	var sums []r3.Vec
	indices := make([]uint32, 0, len(triangles)*3)
	for _, tri := range triangles {
		// Twice the triangle's area, pointing out
		normal := r3.Cross(r3.Sub(tri[1], tri[0]), r3.Sub(tri[2], tri[0]))
		for _, corner := range tri {
			key := [3]float32{float32(corner.X), float32(corner.Y), float32(corner.Z)}
			i, ok := shared[key]
			if !ok {
				i = uint32(len(sums))
				shared[key] = i
				vertices = append(vertices, key[:]...)
				sums = append(sums, r3.Vec{})
			}
			sums[i] = r3.Add(sums[i], normal)
			indices = append(indices, i)
		}
	}

	return &Mesh{
		Vertices: vertices,
		Normals:  vertexNormals(sums),
		Indices:  indices,
	}, nil
}

// Flatten summed face normals into unit vertex normals. Zero sums stay zero.
func vertexNormals(sums []r3.Vec) []float32 {
	normals := make([]float32, 0, len(sums)*3)
	for _, sum := range sums {
		if r3.Norm(sum) > 0 {
			sum = r3.Unit(sum)
		}
		normals = append(normals, float32(sum.X), float32(sum.Y), float32(sum.Z))
	}
	return normals
}
