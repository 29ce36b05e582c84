package kernel

import (
	"testing"

	"github.com/osuushi/polyhull/advanced"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// --- Mesh helper method tests ---

func TestMeshCounts(t *testing.T) {
	tests := []struct {
		name      string
		mesh      Mesh
		vertices  int
		triangles int
		empty     bool
	}{
		{"empty", Mesh{}, 0, 0, true},
		{"one vertex", Mesh{Vertices: []float32{1, 2, 3}}, 1, 0, false},
		{"two triangles", Mesh{
			Vertices: []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0},
			Indices:  []uint32{0, 1, 2, 2, 3, 0},
		}, 4, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.vertices, tt.mesh.VertexCount())
			assert.Equal(t, tt.triangles, tt.mesh.TriangleCount())
			assert.Equal(t, tt.empty, tt.mesh.IsEmpty())
		})
	}
}

func TestFlipWinding(t *testing.T) {
	m := &Mesh{Indices: []uint32{0, 1, 2, 2, 3, 0}}
	m.FlipWinding()
	assert.Equal(t, []uint32{0, 2, 1, 2, 0, 3}, m.Indices)
}

func TestEmptyMeshBounds(t *testing.T) {
	min, max := (&Mesh{}).Bounds()
	for k := 0; k < 3; k++ {
		assert.Greater(t, min[k], max[k])
	}
	assert.Zero(t, (&Mesh{}).SurfaceArea())
}

func TestMeshFromHull(t *testing.T) {
	points := []advanced.Point3{
		{X: 0.5, Y: 0.5, Z: 0.5},
		{}, {X: 1}, {Y: 1}, {X: 1, Y: 1},
		{Z: 1}, {X: 1, Z: 1}, {Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1},
	}
	hull, err := advanced.Hull3DFaces(points, advanced.DefaultEpsilon)
	require.NoError(t, err)

	mesh, err := MeshFromHull(points, hull)
	require.NoError(t, err)
	assert.Equal(t, len(points), mesh.VertexCount())
	assert.Equal(t, 12, mesh.TriangleCount())
	assert.Len(t, mesh.Normals, len(mesh.Vertices))

	// The interior point has no faces, so no normal
	assert.Equal(t, []float32{0, 0, 0}, mesh.Normals[0:3])

	// Corner normals point away from the cube
	for i := 1; i < len(points); i++ {
		normal := mesh.Normals[i*3 : i*3+3]
		corner := mesh.Vertices[i*3 : i*3+3]
		var dot float32
		for k := 0; k < 3; k++ {
			dot += normal[k] * (corner[k] - 0.5)
		}
		assert.Greater(t, dot, float32(0), "corner %d", i)
	}

	// A unit cube
	min, max := mesh.Bounds()
	assert.Equal(t, [3]float32{0, 0, 0}, min)
	assert.Equal(t, [3]float32{1, 1, 1}, max)
	assert.InDelta(t, 6, mesh.SurfaceArea(), 1e-5)

	t.Run("degenerate hull", func(t *testing.T) {
		_, err := MeshFromHull(points, advanced.Hull3D{Path: []int{1, 2}})
		assert.EqualError(t, err, "hull has no faces (2 point path)")
	})

	t.Run("bad index", func(t *testing.T) {
		_, err := MeshFromHull(points[:3], hull)
		assert.Error(t, err)
	})
}

func TestMeshFromTriangles(t *testing.T) {
	t.Run("shared corners", func(t *testing.T) {
		square := [][3]r3.Vec{
			{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
			{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
		}
		mesh, err := MeshFromTriangles(square)
		require.NoError(t, err)
		assert.Equal(t, 4, mesh.VertexCount())
		assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, mesh.Indices)
		for i := 0; i < mesh.VertexCount(); i++ {
			assert.Equal(t, []float32{0, 0, 1}, mesh.Normals[3*i:3*i+3])
		}
		assert.InDelta(t, 1, mesh.SurfaceArea(), 1e-6)
	})

	t.Run("no triangles", func(t *testing.T) {
		_, err := MeshFromTriangles(nil)
		assert.EqualError(t, err, "no triangles")
	})
}
