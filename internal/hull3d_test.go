package internal

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestHull3DDegenerate(t *testing.T) {
	t.Run("fewer than three points", func(t *testing.T) {
		assert.Equal(t, Hull3D{Path: []int{}}, Hull3DFaces(nil, DefaultEpsilon))
		assert.Equal(t, Hull3D{Path: []int{0}}, Hull3DFaces([]Point3{{X: 1}}, DefaultEpsilon))
		assert.Equal(t, Hull3D{Path: []int{0, 1}}, Hull3DFaces([]Point3{{X: 1}, {Y: 1}}, DefaultEpsilon))
	})

	t.Run("collinear", func(t *testing.T) {
		points := []Point3{{X: 1, Y: 1, Z: 1}, {}, {X: 3, Y: 3, Z: 3}, {X: 2, Y: 2, Z: 2}}
		hull := Hull3DFaces(points, DefaultEpsilon)
		assert.False(t, hull.IsSolid())
		assert.ElementsMatch(t, []int{1, 2}, hull.Path)
	})

	t.Run("coincident", func(t *testing.T) {
		points := []Point3{{X: 1, Y: 2, Z: 3}, {X: 1, Y: 2, Z: 3}, {X: 1, Y: 2, Z: 3}}
		assert.Equal(t, Hull3D{Path: []int{0}}, Hull3DFaces(points, DefaultEpsilon))
	})

	t.Run("coplanar", func(t *testing.T) {
		// A tilted square with points inside and on its edges
		var points []Point3
		for _, xy := range [][2]float64{{1, 1}, {0, 0}, {2, 0}, {0.5, 1.5}, {2, 2}, {1, 0}, {0, 2}} {
			points = append(points, Point3{X: xy[0], Y: xy[1], Z: xy[0] + 2*xy[1]})
		}
		hull := Hull3DFaces(points, DefaultEpsilon)
		assert.False(t, hull.IsSolid())
		assert.ElementsMatch(t, []int{1, 2, 4, 6}, hull.Path)

		for i, p := range points {
			assert.True(t, PointInHull3(p, points, hull, 1e-9), "point %d is outside the hull", i)
		}
		assert.False(t, PointInHull3(Point3{X: 1, Y: 1, Z: 4}, points, hull, 1e-9))
		assert.False(t, PointInHull3(Point3{X: 3, Y: 1, Z: 5}, points, hull, 1e-9))
	})
}

func TestHull3DCube(t *testing.T) {
	points := []Point3{
		{X: 0.5, Y: 0.5, Z: 0.5},
		{X: 0.2, Y: 0.7, Z: 0.4},
	}
	for i := 0; i < 8; i++ {
		points = append(points, Point3{X: float64(i & 1), Y: float64(i >> 1 & 1), Z: float64(i >> 2 & 1)})
	}
	points = append(points, Point3{X: 0.9, Y: 0.1, Z: 0.3})

	hull := Hull3DFaces(points, DefaultEpsilon)
	require.True(t, hull.IsSolid())
	assert.Len(t, hull.Faces, 12)
	assert.Equal(t, []int{2, 3, 4, 5, 6, 7, 8, 9}, HullVertices(hull.Path, hull.Faces))
	assertClosedSurface(t, points, hull)

	// Face normals are axis aligned and point away from the center
	center := Point3{X: 0.5, Y: 0.5, Z: 0.5}
	for _, face := range hull.Faces {
		normal := face.Normal(points)
		outward := r3.Sub(points[face[0]], center)
		assert.Greater(t, r3.Dot(normal, outward), 0.0, "face %v points inward", face)
		assert.InDelta(t, 1, r3.Norm(normal), 1e-12)
		assert.InDelta(t, 1, maxAbs(normal), 1e-12, "face %v is not on a cube side", face)
	}

	assert.True(t, PointInHull3(center, points, hull, DefaultEpsilon))
	assert.True(t, PointInHull3(Point3{X: 1, Y: 0.5, Z: 0.5}, points, hull, DefaultEpsilon))
	assert.False(t, PointInHull3(Point3{X: 1.01, Y: 0.5, Z: 0.5}, points, hull, DefaultEpsilon))
}

func TestHull3DSeedOrientation(t *testing.T) {
	// The fourth point is on either side of the seed triangle
	for _, z := range []float64{1, -1} {
		t.Run(fmt.Sprintf("apex at z=%g", z), func(t *testing.T) {
			points := []Point3{{}, {X: 1}, {Y: 1}, {Z: z}}
			hull := Hull3DFaces(points, DefaultEpsilon)
			require.Len(t, hull.Faces, 4)
			assertClosedSurface(t, points, hull)
		})
	}
}

func TestHull3DRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	t.Run("points on a sphere", func(t *testing.T) {
		points := make([]Point3, 100)
		for i := range points {
			points[i] = r3.Unit(Point3{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()})
		}
		hull := Hull3DFaces(points, DefaultEpsilon)
		require.True(t, hull.IsSolid())

		// Every point is extreme, and a triangulated sphere has 2V-4 faces
		assert.Len(t, HullVertices(nil, hull.Faces), len(points))
		assert.Len(t, hull.Faces, 2*len(points)-4)
		assertClosedSurface(t, points, hull)
	})

	for trial := 0; trial < 20; trial++ {
		t.Run(fmt.Sprintf("points in a box, trial %d", trial), func(t *testing.T) {
			points := make([]Point3, 4+rng.Intn(80))
			for i := range points {
				points[i] = Point3{X: rng.Float64() * 10, Y: rng.Float64() * 5, Z: rng.Float64()}
			}
			hull := Hull3DFaces(points, DefaultEpsilon)
			require.True(t, hull.IsSolid())
			assertClosedSurface(t, points, hull)

			for _, extreme := range axisExtremes3(points) {
				assert.Contains(t, HullVertices(nil, hull.Faces), extreme)
			}

			// Hulling the hull keeps every vertex
			vertices := HullVertices(nil, hull.Faces)
			subset := make([]Point3, len(vertices))
			for i, index := range vertices {
				subset[i] = points[index]
			}
			again := Hull3DFaces(subset, DefaultEpsilon)
			assert.Len(t, HullVertices(nil, again.Faces), len(vertices))
			assert.Len(t, again.Faces, len(hull.Faces))
		})
	}
}

// Helpers

// Check that every point is on or behind every face, and that each edge is
// shared by exactly two faces running in opposite directions
func assertClosedSurface(t *testing.T, points []Point3, hull Hull3D) {
	t.Helper()
	edges := make(map[halfEdge]int)
	for _, face := range hull.Faces {
		for k := 0; k < 3; k++ {
			edges[halfEdge{face[k], face[(k+1)%3]}]++
		}
		pl := planeThrough(points[face[0]], points[face[1]], points[face[2]])
		assert.NotEqual(t, plane{}, pl, "face %v is degenerate", face)
		for i, p := range points {
			assert.LessOrEqual(t, pl.distance(p), 1e-9, "point %d is in front of face %v", i, face)
		}
	}
	for edge, count := range edges {
		assert.Equal(t, 1, count, "edge %v is repeated", edge)
		assert.Equal(t, 1, edges[edge.reverse()], "edge %v has no twin", edge)
	}

	// Euler characteristic of a sphere
	vertices := len(HullVertices(nil, hull.Faces))
	assert.Equal(t, 2, vertices-len(edges)/2+len(hull.Faces))
}

func axisExtremes3(points []Point3) []int {
	var result []int
	for _, coord := range []func(Point3) float64{
		func(p Point3) float64 { return p.X },
		func(p Point3) float64 { return p.Y },
		func(p Point3) float64 { return p.Z },
	} {
		minIndex, maxIndex := 0, 0
		for i, p := range points {
			if coord(p) < coord(points[minIndex]) {
				minIndex = i
			}
			if coord(p) > coord(points[maxIndex]) {
				maxIndex = i
			}
		}
		result = append(result, minIndex, maxIndex)
	}
	return result
}

func maxAbs(v Point3) float64 {
	result := 0.0
	for _, c := range []float64{v.X, v.Y, v.Z} {
		if c < 0 {
			c = -c
		}
		if c > result {
			result = c
		}
	}
	return result
}
