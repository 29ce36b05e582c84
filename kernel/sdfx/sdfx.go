// Package sdfx builds github.com/deadsy/sdfx signed distance solids from
// polygon parts, so decomposed polygons can be combined with other CSG
// geometry and meshed.
package sdfx

import (
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/osuushi/polyhull/advanced"
	"github.com/osuushi/polyhull/kernel"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 200

// Region combines polygon parts into a single 2D signed distance field. Parts
// are nested the way PolygonParts returns them: a loop inside an odd number of
// other loops is a hole.
func Region(parts advanced.PolygonList) (sdf.SDF2, error) {
	if len(parts) == 0 {
		return nil, errors.New("no polygon parts")
	}

	depths := parts.NestingDepths()
	maxDepth := 0
	for _, depth := range depths {
		if depth > maxDepth {
			maxDepth = depth
		}
	}

	// Loops at each depth are disjoint, so each level is a plain union.
	// Alternate adding and cutting, from the outside in.
	levels := make([][]sdf.SDF2, maxDepth+1)
	for i, part := range parts {
		s, err := polygon(part)
		if err != nil {
			return nil, errors.Wrapf(err, "part %d", i)
		}
		levels[depths[i]] = append(levels[depths[i]], s)
	}

	var region sdf.SDF2
	for depth, level := range levels {
		if len(level) == 0 {
			continue
		}
		layer := sdf.Union2D(level...)
		switch {
		case region == nil:
			region = layer
		case depth%2 == 0:
			region = sdf.Union2D(region, layer)
		default:
			region = sdf.Difference2D(region, layer)
		}
	}
	return region, nil
}

func polygon(poly advanced.Polygon) (sdf.SDF2, error) {
	vertices := make([]v2.Vec, len(poly))
	for i, p := range poly {
		vertices[i] = v2.Vec{X: p.X, Y: p.Y}
	}
	return sdf.Polygon2D(vertices)
}

// Contains reports whether p is strictly inside the region.
func Contains(region sdf.SDF2, p advanced.Point2) bool {
	return region.Evaluate(v2.Vec{X: p.X, Y: p.Y}) < 0
}

// Extrude a region to a solid of the given height, centered on z=0.
func Extrude(region sdf.SDF2, height float64) (sdf.SDF3, error) {
	if height <= 0 {
		return nil, errors.Errorf("invalid extrusion height %v", height)
	}
	return sdf.Extrude3D(region, height), nil
}

// ToMesh converts a solid to a triangle mesh using marching cubes. Cells is
// the resolution along the longest side; zero means the default.
func ToMesh(s sdf.SDF3, cells int) (*kernel.Mesh, error) {
	if cells <= 0 {
		cells = defaultMeshCells
	}
	triangles := render.ToTriangles(s, render.NewMarchingCubesUniform(cells))
	if len(triangles) == 0 {
		return nil, errors.New("solid produced no triangles")
	}

	corners := make([][3]r3.Vec, len(triangles))
	for i, tri := range triangles {
		for j := range corners[i] {
			corners[i][j] = r3.Vec{X: tri[j].X, Y: tri[j].Y, Z: tri[j].Z}
		}
	}
	return kernel.MeshFromTriangles(corners)
}
