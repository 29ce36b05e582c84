// Package preview renders meshes to PNG images with a software rasterizer, for
// looking at 3D hulls and extruded parts without a viewer.
package preview

import (
	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/osuushi/polyhull/kernel"
	"github.com/pkg/errors"
)

const (
	// Rendered at this multiple of the output size and downsampled, for
	// antialiasing
	supersample = 2
	fovy        = 30
	near, far   = 1, 20
)

var (
	eye        = fauxgl.V(3, -4, 3)
	center     = fauxgl.V(0, 0, 0)
	up         = fauxgl.V(0, 0, 1)
	light      = fauxgl.V(-0.75, -1, 0.5).Normalize()
	background = fauxgl.HexColor("#FFF8E3")
	color      = fauxgl.HexColor("#468966")
)

// Convert to a fauxgl mesh, scaled to fit a bi-unit cube. Triangles must wind
// counter-clockwise seen from outside.
func toFauxgl(m *kernel.Mesh) *fauxgl.Mesh {
	vertex := func(i uint32) fauxgl.Vector {
		v := m.Vertex(i)
		return fauxgl.V(float64(v[0]), float64(v[1]), float64(v[2]))
	}
	triangles := make([]*fauxgl.Triangle, 0, m.TriangleCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		triangles = append(triangles, fauxgl.NewTriangleForPoints(
			vertex(m.Indices[i]), vertex(m.Indices[i+1]), vertex(m.Indices[i+2]),
		))
	}
	mesh := fauxgl.NewTriangleMesh(triangles)
	mesh.BiUnitCube()
	return mesh
}

// Render a mesh to a size by size PNG
func SavePNG(m *kernel.Mesh, filename string, size int) error {
	if m.TriangleCount() == 0 {
		return errors.New("nothing to render")
	}
	if size <= 0 {
		return errors.Errorf("invalid size %d", size)
	}
	for _, index := range m.Indices {
		if int(index) >= m.VertexCount() {
			return errors.Errorf("index %d out of range for %d vertices", index, m.VertexCount())
		}
	}

	context := fauxgl.NewContext(size*supersample, size*supersample)
	context.ClearColorBufferWith(background)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, 1, near, far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	context.DrawMesh(toFauxgl(m))

	image := resize.Resize(uint(size), uint(size), context.Image(), resize.Bilinear)
	return errors.Wrapf(fauxgl.SavePNG(filename, image), "saving %s", filename)
}
