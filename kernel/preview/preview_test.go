package preview

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/osuushi/polyhull/advanced"
	"github.com/osuushi/polyhull/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cubeMesh(t *testing.T) *kernel.Mesh {
	points := []advanced.Point3{
		{}, {X: 1}, {Y: 1}, {X: 1, Y: 1},
		{Z: 1}, {X: 1, Z: 1}, {Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1},
	}
	hull, err := advanced.Hull3DFaces(points, advanced.DefaultEpsilon)
	require.NoError(t, err)
	mesh, err := kernel.MeshFromHull(points, hull)
	require.NoError(t, err)
	mesh.FlipWinding()
	return mesh
}

func TestSavePNG(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "cube.png")
	require.NoError(t, SavePNG(cubeMesh(t), filename, 64))

	file, err := os.Open(filename)
	require.NoError(t, err)
	defer file.Close()
	img, err := png.Decode(file)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())

	// The cube covers the middle of the image
	r, g, b, _ := img.At(32, 32).RGBA()
	br, bg, bb, _ := background.NRGBA().RGBA()
	assert.NotEqual(t, [3]uint32{br, bg, bb}, [3]uint32{r, g, b})
}

func TestSavePNGErrors(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "out.png")
	assert.EqualError(t, SavePNG(&kernel.Mesh{}, filename, 64), "nothing to render")
	assert.EqualError(t, SavePNG(cubeMesh(t), filename, 0), "invalid size 0")

	broken := &kernel.Mesh{Vertices: []float32{0, 0, 0}, Indices: []uint32{0, 1, 2}}
	assert.EqualError(t, SavePNG(broken, filename, 64), "index 1 out of range for 1 vertices")
}
