package internal

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawingSavePNG(t *testing.T) {
	star := Pentagram()
	drawing := Drawing{
		Polygons: PolygonParts(star, EvenOdd, DefaultEpsilon),
		Paths:    SplitPathAtSelfCrossings(Path(star), true, SplitEpsilon),
	}
	for _, crossing := range PathSelfIntersections(Path(star), true, DefaultEpsilon) {
		drawing.Points = append(drawing.Points, crossing.Point)
	}

	filename := filepath.Join(t.TempDir(), "pentagram.png")
	require.NoError(t, drawing.SavePNG(filename, 10))

	file, err := os.Open(filename)
	require.NoError(t, err)
	defer file.Close()
	config, err := png.DecodeConfig(file)
	require.NoError(t, err)
	assert.Greater(t, config.Width, 2*drawPadding)
	assert.Greater(t, config.Height, 2*drawPadding)
}

func TestDrawingErrors(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "nothing.png")
	assert.EqualError(t, Drawing{}.SavePNG(filename, 10), "nothing to draw")

	drawing := Drawing{Points: []Point2{{X: 1, Y: 1}}}
	assert.EqualError(t, drawing.SavePNG(filename, 0), "invalid scale 0")

	err := drawing.SavePNG(filepath.Join(t.TempDir(), "missing", "dot.png"), 1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "saving ")
}
