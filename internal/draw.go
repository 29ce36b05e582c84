package internal

import (
	"math"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
)

// Padding around the shape, in pixels
const drawPadding = 40

// Things to draw for debugging. Polygons are filled with one colour each, paths
// are stroked, and points are drawn as dots.
type Drawing struct {
	Polygons PolygonList
	Paths    []Path
	Points   []Point2
}

// Fill colours, cycled through by polygon index
var DrawPalette = [][3]float64{
	{0.90, 0.30, 0.25},
	{0.25, 0.60, 0.90},
	{0.35, 0.80, 0.35},
	{0.95, 0.75, 0.20},
	{0.70, 0.40, 0.85},
	{0.20, 0.80, 0.80},
}

// Bounding box of everything in the drawing. An empty drawing has infinite
// bounds with min > max.
func (d Drawing) Bounds() (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	visit := func(p Point2) {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	for _, poly := range d.Polygons {
		for _, p := range poly {
			visit(p)
		}
	}
	for _, path := range d.Paths {
		for _, p := range path {
			visit(p)
		}
	}
	for _, p := range d.Points {
		visit(p)
	}
	return
}

// Render to a PNG file. Scale is pixels per unit.
func (d Drawing) SavePNG(filename string, scale float64) error {
	minX, minY, maxX, maxY := d.Bounds()
	if math.IsInf(minX, 1) {
		return errors.New("nothing to draw")
	}
	if scale <= 0 {
		return errors.Errorf("invalid scale %v", scale)
	}

	width := int(scale*(maxX-minX)) + drawPadding*2
	height := int(scale*(maxY-minY)) + drawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(drawPadding, drawPadding)
	c.Scale(scale, scale)
	c.Translate(-minX, -minY)

	lineWidth := 2 / scale
	for i, poly := range d.Polygons {
		if len(poly) == 0 {
			continue
		}
		color := DrawPalette[i%len(DrawPalette)]
		c.NewSubPath()
		for _, p := range poly {
			c.LineTo(p.X, p.Y)
		}
		c.ClosePath()
		c.SetRGBA(color[0], color[1], color[2], 0.5)
		c.SetFillRuleWinding()
		c.FillPreserve()
		c.SetRGB(color[0], color[1], color[2])
		c.SetLineWidth(lineWidth)
		c.Stroke()
	}

	c.SetRGB(1, 1, 1)
	c.SetLineWidth(lineWidth)
	for _, path := range d.Paths {
		c.NewSubPath()
		for _, p := range path {
			c.LineTo(p.X, p.Y)
		}
		c.Stroke()
	}

	c.SetRGB(1, 1, 0)
	for _, p := range d.Points {
		c.DrawCircle(p.X, p.Y, 3/scale)
		c.Fill()
	}

	return errors.Wrapf(c.SavePNG(filename), "saving %s", filename)
}
