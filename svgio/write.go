package svgio

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo/float"
	"github.com/osuushi/polyhull/advanced"
	"github.com/osuushi/polyhull/internal"
	"github.com/pkg/errors"
)

// Margin around the drawing, in output units
const padding = 10

// svgo ignores write errors, so remember the first one
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

// Write a drawing as an SVG document. Scale is output units per input unit.
// Coordinates keep SVG's orientation, so shapes read with ReadShapes come
// back out where they were.
func Write(w io.Writer, d advanced.Drawing, scale float64) error {
	minX, minY, maxX, maxY := d.Bounds()
	if math.IsInf(minX, 1) {
		return errors.New("nothing to draw")
	}
	if scale <= 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		return errors.Errorf("invalid scale %v", scale)
	}

	tx := func(x float64) float64 { return (x-minX)*scale + padding }
	ty := func(y float64) float64 { return (y-minY)*scale + padding }
	coords := func(path advanced.Path) (xs, ys []float64) {
		xs = make([]float64, len(path))
		ys = make([]float64, len(path))
		for i, p := range path {
			xs[i] = tx(p.X)
			ys[i] = ty(p.Y)
		}
		return
	}

	out := &errWriter{w: w}
	canvas := svg.New(out)
	canvas.Start((maxX-minX)*scale+2*padding, (maxY-minY)*scale+2*padding)

	for i, poly := range d.Polygons {
		if len(poly) == 0 {
			continue
		}
		color := rgb(internal.DrawPalette[i%len(internal.DrawPalette)])
		xs, ys := coords(advanced.Path(poly))
		canvas.Polygon(xs, ys, fmt.Sprintf("fill:%s;fill-opacity:0.5;stroke:%s;stroke-width:1", color, color))
	}

	for _, path := range d.Paths {
		if len(path) == 0 {
			continue
		}
		xs, ys := coords(path)
		canvas.Polyline(xs, ys, "fill:none;stroke:black;stroke-width:1")
	}

	for _, p := range d.Points {
		canvas.Circle(tx(p.X), ty(p.Y), 3, "fill:red")
	}

	canvas.End()
	return errors.Wrap(out.err, "writing svg")
}

func rgb(color [3]float64) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", int(color[0]*255), int(color[1]*255), int(color[2]*255))
}
