package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/polyhull/advanced"
	"github.com/osuushi/polyhull/kernel"
	"github.com/osuushi/polyhull/kernel/preview"
	"github.com/osuushi/polyhull/svgio"
	"github.com/pkg/errors"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatInts(ints []int) string {
	fields := make([]string, len(ints))
	for i, n := range ints {
		fields[i] = strconv.Itoa(n)
	}
	return strings.Join(fields, " ")
}

// Points one per line, in the same format the input is read in
func writePath(w io.Writer, path []advanced.Point2) {
	for _, p := range path {
		fmt.Fprintf(w, "%s %s\n", formatFloat(p.X), formatFloat(p.Y))
	}
}

// Paths separated by blank lines, so the output can be piped back in
func writePaths(w io.Writer, paths []advanced.Path) {
	for i, path := range paths {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writePath(w, path)
	}
}

func writeCrossing(w io.Writer, c advanced.Intersection) {
	fmt.Fprintf(w, "%s %s %d %s %d %s\n",
		formatFloat(c.Point.X), formatFloat(c.Point.Y),
		c.SegA, formatFloat(c.ParamA),
		c.SegB, formatFloat(c.ParamB),
	)
}

// Where to send drawings, from the global flags
type drawingOutput struct {
	svgFile string
	pngFile string
	imgcat  bool
	scale   float64
}

func (o drawingOutput) wanted() bool {
	return o.svgFile != "" || o.pngFile != "" || o.imgcat
}

func (o drawingOutput) emit(d advanced.Drawing, stdout io.Writer) error {
	if o.svgFile != "" {
		file, err := os.Create(o.svgFile)
		if err != nil {
			return errors.Wrap(err, "creating svg")
		}
		if err := svgio.Write(file, d, o.scale); err != nil {
			file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return errors.Wrap(err, "closing svg")
		}
	}

	pngFile := o.pngFile
	if pngFile == "" && o.imgcat {
		dir, err := os.MkdirTemp("", "polyhull")
		if err != nil {
			return errors.Wrap(err, "creating temp dir")
		}
		defer os.RemoveAll(dir)
		pngFile = filepath.Join(dir, "drawing.png")
	}
	if pngFile != "" {
		if err := d.SavePNG(pngFile, o.scale); err != nil {
			return err
		}
	}
	if o.imgcat {
		imgcat.CatFile(pngFile, stdout)
	}
	return nil
}

// Pixel size of mesh previews
const previewSize = 800

// Render a mesh to the PNG outputs. Mesh triangles must wind counter-clockwise
// seen from outside.
func (o drawingOutput) emitMesh(m *kernel.Mesh, stdout io.Writer) error {
	pngFile := o.pngFile
	if pngFile == "" && o.imgcat {
		dir, err := os.MkdirTemp("", "polyhull")
		if err != nil {
			return errors.Wrap(err, "creating temp dir")
		}
		defer os.RemoveAll(dir)
		pngFile = filepath.Join(dir, "mesh.png")
	}
	if pngFile != "" {
		if err := preview.SavePNG(m, pngFile, previewSize); err != nil {
			return err
		}
	}
	if o.imgcat {
		imgcat.CatFile(pngFile, stdout)
	}
	return nil
}

func writeMesh(filename string, mesh *kernel.Mesh) error {
	data, err := json.Marshal(mesh)
	if err != nil {
		return errors.Wrap(err, "encoding mesh")
	}
	return errors.Wrap(os.WriteFile(filename, data, 0o644), "writing mesh")
}
