// Command polyhull computes convex hulls, path self-crossings and the simple
// parts of self-intersecting polygons.
//
// Input on stdin is newline separated points in the form "x y" (or "x y z"
// for 3D hulls), with each path or polygon separated by an extra newline.
// Shapes can instead be read from the polygons and polylines of an SVG file.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/osuushi/polyhull/advanced"
	"github.com/osuushi/polyhull/dbg"
	"github.com/osuushi/polyhull/kernel"
	"github.com/osuushi/polyhull/kernel/sdfx"
	"github.com/osuushi/polyhull/script"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		log.New(os.Stderr, "", 0).Println(aurora.Red("error:"), err)
		os.Exit(1)
	}
}

type cli struct {
	stdin   io.Reader
	stdout  io.Writer
	log     *log.Logger
	au      aurora.Aurora
	verbose bool
	source  shapeSource
	drawing drawingOutput
}

// Verbose logging
func (c *cli) logf(format string, args ...interface{}) {
	if c.verbose {
		c.log.Printf(format, args...)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	app := kingpin.New("polyhull", "Convex hulls, path self-crossings and polygon parts.")
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)
	app.Terminate(func(int) {})

	verbose := app.Flag("verbose", "Log each step.").Short('v').Bool()
	color := app.Flag("color", "Colour log output.").Default("true").Bool()
	svgIn := app.Flag("svg", "Read shapes from an SVG file instead of stdin.").String()
	svgOut := app.Flag("svg-out", "Draw the result to an SVG file.").String()
	pngOut := app.Flag("png", "Draw the result to a PNG file.").String()
	show := app.Flag("imgcat", "Print a drawing of the result inline.").Bool()
	scale := app.Flag("scale", "Drawing units per input unit.").Default("10").Float64()

	hullCmd := app.Command("hull", "Convex hull of 2D or 3D points.")
	hullAll := hullCmd.Flag("all", "Keep points that lie on hull edges.").Bool()
	hullEps := hullCmd.Flag("eps", "Tolerance.").Default("1e-9").Float64()
	hullMesh := hullCmd.Flag("mesh", "Write a solid hull as a JSON mesh.").String()

	crossingsCmd := app.Command("crossings", "Self-intersections of each path.")
	crossingsOpen := crossingsCmd.Flag("open", "Don't join the last point to the first.").Bool()
	crossingsEps := crossingsCmd.Flag("eps", "Tolerance.").Default("1e-9").Float64()

	splitCmd := app.Command("split", "Split each path at its self-crossings.")
	splitOpen := splitCmd.Flag("open", "Don't join the last point to the first.").Bool()
	splitEps := splitCmd.Flag("eps", "Tolerance.").Default("1e-7").Float64()

	partsCmd := app.Command("parts", "Split self-intersecting polygons into simple parts.")
	partsNonzero := partsCmd.Flag("nonzero", "Use the nonzero fill rule instead of even-odd.").Bool()
	partsEps := partsCmd.Flag("eps", "Tolerance.").Default("1e-9").Float64()
	partsProbe := partsCmd.Flag("probe", "Report whether the point \"x,y\" is filled instead of printing parts.").String()
	partsExtrude := partsCmd.Flag("extrude", "Extrude the parts to this height, for --mesh or drawing outputs.").Float64()
	partsMesh := partsCmd.Flag("mesh", "Mesh output file for --extrude.").String()
	partsCells := partsCmd.Flag("cells", "Marching cubes resolution for --extrude.").Default("200").Int()

	evalCmd := app.Command("eval", "Evaluate a script.")
	evalFile := evalCmd.Arg("file", "Script file. Reads stdin if omitted.").String()
	evalTimeout := evalCmd.Flag("timeout", "Give up after this long.").Default("5s").Duration()

	command, err := app.Parse(args)
	if err != nil {
		return err
	}

	c := &cli{
		stdin:   stdin,
		stdout:  stdout,
		log:     log.New(stderr, "", 0),
		au:      aurora.NewAurora(*color),
		verbose: *verbose,
		source:  shapeSource{svgFile: *svgIn, stdin: stdin},
		drawing: drawingOutput{svgFile: *svgOut, pngFile: *pngOut, imgcat: *show, scale: *scale},
	}

	switch command {
	case hullCmd.FullCommand():
		return c.hull(*hullAll, *hullEps, *hullMesh)
	case crossingsCmd.FullCommand():
		return c.crossings(!*crossingsOpen, *crossingsEps)
	case splitCmd.FullCommand():
		return c.split(!*splitOpen, *splitEps)
	case partsCmd.FullCommand():
		rule := advanced.FillRuleFor(*partsNonzero)
		if *partsExtrude != 0 {
			return c.extrude(rule, *partsEps, *partsExtrude, *partsMesh, *partsCells)
		}
		if *partsProbe != "" {
			return c.probe(rule, *partsEps, *partsProbe)
		}
		return c.parts(rule, *partsEps)
	case evalCmd.FullCommand():
		return c.eval(*evalFile, *evalTimeout)
	}
	return errors.Errorf("unknown command %q", command)
}

func (c *cli) hull(all bool, eps float64, meshFile string) error {
	raw, err := c.source.points()
	if err != nil {
		return err
	}
	points2, points3, dim, err := advanced.Points(raw)
	if err != nil {
		return err
	}
	c.logf("%s %d %dD points", c.au.Bold("hull:"), len(raw), dim)

	if dim == 2 {
		path, err := advanced.Hull2DPath(points2, all, eps)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.stdout, formatInts(path))
		if meshFile != "" {
			c.log.Println(c.au.Yellow("warning:"), "2D hulls have no mesh")
		}

		hull := make(advanced.Polygon, len(path))
		for i, index := range path {
			hull[i] = points2[index]
		}
		return c.draw(advanced.Drawing{Polygons: advanced.PolygonList{hull}, Points: points2})
	}

	hull, err := advanced.Hull3DFaces(points3, eps)
	if err != nil {
		return err
	}
	if !hull.IsSolid() {
		c.logf("degenerate point set, hull is a path")
		fmt.Fprintln(c.stdout, formatInts(hull.Path))
		return nil
	}
	for _, face := range hull.Faces {
		c.logf("face %s %v normal %v", c.au.Cyan(dbg.Name(face)), face, face.Normal(points3))
		fmt.Fprintln(c.stdout, formatInts(face[:]))
	}
	if meshFile == "" && !c.drawing.wanted() {
		return nil
	}

	mesh, err := kernel.MeshFromHull(points3, hull)
	if err != nil {
		return err
	}
	c.logMesh(mesh)
	if meshFile != "" {
		if err := writeMesh(meshFile, mesh); err != nil {
			return err
		}
	}
	return c.drawMesh(mesh, true)
}

func (c *cli) logMesh(mesh *kernel.Mesh) {
	min, max := mesh.Bounds()
	c.logf("mesh: %d vertices, %d triangles, area %.6g, bounds %v to %v",
		mesh.VertexCount(), mesh.TriangleCount(), mesh.SurfaceArea(), min, max)
}

func (c *cli) crossings(closed bool, eps float64) error {
	paths, err := c.source.paths()
	if err != nil {
		return err
	}
	drawing := advanced.Drawing{Paths: paths}
	for i, path := range paths {
		if i > 0 {
			fmt.Fprintln(c.stdout)
		}
		crossings, err := advanced.PathSelfIntersections(path, closed, eps)
		if err != nil {
			return errors.Wrapf(err, "path %d", i)
		}
		c.logf("%s %s: %d crossings", c.au.Bold("path"), c.au.Cyan(dbg.Name(path)), len(crossings))
		for _, crossing := range crossings {
			writeCrossing(c.stdout, crossing)
			drawing.Points = append(drawing.Points, crossing.Point)
		}
	}
	return c.draw(drawing)
}

func (c *cli) split(closed bool, eps float64) error {
	paths, err := c.source.paths()
	if err != nil {
		return err
	}
	var pieces []advanced.Path
	for i, path := range paths {
		split, err := advanced.SplitPathAtSelfCrossings(path, closed, eps)
		if err != nil {
			return errors.Wrapf(err, "path %d", i)
		}
		c.logf("%s %s: %d pieces", c.au.Bold("path"), c.au.Cyan(dbg.Name(path)), len(split))
		pieces = append(pieces, split...)
	}
	writePaths(c.stdout, pieces)
	return c.draw(advanced.Drawing{Paths: pieces})
}

// Parts of every input polygon, in input order
func (c *cli) polygonParts(rule advanced.FillRule, eps float64) ([]advanced.Polygon, []advanced.PolygonList, error) {
	paths, err := c.source.paths()
	if err != nil {
		return nil, nil, err
	}
	polygons := make([]advanced.Polygon, len(paths))
	parts := make([]advanced.PolygonList, len(paths))
	for i, path := range paths {
		polygons[i] = advanced.Polygon(path)
		if c.verbose {
			fragments, err := advanced.TagSelfCrossingSubpaths(polygons[i], rule, eps)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "polygon %d", i)
			}
			for _, fragment := range fragments {
				name := c.au.Green(dbg.Name(fragment.Path))
				if fragment.Tag == advanced.Interior {
					name = c.au.Red(dbg.Name(fragment.Path))
				}
				c.logf("fragment %s %s: %d points", name, fragment.Tag, len(fragment.Path))
			}
		}
		if parts[i], err = advanced.PolygonParts(polygons[i], rule, eps); err != nil {
			return nil, nil, errors.Wrapf(err, "polygon %d", i)
		}
		c.logf("%s %d (%s): %d parts", c.au.Bold("polygon"), i, rule, len(parts[i]))
	}
	return polygons, parts, nil
}

func (c *cli) parts(rule advanced.FillRule, eps float64) error {
	_, parts, err := c.polygonParts(rule, eps)
	if err != nil {
		return err
	}
	var all advanced.PolygonList
	for _, list := range parts {
		all = append(all, list...)
	}
	paths := make([]advanced.Path, len(all))
	for i, part := range all {
		paths[i] = advanced.Path(part)
		c.logf("part %s: %d vertices, area %.6g", c.au.Cyan(dbg.Name(part)), len(part), part.Area())
	}
	writePaths(c.stdout, paths)
	return c.draw(advanced.Drawing{Polygons: all})
}

// Check a point against each polygon, both directly and against the region
// its parts enclose
func (c *cli) probe(rule advanced.FillRule, eps float64, at string) error {
	raw, err := parsePoint(strings.ReplaceAll(at, ",", " "))
	if err != nil || len(raw) != 2 {
		return errors.Errorf("invalid probe point %q", at)
	}
	p := advanced.Point2{X: raw[0], Y: raw[1]}

	polygons, parts, err := c.polygonParts(rule, eps)
	if err != nil {
		return err
	}
	for i, poly := range polygons {
		classification, err := advanced.PointInPolygon(p, poly, rule, eps)
		if err != nil {
			return errors.Wrapf(err, "polygon %d", i)
		}
		result := "outside"
		switch classification {
		case 1:
			result = "inside"
		case 0:
			result = "boundary"
		}

		filled := false
		if len(parts[i]) > 0 {
			region, err := sdfx.Region(parts[i])
			if err != nil {
				return errors.Wrapf(err, "polygon %d", i)
			}
			filled = sdfx.Contains(region, p)
		}
		if classification != 0 && filled != (classification > 0) {
			c.log.Println(c.au.Yellow("warning:"), "polygon", i, "parts disagree with the polygon at", at)
		}
		fmt.Fprintf(c.stdout, "%d %s\n", i, result)
	}
	return nil
}

func (c *cli) extrude(rule advanced.FillRule, eps, height float64, meshFile string, cells int) error {
	if meshFile == "" && !c.drawing.wanted() {
		return errors.New("--extrude needs --mesh or a drawing output")
	}
	_, parts, err := c.polygonParts(rule, eps)
	if err != nil {
		return err
	}
	var all advanced.PolygonList
	for _, list := range parts {
		all = append(all, list...)
	}
	region, err := sdfx.Region(all)
	if err != nil {
		return err
	}
	solid, err := sdfx.Extrude(region, height)
	if err != nil {
		return err
	}
	mesh, err := sdfx.ToMesh(solid, cells)
	if err != nil {
		return err
	}
	c.logMesh(mesh)
	if meshFile != "" {
		if err := writeMesh(meshFile, mesh); err != nil {
			return err
		}
	}
	return c.drawMesh(mesh, false)
}

func (c *cli) eval(filename string, timeout time.Duration) error {
	var source []byte
	var err error
	if filename == "" {
		source, err = io.ReadAll(c.stdin)
	} else {
		source, err = os.ReadFile(filename)
	}
	if err != nil {
		return errors.Wrap(err, "reading script")
	}

	engine := script.NewEngine()
	engine.Timeout = timeout
	result, evalErrs, err := engine.Evaluate(string(source))
	if err != nil {
		return err
	}
	if len(evalErrs) > 0 {
		for _, evalErr := range evalErrs {
			c.log.Println(c.au.Red("script:"), evalErr)
		}
		return errors.Errorf("script failed with %d errors", len(evalErrs))
	}
	fmt.Fprintln(c.stdout, result.Value)

	d := result.Drawing
	if len(d.Polygons)+len(d.Paths)+len(d.Points) == 0 {
		return nil
	}
	return c.draw(d)
}

// Hull meshes wind clockwise seen from outside, so they are flipped for the
// renderer
func (c *cli) drawMesh(mesh *kernel.Mesh, clockwise bool) error {
	if !c.drawing.wanted() {
		return nil
	}
	if c.drawing.svgFile != "" {
		c.log.Println(c.au.Yellow("warning:"), "meshes can't be drawn as svg")
	}
	if clockwise {
		flipped := *mesh
		flipped.Indices = append([]uint32(nil), mesh.Indices...)
		flipped.FlipWinding()
		mesh = &flipped
	}
	return c.drawing.emitMesh(mesh, c.stdout)
}

func (c *cli) draw(d advanced.Drawing) error {
	if !c.drawing.wanted() {
		return nil
	}
	return c.drawing.emit(d, c.stdout)
}
