package main

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/osuushi/polyhull/advanced"
	"github.com/osuushi/polyhull/svgio"
	"github.com/pkg/errors"
)

// Read point sets from text. Each line is a point, "x y" or "x y z", and sets
// are separated by blank lines. Lines starting with # are comments.
func readPointSets(in io.Reader) ([][][]float64, error) {
	sets := [][][]float64{}
	points := [][]float64{}
	scanner := bufio.NewScanner(in)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}

		// A blank line ends the current set, if there is one
		if line == "" {
			if len(points) > 0 {
				sets = append(sets, points)
				points = [][]float64{}
			}
			continue
		}

		point, err := parsePoint(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNumber)
		}
		points = append(points, point)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading input")
	}

	if len(points) > 0 {
		sets = append(sets, points)
	}
	return sets, nil
}

func parsePoint(line string) ([]float64, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 && len(fields) != 3 {
		return nil, errors.Errorf("expected 2 or 3 coordinates, got %d", len(fields))
	}
	point := make([]float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, errors.Errorf("invalid coordinate %q", field)
		}
		point[i] = v
	}
	return point, nil
}

// Input for the path and polygon commands: every shape in an SVG file, or
// the point sets on stdin
type shapeSource struct {
	svgFile string
	stdin   io.Reader
}

func (s shapeSource) paths() ([]advanced.Path, error) {
	if s.svgFile != "" {
		file, err := os.Open(s.svgFile)
		if err != nil {
			return nil, errors.Wrap(err, "opening svg")
		}
		defer file.Close()
		shapes, err := svgio.ReadShapes(file)
		if err != nil {
			return nil, errors.Wrap(err, s.svgFile)
		}
		paths := make([]advanced.Path, len(shapes))
		for i, shape := range shapes {
			paths[i] = shape.Path
		}
		return paths, nil
	}

	sets, err := readPointSets(s.stdin)
	if err != nil {
		return nil, err
	}
	paths := make([]advanced.Path, len(sets))
	for i, set := range sets {
		points2, _, dim, err := advanced.Points(set)
		if err != nil {
			return nil, errors.Wrapf(err, "path %d", i)
		}
		if dim != 2 {
			return nil, errors.Errorf("path %d: expected 2D points", i)
		}
		paths[i] = advanced.Path(points2)
	}
	return paths, nil
}

// Points for the hull command. An SVG file contributes the vertices of all of
// its shapes as one 2D set.
func (s shapeSource) points() ([][]float64, error) {
	if s.svgFile != "" {
		paths, err := s.paths()
		if err != nil {
			return nil, err
		}
		var raw [][]float64
		for _, path := range paths {
			for _, p := range path {
				raw = append(raw, []float64{p.X, p.Y})
			}
		}
		return raw, nil
	}

	sets, err := readPointSets(s.stdin)
	if err != nil {
		return nil, err
	}
	var raw [][]float64
	for _, set := range sets {
		raw = append(raw, set...)
	}
	return raw, nil
}
