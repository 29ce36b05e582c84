// Package svgio reads polygons and polylines out of SVG documents, and writes
// hulls, crossings and polygon parts back out as SVG.
//
// Only the points of <polygon> and <polyline> elements are read. Transforms,
// paths and styling other than the fill rule are ignored.
package svgio

import (
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/JoshVarga/svgparser"
	"github.com/osuushi/polyhull/advanced"
	"github.com/pkg/errors"
)

// A shape read from an SVG document. Polygons are closed, polylines are not.
type Shape struct {
	ID     string
	Path   advanced.Path
	Closed bool
	// SVG fills with the nonzero rule unless told otherwise
	Rule advanced.FillRule
}

// Read every polygon and polyline in the document, in document order
func ReadShapes(r io.Reader) ([]Shape, error) {
	root, err := svgparser.Parse(r, false)
	if err != nil {
		return nil, errors.Wrap(err, "parsing svg")
	}

	var shapes []Shape
	var walk func(el *svgparser.Element) error
	walk = func(el *svgparser.Element) error {
		switch el.Name {
		case "polygon", "polyline":
			shape, err := readShape(el)
			if err != nil {
				return errors.Wrapf(err, "%s %d", el.Name, len(shapes))
			}
			shapes = append(shapes, shape)
		}
		for _, child := range el.Children {
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root); err != nil {
		return nil, err
	}
	return shapes, nil
}

// Read only the closed shapes, as polygons
func ReadPolygons(r io.Reader) ([]advanced.Polygon, error) {
	shapes, err := ReadShapes(r)
	if err != nil {
		return nil, err
	}
	var result []advanced.Polygon
	for _, shape := range shapes {
		if shape.Closed {
			result = append(result, advanced.Polygon(shape.Path))
		}
	}
	return result, nil
}

func readShape(el *svgparser.Element) (Shape, error) {
	path, err := ParsePoints(el.Attributes["points"])
	if err != nil {
		return Shape{}, err
	}
	rule, err := fillRule(el)
	if err != nil {
		return Shape{}, err
	}
	return Shape{
		ID:     el.Attributes["id"],
		Path:   path,
		Closed: el.Name == "polygon",
		Rule:   rule,
	}, nil
}

// A style declaration wins over the presentation attribute
func fillRule(el *svgparser.Element) (advanced.FillRule, error) {
	value := el.Attributes["fill-rule"]
	for _, declaration := range strings.Split(el.Attributes["style"], ";") {
		property, v, found := strings.Cut(declaration, ":")
		if found && strings.TrimSpace(property) == "fill-rule" {
			value = strings.TrimSpace(v)
		}
	}
	if value == "" {
		return advanced.NonZero, nil
	}
	return advanced.ParseFillRule(value)
}

// Parse an SVG points list. Coordinates may be separated by commas, whitespace
// or both.
func ParsePoints(s string) (advanced.Path, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields)%2 != 0 {
		return nil, errors.Errorf("odd number of coordinates (%d)", len(fields))
	}

	path := make(advanced.Path, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid x value %q", fields[i])
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid y value %q", fields[i+1])
		}
		path = append(path, advanced.Point2{X: x, Y: y})
	}
	return path, nil
}
