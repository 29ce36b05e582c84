package internal

import (
	"embed"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
)

// This file parses the svg fixtures and outputs polygons. This is not a full
// (or even correct) svg parser. It finds the first polygon element and reads
// its points attribute. If anything goes wrong, it exits.
//
// Fixtures are available by name in this fixtures/ directory, sans extension.

//go:embed fixtures
var fixtures embed.FS

func LoadFixture(name string) Polygon {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}

	defer fixture.Close()
	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}

	polygons := rootEl.FindAll("polygon")
	if len(polygons) != 1 {
		log.Fatalf("Expected exactly one polygon in fixture %q, found %d", name, len(polygons))
	}

	var result Polygon
	for _, pointString := range strings.Fields(polygons[0].Attributes["points"]) {
		coords := strings.Split(pointString, ",")
		if len(coords) != 2 {
			log.Fatalf("Invalid point string %q", pointString)
		}
		x, err := strconv.ParseFloat(coords[0], 64)
		if err != nil {
			log.Fatalf("Invalid x value %q: %v", coords[0], err)
		}
		y, err := strconv.ParseFloat(coords[1], 64)
		if err != nil {
			log.Fatalf("Invalid y value %q: %v", coords[1], err)
		}
		result = append(result, Point2{X: x, Y: y})
	}
	return result
}

// Ad hoc fixtures

// A {n/k} star polygon, traced vertex to vertex so that it crosses itself
func StarPolygon(n, k int, radius float64) Polygon {
	var result Polygon
	for i := 0; i < n; i++ {
		angle := math.Pi/2 + 2*math.Pi*float64(i*k)/float64(n)
		result = append(result, Point2{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)})
	}
	return result
}

func Pentagram() Polygon {
	return StarPolygon(5, 2, 10)
}

// Two squares, one inside the other, joined by a single edge
func DoubleWoundSquare() Polygon {
	return Polygon{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4},
		{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 3}, {X: 1, Y: 3},
	}
}

func FigureEight() Polygon {
	return Polygon{{X: 0, Y: 0}, {X: 2, Y: 2}, {X: 2, Y: 0}, {X: 0, Y: 2}}
}

func UnitSquare() Polygon {
	return Polygon{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
}

// A bowtie whose crossing is one of its own vertices
func VertexBowtie() Polygon {
	return Polygon{{X: -1, Y: -1}, {X: 0, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}}
}

// Two triangles, traced so that the path crosses itself at (1, 1), a point it
// visits twice
func Hourglass() Polygon {
	return Polygon{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 2, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 2}}
}

// Two triangles that touch at (1, 1) without the path crossing there
func PinchedLoop() Polygon {
	return Polygon{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 1, Y: 1}, {X: 0, Y: 2}}
}
