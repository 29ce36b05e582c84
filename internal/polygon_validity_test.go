package internal

// This contains no actual tests. It is just a helper for checking polygon
// parts against the polygon they came from.

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sample a grid over the polygon's bounds and check that the parts cover
// exactly the points the original fills under the rule. The grid is offset by
// an odd fraction of a step so that samples don't land on vertices or on axis
// aligned edges.
func validatePartsBySampling(t *testing.T, parts PolygonList, original Polygon, rule FillRule) {
	minX, minY, maxX, maxY := math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)
	for _, p := range original {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	// Pad the bounding box by 10%
	xPadding := (maxX - minX) * 0.1
	yPadding := (maxY - minY) * 0.1
	minX -= xPadding
	minY -= yPadding
	maxX += xPadding
	maxY += yPadding

	step := math.Max(maxX-minX, maxY-minY) / 50
	const offset = 0.5123

	for y := minY + step*offset; y <= maxY; y += step {
		for x := minX + step*offset; x <= maxX; x += step {
			p := Point2{X: x, Y: y}
			expected := rule.Fills(WindingNumber(p, original))
			actual := parts.ContainsPointByEvenOdd(p)
			if expected {
				assert.True(t, actual, "point %v should be covered by the parts", p)
			} else {
				assert.False(t, actual, "point %v should not be covered by the parts", p)
			}
		}
	}
}

// Every part must be a simple polygon with a real area. Edges are checked
// pairwise here rather than with PathSelfIntersections, so that a crossing the
// detector misses still fails the check.
func assertSimplePolygons(t *testing.T, parts PolygonList, eps float64) {
	for _, part := range parts {
		require.GreaterOrEqual(t, len(part), 3, "part %v has too few points", part)
		assert.GreaterOrEqual(t, part.Area(), eps, "part %v is degenerate", part)

		n := len(part)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				assert.False(t, PointsEqual(part[i], part[j], eps), "part %v repeats %v", part, part[i])
				if j == i+1 || (i == 0 && j == n-1) {
					continue
				}
				a1, a2 := part[i], part[(i+1)%n]
				b1, b2 := part[j], part[(j+1)%n]
				assert.False(t, edgesCross(a1, a2, b1, b2, eps), "part %v: edge %d crosses edge %d", part, i, j)
			}
		}
	}
}

// Whether two edges cross, each having the other's ends strictly on either
// side of it
func edgesCross(a1, a2, b1, b2 Point2, eps float64) bool {
	orientation := func(p, q, r Point2) int {
		cross := (q.X-p.X)*(r.Y-p.Y) - (q.Y-p.Y)*(r.X-p.X)
		length := math.Hypot(q.X-p.X, q.Y-p.Y)
		switch {
		case cross > eps*length:
			return 1
		case cross < -eps*length:
			return -1
		}
		return 0
	}
	return orientation(a1, a2, b1)*orientation(a1, a2, b2) < 0 &&
		orientation(b1, b2, a1)*orientation(b1, b2, a2) < 0
}
