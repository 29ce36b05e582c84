package internal

import "math"

// Precondition checks run once at the API boundary. The algorithms below them
// assume finite coordinates of a single dimension.

func checkFinite(context string, index int, coords ...float64) {
	for _, c := range coords {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			fatalf("%s: point %d has a non-finite coordinate", context, index)
		}
	}
}

func CheckEpsilon(context string, eps float64) {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		fatalf("%s: invalid tolerance %v", context, eps)
	}
}

func CheckPoints2(context string, points []Point2) {
	for i, p := range points {
		checkFinite(context, i, p.X, p.Y)
	}
}

func CheckPoints3(context string, points []Point3) {
	for i, p := range points {
		checkFinite(context, i, p.X, p.Y, p.Z)
	}
}

// Inspect raw coordinate lists and report their shared dimension. Mixed
// dimensions, or anything other than 2 or 3 coordinates, is a precondition
// failure.
func Dimension(context string, points [][]float64) int {
	if len(points) == 0 {
		fatalf("%s: no points", context)
	}
	dim := len(points[0])
	if dim != 2 && dim != 3 {
		fatalf("%s: points must have 2 or 3 coordinates, got %d", context, dim)
	}
	for i, p := range points {
		if len(p) != dim {
			fatalf("%s: point %d has %d coordinates, expected %d", context, i, len(p), dim)
		}
		checkFinite(context, i, p...)
	}
	return dim
}

func ToPoints2(points [][]float64) []Point2 {
	result := make([]Point2, len(points))
	for i, p := range points {
		result[i] = Point2{X: p[0], Y: p[1]}
	}
	return result
}

func ToPoints3(points [][]float64) []Point3 {
	result := make([]Point3, len(points))
	for i, p := range points {
		result[i] = Point3{X: p[0], Y: p[1], Z: p[2]}
	}
	return result
}
