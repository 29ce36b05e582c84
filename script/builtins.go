package script

import (
	"math"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/osuushi/polyhull"
	"github.com/osuushi/polyhull/advanced"
	"github.com/osuushi/polyhull/kernel/sdfx"
	"github.com/pkg/errors"
)

type builtin func(a args) (zygo.Sexp, error)

// Register under the underscored name that preprocessSource produces, and
// report errors under the name the user typed.
func define(env *zygo.Zlisp, name string, fn builtin) {
	env.AddFunction(strings.ReplaceAll(name, "-", "_"), func(env *zygo.Zlisp, _ string, raw []zygo.Sexp) (zygo.Sexp, error) {
		result, err := fn(parseArgs(raw))
		if err != nil {
			return zygo.SexpNull, errors.Wrap(err, name)
		}
		return result, nil
	})
}

func registerBuiltins(env *zygo.Zlisp, drawing *advanced.Drawing) {
	// (hull points :eps 1e-9)
	// Index path for 2D points or a degenerate 3D set, faces for a solid
	define(env, "hull", func(a args) (zygo.Sexp, error) {
		raw, eps, err := pointsAndEps(a)
		if err != nil {
			return nil, err
		}
		result, err := polyhull.Hull(raw, eps)
		if err != nil {
			return nil, err
		}
		if len(result.Faces) > 0 {
			return fromFaces(result.Faces), nil
		}
		return fromInts(result.Path), nil
	})

	// (hull2d-path points :all true :eps 1e-9)
	define(env, "hull2d-path", func(a args) (zygo.Sexp, error) {
		raw, eps, err := pointsAndEps(a)
		if err != nil {
			return nil, err
		}
		all, err := a.flag("all")
		if err != nil {
			return nil, err
		}
		points2, _, dim, err := advanced.Points(raw)
		if err != nil {
			return nil, err
		}
		if dim != 2 {
			return nil, errors.Errorf("expected 2D points, got %dD", dim)
		}
		path, err := advanced.Hull2DPath(points2, all, eps)
		if err != nil {
			return nil, err
		}
		return fromInts(path), nil
	})

	// (hull3d-faces points :eps 1e-9)
	// A degenerate set has no faces, so this returns an empty array for it
	define(env, "hull3d-faces", func(a args) (zygo.Sexp, error) {
		raw, eps, err := pointsAndEps(a)
		if err != nil {
			return nil, err
		}
		_, points3, dim, err := advanced.Points(raw)
		if err != nil {
			return nil, err
		}
		if dim != 3 {
			return nil, errors.Errorf("expected 3D points, got %dD", dim)
		}
		hull, err := advanced.Hull3DFaces(points3, eps)
		if err != nil {
			return nil, err
		}
		return fromFaces(hull.Faces), nil
	})

	// (hull-vertices points)
	define(env, "hull-vertices", func(a args) (zygo.Sexp, error) {
		raw, eps, err := pointsAndEps(a)
		if err != nil {
			return nil, err
		}
		result, err := polyhull.Hull(raw, eps)
		if err != nil {
			return nil, err
		}
		return fromInts(advanced.HullVertices(result.Path, result.Faces)), nil
	})

	// (point-in-hull point points :eps 1e-9)
	// True when the point is inside or on the hull of the points
	define(env, "point-in-hull", func(a args) (zygo.Sexp, error) {
		first, err := a.arg(0, "point")
		if err != nil {
			return nil, err
		}
		coords, err := toCoords(first)
		if err != nil {
			return nil, errors.Wrap(err, "point")
		}
		second, err := a.arg(1, "points")
		if err != nil {
			return nil, err
		}
		raw, err := toRawPoints(second)
		if err != nil {
			return nil, err
		}
		eps, err := a.number("eps", advanced.DefaultEpsilon)
		if err != nil {
			return nil, err
		}

		points2, points3, dim, err := advanced.Points(raw)
		if err != nil {
			return nil, err
		}
		if len(coords) != dim {
			return nil, errors.Errorf("expected %dD point, got %s", dim, describe(first))
		}
		var inside bool
		if dim == 2 {
			path, err := advanced.Hull2DPath(points2, false, eps)
			if err != nil {
				return nil, err
			}
			inside, err = advanced.PointInHull2(advanced.Point2{X: coords[0], Y: coords[1]}, points2, path, eps)
			if err != nil {
				return nil, err
			}
		} else {
			hull, err := advanced.Hull3DFaces(points3, eps)
			if err != nil {
				return nil, err
			}
			inside, err = advanced.PointInHull3(advanced.Point3{X: coords[0], Y: coords[1], Z: coords[2]}, points3, hull, eps)
			if err != nil {
				return nil, err
			}
		}
		return &zygo.SexpBool{Val: inside}, nil
	})

	// (path-self-intersections path :closed true :eps 1e-9)
	// Each crossing is [x y seg-a param-a seg-b param-b]
	define(env, "path-self-intersections", func(a args) (zygo.Sexp, error) {
		path, closed, err := pathAndClosed(a)
		if err != nil {
			return nil, err
		}
		eps, err := a.number("eps", advanced.DefaultEpsilon)
		if err != nil {
			return nil, err
		}
		crossings, err := advanced.PathSelfIntersections(path, closed, eps)
		if err != nil {
			return nil, err
		}
		items := make([]zygo.Sexp, len(crossings))
		for i, c := range crossings {
			items[i] = fromFloats(c.Point.X, c.Point.Y, float64(c.SegA), c.ParamA, float64(c.SegB), c.ParamB)
		}
		return array(items), nil
	})

	// (split-path-at-self-crossings path :closed true :eps 1e-7)
	define(env, "split-path-at-self-crossings", func(a args) (zygo.Sexp, error) {
		path, closed, err := pathAndClosed(a)
		if err != nil {
			return nil, err
		}
		eps, err := a.number("eps", advanced.SplitEpsilon)
		if err != nil {
			return nil, err
		}
		pieces, err := advanced.SplitPathAtSelfCrossings(path, closed, eps)
		if err != nil {
			return nil, err
		}
		return fromPaths(pieces), nil
	})

	// (polygon-parts poly :nonzero true :eps 1e-9)
	define(env, "polygon-parts", func(a args) (zygo.Sexp, error) {
		poly, rule, eps, err := polygonRuleAndEps(a, 0)
		if err != nil {
			return nil, err
		}
		parts, err := advanced.PolygonParts(poly, rule, eps)
		if err != nil {
			return nil, err
		}
		return fromPolygonList(parts), nil
	})

	// (point-in-polygon point poly :nonzero true)
	// 1 inside, 0 on the boundary, -1 outside
	define(env, "point-in-polygon", func(a args) (zygo.Sexp, error) {
		first, err := a.arg(0, "point")
		if err != nil {
			return nil, err
		}
		p, err := toPoint2(first)
		if err != nil {
			return nil, errors.Wrap(err, "point")
		}
		poly, rule, eps, err := polygonRuleAndEps(a, 1)
		if err != nil {
			return nil, err
		}
		result, err := advanced.PointInPolygon(p, poly, rule, eps)
		if err != nil {
			return nil, err
		}
		return &zygo.SexpInt{Val: int64(result)}, nil
	})

	// (polygon-area poly)
	// Signed, positive for counter-clockwise polygons
	define(env, "polygon-area", func(a args) (zygo.Sexp, error) {
		first, err := a.arg(0, "polygon")
		if err != nil {
			return nil, err
		}
		path, err := toPath(first)
		if err != nil {
			return nil, err
		}
		return &zygo.SexpFloat{Val: advanced.Polygon(path).SignedArea()}, nil
	})

	// (region-contains parts point)
	// Tests a point against polygon parts combined as a signed distance field
	define(env, "region-contains", func(a args) (zygo.Sexp, error) {
		first, err := a.arg(0, "parts")
		if err != nil {
			return nil, err
		}
		parts, err := toPolygonList(first)
		if err != nil {
			return nil, errors.Wrap(err, "parts")
		}
		second, err := a.arg(1, "point")
		if err != nil {
			return nil, err
		}
		p, err := toPoint2(second)
		if err != nil {
			return nil, errors.Wrap(err, "point")
		}
		region, err := sdfx.Region(parts)
		if err != nil {
			return nil, err
		}
		return &zygo.SexpBool{Val: sdfx.Contains(region, p)}, nil
	})

	// (star-polygon 5 2 10)
	// A {n/k} star with the given radius, traced vertex to vertex
	define(env, "star-polygon", func(a args) (zygo.Sexp, error) {
		var values [3]float64
		for i, what := range []string{"n", "k", "radius"} {
			v, err := a.arg(i, what)
			if err != nil {
				return nil, err
			}
			if values[i], err = toFloat64(v); err != nil {
				return nil, errors.Wrap(err, what)
			}
		}
		n, k, radius := int(values[0]), int(values[1]), values[2]
		if n < 3 || k < 1 || k >= n {
			return nil, errors.Errorf("invalid star {%d/%d}", n, k)
		}
		path := make(advanced.Path, n)
		for i := range path {
			angle := math.Pi/2 + 2*math.Pi*float64(i*k)/float64(n)
			path[i] = advanced.Point2{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
		}
		return fromPath(path), nil
	})

	// (draw-polygons parts), (draw-paths paths), (draw-points points)
	// Collected into the result's drawing
	define(env, "draw-polygons", func(a args) (zygo.Sexp, error) {
		first, err := a.arg(0, "polygons")
		if err != nil {
			return nil, err
		}
		polygons, err := toPolygonList(first)
		if err != nil {
			return nil, err
		}
		drawing.Polygons = append(drawing.Polygons, polygons...)
		return zygo.SexpNull, nil
	})

	define(env, "draw-paths", func(a args) (zygo.Sexp, error) {
		first, err := a.arg(0, "paths")
		if err != nil {
			return nil, err
		}
		paths, err := toPaths(first)
		if err != nil {
			return nil, err
		}
		drawing.Paths = append(drawing.Paths, paths...)
		return zygo.SexpNull, nil
	})

	define(env, "draw-points", func(a args) (zygo.Sexp, error) {
		first, err := a.arg(0, "points")
		if err != nil {
			return nil, err
		}
		points, err := toPath(first)
		if err != nil {
			return nil, err
		}
		drawing.Points = append(drawing.Points, points...)
		return zygo.SexpNull, nil
	})
}

func pointsAndEps(a args) ([][]float64, float64, error) {
	first, err := a.arg(0, "points")
	if err != nil {
		return nil, 0, err
	}
	raw, err := toRawPoints(first)
	if err != nil {
		return nil, 0, err
	}
	eps, err := a.number("eps", advanced.DefaultEpsilon)
	return raw, eps, err
}

// Paths are closed unless :closed false is given
func pathAndClosed(a args) (advanced.Path, bool, error) {
	first, err := a.arg(0, "path")
	if err != nil {
		return nil, false, err
	}
	path, err := toPath(first)
	if err != nil {
		return nil, false, err
	}
	closed := true
	if _, ok := a.kw["closed"]; ok {
		if closed, err = a.flag("closed"); err != nil {
			return nil, false, err
		}
	}
	return path, closed, nil
}

func polygonRuleAndEps(a args, i int) (advanced.Polygon, advanced.FillRule, float64, error) {
	v, err := a.arg(i, "polygon")
	if err != nil {
		return nil, 0, 0, err
	}
	path, err := toPath(v)
	if err != nil {
		return nil, 0, 0, errors.Wrap(err, "polygon")
	}
	rule, err := a.rule()
	if err != nil {
		return nil, 0, 0, err
	}
	eps, err := a.number("eps", advanced.DefaultEpsilon)
	return advanced.Polygon(path), rule, eps, err
}

func fromFaces(faces []advanced.Face) *zygo.SexpArray {
	items := make([]zygo.Sexp, len(faces))
	for i, face := range faces {
		items[i] = fromInts(face[:])
	}
	return array(items)
}
