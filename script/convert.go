package script

import (
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/osuushi/polyhull/advanced"
	"github.com/pkg/errors"
)

// Marks a :keyword after preprocessing. zygomys has no keyword syntax, so
// keywords travel as strings.
const kwPrefix = "__kw_"

// Rewrite source into something zygomys accepts:
//   - ":name" becomes the string "__kw_name"
//   - hyphens inside identifiers become underscores, since zygomys reads them
//     as subtraction
//   - ";" comments become "//" comments
//
// String literals are left alone.
func preprocessSource(source string) string {
	var out strings.Builder
	out.Grow(len(source) + len(source)/4)

	b := []byte(source)
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c == '"' || c == '`':
			end := skipString(b, i)
			out.Write(b[i:end])
			i = end

		case c == ';':
			for i < len(b) && b[i] == ';' {
				i++
			}
			out.WriteString("//")
			for i < len(b) && b[i] != '\n' {
				out.WriteByte(b[i])
				i++
			}

		case c == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && (isIdentChar(b[j]) || b[j] == '-') {
				j++
			}
			out.WriteString(`"` + kwPrefix + string(b[i+1:j]) + `"`)
			i = j

		case c == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			out.WriteByte('_')
			i++

		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

// Index just past the string literal starting at b[start]
func skipString(b []byte, start int) int {
	quote := b[start]
	i := start + 1
	for i < len(b) && b[i] != quote {
		if quote == '"' && b[i] == '\\' {
			i++
		}
		i++
	}
	if i < len(b) {
		i++
	}
	if i > len(b) {
		i = len(b)
	}
	return i
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// Arguments

type args struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

func parseArgs(raw []zygo.Sexp) args {
	result := args{kw: map[string]zygo.Sexp{}}
	for i := 0; i < len(raw); i++ {
		if name, ok := keyword(raw[i]); ok {
			if i+1 < len(raw) {
				result.kw[name] = raw[i+1]
				i++
			} else {
				result.kw[name] = zygo.SexpNull
			}
			continue
		}
		result.positional = append(result.positional, raw[i])
	}
	return result
}

func keyword(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// Positional argument i, or an error naming what was expected
func (a args) arg(i int, what string) (zygo.Sexp, error) {
	if i >= len(a.positional) {
		return nil, errors.Errorf("missing %s", what)
	}
	return a.positional[i], nil
}

func (a args) flag(name string) (bool, error) {
	v, ok := a.kw[name]
	if !ok {
		return false, nil
	}
	result, err := toBool(v)
	return result, errors.Wrap(err, name)
}

func (a args) number(name string, fallback float64) (float64, error) {
	v, ok := a.kw[name]
	if !ok {
		return fallback, nil
	}
	result, err := toFloat64(v)
	return result, errors.Wrap(err, name)
}

func (a args) rule() (advanced.FillRule, error) {
	nonzero, err := a.flag("nonzero")
	return advanced.FillRuleFor(nonzero), err
}

// Sexp to Go

func describe(s zygo.Sexp) string {
	if s == nil {
		return "nothing"
	}
	return s.SexpString(nil)
}

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, errors.Errorf("expected number, got %s", describe(s))
}

func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, errors.Errorf("expected integer, got %s", describe(s))
}

// A bare keyword counts as true
func toBool(s zygo.Sexp) (bool, error) {
	switch v := s.(type) {
	case *zygo.SexpBool:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return true, nil
		}
	}
	return false, errors.Errorf("expected boolean, got %s", describe(s))
}

func toSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, errors.Errorf("expected array or list, got %s", describe(s))
}

func toCoords(s zygo.Sexp) ([]float64, error) {
	items, err := toSlice(s)
	if err != nil {
		return nil, err
	}
	coords := make([]float64, len(items))
	for i, item := range items {
		if coords[i], err = toFloat64(item); err != nil {
			return nil, err
		}
	}
	return coords, nil
}

// A list of points of either dimension, as raw coordinates
func toRawPoints(s zygo.Sexp) ([][]float64, error) {
	items, err := toSlice(s)
	if err != nil {
		return nil, err
	}
	raw := make([][]float64, len(items))
	for i, item := range items {
		if raw[i], err = toCoords(item); err != nil {
			return nil, errors.Wrapf(err, "point %d", i)
		}
	}
	return raw, nil
}

func toPoint2(s zygo.Sexp) (advanced.Point2, error) {
	coords, err := toCoords(s)
	if err != nil {
		return advanced.Point2{}, err
	}
	if len(coords) != 2 {
		return advanced.Point2{}, errors.Errorf("expected 2D point, got %s", describe(s))
	}
	return advanced.Point2{X: coords[0], Y: coords[1]}, nil
}

func toPath(s zygo.Sexp) (advanced.Path, error) {
	items, err := toSlice(s)
	if err != nil {
		return nil, err
	}
	path := make(advanced.Path, len(items))
	for i, item := range items {
		if path[i], err = toPoint2(item); err != nil {
			return nil, errors.Wrapf(err, "point %d", i)
		}
	}
	return path, nil
}

func toPaths(s zygo.Sexp) ([]advanced.Path, error) {
	items, err := toSlice(s)
	if err != nil {
		return nil, err
	}
	paths := make([]advanced.Path, len(items))
	for i, item := range items {
		if paths[i], err = toPath(item); err != nil {
			return nil, errors.Wrapf(err, "path %d", i)
		}
	}
	return paths, nil
}

func toPolygonList(s zygo.Sexp) (advanced.PolygonList, error) {
	paths, err := toPaths(s)
	if err != nil {
		return nil, err
	}
	result := make(advanced.PolygonList, len(paths))
	for i, path := range paths {
		result[i] = advanced.Polygon(path)
	}
	return result, nil
}

// Go to Sexp

func array(items []zygo.Sexp) *zygo.SexpArray {
	if items == nil {
		items = []zygo.Sexp{}
	}
	return &zygo.SexpArray{Val: items}
}

func fromInts(ints []int) *zygo.SexpArray {
	items := make([]zygo.Sexp, len(ints))
	for i, n := range ints {
		items[i] = &zygo.SexpInt{Val: int64(n)}
	}
	return array(items)
}

func fromFloats(floats ...float64) *zygo.SexpArray {
	items := make([]zygo.Sexp, len(floats))
	for i, f := range floats {
		items[i] = &zygo.SexpFloat{Val: f}
	}
	return array(items)
}

func fromPath(path advanced.Path) *zygo.SexpArray {
	items := make([]zygo.Sexp, len(path))
	for i, p := range path {
		items[i] = fromFloats(p.X, p.Y)
	}
	return array(items)
}

func fromPaths(paths []advanced.Path) *zygo.SexpArray {
	items := make([]zygo.Sexp, len(paths))
	for i, path := range paths {
		items[i] = fromPath(path)
	}
	return array(items)
}

func fromPolygonList(polygons advanced.PolygonList) *zygo.SexpArray {
	items := make([]zygo.Sexp, len(polygons))
	for i, poly := range polygons {
		items[i] = fromPath(advanced.Path(poly))
	}
	return array(items)
}
