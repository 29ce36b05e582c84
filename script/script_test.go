package script

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocessSource(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"keyword", `(polygon-parts p :nonzero true)`, `(polygon_parts p "__kw_nonzero" true)`},
		{"keyword with hyphen", `:max-depth`, `"__kw_max-depth"`},
		{"keyword inside string", `"a :b c"`, `"a :b c"`},
		{"hyphen inside string", `"hull-vertices"`, `"hull-vertices"`},
		{"escaped quote", `"say \"x-y\"" x-y`, `"say \"x-y\"" x_y`},
		{"backtick string", "`a-b` a-b", "`a-b` a_b"},
		{"subtraction", `(- 10 5)`, `(- 10 5)`},
		{"negative number", `[-1 -2.5e-3]`, `[-1 -2.5e-3]`},
		{"digit before hyphen", `hull2d-path`, `hull2d_path`},
		{"assignment", `(x := 10)`, `(x := 10)`},
		{"comment", `;; parts of :thing`, `// parts of :thing`},
		{"unterminated string", `"abc`, `"abc`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, preprocessSource(c.input))
		})
	}
}

func mustEvaluate(t *testing.T, source string) *Result {
	t.Helper()
	result, evalErrs, err := NewEngine().Evaluate(source)
	require.NoError(t, err)
	require.Empty(t, evalErrs)
	require.NotNil(t, result)
	return result
}

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name     string
		source   string
		expected string
	}{
		{"plain lisp", `(+ 1 2)`, "3"},
		{"pentagram parts", `(len (polygon-parts (star-polygon 5 2 10)))`, "5"},
		{"pentagram outline", `(len (polygon-parts (star-polygon 5 2 10) :nonzero true))`, "1"},
		{"crossings", `(len (path-self-intersections (star-polygon 5 2 10)))`, "5"},
		{"open path", `(len (path-self-intersections [[0 0] [2 2] [2 0] [0 2]] :closed false))`, "1"},
		{"split", `(len (split-path-at-self-crossings (star-polygon 5 2 10)))`, "11"},
		{"2D hull", `(len (hull [[0 0] [4 0] [2 1] [4 4] [0 4]]))`, "4"},
		{"2D hull with edge points", `(len (hull2d-path [[0 0] [2 0] [4 0] [4 4] [0 4]] :all true))`, "5"},
		{"cube faces", `(len (hull3d-faces [[0 0 0] [1 0 0] [0 1 0] [1 1 0] [0 0 1] [1 0 1] [0 1 1] [1 1 1]]))`, "12"},
		{"hull vertices", `(len (hull-vertices [[0 0 0] [1 0 0] [0 1 0] [0 0 1] [0.1 0.1 0.1]]))`, "4"},
		{"point in 2D hull", `(point-in-hull [3 3] [[0 0] [4 0] [4 4] [0 4]])`, "true"},
		{"point outside 3D hull", `(point-in-hull [2 0 0] [[0 0 0] [1 0 0] [0 1 0] [0 0 1]])`, "false"},
		{"point in polygon", `(point-in-polygon [0 0] (star-polygon 5 2 10))`, "-1"},
		{"point in polygon nonzero", `(point-in-polygon [0 0] (star-polygon 5 2 10) :nonzero true)`, "1"},
		{"region", `(region-contains (polygon-parts (star-polygon 5 2 10)) [0 0])`, "false"},
		{"region nonzero", `(region-contains (polygon-parts (star-polygon 5 2 10) :nonzero true) [0 0])`, "true"},
		{"area", `(> (polygon-area [[0 0] [2 0] [2 2] [0 2]]) 3.99)`, "true"},
		{"clockwise area", `(< (polygon-area [[0 0] [0 2] [2 2] [2 0]]) -3.99)`, "true"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, mustEvaluate(t, c.source).Value)
		})
	}
}

func TestEvaluateEmpty(t *testing.T) {
	result := mustEvaluate(t, "  \n\t")
	assert.Equal(t, "nil", result.Value)
	assert.Empty(t, result.Drawing.Polygons)
}

func TestDrawing(t *testing.T) {
	result := mustEvaluate(t, `
; draw the parts of a pentagram with its crossings
(def star (star-polygon 5 2 10))
(draw-polygons (polygon-parts star))
(draw-paths [star])
(draw-points [[0 0] [1 1]])
`)
	assert.Len(t, result.Drawing.Polygons, 5)
	require.Len(t, result.Drawing.Paths, 1)
	assert.Len(t, result.Drawing.Paths[0], 5)
	assert.Len(t, result.Drawing.Points, 2)
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name    string
		source  string
		message string
	}{
		{"syntax", `(+ 1 2`, ""},
		{"undefined symbol", `(+ 1 missing)`, ""},
		{"wrong argument", `(polygon-parts 5)`, "polygon-parts: polygon: expected array or list"},
		{"missing argument", `(point-in-polygon)`, "point-in-polygon: missing point"},
		{"mixed dimensions", `(hull [[0 0] [1 1 1]])`, "hull"},
		{"bad tolerance", `(polygon-parts (star-polygon 5 2 10) :eps -1)`, "polygon-parts"},
		{"hull point dimension", `(point-in-hull [0 0 0] [[0 0] [1 0] [0 1]])`, "expected 2D point"},
		{"bad star", `(star-polygon 5 5 1)`, "invalid star {5/5}"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			result, evalErrs, err := NewEngine().Evaluate(c.source)
			require.NoError(t, err)
			assert.Nil(t, result)
			require.NotEmpty(t, evalErrs)
			assert.NotEmpty(t, evalErrs[0].Message)
			assert.Contains(t, evalErrs[0].Error(), c.message)
		})
	}
}

func TestParseZygomysError(t *testing.T) {
	errs := parseZygomysError(EvalError{Message: "Error on line 3: unexpected end of input"})
	require.Len(t, errs, 1)
	assert.Equal(t, 3, errs[0].Line)
	assert.Equal(t, "line 3: unexpected end of input", errs[0].Error())

	errs = parseZygomysError(EvalError{Message: "  something broke\n"})
	assert.Equal(t, []EvalError{{Message: "something broke"}}, errs)
}

func TestTimeout(t *testing.T) {
	engine := &Engine{Timeout: 1}
	_, _, err := engine.Evaluate(`(len (polygon-parts (star-polygon 7 3 10)))`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

func TestConcurrentEvaluations(t *testing.T) {
	engine := NewEngine()
	var wg sync.WaitGroup
	results := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, results[i] = engine.Evaluate(`(len (polygon-parts (star-polygon 7 3 10)))`)
		}(i)
	}
	wg.Wait()

	// Every evaluation either finished or was superseded by a newer one
	for _, err := range results {
		if err != nil {
			assert.Contains(t, err.Error(), "superseded")
		}
	}
}
