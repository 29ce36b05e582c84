// Package script evaluates small zygomys programs against the polyhull
// operations, so hulls and polygon parts can be explored without writing Go.
//
//	(def star (star-polygon 5 2 10))
//	(draw-polygons (polygon-parts star :nonzero true))
//	(len (path-self-intersections star))
//
// Points are arrays of two or three numbers, and paths and polygons are
// arrays of points.
package script

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/osuushi/polyhull/advanced"
	"github.com/pkg/errors"
)

// A problem in the user's program, as opposed to a failure of the engine
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

type Result struct {
	// The printed value of the last expression
	Value string
	// Everything the program asked to draw
	Drawing advanced.Drawing
}

// Engine runs programs in a fresh sandbox each time. It is safe for concurrent
// use, but only the most recent evaluation's result is returned; older ones
// report that they were superseded.
type Engine struct {
	// Zero means DefaultTimeout
	Timeout time.Duration

	mu         sync.Mutex
	generation uint64
}

func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate a program. Mistakes in the program come back as EvalErrors with a
// nil Result. The error is reserved for timeouts and engine failures.
func (e *Engine) Evaluate(source string) (*Result, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: errors.Errorf("panic during evaluation: %v", r)}
			}
		}()
		result, evalErrs := evaluate(source)
		ch <- evalResult{result: result, errors: evalErrs}
	}()

	return e.wait(ch, gen)
}

func evaluate(source string) (*Result, []EvalError) {
	if strings.TrimSpace(source) == "" {
		return &Result{Value: "nil"}, nil
	}

	env := zygo.NewZlispSandbox()
	defer env.Stop()

	result := &Result{}
	registerBuiltins(env, &result.Drawing)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err)
	}
	value, err := env.Run()
	if err != nil {
		return nil, parseZygomysError(err)
	}
	result.Value = value.SexpString(nil)
	return result, nil
}

// zygomys reports errors as "Error on line N: ...", sometimes without the
// leading "Error"
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

func parseZygomysError(err error) []EvalError {
	msg := err.Error()
	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
