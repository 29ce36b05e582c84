package internal

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// FillRule decides which regions of a self-overlapping polygon are filled.
// NonZero fills any point the boundary winds around a nonzero number of times.
// EvenOdd fills any point enclosed an odd number of times, whatever the
// direction of each winding.
type FillRule int

const (
	EvenOdd FillRule = iota
	NonZero
)

func (rule FillRule) Fills(windings int) bool {
	switch rule {
	case NonZero:
		return windings != 0
	case EvenOdd:
		return windings%2 != 0
	}
	return false
}

func (rule FillRule) String() string {
	switch rule {
	case NonZero:
		return "NonZero"
	case EvenOdd:
		return "EvenOdd"
	}
	return fmt.Sprintf("FillRule(%d)", rule)
}

// Convenience for APIs that expose the rule as a "nonzero" switch
func FillRuleFor(nonzero bool) FillRule {
	if nonzero {
		return NonZero
	}
	return EvenOdd
}

func ParseFillRule(s string) (FillRule, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "-", "")) {
	case "nonzero", "winding":
		return NonZero, nil
	case "evenodd":
		return EvenOdd, nil
	}
	return EvenOdd, errors.Errorf("unknown fill rule %q", s)
}
