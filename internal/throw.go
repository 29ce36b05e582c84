package internal

import "github.com/pkg/errors"

// Threading errors through every geometry helper would bury the algorithms in
// plumbing. Preconditions are checked with panics instead, and the public API
// recovers them into errors.

// A failed precondition. Only panics carrying this type are turned back into
// errors; runtime errors keep panicking.
type GeometryError struct {
	error
}

func (e GeometryError) Cause() error {
	return e.error
}

// Panic with a GeometryError.
func fatalf(format string, args ...interface{}) {
	Fatalf(format, args...)
}

func HandleGeometryPanicRecover(r interface{}) error {
	if r != nil {
		if geometryError, ok := r.(GeometryError); ok {
			return geometryError
		}
		panic(r)
	}
	return nil
}

// Panic with a GeometryError from outside this package. The caller must recover
// with HandleGeometryPanicRecover.
func Fatalf(format string, args ...interface{}) {
	panic(GeometryError{errors.Errorf(format, args...)})
}
