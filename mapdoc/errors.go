package mapdoc

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedDocument is returned when the markup cannot be read as a tree
	ErrMalformedDocument = errors.New("malformed map document")

	// ErrPathCommand is returned when a path's d attribute cannot be decoded
	ErrPathCommand = errors.New("invalid path data")

	// ErrMissingFill is returned when a path carries no fill colour
	ErrMissingFill = errors.New("path has no fill")
)

// PathError reports which path element (in traversal order) failed to decode
type PathError struct {
	Index int
	Err   error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path %d: %v", e.Index, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}
