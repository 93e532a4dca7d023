package model

import "github.com/pkg/errors"

var (
	// ErrInvalidDimensions is returned when a grid is constructed with zero
	// or negative rows or columns.
	ErrInvalidDimensions = errors.New("invalid grid dimensions")

	// ErrOutOfBounds is returned when a coordinate falls outside
	// [0, rows) x [0, cols).
	ErrOutOfBounds = errors.New("coordinate out of bounds")
)
