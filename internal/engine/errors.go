package engine

import "errors"

// Domain errors for equation validation. All of them surface before any
// stepping begins.
var (
	// ErrMalformedEquation indicates a left-hand side that is not a
	// differential of the unknown field with respect to a propagation
	// dimension.
	ErrMalformedEquation = errors.New("engine: equation left side must be d(field, pdim)")

	// ErrDimensionMismatch indicates a right-hand side referencing a
	// propagation dimension other than the declared one, or a transverse
	// dimension absent from the unknown field.
	ErrDimensionMismatch = errors.New("engine: equation references a foreign dimension")
)
