package dynamo

import "errors"

// Domain errors for scene operations.
var (
	// ErrInvalidState indicates a body with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrBodyCount indicates a store was requested with no bodies.
	ErrBodyCount = errors.New("dynamo: body count must be positive")

	// ErrFetch indicates an image could not be fetched or decoded.
	ErrFetch = errors.New("dynamo: image fetch failed")
)

// BodyError wraps an error with the index of the offending body.
type BodyError struct {
	Index   int
	Wrapped error
}

func (e *BodyError) Error() string {
	return e.Wrapped.Error()
}

func (e *BodyError) Unwrap() error {
	return e.Wrapped
}
