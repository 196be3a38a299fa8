package book

import "errors"

// Error kinds shared across the package. Callers match them with errors.Is;
// the wrapped chain keeps the underlying cause.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrIO                = errors.New("i/o failure")
	ErrResourceExhausted = errors.New("resource exhausted")
)
