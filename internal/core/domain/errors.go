package domain

import "errors"

// Cross-entity errors forming the request-level taxonomy. Every rejected
// operation wraps one of these so the transport layer can map it to a
// distinct status code with a reason string.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("access forbidden")
	ErrValidation      = errors.New("validation failed")
)
