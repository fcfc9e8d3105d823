package models

import "errors"

// Domain errors that can be returned by stores and clients
var (
	// ErrSessionNotFound indicates the session does not exist or its lifetime
	// has elapsed. Callers only need the binary usability signal, so both
	// cases collapse to this one error.
	ErrSessionNotFound = errors.New("session not found")
)
