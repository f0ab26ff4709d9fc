package identity

import "errors"

var (
	// ErrUnauthenticated signals a missing or undecodable bearer credential.
	ErrUnauthenticated = errors.New("unauthenticated")
)
