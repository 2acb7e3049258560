package service

import (
	"errors"
	"fmt"
)

// Sentinel errors for classified remote API outcomes. The guard resolves
// the credential-shaped ones (unauthorized, stale profile) silently by
// clearing the store and redirecting; the rest surface to the user with
// a retry affordance.
var (
	ErrUnauthorized = errors.New("credential rejected by server")
	ErrStaleProfile = errors.New("profile record unreachable for valid credential")
	ErrNotFound     = errors.New("resource not found")
	ErrServer       = errors.New("server error")
	ErrNetwork      = errors.New("no response from server")
)

// DecodeError indicates a malformed credential: the token could not be
// split, base64-decoded, or parsed into a JSON object. It always
// resolves to clearing the store and redirecting to login.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode token: %v", e.Err) }

func (e *DecodeError) Unwrap() error { return e.Err }

// ValidationError indicates a structurally decodable payload whose
// claims are semantically invalid (e.g. user_id missing or non-numeric).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "invalid claims: " + e.Reason }
