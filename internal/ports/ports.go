package ports

// Package ports defines interfaces (hexagonal ports) for the session
// gateway. Implementations live in internal/adapters; orchestration in
// internal/service.

import (
	"context"
	"errors"

	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/domain/session"
)

// ErrNoCredential is returned by CredentialStore.Read when no complete
// credential bundle is stored for the session.
var ErrNoCredential = errors.New("no credential stored")

// CredentialStore persists and retrieves the credential bundle for a
// browser session. It is a dumb persisted key/value surface: no
// validation happens at this layer. Clear removes the token, the legacy
// secondary token slot, the role, the cached profile, and the cached
// email; from the guard's perspective the removal is all-or-nothing.
type CredentialStore interface {
	Read(ctx context.Context, sid string) (session.Credential, error)
	Write(ctx context.Context, sid string, cred session.Credential) error
	Clear(ctx context.Context, sid string) error
}

// FetchInput carries the inputs for a role-scoped data request.
type FetchInput struct {
	Role  session.Role
	Token string
}

// LoginInput carries the credentials forwarded to the remote API's
// login endpoint.
type LoginInput struct {
	Email    string
	Password string
}

// APIResponse is the raw result of a remote API call: the status line
// and body, untouched, for the classifier to interpret. A transport
// failure yields an error instead of a response.
type APIResponse struct {
	StatusCode int
	Body       []byte
}

// MemberAPI talks to the remote membership REST API. FetchRoleData
// issues the view's role-scoped GET with the bearer token; Login
// forwards credentials during sign-in. Neither interprets the response.
type MemberAPI interface {
	FetchRoleData(ctx context.Context, in FetchInput) (APIResponse, error)
	Login(ctx context.Context, in LoginInput) (APIResponse, error)
}
