package session

// Package session contains simple hand-written test doubles for the
// session gateway ports. These are lightweight and suitable for unit
// tests without codegen; call counters support asserting that a code
// path issued (or skipped) a store or API call.

import (
	"context"
	"sync"

	domainsession "github.com/Charlie119256/kramzfitnesshub-sub001/internal/domain/session"
	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.MemberAPI       = (*StubMemberAPI)(nil)
	_ ports.CredentialStore = (*TrackingStore)(nil)
)

// StubMemberAPI simulates the remote membership API with programmable
// responses and per-method call counters.
type StubMemberAPI struct {
	FetchFunc func(ctx context.Context, in ports.FetchInput) (ports.APIResponse, error)
	LoginFunc func(ctx context.Context, in ports.LoginInput) (ports.APIResponse, error)

	// Defaults used when the func fields are nil.
	FetchResponse ports.APIResponse
	LoginResponse ports.APIResponse

	mu         sync.Mutex
	fetchCalls []ports.FetchInput
	loginCalls []ports.LoginInput
}

// NewStubMemberAPI creates a StubMemberAPI whose default answer to both
// methods is 200 with an empty JSON object.
func NewStubMemberAPI() *StubMemberAPI {
	return &StubMemberAPI{
		FetchResponse: ports.APIResponse{StatusCode: 200, Body: []byte(`{}`)},
		LoginResponse: ports.APIResponse{StatusCode: 200, Body: []byte(`{}`)},
	}
}

func (s *StubMemberAPI) FetchRoleData(ctx context.Context, in ports.FetchInput) (ports.APIResponse, error) {
	s.mu.Lock()
	s.fetchCalls = append(s.fetchCalls, in)
	s.mu.Unlock()

	if s.FetchFunc != nil {
		return s.FetchFunc(ctx, in)
	}
	return s.FetchResponse, nil
}

func (s *StubMemberAPI) Login(ctx context.Context, in ports.LoginInput) (ports.APIResponse, error) {
	s.mu.Lock()
	s.loginCalls = append(s.loginCalls, in)
	s.mu.Unlock()

	if s.LoginFunc != nil {
		return s.LoginFunc(ctx, in)
	}
	return s.LoginResponse, nil
}

// FetchCalls returns a copy of the recorded FetchRoleData inputs.
func (s *StubMemberAPI) FetchCalls() []ports.FetchInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.FetchInput, len(s.fetchCalls))
	copy(out, s.fetchCalls)
	return out
}

// LoginCalls returns a copy of the recorded Login inputs.
func (s *StubMemberAPI) LoginCalls() []ports.LoginInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.LoginInput, len(s.loginCalls))
	copy(out, s.loginCalls)
	return out
}

// TrackingStore is an in-memory credential store that counts calls and
// can be forced to fail per method.
type TrackingStore struct {
	ReadErr  error
	WriteErr error
	ClearErr error

	mu     sync.Mutex
	creds  map[string]domainsession.Credential
	reads  int
	writes int
	clears int
}

// NewTrackingStore creates an empty TrackingStore.
func NewTrackingStore() *TrackingStore {
	return &TrackingStore{creds: make(map[string]domainsession.Credential)}
}

// Seed stores a credential without counting it as a Write.
func (t *TrackingStore) Seed(sid string, cred domainsession.Credential) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.creds[sid] = cred
}

func (t *TrackingStore) Read(_ context.Context, sid string) (domainsession.Credential, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reads++
	if t.ReadErr != nil {
		return domainsession.Credential{}, t.ReadErr
	}
	cred, ok := t.creds[sid]
	if !ok || !cred.Present() {
		return domainsession.Credential{}, ports.ErrNoCredential
	}
	return cred, nil
}

func (t *TrackingStore) Write(_ context.Context, sid string, cred domainsession.Credential) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.writes++
	if t.WriteErr != nil {
		return t.WriteErr
	}
	t.creds[sid] = cred
	return nil
}

func (t *TrackingStore) Clear(_ context.Context, sid string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clears++
	if t.ClearErr != nil {
		return t.ClearErr
	}
	delete(t.creds, sid)
	return nil
}

// Reads reports how many Read calls were made.
func (t *TrackingStore) Reads() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reads
}

// Writes reports how many Write calls were made.
func (t *TrackingStore) Writes() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.writes
}

// Clears reports how many Clear calls were made.
func (t *TrackingStore) Clears() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.clears
}

// Stored returns the credential currently held for sid, if any.
func (t *TrackingStore) Stored(sid string) (domainsession.Credential, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cred, ok := t.creds[sid]
	return cred, ok
}
