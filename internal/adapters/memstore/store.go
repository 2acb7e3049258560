package memstore

// Package memstore provides an in-memory credential store for
// development and tests. Contents live for the process lifetime only.

import (
	"context"
	"sync"

	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/domain/session"
	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/ports"
)

// Store is a concurrency-safe in-memory CredentialStore.
type Store struct {
	mu    sync.RWMutex
	creds map[string]session.Credential
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{creds: make(map[string]session.Credential)}
}

func (s *Store) Read(_ context.Context, sid string) (session.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cred, ok := s.creds[sid]
	if !ok || !cred.Present() {
		return session.Credential{}, ports.ErrNoCredential
	}
	return cred, nil
}

func (s *Store) Write(_ context.Context, sid string, cred session.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds[sid] = cred
	return nil
}

func (s *Store) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.creds, sid)
	return nil
}

// Ensure compile-time conformance to the port.
var _ ports.CredentialStore = (*Store)(nil)
