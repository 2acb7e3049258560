package redisstore

// Package redisstore provides the Redis-backed credential store for
// production use.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/domain/session"
	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/ports"
)

// Hash fields of one credential bundle. The legacy role-scoped token
// slot survives from an older storage schema; reads tolerate either
// slot being populated, writes fill only the primary, and clears always
// remove both.
const (
	fieldToken       = "token"
	fieldLegacyToken = "role_token"
	fieldRole        = "role"
	fieldProfile     = "profile"
	fieldEmail       = "email"
)

// CredentialStore keeps each session's credential bundle in a single
// Redis hash, so Clear (DEL) removes every field atomically.
type CredentialStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewCredentialStore creates a Redis-backed credential store. A zero
// ttl stores bundles without expiry, matching a browser session whose
// persisted storage has no client-side lifetime.
func NewCredentialStore(client redis.UniversalClient, ttl time.Duration) *CredentialStore {
	return &CredentialStore{
		client: client,
		prefix: "cred:",
		ttl:    ttl,
	}
}

func (s *CredentialStore) Read(ctx context.Context, sid string) (session.Credential, error) {
	if sid == "" {
		return session.Credential{}, ports.ErrNoCredential
	}

	fields, err := s.client.HGetAll(ctx, s.prefix+sid).Result()
	if err != nil {
		return session.Credential{}, fmt.Errorf("redis hgetall: %w", err)
	}

	token := fields[fieldToken]
	if token == "" {
		token = fields[fieldLegacyToken]
	}
	cred := session.Credential{
		Token: token,
		Role:  session.Role(fields[fieldRole]),
		Email: fields[fieldEmail],
	}
	if raw := fields[fieldProfile]; raw != "" {
		var profile session.ProfileSummary
		if unmarshalErr := json.Unmarshal([]byte(raw), &profile); unmarshalErr != nil {
			return session.Credential{}, fmt.Errorf("unmarshal cached profile: %w", unmarshalErr)
		}
		cred.Profile = &profile
	}

	if !cred.Present() {
		return session.Credential{}, ports.ErrNoCredential
	}
	return cred, nil
}

func (s *CredentialStore) Write(ctx context.Context, sid string, cred session.Credential) error {
	if sid == "" {
		return errors.New("session ID cannot be empty")
	}

	values := map[string]any{
		fieldToken: cred.Token,
		fieldRole:  string(cred.Role),
		fieldEmail: cred.Email,
	}
	if cred.Profile != nil {
		data, err := json.Marshal(cred.Profile)
		if err != nil {
			return fmt.Errorf("marshal cached profile: %w", err)
		}
		values[fieldProfile] = string(data)
	}

	key := s.prefix + sid
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, values)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis write credential: %w", err)
	}
	return nil
}

func (s *CredentialStore) Clear(ctx context.Context, sid string) error {
	if sid == "" {
		return nil // Nothing to clear
	}
	if err := s.client.Del(ctx, s.prefix+sid).Err(); err != nil {
		return fmt.Errorf("redis clear credential: %w", err)
	}
	return nil
}

// Ensure compile-time conformance to the port.
var _ ports.CredentialStore = (*CredentialStore)(nil)
