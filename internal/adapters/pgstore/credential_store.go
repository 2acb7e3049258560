package pgstore

// Package pgstore provides the Postgres-backed credential store, used
// when credential bundles must survive gateway restarts without Redis.

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/domain/session"
	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/ports"
)

// CredentialStore persists credential bundles in the credentials table,
// one row per gateway session. The row carries both token slots of the
// storage schema; reads prefer the primary and fall back to the legacy
// slot, and clears delete the whole row.
type CredentialStore struct {
	db *sql.DB
}

// NewCredentialStore creates a Postgres-backed credential store.
func NewCredentialStore(db *sql.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

func (s *CredentialStore) Read(ctx context.Context, sid string) (session.Credential, error) {
	if sid == "" {
		return session.Credential{}, ports.ErrNoCredential
	}

	const q = `
		SELECT COALESCE(token, ''), COALESCE(legacy_token, ''), COALESCE(role, ''), profile, COALESCE(email, '')
		FROM credentials
		WHERE session_id = $1`

	var (
		token, legacyToken, role, email string
		profileRaw                      []byte
	)
	err := s.db.QueryRowContext(ctx, q, sid).Scan(&token, &legacyToken, &role, &profileRaw, &email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return session.Credential{}, ports.ErrNoCredential
		}
		return session.Credential{}, fmt.Errorf("select credential: %w", err)
	}

	if token == "" {
		token = legacyToken
	}
	cred := session.Credential{
		Token: token,
		Role:  session.Role(role),
		Email: email,
	}
	if len(profileRaw) > 0 {
		var profile session.ProfileSummary
		if unmarshalErr := json.Unmarshal(profileRaw, &profile); unmarshalErr != nil {
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

	var profileRaw []byte
	if cred.Profile != nil {
		data, err := json.Marshal(cred.Profile)
		if err != nil {
			return fmt.Errorf("marshal cached profile: %w", err)
		}
		profileRaw = data
	}

	const insert = `
		INSERT INTO credentials (session_id, token, legacy_token, role, profile, email, updated_at)
		VALUES ($1, $2, NULL, $3, $4, $5, now())`

	_, err := s.db.ExecContext(ctx, insert, sid, cred.Token, string(cred.Role), profileRaw, cred.Email)
	if err == nil {
		return nil
	}
	if !isUniqueViolation(err) {
		return fmt.Errorf("insert credential: %w", err)
	}

	// Row already exists for this session: replace the bundle. The legacy
	// token slot is nulled so the fresh primary token wins on read.
	const update = `
		UPDATE credentials
		SET token = $2, legacy_token = NULL, role = $3, profile = $4, email = $5, updated_at = now()
		WHERE session_id = $1`

	if _, err := s.db.ExecContext(ctx, update, sid, cred.Token, string(cred.Role), profileRaw, cred.Email); err != nil {
		return fmt.Errorf("update credential: %w", err)
	}
	return nil
}

func (s *CredentialStore) Clear(ctx context.Context, sid string) error {
	if sid == "" {
		return nil // Nothing to clear
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE session_id = $1`, sid); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// Ensure compile-time conformance to the port.
var _ ports.CredentialStore = (*CredentialStore)(nil)
