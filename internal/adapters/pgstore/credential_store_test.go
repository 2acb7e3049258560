package pgstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/domain/session"
	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/ports"
	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/testutil"
)

func TestCredentialStore_WriteReadClear(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := NewCredentialStore(db)
	ctx := context.Background()

	cred := session.Credential{
		Token: "abc.def.ghi",
		Role:  session.RoleMember,
		Profile: &session.ProfileSummary{
			FirstName: "Alma",
			LastName:  "Reyes",
			Email:     "alma@example.com",
		},
		Email: "alma@example.com",
	}

	require.NoError(t, store.Write(ctx, "sid-1", cred))

	got, err := store.Read(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, cred, got)

	require.NoError(t, store.Clear(ctx, "sid-1"))

	_, err = store.Read(ctx, "sid-1")
	assert.ErrorIs(t, err, ports.ErrNoCredential)
}

func TestCredentialStore_ReadMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := NewCredentialStore(db)

	_, err := store.Read(context.Background(), "unknown")
	assert.ErrorIs(t, err, ports.ErrNoCredential)

	_, err = store.Read(context.Background(), "")
	assert.ErrorIs(t, err, ports.ErrNoCredential)
}

func TestCredentialStore_WriteReplacesExistingRow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := NewCredentialStore(db)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "sid-1", session.Credential{
		Token: "old.tok.en",
		Role:  session.RoleMember,
	}))
	require.NoError(t, store.Write(ctx, "sid-1", session.Credential{
		Token: "new.tok.en",
		Role:  session.RoleClerk,
		Email: "clerk@example.com",
	}))

	got, err := store.Read(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "new.tok.en", got.Token)
	assert.Equal(t, session.RoleClerk, got.Role)
	assert.Equal(t, "clerk@example.com", got.Email)
	assert.Nil(t, got.Profile)
}

func TestCredentialStore_LegacyTokenSlot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := NewCredentialStore(db)
	ctx := context.Background()

	// Simulate a row written by the old schema: only the legacy slot
	// holds a token.
	_, err := db.ExecContext(ctx, `
		INSERT INTO credentials (session_id, token, legacy_token, role, updated_at)
		VALUES ('sid-legacy', NULL, 'legacy.tok.en', 'admin', now())`)
	require.NoError(t, err)

	got, err := store.Read(ctx, "sid-legacy")
	require.NoError(t, err)
	assert.Equal(t, "legacy.tok.en", got.Token)
	assert.Equal(t, session.RoleAdmin, got.Role)

	// A fresh write nulls the legacy slot so the primary token wins.
	require.NoError(t, store.Write(ctx, "sid-legacy", session.Credential{
		Token: "fresh.tok.en",
		Role:  session.RoleAdmin,
	}))

	var legacy any
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT legacy_token FROM credentials WHERE session_id = 'sid-legacy'`).Scan(&legacy))
	assert.Nil(t, legacy)

	got, err = store.Read(ctx, "sid-legacy")
	require.NoError(t, err)
	assert.Equal(t, "fresh.tok.en", got.Token)
}

func TestCredentialStore_IncompleteBundleReadsAsAbsent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := NewCredentialStore(db)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `
		INSERT INTO credentials (session_id, token, role, updated_at)
		VALUES ('sid-partial', 'abc.def.ghi', NULL, now())`)
	require.NoError(t, err)

	_, err = store.Read(ctx, "sid-partial")
	assert.ErrorIs(t, err, ports.ErrNoCredential)
}

func TestCredentialStore_ClearMissingIsNoop(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := NewCredentialStore(db)

	assert.NoError(t, store.Clear(context.Background(), "unknown"))
	assert.NoError(t, store.Clear(context.Background(), ""))
}
