package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/domain/session"
	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/mocks"
	sessionmocks "github.com/Charlie119256/kramzfitnesshub-sub001/internal/mocks/session"
	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/ports"
)

func newTestGuard(store ports.CredentialStore, api ports.MemberAPI) *GuardService {
	return NewGuardService(GuardServiceOptions{
		Store: store,
		API:   api,
		Observe: GuardObservability{
			Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		},
	})
}

func seedCredential(t *testing.T, store *sessionmocks.TrackingStore, role session.Role) session.Credential {
	t.Helper()
	cred := session.Credential{
		Token: signedToken(t, jwt.MapClaims{"user_id": 7}),
		Role:  role,
	}
	store.Seed("sid-1", cred)
	return cred
}

func TestGuard_NoCredential_RedirectsLogin(t *testing.T) {
	store := sessionmocks.NewTrackingStore()
	api := sessionmocks.NewStubMemberAPI()
	g := newTestGuard(store, api)

	d, err := g.CheckSession(context.Background(), CheckInput{SessionID: "sid-1", RequiredRole: session.RoleMember})
	require.NoError(t, err)

	assert.Equal(t, session.DecisionRedirectLogin, d.Kind)
	assert.Equal(t, session.LoginPath, d.RedirectTo)
	assert.Equal(t, session.ViewFailed, d.View.State)
	assert.Empty(t, api.FetchCalls(), "absent credential must not reach the network")
	assert.Zero(t, store.Clears(), "nothing to clear when nothing is stored")
}

func TestGuard_RoleMismatch_RedirectsHomeWithoutClearing(t *testing.T) {
	store := sessionmocks.NewTrackingStore()
	api := sessionmocks.NewStubMemberAPI()
	g := newTestGuard(store, api)
	seedCredential(t, store, session.RoleMember)

	d, err := g.CheckSession(context.Background(), CheckInput{SessionID: "sid-1", RequiredRole: session.RoleAdmin})
	require.NoError(t, err)

	assert.Equal(t, session.DecisionRedirectHome, d.Kind)
	assert.Equal(t, "/member/dashboard", d.RedirectTo)
	assert.Empty(t, api.FetchCalls(), "role mismatch is decided locally")
	assert.Zero(t, store.Clears())

	// The credential survives intact for the user's own dashboard.
	stored, ok := store.Stored("sid-1")
	require.True(t, ok)
	assert.True(t, stored.Present())
}

func TestGuard_MalformedToken_ClearsAndRedirects(t *testing.T) {
	store := sessionmocks.NewTrackingStore()
	api := sessionmocks.NewStubMemberAPI()
	g := newTestGuard(store, api)
	store.Seed("sid-1", session.Credential{Token: "not-a-token", Role: session.RoleMember})

	d, err := g.CheckSession(context.Background(), CheckInput{SessionID: "sid-1", RequiredRole: session.RoleMember})
	require.NoError(t, err)

	assert.Equal(t, session.DecisionRedirectLogin, d.Kind)
	assert.Equal(t, 1, store.Clears())
	assert.Empty(t, api.FetchCalls())

	_, ok := store.Stored("sid-1")
	assert.False(t, ok, "corrupt credential must be erased")
}

func TestGuard_NonNumericUserID_ClearsAndRedirects(t *testing.T) {
	store := sessionmocks.NewTrackingStore()
	api := sessionmocks.NewStubMemberAPI()
	g := newTestGuard(store, api)
	store.Seed("sid-1", session.Credential{
		Token: signedToken(t, jwt.MapClaims{"user_id": "7"}),
		Role:  session.RoleMember,
	})

	d, err := g.CheckSession(context.Background(), CheckInput{SessionID: "sid-1", RequiredRole: session.RoleMember})
	require.NoError(t, err)

	assert.Equal(t, session.DecisionRedirectLogin, d.Kind)
	assert.Equal(t, 1, store.Clears())
	assert.Empty(t, api.FetchCalls())
}

func TestGuard_Authorized_RendersWithData(t *testing.T) {
	store := sessionmocks.NewTrackingStore()
	api := sessionmocks.NewStubMemberAPI()
	api.FetchResponse = ports.APIResponse{StatusCode: 200, Body: []byte(`{"members":[{"id":7}]}`)}
	g := newTestGuard(store, api)
	cred := seedCredential(t, store, session.RoleMember)

	d, err := g.CheckSession(context.Background(), CheckInput{SessionID: "sid-1", RequiredRole: session.RoleMember})
	require.NoError(t, err)

	assert.Equal(t, session.DecisionRender, d.Kind)
	assert.JSONEq(t, `{"members":[{"id":7}]}`, string(d.Data))
	assert.Equal(t, session.ViewPassed, d.View.State)
	assert.NotEmpty(t, d.View.ID)

	calls := api.FetchCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, session.RoleMember, calls[0].Role)
	assert.Equal(t, cred.Token, calls[0].Token)

	// Rendering neither rewrites nor clears the credential, and the
	// store is not consulted again after the fetch settles.
	assert.Zero(t, store.Writes())
	assert.Zero(t, store.Clears())
	assert.Equal(t, 1, store.Reads())
}

func TestGuard_Idempotent_RepeatedChecks(t *testing.T) {
	store := sessionmocks.NewTrackingStore()
	api := sessionmocks.NewStubMemberAPI()
	g := newTestGuard(store, api)
	seedCredential(t, store, session.RoleMember)

	for i := 0; i < 3; i++ {
		d, err := g.CheckSession(context.Background(), CheckInput{SessionID: "sid-1", RequiredRole: session.RoleMember})
		require.NoError(t, err)
		assert.Equal(t, session.DecisionRender, d.Kind)
	}
	assert.Zero(t, store.Writes())
	assert.Zero(t, store.Clears())
}

func TestGuard_Rejected_ClearsAndRedirects(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"401", 401, `{"message":"token expired"}`},
		{"403", 403, `{"message":"forbidden"}`},
		{"404 stale profile", 404, `{"message":"member not found","debug":{"user_exists":true}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := sessionmocks.NewTrackingStore()
			api := sessionmocks.NewStubMemberAPI()
			api.FetchResponse = ports.APIResponse{StatusCode: tt.status, Body: []byte(tt.body)}
			g := newTestGuard(store, api)
			seedCredential(t, store, session.RoleMember)

			d, err := g.CheckSession(context.Background(), CheckInput{SessionID: "sid-1", RequiredRole: session.RoleMember})
			require.NoError(t, err)

			assert.Equal(t, session.DecisionRedirectLogin, d.Kind)
			assert.Equal(t, 1, store.Clears())
			_, ok := store.Stored("sid-1")
			assert.False(t, ok)
		})
	}
}

func TestGuard_NotFound_ErrorWithRequestRetry(t *testing.T) {
	store := sessionmocks.NewTrackingStore()
	api := sessionmocks.NewStubMemberAPI()
	api.FetchResponse = ports.APIResponse{StatusCode: 404, Body: []byte(`{"message":"no such record"}`)}
	g := newTestGuard(store, api)
	seedCredential(t, store, session.RoleMember)

	d, err := g.CheckSession(context.Background(), CheckInput{SessionID: "sid-1", RequiredRole: session.RoleMember})
	require.NoError(t, err)

	assert.Equal(t, session.DecisionError, d.Kind)
	assert.Equal(t, "not_found", d.Code)
	assert.Equal(t, "no such record", d.Message)
	assert.Equal(t, session.RetryRequest, d.Retry)
	assert.Equal(t, session.ViewFailed, d.View.State)
	assert.Zero(t, store.Clears(), "a plain 404 keeps the credential")
}

func TestGuard_ServerError_ErrorWithRequestRetry(t *testing.T) {
	store := sessionmocks.NewTrackingStore()
	api := sessionmocks.NewStubMemberAPI()
	api.FetchResponse = ports.APIResponse{StatusCode: 500, Body: []byte(`{"message":"boom"}`)}
	g := newTestGuard(store, api)
	seedCredential(t, store, session.RoleMember)

	d, err := g.CheckSession(context.Background(), CheckInput{SessionID: "sid-1", RequiredRole: session.RoleMember})
	require.NoError(t, err)

	assert.Equal(t, session.DecisionError, d.Kind)
	assert.Equal(t, "server_error", d.Code)
	assert.Equal(t, "boom", d.Message)
	assert.Equal(t, session.RetryRequest, d.Retry)
	assert.Zero(t, store.Clears())
}

func TestGuard_NetworkError_ErrorWithFullRetry(t *testing.T) {
	store := sessionmocks.NewTrackingStore()
	api := sessionmocks.NewStubMemberAPI()
	api.FetchFunc = func(context.Context, ports.FetchInput) (ports.APIResponse, error) {
		return ports.APIResponse{}, errors.New("dial tcp: connection refused")
	}
	g := newTestGuard(store, api)
	seedCredential(t, store, session.RoleMember)

	d, err := g.CheckSession(context.Background(), CheckInput{SessionID: "sid-1", RequiredRole: session.RoleMember})
	require.NoError(t, err)

	assert.Equal(t, session.DecisionError, d.Kind)
	assert.Equal(t, "network_error", d.Code)
	assert.Equal(t, session.RetryFull, d.Retry)
	assert.NotContains(t, d.Message, "dial tcp")
	assert.Zero(t, store.Clears(), "connectivity failure keeps the credential")
}

func TestGuard_CanceledContext_DiscardsResult(t *testing.T) {
	store := sessionmocks.NewTrackingStore()
	api := sessionmocks.NewStubMemberAPI()
	g := newTestGuard(store, api)
	seedCredential(t, store, session.RoleMember)

	ctx, cancel := context.WithCancel(context.Background())
	api.FetchFunc = func(context.Context, ports.FetchInput) (ports.APIResponse, error) {
		// Simulate the view unmounting while the request is in flight.
		cancel()
		return ports.APIResponse{StatusCode: 401, Body: []byte(`{}`)}, nil
	}

	d, err := g.CheckSession(ctx, CheckInput{SessionID: "sid-1", RequiredRole: session.RoleMember})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, d)
	assert.Zero(t, store.Clears(), "late results must not mutate the store")
}

func TestGuard_StoreReadFailure_ReturnsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockCredentialStore(ctrl)
	store.EXPECT().Read(gomock.Any(), "sid-1").Return(session.Credential{}, errors.New("redis: connection pool timeout"))
	api := sessionmocks.NewStubMemberAPI()
	g := newTestGuard(store, api)

	d, err := g.CheckSession(context.Background(), CheckInput{SessionID: "sid-1", RequiredRole: session.RoleMember})
	require.Error(t, err)
	assert.Nil(t, d)
	assert.Contains(t, err.Error(), "read credential")
	assert.Empty(t, api.FetchCalls())
}

func TestGuard_ClearFailure_StillRedirects(t *testing.T) {
	store := sessionmocks.NewTrackingStore()
	store.ClearErr = errors.New("store unavailable")
	api := sessionmocks.NewStubMemberAPI()
	api.FetchResponse = ports.APIResponse{StatusCode: 401, Body: []byte(`{}`)}
	g := newTestGuard(store, api)
	seedCredential(t, store, session.RoleMember)

	d, err := g.CheckSession(context.Background(), CheckInput{SessionID: "sid-1", RequiredRole: session.RoleMember})
	require.NoError(t, err)
	assert.Equal(t, session.DecisionRedirectLogin, d.Kind)
}

func TestGuard_Refetch_SkipsLocalValidation(t *testing.T) {
	store := sessionmocks.NewTrackingStore()
	api := sessionmocks.NewStubMemberAPI()
	api.FetchResponse = ports.APIResponse{StatusCode: 200, Body: []byte(`{"ok":true}`)}
	g := newTestGuard(store, api)

	d, err := g.Refetch(context.Background(), RefetchInput{
		SessionID: "sid-1",
		Role:      session.RoleClerk,
		Token:     "held-by-the-view",
	})
	require.NoError(t, err)

	assert.Equal(t, session.DecisionRender, d.Kind)
	assert.Zero(t, store.Reads(), "retrying the request re-uses the held credential")

	calls := api.FetchCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, session.RoleClerk, calls[0].Role)
	assert.Equal(t, "held-by-the-view", calls[0].Token)
}
