package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/domain/session"
	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/observability/metrics"
	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/ports"
)

// sessionCookieName identifies the gateway's own browser session. The
// cookie carries only an opaque ID; the credential bundle lives in the
// store behind it.
const sessionCookieName = "mg_session"

// AuthHandlers provides HTTP handlers for sign-in and sign-out. Token
// issuance is entirely the remote API's job; these handlers only
// forward credentials and persist the returned bundle.
type AuthHandlers struct {
	API          ports.MemberAPI
	Store        ports.CredentialStore
	CookieDomain string
	CookieSecure bool
	Metrics      metrics.GuardRecorder
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// loginRequest is the browser's sign-in payload.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginUpstream is the subset of the remote login response the gateway
// stores: the bearer token, the declared role, and the profile summary
// cached for immediate display.
type loginUpstream struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	User  struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Name      string `json:"name"`
		Email     string `json:"email"`
	} `json:"user"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Login handles POST /auth/login: forward the credentials, store the
// returned bundle under a fresh gateway session, and answer with the
// role's home route.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_credentials",
			Err:     errors.New("email and password are required"),
		})
		return
	}

	resp, err := h.API.Login(r.Context(), ports.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		h.logger().ErrorContext(r.Context(), "login forward failed", slog.Any("error", err))
		WriteError(w, ErrorParams{
			Code:    http.StatusBadGateway,
			ErrCode: "network_error",
			Err:     errors.New("could not reach the server, check your connection and try again"),
		})
		return
	}

	var upstream loginUpstream
	if unmarshalErr := json.Unmarshal(resp.Body, &upstream); unmarshalErr != nil && resp.StatusCode < 300 {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadGateway,
			ErrCode: "bad_upstream_response",
			Err:     errors.New("login response could not be parsed"),
		})
		return
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		h.rejectLogin(w, resp.StatusCode, upstream)
		return
	}

	role, known := session.ParseRole(upstream.Role)
	if upstream.Token == "" || !known {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadGateway,
			ErrCode: "bad_upstream_response",
			Err:     errors.New("login response missing token or role"),
		})
		return
	}

	sid := uuid.NewString()
	cred := session.Credential{
		Token: upstream.Token,
		Role:  role,
		Profile: &session.ProfileSummary{
			FirstName: upstream.User.FirstName,
			LastName:  upstream.User.LastName,
			Name:      upstream.User.Name,
			Email:     upstream.User.Email,
		},
		Email: upstream.User.Email,
	}
	if writeErr := h.Store.Write(r.Context(), sid, cred); writeErr != nil {
		h.logger().ErrorContext(r.Context(), "store credential failed", slog.Any("error", writeErr))
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "store_failed",
			Err:     errors.New("could not persist session"),
		})
		return
	}

	h.setSessionCookie(w, sid)
	WriteJSON(w, http.StatusOK, map[string]any{
		"redirect": role.HomePath(),
		"role":     role,
		"profile":  cred.Profile,
	})
}

// Logout handles POST /auth/logout: clear the credential bundle and
// expire the gateway session cookie.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if h.Metrics != nil {
			h.Metrics.RecordStoreClear("logout")
		}
		if clearErr := h.Store.Clear(r.Context(), cookie.Value); clearErr != nil {
			h.logger().ErrorContext(r.Context(), "clear credential on logout failed", slog.Any("error", clearErr))
		}
	}

	h.expireSessionCookie(w)
	WriteJSON(w, http.StatusOK, map[string]string{"redirect": session.LoginPath})
}

func (h *AuthHandlers) rejectLogin(w http.ResponseWriter, status int, upstream loginUpstream) {
	msg := upstream.Message
	if msg == "" {
		msg = upstream.Error
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		if msg == "" {
			msg = "invalid email or password"
		}
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "invalid_credentials", Err: errors.New(msg)})
		return
	}
	if msg == "" {
		msg = "the server reported an error"
	}
	WriteError(w, ErrorParams{Code: http.StatusBadGateway, ErrCode: "server_error", Err: errors.New(msg)})
}

func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, sid string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sid,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandlers) expireSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}
