package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/domain/session"
	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/ports"
	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/service"
)

// GuardInterface defines the guard operations the view handlers need.
type GuardInterface interface {
	CheckSession(ctx context.Context, in service.CheckInput) (*session.Decision, error)
	Refetch(ctx context.Context, in service.RefetchInput) (*session.Decision, error)
}

// ViewHandlers serves the protected dashboard views. Every view runs
// the guard before any data is returned; the handlers only translate
// guard decisions into HTTP.
type ViewHandlers struct {
	Guard  GuardInterface
	Store  ports.CredentialStore
	Logger *slog.Logger
}

func (h *ViewHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Protected returns the handler for one role's dashboard view.
//
// `?retry=request` re-issues only the role-scoped data request with the
// credential already on file, matching the retry affordance of
// not-found and server-error decisions. All other requests run the full
// guard sequence.
func (h *ViewHandlers) Protected(requiredRole session.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := sessionID(r)
		if sid == "" {
			http.Redirect(w, r, session.LoginPath, http.StatusFound)
			return
		}

		var (
			decision *session.Decision
			err      error
		)
		if r.URL.Query().Get("retry") == "request" {
			decision, err = h.refetch(r, sid, requiredRole)
		} else {
			decision, err = h.Guard.CheckSession(r.Context(), service.CheckInput{
				SessionID:    sid,
				RequiredRole: requiredRole,
			})
		}
		if err != nil {
			h.fail(w, r, err)
			return
		}

		h.apply(w, r, decision)
	}
}

// Session reports the current session's guard decision for the navbar,
// which mounts alongside the page body and runs its own check against
// the credential's own role.
func (h *ViewHandlers) Session(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(r)
	if sid == "" {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	cred, err := h.Store.Read(r.Context(), sid)
	if err != nil {
		if errors.Is(err, ports.ErrNoCredential) {
			WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
			return
		}
		h.fail(w, r, err)
		return
	}

	decision, err := h.Guard.CheckSession(r.Context(), service.CheckInput{
		SessionID:    sid,
		RequiredRole: cred.Role,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if decision.Kind != session.DecisionRender {
		h.apply(w, r, decision)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"role":          cred.Role,
		"profile":       cred.Profile,
		"view":          decision.View,
	})
}

// refetch runs only the data request: the stored credential is re-read for
// its token but not re-validated.
func (h *ViewHandlers) refetch(r *http.Request, sid string, requiredRole session.Role) (*session.Decision, error) {
	cred, err := h.Store.Read(r.Context(), sid)
	if err != nil {
		if errors.Is(err, ports.ErrNoCredential) {
			return &session.Decision{
				Kind:       session.DecisionRedirectLogin,
				RedirectTo: session.LoginPath,
			}, nil
		}
		return nil, err
	}

	return h.Guard.Refetch(r.Context(), service.RefetchInput{
		SessionID: sid,
		Role:      requiredRole,
		Token:     cred.Token,
	})
}

// apply translates a guard decision into the HTTP response.
func (h *ViewHandlers) apply(w http.ResponseWriter, r *http.Request, d *session.Decision) {
	switch d.Kind {
	case session.DecisionRender:
		WriteJSON(w, http.StatusOK, map[string]any{
			"view": d.View,
			"data": d.Data,
		})

	case session.DecisionRedirectLogin, session.DecisionRedirectHome:
		http.Redirect(w, r, d.RedirectTo, http.StatusFound)

	case session.DecisionError:
		WriteJSON(w, errorStatus(d.Code), map[string]any{
			"error":   d.Code,
			"message": d.Message,
			"retry":   d.Retry,
			"view":    d.View,
		})

	default:
		h.fail(w, r, errors.New("unknown guard decision"))
	}
}

func (h *ViewHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	// Client went away mid-check; the decision is discarded and there is
	// nobody left to answer.
	if errors.Is(err, context.Canceled) {
		return
	}
	h.logger().ErrorContext(r.Context(), "guard failed", slog.Any("error", err))
	WriteError(w, ErrorParams{
		Code:    http.StatusInternalServerError,
		ErrCode: "internal_error",
		Err:     errors.New("session check failed"),
	})
}

func errorStatus(code string) int {
	switch code {
	case "not_found":
		return http.StatusNotFound
	case "network_error", "server_error":
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}

func sessionID(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
