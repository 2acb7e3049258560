package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/domain/session"
	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/observability/metrics"
	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/ports"
)

// GuardObservability groups the optional logging/metrics dependencies.
type GuardObservability struct {
	Logger  *slog.Logger
	Metrics metrics.GuardRecorder
}

// GuardServiceOptions groups dependencies for GuardService.
type GuardServiceOptions struct {
	Store   ports.CredentialStore
	API     ports.MemberAPI
	Observe GuardObservability
}

// GuardService runs the per-view session check every protected view
// performs before rendering: read the stored credential, gate locally
// on its shape, then let the remote API's answer to the role-scoped
// request decide. One shared implementation replaces the per-view
// copies of this sequence.
type GuardService struct {
	store      ports.CredentialStore
	api        ports.MemberAPI
	decoder    *TokenDecoder
	classifier *Classifier
	logger     *slog.Logger
	metrics    metrics.GuardRecorder
}

// NewGuardService constructs a new GuardService.
func NewGuardService(opts GuardServiceOptions) *GuardService {
	logger := opts.Observe.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &GuardService{
		store:      opts.Store,
		api:        opts.API,
		decoder:    NewTokenDecoder(),
		classifier: NewClassifier(nil),
		logger:     logger,
		metrics:    opts.Observe.Metrics,
	}
}

// CheckInput identifies the browser session and the role the mounted
// view requires.
type CheckInput struct {
	SessionID    string
	RequiredRole session.Role
}

// CheckSession runs the full guard sequence for one view. The returned
// decision is terminal for that view mount; a fresh mount re-enters
// here. An error is returned only for infrastructure failures (store
// I/O) or a canceled context; every classified API outcome becomes a
// decision, never an error.
//
// Rendering never mutates the store, and the store is not re-read after
// the data request settles: a sibling view clearing the credential
// mid-flight does not change this view's decision.
func (g *GuardService) CheckSession(ctx context.Context, in CheckInput) (*session.Decision, error) {
	view := session.ViewSession{ID: uuid.NewString(), State: session.ViewChecking}

	cred, err := g.store.Read(ctx, in.SessionID)
	if err != nil {
		if errors.Is(err, ports.ErrNoCredential) {
			return g.finish(in.RequiredRole, redirectLogin(view)), nil
		}
		return nil, fmt.Errorf("read credential: %w", err)
	}

	if cred.Role != in.RequiredRole {
		// The credential stays intact: it is valid for its own role's
		// home, which is where the user is sent.
		return g.finish(in.RequiredRole, &session.Decision{
			Kind:       session.DecisionRedirectHome,
			RedirectTo: cred.Role.HomePath(),
			View:       failed(view, ""),
		}), nil
	}

	claims, err := g.decoder.Decode(cred.Token)
	if err != nil {
		g.clear(ctx, in.SessionID, "decode_failed", err)
		return g.finish(in.RequiredRole, redirectLogin(view)), nil
	}

	if err := Validate(claims); err != nil {
		g.clear(ctx, in.SessionID, "invalid_claims", err)
		return g.finish(in.RequiredRole, redirectLogin(view)), nil
	}

	return g.fetchAndDecide(ctx, fetchParams{
		sid:   in.SessionID,
		role:  cred.Role,
		token: cred.Token,
		view:  view,
	})
}

// RefetchInput carries the credential a view already holds for a
// request-only retry.
type RefetchInput struct {
	SessionID string
	Role      session.Role
	Token     string
}

// Refetch re-issues only the role-scoped data request
// with the credential the view already holds, skipping local
// re-validation. Used by the retry affordance of NOT_FOUND and
// SERVER_ERROR decisions; network-error retries go through CheckSession
// instead.
func (g *GuardService) Refetch(ctx context.Context, in RefetchInput) (*session.Decision, error) {
	view := session.ViewSession{ID: uuid.NewString(), State: session.ViewChecking}
	return g.fetchAndDecide(ctx, fetchParams{
		sid:   in.SessionID,
		role:  in.Role,
		token: in.Token,
		view:  view,
	})
}

type fetchParams struct {
	sid   string
	role  session.Role
	token string
	view  session.ViewSession
}

func (g *GuardService) fetchAndDecide(ctx context.Context, p fetchParams) (*session.Decision, error) {
	start := time.Now()
	resp, fetchErr := g.api.FetchRoleData(ctx, ports.FetchInput{Role: p.role, Token: p.token})
	if g.metrics != nil {
		g.metrics.RecordUpstreamLatency(time.Since(start))
	}

	// A view unmounted while the request was in flight must not have a
	// decision recorded against it; late results are discarded.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var out Outcome
	if fetchErr != nil {
		g.logger.WarnContext(ctx, "role-scoped fetch failed",
			slog.String("role", string(p.role)),
			slog.Any("error", fetchErr),
		)
		out = g.classifier.ClassifyTransport(fetchErr)
	} else {
		out = g.classifier.Classify(resp.StatusCode, resp.Body)
	}

	switch out.Kind {
	case OutcomeAuthorized:
		return g.finish(p.role, &session.Decision{
			Kind: session.DecisionRender,
			Data: resp.Body,
			View: passed(p.view),
		}), nil

	case OutcomeUnauthorized, OutcomeStaleProfile:
		g.clear(ctx, p.sid, string(out.Kind), out.Err())
		return g.finish(p.role, redirectLogin(p.view)), nil

	case OutcomeNetworkError:
		return g.finish(p.role, errorDecision(p.view, out, session.RetryFull)), nil

	default: // OutcomeNotFoundOther, OutcomeServerError
		return g.finish(p.role, errorDecision(p.view, out, session.RetryRequest)), nil
	}
}

// clear erases the whole credential bundle so a rejected or corrupt
// credential can never be silently reused by a later view. A failed
// clear is logged but does not block the redirect.
func (g *GuardService) clear(ctx context.Context, sid, cause string, reason error) {
	g.logger.InfoContext(ctx, "clearing credential",
		slog.String("cause", cause),
		slog.Any("reason", reason),
	)
	if g.metrics != nil {
		g.metrics.RecordStoreClear(cause)
	}
	if err := g.store.Clear(ctx, sid); err != nil {
		g.logger.ErrorContext(ctx, "clear credential failed",
			slog.String("cause", cause),
			slog.Any("error", err),
		)
	}
}

func (g *GuardService) finish(role session.Role, d *session.Decision) *session.Decision {
	if g.metrics != nil {
		g.metrics.RecordDecision(string(role), string(d.Kind))
	}
	return d
}

func redirectLogin(view session.ViewSession) *session.Decision {
	return &session.Decision{
		Kind:       session.DecisionRedirectLogin,
		RedirectTo: session.LoginPath,
		View:       failed(view, ""),
	}
}

func errorDecision(view session.ViewSession, out Outcome, retry session.RetryMode) *session.Decision {
	msg := out.Message
	code := "server_error"
	switch out.Kind {
	case OutcomeNetworkError:
		code = "network_error"
		if msg == "" {
			msg = "could not reach the server, check your connection and try again"
		}
	case OutcomeNotFoundOther:
		code = "not_found"
		if msg == "" {
			msg = "the requested resource was not found"
		}
	default:
		if msg == "" {
			msg = "the server reported an error"
		}
	}
	return &session.Decision{
		Kind:    session.DecisionError,
		Code:    code,
		Message: msg,
		Retry:   retry,
		View:    failed(view, msg),
	}
}

func passed(view session.ViewSession) session.ViewSession {
	view.State = session.ViewPassed
	return view
}

func failed(view session.ViewSession, msg string) session.ViewSession {
	view.State = session.ViewFailed
	view.LastError = msg
	return view
}
