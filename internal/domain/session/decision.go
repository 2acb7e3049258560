package session

import "encoding/json"

// DecisionKind is the terminal outcome of one guard pass for one view.
type DecisionKind string

const (
	// DecisionRender allows the view to render with the fetched data.
	DecisionRender DecisionKind = "render"
	// DecisionRedirectLogin sends the user back to the login page.
	DecisionRedirectLogin DecisionKind = "redirect_login"
	// DecisionRedirectHome sends the user to their own role's dashboard.
	DecisionRedirectHome DecisionKind = "redirect_home"
	// DecisionError surfaces a retryable error to the user.
	DecisionError DecisionKind = "error"
)

// RetryMode tells the view how an error decision may be retried.
type RetryMode string

const (
	// RetryNone applies to non-error decisions.
	RetryNone RetryMode = "none"
	// RetryRequest re-issues only the role-scoped data request.
	RetryRequest RetryMode = "request"
	// RetryFull re-runs the entire guard sequence, connectivity issues
	// may also have hidden an earlier credential problem.
	RetryFull RetryMode = "full"
)

// ViewState tracks the lifecycle of one mounted protected view.
type ViewState string

const (
	ViewChecking ViewState = "checking"
	ViewPassed   ViewState = "passed"
	ViewFailed   ViewState = "failed"
)

// ViewSession is the ephemeral per-view record driving loading vs
// content vs error rendering. Created when the guard starts evaluating
// a view and discarded with the view.
type ViewSession struct {
	ID        string    `json:"id"`
	State     ViewState `json:"state"`
	LastError string    `json:"last_error,omitempty"`
}

// Decision is the result of one guard pass. Exactly one of the kinds
// above; RedirectTo is set for redirects, Data for renders, Message and
// Retry for errors.
type Decision struct {
	Kind       DecisionKind    `json:"kind"`
	RedirectTo string          `json:"redirect_to,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	// Code names the error class for error decisions
	// (not_found, server_error, network_error).
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Retry   RetryMode   `json:"retry,omitempty"`
	View    ViewSession `json:"view"`
}
