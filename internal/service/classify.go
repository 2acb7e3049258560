package service

import (
	"encoding/json"
	"net/http"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// OutcomeKind enumerates the classified interpretations of a remote API
// response.
type OutcomeKind string

const (
	OutcomeAuthorized    OutcomeKind = "authorized"
	OutcomeUnauthorized  OutcomeKind = "unauthorized"
	OutcomeStaleProfile  OutcomeKind = "stale_profile"
	OutcomeNotFoundOther OutcomeKind = "not_found_other"
	OutcomeServerError   OutcomeKind = "server_error"
	OutcomeNetworkError  OutcomeKind = "network_error"
)

// Outcome is produced once per API call and consumed immediately by the
// guard; it is not retained.
type Outcome struct {
	Kind       OutcomeKind
	HTTPStatus int
	Message    string
}

// Err maps the outcome to its sentinel error for logging and error
// envelopes. Authorized outcomes map to nil.
func (o Outcome) Err() error {
	switch o.Kind {
	case OutcomeUnauthorized:
		return ErrUnauthorized
	case OutcomeStaleProfile:
		return ErrStaleProfile
	case OutcomeNotFoundOther:
		return ErrNotFound
	case OutcomeServerError:
		return ErrServer
	case OutcomeNetworkError:
		return ErrNetwork
	default:
		return nil
	}
}

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (j jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// userExistsExpr locates the diagnostic flag the remote API sets on a
// 404 when the login identity still exists but the role-specific
// profile record cannot be found (e.g. after an email change
// invalidated the lookup key).
const userExistsExpr = "debug.user_exists"

// Classifier maps a response's status code and optional diagnostic body
// into an Outcome. Status is checked first; the body is inspected only
// for 404s (stale-profile flag) and for a human-readable message.
type Classifier struct {
	jems JMESPathEvaluator
}

// NewClassifier constructs a Classifier. A nil evaluator defaults to
// the go-jmespath implementation.
func NewClassifier(eval JMESPathEvaluator) *Classifier {
	if eval == nil {
		eval = jmespathLibEvaluator{}
	}
	return &Classifier{jems: eval}
}

// Classify interprets a response the transport actually delivered.
// Transport failures go through ClassifyTransport instead.
func (c *Classifier) Classify(status int, body []byte) Outcome {
	switch {
	case status >= 200 && status < 300:
		return Outcome{Kind: OutcomeAuthorized, HTTPStatus: status}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return Outcome{Kind: OutcomeUnauthorized, HTTPStatus: status, Message: extractMessage(body)}
	case status == http.StatusNotFound:
		if c.userExists(body) {
			return Outcome{Kind: OutcomeStaleProfile, HTTPStatus: status, Message: extractMessage(body)}
		}
		return Outcome{Kind: OutcomeNotFoundOther, HTTPStatus: status, Message: extractMessage(body)}
	default:
		return Outcome{Kind: OutcomeServerError, HTTPStatus: status, Message: extractMessage(body)}
	}
}

// ClassifyTransport interprets a fetch that produced no response at
// all. The message is deliberately about connectivity, not the server:
// the user-facing distinction from SERVER_ERROR matters because the
// recovery advice differs.
func (c *Classifier) ClassifyTransport(_ error) Outcome {
	return Outcome{
		Kind:    OutcomeNetworkError,
		Message: "could not reach the server, check your connection and try again",
	}
}

// userExists reports whether the 404 body parses as JSON and carries
// debug.user_exists == true. Unparseable bodies and absent or false
// flags all mean "no".
func (c *Classifier) userExists(body []byte) bool {
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return false
	}
	v, err := c.jems.Evaluate(userExistsExpr, data)
	if err != nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// extractMessage pulls the human-readable "message" or "error" field
// from a JSON error body, surfaced verbatim in error decisions.
func extractMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
