package service

import (
	"encoding/json"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/domain/session"
)

// TokenDecoder recovers the claims of a bearer token for local display
// and sanity checks. The signature is never verified here; authenticity
// is the server's responsibility, enforced through the classified
// response of the role-scoped request.
type TokenDecoder struct {
	parser *jwt.Parser
}

// NewTokenDecoder constructs a decoder. Numbers are kept as json.Number
// so validation can tell a numeric user_id apart from a string one.
func NewTokenDecoder() *TokenDecoder {
	return &TokenDecoder{
		parser: jwt.NewParser(jwt.WithJSONNumber()),
	}
}

// Decode parses the payload segment of a three-segment dot-delimited
// token (URL-safe base64, JSON object). Any failure at splitting,
// base64 decoding, or JSON parsing returns a *DecodeError.
func (d *TokenDecoder) Decode(token string) (session.Claims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := d.parser.ParseUnverified(token, claims); err != nil {
		return session.Claims{}, &DecodeError{Err: err}
	}

	out := session.Claims{Raw: map[string]any(claims)}
	if v, ok := claims["user_id"]; ok {
		if n, isNum := v.(json.Number); isNum {
			out.UserID = n
		}
	}
	return out, nil
}

// Validate applies the local shape check to decoded claims: the user_id
// claim must be present and strictly numeric. Anything else (missing,
// string, null, object) returns a *ValidationError. This is a cheap
// short-circuit for obviously corrupt or foreign tokens, not a security
// boundary.
func Validate(claims session.Claims) error {
	if !claims.HasNumericUserID() {
		return &ValidationError{Reason: "user_id claim missing or not a number"}
	}
	return nil
}
