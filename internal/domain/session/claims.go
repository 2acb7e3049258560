package session

import "encoding/json"

// Claims is the decoded payload of a bearer token. It is derived from
// Credential.Token on every guard pass and never persisted.
//
// UserID is kept as the raw JSON value so validation can distinguish a
// genuine number from a string, null, or missing claim. Decoding the
// token does not verify its signature; Claims must never be treated as
// proof of authenticity.
type Claims struct {
	UserID json.Number
	Raw    map[string]any
}

// HasNumericUserID reports whether the user_id claim was present and
// strictly numeric in the payload.
func (c Claims) HasNumericUserID() bool {
	return c.UserID != ""
}

// UserIDInt returns the user_id claim as an int64 for logging and
// metrics. The second return is false when the claim is absent or not
// representable as an integer.
func (c Claims) UserIDInt() (int64, bool) {
	if c.UserID == "" {
		return 0, false
	}
	n, err := c.UserID.Int64()
	if err != nil {
		return 0, false
	}
	return n, true
}
