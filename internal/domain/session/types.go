package session

// Package session contains domain-level types for the credential bundle
// and the per-view guard decision. It is pure and free of framework/adapter
// concerns.

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClerk  Role = "clerk"
	RoleMember Role = "member"
)

// LoginPath is the navigation target for unauthenticated or unrecognized users.
const LoginPath = "/login"

// homePaths is the fixed role-to-home-route mapping used by redirects
// after login and on role mismatch.
var homePaths = map[Role]string{
	RoleAdmin:  "/admin/dashboard",
	RoleClerk:  "/clerk/dashboard",
	RoleMember: "/member/dashboard",
}

// ParseRole returns the Role for s and whether s names a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	_, ok := homePaths[r]
	return r, ok
}

// Valid reports whether r is one of the known application roles.
func (r Role) Valid() bool {
	_, ok := homePaths[r]
	return ok
}

// HomePath resolves the dashboard route for r.
// Unrecognized roles resolve to the login path.
func (r Role) HomePath() string {
	if p, ok := homePaths[r]; ok {
		return p
	}
	return LoginPath
}

// ProfileSummary is the cached display subset of the member's profile.
// It is written at login for immediate rendering and carries no authority.
type ProfileSummary struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// Credential is the persisted identity bundle for one browser session:
// the opaque bearer token, the declared role, and the cached profile
// summary. The token is never verified locally; it is material to be
// presented to the remote API, not proof of anything.
type Credential struct {
	Token   string          `json:"token"`
	Role    Role            `json:"role"`
	Profile *ProfileSummary `json:"profile,omitempty"`
	Email   string          `json:"email,omitempty"`
}

// Present reports whether the bundle holds both a token and a role.
// A token without a role (or vice versa) is treated as no credential.
func (c Credential) Present() bool {
	return c.Token != "" && c.Role != ""
}
