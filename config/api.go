package config

import "time"

// APIConfig contains remote membership API configuration.
type APIConfig struct {
	// BaseURL is the root of the remote membership REST API.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:3001"`

	// Timeout bounds every upstream request. The upstream imposes no
	// limit of its own; without this a hung request would leave a view
	// checking forever.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`

	// Role-scoped dashboard endpoints, relative to BaseURL.
	MemberPath string `env:"MEMBER_PATH" envDefault:"/api/member/dashboard"`
	ClerkPath  string `env:"CLERK_PATH"  envDefault:"/api/clerk/dashboard"`
	AdminPath  string `env:"ADMIN_PATH"  envDefault:"/api/admin/dashboard"`

	// LoginPath is the remote login endpoint credentials are forwarded to.
	LoginPath string `env:"LOGIN_PATH" envDefault:"/api/auth/login"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	if a.Timeout <= 0 {
		a.Timeout = 10 * time.Second
	}
}
