package config

import "time"

// HTTPConfig contains gateway HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// CookieDomain is the domain for the gateway session cookie.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	// CookieSecure marks the gateway session cookie Secure. Disable only
	// for plain-HTTP local development.
	CookieSecure bool `env:"APP_COOKIE_SECURE" envDefault:"true"`

	// ShutdownTimeout bounds graceful shutdown of in-flight requests.
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// LoginRatePerMinute limits login attempts per client address.
	LoginRatePerMinute int `env:"LOGIN_RATE_PER_MINUTE" envDefault:"10"`

	// LoginBurst is the login limiter's burst size.
	LoginBurst int `env:"LOGIN_BURST" envDefault:"5"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.ShutdownTimeout <= 0 {
		h.ShutdownTimeout = 10 * time.Second
	}
	if h.LoginRatePerMinute < 1 {
		h.LoginRatePerMinute = 1
	}
	if h.LoginBurst < 1 {
		h.LoginBurst = 1
	}
}
