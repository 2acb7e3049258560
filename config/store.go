package config

import (
	"fmt"
	"strings"
	"time"
)

// StoreBackend selects the credential store implementation.
type StoreBackend string

const (
	// StoreBackendMemory keeps credentials in process memory (dev/test).
	StoreBackendMemory StoreBackend = "memory"
	// StoreBackendRedis persists credentials in Redis.
	StoreBackendRedis StoreBackend = "redis"
	// StoreBackendPostgres persists credentials in PostgreSQL.
	StoreBackendPostgres StoreBackend = "postgres"
)

// UnmarshalText implements encoding.TextUnmarshaler for StoreBackend.
func (b *StoreBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "memory", "redis", "postgres":
		*b = StoreBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid StoreBackend: %q (valid options: memory, redis, postgres)", v)
	}
}

// StoreConfig contains credential store configuration.
type StoreConfig struct {
	// Backend determines which credential store implementation to use.
	Backend StoreBackend `env:"BACKEND" envDefault:"memory"`

	// TTL is how long an idle credential bundle is kept (redis backend).
	// Zero keeps bundles until logout or invalidation.
	TTL time.Duration `env:"TTL" envDefault:"720h"`
}

// Sanitize applies guardrails to store configuration values.
func (s *StoreConfig) Sanitize() {
	if s.TTL < 0 {
		s.TTL = 0
	}
}
