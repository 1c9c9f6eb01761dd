// Package settings resolves runtime settings from the environment.
package settings

import (
	"time"

	"github.com/caarlos0/env/v9"
)

// Settings holds environment-derived runtime configuration. Anything not
// set falls back to a working default; session storage uses the local
// filesystem unless a Redis address is given.
type Settings struct {
	// RedisAddr selects the Redis session store when non-empty.
	RedisAddr string `env:"STACKSHIFT_REDIS_ADDR"`

	// SessionDir overrides the file session store location.
	SessionDir string `env:"STACKSHIFT_SESSION_DIR"`

	// Concurrency bounds parallel switch fetches.
	Concurrency int `env:"STACKSHIFT_CONCURRENCY" envDefault:"4"`

	// ConnectTimeout and ReadTimeout tune the switch transport.
	ConnectTimeout time.Duration `env:"STACKSHIFT_CONNECT_TIMEOUT" envDefault:"15s"`
	ReadTimeout    time.Duration `env:"STACKSHIFT_READ_TIMEOUT" envDefault:"60s"`
}

// Load parses settings from the environment.
func Load() (*Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
