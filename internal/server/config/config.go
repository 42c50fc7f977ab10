// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment variables and command-line flags.
package config

import (
	"errors"
	"time"
)

// Config holds runtime settings for the auth server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the public HTTP API.
//   - EndpointAddrGRPC: bind address for the gRPC health endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - CipherKey: passphrase shared with clients for credential payload encryption.
//   - AccessTokenSecret / RefreshTokenSecret: HMAC keys for the two token kinds.
//   - AccessTokenValidityDuration / RefreshTokenValidityDuration: token lifetimes.
//   - CookieSecure: sets the Secure attribute on the refresh cookie. Must be true in production.
type Config struct {
	EndpointAddrHTTP             string
	EndpointAddrGRPC             string
	DatabaseDSN                  string
	CipherKey                    string
	AccessTokenSecret            string
	RefreshTokenSecret           string
	AccessTokenValidityDuration  time.Duration
	RefreshTokenValidityDuration time.Duration
	CookieSecure                 bool
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secrets are insecure and must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":3000"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = ""
	c.CipherKey = "dev-cipher-key"
	c.AccessTokenSecret = "dev-access-secret"
	c.RefreshTokenSecret = "dev-refresh-secret"
	c.AccessTokenValidityDuration = 60 * time.Minute
	c.RefreshTokenValidityDuration = 90 * 24 * time.Hour
	c.CookieSecure = false
}

// Validate checks that the three keys are present and independent and that
// token lifetimes are positive.
func (c *Config) Validate() error {
	if c.CipherKey == "" || c.AccessTokenSecret == "" || c.RefreshTokenSecret == "" {
		return errors.New("cipher key, access secret and refresh secret are required")
	}
	if c.CipherKey == c.AccessTokenSecret || c.CipherKey == c.RefreshTokenSecret || c.AccessTokenSecret == c.RefreshTokenSecret {
		return errors.New("cipher key, access secret and refresh secret must all differ")
	}
	if c.AccessTokenValidityDuration <= 0 || c.RefreshTokenValidityDuration <= 0 {
		return errors.New("token validity durations must be positive")
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
