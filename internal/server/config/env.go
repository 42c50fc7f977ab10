package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names read by parseEnv.
const (
	EnvHTTPAddress     = "HTTP_ADDRESS"
	EnvGRPCAddress     = "GRPC_ADDRESS"
	EnvDatabaseDSN     = "DATABASE_DSN"
	EnvCipherKey       = "SECRET_KEY"
	EnvAccessSecret    = "ACCESS_SECRET"
	EnvRefreshSecret   = "REFRESH_SECRET"
	EnvAccessTokenTTL  = "ACCESS_TOKEN_TTL"
	EnvRefreshTokenTTL = "REFRESH_TOKEN_TTL"
	EnvCookieSecure    = "COOKIE_SECURE"
)

// dotenvFiles are loaded into the process environment before it is read.
// Variables already set are not overridden. Missing files are ignored.
var dotenvFiles = []string{".env"}

// parseEnv overlays values from environment variables. Malformed durations
// or booleans panic, like malformed JSON does.
func parseEnv(config *Config) {
	for _, f := range dotenvFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				panic(err)
			}
		}
	}

	lookupString(EnvHTTPAddress, &config.EndpointAddrHTTP)
	lookupString(EnvGRPCAddress, &config.EndpointAddrGRPC)
	// An empty DATABASE_DSN is meaningful: it selects the in-memory store.
	if v, ok := os.LookupEnv(EnvDatabaseDSN); ok {
		config.DatabaseDSN = v
	}
	lookupString(EnvCipherKey, &config.CipherKey)
	lookupString(EnvAccessSecret, &config.AccessTokenSecret)
	lookupString(EnvRefreshSecret, &config.RefreshTokenSecret)

	if v, ok := os.LookupEnv(EnvAccessTokenTTL); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.AccessTokenValidityDuration = d
	}
	if v, ok := os.LookupEnv(EnvRefreshTokenTTL); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.RefreshTokenValidityDuration = d
	}
	if v, ok := os.LookupEnv(EnvCookieSecure); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		config.CookieSecure = b
	}
}

func lookupString(name string, dst *string) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		*dst = v
	}
}
