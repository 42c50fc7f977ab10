package config

import (
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvServerURL = "AUTH_SERVER_URL"
	EnvCipherKey = "SECRET_KEY"
)

// dotenvFiles are loaded before the environment is read; existing variables win.
var dotenvFiles = []string{".env"}

func parseEnv(cfg *Config) {
	for _, f := range dotenvFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				panic(err)
			}
		}
	}

	if v, ok := os.LookupEnv(EnvServerURL); ok && v != "" {
		cfg.ServerBaseURL = v
	}
	if v, ok := os.LookupEnv(EnvCipherKey); ok && v != "" {
		cfg.CipherKey = v
	}
}
