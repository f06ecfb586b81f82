package config

import (
	"os"
	"strings"
)

// parseEnv overlays Config fields from environment variables. A .env file
// loaded by the entry point ends up here too.
//
// Recognized variables:
//
//	ADDRESS       — HTTP bind address (e.g., ":5000")
//	DATABASE_DSN  — PostgreSQL DSN
func parseEnv(config *Config) {
	if v := strings.TrimSpace(os.Getenv("ADDRESS")); v != "" {
		config.EndpointAddrHTTP = v
	}
	if v := strings.TrimSpace(os.Getenv("DATABASE_DSN")); v != "" {
		config.DatabaseDSN = v
	}
}
