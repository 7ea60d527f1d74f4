// Package config loads the process configuration from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Profile selects which operation surface the server exposes.
type Profile string

// Deployment profiles.
const (
	// ProfileFull enables every tool plus the graph resource and the usage
	// prompt, and extends search to relations.
	ProfileFull Profile = "full"
	// ProfileReduced exposes entity creation, search, and the full graph
	// read only; search matches entities but not relations.
	ProfileReduced Profile = "reduced"
)

// SearchIncludesRelations reports whether search matches relations in
// addition to entities under this profile.
func (p Profile) SearchIncludesRelations() bool {
	return p == ProfileFull
}

// Config holds all process configuration.
type Config struct {
	// FilePath locates the graph snapshot on disk.
	FilePath string

	// WSAddr, when set, serves the protocol over WebSocket on this listen
	// address instead of stdio.
	WSAddr string

	// Profile selects the enabled operation surface.
	Profile Profile

	// LogLevel is a zap level name (debug, info, warn, error).
	LogLevel string
}

// Load reads configuration from environment variables. A .env file is
// honored when present but not required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		FilePath: getEnv("MEMORY_FILE_PATH", "memory.json"),
		WSAddr:   getEnv("MEMORY_WS_ADDR", ""),
		Profile:  Profile(getEnv("MEMORY_PROFILE", string(ProfileFull))),
		LogLevel: getEnv("MEMORY_LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks that configured values are usable.
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return fmt.Errorf("MEMORY_FILE_PATH must not be empty")
	}
	switch c.Profile {
	case ProfileFull, ProfileReduced:
	default:
		return fmt.Errorf("MEMORY_PROFILE must be %q or %q, got %q",
			ProfileFull, ProfileReduced, c.Profile)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
