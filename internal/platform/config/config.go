// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct. An optional '.env' file in the working directory is loaded first via
'joho/godotenv'; variables already present in the process environment win.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, TokenCodec) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/htilssu/demarthology-api/internal/platform/sec"
)

// # Configuration Schema

// Config holds all runtime configuration for the Demarthology API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Store (Redis), used for the notification outbox
	RedisURL    string `env:"REDIS_URL,required"`
	NotifyQueue string `env:"NOTIFY_QUEUE" envDefault:"notify:password_reset"`

	// Token signing
	JWTSecret             string `env:"JWT_SECRET,required"`
	JWTAlgorithm          string `env:"JWT_ALGORITHM"            envDefault:"HS256"`
	AccessTokenTTLMinutes int    `env:"ACCESS_TOKEN_TTL_MINUTES" envDefault:"30"`
	ResetTokenTTLMinutes  int    `env:"RESET_TOKEN_TTL_MINUTES"  envDefault:"15"`

	// ResetLinkBaseURL is the frontend page that consumes reset tokens.
	ResetLinkBaseURL string `env:"RESET_LINK_BASE_URL" envDefault:"http://localhost:3000/reset-password"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load reads an optional .env file and parses environment variables into a [Config].
func Load() (*Config, error) {
	return LoadFiles(".env")
}

// LoadFiles is [Load] with explicit dotenv paths. Missing files are skipped.
func LoadFiles(paths ...string) (*Config, error) {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
	}

	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate enforces cross-field invariants that struct tags cannot express.
func (c *Config) Validate() error {
	if err := c.TokenConfig().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// TokenConfig derives the signing parameters for [sec.NewTokenCodec].
func (c *Config) TokenConfig() sec.TokenConfig {
	return sec.TokenConfig{
		Secret:    c.JWTSecret,
		Algorithm: c.JWTAlgorithm,
		AccessTTL: time.Duration(c.AccessTokenTTLMinutes) * time.Minute,
		ResetTTL:  time.Duration(c.ResetTokenTTLMinutes) * time.Minute,
	}
}

// AllowedOrigins splits EXTRA_ORIGINS on commas, dropping blanks.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// Port is the TCP port the HTTP server listens on.
func (c *Config) Port() string {
	return c.ServerPort
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
