// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application configuration from environment
// variables and validates security-sensitive values.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must never be used.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"STC_DB_PATH" envDefault:"./data/website.db"`
	SessionSecret string `env:"STC_SESSION_SECRET,required"`
	ServerHost    string `env:"STC_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"STC_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"STC_ENV" envDefault:"development"`
	LogLevel      string `env:"STC_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"STC_UPLOADS_DIR" envDefault:"./static/uploads"`

	// Admin bootstrap credentials. The seed step creates this account
	// on first start if no user with the given email exists.
	AdminEmail    string `env:"STC_ADMIN_EMAIL" envDefault:"admin@stconstruction.kz"`
	AdminUsername string `env:"STC_ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"STC_ADMIN_PASSWORD"`

	// CallbackRetentionDays controls how long lead-capture submissions
	// are kept before the nightly purge removes them. Zero disables it.
	CallbackRetentionDays int `env:"STC_CALLBACK_RETENTION_DAYS" envDefault:"180"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("STC_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("STC_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("STC_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes.
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
