// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STC_SESSION_SECRET", "xK9#mP2$vL5@nQ8&wR3*zT6!yU4^aB7c")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "./data/website.db", cfg.DBPath)
	assert.Equal(t, "localhost", cfg.ServerHost)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "./static/uploads", cfg.UploadsDir)
	assert.Equal(t, 180, cfg.CallbackRetentionDays)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("STC_SESSION_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_ShortSecret(t *testing.T) {
	t.Setenv("STC_SESSION_SECRET", "too-short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 bytes")
}

func TestLoad_WeakSecret(t *testing.T) {
	t.Setenv("STC_SESSION_SECRET", "change-me-to-32-byte-secret-key!")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "known default")
}

func TestServerAddr(t *testing.T) {
	cfg := Config{ServerHost: "0.0.0.0", ServerPort: 9000}
	assert.Equal(t, "0.0.0.0:9000", cfg.ServerAddr())
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{"abcdefghijklmnopqrstuvwxyz", false},
		{"abcABC", false},
		{"abcABC123", true},
		{"abc123!@#", true},
		{strings.Repeat("a", 40), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, hasMinimumEntropy(tt.secret), "secret %q", tt.secret)
	}
}
