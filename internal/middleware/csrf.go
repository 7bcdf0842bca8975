// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"crypto/sha256"
	"log/slog"
	"net/http"

	"filippo.io/csrf/gorilla"
)

// CSRF protects state-changing requests via Fetch metadata headers.
// The session secret is hashed down to the 32-byte auth key the
// library expects. In development, localhost origins are trusted so
// plain-HTTP form posts work.
func CSRF(sessionSecret string, isDev bool, serverAddr string) func(http.Handler) http.Handler {
	authKey := sha256.Sum256([]byte(sessionSecret))

	opts := []csrf.Option{
		csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler)),
	}
	if isDev {
		opts = append(opts, csrf.TrustedOrigins([]string{
			serverAddr, "localhost:8080", "127.0.0.1:8080",
		}))
	}

	return csrf.Protect(authKey[:], opts...)
}

func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	reason := "unknown"
	if err := csrf.FailureReason(r); err != nil {
		reason = err.Error()
	}
	slog.Warn("csrf validation failed",
		"reason", reason,
		"method", r.Method,
		"path", r.URL.Path,
		"origin", r.Header.Get("Origin"),
	)
	http.Error(w, "Forbidden - CSRF validation failed", http.StatusForbidden)
}
