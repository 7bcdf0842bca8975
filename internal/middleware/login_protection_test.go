// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"testing"
	"time"
)

func TestLoginProtectionLockout(t *testing.T) {
	lp := NewLoginProtection()
	email := "admin@example.com"

	for i := 0; i < 4; i++ {
		locked, _ := lp.RecordFailedAttempt(email)
		if locked {
			t.Fatalf("locked after %d attempts", i+1)
		}
	}

	locked, d := lp.RecordFailedAttempt(email)
	if !locked {
		t.Fatal("expected lockout on 5th failed attempt")
	}
	if d != 15*time.Minute {
		t.Errorf("first lockout duration = %v, want 15m", d)
	}

	nowLocked, remaining := lp.IsAccountLocked(email)
	if !nowLocked || remaining <= 0 {
		t.Error("account should report as locked")
	}
}

func TestLoginProtectionExponentialBackoff(t *testing.T) {
	lp := NewLoginProtection()
	email := "admin@example.com"

	lockAccount := func() time.Duration {
		t.Helper()
		var d time.Duration
		for {
			// clear the active lock so attempts count again
			lp.attemptsMu.Lock()
			lp.failedAttempts[email].lockedUntil = time.Time{}
			lp.attemptsMu.Unlock()

			locked, dur := lp.RecordFailedAttempt(email)
			if locked {
				d = dur
				return d
			}
		}
	}

	for i := 0; i < 5; i++ {
		lp.RecordFailedAttempt(email)
	}
	if d := lockAccount(); d != 30*time.Minute {
		t.Errorf("second lockout = %v, want 30m", d)
	}
	if d := lockAccount(); d != 60*time.Minute {
		t.Errorf("third lockout = %v, want 1h", d)
	}
}

func TestLoginProtectionSuccessClears(t *testing.T) {
	lp := NewLoginProtection()
	email := "user@example.com"

	for i := 0; i < 4; i++ {
		lp.RecordFailedAttempt(email)
	}
	lp.RecordSuccessfulLogin(email)

	locked, _ := lp.RecordFailedAttempt(email)
	if locked {
		t.Error("counter should reset after a successful login")
	}
}

func TestIdentityString(t *testing.T) {
	tests := map[Identity]string{
		Anonymous:     "anonymous",
		Authenticated: "authenticated",
		Blocked:       "blocked",
	}
	for id, want := range tests {
		if got := id.String(); got != want {
			t.Errorf("Identity(%d).String() = %q, want %q", id, got, want)
		}
	}
}
