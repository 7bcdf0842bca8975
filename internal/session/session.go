// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the SQLite-backed session manager.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// CookieName is the session cookie name shared with the previous
// deployment, so existing browser sessions keep working.
const CookieName = "stconstruction_session"

// Lifetime is how long an idle session stays valid.
const Lifetime = 14 * 24 * time.Hour

// NewManager returns a session manager storing sessions in db. In
// development the cookie is sent over plain HTTP.
func NewManager(db *sql.DB, isDev bool) *scs.SessionManager {
	m := scs.New()
	m.Store = sqlite3store.New(db)
	m.Lifetime = Lifetime
	m.Cookie.Name = CookieName
	m.Cookie.HttpOnly = true
	m.Cookie.SameSite = http.SameSiteLaxMode
	m.Cookie.Secure = !isDev
	m.Cookie.Path = "/"
	return m
}
