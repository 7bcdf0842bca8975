// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware holds the HTTP middleware chain: identity
// resolution, CSRF protection, login throttling, and security headers.
package middleware

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/stconstruction/website/internal/model"
	"github.com/stconstruction/website/internal/store"
)

// ContextKey is the type for request context keys set by this package.
type ContextKey string

const (
	userContextKey     ContextKey = "user"
	identityContextKey ContextKey = "identity"
)

// SessionKeyUserID is the session key holding the signed-in user ID.
const SessionKeyUserID = "user_id"

// Identity classifies the requester after session resolution.
type Identity int

const (
	// Anonymous means no session or no user ID in it.
	Anonymous Identity = iota
	// Authenticated means the session maps to an active account.
	Authenticated
	// Blocked means the session mapped to a deactivated account; the
	// session is cleared and guarded routes answer Forbidden.
	Blocked
)

// String implements fmt.Stringer for log fields.
func (i Identity) String() string {
	switch i {
	case Authenticated:
		return "authenticated"
	case Blocked:
		return "blocked"
	default:
		return "anonymous"
	}
}

// Resolver loads the account behind each request's session.
type Resolver struct {
	sessions *scs.SessionManager
	queries  *store.Queries
}

// NewResolver returns a Resolver backed by the given session manager
// and store.
func NewResolver(sessions *scs.SessionManager, queries *store.Queries) *Resolver {
	return &Resolver{sessions: sessions, queries: queries}
}

// Resolve classifies the requester and, for authenticated requests,
// puts the user into the request context. A session pointing at a
// missing or deactivated account is destroyed so stale cookies cannot
// linger.
func (rv *Resolver) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID := rv.sessions.GetInt64(ctx, SessionKeyUserID)
		if userID == 0 {
			next.ServeHTTP(w, r.WithContext(withIdentity(ctx, Anonymous)))
			return
		}

		user, err := rv.queries.GetUserByID(ctx, userID)
		if err != nil {
			_ = rv.sessions.Destroy(ctx)
			next.ServeHTTP(w, r.WithContext(withIdentity(ctx, Anonymous)))
			return
		}
		if !user.IsActive {
			_ = rv.sessions.Destroy(ctx)
			next.ServeHTTP(w, r.WithContext(withIdentity(ctx, Blocked)))
			return
		}

		ctx = withIdentity(ctx, Authenticated)
		ctx = context.WithValue(ctx, userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func withIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// IdentityFrom returns the identity set by Resolve, defaulting to
// Anonymous.
func IdentityFrom(ctx context.Context) Identity {
	if id, ok := ctx.Value(identityContextKey).(Identity); ok {
		return id
	}
	return Anonymous
}

// UserFrom returns the authenticated user, if any.
func UserFrom(ctx context.Context) (model.User, bool) {
	u, ok := ctx.Value(userContextKey).(model.User)
	return u, ok
}

// RequireUser rejects requests without an authenticated account.
// A session that resolved to a deactivated account answers Forbidden;
// anonymous requests are sent to the login page.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch IdentityFrom(r.Context()) {
		case Authenticated:
			next.ServeHTTP(w, r)
		case Blocked:
			http.Error(w, "account deactivated", http.StatusForbidden)
		default:
			http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		}
	})
}

// RequireSuperuser rejects requests from accounts without the
// superuser flag.
func RequireSuperuser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFrom(r.Context())
		if !ok {
			http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
			return
		}
		if !user.IsSuperuser {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
