// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/stconstruction/website/internal/auth"
	"github.com/stconstruction/website/internal/middleware"
	"github.com/stconstruction/website/internal/service"
)

// Login authenticates an account and starts a session. Failed
// attempts count toward the account lockout; the same generic message
// covers wrong email and wrong password.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed form")
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	ctx := r.Context()

	if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
		writeJSONError(w, http.StatusTooManyRequests,
			fmt.Sprintf("account temporarily locked, try again in %s", remaining.Round(time.Second)))
		return
	}

	user, err := h.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.loginProtection.RecordFailedAttempt(email)
			writeJSONError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		logAndInternalError(w, r, err)
		return
	}

	if !user.IsActive || !auth.CheckPassword(password, user.PasswordHash) {
		h.loginProtection.RecordFailedAttempt(email)
		writeJSONError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	h.loginProtection.RecordSuccessfulLogin(email)

	// transparently upgrade hashes created with older parameters
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(password); err == nil {
			if err := h.users.SetPasswordHash(ctx, user.ID, newHash); err != nil {
				logAndInternalError(w, r, err)
				return
			}
		}
	}

	// new token on privilege change
	if err := h.sessions.RenewToken(ctx); err != nil {
		logAndInternalError(w, r, err)
		return
	}
	h.sessions.Put(ctx, middleware.SessionKeyUserID, user.ID)

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// Logout destroys the session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		logAndInternalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

// Me reports the requester's identity and account.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())
	payload := map[string]any{"identity": identity.String()}

	if user, ok := middleware.UserFrom(r.Context()); ok {
		payload["user"] = user
	}

	status := http.StatusOK
	if identity != middleware.Authenticated {
		status = http.StatusUnauthorized
	}
	writeJSON(w, status, payload)
}

// Register creates an account from the public sign-up form. Accounts
// created here are always regular users; superusers are made from the
// back office.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed form")
		return
	}

	user, err := h.users.Create(r.Context(), service.CreateUserInput{
		Email:       r.PostFormValue("email"),
		Username:    r.PostFormValue("username"),
		FullName:    r.PostFormValue("full_name"),
		Password:    r.PostFormValue("password"),
		IsActive:    true,
		IsSuperuser: false,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrUsernameTaken):
			writeJSONError(w, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidInput), errors.Is(err, auth.ErrPasswordTooShort):
			writeJSONError(w, http.StatusBadRequest, err.Error())
		default:
			logAndInternalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"user": user})
}
