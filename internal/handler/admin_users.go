// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/stconstruction/website/internal/middleware"
	"github.com/stconstruction/website/internal/service"
)

const adminUsersPath = RouteAdmin + "/users"

// AdminUserList serves all accounts for the back office.
func (h *Handler) AdminUserList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		logAndInternalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

// AdminUserAdd creates an account and redirects with a flag.
func (h *Handler) AdminUserAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectError(w, r, adminUsersPath, errInvalid)
		return
	}

	_, err := h.users.Create(r.Context(), service.CreateUserInput{
		Email:       r.PostFormValue("email"),
		Username:    r.PostFormValue("username"),
		FullName:    r.PostFormValue("full_name"),
		Password:    r.PostFormValue("password"),
		IsActive:    r.PostFormValue("is_active") != "false",
		IsSuperuser: r.PostFormValue("is_superuser") == "true",
	})
	if err != nil {
		redirectError(w, r, adminUsersPath, serviceErrorFlag(r, err))
		return
	}
	redirectSuccess(w, r, adminUsersPath, flagCreated)
}

// AdminUserEdit updates an account and redirects with a flag. The
// acting user cannot demote or deactivate themselves.
func (h *Handler) AdminUserEdit(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		redirectError(w, r, adminUsersPath, errNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		redirectError(w, r, adminUsersPath, errInvalid)
		return
	}

	actor, _ := middleware.UserFrom(r.Context())
	_, err = h.users.Update(r.Context(), actor.ID, id, service.UpdateUserInput{
		Email:       r.PostFormValue("email"),
		Username:    r.PostFormValue("username"),
		FullName:    r.PostFormValue("full_name"),
		Password:    r.PostFormValue("password"),
		IsActive:    r.PostFormValue("is_active") != "false",
		IsSuperuser: r.PostFormValue("is_superuser") == "true",
	})
	if err != nil {
		redirectError(w, r, adminUsersPath, serviceErrorFlag(r, err))
		return
	}
	redirectSuccess(w, r, adminUsersPath, flagUpdated)
}

// AdminUserDelete removes an account and redirects with a flag.
// Self-deletion is refused.
func (h *Handler) AdminUserDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		redirectError(w, r, adminUsersPath, errNotFound)
		return
	}

	actor, _ := middleware.UserFrom(r.Context())
	if err := h.users.Delete(r.Context(), actor.ID, id); err != nil {
		redirectError(w, r, adminUsersPath, serviceErrorFlag(r, err))
		return
	}
	redirectSuccess(w, r, adminUsersPath, flagDeleted)
}
