// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/stconstruction/website/internal/auth"
	"github.com/stconstruction/website/internal/service"
)

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

// writeJSONError sends a JSON error object.
func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// redirectSuccess redirects back to target with a success flag.
func redirectSuccess(w http.ResponseWriter, r *http.Request, target, flag string) {
	redirectFlag(w, r, target, "success", flag)
}

// redirectError redirects back to target with an error flag.
func redirectError(w http.ResponseWriter, r *http.Request, target, flag string) {
	redirectFlag(w, r, target, "error", flag)
}

func redirectFlag(w http.ResponseWriter, r *http.Request, target, key, flag string) {
	u, err := url.Parse(target)
	if err != nil {
		u = &url.URL{Path: RouteAdmin}
	}
	q := u.Query()
	q.Set(key, flag)
	u.RawQuery = q.Encode()
	http.Redirect(w, r, u.String(), http.StatusSeeOther)
}

// urlID parses the {id} route parameter.
func urlID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// serviceErrorFlag maps service errors to query-string error flags.
// Unknown errors are logged and become "internal".
func serviceErrorFlag(r *http.Request, err error) string {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return errNotFound
	case errors.Is(err, service.ErrSlugTaken),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken):
		return errAlreadyExists
	case errors.Is(err, service.ErrCityInUse):
		return errInUse
	case errors.Is(err, service.ErrSelfDelete),
		errors.Is(err, service.ErrSelfDemote),
		errors.Is(err, service.ErrLastAdmin):
		return errForbidden
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, auth.ErrPasswordTooShort):
		return errInvalid
	default:
		slog.Error("handler error", "path", r.URL.Path, "error", err)
		return errInternal
	}
}

// logAndInternalError logs err and sends a plain 500 for JSON routes.
func logAndInternalError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("handler error", "path", r.URL.Path, "error", err)
	writeJSONError(w, http.StatusInternalServerError, "internal error")
}
