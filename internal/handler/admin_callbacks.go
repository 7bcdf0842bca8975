// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import "net/http"

const adminCallbacksPath = RouteAdmin + "/callbacks"

// AdminCallbackList serves all leads newest first.
func (h *Handler) AdminCallbackList(w http.ResponseWriter, r *http.Request) {
	leads, err := h.callbacks.List(r.Context())
	if err != nil {
		logAndInternalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"callbacks": leads})
}

// AdminCallbackProcess marks a lead handled, or pending again when
// the form sends processed=false.
func (h *Handler) AdminCallbackProcess(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		redirectError(w, r, adminCallbacksPath, errNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		redirectError(w, r, adminCallbacksPath, errInvalid)
		return
	}

	processed := r.PostFormValue("processed") != "false"
	if err := h.callbacks.SetProcessed(r.Context(), id, processed); err != nil {
		redirectError(w, r, adminCallbacksPath, serviceErrorFlag(r, err))
		return
	}

	flag := flagProcessed
	if !processed {
		flag = flagReopened
	}
	redirectSuccess(w, r, adminCallbacksPath, flag)
}

// AdminCallbackDelete removes a lead and redirects with a flag.
func (h *Handler) AdminCallbackDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		redirectError(w, r, adminCallbacksPath, errNotFound)
		return
	}

	if err := h.callbacks.Delete(r.Context(), id); err != nil {
		redirectError(w, r, adminCallbacksPath, serviceErrorFlag(r, err))
		return
	}
	redirectSuccess(w, r, adminCallbacksPath, flagDeleted)
}
