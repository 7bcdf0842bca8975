// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
)

const adminCitiesPath = RouteAdmin + "/cities"

// AdminCityList serves all cities for the back office.
func (h *Handler) AdminCityList(w http.ResponseWriter, r *http.Request) {
	cities, err := h.cities.List(r.Context())
	if err != nil {
		logAndInternalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cities": cities})
}

// AdminCityAdd creates a city and redirects with a flag.
func (h *Handler) AdminCityAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectError(w, r, adminCitiesPath, errInvalid)
		return
	}

	_, err := h.cities.Create(r.Context(), r.PostFormValue("name"), r.PostFormValue("slug"))
	if err != nil {
		redirectError(w, r, adminCitiesPath, serviceErrorFlag(r, err))
		return
	}
	redirectSuccess(w, r, adminCitiesPath, flagCreated)
}

// AdminCityEdit updates a city and redirects with a flag.
func (h *Handler) AdminCityEdit(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		redirectError(w, r, adminCitiesPath, errNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		redirectError(w, r, adminCitiesPath, errInvalid)
		return
	}

	_, err = h.cities.Update(r.Context(), id, r.PostFormValue("name"), r.PostFormValue("slug"))
	if err != nil {
		redirectError(w, r, adminCitiesPath, serviceErrorFlag(r, err))
		return
	}
	redirectSuccess(w, r, adminCitiesPath, flagUpdated)
}

// AdminCityDelete removes a city unless projects still reference it.
func (h *Handler) AdminCityDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		redirectError(w, r, adminCitiesPath, errNotFound)
		return
	}

	if err := h.cities.Delete(r.Context(), id); err != nil {
		redirectError(w, r, adminCitiesPath, serviceErrorFlag(r, err))
		return
	}
	redirectSuccess(w, r, adminCitiesPath, flagDeleted)
}
