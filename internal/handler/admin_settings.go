// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/stconstruction/website/internal/store"
)

const adminSettingsPath = RouteAdmin + "/settings"

// AdminSettingsShow serves the current site settings.
func (h *Handler) AdminSettingsShow(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		logAndInternalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"settings": settings})
}

// AdminSettingsUpdate replaces the settings row from a multipart form
// with an optional logo upload. Addresses arrive one per line in a
// textarea.
func (h *Handler) AdminSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	if err := parseUploadForm(r); err != nil {
		redirectError(w, r, adminSettingsPath, errInvalid)
		return
	}

	current, err := h.settings.Get(r.Context())
	if err != nil {
		redirectError(w, r, adminSettingsPath, serviceErrorFlag(r, err))
		return
	}

	in := store.UpdateSettingsParams{
		CompanyName:     r.PostFormValue("company_name"),
		LogoPath:        current.LogoPath,
		PhonePrimary:    r.PostFormValue("phone_primary"),
		PhoneSecondary:  r.PostFormValue("phone_secondary"),
		EmailGeneral:    r.PostFormValue("email_general"),
		EmailOrders:     r.PostFormValue("email_orders"),
		Addresses:       splitLines(r.PostFormValue("addresses")),
		SocialInstagram: r.PostFormValue("social_instagram"),
		SocialFacebook:  r.PostFormValue("social_facebook"),
		SocialWhatsapp:  r.PostFormValue("social_whatsapp"),
		SocialTelegram:  r.PostFormValue("social_telegram"),
		SocialYoutube:   r.PostFormValue("social_youtube"),
		WorkingHours:    r.PostFormValue("working_hours"),
		INN:             r.PostFormValue("inn"),
		BIN:             r.PostFormValue("bin"),
		LegalAddress:    r.PostFormValue("legal_address"),
		MetaTitle:       r.PostFormValue("meta_title"),
		MetaDescription: r.PostFormValue("meta_description"),
		MetaKeywords:    r.PostFormValue("meta_keywords"),
	}
	in.StatsProjectsCompleted, _ = strconv.ParseInt(r.PostFormValue("stats_projects_completed"), 10, 64)
	in.StatsClients, _ = strconv.ParseInt(r.PostFormValue("stats_clients"), 10, 64)
	in.StatsYearsExperience, _ = strconv.ParseInt(r.PostFormValue("stats_years_experience"), 10, 64)

	logo, err := h.saveFormImage(r, "logo", uploadDirSettings, h.logoValidator, false)
	if err != nil {
		redirectError(w, r, adminSettingsPath, uploadErrorFlag(r, err))
		return
	}
	if logo != nil {
		in.LogoPath = *logo
	} else if r.PostFormValue("remove_logo") == "true" {
		in.LogoPath = ""
	}

	if _, err := h.settings.Update(r.Context(), in); err != nil {
		redirectError(w, r, adminSettingsPath, serviceErrorFlag(r, err))
		return
	}
	redirectSuccess(w, r, adminSettingsPath, flagUpdated)
}

// splitLines turns a textarea value into trimmed non-empty lines.
func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
