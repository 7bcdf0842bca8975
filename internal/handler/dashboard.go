// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/stconstruction/website/internal/service"
)

// Dashboard serves back-office overview counts.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	projects, err := h.projects.List(ctx, service.ListFilter{})
	if err != nil {
		logAndInternalError(w, r, err)
		return
	}

	published := 0
	for _, p := range projects {
		if p.IsPublished {
			published++
		}
	}

	newsTotal, err := h.news.Count(ctx, false)
	if err != nil {
		logAndInternalError(w, r, err)
		return
	}

	pendingLeads, err := h.callbacks.CountUnprocessed(ctx)
	if err != nil {
		logAndInternalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"projects_total":     len(projects),
		"projects_published": published,
		"news_total":         newsTotal,
		"pending_callbacks":  pendingLeads,
	})
}
