// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/stconstruction/website/internal/model"
	"github.com/stconstruction/website/internal/service"
)

// Health answers liveness probes.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Home serves the landing page payload: company settings, published
// projects grouped by status, and the latest news.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	settings, err := h.settings.Get(ctx)
	if err != nil {
		logAndInternalError(w, r, err)
		return
	}

	projects, err := h.projects.List(ctx, service.ListFilter{PublishedOnly: true})
	if err != nil {
		logAndInternalError(w, r, err)
		return
	}

	news, err := h.news.List(ctx, true, 3, 0)
	if err != nil {
		logAndInternalError(w, r, err)
		return
	}

	grouped := map[model.ProjectStatus][]model.Project{}
	for _, p := range projects {
		grouped[p.Status] = append(grouped[p.Status], p)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"settings":    settings,
		"projects":    grouped,
		"latest_news": news,
	})
}

// Contacts serves the contact page payload.
func (h *Handler) Contacts(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		logAndInternalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"settings": settings})
}

// ProjectList serves published projects, filterable by status and city.
func (h *Handler) ProjectList(w http.ResponseWriter, r *http.Request) {
	filter := service.ListFilter{PublishedOnly: true}
	filter.Status = model.ProjectStatus(r.URL.Query().Get("status"))
	if cityID, err := strconv.ParseInt(r.URL.Query().Get("city_id"), 10, 64); err == nil {
		filter.CityID = cityID
	}

	projects, err := h.projects.List(r.Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		logAndInternalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

// ProjectDetail serves a single published project.
func (h *Handler) ProjectDetail(w http.ResponseWriter, r *http.Request) {
	p, err := h.projects.GetBySlug(r.Context(), chi.URLParam(r, "slug"), true)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "project not found")
			return
		}
		logAndInternalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"project": p})
}

// NewsList serves published news with optional paging.
func (h *Handler) NewsList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	offset, _ := strconv.ParseInt(r.URL.Query().Get("offset"), 10, 64)
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	items, err := h.news.List(r.Context(), true, limit, offset)
	if err != nil {
		logAndInternalError(w, r, err)
		return
	}
	total, err := h.news.Count(r.Context(), true)
	if err != nil {
		logAndInternalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"news":  items,
		"total": total,
	})
}

// NewsDetail serves a single published article with its body rendered
// to sanitized HTML.
func (h *Handler) NewsDetail(w http.ResponseWriter, r *http.Request) {
	item, err := h.news.GetBySlug(r.Context(), chi.URLParam(r, "slug"), true)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "article not found")
			return
		}
		logAndInternalError(w, r, err)
		return
	}

	body, err := h.news.RenderBody(item.Body)
	if err != nil {
		logAndInternalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"article":   item,
		"body_html": body,
	})
}

// SubmitCallback records a call-me-back lead from the public form.
func (h *Handler) SubmitCallback(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed form")
		return
	}

	projectID, _ := strconv.ParseInt(r.PostFormValue("project_id"), 10, 64)
	_, err := h.callbacks.Submit(r.Context(),
		r.PostFormValue("name"),
		r.PostFormValue("phone"),
		r.PostFormValue("message"),
		projectID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		logAndInternalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "received"})
}
