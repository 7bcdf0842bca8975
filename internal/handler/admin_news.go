// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/stconstruction/website/internal/service"
)

const adminNewsPath = RouteAdmin + "/news"

// AdminNewsList serves all articles, drafts included.
func (h *Handler) AdminNewsList(w http.ResponseWriter, r *http.Request) {
	items, err := h.news.List(r.Context(), false, 0, 0)
	if err != nil {
		logAndInternalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"news": items})
}

// AdminNewsAdd creates an article with an optional cover upload.
func (h *Handler) AdminNewsAdd(w http.ResponseWriter, r *http.Request) {
	if err := parseUploadForm(r); err != nil {
		redirectError(w, r, adminNewsPath, errInvalid)
		return
	}

	in := service.CreateNewsInput{
		Title:       r.PostFormValue("title"),
		Slug:        r.PostFormValue("slug"),
		Excerpt:     r.PostFormValue("excerpt"),
		Body:        r.PostFormValue("body"),
		IsPublished: r.PostFormValue("is_published") == "true",
	}

	cover, err := h.saveFormImage(r, "cover_image", uploadDirNews, h.imageValidator, true)
	if err != nil {
		redirectError(w, r, adminNewsPath, uploadErrorFlag(r, err))
		return
	}
	var saved []string
	if cover != nil {
		in.CoverImage = *cover
		saved = append(saved, *cover)
	}

	if _, err := h.news.Create(r.Context(), in); err != nil {
		h.discardUploads(saved)
		redirectError(w, r, adminNewsPath, serviceErrorFlag(r, err))
		return
	}
	redirectSuccess(w, r, adminNewsPath, flagCreated)
}

// AdminNewsEdit updates an article. An absent cover field keeps the
// stored image; remove_cover clears it.
func (h *Handler) AdminNewsEdit(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		redirectError(w, r, adminNewsPath, errNotFound)
		return
	}
	if err := parseUploadForm(r); err != nil {
		redirectError(w, r, adminNewsPath, errInvalid)
		return
	}

	in := service.UpdateNewsInput{
		Title:       r.PostFormValue("title"),
		Slug:        r.PostFormValue("slug"),
		Excerpt:     r.PostFormValue("excerpt"),
		Body:        r.PostFormValue("body"),
		IsPublished: r.PostFormValue("is_published") == "true",
	}

	in.CoverImage, err = h.resolveImageField(r, "cover_image", "remove_cover",
		uploadDirNews, h.imageValidator, true)
	if err != nil {
		redirectError(w, r, adminNewsPath, uploadErrorFlag(r, err))
		return
	}
	var saved []string
	if in.CoverImage != nil && *in.CoverImage != "" {
		saved = append(saved, *in.CoverImage)
	}

	if _, err := h.news.Update(r.Context(), id, in); err != nil {
		h.discardUploads(saved)
		redirectError(w, r, adminNewsPath, serviceErrorFlag(r, err))
		return
	}
	redirectSuccess(w, r, adminNewsPath, flagUpdated)
}

// AdminNewsTogglePublish flips publication and redirects with the
// resulting state as the flag.
func (h *Handler) AdminNewsTogglePublish(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		redirectError(w, r, adminNewsPath, errNotFound)
		return
	}

	published, err := h.news.TogglePublish(r.Context(), id)
	if err != nil {
		redirectError(w, r, adminNewsPath, serviceErrorFlag(r, err))
		return
	}

	flag := flagUnpublished
	if published {
		flag = flagPublished
	}
	redirectSuccess(w, r, adminNewsPath, flag)
}

// AdminNewsDelete removes an article and redirects with a flag.
func (h *Handler) AdminNewsDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		redirectError(w, r, adminNewsPath, errNotFound)
		return
	}

	if err := h.news.Delete(r.Context(), id); err != nil {
		redirectError(w, r, adminNewsPath, serviceErrorFlag(r, err))
		return
	}
	redirectSuccess(w, r, adminNewsPath, flagDeleted)
}
