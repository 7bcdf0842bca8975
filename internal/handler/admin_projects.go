// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/stconstruction/website/internal/model"
	"github.com/stconstruction/website/internal/service"
	"github.com/stconstruction/website/internal/upload"
)

const adminProjectsPath = RouteAdmin + "/projects"

// AdminProjectList serves all projects, drafts included.
func (h *Handler) AdminProjectList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context(), service.ListFilter{})
	if err != nil {
		logAndInternalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

// AdminProjectAdd creates a project from a multipart form with
// optional cover, logo, and gallery uploads.
func (h *Handler) AdminProjectAdd(w http.ResponseWriter, r *http.Request) {
	if err := parseUploadForm(r); err != nil {
		redirectError(w, r, adminProjectsPath, errInvalid)
		return
	}

	in := service.CreateProjectInput{
		Name:        r.PostFormValue("name"),
		Slug:        r.PostFormValue("slug"),
		Description: r.PostFormValue("description"),
		Class:       model.ProjectClass(r.PostFormValue("class")),
		Status:      model.ProjectStatus(r.PostFormValue("status")),
		Address:     r.PostFormValue("address"),
		Completion:  r.PostFormValue("completion"),
		IsPublished: r.PostFormValue("is_published") == "true",
	}
	in.CityID, _ = strconv.ParseInt(r.PostFormValue("city_id"), 10, 64)
	in.FloorsTotal, _ = strconv.ParseInt(r.PostFormValue("floors_total"), 10, 64)
	in.SortOrder, _ = strconv.ParseInt(r.PostFormValue("sort_order"), 10, 64)

	var saved []string

	cover, err := h.saveFormImage(r, "cover_image", uploadDirProjects, h.imageValidator, true)
	if err != nil {
		redirectError(w, r, adminProjectsPath, uploadErrorFlag(r, err))
		return
	}
	if cover != nil {
		in.CoverImage = *cover
		saved = append(saved, *cover)
	}

	logo, err := h.saveFormImage(r, "logo_image", uploadDirProjects, h.logoValidator, false)
	if err != nil {
		h.discardUploads(saved)
		redirectError(w, r, adminProjectsPath, uploadErrorFlag(r, err))
		return
	}
	if logo != nil {
		in.LogoImage = *logo
		saved = append(saved, *logo)
	}

	gallery, err := h.saveGalleryImages(r, "gallery_images", uploadDirProjects)
	if err != nil {
		h.discardUploads(saved)
		redirectError(w, r, adminProjectsPath, uploadErrorFlag(r, err))
		return
	}
	in.GalleryImages = gallery
	saved = append(saved, gallery...)

	if _, err := h.projects.Create(r.Context(), in); err != nil {
		h.discardUploads(saved)
		redirectError(w, r, adminProjectsPath, serviceErrorFlag(r, err))
		return
	}
	redirectSuccess(w, r, adminProjectsPath, flagCreated)
}

// AdminProjectEdit updates a project. Absent file fields keep the
// stored images; remove_cover / remove_logo clear them.
func (h *Handler) AdminProjectEdit(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		redirectError(w, r, adminProjectsPath, errNotFound)
		return
	}
	if err := parseUploadForm(r); err != nil {
		redirectError(w, r, adminProjectsPath, errInvalid)
		return
	}

	in := service.UpdateProjectInput{
		Name:        r.PostFormValue("name"),
		Slug:        r.PostFormValue("slug"),
		Description: r.PostFormValue("description"),
		Class:       model.ProjectClass(r.PostFormValue("class")),
		Status:      model.ProjectStatus(r.PostFormValue("status")),
		Address:     r.PostFormValue("address"),
		Completion:  r.PostFormValue("completion"),
		IsPublished: r.PostFormValue("is_published") == "true",
	}
	in.CityID, _ = strconv.ParseInt(r.PostFormValue("city_id"), 10, 64)
	in.FloorsTotal, _ = strconv.ParseInt(r.PostFormValue("floors_total"), 10, 64)
	in.SortOrder, _ = strconv.ParseInt(r.PostFormValue("sort_order"), 10, 64)

	var saved []string

	in.CoverImage, err = h.resolveImageField(r, "cover_image", "remove_cover",
		uploadDirProjects, h.imageValidator, true)
	if err != nil {
		redirectError(w, r, adminProjectsPath, uploadErrorFlag(r, err))
		return
	}
	if in.CoverImage != nil && *in.CoverImage != "" {
		saved = append(saved, *in.CoverImage)
	}

	in.LogoImage, err = h.resolveImageField(r, "logo_image", "remove_logo",
		uploadDirProjects, h.logoValidator, false)
	if err != nil {
		h.discardUploads(saved)
		redirectError(w, r, adminProjectsPath, uploadErrorFlag(r, err))
		return
	}
	if in.LogoImage != nil && *in.LogoImage != "" {
		saved = append(saved, *in.LogoImage)
	}

	gallery, err := h.saveGalleryImages(r, "gallery_images", uploadDirProjects)
	if err != nil {
		h.discardUploads(saved)
		redirectError(w, r, adminProjectsPath, uploadErrorFlag(r, err))
		return
	}
	in.GalleryImages = gallery // nil keeps the stored gallery
	saved = append(saved, gallery...)

	if _, err := h.projects.Update(r.Context(), id, in); err != nil {
		h.discardUploads(saved)
		redirectError(w, r, adminProjectsPath, serviceErrorFlag(r, err))
		return
	}
	redirectSuccess(w, r, adminProjectsPath, flagUpdated)
}

// AdminProjectTogglePublish flips publication and redirects with the
// resulting state as the flag.
func (h *Handler) AdminProjectTogglePublish(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		redirectError(w, r, adminProjectsPath, errNotFound)
		return
	}

	published, err := h.projects.TogglePublish(r.Context(), id)
	if err != nil {
		redirectError(w, r, adminProjectsPath, serviceErrorFlag(r, err))
		return
	}

	flag := flagUnpublished
	if published {
		flag = flagPublished
	}
	redirectSuccess(w, r, adminProjectsPath, flag)
}

// AdminProjectDelete removes a project and redirects with a flag.
func (h *Handler) AdminProjectDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		redirectError(w, r, adminProjectsPath, errNotFound)
		return
	}

	if err := h.projects.Delete(r.Context(), id); err != nil {
		redirectError(w, r, adminProjectsPath, serviceErrorFlag(r, err))
		return
	}
	redirectSuccess(w, r, adminProjectsPath, flagDeleted)
}

// resolveImageField implements the keep/clear/replace convention for
// optional image fields on edit forms.
func (h *Handler) resolveImageField(r *http.Request, fileField, removeField, subDir string, v *upload.Validator, compressed bool) (*string, error) {
	if r.PostFormValue(removeField) == "true" {
		empty := ""
		return &empty, nil
	}
	return h.saveFormImage(r, fileField, subDir, v, compressed)
}

// uploadErrorFlag distinguishes validation rejections from storage
// failures.
func uploadErrorFlag(r *http.Request, err error) string {
	var verr *upload.ValidationError
	if errors.As(err, &verr) {
		return errInvalid
	}
	return uploadInternalFlag(r, err)
}

func uploadInternalFlag(r *http.Request, err error) string {
	// fall through to the shared mapping for service errors, keeping
	// upload_failed for genuine storage problems
	if flag := serviceErrorFlag(r, err); flag != errInternal {
		return flag
	}
	return errUploadFailed
}
