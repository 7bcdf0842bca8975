// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/stconstruction/website/internal/upload"
)

// maxUploadMemory is how much of a multipart body is held in memory;
// the rest spills to temp files.
const maxUploadMemory = 8 << 20

// parseUploadForm parses a form that may or may not carry files.
func parseUploadForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxUploadMemory)
	if err == http.ErrNotMultipart {
		return r.ParseForm()
	}
	return err
}

// formFile returns the named upload, or nil when the field is absent
// or the form has no file parts at all.
func formFile(r *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	f, fh, err := r.FormFile(field)
	if err == http.ErrMissingFile || err == http.ErrNotMultipart {
		return nil, nil, nil
	}
	return f, fh, err
}

// saveFormImage validates and stores a single uploaded image. It
// returns nil when the field was not sent, so callers can distinguish
// "keep" from "replace". compressed selects resize-and-recompress
// storage over verbatim.
func (h *Handler) saveFormImage(r *http.Request, field, subDir string, v *upload.Validator, compressed bool) (*string, error) {
	f, fh, err := formFile(r, field)
	if err != nil {
		return nil, fmt.Errorf("reading %s upload: %w", field, err)
	}
	if f == nil {
		return nil, nil
	}
	defer f.Close()

	if err := v.Validate(f, fh.Filename, fh.Header.Get("Content-Type"), fh.Size); err != nil {
		return nil, err
	}

	var rel string
	if compressed {
		rel, err = h.saver.SaveCompressed(f, fh.Filename, subDir)
	} else {
		rel, err = h.saver.Save(f, fh.Filename, subDir)
	}
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

// discardUploads removes files written for a request whose database
// change did not go through, so failed forms leave no orphans.
func (h *Handler) discardUploads(paths []string) {
	for _, p := range paths {
		_ = h.saver.Remove(p)
	}
}

// saveGalleryImages validates and stores every file under the given
// multi-file field. A single invalid file fails the whole batch
// before anything is written.
func (h *Handler) saveGalleryImages(r *http.Request, field, subDir string) ([]string, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, nil
	}

	files := make([]upload.NamedFile, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()

	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s upload: %w", field, err)
		}
		opened = append(opened, f)
		files = append(files, upload.NamedFile{
			File:        f,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
		})
	}

	if err := h.imageValidator.ValidateMany(files); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(files))
	for _, nf := range files {
		rel, err := h.saver.SaveCompressed(nf.File, nf.Filename, subDir)
		if err != nil {
			// drop files already written so the batch stays atomic
			for _, p := range paths {
				_ = h.saver.Remove(p)
			}
			return nil, err
		}
		paths = append(paths, rel)
	}
	return paths, nil
}
