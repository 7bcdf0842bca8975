// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

// Package upload validates and stores user-submitted image files.
// Every file is checked three ways: extension allowlist, declared
// content type, and magic bytes sniffed from the actual content.
package upload

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
)

// Size ceilings in bytes.
const (
	MaxImageSize = 10 << 20 // photos, covers, gallery
	MaxLogoSize  = 5 << 20  // project logos
)

// MaxFilesPerRequest caps multi-file gallery uploads.
const MaxFilesPerRequest = 10

// sniffLen is how many leading bytes are read for content detection.
const sniffLen = 512

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

var allowedMIMETypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// ValidationError describes why a file was rejected. The message is
// safe to show to back-office users.
type ValidationError struct {
	Filename string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("upload %q rejected: %s", e.Filename, e.Reason)
}

// File is the subset of multipart.File the validator needs.
type File interface {
	io.Reader
	io.Seeker
}

// Validator checks uploaded files against the allowlists and a size
// ceiling.
type Validator struct {
	maxSize int64
}

// NewValidator returns a validator with the given size ceiling.
// Use MaxImageSize for photos and MaxLogoSize for logos.
func NewValidator(maxSize int64) *Validator {
	return &Validator{maxSize: maxSize}
}

// Validate checks a single file. On success the file is rewound to the
// start so the caller can read it again. contentType and size are the
// declared values from the multipart header; the declared type must be
// on the allowlist before the content is even sniffed.
func (v *Validator) Validate(f File, filename, contentType string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return &ValidationError{Filename: filename,
			Reason: fmt.Sprintf("extension %q is not allowed", ext)}
	}

	if size <= 0 {
		return &ValidationError{Filename: filename, Reason: "file is empty"}
	}
	if size > v.maxSize {
		return &ValidationError{Filename: filename,
			Reason: fmt.Sprintf("file is %d bytes, limit is %d", size, v.maxSize)}
	}

	// strip parameters such as "; charset=utf-8"
	declared, _, _ := strings.Cut(contentType, ";")
	declared = strings.TrimSpace(strings.ToLower(declared))
	if !allowedMIMETypes[declared] {
		return &ValidationError{Filename: filename,
			Reason: fmt.Sprintf("declared content type %q is not an allowed image format", contentType)}
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return fmt.Errorf("reading file header: %w", err)
	}
	head = head[:n]

	if err := checkContent(head, ext, filename); err != nil {
		return err
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding file: %w", err)
	}
	return nil
}

// checkContent verifies the sniffed content type matches the claimed
// extension family.
func checkContent(head []byte, ext, filename string) error {
	// SVG is XML text; DetectContentType reports it as text/xml or
	// text/plain, so check for the document markers directly.
	if ext == ".svg" {
		if isSVG(head) {
			return nil
		}
		return &ValidationError{Filename: filename,
			Reason: "content does not look like an SVG document"}
	}

	contentType := http.DetectContentType(head)
	if !allowedMIMETypes[contentType] {
		return &ValidationError{Filename: filename,
			Reason: fmt.Sprintf("detected content type %q is not an allowed image format", contentType)}
	}

	if expected := extensionMIME(ext); expected != contentType {
		return &ValidationError{Filename: filename,
			Reason: fmt.Sprintf("extension %q does not match detected type %q", ext, contentType)}
	}
	return nil
}

func extensionMIME(ext string) string {
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return ""
	}
}

// isSVG reports whether the leading bytes look like an SVG document:
// an <svg> root element, optionally preceded by an XML declaration,
// comments, or a doctype.
func isSVG(head []byte) bool {
	trimmed := bytes.TrimLeft(head, " \t\r\n\xef\xbb\xbf")
	lower := bytes.ToLower(trimmed)
	if bytes.HasPrefix(lower, []byte("<svg")) {
		return true
	}
	if bytes.HasPrefix(lower, []byte("<?xml")) || bytes.HasPrefix(lower, []byte("<!--")) ||
		bytes.HasPrefix(lower, []byte("<!doctype")) {
		return bytes.Contains(lower, []byte("<svg"))
	}
	return false
}

// ValidateMany checks up to MaxFilesPerRequest files. The first
// failure aborts the batch.
func (v *Validator) ValidateMany(files []NamedFile) error {
	if len(files) > MaxFilesPerRequest {
		return &ValidationError{
			Filename: fmt.Sprintf("%d files", len(files)),
			Reason:   fmt.Sprintf("at most %d files per upload", MaxFilesPerRequest),
		}
	}
	for _, nf := range files {
		if err := v.Validate(nf.File, nf.Filename, nf.ContentType, nf.Size); err != nil {
			return err
		}
	}
	return nil
}

// NamedFile pairs a file with its multipart metadata.
type NamedFile struct {
	File        File
	Filename    string
	ContentType string
	Size        int64
}
