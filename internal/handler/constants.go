// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route path constants.
const (
	RouteHome     = "/"
	RouteContacts = "/contacts"
	RouteProjects = "/projects"
	RouteNews     = "/news"
	RouteCallback = "/callback"
	RouteHealth   = "/health"
	RouteAdmin    = "/admin"
	RouteLogin    = "/auth/login"
)

// Success flags carried in the redirect query string.
const (
	flagCreated     = "created"
	flagUpdated     = "updated"
	flagDeleted     = "deleted"
	flagPublished   = "published"
	flagUnpublished = "unpublished"
	flagProcessed   = "processed"
	flagReopened    = "reopened"
)

// Error flags carried in the redirect query string.
const (
	errAlreadyExists = "already_exists"
	errNotFound      = "not_found"
	errInvalid       = "invalid"
	errInUse         = "in_use"
	errForbidden     = "forbidden"
	errUploadFailed  = "upload_failed"
	errInternal      = "internal"
)

// Upload subdirectories, one per entity kind.
const (
	uploadDirProjects = "projects"
	uploadDirNews     = "news"
	uploadDirSettings = "settings"
)
