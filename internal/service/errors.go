// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the business rules between the HTTP
// handlers and the store: uniqueness checks, referential guards, and
// content processing.
package service

import "errors"

// Sentinel errors the handlers translate into redirect flags.
var (
	ErrNotFound      = errors.New("service: not found")
	ErrSlugTaken     = errors.New("service: slug already in use")
	ErrEmailTaken    = errors.New("service: email already registered")
	ErrUsernameTaken = errors.New("service: username already taken")
	ErrCityInUse     = errors.New("service: city is referenced by projects")
	ErrSelfDelete    = errors.New("service: cannot delete own account")
	ErrSelfDemote    = errors.New("service: cannot demote own account")
	ErrLastAdmin     = errors.New("service: cannot remove the last superuser")
	ErrInvalidInput  = errors.New("service: invalid input")
)
