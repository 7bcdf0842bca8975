// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"

	"github.com/stconstruction/website/internal/model"
	"github.com/stconstruction/website/internal/store"
)

// Settings manages the singleton site settings row. Handlers fetch
// settings per request instead of caching a process-wide copy, so
// edits take effect immediately.
type Settings struct {
	queries *store.Queries
}

// NewSettings returns a Settings service over queries.
func NewSettings(queries *store.Queries) *Settings {
	return &Settings{queries: queries}
}

// Get returns the settings row, creating the default one when none
// exists yet.
func (s *Settings) Get(ctx context.Context) (model.SiteSettings, error) {
	settings, err := s.queries.GetSettings(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return s.queries.CreateDefaultSettings(ctx)
	}
	return settings, err
}

// Update replaces the settings row and returns the stored values.
func (s *Settings) Update(ctx context.Context, in store.UpdateSettingsParams) (model.SiteSettings, error) {
	// The row always exists after Get, but an empty database straight
	// from migration may not have it yet.
	if _, err := s.Get(ctx); err != nil {
		return model.SiteSettings{}, err
	}
	return s.queries.UpdateSettings(ctx, in)
}
