// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stconstruction/website/internal/model"
	"github.com/stconstruction/website/internal/store"
	"github.com/stconstruction/website/internal/util"
)

// Cities manages project locations.
type Cities struct {
	queries *store.Queries
}

// NewCities returns a Cities service over queries.
func NewCities(queries *store.Queries) *Cities {
	return &Cities{queries: queries}
}

// Get returns a city by ID.
func (s *Cities) Get(ctx context.Context, id int64) (model.City, error) {
	c, err := s.queries.GetCityByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.City{}, ErrNotFound
	}
	return c, err
}

// List returns all cities alphabetically.
func (s *Cities) List(ctx context.Context) ([]model.City, error) {
	return s.queries.ListCities(ctx)
}

// Create adds a city. The slug is derived from the name when empty.
func (s *Cities) Create(ctx context.Context, name, slug string) (model.City, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.City{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	slug, err := s.resolveSlug(ctx, name, slug, 0)
	if err != nil {
		return model.City{}, err
	}

	return s.queries.CreateCity(ctx, store.CreateCityParams{Name: name, Slug: slug})
}

// Update edits a city's name and slug.
func (s *Cities) Update(ctx context.Context, id int64, name, slug string) (model.City, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return model.City{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return model.City{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	slug, err := s.resolveSlug(ctx, name, slug, id)
	if err != nil {
		return model.City{}, err
	}

	return s.queries.UpdateCity(ctx, store.UpdateCityParams{ID: id, Name: name, Slug: slug})
}

// Delete removes a city unless any project still references it.
func (s *Cities) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	n, err := s.queries.CountProjectsByCity(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrCityInUse
	}

	if err := s.queries.DeleteCity(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// resolveSlug normalizes or derives the slug and enforces uniqueness.
// excludeID skips the row being updated.
func (s *Cities) resolveSlug(ctx context.Context, name, slug string, excludeID int64) (string, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		slug = util.Slugify(name)
	}
	if !util.IsValidSlug(slug) {
		return "", fmt.Errorf("%w: %q is not a valid slug", ErrInvalidInput, slug)
	}

	existing, err := s.queries.GetCityBySlug(ctx, slug)
	if err == nil && existing.ID != excludeID {
		return "", ErrSlugTaken
	}
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return "", err
	}
	return slug, nil
}
