// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/stconstruction/website/internal/model"
	"github.com/stconstruction/website/internal/store"
	"github.com/stconstruction/website/internal/util"
)

// Projects manages residential complexes.
type Projects struct {
	queries *store.Queries
}

// NewProjects returns a Projects service over queries.
func NewProjects(queries *store.Queries) *Projects {
	return &Projects{queries: queries}
}

// Get returns a project by ID.
func (s *Projects) Get(ctx context.Context, id int64) (model.Project, error) {
	p, err := s.queries.GetProjectByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.Project{}, ErrNotFound
	}
	return p, err
}

// GetBySlug returns a project by slug. When publishedOnly is set,
// unpublished projects behave as missing.
func (s *Projects) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (model.Project, error) {
	p, err := s.queries.GetProjectBySlug(ctx, slug)
	if errors.Is(err, store.ErrNotFound) {
		return model.Project{}, ErrNotFound
	}
	if err != nil {
		return model.Project{}, err
	}
	if publishedOnly && !p.IsPublished {
		return model.Project{}, ErrNotFound
	}
	return p, nil
}

// ListFilter narrows List results. Zero values mean no filter.
type ListFilter struct {
	Status        model.ProjectStatus
	CityID        int64
	PublishedOnly bool
}

// List returns projects matching the filter.
func (s *Projects) List(ctx context.Context, f ListFilter) ([]model.Project, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, f.Status)
	}
	return s.queries.ListProjects(ctx, store.ListProjectsParams{
		Status:        f.Status,
		CityID:        f.CityID,
		PublishedOnly: f.PublishedOnly,
	})
}

// CreateProjectInput holds the fields for Create.
type CreateProjectInput struct {
	Name          string
	Slug          string
	Description   string
	Class         model.ProjectClass
	Status        model.ProjectStatus
	CityID        int64
	Address       string
	CoverImage    string
	LogoImage     string
	GalleryImages []string
	FloorsTotal   int64
	Completion    string
	IsPublished   bool
	SortOrder     int64
}

// Create adds a project. The slug is derived from the name when
// empty; the city must exist.
func (s *Projects) Create(ctx context.Context, in CreateProjectInput) (model.Project, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return model.Project{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !in.Class.Valid() {
		return model.Project{}, fmt.Errorf("%w: unknown class %q", ErrInvalidInput, in.Class)
	}
	if !in.Status.Valid() {
		return model.Project{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, in.Status)
	}

	if _, err := s.queries.GetCityByID(ctx, in.CityID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Project{}, fmt.Errorf("%w: city %d does not exist", ErrInvalidInput, in.CityID)
		}
		return model.Project{}, err
	}

	slug, err := s.resolveSlug(ctx, in.Name, in.Slug, 0)
	if err != nil {
		return model.Project{}, err
	}

	return s.queries.CreateProject(ctx, store.CreateProjectParams{
		Name:          in.Name,
		Slug:          slug,
		Description:   in.Description,
		Class:         in.Class,
		Status:        in.Status,
		CityID:        in.CityID,
		Address:       in.Address,
		CoverImage:    util.NullString(in.CoverImage),
		LogoImage:     util.NullString(in.LogoImage),
		GalleryImages: in.GalleryImages,
		FloorsTotal:   util.NullInt64(in.FloorsTotal),
		Completion:    util.NullString(in.Completion),
		IsPublished:   in.IsPublished,
		SortOrder:     in.SortOrder,
	})
}

// UpdateProjectInput holds the fields for Update. Image paths are
// pointers: nil keeps the stored value, empty string clears it.
type UpdateProjectInput struct {
	Name          string
	Slug          string
	Description   string
	Class         model.ProjectClass
	Status        model.ProjectStatus
	CityID        int64
	Address       string
	CoverImage    *string
	LogoImage     *string
	GalleryImages []string
	FloorsTotal   int64
	Completion    string
	IsPublished   bool
	SortOrder     int64
}

// Update edits a project.
func (s *Projects) Update(ctx context.Context, id int64, in UpdateProjectInput) (model.Project, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return model.Project{}, err
	}

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return model.Project{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !in.Class.Valid() {
		return model.Project{}, fmt.Errorf("%w: unknown class %q", ErrInvalidInput, in.Class)
	}
	if !in.Status.Valid() {
		return model.Project{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, in.Status)
	}

	if in.CityID != current.CityID {
		if _, err := s.queries.GetCityByID(ctx, in.CityID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return model.Project{}, fmt.Errorf("%w: city %d does not exist", ErrInvalidInput, in.CityID)
			}
			return model.Project{}, err
		}
	}

	slug, err := s.resolveSlug(ctx, in.Name, in.Slug, id)
	if err != nil {
		return model.Project{}, err
	}

	gallery := in.GalleryImages
	if gallery == nil {
		gallery = current.GalleryImages
	}

	return s.queries.UpdateProject(ctx, store.UpdateProjectParams{
		ID:            id,
		Name:          in.Name,
		Slug:          slug,
		Description:   in.Description,
		Class:         in.Class,
		Status:        in.Status,
		CityID:        in.CityID,
		Address:       in.Address,
		CoverImage:    applyImage(current.CoverImage, in.CoverImage),
		LogoImage:     applyImage(current.LogoImage, in.LogoImage),
		GalleryImages: gallery,
		FloorsTotal:   util.NullInt64(in.FloorsTotal),
		Completion:    util.NullString(in.Completion),
		IsPublished:   in.IsPublished,
		SortOrder:     in.SortOrder,
	})
}

// TogglePublish flips the publication flag and returns the new state.
func (s *Projects) TogglePublish(ctx context.Context, id int64) (bool, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}

	next := !p.IsPublished
	if err := s.queries.SetProjectPublished(ctx, id, next); err != nil {
		return false, err
	}
	return next, nil
}

// Delete removes a project.
func (s *Projects) Delete(ctx context.Context, id int64) error {
	if err := s.queries.DeleteProject(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Projects) resolveSlug(ctx context.Context, name, slug string, excludeID int64) (string, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		slug = util.Slugify(name)
	}
	if !util.IsValidSlug(slug) {
		return "", fmt.Errorf("%w: %q is not a valid slug", ErrInvalidInput, slug)
	}

	existing, err := s.queries.GetProjectBySlug(ctx, slug)
	if err == nil && existing.ID != excludeID {
		return "", ErrSlugTaken
	}
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return "", err
	}
	return slug, nil
}

// applyImage keeps the stored value for nil, clears for empty, and
// replaces otherwise.
func applyImage(current model.NullString, in *string) sql.NullString {
	if in == nil {
		return current.NullString
	}
	return util.NullString(*in)
}
