// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/stconstruction/website/internal/model"
	"github.com/stconstruction/website/internal/store"
	"github.com/stconstruction/website/internal/util"
)

// News manages articles. Bodies are stored as Markdown; RenderBody
// converts to sanitized HTML for the public pages.
type News struct {
	queries   *store.Queries
	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
}

// NewNews returns a News service over queries.
func NewNews(queries *store.Queries) *News {
	return &News{
		queries: queries,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// Get returns a news item by ID.
func (s *News) Get(ctx context.Context, id int64) (model.NewsItem, error) {
	n, err := s.queries.GetNewsByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.NewsItem{}, ErrNotFound
	}
	return n, err
}

// GetBySlug returns a news item by slug. When publishedOnly is set,
// unpublished items behave as missing.
func (s *News) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (model.NewsItem, error) {
	n, err := s.queries.GetNewsBySlug(ctx, slug)
	if errors.Is(err, store.ErrNotFound) {
		return model.NewsItem{}, ErrNotFound
	}
	if err != nil {
		return model.NewsItem{}, err
	}
	if publishedOnly && !n.IsPublished {
		return model.NewsItem{}, ErrNotFound
	}
	return n, nil
}

// List returns news items newest first, optionally paginated.
func (s *News) List(ctx context.Context, publishedOnly bool, limit, offset int64) ([]model.NewsItem, error) {
	return s.queries.ListNews(ctx, store.ListNewsParams{
		PublishedOnly: publishedOnly,
		Limit:         limit,
		Offset:        offset,
	})
}

// Count returns the number of news items.
func (s *News) Count(ctx context.Context, publishedOnly bool) (int64, error) {
	return s.queries.CountNews(ctx, publishedOnly)
}

// RenderBody converts a Markdown body to sanitized HTML.
func (s *News) RenderBody(body string) (string, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return s.sanitizer.Sanitize(buf.String()), nil
}

// CreateNewsInput holds the fields for Create.
type CreateNewsInput struct {
	Title       string
	Slug        string
	Excerpt     string
	Body        string
	CoverImage  string
	IsPublished bool
}

// Create adds an article. The slug is derived from the title when
// empty; publishing stamps published_at.
func (s *News) Create(ctx context.Context, in CreateNewsInput) (model.NewsItem, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return model.NewsItem{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	slug, err := s.resolveSlug(ctx, in.Title, in.Slug, 0)
	if err != nil {
		return model.NewsItem{}, err
	}

	var publishedAt sql.NullTime
	if in.IsPublished {
		publishedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
	}

	return s.queries.CreateNews(ctx, store.CreateNewsParams{
		Title:       in.Title,
		Slug:        slug,
		Excerpt:     in.Excerpt,
		Body:        in.Body,
		CoverImage:  util.NullString(in.CoverImage),
		IsPublished: in.IsPublished,
		PublishedAt: publishedAt,
	})
}

// UpdateNewsInput holds the fields for Update. CoverImage follows the
// same pointer convention as projects: nil keeps, empty clears.
type UpdateNewsInput struct {
	Title       string
	Slug        string
	Excerpt     string
	Body        string
	CoverImage  *string
	IsPublished bool
}

// Update edits an article.
func (s *News) Update(ctx context.Context, id int64, in UpdateNewsInput) (model.NewsItem, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return model.NewsItem{}, err
	}

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return model.NewsItem{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	slug, err := s.resolveSlug(ctx, in.Title, in.Slug, id)
	if err != nil {
		return model.NewsItem{}, err
	}

	publishedAt := current.PublishedAt.NullTime
	if in.IsPublished && !publishedAt.Valid {
		publishedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
	}

	return s.queries.UpdateNews(ctx, store.UpdateNewsParams{
		ID:          id,
		Title:       in.Title,
		Slug:        slug,
		Excerpt:     in.Excerpt,
		Body:        in.Body,
		CoverImage:  applyImage(current.CoverImage, in.CoverImage),
		IsPublished: in.IsPublished,
		PublishedAt: publishedAt,
	})
}

// TogglePublish flips the publication flag and returns the new state.
// First publication stamps published_at; later toggles keep it.
func (s *News) TogglePublish(ctx context.Context, id int64) (bool, error) {
	n, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}

	next := !n.IsPublished
	if err := s.queries.SetNewsPublished(ctx, id, next); err != nil {
		return false, err
	}
	return next, nil
}

// Delete removes an article.
func (s *News) Delete(ctx context.Context, id int64) error {
	if err := s.queries.DeleteNews(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *News) resolveSlug(ctx context.Context, title, slug string, excludeID int64) (string, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		slug = util.Slugify(title)
	}
	if !util.IsValidSlug(slug) {
		return "", fmt.Errorf("%w: %q is not a valid slug", ErrInvalidInput, slug)
	}

	existing, err := s.queries.GetNewsBySlug(ctx, slug)
	if err == nil && existing.ID != excludeID {
		return "", ErrSlugTaken
	}
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return "", err
	}
	return slug, nil
}
