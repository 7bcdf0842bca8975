// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stconstruction/website/internal/store"
)

func newNews(t *testing.T) *News {
	t.Helper()
	return NewNews(store.New(store.NewTestDB(t)))
}

func TestNewsPublishStampsPublishedAt(t *testing.T) {
	s := newNews(t)
	ctx := context.Background()

	draft, err := s.Create(ctx, CreateNewsInput{Title: "Groundbreaking"})
	require.NoError(t, err)
	assert.False(t, draft.PublishedAt.Valid)

	on, err := s.TogglePublish(ctx, draft.ID)
	require.NoError(t, err)
	assert.True(t, on)

	published, err := s.Get(ctx, draft.ID)
	require.NoError(t, err)
	require.True(t, published.PublishedAt.Valid)

	// unpublish then republish keeps the original stamp
	_, err = s.TogglePublish(ctx, draft.ID)
	require.NoError(t, err)
	_, err = s.TogglePublish(ctx, draft.ID)
	require.NoError(t, err)

	again, err := s.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, published.PublishedAt.Time, again.PublishedAt.Time)
}

func TestNewsPublicVisibility(t *testing.T) {
	s := newNews(t)
	ctx := context.Background()

	draft, err := s.Create(ctx, CreateNewsInput{Title: "Hidden Draft"})
	require.NoError(t, err)

	_, err = s.GetBySlug(ctx, draft.Slug, true)
	assert.ErrorIs(t, err, ErrNotFound)

	items, err := s.List(ctx, true, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = s.TogglePublish(ctx, draft.ID)
	require.NoError(t, err)

	items, err = s.List(ctx, true, 0, 0)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestNewsRenderBodySanitizes(t *testing.T) {
	s := newNews(t)

	html, err := s.RenderBody("# Heading\n\nSome **bold** text.")
	require.NoError(t, err)
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<strong>bold</strong>")

	html, err = s.RenderBody("hello <script>alert(1)</script> world")
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "hello")
}

func TestNewsSlugConflict(t *testing.T) {
	s := newNews(t)
	ctx := context.Background()

	_, err := s.Create(ctx, CreateNewsInput{Title: "Opening Day"})
	require.NoError(t, err)

	_, err = s.Create(ctx, CreateNewsInput{Title: "Different", Slug: "opening-day"})
	assert.ErrorIs(t, err, ErrSlugTaken)
}
