// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// NewsItem is a published article. Body is stored as Markdown and
// rendered to sanitized HTML on read.
type NewsItem struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Body        string     `json:"body"`
	CoverImage  NullString `json:"cover_image"`
	IsPublished bool       `json:"is_published"`
	PublishedAt NullTime   `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
