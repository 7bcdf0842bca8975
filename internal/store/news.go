// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stconstruction/website/internal/model"
)

const newsColumns = `id, title, slug, excerpt, body, cover_image,
	is_published, published_at, created_at, updated_at`

func scanNews(row interface{ Scan(...any) error }) (model.NewsItem, error) {
	var n model.NewsItem
	err := row.Scan(&n.ID, &n.Title, &n.Slug, &n.Excerpt, &n.Body, &n.CoverImage,
		&n.IsPublished, &n.PublishedAt, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.NewsItem{}, ErrNotFound
	}
	return n, err
}

// GetNewsByID returns the news item with the given ID.
func (q *Queries) GetNewsByID(ctx context.Context, id int64) (model.NewsItem, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+newsColumns+` FROM news WHERE id = ?`, id)
	return scanNews(row)
}

// GetNewsBySlug returns the news item with the given slug.
func (q *Queries) GetNewsBySlug(ctx context.Context, slug string) (model.NewsItem, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+newsColumns+` FROM news WHERE slug = ?`, slug)
	return scanNews(row)
}

// ListNewsParams filters ListNews.
type ListNewsParams struct {
	PublishedOnly bool
	Limit         int64
	Offset        int64
}

// ListNews returns news ordered newest first. Limit 0 means no limit.
func (q *Queries) ListNews(ctx context.Context, arg ListNewsParams) ([]model.NewsItem, error) {
	query := `SELECT ` + newsColumns + ` FROM news`
	if arg.PublishedOnly {
		query += ` WHERE is_published = 1`
	}
	query += ` ORDER BY COALESCE(published_at, created_at) DESC, id DESC`
	var args []any
	if arg.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, arg.Limit, arg.Offset)
	}

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.NewsItem
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// CountNews returns the number of news items, optionally published only.
func (q *Queries) CountNews(ctx context.Context, publishedOnly bool) (int64, error) {
	query := `SELECT COUNT(*) FROM news`
	if publishedOnly {
		query += ` WHERE is_published = 1`
	}
	var n int64
	err := q.db.QueryRowContext(ctx, query).Scan(&n)
	return n, err
}

// CreateNewsParams holds the fields for CreateNews.
type CreateNewsParams struct {
	Title       string
	Slug        string
	Excerpt     string
	Body        string
	CoverImage  sql.NullString
	IsPublished bool
	PublishedAt sql.NullTime
}

// CreateNews inserts a news item and returns the stored row.
func (q *Queries) CreateNews(ctx context.Context, arg CreateNewsParams) (model.NewsItem, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO news (title, slug, excerpt, body, cover_image, is_published, published_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING `+newsColumns,
		arg.Title, arg.Slug, arg.Excerpt, arg.Body, arg.CoverImage,
		arg.IsPublished, arg.PublishedAt)
	return scanNews(row)
}

// UpdateNewsParams holds the fields for UpdateNews.
type UpdateNewsParams struct {
	ID          int64
	Title       string
	Slug        string
	Excerpt     string
	Body        string
	CoverImage  sql.NullString
	IsPublished bool
	PublishedAt sql.NullTime
}

// UpdateNews replaces the mutable fields of a news item and returns
// the stored row.
func (q *Queries) UpdateNews(ctx context.Context, arg UpdateNewsParams) (model.NewsItem, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE news
		SET title = ?, slug = ?, excerpt = ?, body = ?, cover_image = ?,
		    is_published = ?, published_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
		RETURNING `+newsColumns,
		arg.Title, arg.Slug, arg.Excerpt, arg.Body, arg.CoverImage,
		arg.IsPublished, arg.PublishedAt, arg.ID)
	return scanNews(row)
}

// SetNewsPublished sets the publication flag, stamping published_at on
// first publication.
func (q *Queries) SetNewsPublished(ctx context.Context, id int64, published bool) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE news
		SET is_published = ?,
		    published_at = CASE WHEN ? AND published_at IS NULL
		        THEN CURRENT_TIMESTAMP ELSE published_at END,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		published, published, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// DeleteNews removes a news item.
func (q *Queries) DeleteNews(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM news WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
