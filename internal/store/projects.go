// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/stconstruction/website/internal/model"
)

const projectColumns = `p.id, p.name, p.slug, p.description, p.class, p.status,
	p.city_id, p.address, p.cover_image, p.logo_image, p.gallery_images,
	p.floors_total, p.completion, p.is_published, p.sort_order,
	p.created_at, p.updated_at, c.name`

const projectFrom = ` FROM projects p JOIN cities c ON c.id = p.city_id`

func scanProject(row interface{ Scan(...any) error }) (model.Project, error) {
	var (
		p       model.Project
		gallery string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Class, &p.Status,
		&p.CityID, &p.Address, &p.CoverImage, &p.LogoImage, &gallery,
		&p.FloorsTotal, &p.Completion, &p.IsPublished, &p.SortOrder,
		&p.CreatedAt, &p.UpdatedAt, &p.CityName)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Project{}, ErrNotFound
	}
	if err != nil {
		return model.Project{}, err
	}
	if err := json.Unmarshal([]byte(gallery), &p.GalleryImages); err != nil {
		return model.Project{}, err
	}
	return p, nil
}

func marshalGallery(images []string) string {
	if images == nil {
		images = []string{}
	}
	b, _ := json.Marshal(images)
	return string(b)
}

// GetProjectByID returns the project with the given ID.
func (q *Queries) GetProjectByID(ctx context.Context, id int64) (model.Project, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+projectFrom+` WHERE p.id = ?`, id)
	return scanProject(row)
}

// GetProjectBySlug returns the project with the given slug.
func (q *Queries) GetProjectBySlug(ctx context.Context, slug string) (model.Project, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+projectFrom+` WHERE p.slug = ?`, slug)
	return scanProject(row)
}

// ListProjectsParams filters ListProjects. Zero values mean no filter.
type ListProjectsParams struct {
	Status        model.ProjectStatus
	CityID        int64
	PublishedOnly bool
}

// ListProjects returns projects matching the filters, ordered by sort
// order then creation time.
func (q *Queries) ListProjects(ctx context.Context, arg ListProjectsParams) ([]model.Project, error) {
	query := `SELECT ` + projectColumns + projectFrom + ` WHERE 1=1`
	var args []any
	if arg.PublishedOnly {
		query += ` AND p.is_published = 1`
	}
	if arg.Status != "" {
		query += ` AND p.status = ?`
		args = append(args, arg.Status)
	}
	if arg.CityID != 0 {
		query += ` AND p.city_id = ?`
		args = append(args, arg.CityID)
	}
	query += ` ORDER BY p.sort_order, p.created_at DESC, p.id`

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// CreateProjectParams holds the fields for CreateProject.
type CreateProjectParams struct {
	Name          string
	Slug          string
	Description   string
	Class         model.ProjectClass
	Status        model.ProjectStatus
	CityID        int64
	Address       string
	CoverImage    sql.NullString
	LogoImage     sql.NullString
	GalleryImages []string
	FloorsTotal   sql.NullInt64
	Completion    sql.NullString
	IsPublished   bool
	SortOrder     int64
}

// CreateProject inserts a project and returns the stored row.
func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) (model.Project, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO projects (name, slug, description, class, status, city_id,
			address, cover_image, logo_image, gallery_images, floors_total,
			completion, is_published, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Name, arg.Slug, arg.Description, arg.Class, arg.Status, arg.CityID,
		arg.Address, arg.CoverImage, arg.LogoImage, marshalGallery(arg.GalleryImages),
		arg.FloorsTotal, arg.Completion, arg.IsPublished, arg.SortOrder)
	if err != nil {
		return model.Project{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Project{}, err
	}
	return q.GetProjectByID(ctx, id)
}

// UpdateProjectParams holds the fields for UpdateProject.
type UpdateProjectParams struct {
	ID            int64
	Name          string
	Slug          string
	Description   string
	Class         model.ProjectClass
	Status        model.ProjectStatus
	CityID        int64
	Address       string
	CoverImage    sql.NullString
	LogoImage     sql.NullString
	GalleryImages []string
	FloorsTotal   sql.NullInt64
	Completion    sql.NullString
	IsPublished   bool
	SortOrder     int64
}

// UpdateProject replaces the mutable fields of a project and returns
// the stored row.
func (q *Queries) UpdateProject(ctx context.Context, arg UpdateProjectParams) (model.Project, error) {
	res, err := q.db.ExecContext(ctx, `
		UPDATE projects
		SET name = ?, slug = ?, description = ?, class = ?, status = ?,
		    city_id = ?, address = ?, cover_image = ?, logo_image = ?,
		    gallery_images = ?, floors_total = ?, completion = ?,
		    is_published = ?, sort_order = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		arg.Name, arg.Slug, arg.Description, arg.Class, arg.Status,
		arg.CityID, arg.Address, arg.CoverImage, arg.LogoImage,
		marshalGallery(arg.GalleryImages), arg.FloorsTotal, arg.Completion,
		arg.IsPublished, arg.SortOrder, arg.ID)
	if err != nil {
		return model.Project{}, err
	}
	if err := requireAffected(res); err != nil {
		return model.Project{}, err
	}
	return q.GetProjectByID(ctx, arg.ID)
}

// SetProjectPublished sets the publication flag.
func (q *Queries) SetProjectPublished(ctx context.Context, id int64, published bool) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE projects SET is_published = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		published, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// DeleteProject removes a project.
func (q *Queries) DeleteProject(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
