// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stconstruction/website/internal/model"
)

const cityColumns = `id, name, slug, created_at, updated_at`

func scanCity(row interface{ Scan(...any) error }) (model.City, error) {
	var c model.City
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.City{}, ErrNotFound
	}
	return c, err
}

// GetCityByID returns the city with the given ID.
func (q *Queries) GetCityByID(ctx context.Context, id int64) (model.City, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+cityColumns+` FROM cities WHERE id = ?`, id)
	return scanCity(row)
}

// GetCityBySlug returns the city with the given slug.
func (q *Queries) GetCityBySlug(ctx context.Context, slug string) (model.City, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+cityColumns+` FROM cities WHERE slug = ?`, slug)
	return scanCity(row)
}

// ListCities returns all cities ordered by name.
func (q *Queries) ListCities(ctx context.Context) ([]model.City, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+cityColumns+` FROM cities ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cities []model.City
	for rows.Next() {
		c, err := scanCity(rows)
		if err != nil {
			return nil, err
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}

// CreateCityParams holds the fields for CreateCity.
type CreateCityParams struct {
	Name string
	Slug string
}

// CreateCity inserts a city and returns the stored row.
func (q *Queries) CreateCity(ctx context.Context, arg CreateCityParams) (model.City, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO cities (name, slug) VALUES (?, ?)
		RETURNING `+cityColumns,
		arg.Name, arg.Slug)
	return scanCity(row)
}

// UpdateCityParams holds the fields for UpdateCity.
type UpdateCityParams struct {
	ID   int64
	Name string
	Slug string
}

// UpdateCity replaces the name and slug of a city and returns the
// stored row.
func (q *Queries) UpdateCity(ctx context.Context, arg UpdateCityParams) (model.City, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE cities SET name = ?, slug = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
		RETURNING `+cityColumns,
		arg.Name, arg.Slug, arg.ID)
	return scanCity(row)
}

// DeleteCity removes a city.
func (q *Queries) DeleteCity(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM cities WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// CountProjectsByCity returns how many projects reference a city.
func (q *Queries) CountProjectsByCity(ctx context.Context, cityID int64) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM projects WHERE city_id = ?`, cityID).Scan(&n)
	return n, err
}
