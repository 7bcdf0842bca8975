// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stconstruction/website/internal/model"
	"github.com/stconstruction/website/internal/store"
)

func newServices(t *testing.T) (*Cities, *Projects) {
	t.Helper()
	q := store.New(store.NewTestDB(t))
	return NewCities(q), NewProjects(q)
}

func TestCitiesCreateDerivesSlug(t *testing.T) {
	cities, _ := newServices(t)
	ctx := context.Background()

	c, err := cities.Create(ctx, "Усть-Каменогорск", "")
	require.NoError(t, err)
	assert.Equal(t, "ust-kamenogorsk", c.Slug)

	explicit, err := cities.Create(ctx, "Almaty", "almaty-city")
	require.NoError(t, err)
	assert.Equal(t, "almaty-city", explicit.Slug)
}

func TestCitiesSlugConflict(t *testing.T) {
	cities, _ := newServices(t)
	ctx := context.Background()

	_, err := cities.Create(ctx, "Almaty", "")
	require.NoError(t, err)

	_, err = cities.Create(ctx, "Another", "almaty")
	assert.ErrorIs(t, err, ErrSlugTaken)

	// updating a city to its own slug is fine
	c, err := cities.Create(ctx, "Astana", "")
	require.NoError(t, err)
	_, err = cities.Update(ctx, c.ID, "Astana Renamed", "astana")
	assert.NoError(t, err)
}

func TestCitiesDeleteGuardedByProjects(t *testing.T) {
	cities, projects := newServices(t)
	ctx := context.Background()

	c, err := cities.Create(ctx, "Almaty", "")
	require.NoError(t, err)

	p, err := projects.Create(ctx, CreateProjectInput{
		Name: "Emerald", Class: model.ClassComfort,
		Status: model.StatusCurrent, CityID: c.ID,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, cities.Delete(ctx, c.ID), ErrCityInUse)

	require.NoError(t, projects.Delete(ctx, p.ID))
	assert.NoError(t, cities.Delete(ctx, c.ID))
}

func TestCitiesDeleteMissing(t *testing.T) {
	cities, _ := newServices(t)
	assert.ErrorIs(t, cities.Delete(context.Background(), 12345), ErrNotFound)
}
