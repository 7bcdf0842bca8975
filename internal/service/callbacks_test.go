// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stconstruction/website/internal/model"
	"github.com/stconstruction/website/internal/store"
)

func TestCallbacksSubmit(t *testing.T) {
	q := store.New(store.NewTestDB(t))
	s := NewCallbacks(q)
	ctx := context.Background()

	cb, err := s.Submit(ctx, "  Aidar  ", "+7 700 123 45 67", "call after lunch", 0)
	require.NoError(t, err)
	assert.Equal(t, "Aidar", cb.Name)
	assert.False(t, cb.ProjectID.Valid)
	assert.False(t, cb.IsProcessed)

	_, err = s.Submit(ctx, "", "+7 700 123 45 67", "", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	for _, phone := range []string{"", "abc", "123", "++7 700"} {
		_, err = s.Submit(ctx, "Aidar", phone, "", 0)
		assert.ErrorIs(t, err, ErrInvalidInput, "phone %q", phone)
	}
}

func TestCallbacksSubmitWithProject(t *testing.T) {
	q := store.New(store.NewTestDB(t))
	s := NewCallbacks(q)
	cities := NewCities(q)
	projects := NewProjects(q)
	ctx := context.Background()

	city, err := cities.Create(ctx, "Almaty", "")
	require.NoError(t, err)
	p, err := projects.Create(ctx, CreateProjectInput{
		Name: "Emerald", Class: model.ClassComfort,
		Status: model.StatusCurrent, CityID: city.ID,
	})
	require.NoError(t, err)

	cb, err := s.Submit(ctx, "Buyer", "+77001234567", "", p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, cb.ProjectID.Int64)
	assert.Equal(t, "Emerald", cb.ProjectName.String)

	// unknown project reference is dropped, not an error
	cb, err = s.Submit(ctx, "Buyer", "+77001234567", "", 9999)
	require.NoError(t, err)
	assert.False(t, cb.ProjectID.Valid)
}

func TestCallbacksProcessedFlow(t *testing.T) {
	q := store.New(store.NewTestDB(t))
	s := NewCallbacks(q)
	ctx := context.Background()

	cb, err := s.Submit(ctx, "Aidar", "+77001234567", "", 0)
	require.NoError(t, err)

	n, err := s.CountUnprocessed(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, s.SetProcessed(ctx, cb.ID, true))
	n, err = s.CountUnprocessed(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.ErrorIs(t, s.SetProcessed(ctx, 9999, true), ErrNotFound)
}

func TestCallbacksPurge(t *testing.T) {
	db := store.NewTestDB(t)
	q := store.New(db)
	s := NewCallbacks(q)
	ctx := context.Background()

	old, err := s.Submit(ctx, "Old", "+77001234567", "", 0)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		`UPDATE callback_requests SET created_at = ? WHERE id = ?`,
		time.Now().UTC().AddDate(0, 0, -200), old.ID)
	require.NoError(t, err)

	_, err = s.Submit(ctx, "Fresh", "+77001234567", "", 0)
	require.NoError(t, err)

	removed, err := s.PurgeOlderThan(ctx, 180)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	leads, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Fresh", leads[0].Name)
}
