// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stconstruction/website/internal/model"
)

func TestUsersCRUD(t *testing.T) {
	db := NewTestDB(t)
	q := New(db)
	ctx := context.Background()

	u, err := q.CreateUser(ctx, CreateUserParams{
		Email:        "manager@example.com",
		Username:     "manager",
		FullName:     "Site Manager",
		PasswordHash: "$argon2id$fake",
		IsActive:     true,
	})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.False(t, u.IsSuperuser)

	byEmail, err := q.GetUserByEmail(ctx, "MANAGER@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byName, err := q.GetUserByUsername(ctx, "Manager")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	updated, err := q.UpdateUser(ctx, UpdateUserParams{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		FullName:    "Renamed",
		IsActive:    true,
		IsSuperuser: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.FullName)
	assert.True(t, updated.IsSuperuser)
	// empty hash in params keeps the stored hash
	assert.Equal(t, "$argon2id$fake", updated.PasswordHash)

	n, err := q.CountActiveSuperusers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, q.DeleteUser(ctx, u.ID))
	_, err = q.GetUserByID(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserEmailUnique(t *testing.T) {
	db := NewTestDB(t)
	q := New(db)
	ctx := context.Background()

	_, err := q.CreateUser(ctx, CreateUserParams{
		Email: "a@example.com", Username: "a", PasswordHash: "h", IsActive: true,
	})
	require.NoError(t, err)

	_, err = q.CreateUser(ctx, CreateUserParams{
		Email: "A@example.com", Username: "b", PasswordHash: "h", IsActive: true,
	})
	assert.Error(t, err, "case-insensitive duplicate email must be rejected")
}

func TestCityDeleteAndProjectCount(t *testing.T) {
	db := NewTestDB(t)
	q := New(db)
	ctx := context.Background()

	city, err := q.CreateCity(ctx, CreateCityParams{Name: "Almaty", Slug: "almaty"})
	require.NoError(t, err)

	n, err := q.CountProjectsByCity(ctx, city.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = q.CreateProject(ctx, CreateProjectParams{
		Name:   "Emerald Towers",
		Slug:   "emerald-towers",
		Class:  model.ClassBusiness,
		Status: model.StatusCurrent,
		CityID: city.ID,
	})
	require.NoError(t, err)

	n, err = q.CountProjectsByCity(ctx, city.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestProjectsGalleryRoundTrip(t *testing.T) {
	db := NewTestDB(t)
	q := New(db)
	ctx := context.Background()

	city, err := q.CreateCity(ctx, CreateCityParams{Name: "Astana", Slug: "astana"})
	require.NoError(t, err)

	p, err := q.CreateProject(ctx, CreateProjectParams{
		Name:          "Skyline",
		Slug:          "skyline",
		Class:         model.ClassComfort,
		Status:        model.StatusPlanned,
		CityID:        city.ID,
		GalleryImages: []string{"a.jpg", "b.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, p.GalleryImages)
	assert.Equal(t, "Astana", p.CityName)

	empty, err := q.CreateProject(ctx, CreateProjectParams{
		Name: "Bare", Slug: "bare",
		Class: model.ClassComfort, Status: model.StatusPlanned, CityID: city.ID,
	})
	require.NoError(t, err)
	assert.Empty(t, empty.GalleryImages)
}

func TestListProjectsFilters(t *testing.T) {
	db := NewTestDB(t)
	q := New(db)
	ctx := context.Background()

	city, err := q.CreateCity(ctx, CreateCityParams{Name: "Shymkent", Slug: "shymkent"})
	require.NoError(t, err)

	mk := func(slug string, status model.ProjectStatus, published bool) {
		t.Helper()
		_, err := q.CreateProject(ctx, CreateProjectParams{
			Name: slug, Slug: slug,
			Class: model.ClassEconomy, Status: status,
			CityID: city.ID, IsPublished: published,
		})
		require.NoError(t, err)
	}
	mk("one", model.StatusCurrent, true)
	mk("two", model.StatusCompleted, true)
	mk("three", model.StatusCurrent, false)

	all, err := q.ListProjects(ctx, ListProjectsParams{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	published, err := q.ListProjects(ctx, ListProjectsParams{PublishedOnly: true})
	require.NoError(t, err)
	assert.Len(t, published, 2)

	current, err := q.ListProjects(ctx, ListProjectsParams{
		PublishedOnly: true, Status: model.StatusCurrent,
	})
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.Equal(t, "one", current[0].Slug)
}

func TestNewsPublishStampsOnce(t *testing.T) {
	db := NewTestDB(t)
	q := New(db)
	ctx := context.Background()

	n, err := q.CreateNews(ctx, CreateNewsParams{Title: "Launch", Slug: "launch"})
	require.NoError(t, err)
	assert.False(t, n.PublishedAt.Valid)

	require.NoError(t, q.SetNewsPublished(ctx, n.ID, true))
	first, err := q.GetNewsByID(ctx, n.ID)
	require.NoError(t, err)
	require.True(t, first.PublishedAt.Valid)

	require.NoError(t, q.SetNewsPublished(ctx, n.ID, false))
	require.NoError(t, q.SetNewsPublished(ctx, n.ID, true))
	second, err := q.GetNewsByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, first.PublishedAt.Time, second.PublishedAt.Time,
		"republishing must not move the original timestamp")
}

func TestSettingsSingleton(t *testing.T) {
	db := NewTestDB(t)
	q := New(db)
	ctx := context.Background()

	_, err := q.GetSettings(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	s, err := q.CreateDefaultSettings(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, s.ID)
	assert.Equal(t, "Standart Construction", s.CompanyName)
	assert.Empty(t, s.Addresses)

	// idempotent
	again, err := q.CreateDefaultSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, s.ID, again.ID)

	updated, err := q.UpdateSettings(ctx, UpdateSettingsParams{
		CompanyName:  "Standart Construction LLP",
		PhonePrimary: "+7 700 000 00 00",
		Addresses:    []string{"Almaty, Abay ave 1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Standart Construction LLP", updated.CompanyName)
	assert.Equal(t, []string{"Almaty, Abay ave 1"}, updated.Addresses)
}

func TestCallbackPurge(t *testing.T) {
	db := NewTestDB(t)
	q := New(db)
	ctx := context.Background()

	old, err := q.CreateCallback(ctx, CreateCallbackParams{Name: "Old", Phone: "+7 700 1"})
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		`UPDATE callback_requests SET created_at = ? WHERE id = ?`,
		time.Now().AddDate(0, 0, -200).UTC(), old.ID)
	require.NoError(t, err)

	fresh, err := q.CreateCallback(ctx, CreateCallbackParams{Name: "Fresh", Phone: "+7 700 2"})
	require.NoError(t, err)

	removed, err := q.DeleteCallbacksBefore(ctx, time.Now().AddDate(0, 0, -180))
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	_, err = q.GetCallbackByID(ctx, old.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = q.GetCallbackByID(ctx, fresh.ID)
	assert.NoError(t, err)
}

func TestCallbackProjectNullOnDelete(t *testing.T) {
	db := NewTestDB(t)
	q := New(db)
	ctx := context.Background()

	city, err := q.CreateCity(ctx, CreateCityParams{Name: "Aktau", Slug: "aktau"})
	require.NoError(t, err)
	p, err := q.CreateProject(ctx, CreateProjectParams{
		Name: "Marina", Slug: "marina",
		Class: model.ClassPremium, Status: model.StatusCurrent, CityID: city.ID,
	})
	require.NoError(t, err)

	cb, err := q.CreateCallback(ctx, CreateCallbackParams{
		Name: "Buyer", Phone: "+7 700 3",
		ProjectID: sql.NullInt64{Int64: p.ID, Valid: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "Marina", cb.ProjectName.String)

	require.NoError(t, q.DeleteProject(ctx, p.ID))

	after, err := q.GetCallbackByID(ctx, cb.ID)
	require.NoError(t, err)
	assert.False(t, after.ProjectID.Valid)
}
