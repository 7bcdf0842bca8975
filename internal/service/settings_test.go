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

func TestSettingsGetOrCreate(t *testing.T) {
	s := NewSettings(store.New(store.NewTestDB(t)))
	ctx := context.Background()

	first, err := s.Get(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, first.ID)
	assert.Equal(t, "Standart Construction", first.CompanyName)

	second, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestSettingsUpdateVisibleOnNextGet(t *testing.T) {
	s := NewSettings(store.New(store.NewTestDB(t)))
	ctx := context.Background()

	_, err := s.Update(ctx, store.UpdateSettingsParams{
		CompanyName:          "Standart Construction LLP",
		PhonePrimary:         "+7 727 000 00 00",
		Addresses:            []string{"Almaty", "Astana"},
		StatsYearsExperience: 15,
	})
	require.NoError(t, err)

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Standart Construction LLP", got.CompanyName)
	assert.Equal(t, []string{"Almaty", "Astana"}, got.Addresses)
	assert.EqualValues(t, 15, got.StatsYearsExperience)
}
