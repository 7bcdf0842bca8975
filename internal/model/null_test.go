// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullTypesMarshalAsPlainValues(t *testing.T) {
	p := Project{
		ID:         7,
		Name:       "Emerald",
		CoverImage: NullString{sql.NullString{String: "projects/a.jpg", Valid: true}},
		FloorsTotal: NullInt64{
			sql.NullInt64{Int64: 12, Valid: true},
		},
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, "projects/a.jpg", out["cover_image"])
	assert.Equal(t, float64(12), out["floors_total"])
	assert.Nil(t, out["logo_image"], "invalid values must serialize as null")
	assert.Nil(t, out["completion"])
}

func TestNullTimeMarshalsRFC3339(t *testing.T) {
	stamp := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	n := NewsItem{
		Title:       "Opening",
		PublishedAt: NullTime{sql.NullTime{Time: stamp, Valid: true}},
	}

	data, err := json.Marshal(n)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "2026-03-01T12:00:00Z", out["published_at"])

	var draft NewsItem
	data, err = json.Marshal(draft)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Nil(t, out["published_at"])
}

func TestNullTypesUnmarshal(t *testing.T) {
	var s NullString
	require.NoError(t, json.Unmarshal([]byte(`"hello"`), &s))
	assert.True(t, s.Valid)
	assert.Equal(t, "hello", s.String)

	require.NoError(t, json.Unmarshal([]byte(`null`), &s))
	assert.False(t, s.Valid)

	var v NullInt64
	require.NoError(t, json.Unmarshal([]byte(`42`), &v))
	assert.True(t, v.Valid)
	assert.Equal(t, int64(42), v.Int64)
}
