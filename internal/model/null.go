// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"bytes"
	"database/sql"
	"encoding/json"
)

// The sql.Null* types marshal as {"String":...,"Valid":...} structs,
// which is useless in API payloads. These wrappers keep the database
// scanning behavior but serialize as the plain value or null.

var jsonNull = []byte("null")

// NullString is a nullable string that marshals as the value or null.
type NullString struct {
	sql.NullString
}

func (n NullString) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return jsonNull, nil
	}
	return json.Marshal(n.String)
}

func (n *NullString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		*n = NullString{}
		return nil
	}
	n.Valid = true
	return json.Unmarshal(data, &n.String)
}

// NullInt64 is a nullable int64 that marshals as the value or null.
type NullInt64 struct {
	sql.NullInt64
}

func (n NullInt64) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return jsonNull, nil
	}
	return json.Marshal(n.Int64)
}

func (n *NullInt64) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		*n = NullInt64{}
		return nil
	}
	n.Valid = true
	return json.Unmarshal(data, &n.Int64)
}

// NullTime is a nullable timestamp that marshals as RFC 3339 or null.
type NullTime struct {
	sql.NullTime
}

func (n NullTime) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return jsonNull, nil
	}
	return json.Marshal(n.Time)
}

func (n *NullTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		*n = NullTime{}
		return nil
	}
	n.Valid = true
	return json.Unmarshal(data, &n.Time)
}
