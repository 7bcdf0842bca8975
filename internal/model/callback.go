// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// CallbackRequest is a lead captured from the public call-me-back form.
type CallbackRequest struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Phone       string     `json:"phone"`
	Message     string     `json:"message"`
	ProjectID   NullInt64  `json:"project_id"`
	ProjectName NullString `json:"project_name,omitempty"`
	IsProcessed bool       `json:"is_processed"`
	CreatedAt   time.Time  `json:"created_at"`
}
