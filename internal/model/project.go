// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// ProjectClass is the market segment of a residential complex.
type ProjectClass string

const (
	ClassEconomy  ProjectClass = "economy"
	ClassComfort  ProjectClass = "comfort"
	ClassBusiness ProjectClass = "business"
	ClassPremium  ProjectClass = "premium"
	ClassElite    ProjectClass = "elite"
)

// Valid reports whether c is one of the known project classes.
func (c ProjectClass) Valid() bool {
	switch c {
	case ClassEconomy, ClassComfort, ClassBusiness, ClassPremium, ClassElite:
		return true
	}
	return false
}

// ProjectStatus is the construction lifecycle stage of a project.
type ProjectStatus string

const (
	StatusCurrent   ProjectStatus = "current"
	StatusCompleted ProjectStatus = "completed"
	StatusPlanned   ProjectStatus = "planned"
)

// Valid reports whether s is one of the known project statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusCurrent, StatusCompleted, StatusPlanned:
		return true
	}
	return false
}

// Project is a residential complex shown on the landing pages and
// managed from the back office.
type Project struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Slug          string        `json:"slug"`
	Description   string        `json:"description"`
	Class         ProjectClass  `json:"class"`
	Status        ProjectStatus `json:"status"`
	CityID        int64         `json:"city_id"`
	Address       string        `json:"address"`
	CoverImage    NullString    `json:"cover_image"`
	LogoImage     NullString    `json:"logo_image"`
	GalleryImages []string      `json:"gallery_images"`
	FloorsTotal   NullInt64     `json:"floors_total"`
	Completion    NullString    `json:"completion"`
	IsPublished   bool          `json:"is_published"`
	SortOrder     int64         `json:"sort_order"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	// CityName is populated by list queries that join cities.
	CityName string `json:"city_name,omitempty"`
}
