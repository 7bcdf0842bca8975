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

const settingsColumns = `id, company_name, logo_path, phone_primary, phone_secondary,
	email_general, email_orders, addresses, social_instagram, social_facebook,
	social_whatsapp, social_telegram, social_youtube, working_hours, inn, bin,
	legal_address, meta_title, meta_description, meta_keywords,
	stats_projects_completed, stats_clients, stats_years_experience, updated_at`

func scanSettings(row interface{ Scan(...any) error }) (model.SiteSettings, error) {
	var (
		s         model.SiteSettings
		addresses string
	)
	err := row.Scan(&s.ID, &s.CompanyName, &s.LogoPath, &s.PhonePrimary, &s.PhoneSecondary,
		&s.EmailGeneral, &s.EmailOrders, &addresses, &s.SocialInstagram, &s.SocialFacebook,
		&s.SocialWhatsapp, &s.SocialTelegram, &s.SocialYoutube, &s.WorkingHours,
		&s.INN, &s.BIN, &s.LegalAddress, &s.MetaTitle, &s.MetaDescription, &s.MetaKeywords,
		&s.StatsProjectsCompleted, &s.StatsClients, &s.StatsYearsExperience, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.SiteSettings{}, ErrNotFound
	}
	if err != nil {
		return model.SiteSettings{}, err
	}
	if err := json.Unmarshal([]byte(addresses), &s.Addresses); err != nil {
		return model.SiteSettings{}, err
	}
	return s, nil
}

// GetSettings returns the singleton settings row.
func (q *Queries) GetSettings(ctx context.Context) (model.SiteSettings, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+settingsColumns+` FROM site_settings WHERE id = 1`)
	return scanSettings(row)
}

// CreateDefaultSettings inserts the singleton row with defaults if it
// does not exist yet, and returns it.
func (q *Queries) CreateDefaultSettings(ctx context.Context) (model.SiteSettings, error) {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO site_settings (id) VALUES (1) ON CONFLICT (id) DO NOTHING`)
	if err != nil {
		return model.SiteSettings{}, err
	}
	return q.GetSettings(ctx)
}

// UpdateSettingsParams holds the fields for UpdateSettings.
type UpdateSettingsParams struct {
	CompanyName string
	LogoPath    string

	PhonePrimary   string
	PhoneSecondary string
	EmailGeneral   string
	EmailOrders    string

	Addresses []string

	SocialInstagram string
	SocialFacebook  string
	SocialWhatsapp  string
	SocialTelegram  string
	SocialYoutube   string

	WorkingHours string
	INN          string
	BIN          string
	LegalAddress string

	MetaTitle       string
	MetaDescription string
	MetaKeywords    string

	StatsProjectsCompleted int64
	StatsClients           int64
	StatsYearsExperience   int64
}

// UpdateSettings replaces every field of the singleton row and returns
// the stored row.
func (q *Queries) UpdateSettings(ctx context.Context, arg UpdateSettingsParams) (model.SiteSettings, error) {
	addresses := arg.Addresses
	if addresses == nil {
		addresses = []string{}
	}
	addrJSON, err := json.Marshal(addresses)
	if err != nil {
		return model.SiteSettings{}, err
	}

	row := q.db.QueryRowContext(ctx, `
		UPDATE site_settings
		SET company_name = ?, logo_path = ?, phone_primary = ?, phone_secondary = ?,
		    email_general = ?, email_orders = ?, addresses = ?,
		    social_instagram = ?, social_facebook = ?, social_whatsapp = ?,
		    social_telegram = ?, social_youtube = ?, working_hours = ?,
		    inn = ?, bin = ?, legal_address = ?,
		    meta_title = ?, meta_description = ?, meta_keywords = ?,
		    stats_projects_completed = ?, stats_clients = ?, stats_years_experience = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
		RETURNING `+settingsColumns,
		arg.CompanyName, arg.LogoPath, arg.PhonePrimary, arg.PhoneSecondary,
		arg.EmailGeneral, arg.EmailOrders, string(addrJSON),
		arg.SocialInstagram, arg.SocialFacebook, arg.SocialWhatsapp,
		arg.SocialTelegram, arg.SocialYoutube, arg.WorkingHours,
		arg.INN, arg.BIN, arg.LegalAddress,
		arg.MetaTitle, arg.MetaDescription, arg.MetaKeywords,
		arg.StatsProjectsCompleted, arg.StatsClients, arg.StatsYearsExperience)
	return scanSettings(row)
}
