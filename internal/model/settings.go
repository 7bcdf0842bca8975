// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// SiteSettings is the singleton row holding company contacts and
// landing-page copy. Exactly one row exists, with ID 1.
type SiteSettings struct {
	ID          int64  `json:"id"`
	CompanyName string `json:"company_name"`
	LogoPath    string `json:"logo_path"`

	PhonePrimary   string `json:"phone_primary"`
	PhoneSecondary string `json:"phone_secondary"`
	EmailGeneral   string `json:"email_general"`
	EmailOrders    string `json:"email_orders"`

	// Addresses is a list of office addresses, stored as JSON.
	Addresses []string `json:"addresses"`

	SocialInstagram string `json:"social_instagram"`
	SocialFacebook  string `json:"social_facebook"`
	SocialWhatsapp  string `json:"social_whatsapp"`
	SocialTelegram  string `json:"social_telegram"`
	SocialYoutube   string `json:"social_youtube"`

	WorkingHours string `json:"working_hours"`
	INN          string `json:"inn"`
	BIN          string `json:"bin"`
	LegalAddress string `json:"legal_address"`

	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	MetaKeywords    string `json:"meta_keywords"`

	StatsProjectsCompleted int64 `json:"stats_projects_completed"`
	StatsClients           int64 `json:"stats_clients"`
	StatsYearsExperience   int64 `json:"stats_years_experience"`

	UpdatedAt time.Time `json:"updated_at"`
}
