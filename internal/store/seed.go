// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// SeedParams configures first-start bootstrap data.
type SeedParams struct {
	AdminEmail        string
	AdminUsername     string
	AdminPasswordHash string
}

// Seed ensures the settings singleton exists and creates the bootstrap
// superuser when no account with the given email exists yet. The
// password hash is computed by the caller so the store stays free of
// crypto concerns.
func Seed(ctx context.Context, db *sql.DB, arg SeedParams) error {
	q := New(db)

	if _, err := q.CreateDefaultSettings(ctx); err != nil {
		return fmt.Errorf("seeding settings: %w", err)
	}

	if arg.AdminEmail == "" || arg.AdminPasswordHash == "" {
		return nil
	}

	_, err := q.GetUserByEmail(ctx, arg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("checking admin account: %w", err)
	}

	u, err := q.CreateUser(ctx, CreateUserParams{
		Email:        arg.AdminEmail,
		Username:     arg.AdminUsername,
		PasswordHash: arg.AdminPasswordHash,
		IsActive:     true,
		IsSuperuser:  true,
	})
	if err != nil {
		return fmt.Errorf("creating admin account: %w", err)
	}
	slog.Info("bootstrap admin created", "email", u.Email, "id", u.ID)
	return nil
}
