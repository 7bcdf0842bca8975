// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stconstruction/website/internal/model"
)

const userColumns = `id, email, username, full_name, password_hash,
	is_active, is_superuser, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.FullName, &u.PasswordHash,
		&u.IsActive, &u.IsSuperuser, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// GetUserByID returns the user with the given ID.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetUserByEmail returns the user with the given email, matched
// case-insensitively.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? COLLATE NOCASE`, email)
	return scanUser(row)
}

// GetUserByUsername returns the user with the given username, matched
// case-insensitively.
func (q *Queries) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ? COLLATE NOCASE`, username)
	return scanUser(row)
}

// ListUsers returns all users ordered by creation time.
func (q *Queries) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CountActiveSuperusers returns the number of active superuser accounts.
func (q *Queries) CountActiveSuperusers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE is_superuser = 1 AND is_active = 1`).Scan(&n)
	return n, err
}

// CreateUserParams holds the fields for CreateUser.
type CreateUserParams struct {
	Email        string
	Username     string
	FullName     string
	PasswordHash string
	IsActive     bool
	IsSuperuser  bool
}

// CreateUser inserts a user and returns the stored row.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO users (email, username, full_name, password_hash, is_active, is_superuser)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING `+userColumns,
		arg.Email, arg.Username, arg.FullName, arg.PasswordHash, arg.IsActive, arg.IsSuperuser)
	return scanUser(row)
}

// UpdateUserParams holds the fields for UpdateUser. The password hash
// is only replaced when PasswordHash is non-empty.
type UpdateUserParams struct {
	ID           int64
	Email        string
	Username     string
	FullName     string
	PasswordHash string
	IsActive     bool
	IsSuperuser  bool
}

// UpdateUser replaces the mutable fields of a user and returns the
// stored row.
func (q *Queries) UpdateUser(ctx context.Context, arg UpdateUserParams) (model.User, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE users
		SET email = ?, username = ?, full_name = ?,
		    password_hash = CASE WHEN ? != '' THEN ? ELSE password_hash END,
		    is_active = ?, is_superuser = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
		RETURNING `+userColumns,
		arg.Email, arg.Username, arg.FullName,
		arg.PasswordHash, arg.PasswordHash,
		arg.IsActive, arg.IsSuperuser, arg.ID)
	return scanUser(row)
}

// UpdateUserPassword replaces only the password hash.
func (q *Queries) UpdateUserPassword(ctx context.Context, id int64, hash string) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		hash, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// DeleteUser removes a user.
func (q *Queries) DeleteUser(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
