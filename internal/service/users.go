// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stconstruction/website/internal/auth"
	"github.com/stconstruction/website/internal/model"
	"github.com/stconstruction/website/internal/store"
)

// Users manages back-office accounts.
type Users struct {
	queries *store.Queries
}

// NewUsers returns a Users service over queries.
func NewUsers(queries *store.Queries) *Users {
	return &Users{queries: queries}
}

// Get returns a user by ID.
func (s *Users) Get(ctx context.Context, id int64) (model.User, error) {
	u, err := s.queries.GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// GetByEmail returns a user by email.
func (s *Users) GetByEmail(ctx context.Context, email string) (model.User, error) {
	u, err := s.queries.GetUserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, store.ErrNotFound) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// List returns all accounts.
func (s *Users) List(ctx context.Context) ([]model.User, error) {
	return s.queries.ListUsers(ctx)
}

// CreateUserInput holds the fields for Create.
type CreateUserInput struct {
	Email       string
	Username    string
	FullName    string
	Password    string
	IsActive    bool
	IsSuperuser bool
}

// Create registers an account. Email and username must be unused; the
// password must meet the minimum length.
func (s *Users) Create(ctx context.Context, in CreateUserInput) (model.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	if in.Email == "" || in.Username == "" {
		return model.User{}, fmt.Errorf("%w: email and username are required", ErrInvalidInput)
	}

	if _, err := s.queries.GetUserByEmail(ctx, in.Email); err == nil {
		return model.User{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return model.User{}, err
	}
	if _, err := s.queries.GetUserByUsername(ctx, in.Username); err == nil {
		return model.User{}, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return model.User{}, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return model.User{}, err
	}

	return s.queries.CreateUser(ctx, store.CreateUserParams{
		Email:        in.Email,
		Username:     in.Username,
		FullName:     in.FullName,
		PasswordHash: hash,
		IsActive:     in.IsActive,
		IsSuperuser:  in.IsSuperuser,
	})
}

// UpdateUserInput holds the fields for Update. Password is optional;
// empty keeps the current one.
type UpdateUserInput struct {
	Email       string
	Username    string
	FullName    string
	Password    string
	IsActive    bool
	IsSuperuser bool
}

// Update edits an account. actorID is the signed-in user performing
// the edit; an actor cannot demote or deactivate their own account,
// and the last active superuser cannot lose the flag.
func (s *Users) Update(ctx context.Context, actorID, id int64, in UpdateUserInput) (model.User, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return model.User{}, err
	}

	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	if in.Email == "" || in.Username == "" {
		return model.User{}, fmt.Errorf("%w: email and username are required", ErrInvalidInput)
	}

	if actorID == id && current.IsSuperuser && (!in.IsSuperuser || !in.IsActive) {
		return model.User{}, ErrSelfDemote
	}

	if current.IsSuperuser && current.IsActive && (!in.IsSuperuser || !in.IsActive) {
		n, err := s.queries.CountActiveSuperusers(ctx)
		if err != nil {
			return model.User{}, err
		}
		if n <= 1 {
			return model.User{}, ErrLastAdmin
		}
	}

	if !strings.EqualFold(in.Email, current.Email) {
		if _, err := s.queries.GetUserByEmail(ctx, in.Email); err == nil {
			return model.User{}, ErrEmailTaken
		} else if !errors.Is(err, store.ErrNotFound) {
			return model.User{}, err
		}
	}
	if !strings.EqualFold(in.Username, current.Username) {
		if _, err := s.queries.GetUserByUsername(ctx, in.Username); err == nil {
			return model.User{}, ErrUsernameTaken
		} else if !errors.Is(err, store.ErrNotFound) {
			return model.User{}, err
		}
	}

	var hash string
	if in.Password != "" {
		if hash, err = auth.HashPassword(in.Password); err != nil {
			return model.User{}, err
		}
	}

	return s.queries.UpdateUser(ctx, store.UpdateUserParams{
		ID:           id,
		Email:        in.Email,
		Username:     in.Username,
		FullName:     in.FullName,
		PasswordHash: hash,
		IsActive:     in.IsActive,
		IsSuperuser:  in.IsSuperuser,
	})
}

// Delete removes an account. Self-deletion and removal of the last
// active superuser are refused.
func (s *Users) Delete(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return ErrSelfDelete
	}

	target, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if target.IsSuperuser && target.IsActive {
		n, err := s.queries.CountActiveSuperusers(ctx)
		if err != nil {
			return err
		}
		if n <= 1 {
			return ErrLastAdmin
		}
	}

	if err := s.queries.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// SetPasswordHash stores a precomputed hash, used for transparent
// rehashing on login.
func (s *Users) SetPasswordHash(ctx context.Context, id int64, hash string) error {
	if err := s.queries.UpdateUserPassword(ctx, id, hash); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// ChangePassword replaces a user's password after verifying the
// current one.
func (s *Users) ChangePassword(ctx context.Context, id int64, currentPassword, newPassword string) error {
	u, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(currentPassword, u.PasswordHash) {
		return fmt.Errorf("%w: current password is incorrect", ErrInvalidInput)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.queries.UpdateUserPassword(ctx, id, hash)
}
